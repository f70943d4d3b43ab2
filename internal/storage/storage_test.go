package storage

import (
	"context"
	"testing"

	"github.com/jjudge-oj/todoapi/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectDisabled(t *testing.T) {
	for _, backend := range []string{"", BackendNone} {
		s, err := Connect(context.Background(), config.StorageConfig{Backend: backend})
		require.NoError(t, err)
		assert.Nil(t, s)
	}
}

func TestConnectValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{
			name: "unknown backend",
			cfg:  config.StorageConfig{Backend: "s3"},
			want: "unsupported storage backend",
		},
		{
			name: "minio without endpoint",
			cfg:  config.StorageConfig{Backend: BackendMinio, Minio: config.MinioConfig{AccessKey: "a", SecretKey: "b", Bucket: "c"}},
			want: "minio endpoint is required",
		},
		{
			name: "minio without keys",
			cfg:  config.StorageConfig{Backend: BackendMinio, Minio: config.MinioConfig{Endpoint: "localhost:9000", Bucket: "c"}},
			want: "access key and secret key",
		},
		{
			name: "gcs without bucket",
			cfg:  config.StorageConfig{Backend: BackendGCS},
			want: "gcs bucket is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Connect(context.Background(), tc.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestConnectMinio(t *testing.T) {
	s, err := Connect(context.Background(), config.StorageConfig{
		Backend: BackendMinio,
		Minio: config.MinioConfig{
			Endpoint:  "localhost:9000",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Bucket:    "todo-backups",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "todo-backups", s.Bucket())
}

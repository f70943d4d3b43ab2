package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jjudge-oj/todoapi/config"
	"github.com/jjudge-oj/todoapi/internal/db"
	"github.com/jjudge-oj/todoapi/types"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.OpenSQLite(ctx, db.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.MigrateUp(ctx, conn, config.DriverSQLite))
	return conn
}

func createTestUser(t *testing.T, repo *UserRepository, username string) types.User {
	t.Helper()

	user, err := repo.Create(context.Background(), createTestUserPayload(username))
	require.NoError(t, err)
	return user
}

func createTestUserPayload(username string) types.User {
	return types.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    username,
		LastName:     "Test",
		Role:         "user",
		IsActive:     true,
		PasswordHash: "hash",
	}
}

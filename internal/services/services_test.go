package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/jjudge-oj/todoapi/config"
	"github.com/jjudge-oj/todoapi/internal/db"
	"github.com/jjudge-oj/todoapi/internal/store"
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

func registerUser(t *testing.T, svc *UserService, username, password string) types.User {
	t.Helper()

	user, err := svc.Register(context.Background(), types.CreateUserRequest{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: username,
		LastName:  "Test",
		Password:  password,
		Role:      "user",
	})
	require.NoError(t, err)
	return user
}

type publishedMessage struct {
	channel string
	data    []byte
	attrs   map[string]string
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.messages = append(p.messages, publishedMessage{channel: channel, data: data, attrs: attrs})
	return "msg-id", nil
}

var errBrokerDown = errors.New("broker down")

func newStores(t *testing.T) (*store.UserRepository, *store.TodoRepository) {
	t.Helper()
	conn := newTestDB(t)
	return store.NewUserRepository(conn), store.NewTodoRepository(conn)
}

func boolPtr(v bool) *bool {
	return &v
}

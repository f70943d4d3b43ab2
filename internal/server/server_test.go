package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jjudge-oj/todoapi/config"
	"github.com/jjudge-oj/todoapi/internal/db"
	"github.com/jjudge-oj/todoapi/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig() config.Config {
	return config.Config{
		ServerPort: 18081,
		Database: config.DatabaseConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: db.MemoryDSN,
		},
		Auth: config.AuthConfig{
			JWTSecret: "server-test-secret",
			TokenTTL:  time.Minute,
		},
		MQ: config.MQConfig{Backend: "none", TodoChannel: "todo-events"},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	srv, err := New(context.Background(), testConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestNewRequiresJWTSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""

	_, err := New(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewRejectsUnknownBroker(t *testing.T) {
	cfg := testConfig()
	cfg.MQ.Backend = "kafka"

	_, err := New(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestServerHealth(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, ":18081", srv.Addr())

	for _, path := range []string{"/healthy", "/healthz"} {
		rec := serve(srv, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"Healthy"}`, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get("Content-Type"))
	}
}

func TestServerTodoFlow(t *testing.T) {
	srv := newTestServer(t)

	register, err := json.Marshal(map[string]string{
		"username":   "alice",
		"email":      "alice@example.com",
		"first_name": "Alice",
		"last_name":  "Liddell",
		"password":   "wonderland",
		"role":       "user",
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/auth/", bytes.NewReader(register))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(srv, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	form := url.Values{"username": {"alice"}, "password": {"wonderland"}}
	req = httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = serve(srv, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var token types.Token
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	assert.Equal(t, "bearer", token.TokenType)

	req = httptest.NewRequest(http.MethodPost, "/todo",
		strings.NewReader(`{"title":"Buy milk","description":"two litres","priority":2,"complete":false}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	rec = serve(srv, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	rec = serve(srv, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var todos []types.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Title)

	rec = serve(srv, httptest.NewRequest(http.MethodGet, "/books", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

package handlers

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

	"github.com/go-chi/chi/v5"
	"github.com/jjudge-oj/todoapi/config"
	"github.com/jjudge-oj/todoapi/internal/auth"
	"github.com/jjudge-oj/todoapi/internal/db"
	"github.com/jjudge-oj/todoapi/internal/services"
	"github.com/jjudge-oj/todoapi/internal/store"
	"github.com/jjudge-oj/todoapi/types"
	"github.com/stretchr/testify/require"
)

const testSecret = "handlers-test-secret"

type testEnv struct {
	router http.Handler
	tokens *auth.TokenService
	users  *services.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	conn, err := db.OpenSQLite(ctx, db.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.MigrateUp(ctx, conn, config.DriverSQLite))

	userService := services.NewUserService(store.NewUserRepository(conn))
	todoService := services.NewTodoService(store.NewTodoRepository(conn), nil, "", nil)
	bookService := services.NewBookService(store.NewBookStore(store.DefaultBooks()))
	tokens := auth.NewTokenService(testSecret, time.Minute)
	authMiddleware := RequireAuth(tokens)

	router := chi.NewRouter()
	router.Get("/healthy", Healthy)
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, userService, tokens, nil)
	})
	router.Route("/users", func(r chi.Router) {
		UserRouter(r, userService, authMiddleware, nil)
	})
	router.Route("/admin", func(r chi.Router) {
		AdminRouter(r, todoService, authMiddleware, nil)
	})
	TodoRouter(router, todoService, authMiddleware, nil)
	BookRouter(router, bookService)

	return &testEnv{router: router, tokens: tokens, users: userService}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		data, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// signup registers a user through the API and returns a bearer token for it.
func (e *testEnv) signup(t *testing.T, username, role string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/auth/", "", registerPayload(username, role))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.login(t, username, username+"-pass")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var token types.Token
	decodeBody(t, rec, &token)
	return token.AccessToken
}

func registerPayload(username, role string) map[string]string {
	return map[string]string{
		"username":     username,
		"email":        username + "@example.com",
		"first_name":   username,
		"last_name":    "Tester",
		"password":     username + "-pass",
		"role":         role,
		"phone_number": "555-0100",
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func decodeValidation(t *testing.T, rec *httptest.ResponseRecorder) []ValidationIssue {
	t.Helper()
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	var resp ValidationErrorResponse
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Detail)
	return resp.Detail
}

func hasIssue(issues []ValidationIssue, loc ...string) bool {
	for _, issue := range issues {
		if strings.Join(issue.Loc, ".") == strings.Join(loc, ".") {
			return true
		}
	}
	return false
}

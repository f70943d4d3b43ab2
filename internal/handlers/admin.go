package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jjudge-oj/todoapi/internal/services"
	"go.uber.org/zap"
)

const (
	adminRole              = "admin"
	detailAdminAuthFailure = "Authentication Failed"
)

// AdminHandler exposes todo management across all owners.
type AdminHandler struct {
	todoService *services.TodoService
	logger      *zap.Logger
}

func NewAdminHandler(todoService *services.TodoService, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{todoService: todoService, logger: logger}
}

// AdminRouter registers admin routes on the given router.
func AdminRouter(r chi.Router, todoService *services.TodoService, authMiddleware func(http.Handler) http.Handler, logger *zap.Logger) {
	handler := NewAdminHandler(todoService, logger)

	r.Use(authMiddleware, requireAdmin)
	r.Get("/todo", handler.ListTodos)
	r.Delete("/todo/{todo_id}", handler.DeleteTodo)
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromContext(r.Context())
		if !ok || identity.Role != adminRole {
			writeError(w, http.StatusUnauthorized, detailAdminAuthFailure)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *AdminHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todoService.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list all todos failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list todos")
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (h *AdminHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.todoService.DeleteAny(r.Context(), id); err != nil {
		writeTodoError(w, h.logger, "admin delete todo failed", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

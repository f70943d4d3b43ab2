package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jjudge-oj/todoapi/internal/auth"
	"github.com/jjudge-oj/todoapi/internal/services"
	"github.com/jjudge-oj/todoapi/internal/store"
	"github.com/jjudge-oj/todoapi/types"
	"go.uber.org/zap"
)

const (
	detailTodoNotFound = "ToDo not found"
	todoIDParam        = "todo_id"
)

// TodoHandler serves the caller's own todos.
type TodoHandler struct {
	todoService *services.TodoService
	logger      *zap.Logger
}

func NewTodoHandler(todoService *services.TodoService, logger *zap.Logger) *TodoHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TodoHandler{todoService: todoService, logger: logger}
}

// TodoRouter registers todo routes. Every route requires authentication.
func TodoRouter(r chi.Router, todoService *services.TodoService, authMiddleware func(http.Handler) http.Handler, logger *zap.Logger) {
	handler := NewTodoHandler(todoService, logger)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", handler.ListTodos)
		r.Post("/todo", handler.CreateTodo)
		r.Get("/todo/{todo_id}", handler.GetTodo)
		r.Put("/todo/{todo_id}", handler.UpdateTodo)
		r.Delete("/todo/{todo_id}", handler.DeleteTodo)
	})
}

func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	todos, err := h.todoService.List(r.Context(), identity.ID)
	if err != nil {
		h.logger.Error("list todos failed", zap.Int("owner_id", identity.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list todos")
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := todoIDFromPath(w, r)
	if !ok {
		return
	}

	todo, err := h.todoService.Get(r.Context(), identity.ID, id)
	if err != nil {
		writeTodoError(w, h.logger, "get todo failed", id, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	req, ok := decodeTodoRequest(w, r)
	if !ok {
		return
	}

	todo, err := h.todoService.Create(r.Context(), identity.ID, req)
	if err != nil {
		h.logger.Error("create todo failed", zap.Int("owner_id", identity.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create todo")
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := todoIDFromPath(w, r)
	if !ok {
		return
	}
	req, ok := decodeTodoRequest(w, r)
	if !ok {
		return
	}

	if _, err := h.todoService.Update(r.Context(), identity.ID, id, req); err != nil {
		writeTodoError(w, h.logger, "update todo failed", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := todoIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.todoService.Delete(r.Context(), identity.ID, id); err != nil {
		writeTodoError(w, h.logger, "delete todo failed", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeTodoError(w http.ResponseWriter, logger *zap.Logger, msg string, id int, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, detailTodoNotFound)
		return
	}
	logger.Error(msg, zap.Int("todo_id", id), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Failed to process todo")
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		unauthorized(w, detailInvalidCredentials)
		return auth.Identity{}, false
	}
	return identity, true
}

func todoIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := parsePathID(r, todoIDParam)
	if !ok {
		writeValidationError(w, invalidInput("path", todoIDParam, "Input should be greater than 0", "greater_than"))
		return 0, false
	}
	return id, true
}

func decodeTodoRequest(w http.ResponseWriter, r *http.Request) (types.TodoRequest, bool) {
	var req types.TodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeValidationError(w, invalidJSON(err))
		return req, false
	}
	if issues := validateBody(req); issues != nil {
		writeValidationError(w, issues...)
		return req, false
	}
	return req, true
}

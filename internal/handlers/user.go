package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jjudge-oj/todoapi/internal/services"
	"github.com/jjudge-oj/todoapi/internal/store"
	"github.com/jjudge-oj/todoapi/types"
	"go.uber.org/zap"
)

const detailPasswordChange = "Error on password change"

// UserHandler serves the authenticated user's own account.
type UserHandler struct {
	userService *services.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *services.UserService, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{userService: userService, logger: logger}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, userService *services.UserService, authMiddleware func(http.Handler) http.Handler, logger *zap.Logger) {
	handler := NewUserHandler(userService, logger)

	r.Use(authMiddleware)
	r.Get("/", handler.GetUser)
	r.Put("/password", handler.ChangePassword)
	r.Put("/phonenumber/{phone_number}", handler.ChangePhoneNumber)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			unauthorized(w, detailInvalidCredentials)
			return
		}
		h.logger.Error("get user failed", zap.Int("user_id", identity.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req types.UserVerification
	if err := decodeJSON(w, r, &req); err != nil {
		writeValidationError(w, invalidJSON(err))
		return
	}
	if issues := validateBody(req); issues != nil {
		writeValidationError(w, issues...)
		return
	}

	err := h.userService.ChangePassword(r.Context(), identity.ID, req.Password, req.NewPassword)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, detailPasswordChange)
			return
		}
		h.logger.Error("change password failed", zap.Int("user_id", identity.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to change password")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) ChangePhoneNumber(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	phoneNumber := strings.TrimSpace(chi.URLParam(r, "phone_number"))
	if phoneNumber == "" {
		writeValidationError(w, invalidInput("path", "phone_number", "Field required", "missing"))
		return
	}

	if err := h.userService.ChangePhoneNumber(r.Context(), identity.ID, phoneNumber); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			unauthorized(w, detailInvalidCredentials)
			return
		}
		h.logger.Error("change phone number failed", zap.Int("user_id", identity.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to change phone number")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jjudge-oj/todoapi/internal/auth"
	"github.com/jjudge-oj/todoapi/internal/services"
	"github.com/jjudge-oj/todoapi/types"
	"go.uber.org/zap"
)

const (
	detailNotAuthenticated   = "Not authenticated"
	detailInvalidCredentials = "Could not validate credentials"
)

// AuthHandler provides registration and token endpoints.
type AuthHandler struct {
	userService *services.UserService
	tokens      *auth.TokenService
	logger      *zap.Logger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, tokens *auth.TokenService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		logger:      logger,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, tokens *auth.TokenService, logger *zap.Logger) {
	handler := NewAuthHandler(userService, tokens, logger)

	r.Post("/", handler.Register)
	r.Post("/token", handler.Login)
}

// RequireAuth verifies the bearer token and injects the caller identity
// into the request context.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				unauthorized(w, detailNotAuthenticated)
				return
			}

			identity, err := tokens.Verify(tokenString)
			if err != nil {
				unauthorized(w, detailInvalidCredentials)
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
		})
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeValidationError(w, invalidJSON(err))
		return
	}
	if issues := validateBody(req); issues != nil {
		writeValidationError(w, issues...)
		return
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "Username already exists")
			return
		}
		h.logger.Error("register user failed", zap.String("username", req.Username), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login verifies credentials from an OAuth2 password form (or JSON body)
// and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, issues := loginCredentials(w, r)
	if issues != nil {
		writeValidationError(w, issues...)
		return
	}

	user, err := h.userService.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			unauthorized(w, detailInvalidCredentials)
			return
		}
		h.logger.Error("authenticate failed", zap.String("username", username), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to authenticate")
		return
	}

	token, err := h.tokens.IssueDefault(user.Username, user.ID, user.Role)
	if err != nil {
		h.logger.Error("issue token failed", zap.Int("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	writeJSON(w, http.StatusOK, types.Token{AccessToken: token, TokenType: auth.TokenType})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func loginCredentials(w http.ResponseWriter, r *http.Request) (string, string, []ValidationIssue) {
	var req loginRequest
	location := "form"

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		location = "body"
		if err := decodeJSON(w, r, &req); err != nil {
			return "", "", []ValidationIssue{invalidJSON(err)}
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return "", "", []ValidationIssue{{Loc: []string{location}, Msg: err.Error(), Type: "value_error"}}
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	}

	var issues []ValidationIssue
	if strings.TrimSpace(req.Username) == "" {
		issues = append(issues, invalidInput(location, "username", "Field required", "missing"))
	}
	if req.Password == "" {
		issues = append(issues, invalidInput(location, "password", "Field required", "missing"))
	}
	return strings.TrimSpace(req.Username), req.Password, issues
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, detail)
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}

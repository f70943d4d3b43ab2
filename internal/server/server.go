package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jjudge-oj/todoapi/config"
	"github.com/jjudge-oj/todoapi/internal/auth"
	"github.com/jjudge-oj/todoapi/internal/db"
	"github.com/jjudge-oj/todoapi/internal/handlers"
	"github.com/jjudge-oj/todoapi/internal/logging"
	"github.com/jjudge-oj/todoapi/internal/mq"
	"github.com/jjudge-oj/todoapi/internal/services"
	"github.com/jjudge-oj/todoapi/internal/store"
	"go.uber.org/zap"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	broker     *mq.MQ
	logger     *zap.Logger
}

// New opens the database, applies pending migrations, connects the
// configured broker and builds the router.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(ctx, dbConn, cfg.Database.Driver); err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	logger.Info("database ready", zap.String("driver", cfg.Database.Driver))

	broker, err := mq.Connect(ctx, cfg.MQ)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	// A nil *mq.MQ must not become a non-nil Publisher.
	var publisher services.Publisher
	if broker != nil {
		publisher = broker
		logger.Info("todo events enabled",
			zap.String("backend", cfg.MQ.Backend),
			zap.String("channel", cfg.MQ.TodoChannel),
		)
	}

	userService := services.NewUserService(store.NewUserRepository(dbConn))
	todoService := services.NewTodoService(store.NewTodoRepository(dbConn), publisher, cfg.MQ.TodoChannel, logger)
	bookService := services.NewBookService(store.NewBookStore(store.DefaultBooks()))
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	logger.Info("token service ready", zap.Duration("token_ttl", tokens.TTL()))

	router := NewRouter(logger, userService, todoService, bookService, tokens)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		broker:     broker,
		logger:     logger,
	}, nil
}

// NewRouter mounts every route with the shared middleware stack.
func NewRouter(
	logger *zap.Logger,
	userService *services.UserService,
	todoService *services.TodoService,
	bookService *services.BookService,
	tokens *auth.TokenService,
) *chi.Mux {
	authMiddleware := handlers.RequireAuth(tokens)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		logging.RequestLogger(logger),
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthy", handlers.Healthy)
	router.Get("/healthz", handlers.Healthy)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, tokens, logger)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, authMiddleware, logger)
	})
	router.Route("/admin", func(r chi.Router) {
		handlers.AdminRouter(r, todoService, authMiddleware, logger)
	})
	handlers.TodoRouter(router, todoService, authMiddleware, logger)
	handlers.BookRouter(router, bookService)

	return router
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the broker and database.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.broker != nil {
		if closeErr := s.broker.Close(); closeErr != nil {
			s.logger.Warn("close broker failed", zap.Error(closeErr))
		}
	}
	if s.db != nil {
		if closeErr := s.db.Close(); closeErr != nil {
			s.logger.Warn("close database failed", zap.Error(closeErr))
		}
	}
	return err
}

package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/userhub-be/internal/auth"
	"github.com/hongminglow/userhub-be/internal/config"
	"github.com/hongminglow/userhub-be/internal/http/handlers"
	"github.com/hongminglow/userhub-be/internal/middleware"
	"github.com/hongminglow/userhub-be/internal/models"
	"github.com/hongminglow/userhub-be/internal/service"
	"github.com/hongminglow/userhub-be/internal/storage"
)

// defaultCatalog seeds the read-only product listing.
var defaultCatalog = []models.Product{
	{ID: 1, Name: "Tomato"},
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires services, handlers, and middleware, and returns a ready server.
func New(cfg config.Config, store storage.UserStore, log *zap.Logger) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	authService := service.NewAuthService(store, tokens, log)
	userService := service.NewUserService(store, cfg, log)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(userService, authService, log).Register(mux)
	handlers.NewUserHandler(userService, authService, log).Register(mux)
	handlers.NewProductHandler(defaultCatalog).Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(log, mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

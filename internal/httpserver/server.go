package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"blogplatform/backend/internal/config"
	authusecase "blogplatform/backend/internal/usecase/auth"
	blogusecase "blogplatform/backend/internal/usecase/blog"
	commentusecase "blogplatform/backend/internal/usecase/comment"
	likeusecase "blogplatform/backend/internal/usecase/like"
	notificationusecase "blogplatform/backend/internal/usecase/notification"
	userusecase "blogplatform/backend/internal/usecase/user"
)

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer          *http.Server
	router              *http.ServeMux
	authService         *authusecase.Service
	userService         *userusecase.Service
	blogService         *blogusecase.Service
	commentService      *commentusecase.Service
	likeService         *likeusecase.Service
	notificationService *notificationusecase.Service
	allowedOrigins      []string
	addr                string
}

// Services bundles the use case dependencies for the HTTP layer.
type Services struct {
	Auth         *authusecase.Service
	User         *userusecase.Service
	Blog         *blogusecase.Service
	Comment      *commentusecase.Service
	Like         *likeusecase.Service
	Notification *notificationusecase.Service
}

// NewServer constructs a new Server with configured dependencies.
func NewServer(cfg config.Config, services Services) *Server {
	mux := http.NewServeMux()
	addr := cfg.HTTPPort
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	handler := withLogging(withCORS(mux, cfg.AllowedOrigins))

	srv := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
			IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
		},
		router:              mux,
		authService:         services.Auth,
		userService:         services.User,
		blogService:         services.Blog,
		commentService:      services.Comment,
		likeService:         services.Like,
		notificationService: services.Notification,
		allowedOrigins:      cfg.AllowedOrigins,
		addr:                addr,
	}
	srv.registerRoutes()
	return srv
}

// Start bootstraps the HTTP server on the configured address.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the composed handler chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}

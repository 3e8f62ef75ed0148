// Package http provides the HTTP server, its router and cross-cutting middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	authHTTP "github.com/allisson/docgate/internal/auth/http"
	"github.com/allisson/docgate/internal/config"
	"github.com/allisson/docgate/internal/database"
	documentHTTP "github.com/allisson/docgate/internal/document/http"
	tokenHTTP "github.com/allisson/docgate/internal/token/http"
	userHTTP "github.com/allisson/docgate/internal/user/http"
)

const readinessTimeout = 2 * time.Second

// Handlers groups everything the router mounts.
type Handlers struct {
	Session         *authHTTP.SessionHandler
	User            *userHTTP.UserHandler
	GenerationToken *tokenHTTP.GenerationTokenHandler
	Document        *documentHTTP.DocumentHandler

	// Authentication resolves the bearer session; RequireAdmin runs after it.
	Authentication gin.HandlerFunc
	RequireAdmin   gin.HandlerFunc
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *gin.Engine
	pinger database.Pinger
	logger *slog.Logger
}

// NewServer creates a new HTTP server. pinger backs the readiness check.
func NewServer(
	pinger database.Pinger,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		pinger: pinger,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter mounts every route. metricsMiddleware may be nil when metrics are disabled.
func (s *Server) SetupRouter(cfg *config.Config, h Handlers, metricsMiddleware gin.HandlerFunc) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))
	if cors := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); cors != nil {
		router.Use(cors)
	}
	if metricsMiddleware != nil {
		router.Use(metricsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Public surface: a generation token or an access token is the credential.
	v1.POST("/generation-tokens/validate", h.GenerationToken.ValidateHandler)
	v1.POST("/documents/consume", h.Document.ConsumeHandler)
	v1.GET("/access/:access_token", h.Document.ResolveHandler)

	v1.POST("/auth/login", h.Session.LoginHandler)

	staff := v1.Group("", h.Authentication)
	staff.POST("/documents", h.Document.CreateHandler)

	admin := v1.Group("/admin", h.Authentication, h.RequireAdmin)
	admin.POST("/generation-tokens", h.GenerationToken.IssueHandler)
	admin.GET("/generation-tokens", h.GenerationToken.ListHandler)

	admin.GET("/documents", h.Document.ListHandler)
	admin.GET("/documents/:id", h.Document.GetHandler)
	admin.DELETE("/documents/:id", h.Document.DeleteHandler)
	admin.POST("/documents/:id/access-links", h.Document.CreateAccessLinkHandler)
	admin.GET("/documents/:id/access-links", h.Document.ListAccessLinksHandler)

	admin.GET("/users", h.User.ListHandler)
	admin.POST("/users", h.User.CreateHandler)
	admin.PATCH("/users/:id/access", h.User.SetAccessHandler)
	admin.DELETE("/users/:id", h.User.DeleteHandler)

	s.router = router
	s.server.Handler = otelhttp.NewHandler(router, "docgate",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method
		}),
		otelhttp.WithFilter(traceable),
	)
}

// traceable keeps access tokens, which travel in the path, out of span attributes.
func traceable(r *http.Request) bool {
	return !strings.HasPrefix(r.URL.Path, "/v1/access/")
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	status, body := readiness(c.Request.Context(), s.pinger, s.logger)
	c.JSON(status, body)
}

// readiness pings the store within readinessTimeout. A nil pinger is never ready.
func readiness(ctx context.Context, pinger database.Pinger, logger *slog.Logger) (int, gin.H) {
	notReady := gin.H{
		"status":     "not_ready",
		"components": gin.H{"database": "error"},
	}
	if pinger == nil {
		return http.StatusServiceUnavailable, notReady
	}

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	if err := pinger.PingContext(ctx); err != nil {
		logger.Warn("readiness check failed", slog.Any("error", err))
		return http.StatusServiceUnavailable, notReady
	}

	return http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil && s.router != nil {
		s.server.Handler = s.router
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

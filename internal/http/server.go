// Package http provides the HTTP server hosting the identity API.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fs9io/identity/internal/config"
	identityHTTP "github.com/fs9io/identity/internal/identity/http"
	"github.com/fs9io/identity/internal/metrics"
)

// Server represents the HTTP server hosting the identity API.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The database handle is used by the
// readiness endpoint; routes are registered separately via SetupRouter.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and optional middleware inputs used to
// assemble the API router.
type RouterConfig struct {
	TokenHandler     *identityHTTP.TokenHandler
	NamespaceHandler *identityHTTP.NamespaceHandler
	UserHandler      *identityHTTP.UserHandler
	MetricsProvider  *metrics.Provider
}

// SetupRouter assembles the Gin router with middleware and all API routes.
func (s *Server) SetupRouter(cfg *config.Config, rc RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if rc.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			rc.MetricsProvider.MeterProvider(),
			cfg.MetricsNamespace,
		))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	// Health and readiness endpoints
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Token lifecycle endpoints. Validate, refresh, and revoke carry the token
	// itself as credential; they are unauthenticated but rate limited per IP.
	tokens := router.Group("/v1/tokens")
	if cfg.RateLimitTokenEnabled {
		tokens.Use(identityHTTP.TokenRateLimitMiddleware(
			cfg.RateLimitTokenRequestsPerSec,
			cfg.RateLimitTokenBurst,
			s.logger,
		))
	}
	tokens.POST("/validate", rc.TokenHandler.ValidateHandler)
	tokens.POST("/refresh", rc.TokenHandler.RefreshHandler)
	tokens.POST("/revoke", rc.TokenHandler.RevokeHandler)

	// Administrative endpoints: token issuance and directory CRUD.
	admin := router.Group("/v1", identityHTTP.AdminKeyMiddleware(cfg.AdminAPIKey, s.logger))
	admin.POST("/tokens", rc.TokenHandler.IssueHandler)

	admin.POST("/namespaces", rc.NamespaceHandler.CreateHandler)
	admin.GET("/namespaces", rc.NamespaceHandler.ListHandler)
	admin.GET("/namespaces/:name", rc.NamespaceHandler.GetHandler)
	admin.DELETE("/namespaces/:name", rc.NamespaceHandler.DeleteHandler)

	admin.POST("/users", rc.UserHandler.CreateHandler)
	admin.GET("/users", rc.UserHandler.ListHandler)
	admin.GET("/users/:id", rc.UserHandler.GetHandler)
	admin.GET("/users/by-name/:username", rc.UserHandler.GetByUsernameHandler)
	admin.PUT("/users/:id", rc.UserHandler.UpdateHandler)
	admin.DELETE("/users/:id", rc.UserHandler.DeleteHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking
// database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	status := http.StatusOK
	overall := "ready"

	if s.db == nil {
		components["database"] = "error"
		status = http.StatusServiceUnavailable
		overall = "not_ready"
	} else if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Error("readiness check failed", slog.String("error", err.Error()))
		components["database"] = "error"
		status = http.StatusServiceUnavailable
		overall = "not_ready"
	} else {
		components["database"] = "ok"
	}

	c.JSON(status, gin.H{"status": overall, "components": components})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter before Start")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

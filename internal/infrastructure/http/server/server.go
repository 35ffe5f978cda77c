// Package server provides the HTTP server the Chef Aid screens call
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/chefaid/chefaid/internal/infrastructure/config"
	"github.com/chefaid/chefaid/internal/infrastructure/http/handlers"
	"github.com/chefaid/chefaid/internal/infrastructure/http/middleware"
	"github.com/chefaid/chefaid/internal/infrastructure/monitoring"
	"github.com/chefaid/chefaid/internal/infrastructure/security"
	"github.com/chefaid/chefaid/internal/ports/inbound"
	apperrors "github.com/chefaid/chefaid/pkg/errors"
	"github.com/chefaid/chefaid/pkg/healthcheck"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the server routes to
type Dependencies struct {
	Middleware *middleware.Middleware
	Metrics    *monitoring.MetricsCollector
	Health     *healthcheck.HealthCheck
	Validation *security.ValidationService
	Kitchen    inbound.KitchenService
	Settings   inbound.SettingsService
}

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	deps   Dependencies
	engine *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config: cfg,
		logger: logger.Named("http-server"),
		deps:   deps,
	}

	engine, err := s.setupRouter()
	if err != nil {
		return nil, err
	}
	s.engine = engine

	s.server = &http.Server{
		Addr:           cfg.Address(),
		Handler:        engine,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return s, nil
}

func (s *Server) setupRouter() (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(s.config.Server.TrustedProxies); err != nil {
		return nil, err
	}

	mw := s.deps.Middleware
	r.Use(mw.Recovery())
	r.Use(mw.RequestID())
	r.Use(mw.Security())
	r.Use(mw.CORS())
	r.Use(mw.Tracing())
	if s.deps.Metrics != nil {
		r.Use(s.deps.Metrics.HTTPMiddleware())
	}
	r.Use(mw.Logger())

	// Probes and scrapes skip rate limiting
	if s.deps.Health != nil {
		r.GET("/health", s.deps.Health.Handler())
		r.GET("/health/live", s.deps.Health.LivenessHandler())
		r.GET("/health/ready", s.deps.Health.ReadinessHandler())
	}
	if s.deps.Metrics != nil && s.config.Monitoring.EnableMetrics {
		r.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))
	}

	api := r.Group("/api/v1")
	api.Use(mw.RateLimit())
	api.Use(mw.Timeout(s.config.Server.RequestTimeout))
	if s.deps.Validation != nil {
		api.Use(s.deps.Validation.ValidationMiddleware(s.config.Server.MaxBodyBytes))
	}
	api.Use(mw.ErrorHandler())
	s.setupAPIV1Routes(api)

	r.NoRoute(func(c *gin.Context) {
		appErr := apperrors.NewNotFoundError("Route")
		c.JSON(appErr.StatusCode(), apperrors.ToErrorResponse(appErr, c.GetString(middleware.RequestIDKey)))
	})

	return r, nil
}

// setupAPIV1Routes configures API v1 endpoints
func (s *Server) setupAPIV1Routes(r *gin.RouterGroup) {
	kh := handlers.NewKitchenHandlers(s.deps.Kitchen, s.logger)
	sh := handlers.NewSettingsHandlers(s.deps.Settings, s.logger)

	r.GET("/options", kh.Options)

	settings := r.Group("/settings")
	{
		settings.GET("", sh.Get)
		settings.PUT("", sh.Update)
		settings.DELETE("/api-key", sh.ClearAPIKey)
	}

	r.POST("/fridge-scan", kh.ScanFridge)
	r.POST("/recipes", kh.FindRecipe)
	r.POST("/chefs-choice", kh.SurpriseMe)
	r.POST("/meal-plans", kh.PlanMeals)
	r.POST("/meal-plans/calendar", kh.ExportCalendar)
	r.POST("/render", kh.Render)
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

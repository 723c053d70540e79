package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/cwa-forecast/internal/config"
	"github.com/vzahanych/cwa-forecast/internal/metrics"
	"github.com/vzahanych/cwa-forecast/internal/server/handlers"
	"github.com/vzahanych/cwa-forecast/internal/server/middlewares"
	"github.com/vzahanych/cwa-forecast/pkg/telemetry"
	"go.uber.org/zap"
)

type Server struct {
	engine     *gin.Engine
	server     *http.Server
	fetcher    handlers.Fetcher
	credential string
	metrics    *metrics.Metrics
	logger     *zap.Logger
	tele       *telemetry.Telemetry
}

func NewServer(cfg config.ServerConfig, fetcher handlers.Fetcher, credential string, m *metrics.Metrics, logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(logger))
	engine.Use(middlewares.MetricsMiddleware(m))
	engine.Use(middlewares.RecoveryMiddleware(logger, true))
	engine.Use(middlewares.TelemetryMiddleware(logger, tele))

	s := &Server{
		engine:     engine,
		fetcher:    fetcher,
		credential: credential,
		metrics:    m,
		logger:     logger,
		tele:       tele,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	return s
}

func (s *Server) setupRoutes() {
	forecastHandler := handlers.NewForecastHandler(s.fetcher, s.credential, s.logger)
	healthHandler := handlers.NewHealthHandler(s.logger, s.credential != "")

	// Business endpoints
	s.engine.GET("/forecast", forecastHandler.GetForecast)
	s.engine.GET("/regions", forecastHandler.GetRegions)

	// Health endpoints (Kubernetes friendly)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/health/live", healthHandler.Liveness)
	s.engine.GET("/health/ready", healthHandler.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

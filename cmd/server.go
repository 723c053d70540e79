package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/vzahanych/cwa-forecast/internal/forecast"
	"github.com/vzahanych/cwa-forecast/internal/metrics"
	"github.com/vzahanych/cwa-forecast/internal/server"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func serverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the forecast HTTP server",
		Long:  `Start the HTTP server that serves the temperature series and element table for a region.`,
		RunE:  runServer,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	log.Info("Starting forecast server",
		zap.String("config_path", configPath),
		zap.Bool("telemetry_enabled", tele.IsEnabled()),
		zap.Int("server_port", cfg.Server.Port),
		zap.Int("regions", len(cfg.Forecast.Regions)))

	if cfg.Forecast.APIKey == "" {
		log.Warn("No forecast API credential configured, /forecast will answer 503")
	}

	m := metrics.New()
	normalizer := forecast.NewNormalizer(cfg.Forecast, log.Logger, tele)
	normalizer.SetFetchObserver(m)

	srv := server.NewServer(cfg.Server, normalizer, cfg.Forecast.APIKey, m, log.Logger, tele)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Error("Server error", zap.Error(err))
		}
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		log.Info("Server shutdown complete")
		return nil
	}
}

package main

import (
	"log/slog"

	"pitchside/internal/api"
	"pitchside/internal/config"
	"pitchside/internal/metrics"
	"pitchside/internal/server"
)

func buildServer(cfg *config.Config, logger *slog.Logger) (*server.Server, error) {
	var m *metrics.Metrics
	var opts []api.ServiceOption
	if cfg.API.MetricsEnabled {
		m = metrics.New()
		opts = append(opts, api.WithObserver(m))
	}

	svc, err := api.NewAnalysisService(cfg, logger, opts...)
	if err != nil {
		return nil, err
	}
	return server.New(cfg, svc, m, logger), nil
}

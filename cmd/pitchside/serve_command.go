package main

import (
	"strings"

	"github.com/spf13/cobra"

	"pitchside/internal/api"
	"pitchside/internal/metrics"
	"pitchside/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if b := strings.TrimSpace(bind); b != "" {
				cfg.API.Bind = b
			}
			var m *metrics.Metrics
			var opts []api.ServiceOption
			if cfg.API.MetricsEnabled {
				m = metrics.New()
				opts = append(opts, api.WithObserver(m))
			}
			svc, _, logger, err := ctx.analysisService(opts...)
			if err != nil {
				return err
			}
			return server.New(cfg, svc, m, logger).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides api.bind)")
	return cmd
}

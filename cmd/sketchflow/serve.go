package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sketchflow/sketchflow/internal/host"
	"github.com/sketchflow/sketchflow/internal/observability"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP host",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(true)
			if err != nil {
				return err
			}
			defer rt.Close()

			shutdownTracing := observability.SetupTracing(observability.TraceConfig{
				ServiceName:    "sketchflow",
				ServiceVersion: version,
				Environment:    rt.cfg.Tracing.Environment,
				Endpoint:       rt.cfg.Tracing.Endpoint,
				SamplingRate:   rt.cfg.Tracing.SamplingRate,
				Insecure:       rt.cfg.Tracing.Insecure,
			})
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdownTracing(ctx)
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := host.NewServer(rt.agent, rt.service, rt.cfg.Host, rt.logger)
			return server.Run(ctx)
		},
	}
}

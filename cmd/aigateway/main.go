// Command aigateway serves the expense extraction, OCR and speech-to-text
// API in front of the configured inference providers.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/aigateway/api"
	"github.com/kbukum/aigateway/bootstrap"
	"github.com/kbukum/aigateway/config"
	"github.com/kbukum/aigateway/gateway"
	"github.com/kbukum/aigateway/observability"
	"github.com/kbukum/aigateway/server"
	"github.com/kbukum/aigateway/version"
)

// metricsNamespace prefixes every Prometheus series.
const metricsNamespace = "gateway"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile, configFile string

	cmd := &cobra.Command{
		Use:           "aigateway",
		Short:         "AI provider gateway for expense extraction, OCR and transcription",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []config.LoaderOption
			if envFile != "" {
				opts = append(opts, config.WithEnvFile(envFile))
			}
			if configFile != "" {
				opts = append(opts, config.WithConfigFile(configFile))
			}
			return run(cmd.Context(), opts...)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load (default: search for .env)")
	cmd.Flags().StringVar(&configFile, "config", "", "YAML config file (default: search for config.yml)")
	return cmd
}

func run(ctx context.Context, opts ...config.LoaderOption) error {
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	app.Logger.Info("Configuration loaded", map[string]interface{}{
		"gemini":    cfg.Gemini.String(),
		"ocr":       cfg.OCR.String(),
		"speech":    cfg.Speech.String(),
		"mock_mode": cfg.MockMode,
	})

	collector := observability.NewCollector(metricsNamespace)
	gwOpts := []gateway.Option{
		gateway.WithLogger(app.Logger.WithComponent(gateway.ComponentName)),
		gateway.WithCollector(collector),
	}

	if cfg.Observability.Enabled {
		tel, err := startTelemetry(ctx, cfg)
		if err != nil {
			return err
		}
		app.OnStop(tel.shutdownHooks()...)
		gwOpts = append(gwOpts, gateway.WithTracing(cfg.Name), gateway.WithMetrics(tel.metrics))
	}

	gw, err := gateway.New(&cfg.GatewayConfig, gwOpts...)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg.Server, app.Logger, server.WithObserver(collector))
	if err != nil {
		return err
	}
	api.NewHandler(gw, cfg.APIVersion).Register(srv.Engine())
	srv.RegisterDefaultEndpoints(cfg.Name, gw.ProviderHealth, collector.Registry())

	if err := app.RegisterComponent(gw); err != nil {
		return err
	}
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}
	return app.Run(ctx)
}

// Command aigatewayctl calls the inference providers directly from the
// terminal, without starting the HTTP server. It loads the same
// configuration as the server and honors mock mode.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/aigateway/bootstrap"
	"github.com/kbukum/aigateway/config"
	"github.com/kbukum/aigateway/expense"
	"github.com/kbukum/aigateway/gateway"
	"github.com/kbukum/aigateway/logger"
	"github.com/kbukum/aigateway/ocr"
	"github.com/kbukum/aigateway/transcription"
)

const binaryName = "aigatewayctl"

// client is the part of the gateway the commands use.
type client interface {
	Ask(ctx context.Context, question string) (string, error)
	ExtractExpenses(ctx context.Context, text string) (expense.Result, error)
	ExtractText(ctx context.Context, req ocr.Request) ([]ocr.FileResult, error)
	Transcribe(ctx context.Context, req transcription.Request) ([]transcription.FileResult, error)
}

// cli carries the global flags and the way commands reach a client.
type cli struct {
	out     io.Writer
	envFile string
	mock    bool
	asJSON  bool

	// with runs task against a started client. Tests replace it.
	with func(ctx context.Context, c *cli, task func(ctx context.Context, gw client) error) error
}

func main() {
	c := &cli{out: os.Stdout, with: withGateway}
	if err := c.rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           binaryName,
		Short:         "Call the expense, OCR and speech providers from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(c.out)
	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "dotenv file to load (default: search for .env)")
	root.PersistentFlags().BoolVar(&c.mock, "mock", false, "answer from built-in fixtures instead of calling upstream")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print results as JSON")

	root.AddCommand(c.askCmd())
	root.AddCommand(c.extractCmd())
	root.AddCommand(c.ocrCmd())
	root.AddCommand(c.transcribeCmd())
	root.AddCommand(c.versionCmd())
	return root
}

// withGateway loads configuration, starts a gateway inside a bootstrap
// app and runs task with it. Logs go to stderr so stdout stays parseable.
func withGateway(ctx context.Context, c *cli, task func(ctx context.Context, gw client) error) error {
	if c.mock {
		if err := os.Setenv("MOCK_AI_RESPONSE", "true"); err != nil {
			return err
		}
	}
	var opts []config.LoaderOption
	if c.envFile != "" {
		opts = append(opts, config.WithEnvFile(c.envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	logCfg := cfg.Logging
	logCfg.Output = "stderr"
	if logCfg.Level == "info" {
		logCfg.Level = "warn"
	}
	log := logger.New(&logCfg, binaryName)

	app, err := bootstrap.NewApp(cfg,
		bootstrap.WithLogger(log),
		bootstrap.WithSummaryWriter(io.Discard),
	)
	if err != nil {
		return err
	}
	gw, err := gateway.New(&cfg.GatewayConfig, gateway.WithLogger(log.WithComponent(gateway.ComponentName)))
	if err != nil {
		return err
	}
	if err := app.RegisterComponent(gw); err != nil {
		return err
	}
	return app.RunTask(ctx, func(ctx context.Context) error {
		return task(ctx, gw)
	})
}

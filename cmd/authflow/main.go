// Command authflow walks the welcome, login, signup and home screens in a
// terminal against a running authgate server.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/mmynk/authgate/internal/auth"
	"github.com/mmynk/authgate/internal/config"
	"github.com/mmynk/authgate/internal/flow"
	"github.com/mmynk/authgate/internal/identity"
	"github.com/mmynk/authgate/pkg/authrpc"
	"github.com/mmynk/authgate/pkg/logging"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.SetupWith(cfg.Level, cfg.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, http.DefaultClient, os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("authflow failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Client, httpClient *http.Client, in io.Reader, out io.Writer, logger *slog.Logger) error {
	provider := identity.NewRemoteProvider(authrpc.NewAuthServiceClient(httpClient, cfg.ServerURL), logger)
	gateway := auth.NewGateway(provider, logger)

	term := newTerminal(in, out)
	app := flow.NewApp(gateway, provider.Session(), term, term)

	if cfg.Token != "" {
		provider.SetToken(cfg.Token)
	}
	restoreCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	err := provider.Restore(restoreCtx)
	cancel()
	if err != nil {
		logger.Warn("Could not restore session", "error", err)
	}

	return term.loop(ctx, app, cfg)
}

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	apperrors "github.com/jmorneau/fizzlab/internal/errors"
	"github.com/jmorneau/fizzlab/internal/logging"
	"github.com/jmorneau/fizzlab/internal/server"
)

// runServe starts the HTTP API server and blocks until a shutdown signal.
func (a *Application) runServe(ctx context.Context) int {
	srvCfg, err := server.LoadConfig()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	// The --addr flag wins over FIZZLAB_ADDR.
	if a.Config.Addr != "" {
		srvCfg.Addr = a.Config.Addr
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := a.Logger
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, "server")
	}
	srv := server.New(srvCfg, logger)

	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

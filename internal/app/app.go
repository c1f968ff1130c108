// Package app wires the benchmark together: configuration parsing, logging
// setup, run-mode dispatch, and process lifecycle (timeout and signals).
package app

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/countbench/internal/bench"
	"github.com/agbru/countbench/internal/config"
	"github.com/agbru/countbench/internal/tui"
	"github.com/agbru/countbench/internal/ui"
)

// Application represents the countbench application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer) (*Application, error) {
	var cmdArgs []string
	if len(args) > 0 {
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	if a.Config.TUI {
		return a.runTUI(ctx)
	}

	return a.runBench(ctx, out)
}

// runTUI launches the interactive dashboard, with the benchmark running
// behind it.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, func(rep bench.Reporter) int {
		return a.executeBench(ctx, rep)
	})
}

package app

import (
	"context"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/countbench/internal/bench"
	"github.com/agbru/countbench/internal/cli"
	apperrors "github.com/agbru/countbench/internal/errors"
	"github.com/agbru/countbench/internal/logging"
	"github.com/agbru/countbench/internal/runner"
	"github.com/agbru/countbench/internal/server"
	"github.com/agbru/countbench/internal/sysmon"
)

// runBench orchestrates the line-oriented (non-TUI) benchmark mode.
func (a *Application) runBench(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	presenter := cli.NewPresenter(out, !a.Config.Quiet)
	defer presenter.Close()

	if !a.Config.Quiet {
		presenter.DisplayRunHeader(sysmon.Parallelism(), a.Config.Repeats,
			a.Config.Seed, a.Config.Bound, a.Config.Sizes, a.Config.Predicates)
	}

	start := time.Now()
	code := a.executeBench(ctx, presenter)

	if !a.Config.Quiet {
		presenter.DisplayFooter(time.Since(start), sysmon.SnapshotMemory())
	}
	return code
}

// executeBench runs the benchmark core with the given reporter, optionally
// fanning results into the Prometheus endpoint. Shared by the CLI and TUI
// modes.
func (a *Application) executeBench(ctx context.Context, rep bench.Reporter) int {
	log := logging.NewDefaultLogger()

	if a.Config.MetricsAddr != "" {
		metrics := server.NewMetrics()
		srv := server.New(a.Config.MetricsAddr, metrics, log)
		go func() {
			if err := srv.Start(); err != nil {
				log.Error("metrics endpoint failed", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		rep = bench.MultiReporter{rep, metrics}
	}

	r := runner.New(a.Config, log, sysmon.Parallelism())
	summary, err := r.Run(ctx, rep)

	log.Info("benchmark finished",
		logging.Int("configurations", summary.Configurations),
		logging.Int("measurements", summary.Measurements),
		logging.Int("mismatches", summary.Mismatches),
		logging.Int("unsupported", summary.Unsupported),
		logging.String("elapsed", summary.Elapsed.String()))

	if err != nil {
		if apperrors.IsContextError(err) {
			log.Warn("benchmark interrupted", logging.Err(err))
		} else {
			log.Error("benchmark failed", err)
		}
		return apperrors.ExitCodeForError(err)
	}
	return apperrors.ExitSuccess
}

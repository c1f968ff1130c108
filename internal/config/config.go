// Package config defines the benchmark configuration and its three sources,
// in priority order: CLI flags, environment variables, built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/countbench/internal/dataset"
	apperrors "github.com/agbru/countbench/internal/errors"
	"github.com/agbru/countbench/internal/predicate"
)

// EnvPrefix is prepended to every environment variable the application reads.
const EnvPrefix = "COUNTBENCH_"

// Default configuration values.
const (
	DefaultRepeats = 7
	DefaultTimeout = 10 * time.Minute
)

// DefaultSizes are the sequence lengths benchmarked when -sizes is not given.
var DefaultSizes = []int{100_000, 1_000_000, 5_000_000}

// AppConfig holds the complete benchmark configuration.
type AppConfig struct {
	// Sizes are the sequence lengths to benchmark, in run order.
	Sizes []int
	// Predicates are the predicate names to benchmark (see predicate.Names).
	Predicates []string
	// Repeats is the number of timed runs per measurement.
	Repeats int
	// Seed is the dataset generator seed; identical seeds give identical runs.
	Seed uint64
	// Bound is the inclusive upper bound of generated values.
	Bound int
	// MaxThreads caps the sweep's candidate thread counts (0 = no cap).
	MaxThreads int
	// Timeout bounds the whole benchmark run.
	Timeout time.Duration
	// MetricsAddr enables the Prometheus endpoint when non-empty.
	MetricsAddr string
	// Verbose enables debug logging.
	Verbose bool
	// Quiet suppresses the spinner and informational output.
	Quiet bool
	// NoColor disables ANSI colors regardless of terminal detection.
	NoColor bool
	// TUI enables the full-screen dashboard instead of line output.
	TUI bool
}

// ParseConfig parses the command line and environment into an AppConfig.
// Flag errors and usage output go to errWriter. The returned error is
// flag.ErrHelp when -h was requested, a ConfigError when validation fails.
func ParseConfig(args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		Sizes:      DefaultSizes,
		Predicates: predicate.Names(),
		Repeats:    DefaultRepeats,
		Seed:       dataset.DefaultSeed,
		Bound:      dataset.DefaultBound,
		Timeout:    DefaultTimeout,
	}

	fs := flag.NewFlagSet("countbench", flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var sizesArg, predicatesArg string
	fs.StringVar(&sizesArg, "sizes", "", "comma-separated sequence lengths (default \"100000,1000000,5000000\")")
	fs.StringVar(&predicatesArg, "predicates", "", "comma-separated predicate names (default all)")
	fs.IntVar(&cfg.Repeats, "repeats", cfg.Repeats, "timed runs per measurement (median reported)")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "dataset generator seed")
	fs.IntVar(&cfg.Bound, "bound", cfg.Bound, "inclusive upper bound of generated values")
	fs.IntVar(&cfg.MaxThreads, "max-threads", 0, "cap on swept thread counts (0 = no cap)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall run timeout")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "listen address for the Prometheus endpoint (empty = disabled)")
	fs.BoolVar(&cfg.Verbose, "v", false, "enable debug logging (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&cfg.Quiet, "q", false, "suppress spinner and informational output (shorthand)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "suppress spinner and informational output")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&cfg.TUI, "tui", false, "run the full-screen dashboard")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if sizesArg != "" {
		sizes, err := parseSizes(sizesArg)
		if err != nil {
			return cfg, err
		}
		cfg.Sizes = sizes
	}
	if predicatesArg != "" {
		cfg.Predicates = splitList(predicatesArg)
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the benchmark cannot run with.
func (c AppConfig) Validate() error {
	if len(c.Sizes) == 0 {
		return apperrors.NewConfigError("at least one sequence size is required")
	}
	for _, n := range c.Sizes {
		if n <= 0 {
			return apperrors.NewConfigError("sequence size must be positive, got %d", n)
		}
	}
	if len(c.Predicates) == 0 {
		return apperrors.NewConfigError("at least one predicate is required")
	}
	for _, name := range c.Predicates {
		if _, err := predicate.ByName(name); err != nil {
			return err
		}
	}
	if c.Repeats < 1 {
		return apperrors.NewConfigError("repeats must be at least 1, got %d", c.Repeats)
	}
	if c.Bound < 0 {
		return apperrors.NewConfigError("bound must be non-negative, got %d", c.Bound)
	}
	if c.MaxThreads < 0 {
		return apperrors.NewConfigError("max-threads must be non-negative, got %d", c.MaxThreads)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("-quiet and -tui are mutually exclusive")
	}
	return nil
}

// parseSizes parses a comma-separated list of positive integers.
func parseSizes(s string) ([]int, error) {
	parts := splitList(s)
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, apperrors.NewConfigError("invalid size %q: %v", p, err)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// splitList splits a comma-separated argument, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String renders the configuration for debug logging.
func (c AppConfig) String() string {
	return fmt.Sprintf("sizes=%v predicates=%v repeats=%d seed=%d bound=%d maxThreads=%d timeout=%s",
		c.Sizes, c.Predicates, c.Repeats, c.Seed, c.Bound, c.MaxThreads, c.Timeout)
}

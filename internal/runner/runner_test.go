package runner

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/agbru/countbench/internal/bench"
	"github.com/agbru/countbench/internal/config"
	"github.com/agbru/countbench/internal/logging"
)

// recordingReporter collects every event for inspection.
type recordingReporter struct {
	mu           sync.Mutex
	configs      []bench.RunConfig
	measurements []bench.Measurement
	bests        []bench.BestResult
}

func (r *recordingReporter) ConfigStarted(cfg bench.RunConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs = append(r.configs, cfg)
}

func (r *recordingReporter) Record(m bench.Measurement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.measurements = append(r.measurements, m)
}

func (r *recordingReporter) SweepCompleted(best bench.BestResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bests = append(r.bests, best)
}

func testConfig() config.AppConfig {
	return config.AppConfig{
		Sizes:      []int{2000},
		Predicates: []string{"even"},
		Repeats:    1,
		Seed:       123456,
		Bound:      1000,
		MaxThreads: 4,
		Timeout:    time.Minute,
	}
}

func TestRunner_SingleConfiguration(t *testing.T) {
	cfg := testConfig()
	r := New(cfg, logging.NopLogger{}, 4)
	rep := &recordingReporter{}

	summary, err := r.Run(context.Background(), rep)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Configurations != 1 {
		t.Errorf("Configurations = %d, want 1", summary.Configurations)
	}
	if len(rep.configs) != 1 {
		t.Fatalf("ConfigStarted called %d times, want 1", len(rep.configs))
	}
	if rep.configs[0].Size != 2000 || rep.configs[0].Predicate != "even" {
		t.Errorf("unexpected config %+v", rep.configs[0])
	}
	if len(rep.bests) != 1 {
		t.Errorf("SweepCompleted called %d times, want 1", len(rep.bests))
	}
	if summary.Mismatches != 0 {
		t.Errorf("Mismatches = %d, want 0", summary.Mismatches)
	}
	if summary.Elapsed <= 0 {
		t.Error("Elapsed should be positive")
	}

	// First measurement is always the sequential baseline.
	if len(rep.measurements) == 0 {
		t.Fatal("no measurements recorded")
	}
	first := rep.measurements[0]
	if first.Strategy != bench.StrategySequential || first.Threads != 1 || !first.Match {
		t.Errorf("unexpected baseline measurement %+v", first)
	}

	// Every non-unsupported measurement agrees with the baseline.
	for _, m := range rep.measurements {
		if m.Unsupported {
			continue
		}
		if !m.Match {
			t.Errorf("measurement %+v reported a mismatch", m)
		}
		if m.Count != first.Count {
			t.Errorf("measurement %+v count differs from baseline %d", m, first.Count)
		}
	}
}

func TestRunner_MatrixOrder(t *testing.T) {
	cfg := testConfig()
	cfg.Sizes = []int{500, 1000}
	cfg.Predicates = []string{"even", "heavy"}

	r := New(cfg, logging.NopLogger{}, 2)
	rep := &recordingReporter{}

	summary, err := r.Run(context.Background(), rep)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Configurations != 4 {
		t.Errorf("Configurations = %d, want 4", summary.Configurations)
	}

	want := []struct {
		size int
		pred string
	}{
		{500, "even"}, {500, "heavy"}, {1000, "even"}, {1000, "heavy"},
	}
	if len(rep.configs) != len(want) {
		t.Fatalf("ConfigStarted called %d times, want %d", len(rep.configs), len(want))
	}
	for i, w := range want {
		if rep.configs[i].Size != w.size || rep.configs[i].Predicate != w.pred {
			t.Errorf("config[%d] = %+v, want %+v", i, rep.configs[i], w)
		}
	}
}

func TestRunner_CandidatesRespectCap(t *testing.T) {
	cfg := testConfig()
	cfg.MaxThreads = 8

	r := New(cfg, logging.NopLogger{}, 64)
	for _, k := range r.Candidates() {
		if k > 8 {
			t.Errorf("candidate %d exceeds the cap", k)
		}
	}
}

func TestRunner_CandidatesUncapped(t *testing.T) {
	cfg := testConfig()
	cfg.MaxThreads = 0

	r := New(cfg, logging.NopLogger{}, 4)
	ks := r.Candidates()
	if len(ks) == 0 || ks[len(ks)-1] < 8 {
		t.Errorf("Candidates() = %v, want the uncapped list", ks)
	}
}

func TestRunner_CapBelowAllCandidatesKeepsOne(t *testing.T) {
	cfg := testConfig()
	cfg.MaxThreads = 1

	r := New(cfg, logging.NopLogger{}, 4)
	ks := r.Candidates()
	if len(ks) != 1 || ks[0] != 1 {
		t.Errorf("Candidates() = %v, want [1]", ks)
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(testConfig(), logging.NopLogger{}, 2)
	rep := &recordingReporter{}

	summary, err := r.Run(ctx, rep)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if summary.Configurations != 0 {
		t.Errorf("Configurations = %d, want 0 after pre-cancelled context", summary.Configurations)
	}
	if len(rep.configs) != 0 {
		t.Errorf("no configuration should start on a cancelled context")
	}
}

func TestRunner_UnknownPredicate(t *testing.T) {
	cfg := testConfig()
	cfg.Predicates = []string{"prime"}

	r := New(cfg, logging.NopLogger{}, 2)
	_, err := r.Run(context.Background(), bench.NopReporter{})
	if err == nil {
		t.Fatal("expected an error for an unknown predicate")
	}
}

func TestRunner_PolicyRowsPresent(t *testing.T) {
	if runtime.GOMAXPROCS(0) < 2 {
		t.Skip("parallel policies report unsupported on a single-proc runtime")
	}

	r := New(testConfig(), logging.NopLogger{}, 4)
	rep := &recordingReporter{}
	if _, err := r.Run(context.Background(), rep); err != nil {
		t.Fatalf("Run: %v", err)
	}

	seen := map[string]bool{}
	for _, m := range rep.measurements {
		seen[m.Strategy] = true
	}
	for _, want := range []string{"sequential", "partitioned", "pargo/reduce", "pargo/atomic"} {
		if !seen[want] {
			t.Errorf("no measurement recorded for strategy %q", want)
		}
	}
}

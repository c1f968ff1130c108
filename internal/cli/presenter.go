package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/countbench/internal/bench"
	"github.com/agbru/countbench/internal/format"
	"github.com/agbru/countbench/internal/sysmon"
	"github.com/agbru/countbench/internal/ui"
)

// Column widths of the measurement table. Manual padding is used instead of
// tabwriter so ANSI color codes do not skew the alignment.
const (
	strategyWidth = 12 // longest strategy name, "pargo/reduce"
	threadsWidth  = 7
	medianWidth   = 12
)

// Presenter renders benchmark progress as a colorized table, one row per
// measurement as it completes. It implements bench.Reporter and keeps a
// spinner alive between rows so long sweeps show signs of life.
type Presenter struct {
	mu   sync.Mutex
	out  io.Writer
	spin Spinner
}

// Verify interface compliance.
var _ bench.Reporter = (*Presenter)(nil)

// NewPresenter creates a presenter writing to out. With withSpinner set, a
// spinner animates on stderr between result rows; pass false for quiet mode
// and non-interactive output.
func NewPresenter(out io.Writer, withSpinner bool) *Presenter {
	p := &Presenter{out: out}
	if withSpinner {
		p.spin = newSpinner(spinner.WithWriter(os.Stderr))
		p.spin.Start()
	}
	return p
}

// Close stops the spinner. Call once after the last event.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.spin != nil {
		p.spin.Stop()
		p.spin = nil
	}
}

// pause suspends the spinner so printed rows are not interleaved with the
// animation. Callers must hold p.mu.
func (p *Presenter) pause() {
	if p.spin != nil {
		p.spin.Stop()
	}
}

func (p *Presenter) resume() {
	if p.spin != nil {
		p.spin.Start()
	}
}

// DisplayRunHeader prints the machine and run parameters once, before the
// first configuration.
func (p *Presenter) DisplayRunHeader(parallelism, repeats int, seed uint64, bound int, sizes []int, predicates []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pause()
	defer p.resume()

	fmt.Fprintf(p.out, "%sPredicate counting benchmark%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(p.out, "Hardware threads: %d\n", parallelism)
	fmt.Fprintf(p.out, "Repeats per timing: %d (median reported)\n", repeats)
	fmt.Fprintf(p.out, "Dataset: seed %d, values in [0, %s]\n", seed, format.FormatCount(bound))

	sizeLabels := make([]string, len(sizes))
	for i, n := range sizes {
		sizeLabels[i] = format.FormatCount(n)
	}
	fmt.Fprintf(p.out, "Sizes: %s\n", strings.Join(sizeLabels, ", "))
	fmt.Fprintf(p.out, "Predicates: %s\n", strings.Join(predicates, ", "))
}

// ConfigStarted prints the section header for one size/predicate pair.
func (p *Presenter) ConfigStarted(cfg bench.RunConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pause()
	defer p.resume()

	fmt.Fprintf(p.out, "\n--- n=%s  predicate=%s ---\n",
		format.FormatCount(cfg.Size), cfg.Predicate)
	fmt.Fprintf(p.out, "%sStrategy%s%s   %sThreads%s   %sMedian%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", strategyWidth-len("Strategy")),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", medianWidth-len("Median")),
		ui.ColorUnderline(), ui.ColorReset())

	if p.spin != nil {
		p.spin.UpdateSuffix(fmt.Sprintf(" n=%s %s", format.FormatCount(cfg.Size), cfg.Predicate))
	}
}

// Record prints one measurement row.
func (p *Presenter) Record(m bench.Measurement) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pause()
	defer p.resume()

	threads := "lib"
	if m.Threads > 0 {
		threads = strconv.Itoa(m.Threads)
	}

	var median, status string
	switch {
	case m.Unsupported:
		median = "-"
		status = fmt.Sprintf("%snot supported%s", ui.ColorYellow(), ui.ColorReset())
	case m.Match:
		median = format.FormatMillis(m.Duration)
		status = fmt.Sprintf("%s✅ match%s", ui.ColorGreen(), ui.ColorReset())
	default:
		median = format.FormatMillis(m.Duration)
		status = fmt.Sprintf("%s❌ MISMATCH%s", ui.ColorRed(), ui.ColorReset())
	}

	fmt.Fprintf(p.out, "%s%s%s%s   %s   %s%s%s%s   %s\n",
		ui.ColorCyan(), m.Strategy, ui.ColorReset(), padRight("", strategyWidth-len(m.Strategy)),
		padLeft(threads, threadsWidth),
		ui.ColorYellow(), median, ui.ColorReset(), padRight("", medianWidth-len(median)),
		status)
}

// SweepCompleted prints the winning thread count for the configuration.
func (p *Presenter) SweepCompleted(best bench.BestResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pause()
	defer p.resume()

	fmt.Fprintf(p.out, "%sBest: K=%d%s  median %s  (%.2fx of %d hardware threads)\n",
		ui.ColorBold(), best.Threads, ui.ColorReset(),
		format.FormatMillis(best.Median), best.Ratio, best.Parallelism)
}

// DisplayFooter prints the closing summary: wall-clock time and a heap
// snapshot, useful for spotting dataset-driven memory growth.
func (p *Presenter) DisplayFooter(elapsed time.Duration, snap sysmon.MemorySnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pause()
	defer p.resume()

	fmt.Fprintf(p.out, "\nTotal wall time: %s\n", format.FormatExecutionDuration(elapsed))
	fmt.Fprintf(p.out, "Memory Stats:\n")
	fmt.Fprintf(p.out, "  Heap in use:  %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(p.out, "  From OS:      %s\n", format.FormatBytes(snap.Sys))
	fmt.Fprintf(p.out, "  GC cycles:    %d\n", snap.NumGC)
}

// padRight returns s followed by spaces up to the given extra length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// padLeft right-aligns s within the given width.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return fmt.Sprintf("%*s", width, s)
}

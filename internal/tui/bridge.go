package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/countbench/internal/bench"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Reporter implements bench.Reporter by forwarding benchmark events to the
// dashboard as bubbletea messages. The benchmark goroutine never touches the
// model directly.
type Reporter struct {
	ref *programRef
}

// Verify interface compliance.
var _ bench.Reporter = (*Reporter)(nil)

// ConfigStarted forwards the configuration header to the dashboard.
func (t *Reporter) ConfigStarted(cfg bench.RunConfig) {
	t.ref.Send(ConfigStartedMsg{Config: cfg})
}

// Record forwards one measurement row to the dashboard.
func (t *Reporter) Record(m bench.Measurement) {
	t.ref.Send(MeasurementMsg{Measurement: m})
}

// SweepCompleted forwards the sweep winner to the dashboard.
func (t *Reporter) SweepCompleted(best bench.BestResult) {
	t.ref.Send(SweepDoneMsg{Best: best})
}

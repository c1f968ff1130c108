// Package tui renders the benchmark as a live dashboard: a scrolling result
// log on the left of the screen and CPU/memory sparklines below, updated
// while the sweeps run. The benchmark itself runs on a separate goroutine
// and talks to the dashboard exclusively through bubbletea messages.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/countbench/internal/bench"
	apperrors "github.com/agbru/countbench/internal/errors"
	"github.com/agbru/countbench/internal/format"
	"github.com/agbru/countbench/internal/sysmon"
)

// Messages exchanged between the benchmark goroutine and the dashboard.
type (
	// ConfigStartedMsg announces a new size/predicate configuration.
	ConfigStartedMsg struct{ Config bench.RunConfig }
	// MeasurementMsg carries one completed measurement row.
	MeasurementMsg struct{ Measurement bench.Measurement }
	// SweepDoneMsg carries the winner of a thread-count sweep.
	SweepDoneMsg struct{ Best bench.BestResult }
	// BenchCompleteMsg signals the end of the whole benchmark run.
	BenchCompleteMsg struct{ ExitCode int }
	// TickMsg drives periodic resource sampling.
	TickMsg time.Time
	// SysStatsMsg carries a system-wide CPU/memory sample.
	SysStatsMsg struct{ CPUPercent, MemPercent float64 }
	// ContextCancelledMsg reports cancellation of the parent context.
	ContextCancelledMsg struct{ Err error }
)

// sparklineHistory is the number of resource samples kept for rendering.
const sparklineHistory = 60

// Model is the root bubbletea model for the dashboard.
type Model struct {
	lines  []string
	scroll int

	cpu *RingBuffer
	mem *RingBuffer

	keymap KeyMap

	width  int
	height int

	startTime time.Time
	done      bool
	paused    bool
	exitCode  int

	ctx context.Context
	ref *programRef
	run func(rep bench.Reporter) int
}

// NewModel creates a dashboard model. run is invoked once on a background
// goroutine with a reporter wired to this model.
func NewModel(ctx context.Context, run func(rep bench.Reporter) int) Model {
	return Model{
		cpu:       NewRingBuffer(sparklineHistory),
		mem:       NewRingBuffer(sparklineHistory),
		keymap:    DefaultKeyMap(),
		startTime: time.Now(),
		exitCode:  apperrors.ExitSuccess,
		ctx:       ctx,
		ref:       &programRef{},
		run:       run,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startBenchCmd(m.ref, m.run),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ConfigStartedMsg:
		m.appendLine("")
		m.appendLine(titleStyle.Render(fmt.Sprintf("n=%s  predicate=%s",
			format.FormatCount(msg.Config.Size), msg.Config.Predicate)))
		return m, nil

	case MeasurementMsg:
		m.appendLine(formatMeasurement(msg.Measurement))
		return m, nil

	case SweepDoneMsg:
		m.appendLine(bestStyle.Render(fmt.Sprintf("best K=%d  %s  (%.2fx of %d threads)",
			msg.Best.Threads, format.FormatMillis(msg.Best.Median),
			msg.Best.Ratio, msg.Best.Parallelism)))
		return m, nil

	case BenchCompleteMsg:
		m.done = true
		m.exitCode = msg.ExitCode
		m.appendLine("")
		m.appendLine(logDimStyle.Render("benchmark finished, press q to exit"))
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case SysStatsMsg:
		m.cpu.Push(msg.CPUPercent)
		m.mem.Push(msg.MemPercent)
		return m, nil

	case ContextCancelledMsg:
		m.done = true
		if m.exitCode == apperrors.ExitSuccess {
			m.exitCode = apperrors.ExitCodeForError(msg.Err)
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Up):
		if m.scroll < len(m.lines)-1 {
			m.scroll++
		}
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.viewHeader()
	footer := m.viewFooter()
	charts := m.viewCharts()

	logHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - lipgloss.Height(charts)
	logs := m.viewLog(logHeight)

	return lipgloss.JoinVertical(lipgloss.Left, header, logs, charts, footer)
}

func (m Model) viewHeader() string {
	status := statusRunningStyle.Render("RUNNING")
	switch {
	case m.done:
		status = statusDoneStyle.Render("DONE")
	case m.paused:
		status = statusPausedStyle.Render("PAUSED")
	}
	elapsed := elapsedStyle.Render(time.Since(m.startTime).Truncate(time.Second).String())
	return headerStyle.Width(m.width).Render(
		fmt.Sprintf("countbench  %s  %s", elapsed, status))
}

// viewLog renders the most recent log lines that fit, offset by the scroll
// position.
func (m Model) viewLog(height int) string {
	inner := height - 2 // panel border
	if inner < 1 {
		inner = 1
	}
	end := len(m.lines) - m.scroll
	if end < 0 {
		end = 0
	}
	start := end - inner
	if start < 0 {
		start = 0
	}
	visible := make([]string, 0, inner)
	visible = append(visible, m.lines[start:end]...)
	return panelStyle.Width(m.width - 2).Height(inner).Render(
		lipgloss.JoinVertical(lipgloss.Left, visible...))
}

func (m Model) viewCharts() string {
	cpuLine := fmt.Sprintf("CPU %s %5.1f%%",
		cpuSparklineStyle.Render(RenderSparkline(m.cpu.Slice())), m.cpu.Last())
	memLine := fmt.Sprintf("MEM %s %5.1f%%",
		memSparklineStyle.Render(RenderSparkline(m.mem.Slice())), m.mem.Last())
	return panelStyle.Width(m.width - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, cpuLine, memLine))
}

func (m Model) viewFooter() string {
	hint := func(k, desc string) string {
		return footerKeyStyle.Render(k) + footerDescStyle.Render(" "+desc)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		hint("q", "quit"), "   ",
		hint("p", "pause"), "   ",
		hint("↑/↓", "scroll"))
}

func (m *Model) appendLine(s string) {
	m.lines = append(m.lines, s)
}

// formatMeasurement renders one result row for the log panel.
func formatMeasurement(meas bench.Measurement) string {
	threads := "lib"
	if meas.Threads > 0 {
		threads = strconv.Itoa(meas.Threads)
	}
	name := logStrategyStyle.Render(fmt.Sprintf("%-12s", meas.Strategy))
	switch {
	case meas.Unsupported:
		return fmt.Sprintf("  %s %4s  %s", name, threads,
			logDimStyle.Render("not supported"))
	case meas.Match:
		return fmt.Sprintf("  %s %4s  %12s  %s", name, threads,
			format.FormatMillis(meas.Duration), logSuccessStyle.Render("ok"))
	default:
		return fmt.Sprintf("  %s %4s  %12s  %s", name, threads,
			format.FormatMillis(meas.Duration), logErrorStyle.Render("MISMATCH"))
	}
}

// Run is the public entry point for the TUI mode. It creates the bubbletea
// program, runs the benchmark behind it, and returns the exit code.
func Run(ctx context.Context, runBench func(rep bench.Reporter) int) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, runBench)

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startBenchCmd returns a tea.Cmd that launches the benchmark run.
func startBenchCmd(ref *programRef, run func(rep bench.Reporter) int) tea.Cmd {
	return func() tea.Msg {
		exitCode := run(&Reporter{ref: ref})
		return BenchCompleteMsg{ExitCode: exitCode}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}

package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/countbench/internal/bench"
)

func TestProgramRef_Send_NilProgram(t *testing.T) {
	ref := &programRef{} // program is nil
	// Should not panic
	ref.Send(MeasurementMsg{})
}

func TestReporter_NilProgramIsSafe(t *testing.T) {
	rep := &Reporter{ref: &programRef{}}

	rep.ConfigStarted(bench.RunConfig{Size: 100, Predicate: "even"})
	rep.Record(bench.Measurement{Strategy: bench.StrategySequential, Threads: 1})
	rep.SweepCompleted(bench.BestResult{Threads: 2})
}

func TestModel_MeasurementMsgAppendsRow(t *testing.T) {
	m := NewModel(context.Background(), nil)

	updated, _ := m.Update(MeasurementMsg{Measurement: bench.Measurement{
		Strategy: bench.StrategyPartitioned,
		Threads:  8,
		Duration: 3 * time.Millisecond,
		Match:    true,
	}})

	model := updated.(Model)
	if len(model.lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(model.lines))
	}
	row := model.lines[0]
	for _, want := range []string{"partitioned", "8", "3.000 ms", "ok"} {
		if !strings.Contains(row, want) {
			t.Errorf("row missing %q: %q", want, row)
		}
	}
}

func TestModel_ConfigStartedMsgAddsHeader(t *testing.T) {
	m := NewModel(context.Background(), nil)

	updated, _ := m.Update(ConfigStartedMsg{Config: bench.RunConfig{
		Size:      1_000_000,
		Predicate: "heavy",
	}})

	model := updated.(Model)
	joined := strings.Join(model.lines, "\n")
	if !strings.Contains(joined, "1,000,000") || !strings.Contains(joined, "heavy") {
		t.Errorf("header missing configuration, got %q", joined)
	}
}

func TestModel_BenchCompleteSetsExitCode(t *testing.T) {
	m := NewModel(context.Background(), nil)

	updated, _ := m.Update(BenchCompleteMsg{ExitCode: 3})
	model := updated.(Model)

	if !model.done {
		t.Error("model should be done after BenchCompleteMsg")
	}
	if model.exitCode != 3 {
		t.Errorf("exitCode = %d, want 3", model.exitCode)
	}
}

func TestModel_SysStatsFeedSparklines(t *testing.T) {
	m := NewModel(context.Background(), nil)

	updated, _ := m.Update(SysStatsMsg{CPUPercent: 42, MemPercent: 61})
	model := updated.(Model)

	if model.cpu.Last() != 42 {
		t.Errorf("cpu.Last() = %v, want 42", model.cpu.Last())
	}
	if model.mem.Last() != 61 {
		t.Errorf("mem.Last() = %v, want 61", model.mem.Last())
	}
}

func TestModel_PauseTogglesOnKey(t *testing.T) {
	m := NewModel(context.Background(), nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	model := updated.(Model)
	if !model.paused {
		t.Error("model should be paused after 'p'")
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	model = updated.(Model)
	if model.paused {
		t.Error("model should resume after second 'p'")
	}
}

func TestModel_QuitKeyQuits(t *testing.T) {
	m := NewModel(context.Background(), nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if msg := cmd(); msg == nil {
		t.Error("quit command returned nil message")
	}
}

func TestFormatMeasurement_Unsupported(t *testing.T) {
	row := formatMeasurement(bench.Measurement{Strategy: "pargo/reduce", Unsupported: true})
	if !strings.Contains(row, "not supported") {
		t.Errorf("row missing unsupported marker: %q", row)
	}
	if strings.Contains(row, "ms") {
		t.Errorf("unsupported row should not show a duration: %q", row)
	}
}

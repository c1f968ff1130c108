package app

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	apperrors "github.com/agbru/countbench/internal/errors"
)

func TestNew_ParsesArgs(t *testing.T) {
	application, err := New([]string{"countbench", "-sizes", "1000", "-repeats", "2"}, io.Discard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(application.Config.Sizes) != 1 || application.Config.Sizes[0] != 1000 {
		t.Errorf("Sizes = %v, want [1000]", application.Config.Sizes)
	}
	if application.Config.Repeats != 2 {
		t.Errorf("Repeats = %d, want 2", application.Config.Repeats)
	}
}

func TestNew_ConfigError(t *testing.T) {
	_, err := New([]string{"countbench", "-repeats", "0"}, io.Discard)
	if err == nil {
		t.Fatal("expected a configuration error")
	}
	if code := apperrors.ExitCodeForError(err); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestNew_HelpError(t *testing.T) {
	_, err := New([]string{"countbench", "-h"}, io.Discard)
	if !IsHelpError(err) {
		t.Errorf("err = %v, want a help error", err)
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"-version"}, true},
		{[]string{"--version"}, true},
		{[]string{"-sizes", "1000"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.Contains(buf.String(), "countbench") {
		t.Errorf("version banner = %q", buf.String())
	}
}

func TestRun_QuietBenchmark(t *testing.T) {
	application, err := New([]string{
		"countbench",
		"-sizes", "500",
		"-predicates", "even",
		"-repeats", "1",
		"-max-threads", "2",
		"-quiet",
	}, io.Discard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out bytes.Buffer
	code := application.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	application, err := New([]string{
		"countbench",
		"-sizes", "500",
		"-predicates", "even",
		"-repeats", "1",
		"-quiet",
	}, io.Discard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := application.Run(ctx, io.Discard)
	if code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

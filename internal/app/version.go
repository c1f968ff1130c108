package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
)

// Version is the application version. Overridden at build time via
// -ldflags "-X github.com/agbru/countbench/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether the arguments request the version banner.
// Checked before flag parsing so -version works without a valid config.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "countbench %s (%s/%s, %s)\n", Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

//go:build !linux

package ui

import "os"

// isTerminal is a conservative fallback for platforms without the termios
// ioctl probe: assume a terminal unless TERM says otherwise.
func isTerminal(_ uintptr) bool {
	return os.Getenv("TERM") != "dumb"
}

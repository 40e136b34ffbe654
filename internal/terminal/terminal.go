// Package terminal discovers the geometry and shell environment recorded in
// an asciicast header, with documented fallbacks for non-interactive runs.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Fallbacks used when the real terminal or environment cannot be queried.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
	DefaultShell  = "/bin/bash"
	DefaultTerm   = "xterm-256color"
)

// Size returns the terminal geometry of the given descriptor, or the
// default 80x24 when the descriptor is not a terminal.
func Size(fd uintptr) (width, height int) {
	w, h, err := term.GetSize(int(fd))
	if err != nil || w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return w, h
}

// Shell returns $SHELL or the default shell path.
func Shell() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	return DefaultShell
}

// Term returns $TERM or the default terminal type.
func Term() string {
	if t := os.Getenv("TERM"); t != "" {
		return t
	}
	return DefaultTerm
}

// StdinIsPiped reports whether stdin carries piped data rather than an
// interactive terminal.
func StdinIsPiped() bool {
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

package terminal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize_NonTerminalFallsBack(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	w, h := Size(f.Fd())
	assert.Equal(t, DefaultWidth, w)
	assert.Equal(t, DefaultHeight, h)
}

func TestShell(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/zsh")
	assert.Equal(t, "/usr/bin/zsh", Shell())

	t.Setenv("SHELL", "")
	assert.Equal(t, DefaultShell, Shell())
}

func TestTerm(t *testing.T) {
	t.Setenv("TERM", "screen-256color")
	assert.Equal(t, "screen-256color", Term())

	t.Setenv("TERM", "")
	assert.Equal(t, DefaultTerm, Term())
}

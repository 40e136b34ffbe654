package interactive

import (
	"errors"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedReader replays a fixed list of lines, then a terminal error.
type scriptedReader struct {
	lines   []string
	errs    []error
	prompts []string
	final   error
}

func (r *scriptedReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", r.final
	}
	line := r.lines[0]
	err := error(nil)
	if len(r.errs) > 0 {
		err = r.errs[0]
		r.errs = r.errs[1:]
	}
	r.lines = r.lines[1:]
	return line, err
}

func TestCollect_TwoCommands(t *testing.T) {
	r := &scriptedReader{
		lines: []string{
			"echo hi", "hi", "",
			"pwd", "/home/user", "",
			"",
		},
		final: io.EOF,
	}

	commands, err := Collect(r, "$ ")
	require.NoError(t, err)
	require.Len(t, commands, 2)

	assert.Equal(t, "$ ", commands[0].Prompt)
	assert.Equal(t, "echo hi", commands[0].Input)
	assert.Equal(t, []string{"hi"}, commands[0].Outputs)

	assert.Equal(t, "pwd", commands[1].Input)
	assert.Equal(t, []string{"/home/user"}, commands[1].Outputs)
}

func TestCollect_PromptsAlternate(t *testing.T) {
	r := &scriptedReader{
		lines: []string{"ls", "README.md", "", ""},
		final: io.EOF,
	}

	_, err := Collect(r, "$ ")
	require.NoError(t, err)
	assert.Equal(t, []string{"$ ", OutputPrompt, OutputPrompt, "$ "}, r.prompts)
}

func TestCollect_EOFMidOutputsKeepsCommand(t *testing.T) {
	r := &scriptedReader{
		lines: []string{"echo hi", "hi"},
		final: io.EOF,
	}

	commands, err := Collect(r, "$ ")
	require.NoError(t, err)
	require.Len(t, commands, 1)
	assert.Equal(t, []string{"hi"}, commands[0].Outputs)
}

func TestCollect_InterruptEndsSession(t *testing.T) {
	r := &scriptedReader{final: readline.ErrInterrupt}

	commands, err := Collect(r, "$ ")
	require.NoError(t, err)
	assert.Empty(t, commands)
}

func TestCollect_BlankInputEndsSession(t *testing.T) {
	r := &scriptedReader{lines: []string{""}, final: io.EOF}

	commands, err := Collect(r, "$ ")
	require.NoError(t, err)
	assert.Empty(t, commands)
}

func TestCollect_PropagatesUnexpectedErrors(t *testing.T) {
	boom := errors.New("terminal exploded")
	r := &scriptedReader{final: boom}

	_, err := Collect(r, "$ ")
	require.ErrorIs(t, err, boom)
}

func TestCollect_CommandWithoutOutputs(t *testing.T) {
	r := &scriptedReader{lines: []string{"true", "", ""}, final: io.EOF}

	commands, err := Collect(r, "$ ")
	require.NoError(t, err)
	require.Len(t, commands, 1)
	assert.Equal(t, "true", commands[0].Input)
	assert.Empty(t, commands[0].Outputs)
}

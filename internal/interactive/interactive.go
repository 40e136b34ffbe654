// Package interactive collects command records from a line-oriented entry
// session: one input line per command, then its output lines until a blank
// line. A blank input line ends the session.
package interactive

import (
	"errors"
	"io"

	"github.com/chzyer/readline"

	"github.com/volks73/germ/internal/sequence"
)

// OutputPrompt marks output-line entry so it reads differently from the
// simulated shell prompt.
const OutputPrompt = "> "

// LineReader yields one line of user input per call. io.EOF ends the
// session.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Collect drives an entry session against the given reader and returns the
// commands entered so far. EOF and interrupt both end the session cleanly.
func Collect(r LineReader, inputPrompt string) ([]sequence.Command, error) {
	var commands []sequence.Command
	for {
		input, err := r.ReadLine(inputPrompt)
		if err != nil {
			if sessionEnded(err) {
				return commands, nil
			}
			return nil, err
		}
		if input == "" {
			return commands, nil
		}

		command := sequence.Command{Prompt: inputPrompt, Input: input}
		for {
			output, err := r.ReadLine(OutputPrompt)
			if err != nil {
				if sessionEnded(err) {
					return append(commands, command), nil
				}
				return nil, err
			}
			if output == "" {
				break
			}
			command.Outputs = append(command.Outputs, output)
		}
		commands = append(commands, command)
	}
}

func sessionEnded(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt)
}

// Readline is the terminal-backed LineReader used by the CLI.
type Readline struct {
	rl *readline.Instance
}

// NewReadline opens a readline instance on the controlling terminal.
func NewReadline() (*Readline, error) {
	rl, err := readline.New("")
	if err != nil {
		return nil, err
	}
	return &Readline{rl: rl}, nil
}

// ReadLine prompts for and returns one line.
func (r *Readline) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	return r.rl.Readline()
}

// Close releases the terminal.
func (r *Readline) Close() error {
	return r.rl.Close()
}

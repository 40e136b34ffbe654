// Package termsheets converts between germ sequences and the TermSheets
// JSON format, a flat list of input/output pairs without timing data.
package termsheets

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/volks73/germ/internal/sequence"
)

// Command is one TermSheets entry.
type Command struct {
	Input  string   `json:"input"`
	Output []string `json:"output"`
}

// FromSequence flattens a sequence into TermSheets commands, dropping
// timing and prompt information the format cannot carry.
func FromSequence(s *sequence.Sequence) []Command {
	commands := make([]Command, 0, len(s.Commands))
	for _, c := range s.Commands {
		commands = append(commands, Command{Input: c.Input, Output: c.Outputs})
	}
	return commands
}

// ToSequence wraps TermSheets commands in a sequence with default timings
// and the default prompt.
func ToSequence(commands []Command) *sequence.Sequence {
	s := sequence.New()
	for _, c := range commands {
		s.Add(sequence.NewCommand(c.Input, c.Output...))
	}
	return s
}

// Load parses a TermSheets document with strict field validation.
func Load(r io.Reader) ([]Command, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var commands []Command
	if err := dec.Decode(&commands); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty termsheets document")
		}
		return nil, fmt.Errorf("parse termsheets: %w", err)
	}
	return commands, nil
}

// Encode writes the commands as a compact TermSheets JSON document.
func Encode(w io.Writer, commands []Command) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(commands); err != nil {
		return fmt.Errorf("encode termsheets: %w", err)
	}
	return nil
}

// Package sequence provides the germ command-list format: the declarative
// (input, outputs) records and timing parameters a recording is synthesized
// from, with JSON and YAML load/save support.
package sequence

import (
	"errors"
	"fmt"
)

// Version is the germ sequence format version.
const Version = 1

// DefaultPrompt is the prompt glyph shown before each simulated command.
const DefaultPrompt = "$ "

// Timing defaults. Delay values are milliseconds unless noted otherwise.
const (
	DefaultBeginDelay = 0.0 // seconds, before the first prompt
	DefaultEndDelay   = 2.0 // seconds, hold on the final screen
	DefaultTypeStart  = 750 // pause after the prompt, before typing
	DefaultTypeChar   = 35  // pause between keystrokes
	DefaultTypeSubmit = 885 // pause between the last keystroke and the newline
	DefaultJitter     = 0   // keystroke jitter bound, disabled by default
	DefaultSpeed      = 1.0 // playback speed factor
)

// Timings holds the pacing parameters for synthesis. TypeStart, TypeChar,
// TypeSubmit, and Jitter are in milliseconds; Begin and End are in seconds.
type Timings struct {
	Begin      float64 `json:"begin" yaml:"begin"`
	End        float64 `json:"end" yaml:"end"`
	TypeStart  int     `json:"type_start" yaml:"type_start"`
	TypeChar   int     `json:"type_char" yaml:"type_char"`
	TypeSubmit int     `json:"type_submit" yaml:"type_submit"`
	Jitter     int     `json:"jitter,omitempty" yaml:"jitter,omitempty"`
	Speed      float64 `json:"speed" yaml:"speed"`
}

// DefaultTimings returns the documented default pacing.
func DefaultTimings() Timings {
	return Timings{
		Begin:      DefaultBeginDelay,
		End:        DefaultEndDelay,
		TypeStart:  DefaultTypeStart,
		TypeChar:   DefaultTypeChar,
		TypeSubmit: DefaultTypeSubmit,
		Jitter:     DefaultJitter,
		Speed:      DefaultSpeed,
	}
}

// Validate checks that the timings are usable for synthesis.
func (t *Timings) Validate() error {
	if t.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %g", t.Speed)
	}
	if t.Begin < 0 || t.End < 0 {
		return errors.New("begin and end delays must be non-negative")
	}
	if t.TypeStart < 0 || t.TypeChar < 0 || t.TypeSubmit < 0 {
		return errors.New("typing delays must be non-negative")
	}
	if t.Jitter < 0 {
		return errors.New("jitter must be non-negative")
	}
	return nil
}

// Command is one simulated shell interaction: the text the user is imagined
// to type and the lines printed after it runs. An optional comment line is
// shown above the prompt.
type Command struct {
	Comment string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Input   string   `json:"input" yaml:"input"`
	Outputs []string `json:"outputs" yaml:"outputs"`
}

// NewCommand builds a command with the default prompt.
func NewCommand(input string, outputs ...string) Command {
	return Command{Prompt: DefaultPrompt, Input: input, Outputs: outputs}
}

// Validate checks that the command can be simulated.
func (c *Command) Validate() error {
	if c.Input == "" {
		return errors.New("input must be non-empty")
	}
	return nil
}

// Sequence is a complete germ-format document: format version, pacing, and
// the ordered command list.
type Sequence struct {
	Version  int       `json:"version" yaml:"version"`
	Timings  Timings   `json:"timings" yaml:"timings"`
	Commands []Command `json:"commands" yaml:"commands"`
}

// New returns an empty sequence with default timings.
func New() *Sequence {
	return &Sequence{Version: Version, Timings: DefaultTimings()}
}

// FromCommands wraps a command list in a sequence with default timings.
func FromCommands(commands []Command) *Sequence {
	s := New()
	s.Commands = commands
	return s
}

// Add appends a command to the sequence.
func (s *Sequence) Add(c Command) *Sequence {
	s.Commands = append(s.Commands, c)
	return s
}

// Validate checks the whole document.
func (s *Sequence) Validate() error {
	if err := s.Timings.Validate(); err != nil {
		return fmt.Errorf("timings: %w", err)
	}
	if len(s.Commands) == 0 {
		return errors.New("commands must contain at least one command")
	}
	for i := range s.Commands {
		if err := s.Commands[i].Validate(); err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
	}
	return nil
}

// Package synth turns an ordered list of command records into a timed event
// stream: simulated keystrokes, an enter pause, and output bursts, advancing
// an explicit elapsed-time cursor as it goes. It is a pure function of its
// inputs; jitter comes from an injected seeded source so output is
// reproducible.
package synth

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/volks73/germ/internal/cast"
	"github.com/volks73/germ/internal/sequence"
)

const millisecondsPerSecond = 1000.0

// Options configures a synthesis call.
type Options struct {
	// Timings holds the pacing parameters.
	Timings sequence.Timings
	// Rand supplies keystroke jitter. Jitter is disabled when Rand is nil
	// or Timings.Jitter is zero.
	Rand *rand.Rand
	// Stdin mirrors each keystroke onto the input channel, like the record
	// functionality of asciinema.
	Stdin bool
}

// Generate synthesizes the event stream for the given commands starting at
// elapsed time t0 and returns the events plus the final cursor. No events
// are produced on error.
func Generate(commands []sequence.Command, t0 float64, opts Options) ([]cast.Event, float64, error) {
	if err := opts.Timings.Validate(); err != nil {
		return nil, t0, fmt.Errorf("timings: %w", err)
	}
	for i := range commands {
		if commands[i].Input == "" {
			return nil, t0, &EmptyInputError{Index: i}
		}
	}

	cursor := t0 + opts.Timings.Begin
	var events []cast.Event
	for i := range commands {
		events, cursor = appendCommand(events, cursor, &commands[i], opts)
	}
	if opts.Timings.End > 0 {
		cursor += opts.Timings.End
		events = append(events, cast.Event{Time: cursor, Kind: cast.Printed})
	}
	return events, cursor, nil
}

// appendCommand emits one command's prompt, keystrokes, newline, and output
// burst, returning the extended event slice and the advanced cursor.
// Offsets within a command are accumulated in milliseconds and converted to
// seconds once per event, so the default pacing lands on exact millisecond
// timestamps instead of drifting through repeated float addition.
func appendCommand(events []cast.Event, start float64, c *sequence.Command, opts Options) ([]cast.Event, float64) {
	if c.Comment != "" {
		events = append(events, cast.Event{Time: start, Kind: cast.Printed, Data: c.Comment + "\r\n"})
	}
	events = append(events, cast.Event{Time: start, Kind: cast.Printed, Data: prompt(c)})

	elapsed := float64(opts.Timings.TypeStart)
	for _, r := range c.Input {
		key := string(r)
		t := start + opts.seconds(elapsed)
		if opts.Stdin {
			events = append(events, cast.Event{Time: t, Kind: cast.Keypress, Data: key})
		}
		events = append(events, cast.Event{Time: t, Kind: cast.Printed, Data: key})
		elapsed += opts.charDelayMillis()
	}
	elapsed += float64(opts.Timings.TypeSubmit)

	cursor := start + opts.seconds(elapsed)
	events = append(events, cast.Event{Time: cursor, Kind: cast.Printed, Data: "\r\n"})
	for _, output := range c.Outputs {
		for _, line := range splitLines(output) {
			events = append(events, cast.Event{Time: cursor, Kind: cast.Printed, Data: line + "\r\n"})
		}
	}
	return events, cursor
}

// Run continues the given recording with the supplied commands. If the
// recording ends with a hold marker left by a previous synthesis, the marker
// is dropped and its predecessor's timestamp becomes the starting cursor, so
// chained sessions meet seamlessly instead of stacking markers at the seam.
// The recording is left untouched when synthesis fails.
func Run(c *cast.Cast, commands []sequence.Command, opts Options) error {
	t0, trim := seam(c)
	events, _, err := Generate(commands, t0, opts)
	if err != nil {
		return err
	}
	if trim {
		c.TrimTerminator()
	}
	for _, e := range events {
		if err := c.Append(e); err != nil {
			return err
		}
	}
	return nil
}

// seam returns the effective starting cursor for continuing the recording
// and whether a trailing hold marker has to be dropped first.
func seam(c *cast.Cast) (float64, bool) {
	n := len(c.Events)
	if n == 0 {
		return 0, false
	}
	last := c.Events[n-1]
	if last.Kind == cast.Printed && last.Data == "" {
		if n == 1 {
			return 0, true
		}
		return c.Events[n-2].Time, true
	}
	return last.Time, false
}

func prompt(c *sequence.Command) string {
	if c.Prompt == "" {
		return sequence.DefaultPrompt
	}
	return c.Prompt
}

// seconds converts a millisecond offset to seconds, applying the speed
// factor.
func (o Options) seconds(ms float64) float64 {
	return ms / millisecondsPerSecond / o.Timings.Speed
}

// charDelayMillis returns the pause after one keystroke in milliseconds.
// With jitter enabled the base delay is perturbed uniformly within ±Jitter
// milliseconds, clamped so the delay never goes negative and timestamps
// never regress.
func (o Options) charDelayMillis() float64 {
	ms := float64(o.Timings.TypeChar)
	if o.Rand != nil && o.Timings.Jitter > 0 {
		ms += (o.Rand.Float64()*2 - 1) * float64(o.Timings.Jitter)
		if ms < 0 {
			ms = 0
		}
	}
	return ms
}

// splitLines breaks an output entry into terminator-free lines. An entry
// with embedded newlines becomes several burst lines, mirroring how a real
// process's multi-line write is displayed.
func splitLines(output string) []string {
	return strings.Split(strings.TrimSuffix(output, "\n"), "\n")
}

// Package cast implements the asciicast v2 timeline: header metadata plus an
// ordered event stream with non-decreasing timestamps.
package cast

// Version is the asciicast file format version this package produces.
const Version = 2

// EventKind tags the channel an event belongs to.
type EventKind string

const (
	// Printed marks data written to the terminal (the "o" channel).
	Printed EventKind = "o"
	// Keypress marks data read from stdin (the "i" channel).
	Keypress EventKind = "i"
)

// Event is one timestamped terminal I/O occurrence. Time is the offset in
// seconds from the start of the recording.
type Event struct {
	Time float64
	Kind EventKind
	Data string
}

// Env holds the environment values recorded in the header.
type Env struct {
	Shell string `json:"SHELL"`
	Term  string `json:"TERM"`
}

// Theme describes the terminal color theme for playback.
type Theme struct {
	Foreground string `json:"fg"`
	Background string `json:"bg"`
	Palette    string `json:"palette"`
}

// Header is the first line of an asciicast file.
type Header struct {
	Version       int     `json:"version"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Timestamp     int64   `json:"timestamp,omitempty"`
	Duration      float64 `json:"duration,omitempty"`
	IdleTimeLimit float64 `json:"idle_time_limit,omitempty"`
	Command       string  `json:"command,omitempty"`
	Title         string  `json:"title,omitempty"`
	Env           Env     `json:"env"`
	Theme         *Theme  `json:"theme,omitempty"`
}

// Cast is a complete recording: a header plus an ordered sequence of events.
// Events are only ever appended at the tail, with non-decreasing timestamps.
type Cast struct {
	Header Header
	Events []Event
}

// New returns an empty recording with the given header.
func New(header Header) *Cast {
	return &Cast{Header: header}
}

// LastTime returns the timestamp of the most recently appended event, or 0
// if the recording has no events.
func (c *Cast) LastTime() float64 {
	if len(c.Events) == 0 {
		return 0
	}
	return c.Events[len(c.Events)-1].Time
}

// Append pushes an event onto the tail. The timestamp must not regress; a
// regressing timestamp indicates a synthesis bug and returns an
// *OrderingError rather than corrupting the recording.
func (c *Cast) Append(e Event) error {
	if last := c.LastTime(); e.Time < last {
		return &OrderingError{Last: last, Time: e.Time}
	}
	c.Events = append(c.Events, e)
	return nil
}

// TrimTerminator removes a trailing empty-data printed event, if present,
// and reports whether one was removed. A chained recording ends with such a
// hold marker; continuing it must replace the marker instead of stacking a
// second one at the seam.
func (c *Cast) TrimTerminator() bool {
	n := len(c.Events)
	if n == 0 {
		return false
	}
	last := c.Events[n-1]
	if last.Kind != Printed || last.Data != "" {
		return false
	}
	c.Events = c.Events[:n-1]
	return true
}

// Merge adopts a prior recording as the base for continuation: its header
// replaces the freshly constructed one (a continued session must present as
// one session), its events become the tail to append after, and the returned
// cursor is its final timestamp (0 when it has no events).
//
// When both headers carry explicit, disagreeing terminal geometry the merge
// is ambiguous and fails with *HeaderMismatchError; the caller must resolve
// the geometry before merging.
func (c *Cast) Merge(prior *Cast) (float64, error) {
	if prior == nil {
		return c.LastTime(), nil
	}
	if conflicts(c.Header.Width, prior.Header.Width) || conflicts(c.Header.Height, prior.Header.Height) {
		return 0, &HeaderMismatchError{
			Width:       c.Header.Width,
			Height:      c.Header.Height,
			PriorWidth:  prior.Header.Width,
			PriorHeight: prior.Header.Height,
		}
	}
	c.Header = prior.Header
	c.Events = append(c.Events, prior.Events...)
	return c.LastTime(), nil
}

// conflicts reports whether two geometry values are both present (non-zero)
// and disagree.
func conflicts(a, b int) bool {
	return a != 0 && b != 0 && a != b
}

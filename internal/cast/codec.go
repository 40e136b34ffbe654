package cast

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
)

// MarshalJSON encodes the event as the asciicast 3-element array
// [time, kind, data]. The timestamp is truncated to millisecond precision,
// matching the on-disk format players expect.
func (e Event) MarshalJSON() ([]byte, error) {
	tuple := []interface{}{
		math.Trunc(e.Time*1000) / 1000,
		string(e.Kind),
		e.Data,
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tuple); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes the 3-element array form of an event.
func (e *Event) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 3 {
		return fmt.Errorf("event must have 3 elements, got %d", len(tuple))
	}
	var t float64
	if err := json.Unmarshal(tuple[0], &t); err != nil {
		return fmt.Errorf("event timestamp: %w", err)
	}
	var kind string
	if err := json.Unmarshal(tuple[1], &kind); err != nil {
		return fmt.Errorf("event kind: %w", err)
	}
	var payload string
	if err := json.Unmarshal(tuple[2], &payload); err != nil {
		return fmt.Errorf("event data: %w", err)
	}
	e.Time = t
	e.Kind = EventKind(kind)
	e.Data = payload
	return nil
}

// Encode writes the recording in asciicast v2 line-delimited form: one JSON
// header line followed by one JSON event line per event.
func (c *Cast) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c.Header); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	for i, e := range c.Events {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encode event %d: %w", i, err)
		}
	}
	return nil
}

// Decode parses a previously produced asciicast recording so it can serve
// as the base of a continued session. Blank lines are skipped; events are
// appended through Append so a corrupt out-of-order file is rejected.
func Decode(r io.Reader) (*Cast, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var c *Cast
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if c == nil {
			var header Header
			if err := json.Unmarshal([]byte(text), &header); err != nil {
				return nil, fmt.Errorf("line %d: parse header: %w", line, err)
			}
			if header.Version != Version {
				return nil, fmt.Errorf("line %d: unsupported asciicast version %d", line, header.Version)
			}
			c = New(header)
			continue
		}
		var e Event
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			return nil, fmt.Errorf("line %d: parse event: %w", line, err)
		}
		if err := c.Append(e); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("empty recording")
	}
	return c, nil
}

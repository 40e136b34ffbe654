package sequence

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the serialization of a sequence document.
type Format int

const (
	// JSON is the germ wire format, one compact document.
	JSON Format = iota
	// YAML is the human-editable variant.
	YAML
)

// FormatForPath picks a format from a file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Load parses a sequence with strict field validation; unknown fields are
// rejected so a typoed document fails loudly instead of silently dropping
// pacing or output lines.
func Load(r io.Reader, format Format) (*Sequence, error) {
	var s Sequence
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("empty sequence document")
			}
			return nil, fmt.Errorf("parse sequence: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("empty sequence document")
			}
			return nil, fmt.Errorf("parse sequence: %w", err)
		}
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sequence: %w", err)
	}
	return &s, nil
}

// LoadFile loads a sequence from a path, choosing the format by extension.
func LoadFile(path string) (*Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sequence file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f, FormatForPath(path))
}

// Encode writes the sequence in the requested format. JSON output is a
// single compact line, matching the pipe-friendly germ wire format.
func (s *Sequence) Encode(w io.Writer, format Format) error {
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode sequence: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode sequence: %w", err)
		}
		return nil
	}
}

package synth

import "fmt"

// EmptyInputError reports a command record with no characters to type.
// Synthesis fails as a whole rather than skipping the record, since a
// silently skipped command would shift every later timestamp.
type EmptyInputError struct {
	Index int // zero-based position of the offending command
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("command %d has an empty input, nothing to type", e.Index)
}

package cast

import "fmt"

// OrderingError reports an attempt to append an event whose timestamp
// precedes the tail of the recording. It signals a synthesis bug, not a
// user error.
type OrderingError struct {
	Last float64 // timestamp of the current tail event
	Time float64 // timestamp of the rejected event
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("event timestamp %.3f precedes tail timestamp %.3f", e.Time, e.Last)
}

// HeaderMismatchError reports a merge between recordings whose headers carry
// explicit but disagreeing terminal geometry.
type HeaderMismatchError struct {
	Width       int
	Height      int
	PriorWidth  int
	PriorHeight int
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf("terminal geometry %dx%d conflicts with prior recording geometry %dx%d",
		e.Width, e.Height, e.PriorWidth, e.PriorHeight)
}

package anchor

import (
	"errors"
	"fmt"
)

// ErrEmptyQuote is returned when a quote selector has no exact text.
// An empty quote is ambiguous between "select nothing" and "select
// everything", so it is always rejected rather than guessed at.
var ErrEmptyQuote = errors.New("quote selector has no exact text")

// RangeError reports a TextPosition with invalid bounds: a negative index,
// start >= end, or an end past the referent buffer.
type RangeError struct {
	Start int
	End   int

	// BufferLen is the length of the referent buffer when the position was
	// rejected for extending past it; zero otherwise.
	BufferLen int
}

func (rangeErr *RangeError) Error() string {
	if rangeErr.BufferLen > 0 {
		return fmt.Sprintf("text position [%d,%d) extends past end of buffer (length %d)",
			rangeErr.Start, rangeErr.End, rangeErr.BufferLen)
	}
	return fmt.Sprintf("invalid text position [%d,%d): start must be non-negative and less than end",
		rangeErr.Start, rangeErr.End)
}

// TextSelectionError reports a quote selector that matched nothing in the
// buffer it was resolved against.
type TextSelectionError struct {
	Quote string
}

func (selectionErr *TextSelectionError) Error() string {
	return fmt.Sprintf("text %q not found in buffer", selectionErr.Quote)
}

// SelectionError reports a selection expression element of an unrecognized
// shape.
type SelectionError struct {
	Value any
}

func (selectionErr *SelectionError) Error() string {
	return fmt.Sprintf("unrecognized selection shape: %v (type %T)", selectionErr.Value, selectionErr.Value)
}

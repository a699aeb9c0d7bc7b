// Package anchor resolves references to passages of opinion text — exact
// quotes, context-qualified quotes, and explicit offset ranges — into
// canonical sets of character positions over an immutable text buffer, and
// renders those sets back to quoted text with omission markers.
//
// Positions are byte offsets into a UTF-8 buffer. For the ASCII opinion
// text published by the reporter APIs these are identical to character
// offsets.
package anchor

import "fmt"

// TextPosition is a half-open range [Start, End) of offsets into a text
// buffer. Positions are meaningless without a referent buffer; validation
// against buffer length happens at resolution time.
type TextPosition struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewTextPosition constructs a validated TextPosition. It fails with a
// *RangeError when either index is negative or start >= end.
func NewTextPosition(start, end int) (TextPosition, error) {
	if start < 0 || end < 0 || start >= end {
		return TextPosition{}, &RangeError{Start: start, End: end}
	}
	return TextPosition{Start: start, End: end}, nil
}

// Len returns the number of offsets covered by the position.
func (position TextPosition) Len() int {
	return position.End - position.Start
}

// Overlaps reports whether position and other share at least one offset.
// Positions that only touch at a boundary do not overlap.
func (position TextPosition) Overlaps(other TextPosition) bool {
	return position.Start < other.End && other.Start < position.End
}

// Contains reports whether other lies entirely within position.
func (position TextPosition) Contains(other TextPosition) bool {
	return position.Start <= other.Start && other.End <= position.End
}

// Compare orders positions by start, then by end. It returns a negative
// number when position sorts before other, zero when equal, and a positive
// number otherwise.
func (position TextPosition) Compare(other TextPosition) int {
	if position.Start != other.Start {
		return position.Start - other.Start
	}
	return position.End - other.End
}

// CombineWithinGap merges position with other when they overlap, touch, or
// are separated by at most maxGap offsets. The second return value is false
// when the gap between them is too wide to merge.
func (position TextPosition) CombineWithinGap(other TextPosition, maxGap int) (TextPosition, bool) {
	first, second := position, other
	if first.Compare(second) > 0 {
		first, second = second, first
	}
	if second.Start-first.End > maxGap {
		return TextPosition{}, false
	}
	merged := TextPosition{Start: first.Start, End: first.End}
	if second.End > merged.End {
		merged.End = second.End
	}
	return merged, true
}

func (position TextPosition) String() string {
	return fmt.Sprintf("[%d,%d)", position.Start, position.End)
}

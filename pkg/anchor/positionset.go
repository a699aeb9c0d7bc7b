package anchor

import (
	"sort"
	"strings"
)

// TextPositionSet is a sorted, non-overlapping set of TextPositions over one
// buffer. Sets are value types produced fresh by resolution; operations
// return new sets rather than mutating a receiver.
type TextPositionSet struct {
	positions []TextPosition
}

// NewTextPositionSet builds a normalized set from the given positions,
// sorting them and merging any that overlap or touch.
func NewTextPositionSet(positions ...TextPosition) TextPositionSet {
	return TextPositionSet{positions: normalizePositions(positions, 0)}
}

// normalizePositions sorts positions and merges members whose gap is at most
// mergeDistance. Overlapping and touching members always merge.
func normalizePositions(positions []TextPosition, mergeDistance int) []TextPosition {
	if len(positions) == 0 {
		return nil
	}

	sorted := make([]TextPosition, len(positions))
	copy(sorted, positions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Compare(sorted[j]) < 0
	})

	merged := []TextPosition{sorted[0]}
	for _, position := range sorted[1:] {
		last := &merged[len(merged)-1]
		if combined, ok := last.CombineWithinGap(position, mergeDistance); ok {
			*last = combined
			continue
		}
		merged = append(merged, position)
	}
	return merged
}

// Positions returns the members of the set in start order. The returned
// slice is a copy; the set itself is never exposed for mutation.
func (set TextPositionSet) Positions() []TextPosition {
	positions := make([]TextPosition, len(set.positions))
	copy(positions, set.positions)
	return positions
}

// Len returns the number of positions in the set.
func (set TextPositionSet) Len() int {
	return len(set.positions)
}

// IsEmpty reports whether the set selects nothing.
func (set TextPositionSet) IsEmpty() bool {
	return len(set.positions) == 0
}

// Union merges two sets into a new normalized set. Neither operand is
// modified, and unioning a set with itself returns an equal set.
func (set TextPositionSet) Union(other TextPositionSet) TextPositionSet {
	combined := make([]TextPosition, 0, len(set.positions)+len(other.positions))
	combined = append(combined, set.positions...)
	combined = append(combined, other.positions...)
	return TextPositionSet{positions: normalizePositions(combined, 0)}
}

// AsTextSequence extracts the selected substrings of buffer in start order,
// inserting an omission marker wherever unselected text separates two
// members, precedes the first member, or follows the last. Positions past
// the end of buffer are clamped. The sequence is rebuilt fresh on each call.
func (set TextPositionSet) AsTextSequence(buffer string) TextSequence {
	var sequence TextSequence
	cursor := 0
	for _, position := range set.positions {
		start, end := position.Start, position.End
		if start >= len(buffer) {
			break
		}
		if end > len(buffer) {
			end = len(buffer)
		}
		if start > cursor {
			sequence = append(sequence, TextPassage{Omitted: true})
		}
		sequence = append(sequence, TextPassage{Text: buffer[start:end]})
		cursor = end
	}
	if len(sequence) > 0 && cursor < len(buffer) {
		sequence = append(sequence, TextPassage{Omitted: true})
	}
	return sequence
}

func (set TextPositionSet) String() string {
	parts := make([]string, len(set.positions))
	for i, position := range set.positions {
		parts[i] = position.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

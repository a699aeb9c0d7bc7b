package anchor

import "strings"

// Ellipsis is the marker rendered in place of omitted text between selected
// passages.
const Ellipsis = "…"

// TextPassage is one element of a TextSequence: either a selected substring
// of the source buffer, or a marker standing in for an omitted gap.
type TextPassage struct {
	Text    string
	Omitted bool
}

// TextSequence is an ordered rendering of a TextPositionSet: the selected
// substrings in start order with omission markers for the gaps between them.
type TextSequence []TextPassage

// String concatenates the sequence into the canonical quoted-passage form,
// rendering each omitted gap as an ellipsis, e.g.
// "…method of operation…or procedure…".
func (sequence TextSequence) String() string {
	var builder strings.Builder
	for _, passage := range sequence {
		if passage.Omitted {
			builder.WriteString(Ellipsis)
			continue
		}
		builder.WriteString(passage.Text)
	}
	return builder.String()
}

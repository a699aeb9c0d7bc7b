package anchor

import "regexp"

// TextQuoteSelector references a passage by its exact text, optionally
// disambiguated by the text immediately before and after it. Selectors are
// stateless values: create, resolve, discard.
type TextQuoteSelector struct {
	Exact  string `json:"exact"`
	Prefix string `json:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty"`
}

// FindAll returns the positions of every occurrence of the quote in buffer,
// not just the first. With no prefix or suffix, every occurrence of Exact
// matches; the context anchors exist to narrow repeated occurrences.
//
// Matching is case-insensitive to tolerate OCR case drift in historical
// reporters. An empty Exact fails with ErrEmptyQuote, and zero matches fail
// with a *TextSelectionError naming the quote.
func (selector TextQuoteSelector) FindAll(buffer string) ([]TextPosition, error) {
	if selector.Exact == "" {
		return nil, ErrEmptyQuote
	}

	matches := selector.pattern().FindAllStringSubmatchIndex(buffer, -1)
	if len(matches) == 0 {
		return nil, &TextSelectionError{Quote: selector.Exact}
	}

	positions := make([]TextPosition, 0, len(matches))
	for _, match := range matches {
		// Indices 2 and 3 bound the capture group holding Exact, so the
		// prefix and suffix anchor the match without being selected.
		positions = append(positions, TextPosition{Start: match[2], End: match[3]})
	}
	return positions, nil
}

// pattern builds the case-insensitive match pattern, anchoring the quoted
// text with the prefix immediately before and the suffix immediately after.
func (selector TextQuoteSelector) pattern() *regexp.Regexp {
	expr := "(?i)" +
		regexp.QuoteMeta(selector.Prefix) +
		"(" + regexp.QuoteMeta(selector.Exact) + ")" +
		regexp.QuoteMeta(selector.Suffix)
	return regexp.MustCompile(expr)
}

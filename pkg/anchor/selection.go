package anchor

// Selection is a caller-supplied description of what text to locate in a
// buffer. It is a closed sum over the accepted selection shapes:
//
//   - SelectAll / SelectNone — the whole buffer, or nothing
//   - TextPosition — a literal offset range
//   - TextQuoteSelector — a quote with optional context anchors
//   - Quote — a bare string treated as an exact quote
//   - SelectionSequence — an ordered mixture of the above
//
// Dynamically typed values (from JSON or the CLI) are converted to a
// Selection with NewSelection.
type Selection interface {
	resolve(buffer string) ([]TextPosition, error)
}

// SelectAll selects the entire buffer as a single position [0, len(buffer)).
type SelectAll struct{}

func (SelectAll) resolve(buffer string) ([]TextPosition, error) {
	if len(buffer) == 0 {
		return nil, nil
	}
	return []TextPosition{{Start: 0, End: len(buffer)}}, nil
}

// SelectNone selects nothing.
type SelectNone struct{}

func (SelectNone) resolve(string) ([]TextPosition, error) {
	return nil, nil
}

// Quote is a bare string used as the exact text of an implicit
// TextQuoteSelector with no prefix or suffix.
type Quote string

func (quote Quote) resolve(buffer string) ([]TextPosition, error) {
	return TextQuoteSelector{Exact: string(quote)}.FindAll(buffer)
}

func (selector TextQuoteSelector) resolve(buffer string) ([]TextPosition, error) {
	return selector.FindAll(buffer)
}

// A literal TextPosition selects itself. The range must be valid and must
// not extend past the buffer: out-of-range positions are rejected with a
// *RangeError, never clamped.
func (position TextPosition) resolve(buffer string) ([]TextPosition, error) {
	if _, err := NewTextPosition(position.Start, position.End); err != nil {
		return nil, err
	}
	if position.End > len(buffer) {
		return nil, &RangeError{Start: position.Start, End: position.End, BufferLen: len(buffer)}
	}
	return []TextPosition{position}, nil
}

// SelectionSequence resolves each element independently and unions every
// resulting position into one set. A nil element fails the whole sequence
// with a *SelectionError; nothing is partially resolved.
type SelectionSequence []Selection

func (sequence SelectionSequence) resolve(buffer string) ([]TextPosition, error) {
	var all []TextPosition
	for _, element := range sequence {
		if element == nil {
			return nil, &SelectionError{Value: element}
		}
		positions, err := element.resolve(buffer)
		if err != nil {
			return nil, err
		}
		all = append(all, positions...)
	}
	return all, nil
}

// FromSelection resolves a selection expression against buffer into one
// normalized TextPositionSet.
func FromSelection(buffer string, selection Selection) (TextPositionSet, error) {
	if selection == nil {
		return TextPositionSet{}, &SelectionError{Value: selection}
	}
	positions, err := selection.resolve(buffer)
	if err != nil {
		return TextPositionSet{}, err
	}
	return NewTextPositionSet(positions...), nil
}

// NewSelection converts a dynamically typed selection value into a
// Selection. Accepted shapes: bool, string, [2]int, a two-element []int,
// TextPosition, TextQuoteSelector, any Selection, and slices mixing these.
// Values produced by decoding JSON also convert: a two-number array is a
// position, an object with "exact"/"prefix"/"suffix" keys is a quote
// selector, and any other array is a sequence. Anything else fails with a
// *SelectionError.
func NewSelection(value any) (Selection, error) {
	switch v := value.(type) {
	case Selection:
		return v, nil
	case bool:
		if v {
			return SelectAll{}, nil
		}
		return SelectNone{}, nil
	case string:
		return Quote(v), nil
	case [2]int:
		return newPositionSelection(v[0], v[1])
	case []int:
		if len(v) != 2 {
			return nil, &SelectionError{Value: value}
		}
		return newPositionSelection(v[0], v[1])
	case map[string]any:
		return newQuoteSelection(v)
	case []any:
		if start, end, ok := numberPair(v); ok {
			return newPositionSelection(start, end)
		}
		sequence := make(SelectionSequence, 0, len(v))
		for _, element := range v {
			selection, err := NewSelection(element)
			if err != nil {
				return nil, err
			}
			sequence = append(sequence, selection)
		}
		return sequence, nil
	default:
		return nil, &SelectionError{Value: value}
	}
}

func newPositionSelection(start, end int) (Selection, error) {
	position, err := NewTextPosition(start, end)
	if err != nil {
		return nil, err
	}
	return position, nil
}

// newQuoteSelection builds a TextQuoteSelector from a decoded JSON object.
// Only the "exact", "prefix", and "suffix" keys are accepted, each holding
// a string.
func newQuoteSelection(fields map[string]any) (Selection, error) {
	var selector TextQuoteSelector
	for key, raw := range fields {
		text, ok := raw.(string)
		if !ok {
			return nil, &SelectionError{Value: fields}
		}
		switch key {
		case "exact":
			selector.Exact = text
		case "prefix":
			selector.Prefix = text
		case "suffix":
			selector.Suffix = text
		default:
			return nil, &SelectionError{Value: fields}
		}
	}
	return selector, nil
}

// numberPair reports whether a decoded JSON array is a pair of integral
// numbers, i.e. a position rather than a sequence.
func numberPair(elements []any) (start, end int, ok bool) {
	if len(elements) != 2 {
		return 0, 0, false
	}
	offsets := [2]int{}
	for i, element := range elements {
		number, isNumber := element.(float64)
		if !isNumber || number != float64(int(number)) {
			return 0, 0, false
		}
		offsets[i] = int(number)
	}
	return offsets[0], offsets[1], true
}

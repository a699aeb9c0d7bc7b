// Package decision models published judicial decisions, their opinions, and
// the text-anchoring operations exposed on opinion text.
package decision

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coolbeans/caselaw/pkg/anchor"
)

// Opinion attitudes toward the court's disposition of the case.
const (
	OpinionMajority            = "majority"
	OpinionDissent             = "dissent"
	OpinionConcurrence         = "concurrence"
	OpinionConcurrenceInResult = "concurrence-in-result"
	OpinionPerCuriam           = "per-curiam"
)

// Opinion is a document resolving legal issues in a case. Its Text is the
// immutable referent buffer for every text-anchoring operation on the
// opinion; nothing here mutates it.
type Opinion struct {
	Type   string `json:"type"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

// NewOpinion constructs an Opinion, normalizing the author name.
func NewOpinion(opinionType, author, text string) Opinion {
	return Opinion{Type: opinionType, Author: NormalizeAuthor(author), Text: text}
}

// NormalizeAuthor strips title punctuation and surrounding separators from
// a judge's name: "Judge. Scalia." becomes "Judge Scalia".
func NormalizeAuthor(author string) string {
	result := strings.ReplaceAll(author, "Judge.", "Judge")
	result = strings.ReplaceAll(result, "Justice.", "Justice")
	return strings.Trim(result, ", -:;.")
}

// UnmarshalJSON decodes an opinion and normalizes its author, so records
// read from the reporter APIs carry the same author form as constructed
// opinions.
func (opinion *Opinion) UnmarshalJSON(data []byte) error {
	type rawOpinion Opinion
	var raw rawOpinion
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw.Author = NormalizeAuthor(raw.Author)
	*opinion = Opinion(raw)
	return nil
}

// String renders the opinion as e.g. "majority opinion by STAHL, Circuit Judge".
func (opinion Opinion) String() string {
	result := "opinion"
	if opinion.Type != "" {
		result = opinion.Type + " opinion"
	}
	if opinion.Author != "" {
		result += " by " + opinion.Author
	}
	return result
}

// LocateText resolves a selection expression against the opinion's text
// into a normalized set of positions.
func (opinion *Opinion) LocateText(selection anchor.Selection) (anchor.TextPositionSet, error) {
	set, err := anchor.FromSelection(opinion.Text, selection)
	if err != nil {
		return anchor.TextPositionSet{}, fmt.Errorf("locating text in %s: %w", opinion, err)
	}
	return set, nil
}

// SelectText resolves a selection expression and returns the selected
// passages with omission markers for the gaps between them.
func (opinion *Opinion) SelectText(selection anchor.Selection) (anchor.TextSequence, error) {
	set, err := opinion.LocateText(selection)
	if err != nil {
		return nil, err
	}
	return set.AsTextSequence(opinion.Text), nil
}

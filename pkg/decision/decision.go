package decision

import (
	"fmt"
	"time"

	"github.com/coolbeans/caselaw/pkg/citation"
)

// DecisionError reports a failed attempt to assign an Opinion to a Decision.
type DecisionError struct {
	Decision string
	Type     string
	Author   string
}

func (decisionErr *DecisionError) Error() string {
	return fmt.Sprintf("decision %s already has an opinion with type %q and author %q",
		decisionErr.Decision, decisionErr.Type, decisionErr.Author)
}

// Decision is a court decision resolving a step in litigation, in the model
// used by the Case Access Project API. One record may contain several
// opinions: typically all the opinions from one appeal, whose combined
// effect determines the outcome.
type Decision struct {
	ID               int                   `json:"id,omitempty"`
	DecisionDate     Date                  `json:"decision_date"`
	Name             string                `json:"name,omitempty"`
	NameAbbreviation string                `json:"name_abbreviation,omitempty"`
	DocketNum        string                `json:"docket_number,omitempty"`
	Citations        []citation.CAPCitation `json:"citations,omitempty"`
	Parties          []string              `json:"parties,omitempty"`
	Attorneys        []string              `json:"attorneys,omitempty"`
	FirstPage        PageNumber            `json:"first_page,omitempty"`
	LastPage         PageNumber            `json:"last_page,omitempty"`
	Court            *Court                `json:"court,omitempty"`
	CaseBody         *CaseBody             `json:"casebody,omitempty"`
	Jurisdiction     *Jurisdiction         `json:"jurisdiction,omitempty"`
	CitesTo          []citation.CAPCitation `json:"cites_to,omitempty"`
	LastUpdated      time.Time             `json:"last_updated,omitempty"`
	FrontendURL      string                `json:"frontend_url,omitempty"`
	Analysis         *Analysis             `json:"analysis,omitempty"`
}

// String renders the decision as "{name}, {first citation} ({decision date})",
// preferring the abbreviated name.
func (decision *Decision) String() string {
	name := decision.NameAbbreviation
	if name == "" {
		name = decision.Name
	}
	cite := ""
	if len(decision.Citations) > 0 {
		cite = decision.Citations[0].Cite
	}
	return fmt.Sprintf("%s, %s (%s)", name, cite, decision.DecisionDate)
}

// Opinions returns all opinions published with the decision.
func (decision *Decision) Opinions() []Opinion {
	if decision.CaseBody == nil {
		return nil
	}
	return decision.CaseBody.Data.Opinions
}

// Majority returns the majority opinion, or nil if the decision has none
// (including when the record was fetched without full case text).
func (decision *Decision) Majority() *Opinion {
	for i, opinion := range decision.Opinions() {
		if opinion.Type == OpinionMajority {
			return &decision.CaseBody.Data.Opinions[i]
		}
	}
	return nil
}

// FindMatchingOpinion returns the opinion matching the given attributes.
// An empty opinionType or opinionAuthor matches any value; with both empty,
// the first opinion is returned. Returns nil when nothing matches.
func (decision *Decision) FindMatchingOpinion(opinionType, opinionAuthor string) *Opinion {
	opinions := decision.Opinions()
	if opinionType == "" && opinionAuthor == "" {
		if len(opinions) > 0 {
			return &decision.CaseBody.Data.Opinions[0]
		}
		return nil
	}
	for i, opinion := range opinions {
		typeMatches := opinionType == "" || opinionType == opinion.Type
		authorMatches := opinionAuthor == "" || opinionAuthor == opinion.Author
		if typeMatches && authorMatches {
			return &decision.CaseBody.Data.Opinions[i]
		}
	}
	return nil
}

// AddOpinion appends an opinion to the decision's case body. This is the
// only mutation path for the opinion list: a decision holds at most one
// opinion per (type, author) pair, and adding a duplicate fails with a
// *DecisionError naming the conflicting opinion, leaving the decision
// unmodified.
func (decision *Decision) AddOpinion(opinion Opinion) error {
	if existing := decision.FindMatchingOpinion(opinion.Type, opinion.Author); existing != nil {
		return &DecisionError{
			Decision: decision.String(),
			Type:     existing.Type,
			Author:   existing.Author,
		}
	}
	if decision.CaseBody == nil {
		decision.CaseBody = &CaseBody{}
	}
	decision.CaseBody.Data.Opinions = append(decision.CaseBody.Data.Opinions, opinion)
	return nil
}

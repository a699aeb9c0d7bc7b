// Package citation models case citations and normalizes free-text citation
// strings to canonical "volume reporter page" form.
package citation

import "fmt"

// CAPCitation is a citation to another decision as published by the Case
// Access Project. It identifies the cited case by citation text, not by a
// direct reference; resolving it requires a repository lookup.
type CAPCitation struct {
	Cite     string `json:"cite"`
	Reporter string `json:"reporter,omitempty"`
	Category string `json:"category,omitempty"`
	CaseIDs  []int  `json:"case_ids,omitempty"`
	Type     string `json:"type,omitempty"`
}

func (capCitation CAPCitation) String() string {
	return "Citation to " + capCitation.Cite
}

// ReporterCitation is the volume, reporter, and first page of a case in a
// printed reporter, in the form used by the CourtListener cluster endpoint.
type ReporterCitation struct {
	Volume   int    `json:"volume"`
	Reporter string `json:"reporter"`
	Page     string `json:"page"`
}

func (reporterCitation ReporterCitation) String() string {
	return fmt.Sprintf("%d %s %s", reporterCitation.Volume, reporterCitation.Reporter, reporterCitation.Page)
}

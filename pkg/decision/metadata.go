package decision

import (
	"encoding/json"
	"strconv"
)

// Court is a court that issues legal decisions.
type Court struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	URL              string `json:"url"`
	Slug             string `json:"slug"`
	NameAbbreviation string `json:"name_abbreviation,omitempty"`
}

// Jurisdiction is a government or other entity responsible for a legal
// system.
type Jurisdiction struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	URL              string `json:"url"`
	Slug             string `json:"slug"`
	Whitelisted      bool   `json:"whitelisted"`
	NameAbbreviation string `json:"name_abbreviation,omitempty"`
}

// ReporterVolume is a group of decisions corresponding to a bound print
// volume.
type ReporterVolume struct {
	ID       int    `json:"id"`
	URL      string `json:"url"`
	FullName string `json:"full_name"`
}

// CaseData is the content of a decision, including its opinions.
type CaseData struct {
	HeadMatter  string    `json:"head_matter,omitempty"`
	Corrections string    `json:"corrections,omitempty"`
	Parties     []string  `json:"parties,omitempty"`
	Attorneys   []string  `json:"attorneys,omitempty"`
	Opinions    []Opinion `json:"opinions,omitempty"`
	Judges      []string  `json:"judges,omitempty"`
}

// CaseBody wraps CaseData in the envelope used by the Case Access Project
// API.
type CaseBody struct {
	Data   CaseData `json:"data"`
	Status string   `json:"status,omitempty"`
}

// PageRank is the rank of a decision within the collection of documents.
type PageRank struct {
	Percentile float64 `json:"percentile"`
	Raw        float64 `json:"raw"`
}

// Analysis is data generated by the Case Access Project about a decision.
type Analysis struct {
	WordCount     int       `json:"word_count"`
	SHA256        string    `json:"sha256"`
	OCRConfidence float64   `json:"ocr_confidence,omitempty"`
	CharCount     int       `json:"char_count"`
	PageRank      *PageRank `json:"pagerank,omitempty"`
	Cardinality   int       `json:"cardinality"`
	SimHash       string    `json:"simhash"`
}

// PageNumber is a reporter page number. The Case Access Project serializes
// page numbers sometimes as JSON numbers and sometimes as quoted strings;
// both decode to the same value.
type PageNumber int

// UnmarshalJSON accepts both 807 and "807".
func (page *PageNumber) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch value := raw.(type) {
	case float64:
		*page = PageNumber(int(value))
		return nil
	case string:
		if value == "" {
			*page = 0
			return nil
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		*page = PageNumber(parsed)
		return nil
	case nil:
		*page = 0
		return nil
	default:
		return json.Unmarshal(data, (*int)(page))
	}
}

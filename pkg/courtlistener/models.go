// Package courtlistener provides a client for the CourtListener REST API,
// an alternative source of decisions and opinion text keyed by docket and
// cluster identifiers rather than case ids.
package courtlistener

import (
	"encoding/json"
	"time"

	"github.com/coolbeans/caselaw/pkg/citation"
	"github.com/coolbeans/caselaw/pkg/decision"
)

// PrecedentialStatus values reported on opinion clusters.
const (
	StatusPublished   = "Published"
	StatusUnpublished = "Unpublished"
	StatusErrata      = "Errata"
)

// Docket is the top-level case record in the CourtListener data model. A
// docket groups one or more opinion clusters along with filing metadata.
type Docket struct {
	ID            int       `json:"id"`
	CourtID       string    `json:"court_id"`
	CaseName      string    `json:"case_name"`
	CaseNameShort string    `json:"case_name_short"`
	CaseNameFull  string    `json:"case_name_full"`
	DocketNumber  string    `json:"docket_number"`
	DateFiled     string    `json:"date_filed"`
	DateCreated   time.Time `json:"date_created"`
	DateModified  time.Time `json:"date_modified"`
	Clusters      []string  `json:"clusters"`
	AbsoluteURL   string    `json:"absolute_url"`
}

// OpinionCluster groups the opinions issued together for one decision,
// along with the citations under which the decision was reported.
type OpinionCluster struct {
	ID                 int                         `json:"id"`
	Docket             string                      `json:"docket"`
	DocketID           int                         `json:"docket_id"`
	Judges             string                      `json:"judges"`
	DateFiled          string                      `json:"date_filed"`
	CaseName           string                      `json:"case_name"`
	CaseNameShort      string                      `json:"case_name_short"`
	Citations          []citation.ReporterCitation `json:"citations"`
	SubOpinions        []string                    `json:"sub_opinions"`
	PrecedentialStatus string                      `json:"precedential_status"`
	AbsoluteURL        string                      `json:"absolute_url"`
}

// ClusterOpinion is a single opinion record within a cluster. Field names
// follow the CourtListener schema; Opinion converts the record to the
// decision package's representation.
type ClusterOpinion struct {
	ID          int    `json:"id"`
	Cluster     string `json:"cluster"`
	ClusterID   int    `json:"cluster_id"`
	Author      string `json:"author_str"`
	Type        string `json:"type"`
	PlainText   string `json:"plain_text"`
	HTML        string `json:"html"`
	DownloadURL string `json:"download_url"`
	PageCount   int    `json:"page_count"`
}

// clusterOpinionTypes maps CourtListener opinion type codes to the names
// used by the decision package.
var clusterOpinionTypes = map[string]string{
	"010combined":    decision.OpinionMajority,
	"020lead":        decision.OpinionMajority,
	"030concurrence": decision.OpinionConcurrence,
	"040dissent":     decision.OpinionDissent,
}

// Opinion converts the cluster record into a decision.Opinion, translating
// the type code and normalizing the author name.
func (clusterOpinion *ClusterOpinion) Opinion() decision.Opinion {
	opinionType, ok := clusterOpinionTypes[clusterOpinion.Type]
	if !ok {
		opinionType = clusterOpinion.Type
	}
	return decision.NewOpinion(opinionType, clusterOpinion.Author, clusterOpinion.PlainText)
}

// CitationResponse is one element of the citation-lookup endpoint's reply.
// Status follows HTTP semantics: 200 for a resolved citation, 404 when the
// citation matched no cluster.
type CitationResponse struct {
	Citation            string           `json:"citation"`
	NormalizedCitations []string         `json:"normalized_citations"`
	StartIndex          int              `json:"start_index"`
	EndIndex            int              `json:"end_index"`
	Status              int              `json:"status"`
	ErrorMessage        string           `json:"error_message"`
	Clusters            []OpinionCluster `json:"clusters"`
}

// resultsPage is the generic paginated envelope wrapping list endpoints.
type resultsPage struct {
	Count    int               `json:"count"`
	Next     string            `json:"next"`
	Previous string            `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

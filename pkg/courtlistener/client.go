package courtlistener

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coolbeans/caselaw/pkg/citation"
	"github.com/coolbeans/caselaw/pkg/decision"
	"github.com/coolbeans/caselaw/pkg/fetch"
)

// DefaultEndpoint is the CourtListener REST API root.
const DefaultEndpoint = "https://www.courtlistener.com/api/rest/v4/"

// DefaultUserAgent identifies this client to the API.
const DefaultUserAgent = "caselaw-courtlistener-client/1.0"

// APIError reports a failed CourtListener API interaction.
type APIError struct {
	Message    string
	StatusCode int
}

func (apiError *APIError) Error() string {
	return apiError.Message
}

// Config holds the settings for constructing a Client. Zero-value fields
// fall back to defaults.
type Config struct {
	Endpoint   string
	APIToken   string
	RateLimit  time.Duration
	CacheTTL   time.Duration
	HTTPClient fetch.HTTPClient
	UserAgent  string
}

// DefaultConfig returns a Config with the standard endpoint, request
// interval, and cache lifetime.
func DefaultConfig() Config {
	return Config{
		Endpoint:  DefaultEndpoint,
		RateLimit: fetch.DefaultRequestInterval,
		CacheTTL:  fetch.DefaultCacheTTL,
		UserAgent: DefaultUserAgent,
	}
}

// Client fetches dockets, opinion clusters, and opinion text from the
// CourtListener API. Requests are rate limited and responses cached.
type Client struct {
	endpoint   string
	apiToken   string
	httpClient fetch.HTTPClient
	cache      *fetch.ResponseCache
	userAgent  string
}

// NewClient builds a Client from config, filling in defaults for unset
// fields. A leading "Token " prefix on the API token is stripped.
func NewClient(config Config) *Client {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	underlying := config.HTTPClient
	if underlying == nil {
		underlying = &http.Client{Timeout: 30 * time.Second}
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		endpoint:   endpoint,
		apiToken:   strings.TrimPrefix(config.APIToken, "Token "),
		httpClient: fetch.NewRateLimitedHTTPClient(underlying, config.RateLimit),
		cache:      fetch.NewResponseCache(config.CacheTTL),
		userAgent:  userAgent,
	}
}

// Fetch retrieves the docket named by query, which is either a docket id or
// a citation such as "49 F.3d 807".
func (client *Client) Fetch(query string) (*Docket, error) {
	if docketID, ok := parseID(query); ok {
		return client.FetchID(docketID)
	}
	responses, err := client.FetchCite(query)
	if err != nil {
		return nil, err
	}
	cluster, err := firstCluster(query, responses)
	if err != nil {
		return nil, err
	}
	return client.FetchID(cluster.DocketID)
}

// Read retrieves a Decision by docket id or citation. An all-digit query
// is treated as an id; signed forms are citation text.
func (client *Client) Read(query string) (*decision.Decision, error) {
	if docketID, ok := parseID(query); ok {
		return client.ReadID(docketID)
	}
	return client.ReadCite(query)
}

// parseID reports query as a docket id when it consists entirely of digits.
func parseID(query string) (int, bool) {
	if query == "" {
		return 0, false
	}
	for i := 0; i < len(query); i++ {
		if query[i] < '0' || query[i] > '9' {
			return 0, false
		}
	}
	docketID, err := strconv.Atoi(query)
	return docketID, err == nil
}

// FetchID retrieves a docket by its CourtListener id.
func (client *Client) FetchID(docketID int) (*Docket, error) {
	body, statusCode, err := client.get(fmt.Sprintf("%sdockets/%d/", client.endpoint, docketID))
	if err != nil {
		return nil, err
	}
	if statusCode == http.StatusNotFound {
		return nil, &APIError{
			Message:    fmt.Sprintf("API returned no docket with id %d", docketID),
			StatusCode: statusCode,
		}
	}
	if statusCode >= http.StatusBadRequest {
		return nil, &APIError{
			Message:    fmt.Sprintf("fetching docket %d: API returned status %d", docketID, statusCode),
			StatusCode: statusCode,
		}
	}
	var docket Docket
	if err := json.Unmarshal(body, &docket); err != nil {
		return nil, fmt.Errorf("decoding docket: %w", err)
	}
	return &docket, nil
}

// FetchCite resolves a citation through the citation-lookup endpoint. The
// citation text is normalized before the request, so an unparseable
// citation fails without any network traffic.
func (client *Client) FetchCite(citeText string) ([]CitationResponse, error) {
	cite, err := citation.Normalize(citeText)
	if err != nil {
		return nil, err
	}
	volume, reporter, page, err := splitCite(cite)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("volume", volume)
	form.Set("reporter", reporter)
	form.Set("page", page)

	body, statusCode, err := client.post(client.endpoint+"citation-lookup/", form)
	if err != nil {
		return nil, err
	}
	if statusCode >= http.StatusBadRequest {
		return nil, &APIError{
			Message:    fmt.Sprintf("looking up citation %q: API returned status %d", cite, statusCode),
			StatusCode: statusCode,
		}
	}
	var responses []CitationResponse
	if err := json.Unmarshal(body, &responses); err != nil {
		return nil, fmt.Errorf("decoding citation lookup: %w", err)
	}
	return responses, nil
}

// FetchCluster retrieves one opinion cluster by id.
func (client *Client) FetchCluster(clusterID int) (*OpinionCluster, error) {
	body, statusCode, err := client.get(fmt.Sprintf("%sclusters/%d/", client.endpoint, clusterID))
	if err != nil {
		return nil, err
	}
	if statusCode >= http.StatusBadRequest {
		return nil, &APIError{
			Message:    fmt.Sprintf("fetching cluster %d: API returned status %d", clusterID, statusCode),
			StatusCode: statusCode,
		}
	}
	var cluster OpinionCluster
	if err := json.Unmarshal(body, &cluster); err != nil {
		return nil, fmt.Errorf("decoding cluster: %w", err)
	}
	return &cluster, nil
}

// FetchClusterOpinions retrieves the opinions belonging to a cluster.
func (client *Client) FetchClusterOpinions(clusterID int) ([]ClusterOpinion, error) {
	requestURL := fmt.Sprintf("%sopinions/?cluster__id=%d", client.endpoint, clusterID)
	body, statusCode, err := client.get(requestURL)
	if err != nil {
		return nil, err
	}
	if statusCode >= http.StatusBadRequest {
		return nil, &APIError{
			Message:    fmt.Sprintf("fetching opinions for cluster %d: API returned status %d", clusterID, statusCode),
			StatusCode: statusCode,
		}
	}
	var page resultsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding opinion list: %w", err)
	}
	opinions := make([]ClusterOpinion, 0, len(page.Results))
	for _, raw := range page.Results {
		var opinion ClusterOpinion
		if err := json.Unmarshal(raw, &opinion); err != nil {
			return nil, fmt.Errorf("decoding opinion: %w", err)
		}
		opinions = append(opinions, opinion)
	}
	return opinions, nil
}

// ReadClusterOpinions retrieves a cluster's opinions converted to the
// decision package's representation.
func (client *Client) ReadClusterOpinions(clusterID int) ([]decision.Opinion, error) {
	clusterOpinions, err := client.FetchClusterOpinions(clusterID)
	if err != nil {
		return nil, err
	}
	opinions := make([]decision.Opinion, 0, len(clusterOpinions))
	for _, clusterOpinion := range clusterOpinions {
		opinions = append(opinions, clusterOpinion.Opinion())
	}
	return opinions, nil
}

// ReadCite resolves a citation to a Decision built from the first matching
// opinion cluster, attaching the cluster's opinions.
func (client *Client) ReadCite(citeText string) (*decision.Decision, error) {
	responses, err := client.FetchCite(citeText)
	if err != nil {
		return nil, err
	}
	cluster, err := firstCluster(citeText, responses)
	if err != nil {
		return nil, err
	}
	return client.readCluster(cluster)
}

// ReadID retrieves a docket by id and builds a Decision from its first
// opinion cluster.
func (client *Client) ReadID(docketID int) (*decision.Decision, error) {
	docket, err := client.FetchID(docketID)
	if err != nil {
		return nil, err
	}
	if len(docket.Clusters) == 0 {
		return nil, &APIError{
			Message: fmt.Sprintf("docket %d has no opinion clusters", docketID),
		}
	}
	clusterID, err := trailingID(docket.Clusters[0])
	if err != nil {
		return nil, err
	}
	cluster, err := client.FetchCluster(clusterID)
	if err != nil {
		return nil, err
	}
	return client.readCluster(cluster)
}

// readCluster assembles a Decision from a cluster record and its opinions.
func (client *Client) readCluster(cluster *OpinionCluster) (*decision.Decision, error) {
	caseOpinions, err := client.ReadClusterOpinions(cluster.ID)
	if err != nil {
		return nil, err
	}

	decisionDate, err := decision.ParseDate(cluster.DateFiled)
	if err != nil {
		return nil, fmt.Errorf("parsing cluster %d filing date: %w", cluster.ID, err)
	}

	citations := make([]citation.CAPCitation, 0, len(cluster.Citations))
	for _, reporterCite := range cluster.Citations {
		citations = append(citations, citation.CAPCitation{
			Cite:     reporterCite.String(),
			Reporter: reporterCite.Reporter,
		})
	}

	return &decision.Decision{
		ID:               cluster.ID,
		DecisionDate:     decisionDate,
		Name:             cluster.CaseName,
		NameAbbreviation: cluster.CaseNameShort,
		Citations:        citations,
		FrontendURL:      cluster.AbsoluteURL,
		CaseBody: &decision.CaseBody{
			Status: "ok",
			Data: decision.CaseData{
				Judges:   splitJudges(cluster.Judges),
				Opinions: caseOpinions,
			},
		},
	}, nil
}

// firstCluster picks the first resolved cluster out of a citation-lookup
// reply, converting lookup failures to APIErrors.
func firstCluster(citeText string, responses []CitationResponse) (*OpinionCluster, error) {
	for i := range responses {
		response := &responses[i]
		if response.Status == http.StatusOK && len(response.Clusters) > 0 {
			return &response.Clusters[0], nil
		}
	}
	return nil, &APIError{
		Message: fmt.Sprintf("API returned no cases matching citation %q", citeText),
	}
}

// splitCite breaks a normalized citation into its volume, reporter, and
// page components. The reporter may itself contain spaces.
func splitCite(cite string) (volume, reporter, page string, err error) {
	fields := strings.Fields(cite)
	if len(fields) < 3 {
		return "", "", "", fmt.Errorf("citation %q lacks volume, reporter, and page", cite)
	}
	return fields[0], strings.Join(fields[1:len(fields)-1], " "), fields[len(fields)-1], nil
}

// trailingID extracts the numeric id from a resource URL such as
// ".../clusters/108713/".
func trailingID(resourceURL string) (int, error) {
	trimmed := strings.TrimRight(resourceURL, "/")
	idText := trimmed[strings.LastIndex(trimmed, "/")+1:]
	resourceID, err := strconv.Atoi(idText)
	if err != nil {
		return 0, fmt.Errorf("resource URL %q has no trailing id", resourceURL)
	}
	return resourceID, nil
}

func splitJudges(judges string) []string {
	if judges == "" {
		return nil
	}
	parts := strings.Split(judges, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// get performs a cached, authorized GET request and returns the body and
// status code. Error statuses are returned to the caller undecoded.
func (client *Client) get(requestURL string) ([]byte, int, error) {
	if cached, ok := client.cache.Get(requestURL); ok {
		return cached, http.StatusOK, nil
	}
	request, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}
	return client.send(request, requestURL)
}

// post performs an authorized form POST. Lookup replies are cached under
// the request URL plus the encoded form.
func (client *Client) post(requestURL string, form url.Values) ([]byte, int, error) {
	cacheKey := requestURL + "?" + form.Encode()
	if cached, ok := client.cache.Get(cacheKey); ok {
		return cached, http.StatusOK, nil
	}
	request, err := http.NewRequest(http.MethodPost, requestURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return client.send(request, cacheKey)
}

func (client *Client) send(request *http.Request, cacheKey string) ([]byte, int, error) {
	request.Header.Set("User-Agent", client.userAgent)
	if client.apiToken != "" {
		request.Header.Set("Authorization", "Token "+client.apiToken)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, 0, fmt.Errorf("querying CourtListener API: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading API response: %w", err)
	}
	if response.StatusCode == http.StatusOK {
		client.cache.Set(cacheKey, body)
	}
	return body, response.StatusCode, nil
}

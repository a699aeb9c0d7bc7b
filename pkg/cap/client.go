// Package cap downloads judicial decisions from the Caselaw Access Project
// API and deserializes them into the decision data model.
package cap

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

// DefaultEndpoint is the cases endpoint of the Caselaw Access Project API.
const DefaultEndpoint = "https://api.case.law/v1/cases/"

// DefaultUserAgent is the default User-Agent header sent with CAP requests.
const DefaultUserAgent = "caselaw-cap-client/1.0"

// apiKeyAlert explains how to authorize full-case requests.
const apiKeyAlert = "to fetch full opinion text, set the client's APIToken to " +
	"your Case Access Project API key (see https://api.case.law/)"

// APIError reports a failed interaction with the Case Access Project API.
type APIError struct {
	Message    string
	StatusCode int
}

func (apiErr *APIError) Error() string {
	return apiErr.Message
}

// Config holds configuration for a Client.
type Config struct {
	// Endpoint is the CAP cases endpoint. Default: DefaultEndpoint.
	Endpoint string

	// APIToken authorizes full-case requests. A leading "Token " prefix is
	// accepted and stripped.
	APIToken string

	// RateLimit is the minimum interval between HTTP requests.
	// Default: fetch.DefaultRequestInterval.
	RateLimit time.Duration

	// CacheTTL is the time-to-live for cached response bodies.
	// Default: fetch.DefaultCacheTTL.
	CacheTTL time.Duration

	// HTTPClient is the underlying HTTP client used for requests.
	// If nil, http.DefaultClient is used (wrapped with rate limiting).
	HTTPClient fetch.HTTPClient

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string
}

// DefaultConfig returns a Config with sensible defaults and no API token.
func DefaultConfig() Config {
	return Config{
		Endpoint:  DefaultEndpoint,
		RateLimit: fetch.DefaultRequestInterval,
		CacheTTL:  fetch.DefaultCacheTTL,
		UserAgent: DefaultUserAgent,
	}
}

// Client downloads judicial decisions from the Case Access Project API,
// with request rate limiting and response caching. Safe for concurrent use.
type Client struct {
	endpoint   string
	apiToken   string
	httpClient fetch.HTTPClient
	cache      *fetch.ResponseCache
	userAgent  string
}

// NewClient creates a Client from the given configuration.
func NewClient(config Config) *Client {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	apiToken := strings.TrimPrefix(config.APIToken, "Token ")

	underlyingClient := config.HTTPClient
	if underlyingClient == nil {
		underlyingClient = http.DefaultClient
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		endpoint:   endpoint,
		apiToken:   apiToken,
		httpClient: fetch.NewRateLimitedHTTPClient(underlyingClient, config.RateLimit),
		cache:      fetch.NewResponseCache(config.CacheTTL),
		userAgent:  userAgent,
	}
}

// Fetch queries by CAP id or citation and returns the raw response body.
// An all-digit query is treated as an id.
func (client *Client) Fetch(query string, fullCase bool) ([]byte, error) {
	if capID, ok := parseID(query); ok {
		return client.FetchID(capID, fullCase)
	}
	return client.FetchCite(query, fullCase)
}

// parseID reports query as a CAP id when it consists entirely of digits.
// Signed forms like "-5" are citation text, not ids.
func parseID(query string) (int, bool) {
	if query == "" {
		return 0, false
	}
	for i := 0; i < len(query); i++ {
		if query[i] < '0' || query[i] > '9' {
			return 0, false
		}
	}
	capID, err := strconv.Atoi(query)
	return capID, err == nil
}

// FetchID downloads a decision by its CAP id. An unknown id fails with an
// *APIError.
func (client *Client) FetchID(capID int, fullCase bool) ([]byte, error) {
	params := url.Values{}
	if fullCase {
		params.Set("full_case", "true")
	}

	body, statusCode, err := client.get(client.endpoint+strconv.Itoa(capID)+"/", params, fullCase)
	if err != nil {
		return nil, err
	}
	if statusCode == http.StatusNotFound {
		return nil, &APIError{
			Message:    fmt.Sprintf("API returned no cases with id %d", capID),
			StatusCode: statusCode,
		}
	}
	if statusCode >= 400 {
		return nil, &APIError{
			Message:    fmt.Sprintf("API returned HTTP %d for id %d", statusCode, capID),
			StatusCode: statusCode,
		}
	}
	return body, nil
}

// FetchCite downloads the list response for a citation query. The citation
// text is normalized first; text that does not contain exactly one case
// citation fails without any request being made.
func (client *Client) FetchCite(cite string, fullCase bool) ([]byte, error) {
	normalized, err := citation.Normalize(cite)
	if err != nil {
		return nil, err
	}
	return client.fetchNormalizedCite(normalized, fullCase)
}

// fetchNormalizedCite queries by an already canonical cite string, such as
// one served by the API itself.
func (client *Client) fetchNormalizedCite(normalized string, fullCase bool) ([]byte, error) {
	params := url.Values{}
	params.Set("cite", normalized)
	if fullCase {
		params.Set("full_case", "true")
	}

	body, statusCode, err := client.get(client.endpoint, params, fullCase)
	if err != nil {
		return nil, err
	}
	if statusCode >= 400 {
		return nil, &APIError{
			Message:    fmt.Sprintf("API returned HTTP %d for citation %q", statusCode, normalized),
			StatusCode: statusCode,
		}
	}
	return body, nil
}

// Read queries by CAP id or citation and deserializes the first matching
// decision.
func (client *Client) Read(query string, fullCase bool) (*decision.Decision, error) {
	if capID, ok := parseID(query); ok {
		return client.ReadID(capID, fullCase)
	}
	return client.ReadCite(query, fullCase)
}

// ReadID downloads and deserializes a decision by its CAP id.
func (client *Client) ReadID(capID int, fullCase bool) (*decision.Decision, error) {
	body, err := client.FetchID(capID, fullCase)
	if err != nil {
		return nil, err
	}
	return decodeDecision(body)
}

// ReadCite downloads and deserializes the first decision matching a
// citation.
func (client *Client) ReadCite(cite string, fullCase bool) (*decision.Decision, error) {
	body, err := client.FetchCite(cite, fullCase)
	if err != nil {
		return nil, err
	}
	return decodeDecision(body)
}

// ReadCitation downloads the decision a CAPCitation refers to, e.g. one
// found in another decision's CitesTo list. The citation's cite string is
// used as served, without free-text normalization.
func (client *Client) ReadCitation(capCitation citation.CAPCitation, fullCase bool) (*decision.Decision, error) {
	body, err := client.fetchNormalizedCite(citation.NormalizeCite(capCitation), fullCase)
	if err != nil {
		return nil, err
	}
	return decodeDecision(body)
}

// ReadDecisionList downloads and deserializes every decision in the
// "results" list for a citation query.
func (client *Client) ReadDecisionList(cite string, fullCase bool) ([]decision.Decision, error) {
	body, err := client.FetchCite(cite, fullCase)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Results []decision.Decision `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding decision list: %w", err)
	}
	return envelope.Results, nil
}

// ReadDecisionsFromResponse deserializes the decisions in an already
// fetched API response, for callers that perform their own requests.
func ReadDecisionsFromResponse(response *http.Response) ([]decision.Decision, error) {
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("reading API response: %w", err)
	}
	var envelope struct {
		Results *json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding decision list: %w", err)
	}
	if envelope.Results == nil {
		single, err := decodeDecision(body)
		if err != nil {
			return nil, err
		}
		return []decision.Decision{*single}, nil
	}
	var results []decision.Decision
	if err := json.Unmarshal(*envelope.Results, &results); err != nil {
		return nil, fmt.Errorf("decoding decision list: %w", err)
	}
	return results, nil
}

// decodeDecision deserializes either a bare decision record or a "results"
// envelope, taking the first result.
func decodeDecision(body []byte) (*decision.Decision, error) {
	var envelope struct {
		Results *json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding decision: %w", err)
	}

	raw := json.RawMessage(body)
	if envelope.Results != nil {
		var results []json.RawMessage
		if err := json.Unmarshal(*envelope.Results, &results); err != nil {
			return nil, fmt.Errorf("decoding decision results: %w", err)
		}
		if len(results) == 0 {
			return nil, &APIError{Message: "API returned no matching cases"}
		}
		raw = results[0]
	}

	var result decision.Decision
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decoding decision: %w", err)
	}
	return &result, nil
}

// get performs a cached, rate-limited GET. Successful bodies are cached by
// full request URL; 401 responses fail with the API's detail message.
func (client *Client) get(requestURL string, params url.Values, fullCase bool) ([]byte, int, error) {
	headers, err := client.apiHeaders(fullCase)
	if err != nil {
		return nil, 0, err
	}

	fullURL := requestURL
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	if body, found := client.cache.Get(fullURL); found {
		return body, http.StatusOK, nil
	}

	request, err := http.NewRequest(http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request for %s: %w", fullURL, err)
	}
	request.Header.Set("User-Agent", client.userAgent)
	for name, value := range headers {
		request.Header.Set(name, value)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, 0, fmt.Errorf("request to %s failed: %w", fullURL, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response from %s: %w", fullURL, err)
	}

	if response.StatusCode == http.StatusUnauthorized {
		detail := struct {
			Detail string `json:"detail"`
		}{}
		_ = json.Unmarshal(body, &detail)
		return nil, response.StatusCode, &APIError{
			Message:    fmt.Sprintf("%s %s", detail.Detail, apiKeyAlert),
			StatusCode: response.StatusCode,
		}
	}

	if response.StatusCode == http.StatusOK {
		client.cache.Set(fullURL, body)
	}
	return body, response.StatusCode, nil
}

// apiHeaders builds request headers. Requesting full case text without an
// API token fails with an *APIError carrying the api-key alert.
func (client *Client) apiHeaders(fullCase bool) (map[string]string, error) {
	headers := map[string]string{}
	if fullCase {
		if client.apiToken == "" {
			return nil, &APIError{Message: apiKeyAlert}
		}
		headers["Authorization"] = "Token " + client.apiToken
	}
	return headers, nil
}

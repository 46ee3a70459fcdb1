package reputation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mikey/phish-analyzer/internal/core"
	"go.uber.org/zap"
)

// DefaultURLScanEndpoint is the urlscan.io search API.
const DefaultURLScanEndpoint = "https://urlscan.io/api/v1/search/"

// URLScanClient looks up domain reputation through the urlscan.io search
// API. It implements core.ReputationClient and never returns an error:
// failures degrade to per-URL insights.
type URLScanClient struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string
	logger     *zap.Logger
}

// NewURLScanClient creates a urlscan.io collaborator.
func NewURLScanClient(apiKey, endpoint string, timeout time.Duration, logger *zap.Logger) *URLScanClient {
	if endpoint == "" {
		endpoint = DefaultURLScanEndpoint
	}
	return &URLScanClient{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		endpoint:   endpoint,
		logger:     logger,
	}
}

// urlscanResponse is the subset of the search payload the client consumes.
type urlscanResponse struct {
	Total   int `json:"total"`
	Results []struct {
		Verdicts struct {
			Overall struct {
				Malicious  bool     `json:"malicious"`
				Score      *float64 `json:"score"`
				Categories []string `json:"categories"`
			} `json:"overall"`
		} `json:"verdicts"`
	} `json:"results"`
}

// Lookup resolves one insight per URL, preserving order.
func (c *URLScanClient) Lookup(ctx context.Context, urls []string) []core.URLInsight {
	insights := make([]core.URLInsight, len(urls))
	for i, u := range urls {
		insights[i] = c.lookupOne(ctx, u)
	}
	return insights
}

func (c *URLScanClient) lookupOne(ctx context.Context, target string) core.URLInsight {
	domain := core.DomainFromURL(target)
	if domain == "" {
		return core.URLInsight{
			URL:     target,
			Status:  core.StatusUnknown,
			Details: "Unable to extract domain for reputation check.",
		}
	}

	payload, err := c.search(ctx, domain)
	if err != nil {
		c.logger.Warn("urlscan lookup failed",
			zap.String("url", target),
			zap.String("domain", domain),
			zap.Error(err))
		return core.URLInsight{
			URL:     target,
			Status:  core.StatusError,
			Details: fmt.Sprintf("urlscan lookup failed: %v", err),
		}
	}

	return parseURLScanVerdict(target, payload)
}

func (c *URLScanClient) search(ctx context.Context, domain string) (*urlscanResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build urlscan request: %w", err)
	}
	query := url.Values{"q": {fmt.Sprintf("domain:%s", domain)}}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query urlscan: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("urlscan returned status %d", resp.StatusCode)
	}

	var payload urlscanResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode urlscan response: %w", err)
	}
	return &payload, nil
}

// parseURLScanVerdict maps a search payload onto the insight vocabulary.
func parseURLScanVerdict(target string, payload *urlscanResponse) core.URLInsight {
	if payload.Total == 0 {
		return core.URLInsight{
			URL:        target,
			Reputation: "no-data",
			Status:     core.StatusClean,
			Details:    "No prior scans found for this domain.",
		}
	}

	var malicious bool
	var score *float64
	var categories []string
	if len(payload.Results) > 0 {
		overall := payload.Results[0].Verdicts.Overall
		malicious = overall.Malicious
		score = overall.Score
		categories = overall.Categories
	}

	status := core.StatusReview
	rep := "suspicious"
	if malicious {
		status = core.StatusMalicious
		rep = "block"
	}

	var findings []string
	if len(categories) > 0 {
		findings = append(findings, fmt.Sprintf("Categories: %s", strings.Join(categories, ", ")))
	}
	if score != nil {
		findings = append(findings, fmt.Sprintf("Verdict score: %g", *score))
	}

	return core.URLInsight{
		URL:        target,
		Reputation: rep,
		Status:     status,
		Details:    fmt.Sprintf("Observed in %d urlscan submission(s).", payload.Total),
		Findings:   findings,
	}
}

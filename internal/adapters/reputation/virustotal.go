package reputation

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mikey/phish-analyzer/internal/core"
	"go.uber.org/zap"
)

// DefaultVirusTotalEndpoint is the VirusTotal v3 URL report API.
const DefaultVirusTotalEndpoint = "https://www.virustotal.com/api/v3/urls"

// VirusTotalClient looks up per-URL reputation through the VirusTotal v3
// API. Like every collaborator it degrades to per-URL insights instead of
// returning errors.
type VirusTotalClient struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string
	logger     *zap.Logger
}

// NewVirusTotalClient creates a VirusTotal collaborator.
func NewVirusTotalClient(apiKey, endpoint string, timeout time.Duration, logger *zap.Logger) *VirusTotalClient {
	if endpoint == "" {
		endpoint = DefaultVirusTotalEndpoint
	}
	return &VirusTotalClient{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		endpoint:   endpoint,
		logger:     logger,
	}
}

// virustotalResponse is the subset of the URL report the client consumes.
type virustotalResponse struct {
	Data struct {
		Attributes struct {
			LastAnalysisStats struct {
				Malicious  int `json:"malicious"`
				Suspicious int `json:"suspicious"`
				Harmless   int `json:"harmless"`
				Undetected int `json:"undetected"`
			} `json:"last_analysis_stats"`
		} `json:"attributes"`
	} `json:"data"`
}

// Lookup resolves one insight per URL, preserving order.
func (c *VirusTotalClient) Lookup(ctx context.Context, urls []string) []core.URLInsight {
	insights := make([]core.URLInsight, len(urls))
	for i, u := range urls {
		insights[i] = c.lookupOne(ctx, u)
	}
	return insights
}

func (c *VirusTotalClient) lookupOne(ctx context.Context, target string) core.URLInsight {
	// VirusTotal identifies URLs by their unpadded base64url encoding.
	id := base64.RawURLEncoding.EncodeToString([]byte(target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.endpoint, id), nil)
	if err != nil {
		return errorInsight(target, fmt.Errorf("failed to build virustotal request: %w", err))
	}
	req.Header.Set("x-apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("virustotal lookup failed", zap.String("url", target), zap.Error(err))
		return errorInsight(target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return core.URLInsight{
			URL:        target,
			Reputation: "no-data",
			Status:     core.StatusUnknown,
			Details:    "URL not found in VirusTotal database.",
		}
	}
	if resp.StatusCode != http.StatusOK {
		return errorInsight(target, fmt.Errorf("virustotal returned status %d", resp.StatusCode))
	}

	var payload virustotalResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return errorInsight(target, fmt.Errorf("failed to decode virustotal response: %w", err))
	}

	return parseVirusTotalVerdict(target, &payload)
}

// parseVirusTotalVerdict maps analysis stats onto the insight vocabulary.
func parseVirusTotalVerdict(target string, payload *virustotalResponse) core.URLInsight {
	stats := payload.Data.Attributes.LastAnalysisStats

	var findings []string
	if stats.Malicious > 0 {
		findings = append(findings, fmt.Sprintf("Flagged malicious by %d engine(s).", stats.Malicious))
	}
	if stats.Suspicious > 0 {
		findings = append(findings, fmt.Sprintf("Flagged suspicious by %d engine(s).", stats.Suspicious))
	}

	switch {
	case stats.Malicious > 0:
		return core.URLInsight{
			URL:        target,
			Reputation: "block",
			Status:     core.StatusMalicious,
			Details:    fmt.Sprintf("%d of %d engines report this URL as a threat.", stats.Malicious+stats.Suspicious, totalEngines(stats.Malicious, stats.Suspicious, stats.Harmless, stats.Undetected)),
			Findings:   findings,
		}
	case stats.Suspicious > 0:
		return core.URLInsight{
			URL:        target,
			Reputation: "suspicious",
			Status:     core.StatusReview,
			Details:    fmt.Sprintf("%d engine(s) ask for review of this URL.", stats.Suspicious),
			Findings:   findings,
		}
	default:
		return core.URLInsight{
			URL:        target,
			Reputation: "no-data",
			Status:     core.StatusClean,
			Details:    fmt.Sprintf("No engine reports against this URL (%d harmless, %d undetected).", stats.Harmless, stats.Undetected),
		}
	}
}

func errorInsight(target string, err error) core.URLInsight {
	return core.URLInsight{
		URL:     target,
		Status:  core.StatusError,
		Details: fmt.Sprintf("virustotal lookup failed: %v", err),
	}
}

func totalEngines(counts ...int) int {
	total := 0
	for _, count := range counts {
		total += count
	}
	return total
}

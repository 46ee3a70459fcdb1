package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubReputationClient returns a fixed status per URL and counts lookups.
type stubReputationClient struct {
	status  string
	lookups int
}

func (c *stubReputationClient) Lookup(_ context.Context, urls []string) []URLInsight {
	c.lookups++
	insights := make([]URLInsight, len(urls))
	for i, u := range urls {
		insights[i] = URLInsight{URL: u, Status: c.status, Details: "stubbed"}
	}
	return insights
}

// fakeCache is a map-backed ReputationCache without expiry handling.
type fakeCache struct {
	entries map[string]*ReputationCacheEntry
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*ReputationCacheEntry)}
}

func (c *fakeCache) Get(_ context.Context, url string) (*ReputationCacheEntry, error) {
	entry, ok := c.entries[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return entry, nil
}

func (c *fakeCache) Set(_ context.Context, entry *ReputationCacheEntry) error {
	c.entries[entry.URL] = entry
	return nil
}

func (c *fakeCache) Delete(_ context.Context, url string) error {
	delete(c.entries, url)
	return nil
}

func (c *fakeCache) Cleanup(_ context.Context) error { return nil }

func newTestService(client ReputationClient, cache ReputationCache, cacheEnabled bool) *AnalyzerService {
	return NewAnalyzerService(
		DefaultLexicon(),
		client,
		cache,
		zap.NewNop(),
		cacheEnabled,
		time.Hour,
		time.Second,
	)
}

func TestAnalyzePhishingScenario(t *testing.T) {
	service := newTestService(&stubReputationClient{status: StatusClean}, nil, false)

	resp := service.Analyze(context.Background(), &AnalysisRequest{
		Subject: "URGENT: Verify your account now!!",
		Body: "Dear customer, your PayPal account has been suspended. " +
			"Visit http://paypa1-secure.xyz/verify immediately and confirm " +
			"your password and social security number to restore access.",
		Sender:  "security@paypa1-alert.xyz",
		ReplyTo: "helpdesk@quick-reply.net",
	})

	assert.Equal(t, RiskHigh, resp.OverallRisk)
	assert.Equal(t, 100, resp.Score)

	categories := make([]string, len(resp.Findings))
	for i, finding := range resp.Findings {
		categories[i] = finding.Category
	}
	assert.Contains(t, categories, CategoryUrgency)
	assert.Contains(t, categories, CategorySensitive)
	assert.Contains(t, categories, CategorySender)
	assert.Contains(t, categories, CategoryLinks)

	require.Len(t, resp.URLInsights, 1)
	assert.Equal(t, "http://paypa1-secure.xyz/verify", resp.URLInsights[0].URL)

	assert.Equal(t, "Do not interact with the email. Report it to your security team.", resp.Recommendations[0])
}

func TestAnalyzeBenignScenario(t *testing.T) {
	client := &stubReputationClient{status: StatusClean}
	service := newTestService(client, nil, false)

	resp := service.Analyze(context.Background(), &AnalysisRequest{
		Subject: "Lunch plans",
		Body:    "Hi team, see you in the lobby at noon on Friday.",
		Sender:  "alice@example.com",
	})

	assert.Equal(t, RiskLow, resp.OverallRisk)
	assert.Equal(t, 0, resp.Score)
	assert.Empty(t, resp.Findings)
	assert.Empty(t, resp.URLInsights)
	assert.Equal(t, []string{"Email appears lower risk but remain vigilant."}, resp.Recommendations)
	assert.Equal(t, 0, client.lookups, "no URLs means no reputation lookup")
}

func TestAnalyzeFindingsKeepDetectorOrder(t *testing.T) {
	service := newTestService(&stubReputationClient{status: StatusClean}, nil, false)

	// Trips the urgency, sensitive and attachment detectors in one message.
	req := &AnalysisRequest{
		Subject:     "Account locked",
		Body:        "Act now and confirm your password.",
		Attachments: []string{"update.exe"},
	}

	resp := service.Analyze(context.Background(), req)
	require.Len(t, resp.Findings, 3)
	assert.Equal(t, CategoryUrgency, resp.Findings[0].Category)
	assert.Equal(t, CategorySensitive, resp.Findings[1].Category)
	assert.Equal(t, CategoryAttachments, resp.Findings[2].Category)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	service := newTestService(&stubReputationClient{status: StatusClean}, nil, false)

	req := &AnalysisRequest{
		Subject: "urgent",
		Body:    "Reply immediately or we suspend the account. See http://203.0.113.7/a and http://example.net/b.",
		Sender:  "alerts@notify.example.com",
		ReplyTo: "other@elsewhere.net",
	}

	first := service.Analyze(context.Background(), req)
	second := service.Analyze(context.Background(), req)
	assert.Equal(t, first, second)
}

func TestAnalyzeCachesCleanInsights(t *testing.T) {
	client := &stubReputationClient{status: StatusClean}
	cache := newFakeCache()
	service := newTestService(client, cache, true)

	req := &AnalysisRequest{Body: "Check https://example.com/offer now"}

	service.Analyze(context.Background(), req)
	require.Equal(t, 1, client.lookups)
	assert.Len(t, cache.entries, 1)

	service.Analyze(context.Background(), req)
	assert.Equal(t, 1, client.lookups, "second analysis must be served from cache")
}

func TestAnalyzeDoesNotCacheDegradedInsights(t *testing.T) {
	client := &stubReputationClient{status: StatusError}
	cache := newFakeCache()
	service := newTestService(client, cache, true)

	req := &AnalysisRequest{Body: "Check https://example.com/offer now"}

	service.Analyze(context.Background(), req)
	assert.Empty(t, cache.entries)

	service.Analyze(context.Background(), req)
	assert.Equal(t, 2, client.lookups, "degraded verdicts are retried, not cached")
}

func TestAnalyzeWithNoopReputation(t *testing.T) {
	service := NewAnalyzerService(
		DefaultLexicon(),
		noopClient{},
		nil,
		zap.NewNop(),
		false,
		0,
		time.Second,
	)

	resp := service.Analyze(context.Background(), &AnalysisRequest{
		Body: "Details at https://example.com/info today",
	})

	require.Len(t, resp.URLInsights, 1)
	assert.Equal(t, StatusUnavailable, resp.URLInsights[0].Status)
}

// noopClient mirrors the unconfigured-provider behavior without importing
// the adapter package.
type noopClient struct{}

func (noopClient) Lookup(_ context.Context, urls []string) []URLInsight {
	insights := make([]URLInsight, len(urls))
	for i, u := range urls {
		insights[i] = URLInsight{URL: u, Status: StatusUnavailable}
	}
	return insights
}

package reputation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/phish-analyzer/internal/core"
)

func newURLScanTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *URLScanClient) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewURLScanClient("test-key", server.URL, 2*time.Second, zap.NewNop())
	return server, client
}

func TestURLScanClientNoPriorScans(t *testing.T) {
	_, client := newURLScanTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("API-Key"))
		assert.Equal(t, "domain:example.com", r.URL.Query().Get("q"))
		w.Write([]byte(`{"total": 0, "results": []}`))
	})

	insights := client.Lookup(context.Background(), []string{"https://example.com/login"})
	require.Len(t, insights, 1)
	assert.Equal(t, core.StatusClean, insights[0].Status)
	assert.Equal(t, "no-data", insights[0].Reputation)
	assert.Equal(t, "No prior scans found for this domain.", insights[0].Details)
}

func TestURLScanClientMaliciousVerdict(t *testing.T) {
	_, client := newURLScanTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"total": 4,
			"results": [
				{"verdicts": {"overall": {"malicious": true, "score": 85, "categories": ["phishing"]}}}
			]
		}`))
	})

	insights := client.Lookup(context.Background(), []string{"http://bad.example.net/"})
	require.Len(t, insights, 1)
	assert.Equal(t, core.StatusMalicious, insights[0].Status)
	assert.Equal(t, "block", insights[0].Reputation)
	assert.Equal(t, "Observed in 4 urlscan submission(s).", insights[0].Details)
	assert.Contains(t, insights[0].Findings, "Categories: phishing")
	assert.Contains(t, insights[0].Findings, "Verdict score: 85")
}

func TestURLScanClientSuspiciousVerdict(t *testing.T) {
	_, client := newURLScanTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"total": 1,
			"results": [{"verdicts": {"overall": {"malicious": false}}}]
		}`))
	})

	insights := client.Lookup(context.Background(), []string{"http://odd.example.net/"})
	require.Len(t, insights, 1)
	assert.Equal(t, core.StatusReview, insights[0].Status)
	assert.Equal(t, "suspicious", insights[0].Reputation)
}

func TestURLScanClientServerFailure(t *testing.T) {
	_, client := newURLScanTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	insights := client.Lookup(context.Background(), []string{"https://example.com/"})
	require.Len(t, insights, 1)
	assert.Equal(t, core.StatusError, insights[0].Status)
	assert.Contains(t, insights[0].Details, "urlscan lookup failed")
}

func TestURLScanClientOrderAndCount(t *testing.T) {
	_, client := newURLScanTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total": 0}`))
	})

	urls := []string{"https://a.example.com/1", "https://b.example.org/2", "https://c.example.net/3"}
	insights := client.Lookup(context.Background(), urls)
	require.Len(t, insights, len(urls))
	for i, u := range urls {
		assert.Equal(t, u, insights[i].URL)
	}
}

func TestNoopClient(t *testing.T) {
	client := NewNoopClient()
	insights := client.Lookup(context.Background(), []string{"https://a.example.com", "https://b.example.org"})

	require.Len(t, insights, 2)
	for _, insight := range insights {
		assert.Equal(t, core.StatusUnavailable, insight.Status)
	}
	assert.Equal(t, "https://a.example.com", insights[0].URL)
	assert.Equal(t, "https://b.example.org", insights[1].URL)
}

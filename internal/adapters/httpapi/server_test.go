package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/phish-analyzer/internal/core"
)

type silentReputation struct{}

func (silentReputation) Lookup(_ context.Context, urls []string) []core.URLInsight {
	insights := make([]core.URLInsight, len(urls))
	for i, u := range urls {
		insights[i] = core.URLInsight{URL: u, Status: core.StatusUnavailable}
	}
	return insights
}

func newTestServer() *Server {
	service := core.NewAnalyzerService(
		core.DefaultLexicon(),
		silentReputation{},
		nil,
		zap.NewNop(),
		false,
		0,
		time.Second,
	)
	return NewServer(service, zap.NewNop(), "127.0.0.1:0")
}

func TestHandleAnalyze(t *testing.T) {
	server := newTestServer()

	payload := map[string]any{
		"subject": "URGENT: Verify your account now",
		"body":    "Your account was suspended. Visit http://paypa1-secure.xyz/verify immediately and confirm your password.",
		"sender":  "security@paypa1-alert.xyz",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp core.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, core.RiskHigh, resp.OverallRisk)
	assert.NotEmpty(t, resp.Findings)
	assert.NotEmpty(t, resp.Recommendations)
	require.Len(t, resp.URLInsights, 1)
	assert.Equal(t, "http://paypa1-secure.xyz/verify", resp.URLInsights[0].URL)
}

func TestHandleAnalyzeRejectsInvalidJSON(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON payload")
}

func TestHandleAnalyzeRejectsEmptyBody(t *testing.T) {
	server := newTestServer()

	payload := []byte(`{"subject": "hi", "body": "   "}`)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "body is required")
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORSHeaders(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestProcessEmailDirect(t *testing.T) {
	server := newTestServer()

	resp, err := server.ProcessEmail(context.Background(), &core.AnalysisRequest{
		Body: "Hi team, see you in the lobby at noon.",
	})
	require.NoError(t, err)
	assert.Equal(t, core.RiskLow, resp.OverallRisk)
	assert.Equal(t, 0, resp.Score)
}

package reputation

import (
	"context"

	"github.com/mikey/phish-analyzer/internal/core"
)

// NoopClient is the degraded-mode collaborator used when no provider is
// configured. Every URL receives an "unavailable" insight.
type NoopClient struct{}

// NewNoopClient creates a collaborator that performs no lookups.
func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

// Lookup returns one unavailable insight per URL.
func (c *NoopClient) Lookup(_ context.Context, urls []string) []core.URLInsight {
	insights := make([]core.URLInsight, len(urls))
	for i, u := range urls {
		insights[i] = core.URLInsight{
			URL:     u,
			Status:  core.StatusUnavailable,
			Details: "No reputation provider configured; skipped live reputation lookup.",
		}
	}
	return insights
}

package core

import (
	"context"
)

// ReputationClient is the outbound contract to a URL reputation collaborator.
type ReputationClient interface {
	// Lookup returns exactly one insight per input URL, order preserved.
	// Implementations never fail the analysis: provider errors, timeouts and
	// missing credentials surface as per-URL insights with an "error" or
	// "unavailable" status.
	Lookup(ctx context.Context, urls []string) []URLInsight
}

// ReputationCache stores collaborator verdicts per URL with an expiry.
type ReputationCache interface {
	// Get retrieves a cached entry for a URL
	Get(ctx context.Context, url string) (*ReputationCacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *ReputationCacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, url string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}

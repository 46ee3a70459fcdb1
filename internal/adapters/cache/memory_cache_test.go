package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/phish-analyzer/internal/core"
)

func newTestEntry(url string, ttl time.Duration) *core.ReputationCacheEntry {
	now := time.Now()
	return &core.ReputationCacheEntry{
		URL:       url,
		Insight:   core.URLInsight{URL: url, Status: core.StatusClean},
		LastSeen:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	entry := newTestEntry("https://example.com/a", time.Hour)
	require.NoError(t, c.Set(ctx, entry))

	got, err := c.Get(ctx, entry.URL)
	require.NoError(t, err)
	assert.Equal(t, entry.Insight, got.Insight)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()

	_, err := c.Get(context.Background(), "https://nope.example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	entry := newTestEntry("https://example.com/old", -time.Minute)
	require.NoError(t, c.Set(ctx, entry))

	_, err := c.Get(ctx, entry.URL)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	entry := newTestEntry("https://example.com/b", time.Hour)
	require.NoError(t, c.Set(ctx, entry))
	require.NoError(t, c.Delete(ctx, entry.URL))

	_, err := c.Get(ctx, entry.URL)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCacheCleanup(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, newTestEntry("https://example.com/fresh", time.Hour)))
	require.NoError(t, c.Set(ctx, newTestEntry("https://example.com/stale", -time.Minute)))

	require.NoError(t, c.Cleanup(ctx))

	_, err := c.Get(ctx, "https://example.com/fresh")
	assert.NoError(t, err)
	_, err = c.Get(ctx, "https://example.com/stale")
	assert.ErrorIs(t, err, ErrNotFound)
}

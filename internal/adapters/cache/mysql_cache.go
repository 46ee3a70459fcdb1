package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/phish-analyzer/internal/core"
	"go.uber.org/zap"
)

// MySQLCache is a MySQL implementation of the ReputationCache interface
type MySQLCache struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMySQLCache creates a new MySQL reputation cache
func NewMySQLCache(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*MySQLCache, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	// Create table if it doesn't exist. The key length stays within the
	// utf8mb4 index limit.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS reputation_cache (
			url VARCHAR(768) PRIMARY KEY,
			reputation VARCHAR(32),
			status VARCHAR(32),
			details TEXT,
			findings TEXT,
			last_seen TIMESTAMP,
			expires_at TIMESTAMP,
			INDEX idx_reputation_expires_at (expires_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	cache := &MySQLCache{
		db:          db,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go cache.startCleanupTask()

	return cache, nil
}

// Get retrieves a cached entry for a URL
func (c *MySQLCache) Get(ctx context.Context, url string) (*core.ReputationCacheEntry, error) {
	var reputation, status, details, findings string
	var lastSeen, expiresAt time.Time

	err := c.db.QueryRowContext(ctx, `
		SELECT reputation, status, details, findings, last_seen, expires_at
		FROM reputation_cache
		WHERE url = ? AND expires_at > NOW()
	`, url).Scan(&reputation, &status, &details, &findings, &lastSeen, &expiresAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		c.logger.Error("Failed to query cache", zap.Error(err), zap.String("url", url))
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	return &core.ReputationCacheEntry{
		URL: url,
		Insight: core.URLInsight{
			URL:        url,
			Reputation: reputation,
			Status:     status,
			Details:    details,
			Findings:   splitFindings(findings),
		},
		LastSeen:  lastSeen,
		ExpiresAt: expiresAt,
	}, nil
}

// Set stores a cache entry
func (c *MySQLCache) Set(ctx context.Context, entry *core.ReputationCacheEntry) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO reputation_cache
		(url, reputation, status, details, findings, last_seen, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		reputation = VALUES(reputation),
		status = VALUES(status),
		details = VALUES(details),
		findings = VALUES(findings),
		last_seen = VALUES(last_seen),
		expires_at = VALUES(expires_at)
	`, entry.URL, entry.Insight.Reputation, entry.Insight.Status, entry.Insight.Details,
		joinFindings(entry.Insight.Findings), entry.LastSeen, entry.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Delete removes a cache entry
func (c *MySQLCache) Delete(ctx context.Context, url string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM reputation_cache WHERE url = ?`, url)
	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Cleanup removes expired entries
func (c *MySQLCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `DELETE FROM reputation_cache WHERE expires_at <= NOW()`)
	if err != nil {
		return fmt.Errorf("failed to clean up cache: %w", err)
	}

	if expired, err := result.RowsAffected(); err == nil {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int64("expired_count", expired))
	}
	return nil
}

// startCleanupTask starts a background task to clean up expired entries
func (c *MySQLCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(context.Background()); err != nil {
				c.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task and closes the connection pool
func (c *MySQLCache) Stop() {
	close(c.stopCh)
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close MySQL connection", zap.Error(err))
	}
}

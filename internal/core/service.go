package core

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AnalyzerService runs the detector battery over an email and combines the
// findings with collaborator reputation data into a single report. The
// service holds no mutable state; one instance serves concurrent analyses.
type AnalyzerService struct {
	detectors     []Detector
	reputation    ReputationClient
	cache         ReputationCache
	logger        *zap.Logger
	cacheEnabled  bool
	cacheTTL      time.Duration
	lookupTimeout time.Duration
}

// NewAnalyzerService creates an analyzer with the standard detectors built
// from the given lexicon.
func NewAnalyzerService(
	lexicon *Lexicon,
	reputation ReputationClient,
	cache ReputationCache,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
	lookupTimeout time.Duration,
) *AnalyzerService {
	return &AnalyzerService{
		detectors:     buildDetectors(lexicon),
		reputation:    reputation,
		cache:         cache,
		logger:        logger,
		cacheEnabled:  cacheEnabled,
		cacheTTL:      cacheTTL,
		lookupTimeout: lookupTimeout,
	}
}

// Analyze runs one complete analysis. It never fails for well-formed input;
// degraded reputation data is reported through insight statuses instead of
// errors.
func (s *AnalyzerService) Analyze(ctx context.Context, req *AnalysisRequest) *AnalysisResponse {
	snap := NewSnapshot(req)

	// Detectors share the immutable snapshot and have no dependencies on
	// each other, so they fan out concurrently. Results land in fixed
	// slots to keep the reported order stable.
	results := make([][]Finding, len(s.detectors))
	var group errgroup.Group
	for i, detector := range s.detectors {
		i, detector := i, detector
		group.Go(func() error {
			results[i] = detector.Detect(snap)
			return nil
		})
	}
	group.Wait() //nolint:errcheck // detectors do not fail

	var findings []Finding
	for _, result := range results {
		findings = append(findings, result...)
	}

	score, risk := ScoreFindings(findings)

	var insights []URLInsight
	if len(snap.URLs) > 0 {
		insights = s.lookupReputation(ctx, snap.URLs)
	}

	s.logger.Debug("Email analyzed",
		zap.Int("score", score),
		zap.String("risk", string(risk)),
		zap.Int("findings", len(findings)),
		zap.Int("urls", len(snap.URLs)))

	return &AnalysisResponse{
		OverallRisk:     risk,
		Score:           score,
		Findings:        findings,
		URLInsights:     insights,
		Recommendations: BuildRecommendations(risk, findings, len(snap.URLs) > 0),
	}
}

// lookupReputation resolves insights for the deduplicated URL list, serving
// cached verdicts where possible and bounding the live lookup with the
// configured timeout.
func (s *AnalyzerService) lookupReputation(ctx context.Context, urls []string) []URLInsight {
	insights := make([]URLInsight, len(urls))

	var missing []string
	missingIdx := make([]int, 0, len(urls))
	for i, u := range urls {
		if s.cacheEnabled && s.cache != nil {
			if entry, err := s.cache.Get(ctx, u); err == nil {
				s.logger.Debug("Reputation cache hit", zap.String("url", u))
				insights[i] = entry.Insight
				continue
			}
		}
		missing = append(missing, u)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return insights
	}

	lookupCtx := ctx
	if s.lookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
	}

	fresh := s.reputation.Lookup(lookupCtx, missing)
	for j, insight := range fresh {
		insights[missingIdx[j]] = insight
		if s.cacheEnabled && s.cache != nil && cacheable(insight) {
			entry := &ReputationCacheEntry{
				URL:       insight.URL,
				Insight:   insight,
				LastSeen:  time.Now(),
				ExpiresAt: time.Now().Add(s.cacheTTL),
			}
			if err := s.cache.Set(ctx, entry); err != nil {
				s.logger.Error("Failed to update reputation cache", zap.Error(err))
			}
		}
	}

	return insights
}

// cacheable excludes degraded insights so a later configured or recovered
// provider is retried instead of serving stale failures for a full TTL.
func cacheable(insight URLInsight) bool {
	return insight.Status != StatusError && insight.Status != StatusUnavailable
}

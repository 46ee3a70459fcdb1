package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/phish-analyzer/internal/config"
	"github.com/mikey/phish-analyzer/internal/core"
	"github.com/mikey/phish-analyzer/internal/factory"
	"github.com/mikey/phish-analyzer/internal/logging"
	"github.com/mikey/phish-analyzer/internal/ports"
	"github.com/mikey/phish-analyzer/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewReputationFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewLexiconFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFilterFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register reputation client
	if err := container.Provide(func(f *factory.ReputationFactory) (core.ReputationClient, error) {
		return f.CreateReputationClient()
	}); err != nil {
		return nil, err
	}

	// Register reputation cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.ReputationCache, error) {
		return f.CreateReputationCache()
	}); err != nil {
		return nil, err
	}

	// Register analyzer service. The cache TTL and lookup timeout are both
	// plain durations, so they are resolved here instead of being provided
	// separately where dig could not tell them apart.
	if err := container.Provide(func(
		cfg *config.Config,
		lexiconFactory *factory.LexiconFactory,
		cacheFactory *factory.CacheFactory,
		reputationClient core.ReputationClient,
		reputationCache core.ReputationCache,
		logger *zap.Logger,
	) (*core.AnalyzerService, error) {
		cacheTTL, err := cacheFactory.GetCacheTTL()
		if err != nil {
			return nil, err
		}
		lookupTimeout, err := time.ParseDuration(cfg.GetReputation().Timeout)
		if err != nil {
			return nil, err
		}
		return core.NewAnalyzerService(
			lexiconFactory.CreateLexicon(),
			reputationClient,
			reputationCache,
			logger,
			cacheFactory.IsCacheEnabled(),
			cacheTTL,
			lookupTimeout,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register email filter
	if err := container.Provide(func(f *factory.FilterFactory) (ports.EmailFilter, error) {
		return f.CreateEmailFilter()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

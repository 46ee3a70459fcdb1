package factory

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/phish-analyzer/internal/adapters/reputation"
	"github.com/mikey/phish-analyzer/internal/config"
	"github.com/mikey/phish-analyzer/internal/core"
)

// ReputationFactory creates URL reputation clients based on configuration
type ReputationFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewReputationFactory creates a new reputation factory
func NewReputationFactory(cfg *config.Config, logger *zap.Logger) *ReputationFactory {
	return &ReputationFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReputationClient creates a reputation client based on the
// configuration. A missing API key degrades to the no-op client rather
// than failing startup; the analyzer works without live reputation data.
func (f *ReputationFactory) CreateReputationClient() (core.ReputationClient, error) {
	repConfig := f.cfg.GetReputation()
	timeout, err := time.ParseDuration(repConfig.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid reputation timeout: %w", err)
	}

	switch repConfig.Provider {
	case "urlscan":
		usConfig := f.cfg.GetURLScan()
		if usConfig.APIKey == "" {
			f.logger.Warn("urlscan API key not configured, reputation lookups disabled")
			return reputation.NewNoopClient(), nil
		}
		return reputation.NewURLScanClient(usConfig.APIKey, usConfig.Endpoint, timeout, f.logger), nil
	case "virustotal":
		vtConfig := f.cfg.GetVirusTotal()
		if vtConfig.APIKey == "" {
			f.logger.Warn("VirusTotal API key not configured, reputation lookups disabled")
			return reputation.NewNoopClient(), nil
		}
		return reputation.NewVirusTotalClient(vtConfig.APIKey, vtConfig.Endpoint, timeout, f.logger), nil
	case "none", "":
		return reputation.NewNoopClient(), nil
	default:
		return nil, fmt.Errorf("unsupported reputation provider: %s", repConfig.Provider)
	}
}

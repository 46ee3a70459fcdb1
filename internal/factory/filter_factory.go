package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/phish-analyzer/internal/adapters/filter"
	"github.com/mikey/phish-analyzer/internal/adapters/httpapi"
	"github.com/mikey/phish-analyzer/internal/config"
	"github.com/mikey/phish-analyzer/internal/core"
	"github.com/mikey/phish-analyzer/internal/ports"
	"github.com/mikey/phish-analyzer/internal/utils"
	"github.com/mikey/phish-analyzer/internal/whitelist"
)

// FilterFactory creates serving surfaces based on configuration
type FilterFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	service       *core.AnalyzerService
	textProcessor *utils.TextProcessor
}

// NewFilterFactory creates a new filter factory
func NewFilterFactory(cfg *config.Config, logger *zap.Logger, service *core.AnalyzerService, textProcessor *utils.TextProcessor) *FilterFactory {
	return &FilterFactory{
		cfg:           cfg,
		logger:        logger,
		service:       service,
		textProcessor: textProcessor,
	}
}

// CreateEmailFilter creates a serving surface based on the configuration
func (f *FilterFactory) CreateEmailFilter() (ports.EmailFilter, error) {
	filterType := f.cfg.GetString("server.filter_type")

	switch filterType {
	case "http":
		return httpapi.NewServer(
			f.service,
			f.logger,
			f.cfg.GetString("server.listen_address"),
		), nil
	case "postfix":
		parser := filter.NewMessageParser(f.textProcessor, f.cfg.GetInt("analysis.max_body_size"))
		trusted := whitelist.NewChecker(f.cfg.GetStringSlice("analysis.trusted_domains"), f.logger)
		return filter.NewPostfixFilter(
			f.service,
			parser,
			trusted,
			f.logger,
			f.cfg.GetString("server.smtp_listen_address"),
			f.cfg.GetBool("server.block_high_risk"),
			f.cfg.GetString("server.headers.risk"),
			f.cfg.GetString("server.headers.score"),
			f.cfg.GetString("server.headers.findings"),
			f.cfg.GetString("server.postfix.address"),
			f.cfg.GetInt("server.postfix.port"),
			f.cfg.GetBool("server.postfix.enabled"),
		), nil
	case "cli":
		return filter.NewCliFilter(
			f.service,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
			f.cfg.GetBool("cli.json"),
		)
	default:
		return nil, fmt.Errorf("unsupported filter type: %s", filterType)
	}
}

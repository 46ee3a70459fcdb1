package di

import (
	"flag"
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

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Reputation provider flags
	Provider         string
	URLScanAPIKey    string
	VirusTotalAPIKey string
	LookupTimeout    string

	// Analysis flags
	MaxBodySize int

	// Input flags
	InputFile  string
	Verbose    bool
	JSONOutput bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Reputation provider flags
	flag.StringVar(&flags.Provider, "provider", "none", "URL reputation provider (urlscan, virustotal, none)")
	flag.StringVar(&flags.URLScanAPIKey, "urlscan-api-key", "", "API key for urlscan.io")
	flag.StringVar(&flags.VirusTotalAPIKey, "virustotal-api-key", "", "API key for VirusTotal")
	flag.StringVar(&flags.LookupTimeout, "lookup-timeout", "10s", "Timeout for reputation lookups")

	// Analysis flags
	flag.IntVar(&flags.MaxBodySize, "max-body-size", 65536, "Maximum email body size to analyze")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input email file (use stdin if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose output")
	flag.BoolVar(&flags.JSONOutput, "json", false, "Print the analysis report as JSON")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewReputationFactory); err != nil {
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

	// Register analyzer service with no cache; one-shot runs gain nothing
	// from caching reputation verdicts
	if err := container.Provide(func(
		cfg *config.Config,
		lexiconFactory *factory.LexiconFactory,
		reputationClient core.ReputationClient,
		logger *zap.Logger,
	) (*core.AnalyzerService, error) {
		lookupTimeout, err := time.ParseDuration(cfg.GetReputation().Timeout)
		if err != nil {
			return nil, err
		}
		return core.NewAnalyzerService(
			lexiconFactory.CreateLexicon(),
			reputationClient,
			nil,
			logger,
			false,
			time.Duration(0),
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

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set some cli specific settings
	v.Set("server.filter_type", "cli")
	v.Set("cli.verbose", flags.Verbose)
	v.Set("cli.json", flags.JSONOutput)

	// Set reputation provider
	v.Set("reputation.provider", flags.Provider)
	v.Set("reputation.timeout", flags.LookupTimeout)

	switch flags.Provider {
	case "urlscan":
		v.Set("urlscan.api_key", flags.URLScanAPIKey)
	case "virustotal":
		v.Set("virustotal.api_key", flags.VirusTotalAPIKey)
	}

	v.Set("analysis.max_body_size", flags.MaxBodySize)

	return config.NewFromViper(v)
}

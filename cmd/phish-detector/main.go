package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mikey/phish-analyzer/internal/adapters/filter"
	"github.com/mikey/phish-analyzer/internal/config"
	"github.com/mikey/phish-analyzer/internal/di"
	"github.com/mikey/phish-analyzer/internal/ports"
	"github.com/mikey/phish-analyzer/internal/utils"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Analysis failed: %v\n", err)
		os.Exit(1)
	}
}

// run reads one raw email, analyzes it and prints the report
func run(
	flags *di.CLIFlags,
	cfg *config.Config,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
	emailFilter ports.EmailFilter,
) error {
	defer logger.Sync()

	var emailReader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file %s: %w", flags.InputFile, err)
		}
		defer file.Close()
		emailReader = file
		logger.Debug("Reading email from file", zap.String("file", flags.InputFile))
	} else {
		emailReader = os.Stdin
		logger.Debug("Reading email from stdin")
	}

	parser := filter.NewMessageParser(textProcessor, cfg.GetInt("analysis.max_body_size"))
	req, err := parser.Parse(bufio.NewReader(emailReader))
	if err != nil {
		return fmt.Errorf("failed to parse email: %w", err)
	}

	if _, err := emailFilter.ProcessEmail(context.Background(), req); err != nil {
		return fmt.Errorf("failed to analyze email: %w", err)
	}

	return nil
}

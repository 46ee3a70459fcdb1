package filter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/phish-analyzer/internal/core"
)

// CliFilter implements a command-line interface for phishing analysis
type CliFilter struct {
	service    *core.AnalyzerService
	logger     *zap.Logger
	verbose    bool
	jsonOutput bool
}

// NewCliFilter creates a new CLI filter
func NewCliFilter(service *core.AnalyzerService, logger *zap.Logger, verbose bool, jsonOutput bool) (*CliFilter, error) {
	return &CliFilter{
		service:    service,
		logger:     logger,
		verbose:    verbose,
		jsonOutput: jsonOutput,
	}, nil
}

// ProcessEmail analyzes an email and displays the results
func (f *CliFilter) ProcessEmail(ctx context.Context, req *core.AnalysisRequest) (*core.AnalysisResponse, error) {
	f.logger.Debug("Processing email", zap.String("sender", req.Sender))

	if f.jsonOutput {
		result := f.service.Analyze(ctx, req)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return nil, err
		}
		return result, nil
	}

	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", req.Sender)
	if req.ReplyTo != "" {
		fmt.Printf("Reply-To: %s\n", req.ReplyTo)
	}
	fmt.Printf("Subject: %s\n", req.Subject)
	fmt.Printf("Body length: %d bytes\n", len(req.Body))
	if len(req.Attachments) > 0 {
		fmt.Printf("Attachments: %d\n", len(req.Attachments))
	}

	if f.verbose {
		preview := req.Body
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nBody preview:\n%s\n", preview)
	}

	fmt.Printf("\n=== Analysis ===\n")
	startTime := time.Now()
	result := f.service.Analyze(ctx, req)
	duration := time.Since(startTime)

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Overall risk: %s\n", result.OverallRisk)
	fmt.Printf("Score: %d/100\n", result.Score)

	if len(result.Findings) == 0 {
		fmt.Printf("Findings: none\n")
	} else {
		fmt.Printf("Findings:\n")
		for _, finding := range result.Findings {
			fmt.Printf("  [%s] %s: %s\n", finding.Severity, finding.Category, finding.Description)
			if f.verbose {
				for _, ev := range finding.Evidence {
					fmt.Printf("      - %s\n", ev)
				}
			}
		}
	}

	if len(result.URLInsights) > 0 {
		fmt.Printf("URL insights:\n")
		for _, insight := range result.URLInsights {
			fmt.Printf("  %s: %s (%s)\n", insight.URL, insight.Status, insight.Reputation)
		}
	}

	fmt.Printf("Recommendations:\n")
	for _, rec := range result.Recommendations {
		fmt.Printf("  - %s\n", rec)
	}
	fmt.Printf("Processing time: %v\n", duration)

	return result, nil
}

// Start is a no-op for the CLI filter
func (f *CliFilter) Start() error {
	return nil
}

// Stop is a no-op for the CLI filter
func (f *CliFilter) Stop() error {
	return nil
}

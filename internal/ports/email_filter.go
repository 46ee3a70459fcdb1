package ports

import (
	"context"

	"github.com/mikey/phish-analyzer/internal/core"
)

// EmailFilter defines the interface for a serving surface that feeds emails
// into the analyzer
type EmailFilter interface {
	// ProcessEmail analyzes one email and returns the report
	ProcessEmail(ctx context.Context, req *core.AnalysisRequest) (*core.AnalysisResponse, error)

	// Start starts the serving surface
	Start() error

	// Stop stops the serving surface
	Stop() error
}

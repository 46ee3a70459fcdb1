package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuspiciousLinksDetector(t *testing.T) {
	detector := NewSuspiciousLinksDetector(DefaultLexicon())

	tests := []struct {
		name             string
		urls             []string
		expectFinding    bool
		expectedSeverity RiskLevel
	}{
		{
			name:          "clean https link",
			urls:          []string{"https://example.com/docs"},
			expectFinding: false,
		},
		{
			name:             "cleartext http is medium",
			urls:             []string{"http://example.com/login"},
			expectFinding:    true,
			expectedSeverity: RiskMedium,
		},
		{
			name:             "ip literal host is high",
			urls:             []string{"https://203.0.113.7/verify"},
			expectFinding:    true,
			expectedSeverity: RiskHigh,
		},
		{
			name:             "typosquatted domain is high",
			urls:             []string{"https://paypa1-secure.xyz/verify"},
			expectFinding:    true,
			expectedSeverity: RiskHigh,
		},
		{
			name:             "repeated character run counts as typosquat",
			urls:             []string{"https://freee-money.com/win"},
			expectFinding:    true,
			expectedSeverity: RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewSnapshot(&AnalysisRequest{Body: "hello", URLs: tt.urls})
			findings := detector.Detect(snap)

			if !tt.expectFinding {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.Equal(t, CategoryLinks, findings[0].Category)
			assert.Equal(t, tt.expectedSeverity, findings[0].Severity)
		})
	}
}

func TestSuspiciousLinksDetectorEscalationIsSticky(t *testing.T) {
	detector := NewSuspiciousLinksDetector(DefaultLexicon())

	// The IP literal escalates first; the later clean-looking cleartext URL
	// must not pull the severity back down.
	snap := NewSnapshot(&AnalysisRequest{
		Body: "hello",
		URLs: []string{"https://203.0.113.7/a", "http://example.com/b"},
	})

	findings := detector.Detect(snap)
	require.Len(t, findings, 1)
	assert.Equal(t, RiskHigh, findings[0].Severity)
	assert.Len(t, findings[0].Evidence, 2)
}

func TestSuspiciousLinksDetectorVolumeEvidence(t *testing.T) {
	detector := NewSuspiciousLinksDetector(DefaultLexicon())

	urls := make([]string, 6)
	for i := range urls {
		urls[i] = fmt.Sprintf("http://example%d.com/p", i)
	}
	snap := NewSnapshot(&AnalysisRequest{Body: "hello", URLs: urls})

	findings := detector.Detect(snap)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Evidence, "Email contains a high number of links (6).")
}

func TestSuspiciousLinksDetectorNoURLs(t *testing.T) {
	detector := NewSuspiciousLinksDetector(DefaultLexicon())
	snap := NewSnapshot(&AnalysisRequest{Body: "nothing to see"})

	assert.Empty(t, detector.Detect(snap))
}

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitiveDataDetector(t *testing.T) {
	detector := NewSensitiveDataDetector(DefaultLexicon())

	tests := []struct {
		name          string
		body          string
		expectFinding bool
		expectedHits  int
	}{
		{
			name:          "no sensitive references",
			body:          "The quarterly report is attached for review.",
			expectFinding: false,
		},
		{
			name:          "single keyword",
			body:          "Please confirm your password to continue.",
			expectFinding: true,
			expectedHits:  1,
		},
		{
			name:          "multiple keywords each get a snippet",
			body:          "Enter your password and your social security number on the portal.",
			expectFinding: true,
			expectedHits:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewSnapshot(&AnalysisRequest{Body: tt.body})
			findings := detector.Detect(snap)

			if !tt.expectFinding {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.Equal(t, CategorySensitive, findings[0].Category)
			assert.Equal(t, RiskHigh, findings[0].Severity)
			assert.Len(t, findings[0].Evidence, tt.expectedHits)
		})
	}
}

func TestSensitiveDataDetectorSnippetContext(t *testing.T) {
	detector := NewSensitiveDataDetector(DefaultLexicon())
	padding := strings.Repeat("x", 100)
	snap := NewSnapshot(&AnalysisRequest{
		Body: padding + " send us your password today " + padding,
	})

	findings := detector.Detect(snap)
	require.Len(t, findings, 1)
	require.Len(t, findings[0].Evidence, 1)

	snippet := findings[0].Evidence[0]
	assert.Contains(t, snippet, "password")
	assert.Less(t, len(snippet), len(snap.Body))
}

func TestSensitiveDataDetectorMatchesCaseInsensitively(t *testing.T) {
	detector := NewSensitiveDataDetector(DefaultLexicon())
	snap := NewSnapshot(&AnalysisRequest{Body: "Update your PIN before travelling."})

	findings := detector.Detect(snap)
	require.Len(t, findings, 1)
	assert.Equal(t, RiskHigh, findings[0].Severity)
}

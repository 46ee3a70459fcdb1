package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commonFiller builds a body out of high-frequency words so the unusual
// vocabulary indicator stays quiet.
func commonFiller(n int) []string {
	pool := []string{"the", "and", "that", "have", "with", "from", "they", "will", "there", "would"}
	words := make([]string, n)
	for i := range words {
		words[i] = pool[i%len(pool)]
	}
	return words
}

func TestLanguageStyleDetector(t *testing.T) {
	detector := NewLanguageStyleDetector(DefaultLexicon())

	t.Run("short bodies are skipped", func(t *testing.T) {
		snap := NewSnapshot(&AnalysisRequest{Body: "xqzvkw plmzqx wvqxk zzzz"})
		assert.Empty(t, detector.Detect(snap))
	})

	t.Run("ordinary prose passes", func(t *testing.T) {
		body := strings.Join(commonFiller(25), " ")
		snap := NewSnapshot(&AnalysisRequest{Body: body})
		assert.Empty(t, detector.Detect(snap))
	})

	t.Run("gibberish-heavy body is low severity", func(t *testing.T) {
		words := append(commonFiller(18), "xqzvkw", "plmzqx", "wvqxkz", "zzzzk", "qwxzv", "kxqzw")
		snap := NewSnapshot(&AnalysisRequest{Body: strings.Join(words, " ")})

		findings := detector.Detect(snap)
		require.Len(t, findings, 1)
		assert.Equal(t, CategoryLanguage, findings[0].Category)
		assert.Equal(t, RiskLow, findings[0].Severity)
		assert.Equal(t, []string{"High ratio of uncommon words detected."}, findings[0].Evidence)
	})

	t.Run("gibberish plus stacked punctuation is medium", func(t *testing.T) {
		words := append(commonFiller(18), "xqzvkw", "plmzqx", "wvqxkz", "zzzzk", "qwxzv", "kxqzw")
		body := strings.Join(words, " ") + " win big???"
		snap := NewSnapshot(&AnalysisRequest{Body: body})

		findings := detector.Detect(snap)
		require.Len(t, findings, 1)
		assert.Equal(t, RiskMedium, findings[0].Severity)
		assert.Len(t, findings[0].Evidence, 2)
	})

	t.Run("irregular spacing counts as evidence", func(t *testing.T) {
		body := strings.Join(commonFiller(25), " ") + "    claim here"
		snap := NewSnapshot(&AnalysisRequest{Body: body})

		findings := detector.Detect(snap)
		require.Len(t, findings, 1)
		assert.Equal(t, RiskLow, findings[0].Severity)
		assert.Equal(t, []string{"Irregular spacing/padding detected within the body."}, findings[0].Evidence)
	})
}

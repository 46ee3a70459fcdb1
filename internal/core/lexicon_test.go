package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLexiconIsPopulated(t *testing.T) {
	lexicon := DefaultLexicon()

	assert.NotEmpty(t, lexicon.UrgencyPhrases)
	assert.NotEmpty(t, lexicon.SensitiveKeywords)
	assert.NotEmpty(t, lexicon.SuspiciousTLDs)
	assert.NotEmpty(t, lexicon.LegitimateDomains)
	assert.NotEmpty(t, lexicon.RiskyExtensions)
	assert.NotEmpty(t, lexicon.CommonWords)
	assert.NotEmpty(t, lexicon.CommonBigrams)
}

func TestLexiconMerge(t *testing.T) {
	base := DefaultLexicon()

	t.Run("nil override keeps defaults", func(t *testing.T) {
		merged := base.Merge(nil)
		assert.Equal(t, base.UrgencyPhrases, merged.UrgencyPhrases)
	})

	t.Run("non-empty lists replace", func(t *testing.T) {
		merged := base.Merge(&Lexicon{UrgencyPhrases: []string{"right away"}})
		assert.Equal(t, []string{"right away"}, merged.UrgencyPhrases)
		assert.Equal(t, base.SensitiveKeywords, merged.SensitiveKeywords)
	})

	t.Run("empty lists keep defaults", func(t *testing.T) {
		merged := base.Merge(&Lexicon{UrgencyPhrases: []string{}})
		assert.Equal(t, base.UrgencyPhrases, merged.UrgencyPhrases)
	})

	t.Run("merge does not mutate the base", func(t *testing.T) {
		base.Merge(&Lexicon{RiskyExtensions: []string{".xpi"}})
		assert.Contains(t, base.RiskyExtensions, ".exe")
	})
}

package factory

import (
	"github.com/mikey/phish-analyzer/internal/config"
	"github.com/mikey/phish-analyzer/internal/core"
)

// LexiconFactory builds the detector lexicon from the built-in defaults
// plus any configured overrides
type LexiconFactory struct {
	cfg *config.Config
}

// NewLexiconFactory creates a new lexicon factory
func NewLexiconFactory(cfg *config.Config) *LexiconFactory {
	return &LexiconFactory{cfg: cfg}
}

// CreateLexicon merges configured list overrides over the defaults.
// Empty config lists keep the built-in entries.
func (f *LexiconFactory) CreateLexicon() *core.Lexicon {
	overrides := f.cfg.GetLexicon()
	return core.DefaultLexicon().Merge(&core.Lexicon{
		UrgencyPhrases:      overrides.UrgencyPhrases,
		SensitiveKeywords:   overrides.SensitiveKeywords,
		SuspiciousTLDs:      overrides.SuspiciousTLDs,
		MisspellingPatterns: overrides.MisspellingPatterns,
		TyposquatPatterns:   overrides.TyposquatPatterns,
		RiskyExtensions:     overrides.RiskyExtensions,
	})
}

package core

import (
	"regexp"
	"strings"
)

var (
	punctuationRun = regexp.MustCompile(`[?!.]{3,}`)
	whitespaceRun  = regexp.MustCompile(`\s{3,}`)
)

// minWordsForAnalysis is the token count below which the body carries too
// little signal for style heuristics.
const minWordsForAnalysis = 20

// unusualRatioThreshold is the share of unusual tokens above which the
// vocabulary indicator fires.
const unusualRatioThreshold = 0.2

// LanguageStyleDetector scores writing-quality indicators: unusual
// vocabulary, stacked terminal punctuation and irregular spacing.
type LanguageStyleDetector struct {
	commonWords   map[string]struct{}
	commonBigrams map[string]struct{}
}

// NewLanguageStyleDetector creates a detector over the lexicon's frequency
// sets.
func NewLanguageStyleDetector(lexicon *Lexicon) *LanguageStyleDetector {
	return &LanguageStyleDetector{
		commonWords:   stringSet(lexicon.CommonWords),
		commonBigrams: stringSet(lexicon.CommonBigrams),
	}
}

// Name returns the finding category.
func (d *LanguageStyleDetector) Name() string { return CategoryLanguage }

// Detect skips bodies with fewer than 20 alphabetic words, then evaluates
// three independent indicators.
func (d *LanguageStyleDetector) Detect(snap *Snapshot) []Finding {
	if len(snap.Words) < minWordsForAnalysis {
		return nil
	}

	var evidence []string
	if d.unusualTokenRatio(snap.Words) > unusualRatioThreshold {
		evidence = append(evidence, "High ratio of uncommon words detected.")
	}
	if punctuationRun.MatchString(snap.Body) {
		evidence = append(evidence, "Repeated punctuation suggests informal tone.")
	}
	if whitespaceRun.MatchString(snap.Body) {
		evidence = append(evidence, "Irregular spacing/padding detected within the body.")
	}

	if len(evidence) == 0 {
		return nil
	}

	severity := RiskLow
	if len(evidence) > 1 {
		severity = RiskMedium
	}
	return []Finding{{
		Category:    CategoryLanguage,
		Description: "Writing quality indicators suggest potential social engineering.",
		Severity:    severity,
		Evidence:    evidence,
	}}
}

// unusualTokenRatio measures how many tokens look machine-generated or
// misspelled.
func (d *LanguageStyleDetector) unusualTokenRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	unusual := 0
	for _, word := range words {
		if d.looksUnusual(strings.ToLower(word)) {
			unusual++
		}
	}
	return float64(unusual) / float64(len(words))
}

// looksUnusual applies the token heuristics: digits, character runs, or a
// high share of rare consecutive-character pairs.
func (d *LanguageStyleDetector) looksUnusual(token string) bool {
	runes := []rune(token)
	if len(runes) <= 3 {
		return false
	}
	if _, ok := d.commonWords[token]; ok {
		return false
	}
	if strings.ContainsAny(token, "0123456789") {
		return true
	}
	if hasRepeatedRun(token, 3) {
		return true
	}

	rarePairs := 0
	for i := 0; i+1 < len(runes); i++ {
		pair := string(runes[i]) + string(runes[i+1])
		if _, ok := d.commonBigrams[pair]; !ok {
			rarePairs++
		}
	}
	threshold := (len(runes) + 2) / 3
	if threshold < 2 {
		threshold = 2
	}
	return rarePairs >= threshold
}

package core

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var exclamationRun = regexp.MustCompile(`!{2,}`)

// UrgencyDetector flags artificial time pressure: known urgency phrases,
// shouting in all-caps, and stacked exclamation marks.
type UrgencyDetector struct {
	phrases []string
}

// NewUrgencyDetector creates an urgency detector over the lexicon's phrase list.
func NewUrgencyDetector(lexicon *Lexicon) *UrgencyDetector {
	return &UrgencyDetector{phrases: lexicon.UrgencyPhrases}
}

// Name returns the finding category.
func (d *UrgencyDetector) Name() string { return CategoryUrgency }

// Detect checks subject and body for urgency signals.
func (d *UrgencyDetector) Detect(snap *Snapshot) []Finding {
	var matched []string
	for _, phrase := range d.phrases {
		if strings.Contains(snap.LoweredText, phrase) {
			matched = append(matched, phrase)
		}
	}
	sort.Strings(matched)

	capsWords := 0
	for _, word := range strings.Fields(snap.Body) {
		if len([]rune(word)) > 3 && isShouted(word) {
			capsWords++
		}
	}

	var evidence []string
	if len(matched) > 0 {
		evidence = append(evidence, fmt.Sprintf("Urgency phrases detected: %s", strings.Join(matched, ", ")))
	}
	if capsWords >= 3 {
		evidence = append(evidence, "Multiple all-caps words detected.")
	}
	if exclamationRun.MatchString(snap.Body) {
		evidence = append(evidence, "Repeated exclamation marks found.")
	}

	if len(evidence) == 0 {
		return nil
	}

	severity := RiskMedium
	if len(evidence) > 1 {
		severity = RiskHigh
	}
	return []Finding{{
		Category:    CategoryUrgency,
		Description: "Signals of artificial urgency present in subject/body.",
		Severity:    severity,
		Evidence:    evidence,
	}}
}

// isShouted reports whether a word has at least one letter and no lower-case
// letters.
func isShouted(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

package core

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// snippetWindow is the number of bytes of surrounding context captured on
// each side of a matched keyword.
const snippetWindow = 40

// SensitiveDataDetector flags references to credentials or personal data.
// Any hit is treated as maximal severity regardless of count.
type SensitiveDataDetector struct {
	keywords []string
}

// NewSensitiveDataDetector creates a detector over the lexicon's sensitive
// keyword list.
func NewSensitiveDataDetector(lexicon *Lexicon) *SensitiveDataDetector {
	keywords := append([]string(nil), lexicon.SensitiveKeywords...)
	sort.Strings(keywords)
	return &SensitiveDataDetector{keywords: keywords}
}

// Name returns the finding category.
func (d *SensitiveDataDetector) Name() string { return CategorySensitive }

// Detect matches the body against the keyword list and captures one context
// snippet around the first occurrence of each hit.
func (d *SensitiveDataDetector) Detect(snap *Snapshot) []Finding {
	lowered := strings.ToLower(snap.Body)

	var hits []string
	for _, keyword := range d.keywords {
		if strings.Contains(lowered, keyword) {
			hits = append(hits, keyword)
		}
	}
	if len(hits) == 0 {
		return nil
	}

	evidence := extractContext(snap.Body, lowered, hits)
	if len(evidence) == 0 {
		evidence = hits
	}

	return []Finding{{
		Category:    CategorySensitive,
		Description: "Email references requests for sensitive or credential information.",
		Severity:    RiskHigh,
		Evidence:    evidence,
	}}
}

// extractContext cuts a trimmed window of text around the first occurrence
// of each keyword. Keywords that cannot be located are skipped.
func extractContext(body, lowered string, keywords []string) []string {
	var snippets []string
	for _, keyword := range keywords {
		start := strings.Index(lowered, keyword)
		if start < 0 {
			continue
		}
		lo := start - snippetWindow
		if lo < 0 {
			lo = 0
		}
		hi := start + len(keyword) + snippetWindow
		if hi > len(body) {
			hi = len(body)
		}
		snippet := strings.TrimSpace(trimPartialRunes(body[lo:hi]))
		if snippet != "" {
			snippets = append(snippets, snippet)
		}
	}
	return snippets
}

// trimPartialRunes drops byte fragments of multi-byte runes cut off at
// either end of a window.
func trimPartialRunes(s string) string {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r != utf8.RuneError || size != 1 {
			break
		}
		s = s[size:]
	}
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

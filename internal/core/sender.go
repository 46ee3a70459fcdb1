package core

import (
	"fmt"
	"sort"
	"strings"
)

// SenderAnomalyDetector compares the sender identity against the reply-to
// address and the link domains, and screens the sender domain itself for
// spoofing patterns.
type SenderAnomalyDetector struct {
	suspiciousTLDs      []string
	legitimateDomains   map[string][]string
	brands              []string
	misspellingPatterns []string
}

// NewSenderAnomalyDetector creates a detector over the lexicon's domain lists.
func NewSenderAnomalyDetector(lexicon *Lexicon) *SenderAnomalyDetector {
	// Map iteration order is random; fix the brand order once so evidence
	// is deterministic across runs.
	brands := make([]string, 0, len(lexicon.LegitimateDomains))
	for brand := range lexicon.LegitimateDomains {
		brands = append(brands, brand)
	}
	sort.Strings(brands)

	return &SenderAnomalyDetector{
		suspiciousTLDs:      lexicon.SuspiciousTLDs,
		legitimateDomains:   lexicon.LegitimateDomains,
		brands:              brands,
		misspellingPatterns: lexicon.MisspellingPatterns,
	}
}

// Name returns the finding category.
func (d *SenderAnomalyDetector) Name() string { return CategorySender }

// Detect accumulates independent evidence items; two or more raise the
// severity to high.
func (d *SenderAnomalyDetector) Detect(snap *Snapshot) []Finding {
	var evidence []string

	if snap.SenderDomain != "" && snap.ReplyToDomain != "" && snap.SenderDomain != snap.ReplyToDomain {
		evidence = append(evidence, fmt.Sprintf(
			"Sender domain `%s` differs from reply-to `%s`.", snap.SenderDomain, snap.ReplyToDomain))
	}

	urlDomains := snap.UniqueURLDomains()
	if snap.SenderDomain != "" && len(urlDomains) > 0 && !containsString(urlDomains, snap.SenderDomain) {
		sample := urlDomains
		if len(sample) > 3 {
			sample = sample[:3]
		}
		evidence = append(evidence, fmt.Sprintf(
			"Links point to domains (%s) that do not match sender domain `%s`.",
			strings.Join(sample, ", "), snap.SenderDomain))
	}

	if snap.SenderDomain != "" {
		evidence = append(evidence, d.domainEvidence(snap.SenderDomain)...)
	}

	if len(evidence) == 0 {
		return nil
	}

	severity := RiskMedium
	if len(evidence) > 1 {
		severity = RiskHigh
	}
	return []Finding{{
		Category:    CategorySender,
		Description: "Sender information conflicts with link or reply-to domains.",
		Severity:    severity,
		Evidence:    evidence,
	}}
}

// domainEvidence screens the sender domain alone for spoofing indicators.
func (d *SenderAnomalyDetector) domainEvidence(domain string) []string {
	var evidence []string

	if tld := TLDOf(domain); tld != "" && containsString(d.suspiciousTLDs, tld) {
		evidence = append(evidence, fmt.Sprintf("Sender domain uses suspicious TLD `%s`.", tld))
	}

	for _, brand := range d.brands {
		if !strings.Contains(domain, brand) {
			continue
		}
		legitimate := false
		for _, legit := range d.legitimateDomains[brand] {
			if strings.Contains(domain, legit) {
				legitimate = true
				break
			}
		}
		if !legitimate {
			evidence = append(evidence, fmt.Sprintf("Possible %s domain spoofing in `%s`.", brand, domain))
		}
	}

	if strings.Count(domain, ".") > 3 {
		evidence = append(evidence, "Excessive subdomain depth suggests obfuscation.")
	}

	if hasRepeatedRun(strings.ReplaceAll(domain, ".", ""), 3) {
		evidence = append(evidence, fmt.Sprintf("Repeated characters in sender domain `%s`.", domain))
	}

	for _, pattern := range d.misspellingPatterns {
		if strings.Contains(domain, pattern) {
			evidence = append(evidence, fmt.Sprintf("Sender domain resembles known misspelling `%s`.", pattern))
			break
		}
	}

	return evidence
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

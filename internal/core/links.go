package core

import (
	"fmt"
	"strings"
)

// maxExpectedLinks is the URL count above which volume alone is evidence.
const maxExpectedLinks = 5

// SuspiciousLinksDetector inspects every extracted URL with a resolvable
// domain for IP-literal hosts, typosquatting patterns and cleartext schemes.
type SuspiciousLinksDetector struct {
	typosquatPatterns []string
}

// NewSuspiciousLinksDetector creates a detector over the lexicon's typosquat
// pattern list.
func NewSuspiciousLinksDetector(lexicon *Lexicon) *SuspiciousLinksDetector {
	return &SuspiciousLinksDetector{typosquatPatterns: lexicon.TyposquatPatterns}
}

// Name returns the finding category.
func (d *SuspiciousLinksDetector) Name() string { return CategoryLinks }

// Detect folds over the URLs in order. Severity starts at medium and
// escalates to high the moment an IP-literal or typosquat is recorded; the
// escalation is sticky and never drops back.
func (d *SuspiciousLinksDetector) Detect(snap *Snapshot) []Finding {
	if len(snap.URLs) == 0 {
		return nil
	}

	var evidence []string
	severity := RiskMedium
	for i, u := range snap.URLs {
		domain := snap.URLDomains[i]
		if domain == "" {
			continue
		}

		switch {
		case looksLikeIPv4(domain):
			severity = RiskHigh
			evidence = append(evidence, fmt.Sprintf("URL `%s` uses raw IP address.", u))
		case d.looksTyposquatted(domain):
			severity = RiskHigh
			evidence = append(evidence, fmt.Sprintf("Domain `%s` appears typosquatted.", domain))
		}

		if strings.HasPrefix(strings.ToLower(u), "http://") {
			evidence = append(evidence, fmt.Sprintf("URL `%s` is not served over HTTPS.", u))
		}
	}

	if len(snap.URLs) > maxExpectedLinks {
		evidence = append(evidence, fmt.Sprintf("Email contains a high number of links (%d).", len(snap.URLs)))
	}

	if len(evidence) == 0 {
		return nil
	}

	return []Finding{{
		Category:    CategoryLinks,
		Description: "Potentially malicious URLs detected in message body.",
		Severity:    severity,
		Evidence:    evidence,
	}}
}

// looksTyposquatted matches the domain against the fixed pattern list and
// checks for runs of repeated characters outside the dots.
func (d *SuspiciousLinksDetector) looksTyposquatted(domain string) bool {
	for _, pattern := range d.typosquatPatterns {
		if strings.Contains(domain, pattern) {
			return true
		}
	}
	return hasRepeatedRun(strings.ReplaceAll(domain, ".", ""), 3)
}

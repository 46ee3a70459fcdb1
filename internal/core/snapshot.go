package core

import (
	"sort"
	"strings"
)

// Snapshot is the normalized, immutable view of an AnalysisRequest that all
// detectors share. Building it never fails; malformed fragments are dropped
// rather than reported.
type Snapshot struct {
	Subject string
	Body    string

	// LoweredText is subject and body joined by a newline, case-folded once
	// for all substring matching.
	LoweredText string

	// Sender and ReplyTo are normalized bare addresses, "" when absent or
	// malformed.
	Sender        string
	ReplyTo       string
	SenderDomain  string
	ReplyToDomain string

	// URLs is the deduplicated, order-preserving merge of explicit URLs and
	// URL-like substrings from the body. URLDomains is aligned with URLs;
	// an entry is "" when no domain could be resolved.
	URLs       []string
	URLDomains []string

	Attachments []string

	// Words are the alphabetic tokens of the body.
	Words []string
}

// NewSnapshot normalizes a request into the form the detectors consume.
func NewSnapshot(req *AnalysisRequest) *Snapshot {
	snap := &Snapshot{
		Subject:     req.Subject,
		Body:        req.Body,
		LoweredText: strings.ToLower(req.Subject + "\n" + req.Body),
		Sender:      NormalizeAddress(req.Sender),
		ReplyTo:     NormalizeAddress(req.ReplyTo),
		URLs:        CollectURLs(req.URLs, req.Body),
		Attachments: req.Attachments,
		Words:       wordPattern.FindAllString(req.Body, -1),
	}
	snap.SenderDomain = DomainFromAddress(snap.Sender)
	snap.ReplyToDomain = DomainFromAddress(snap.ReplyTo)

	snap.URLDomains = make([]string, len(snap.URLs))
	for i, u := range snap.URLs {
		snap.URLDomains[i] = DomainFromURL(u)
	}
	return snap
}

// UniqueURLDomains returns the distinct resolvable link domains in sorted
// order, for deterministic evidence strings.
func (s *Snapshot) UniqueURLDomains() []string {
	seen := make(map[string]struct{})
	for _, d := range s.URLDomains {
		if d == "" {
			continue
		}
		seen[d] = struct{}{}
	}
	domains := make([]string, 0, len(seen))
	for d := range seen {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}

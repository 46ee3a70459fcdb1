package core

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var (
	urlPattern = regexp.MustCompile(
		`(?i)\b(?:https?://|www\.)[^\s<>"']+|\b[a-z0-9][a-z0-9\-_]*\.[a-z]{2,}(?:/[^\s<>"']*)?`)
	ipv4Pattern = regexp.MustCompile(`^(?:\d{1,3}\.){3}\d{1,3}$`)
	wordPattern = regexp.MustCompile(`[A-Za-z']+`)
)

// CollectURLs merges the explicitly supplied URLs with URL-like substrings
// found in the body, preserving first-seen order and dropping duplicates.
// Bare "www." matches are canonicalized by prepending https://.
func CollectURLs(explicit []string, body string) []string {
	var urls []string
	seen := make(map[string]struct{})
	add := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	for _, u := range explicit {
		add(strings.TrimSpace(u))
	}
	for _, match := range urlPattern.FindAllString(body, -1) {
		if strings.HasPrefix(strings.ToLower(match), "www.") {
			match = "https://" + match
		}
		add(match)
	}
	return urls
}

// NormalizeAddress reduces an address header value to a bare lower-cased
// email address, stripping any display name. Malformed input yields "".
func NormalizeAddress(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(addr.Address)
}

// DomainFromAddress returns the lower-cased domain part of an email address,
// or "" when there is none.
func DomainFromAddress(address string) string {
	at := strings.LastIndex(address, "@")
	if at < 0 || at == len(address)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(address[at+1:]))
}

// DomainFromURL resolves the registrable domain (eTLD+1) of a URL. Hosts
// without a recognized public suffix fall back to the bare host, raw IPv4
// hosts are returned as-is, and anything unparsable yields "".
func DomainFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return ""
	}
	if ipv4Pattern.MatchString(host) {
		return host
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return registrable
}

// TLDOf returns the public suffix of a domain with a leading dot, or "".
func TLDOf(domain string) string {
	suffix, _ := publicsuffix.PublicSuffix(domain)
	if suffix == "" || suffix == domain {
		return ""
	}
	return "." + suffix
}

// looksLikeIPv4 reports whether the whole domain is a dotted-quad literal.
func looksLikeIPv4(domain string) bool {
	return ipv4Pattern.MatchString(domain)
}

// hasRepeatedRun reports whether s contains n or more identical consecutive
// runes. The regexp package cannot express backreferences, so this is a
// plain scan.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	count := 0
	for _, r := range s {
		if r == prev {
			count++
		} else {
			prev = r
			count = 1
		}
		if count >= n {
			return true
		}
	}
	return false
}

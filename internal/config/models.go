package config

// ReputationConfig represents the reputation collaborator selection
type ReputationConfig struct {
	Provider string
	Timeout  string
}

// URLScanConfig represents the configuration for urlscan.io
type URLScanConfig struct {
	APIKey   string
	Endpoint string
}

// VirusTotalConfig represents the configuration for VirusTotal
type VirusTotalConfig struct {
	APIKey   string
	Endpoint string
}

// LexiconConfig carries the detector list overrides. Empty lists keep the
// built-in defaults.
type LexiconConfig struct {
	UrgencyPhrases      []string
	SensitiveKeywords   []string
	SuspiciousTLDs      []string
	MisspellingPatterns []string
	TyposquatPatterns   []string
	RiskyExtensions     []string
}

// GetReputation returns the reputation collaborator configuration
func (c *Config) GetReputation() ReputationConfig {
	return ReputationConfig{
		Provider: c.GetString("reputation.provider"),
		Timeout:  c.GetString("reputation.timeout"),
	}
}

// GetURLScan returns the urlscan.io configuration
func (c *Config) GetURLScan() URLScanConfig {
	return URLScanConfig{
		APIKey:   c.GetString("urlscan.api_key"),
		Endpoint: c.GetString("urlscan.endpoint"),
	}
}

// GetVirusTotal returns the VirusTotal configuration
func (c *Config) GetVirusTotal() VirusTotalConfig {
	return VirusTotalConfig{
		APIKey:   c.GetString("virustotal.api_key"),
		Endpoint: c.GetString("virustotal.endpoint"),
	}
}

// GetLexicon returns the configured lexicon overrides
func (c *Config) GetLexicon() LexiconConfig {
	return LexiconConfig{
		UrgencyPhrases:      c.GetStringSlice("analysis.lexicon.urgency_phrases"),
		SensitiveKeywords:   c.GetStringSlice("analysis.lexicon.sensitive_keywords"),
		SuspiciousTLDs:      c.GetStringSlice("analysis.lexicon.suspicious_tlds"),
		MisspellingPatterns: c.GetStringSlice("analysis.lexicon.misspelling_patterns"),
		TyposquatPatterns:   c.GetStringSlice("analysis.lexicon.typosquat_patterns"),
		RiskyExtensions:     c.GetStringSlice("analysis.lexicon.risky_extensions"),
	}
}

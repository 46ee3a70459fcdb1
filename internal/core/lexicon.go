package core

// Lexicon holds the phrase, keyword and pattern lists the detectors match
// against. Keeping them as data rather than code lets deployments swap in
// their own lists through configuration and lets tests run with synthetic
// ones.
type Lexicon struct {
	// UrgencyPhrases are substrings that signal artificial time pressure.
	UrgencyPhrases []string

	// SensitiveKeywords are substrings that reference credentials or
	// personally identifying data.
	SensitiveKeywords []string

	// SuspiciousTLDs are top-level domains (with leading dot) frequently
	// seen in throwaway phishing infrastructure.
	SuspiciousTLDs []string

	// LegitimateDomains maps a brand token to the domains that brand
	// actually uses. A sender domain containing the token but none of the
	// listed domains is treated as spoofing.
	LegitimateDomains map[string][]string

	// MisspellingPatterns are known look-alike spellings of common services.
	MisspellingPatterns []string

	// TyposquatPatterns are substrings that mark a link domain as a likely
	// typosquat.
	TyposquatPatterns []string

	// RiskyExtensions are attachment filename suffixes commonly used to
	// deliver malware.
	RiskyExtensions []string

	// CommonWords is a small set of high-frequency English words excluded
	// from the unusual-token heuristic.
	CommonWords []string

	// CommonBigrams are frequent consecutive character pairs; tokens built
	// mostly from pairs outside this set look machine-generated.
	CommonBigrams []string
}

// DefaultLexicon returns the built-in lists. Callers must not mutate the
// returned slices; Merge copies before overriding.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		UrgencyPhrases: []string{
			"act now",
			"asap",
			"bank verification needed",
			"urgent",
			"immediately",
			"limited time",
			"suspend",
			"verify your account",
			"password expires",
			"account locked",
			"payment required",
		},
		SensitiveKeywords: []string{
			"password",
			"passcode",
			"credit card",
			"debit card",
			"social security",
			"ssn",
			"account number",
			"pin",
			"verification code",
			"bank routing",
			"tax id",
		},
		SuspiciousTLDs: []string{
			".xyz", ".top", ".work", ".click", ".link", ".download", ".gq", ".tk", ".ml",
		},
		LegitimateDomains: map[string][]string{
			"paypal":    {"paypal.com"},
			"amazon":    {"amazon.com"},
			"microsoft": {"microsoft.com", "outlook.com", "live.com"},
			"apple":     {"apple.com", "icloud.com"},
			"google":    {"google.com", "gmail.com"},
			"bank":      {"bankofamerica.com", "chase.com", "wellsfargo.com", "citibank.com"},
		},
		MisspellingPatterns: []string{
			"g00gle", "micros0ft", "amazn", "paypa1",
		},
		TyposquatPatterns: []string{
			"paypal-secure", "paypa1", "micros0ft", "g00gle", "app1e", "amaz0n", "verificati0n",
		},
		RiskyExtensions: []string{
			".exe", ".scr", ".bat", ".js", ".vbs", ".cmd", ".com", ".pif", ".jar", ".cpl", ".ps1",
		},
		CommonWords: []string{
			"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
			"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
			"this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
			"or", "an", "will", "my", "one", "all", "would", "there", "their",
		},
		CommonBigrams: []string{
			"th", "he", "an", "er", "re", "in", "on", "nd", "en", "to", "es", "of",
		},
	}
}

// Merge returns a copy of the lexicon with any non-empty override list
// replacing the corresponding default. Nil or empty overrides keep the
// built-in list.
func (l *Lexicon) Merge(override *Lexicon) *Lexicon {
	merged := *l
	if override == nil {
		return &merged
	}
	if len(override.UrgencyPhrases) > 0 {
		merged.UrgencyPhrases = override.UrgencyPhrases
	}
	if len(override.SensitiveKeywords) > 0 {
		merged.SensitiveKeywords = override.SensitiveKeywords
	}
	if len(override.SuspiciousTLDs) > 0 {
		merged.SuspiciousTLDs = override.SuspiciousTLDs
	}
	if len(override.LegitimateDomains) > 0 {
		merged.LegitimateDomains = override.LegitimateDomains
	}
	if len(override.MisspellingPatterns) > 0 {
		merged.MisspellingPatterns = override.MisspellingPatterns
	}
	if len(override.TyposquatPatterns) > 0 {
		merged.TyposquatPatterns = override.TyposquatPatterns
	}
	if len(override.RiskyExtensions) > 0 {
		merged.RiskyExtensions = override.RiskyExtensions
	}
	if len(override.CommonWords) > 0 {
		merged.CommonWords = override.CommonWords
	}
	if len(override.CommonBigrams) > 0 {
		merged.CommonBigrams = override.CommonBigrams
	}
	return &merged
}

// stringSet builds a membership set from a slice.
func stringSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

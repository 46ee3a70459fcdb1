package core

// Detector is one independent heuristic signal. Detectors are pure functions
// of the shared snapshot and their lexicon: they hold no mutable state, so a
// single instance may serve any number of concurrent analyses.
type Detector interface {
	// Name returns the finding category this detector produces.
	Name() string

	// Detect inspects the snapshot and returns zero or more findings. It
	// never fails; absence of signal is an empty result.
	Detect(snap *Snapshot) []Finding
}

// buildDetectors instantiates the standard detector battery in the fixed
// order findings are reported in.
func buildDetectors(lexicon *Lexicon) []Detector {
	return []Detector{
		NewUrgencyDetector(lexicon),
		NewSensitiveDataDetector(lexicon),
		NewSenderAnomalyDetector(lexicon),
		NewSuspiciousLinksDetector(lexicon),
		NewAttachmentRiskDetector(lexicon),
		NewLanguageStyleDetector(lexicon),
	}
}

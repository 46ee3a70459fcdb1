package core

import (
	"strings"
)

// AttachmentRiskDetector flags attachments whose filenames end in
// executable or script extensions.
type AttachmentRiskDetector struct {
	riskyExtensions []string
}

// NewAttachmentRiskDetector creates a detector over the lexicon's extension
// list.
func NewAttachmentRiskDetector(lexicon *Lexicon) *AttachmentRiskDetector {
	return &AttachmentRiskDetector{riskyExtensions: lexicon.RiskyExtensions}
}

// Name returns the finding category.
func (d *AttachmentRiskDetector) Name() string { return CategoryAttachments }

// Detect lists the flagged filenames; any match is high severity.
func (d *AttachmentRiskDetector) Detect(snap *Snapshot) []Finding {
	var flagged []string
	for _, name := range snap.Attachments {
		lowered := strings.ToLower(name)
		for _, ext := range d.riskyExtensions {
			if strings.HasSuffix(lowered, ext) {
				flagged = append(flagged, name)
				break
			}
		}
	}
	if len(flagged) == 0 {
		return nil
	}

	return []Finding{{
		Category:    CategoryAttachments,
		Description: "Attachments carry extensions commonly used in malware.",
		Severity:    RiskHigh,
		Evidence:    flagged,
	}}
}

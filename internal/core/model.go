package core

import (
	"time"
)

// RiskLevel is the ordinal risk vocabulary shared by individual findings
// (their severity) and the overall verdict of an analysis.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Finding categories, one per detector. The category string doubles as the
// stable identifier the recommendation rules key on.
const (
	CategoryUrgency     = "Urgency Tactics"
	CategorySensitive   = "Sensitive Data Request"
	CategorySender      = "Sender Domain Mismatch"
	CategoryLinks       = "Suspicious Links"
	CategoryAttachments = "Suspicious Attachments"
	CategoryLanguage    = "Grammar & Style"
)

// URLInsight status values reported by reputation collaborators.
const (
	StatusClean       = "clean"
	StatusMalicious   = "malicious"
	StatusReview      = "review"
	StatusUnknown     = "unknown"
	StatusError       = "error"
	StatusUnavailable = "unavailable"
)

// AnalysisRequest is the structured view of a suspect email. The engine
// treats it as read-only; only Body is required.
type AnalysisRequest struct {
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
	Sender      string   `json:"sender,omitempty"`
	SenderName  string   `json:"sender_name,omitempty"`
	ReplyTo     string   `json:"reply_to,omitempty"`
	URLs        []string `json:"urls,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
	Headers     string   `json:"headers,omitempty"`
}

// Finding is one category of suspicious signal raised by a detector, with
// supporting evidence strings. A finding is never mutated after creation.
type Finding struct {
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Severity    RiskLevel `json:"severity"`
	Evidence    []string  `json:"evidence"`
}

// URLInsight is a reputation collaborator's verdict for one extracted URL.
type URLInsight struct {
	URL        string   `json:"url"`
	Reputation string   `json:"reputation,omitempty"`
	Status     string   `json:"status,omitempty"`
	Details    string   `json:"details,omitempty"`
	Findings   []string `json:"findings,omitempty"`
}

// AnalysisResponse is the complete result of one analysis. Findings appear
// in detector order, URL insights in input-URL order.
type AnalysisResponse struct {
	OverallRisk     RiskLevel    `json:"overall_risk"`
	Score           int          `json:"score"`
	Findings        []Finding    `json:"findings"`
	URLInsights     []URLInsight `json:"url_insights"`
	Recommendations []string     `json:"recommendations"`
}

// ReputationCacheEntry is a cached collaborator verdict for a single URL.
type ReputationCacheEntry struct {
	URL       string
	Insight   URLInsight
	LastSeen  time.Time
	ExpiresAt time.Time
}

package core

// Severity weights and risk thresholds of the weighted-severity scoring
// model. One finding contributes its severity weight; the sum is capped.
const (
	weightLow    = 10
	weightMedium = 20
	weightHigh   = 35

	maxRiskScore        = 100
	highRiskThreshold   = 60
	mediumRiskThreshold = 30
)

// ScoreFindings sums the severity weights of all findings, capped at 100,
// and maps the total onto a risk level.
func ScoreFindings(findings []Finding) (int, RiskLevel) {
	score := 0
	for _, finding := range findings {
		switch finding.Severity {
		case RiskHigh:
			score += weightHigh
		case RiskMedium:
			score += weightMedium
		default:
			score += weightLow
		}
	}
	if score > maxRiskScore {
		score = maxRiskScore
	}
	return score, RiskForScore(score)
}

// RiskForScore maps an aggregate score onto the discrete risk level.
func RiskForScore(score int) RiskLevel {
	switch {
	case score >= highRiskThreshold:
		return RiskHigh
	case score >= mediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// BuildRecommendations generates advice from fixed rules keyed on the risk
// level and the finding categories present. Rule declaration order fixes
// the output order; duplicates are dropped by content.
func BuildRecommendations(risk RiskLevel, findings []Finding, hasURLs bool) []string {
	var recommendations []string
	seen := make(map[string]struct{})
	add := func(text string) {
		if _, ok := seen[text]; ok {
			return
		}
		seen[text] = struct{}{}
		recommendations = append(recommendations, text)
	}

	if risk == RiskHigh {
		add("Do not interact with the email. Report it to your security team.")
	}
	if hasCategory(findings, CategorySensitive) {
		add("Never share credentials or personal information via email links.")
	}
	if hasURLs {
		add("Hover over links to inspect destinations before clicking.")
	}
	if hasCategory(findings, CategorySender) {
		add("Verify the sender through a known, trusted communication channel.")
	}
	if len(recommendations) == 0 {
		add("Email appears lower risk but remain vigilant.")
	}
	return recommendations
}

func hasCategory(findings []Finding, category string) bool {
	for _, finding := range findings {
		if finding.Category == category {
			return true
		}
	}
	return false
}

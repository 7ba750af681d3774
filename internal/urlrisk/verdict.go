package urlrisk

// RiskLevel is the caller-facing bucket for a score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Verdict thresholds applied by the service and CLI. The engine itself never
// classifies a score.
const (
	HighRiskThreshold   = 0.7
	MediumRiskThreshold = 0.4
	PhishingThreshold   = 0.5
)

// LevelFor buckets score into a RiskLevel.
func LevelFor(score float64) RiskLevel {
	switch {
	case score >= HighRiskThreshold:
		return RiskHigh
	case score >= MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// IsPhishing reports whether score crosses the phishing verdict threshold.
func IsPhishing(score float64) bool {
	return score >= PhishingThreshold
}

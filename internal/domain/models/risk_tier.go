package models

// RiskTier buckets a churn probability for display.
type RiskTier string

const (
	RiskTierLow    RiskTier = "Low"
	RiskTierMedium RiskTier = "Medium"
	RiskTierHigh   RiskTier = "High"
)

const (
	mediumRiskThreshold = 0.30
	highRiskThreshold   = 0.70
)

// TierFor classifies p: High at or above 0.70, Medium at or above 0.30,
// Low otherwise. NaN falls through to Low.
func TierFor(p float64) RiskTier {
	switch {
	case p >= highRiskThreshold:
		return RiskTierHigh
	case p >= mediumRiskThreshold:
		return RiskTierMedium
	default:
		return RiskTierLow
	}
}

func (t RiskTier) String() string { return string(t) }

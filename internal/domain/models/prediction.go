package models

import "time"

// FeatureVector is the ordered numeric encoding of a CustomerRecord, one
// entry per artifact feature name.
type FeatureVector []float64

// ScaledVector is a FeatureVector after the artifact's scaler was applied.
type ScaledVector []float64

// Label is the binary model output.
type Label int

const (
	LabelNoChurn Label = 0
	LabelChurn   Label = 1
)

func (l Label) String() string {
	if l == LabelChurn {
		return "churn"
	}
	return "no-churn"
}

// PredictionResult is the outcome of scoring one record. Never stored.
type PredictionResult struct {
	ID          string    `json:"id"`
	Label       Label     `json:"label"`
	Churn       bool      `json:"churn"`
	Probability float64   `json:"probability"`
	Tier        RiskTier  `json:"risk_tier"`
	Model       string    `json:"model"`
	ScoredAt    time.Time `json:"scored_at"`
}

// ModelInfo describes the loaded artifact.
type ModelInfo struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Type         string   `json:"type"`
	FeatureNames []string `json:"feature_names"`
	Remote       bool     `json:"remote"`
}

package models_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"ChurnScope/internal/domain/models"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		name     string
		p        float64
		expected models.RiskTier
	}{
		{"zero is Low", 0.0, models.RiskTierLow},
		{"0.29 is Low", 0.29, models.RiskTierLow},
		{"0.30 is Medium", 0.30, models.RiskTierMedium},
		{"0.5 is Medium", 0.5, models.RiskTierMedium},
		{"0.69 is Medium", 0.69, models.RiskTierMedium},
		{"0.70 is High", 0.70, models.RiskTierHigh},
		{"one is High", 1.0, models.RiskTierHigh},
		{"NaN is Low", math.NaN(), models.RiskTierLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, models.TierFor(tt.p))
		})
	}
}

func TestLabel_String(t *testing.T) {
	assert.Equal(t, "churn", models.LabelChurn.String())
	assert.Equal(t, "no-churn", models.LabelNoChurn.String())
}

func TestCountry_Known(t *testing.T) {
	for _, c := range models.Countries {
		assert.True(t, c.Known(), string(c))
	}
	assert.False(t, models.Country("Italy").Known())
	assert.False(t, models.Country("").Known())
}

func TestErrors_Messages(t *testing.T) {
	mis := &models.EncodingMismatchError{Feature: "Geo_Italy"}
	assert.Equal(t, `no encoding for feature "Geo_Italy"`, mis.Error())

	inner := assert.AnError
	le := &models.ArtifactLoadError{Source: "models/churn.json", Err: inner}
	assert.Contains(t, le.Error(), "models/churn.json")
	assert.ErrorIs(t, le, inner)
}

package model

import (
	"fmt"

	"ChurnScope/internal/domain/models"
)

// StandardScaler applies (x - mean) / scale per feature.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

// NewStandardScaler copies mean and scale. A zero scale is treated as 1,
// matching how constant features are fitted.
func NewStandardScaler(mean, scale []float64) *StandardScaler {
	s := &StandardScaler{
		mean:  append([]float64(nil), mean...),
		scale: make([]float64, len(scale)),
	}
	for i, v := range scale {
		if v == 0 {
			v = 1
		}
		s.scale[i] = v
	}
	return s
}

func (s *StandardScaler) Transform(v models.FeatureVector) (models.ScaledVector, error) {
	if len(v) != len(s.mean) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.mean), len(v))
	}
	out := make(models.ScaledVector, len(v))
	for i, x := range v {
		out[i] = (x - s.mean[i]) / s.scale[i]
	}
	return out, nil
}

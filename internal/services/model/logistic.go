package model

import (
	"context"
	"fmt"
	"math"

	"ChurnScope/internal/domain/models"
	domsvc "ChurnScope/internal/domain/service"
)

// LocalClassifier evaluates a logistic artifact in-process.
type LocalClassifier struct {
	scaler    *StandardScaler
	coef      []float64
	intercept float64
	threshold float64
}

// NewLocalClassifier builds the in-process classifier for a loaded logistic
// artifact.
func NewLocalClassifier(l *Loaded) (*LocalClassifier, error) {
	if l.Artifact.Model.Type != TypeLogistic {
		return nil, fmt.Errorf("artifact model type %q cannot be evaluated locally", l.Artifact.Model.Type)
	}
	m := l.Artifact.Model
	return &LocalClassifier{
		scaler:    l.Scaler,
		coef:      append([]float64(nil), m.Coefficients...),
		intercept: m.Intercept,
		threshold: m.Threshold,
	}, nil
}

func (c *LocalClassifier) Transform(v models.FeatureVector) (models.ScaledVector, error) {
	return c.scaler.Transform(v)
}

func (c *LocalClassifier) Predict(_ context.Context, v models.ScaledVector) (models.Label, float64, error) {
	if len(v) != len(c.coef) {
		return models.LabelNoChurn, 0, fmt.Errorf("model expects %d features, got %d", len(c.coef), len(v))
	}
	z := c.intercept
	for i, x := range v {
		z += c.coef[i] * x
	}
	p := sigmoid(z)
	if p >= c.threshold {
		return models.LabelChurn, p, nil
	}
	return models.LabelNoChurn, p, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

var _ domsvc.Classifier = (*LocalClassifier)(nil)

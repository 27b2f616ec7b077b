package service

import (
	"context"

	"ChurnScope/internal/domain/models"
)

// Classifier is the trained model as seen by the scorer. Implementations are
// immutable after construction and safe for concurrent use.
type Classifier interface {
	// Transform applies the artifact's feature scaling.
	Transform(v models.FeatureVector) (models.ScaledVector, error)
	// Predict returns the binary label and the churn probability.
	Predict(ctx context.Context, v models.ScaledVector) (models.Label, float64, error)
}

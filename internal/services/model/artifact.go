package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ChurnScope/internal/domain/models"
	domrepo "ChurnScope/internal/domain/repository"
	"ChurnScope/internal/services/features"

	"gopkg.in/yaml.v3"
)

const (
	// TypeLogistic artifacts carry their weights and are evaluated in-process.
	TypeLogistic = "logistic"
	// TypeRemote artifacts carry only feature order and scaler; prediction
	// happens in the external model service.
	TypeRemote = "remote"
)

// Artifact is the serialized, externally trained model: feature order,
// scaler parameters and classifier weights.
type Artifact struct {
	Name         string        `json:"name" yaml:"name"`
	Version      string        `json:"version" yaml:"version"`
	FeatureNames []string      `json:"feature_names" yaml:"feature_names"`
	Scaler       ScalerParams  `json:"scaler" yaml:"scaler"`
	Model        LogisticModel `json:"model" yaml:"model"`
}

// ScalerParams are the fitted StandardScaler statistics, one per feature.
type ScalerParams struct {
	Mean  []float64 `json:"mean" yaml:"mean"`
	Scale []float64 `json:"scale" yaml:"scale"`
}

// LogisticModel are the fitted logistic regression weights.
type LogisticModel struct {
	Type         string    `json:"type" yaml:"type"`
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	Intercept    float64   `json:"intercept" yaml:"intercept"`
	Threshold    float64   `json:"threshold" yaml:"threshold"`
}

// Loaded bundles everything derived from an artifact at load time.
type Loaded struct {
	Artifact *Artifact
	Encoder  *features.Encoder
	Scaler   *StandardScaler
}

// Info describes the artifact for the dashboard.
func (l *Loaded) Info() models.ModelInfo {
	return models.ModelInfo{
		Name:         l.Artifact.Name,
		Version:      l.Artifact.Version,
		Type:         l.Artifact.Model.Type,
		FeatureNames: l.Encoder.Names(),
	}
}

// Load reads, decodes and validates the artifact from src. Any failure is
// returned as *models.ArtifactLoadError.
func Load(ctx context.Context, src domrepo.ArtifactSource) (*Loaded, error) {
	fail := func(err error) (*Loaded, error) {
		return nil, &models.ArtifactLoadError{Source: src.Name(), Err: err}
	}

	raw, err := src.Read(ctx)
	if err != nil {
		return fail(err)
	}
	art, err := Decode(raw, src.Format())
	if err != nil {
		return fail(err)
	}
	if err := art.Validate(); err != nil {
		return fail(err)
	}
	// Reconcile the artifact's feature list with the encoder table once,
	// here, instead of on every prediction.
	enc, err := features.NewEncoder(art.FeatureNames)
	if err != nil {
		return fail(err)
	}
	return &Loaded{
		Artifact: art,
		Encoder:  enc,
		Scaler:   NewStandardScaler(art.Scaler.Mean, art.Scaler.Scale),
	}, nil
}

// Decode parses an artifact in the given format ("json" or "yaml").
func Decode(raw []byte, format string) (*Artifact, error) {
	var art Artifact
	switch format {
	case "json":
		if err := json.Unmarshal(raw, &art); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(raw, &art); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported artifact format %q", format)
	}
	if art.Model.Threshold == 0 {
		art.Model.Threshold = 0.5
	}
	return &art, nil
}

// Validate checks the artifact is internally consistent.
func (a *Artifact) Validate() error {
	n := len(a.FeatureNames)
	if n == 0 {
		return errors.New("feature_names is empty")
	}
	if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n {
		return fmt.Errorf("scaler has %d means and %d scales for %d features",
			len(a.Scaler.Mean), len(a.Scaler.Scale), n)
	}
	switch a.Model.Type {
	case TypeLogistic:
		if len(a.Model.Coefficients) != n {
			return fmt.Errorf("model has %d coefficients for %d features", len(a.Model.Coefficients), n)
		}
		if a.Model.Threshold <= 0 || a.Model.Threshold >= 1 {
			return fmt.Errorf("threshold %v outside (0,1)", a.Model.Threshold)
		}
	case TypeRemote:
	default:
		return fmt.Errorf("unsupported model type %q", a.Model.Type)
	}
	return nil
}

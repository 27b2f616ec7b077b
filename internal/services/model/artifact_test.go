package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ChurnScope/internal/domain/models"
)

type memSource struct {
	raw    []byte
	format string
	err    error
}

func (s memSource) Name() string                         { return "mem" }
func (s memSource) Format() string                       { return s.format }
func (s memSource) Read(context.Context) ([]byte, error) { return s.raw, s.err }
func (s memSource) Close() error                         { return nil }

const jsonArtifact = `{
  "name": "churn-logreg",
  "version": "2024-06-01",
  "feature_names": ["CreditScore", "Gender", "Age", "Geo_France", "Geo_Germany", "Geo_Spain"],
  "scaler": {"mean": [650, 0.5, 40, 0.5, 0.25, 0.25], "scale": [100, 0.5, 10, 0.5, 0.43, 0.43]},
  "model": {"type": "logistic", "coefficients": [-0.1, 0.3, 0.8, -0.2, 0.4, -0.1], "intercept": -1.5}
}`

const yamlArtifact = `
name: churn-logreg
version: "2024-06-01"
feature_names: [CreditScore, Age]
scaler:
  mean: [650, 40]
  scale: [100, 10]
model:
  type: logistic
  coefficients: [0.1, 0.9]
  intercept: -0.2
  threshold: 0.4
`

func TestLoad_JSON(t *testing.T) {
	l, err := Load(context.Background(), memSource{raw: []byte(jsonArtifact), format: "json"})
	require.NoError(t, err)

	assert.Equal(t, "churn-logreg", l.Artifact.Name)
	assert.Equal(t, 0.5, l.Artifact.Model.Threshold, "threshold defaults to 0.5")
	assert.Equal(t, l.Artifact.FeatureNames, l.Encoder.Names())

	info := l.Info()
	assert.Equal(t, "2024-06-01", info.Version)
	assert.Equal(t, TypeLogistic, info.Type)
	assert.Len(t, info.FeatureNames, 6)
}

func TestLoad_YAML(t *testing.T) {
	l, err := Load(context.Background(), memSource{raw: []byte(yamlArtifact), format: "yaml"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CreditScore", "Age"}, l.Encoder.Names())
	assert.Equal(t, 0.4, l.Artifact.Model.Threshold)
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name string
		src  memSource
		want string
	}{
		{
			name: "read error",
			src:  memSource{err: errors.New("boom"), format: "json"},
			want: "boom",
		},
		{
			name: "corrupt json",
			src:  memSource{raw: []byte(`{"name":`), format: "json"},
			want: "decode json",
		},
		{
			name: "unknown format",
			src:  memSource{raw: []byte(jsonArtifact), format: "pickle"},
			want: `unsupported artifact format "pickle"`,
		},
		{
			name: "empty feature list",
			src:  memSource{raw: []byte(`{"model":{"type":"logistic"}}`), format: "json"},
			want: "feature_names is empty",
		},
		{
			name: "scaler length mismatch",
			src: memSource{raw: []byte(`{"feature_names":["Age","Tenure"],
				"scaler":{"mean":[1],"scale":[1,1]},
				"model":{"type":"logistic","coefficients":[1,1]}}`), format: "json"},
			want: "scaler has 1 means and 2 scales for 2 features",
		},
		{
			name: "coefficient length mismatch",
			src: memSource{raw: []byte(`{"feature_names":["Age"],
				"scaler":{"mean":[1],"scale":[1]},
				"model":{"type":"logistic","coefficients":[1,2]}}`), format: "json"},
			want: "model has 2 coefficients for 1 features",
		},
		{
			name: "unsupported model type",
			src: memSource{raw: []byte(`{"feature_names":["Age"],
				"scaler":{"mean":[1],"scale":[1]},
				"model":{"type":"xgboost"}}`), format: "json"},
			want: `unsupported model type "xgboost"`,
		},
		{
			name: "threshold out of range",
			src: memSource{raw: []byte(`{"feature_names":["Age"],
				"scaler":{"mean":[1],"scale":[1]},
				"model":{"type":"logistic","coefficients":[1],"threshold":1.5}}`), format: "json"},
			want: "threshold 1.5 outside (0,1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.src)
			require.Error(t, err)

			var le *models.ArtifactLoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, "mem", le.Source)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_UnmappedFeatureIsLoadError(t *testing.T) {
	raw := `{"feature_names":["Age","Surname"],
		"scaler":{"mean":[0,0],"scale":[1,1]},
		"model":{"type":"logistic","coefficients":[1,1]}}`
	_, err := Load(context.Background(), memSource{raw: []byte(raw), format: "json"})
	require.Error(t, err)

	var le *models.ArtifactLoadError
	require.True(t, errors.As(err, &le))
	var mis *models.EncodingMismatchError
	require.True(t, errors.As(err, &mis))
	assert.Equal(t, "Surname", mis.Feature)
}

func TestLoad_RemoteTypeNeedsNoWeights(t *testing.T) {
	raw := `{"name":"churn-remote","feature_names":["Age"],
		"scaler":{"mean":[40],"scale":[10]},
		"model":{"type":"remote"}}`
	l, err := Load(context.Background(), memSource{raw: []byte(raw), format: "json"})
	require.NoError(t, err)
	assert.Equal(t, TypeRemote, l.Info().Type)

	_, err = NewLocalClassifier(l)
	assert.Error(t, err)
}

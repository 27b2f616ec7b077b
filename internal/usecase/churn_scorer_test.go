package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ChurnScope/internal/domain/models"
	domrepo "ChurnScope/internal/domain/repository"
	"ChurnScope/internal/services/features"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	label  models.Label
	p      float64
	err    error
	tfErr  error
	gotVec models.FeatureVector
}

func (s *stubClassifier) Transform(v models.FeatureVector) (models.ScaledVector, error) {
	s.gotVec = v
	if s.tfErr != nil {
		return nil, s.tfErr
	}
	return models.ScaledVector(v), nil
}

func (s *stubClassifier) Predict(context.Context, models.ScaledVector) (models.Label, float64, error) {
	return s.label, s.p, s.err
}

type fakeMetrics struct {
	mu          sync.Mutex
	predictions []string
	errors      []string
	ops         []string
}

func (m *fakeMetrics) RecordPrediction(tier, label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictions = append(m.predictions, tier+"/"+label)
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, kind)
}

func (m *fakeMetrics) RecordLatency(op string, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)
}

func (m *fakeMetrics) RecordModelLoaded(string, bool) {}

func sampleRecord() models.CustomerRecord {
	return models.CustomerRecord{
		Age:            40,
		Gender:         models.GenderMale,
		Country:        models.CountryFrance,
		CreditScore:    650,
		NumOfProducts:  1,
		HasCreditCard:  true,
		IsActiveMember: true,
	}
}

func info(names ...string) models.ModelInfo {
	return models.ModelInfo{Name: "churn-lr", Version: "1", Type: "logistic", FeatureNames: names}
}

func newScorer(t *testing.T, clf *stubClassifier, m *fakeMetrics, names ...string) *ChurnScorer {
	t.Helper()
	enc, err := features.NewEncoder(names)
	require.NoError(t, err)
	var rec domrepo.Metrics
	if m != nil {
		rec = m
	}
	return NewChurnScorer(info(names...), enc, clf, rec, nil)
}

type stubEncoder struct {
	err error
}

func (s stubEncoder) Encode(models.CustomerRecord) (models.FeatureVector, error) {
	return nil, s.err
}

func TestChurnScorer_Score(t *testing.T) {
	clf := &stubClassifier{label: models.LabelChurn, p: 0.82}
	m := &fakeMetrics{}
	s := newScorer(t, clf, m, "CreditScore", "Gender", "Age", "Geo_France", "Geo_Germany", "Geo_Spain")
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	res, err := s.Score(context.Background(), sampleRecord())
	require.NoError(t, err)

	assert.Equal(t, models.FeatureVector{650, 0, 40, 1, 0, 0}, clf.gotVec)
	assert.Equal(t, models.LabelChurn, res.Label)
	assert.True(t, res.Churn)
	assert.Equal(t, 0.82, res.Probability)
	assert.Equal(t, models.RiskTierHigh, res.Tier)
	assert.Equal(t, "churn-lr", res.Model)
	assert.Equal(t, fixed, res.ScoredAt)
	_, err = uuid.Parse(res.ID)
	assert.NoError(t, err)

	assert.Equal(t, []string{"High/churn"}, m.predictions)
	assert.Empty(t, m.errors)
	assert.ElementsMatch(t, []string{"predict", "score"}, m.ops)
}

func TestChurnScorer_TierFollowsProbability(t *testing.T) {
	tests := []struct {
		p    float64
		want models.RiskTier
	}{
		{0.1, models.RiskTierLow},
		{0.3, models.RiskTierMedium},
		{0.69, models.RiskTierMedium},
		{0.7, models.RiskTierHigh},
	}
	for _, tt := range tests {
		s := newScorer(t, &stubClassifier{p: tt.p}, nil, "Age")
		res, err := s.Score(context.Background(), sampleRecord())
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.Tier, "p=%v", tt.p)
	}
}

func TestChurnScorer_UniqueIDs(t *testing.T) {
	s := newScorer(t, &stubClassifier{p: 0.5}, nil, "Age")
	a, err := s.Score(context.Background(), sampleRecord())
	require.NoError(t, err)
	b, err := s.Score(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestChurnScorer_EncodingMismatch(t *testing.T) {
	m := &fakeMetrics{}
	clf := &stubClassifier{p: 0.9}
	enc := stubEncoder{err: &models.EncodingMismatchError{Feature: "Geo_Germany"}}
	s := NewChurnScorer(info("Age", "Geo_France"), enc, clf, m, nil)

	_, err := s.Score(context.Background(), sampleRecord())

	var mismatch *models.EncodingMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Geo_Germany", mismatch.Feature)
	assert.Nil(t, clf.gotVec, "classifier must not be reached")
	assert.Equal(t, []string{"encoding_mismatch"}, m.errors)
}

func TestChurnScorer_ClassifierErrors(t *testing.T) {
	upstream := &models.ModelServiceError{Err: errors.New("connection refused")}
	tests := []struct {
		name string
		clf  *stubClassifier
		kind string
	}{
		{"transform", &stubClassifier{tfErr: errors.New("scaler expects 2 features, got 1")}, "transform"},
		{"predict", &stubClassifier{err: errors.New("boom")}, "predict"},
		{"model service", &stubClassifier{err: upstream}, "model_service"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMetrics{}
			s := newScorer(t, tt.clf, m, "Age")
			_, err := s.Score(context.Background(), sampleRecord())
			require.Error(t, err)
			assert.Equal(t, []string{tt.kind}, m.errors)
			assert.Empty(t, m.predictions)
		})
	}
}

func TestChurnScorer_CountryMissingFromArtifact(t *testing.T) {
	m := &fakeMetrics{}
	clf := &stubClassifier{p: 0.9}
	s := newScorer(t, clf, m, "Age", "Geo_France", "Geo_Spain")

	r := sampleRecord()
	r.Country = models.CountryGermany
	_, err := s.Score(context.Background(), r)

	var mismatch *models.EncodingMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Geo_Germany", mismatch.Feature)
	assert.Nil(t, clf.gotVec)
	assert.Equal(t, []string{"encoding_mismatch"}, m.errors)
}

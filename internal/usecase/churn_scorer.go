package usecase

import (
	"context"
	"errors"
	"time"

	"ChurnScope/internal/domain/models"
	domrepo "ChurnScope/internal/domain/repository"
	domsvc "ChurnScope/internal/domain/service"
	applogger "ChurnScope/pkg/logger"

	"github.com/google/uuid"
)

// FeatureEncoder turns a record into the model's feature vector. The
// encoder built when the artifact loads satisfies it.
type FeatureEncoder interface {
	Encode(rec models.CustomerRecord) (models.FeatureVector, error)
}

// ChurnScorer runs one record through encode, scale, predict and tier.
// It holds no per-request state and is safe for concurrent use.
type ChurnScorer struct {
	enc     FeatureEncoder
	clf     domsvc.Classifier
	info    models.ModelInfo
	metrics domrepo.Metrics
	log     *applogger.Logger
	now     func() time.Time
}

func NewChurnScorer(info models.ModelInfo, enc FeatureEncoder, clf domsvc.Classifier, metrics domrepo.Metrics, l *applogger.Logger) *ChurnScorer {
	if l == nil {
		l = applogger.Nop()
	}
	return &ChurnScorer{
		enc:     enc,
		clf:     clf,
		info:    info,
		metrics: metrics,
		log:     l,
		now:     time.Now,
	}
}

// Model describes the artifact the scorer was built from.
func (s *ChurnScorer) Model() models.ModelInfo { return s.info }

// Score encodes rec in artifact feature order and classifies it.
func (s *ChurnScorer) Score(ctx context.Context, rec models.CustomerRecord) (models.PredictionResult, error) {
	start := time.Now()
	defer func() { s.observe("score", time.Since(start)) }()

	vec, err := s.enc.Encode(rec)
	if err != nil {
		s.fail("encoding_mismatch", err)
		return models.PredictionResult{}, err
	}

	scaled, err := s.clf.Transform(vec)
	if err != nil {
		s.fail("transform", err)
		return models.PredictionResult{}, err
	}

	predStart := time.Now()
	label, p, err := s.clf.Predict(ctx, scaled)
	s.observe("predict", time.Since(predStart))
	if err != nil {
		var mse *models.ModelServiceError
		if errors.As(err, &mse) {
			s.fail("model_service", err)
		} else {
			s.fail("predict", err)
		}
		return models.PredictionResult{}, err
	}

	res := models.PredictionResult{
		ID:          uuid.NewString(),
		Label:       label,
		Churn:       label == models.LabelChurn,
		Probability: p,
		Tier:        models.TierFor(p),
		Model:       s.info.Name,
		ScoredAt:    s.now().UTC(),
	}

	if s.metrics != nil {
		s.metrics.RecordPrediction(res.Tier.String(), label.String())
	}
	s.log.Debug("record scored",
		applogger.String("id", res.ID),
		applogger.String("label", label.String()),
		applogger.Float64("probability", p),
		applogger.String("tier", res.Tier.String()),
	)
	return res, nil
}

func (s *ChurnScorer) fail(kind string, err error) {
	if s.metrics != nil {
		s.metrics.RecordError(kind)
	}
	s.log.Warn("scoring failed", applogger.String("kind", kind), applogger.Error(err))
}

func (s *ChurnScorer) observe(op string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordLatency(op, d.Seconds())
	}
}

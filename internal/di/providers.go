package di

import (
	"context"
	"fmt"
	"time"

	"ChurnScope/internal/domain/models"
	domrepo "ChurnScope/internal/domain/repository"
	"ChurnScope/internal/handler/api"
	internalrepo "ChurnScope/internal/repository"
	"ChurnScope/internal/services/model"
	"ChurnScope/internal/usecase"
	"ChurnScope/pkg/config"
	xhttp "ChurnScope/pkg/http"
	applogger "ChurnScope/pkg/logger"
	"ChurnScope/pkg/metrics"
	"ChurnScope/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

const artifactLoadTimeout = 10 * time.Second

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideArtifactSource picks the file or Redis artifact source.
func ProvideArtifactSource(cfg *config.Config) domrepo.ArtifactSource {
	if cfg.Model.Source == config.SourceRedis {
		return internalrepo.NewRedisArtifactSource(internalrepo.RedisConfig{
			Addr:     cfg.Model.Redis.Addr,
			Password: cfg.Model.Redis.Password,
			DB:       cfg.Model.Redis.DB,
			Key:      cfg.Model.Redis.Key,
			Format:   cfg.Model.Format,
		})
	}
	return internalrepo.NewFileArtifactSource(cfg.Model.Path, cfg.Model.Format)
}

// ProvideRenderer parses the embedded page templates.
func ProvideRenderer() (*api.Renderer, error) {
	r, err := api.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	return r, nil
}

// ProvideRateLimiter returns nil when rate limiting is disabled.
func ProvideRateLimiter(cfg *config.Config, l *applogger.Logger) *xhttp.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return xhttp.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, l)
}

// ProvideHTTPHandler loads the artifact once and builds the dashboard on top
// of it. A failed load is not fatal: the process serves the error instead.
func ProvideHTTPHandler(
	cfg *config.Config,
	src domrepo.ArtifactSource,
	rec domrepo.Metrics,
	renderer *api.Renderer,
	limiter *xhttp.RateLimiter,
	l *applogger.Logger,
) xhttp.Handler {
	ctx, cancel := context.WithTimeout(context.Background(), artifactLoadTimeout)
	defer cancel()

	scorer, err := buildScorer(ctx, cfg, src, rec, l)
	if err != nil {
		l.Error("model artifact unavailable", applogger.String("source", src.Name()), applogger.Error(err))
		rec.RecordModelLoaded(src.Name(), false)
		return api.NewUnavailableHandler(err, renderer)
	}

	info := scorer.Model()
	rec.RecordModelLoaded(info.Name, true)
	l.Info("model artifact loaded",
		applogger.String("source", src.Name()),
		applogger.String("model", info.Name),
		applogger.String("version", info.Version),
		applogger.String("type", info.Type),
		applogger.Strings("features", info.FeatureNames),
	)
	return api.NewDashboardHandler(l, scorer, renderer, limiter)
}

func buildScorer(ctx context.Context, cfg *config.Config, src domrepo.ArtifactSource, rec domrepo.Metrics, l *applogger.Logger) (*usecase.ChurnScorer, error) {
	loaded, err := model.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	clf, err := model.NewClassifier(loaded, cfg.Model.RemoteURL, cfg.Model.Timeout)
	if err != nil {
		return nil, &models.ArtifactLoadError{Source: src.Name(), Err: err}
	}
	return usecase.NewChurnScorer(loaded.Info(), loaded.Encoder, clf, rec, l), nil
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, handler xhttp.Handler, src domrepo.ArtifactSource, l *applogger.Logger) *server.App {
	return server.New(cfg, handler, src, l)
}

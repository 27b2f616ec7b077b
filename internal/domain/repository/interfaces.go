package repository

import "context"

// ArtifactSource yields the raw bytes of a serialized model artifact.
type ArtifactSource interface {
	// Name identifies the source in logs and errors (path or redis key).
	Name() string
	// Format is "json" or "yaml".
	Format() string
	Read(ctx context.Context) ([]byte, error)
	Close() error
}

type Metrics interface {
	RecordPrediction(tier, label string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordModelLoaded(model string, ok bool)
}

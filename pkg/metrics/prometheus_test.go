package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordPrediction("High", "churn")
	r.RecordPrediction("High", "churn")
	r.RecordPrediction("Low", "no-churn")
	r.RecordError("encoding_mismatch")
	r.RecordModelLoaded("churn-logreg", true)
	r.RecordLatency("score", 0.002)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.predictions.WithLabelValues("High", "churn")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.predictions.WithLabelValues("Low", "no-churn")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("encoding_mismatch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.modelLoaded.WithLabelValues("churn-logreg")))

	r.RecordModelLoaded("churn-logreg", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.modelLoaded.WithLabelValues("churn-logreg")))

	n, err := testutil.GatherAndCount(reg, "churnscope_operation_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	predictions *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	modelLoaded *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
}

// New registers the churnscope collectors with reg. Pass
// prometheus.DefaultRegisterer to expose them on /metrics.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		predictions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "churnscope_predictions_total",
				Help: "Total number of scored customer records",
			},
			[]string{"tier", "label"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "churnscope_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		modelLoaded: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "churnscope_model_loaded",
				Help: "1 when the model artifact loaded successfully, 0 otherwise",
			},
			[]string{"model"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "churnscope_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
			},
			[]string{"operation"},
		),
	}
}

// RecordPrediction counts one scored record.
func (r *Recorder) RecordPrediction(tier, label string) {
	r.predictions.WithLabelValues(tier, label).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordModelLoaded sets the load gauge for model.
func (r *Recorder) RecordModelLoaded(model string, ok bool) {
	v := 0.0
	if ok {
		v = 1
	}
	r.modelLoaded.WithLabelValues(model).Set(v)
}

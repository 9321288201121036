package signup

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeCreated              = "created"
	outcomeMissingParam         = "missing_param"
	outcomeInvalidParam         = "invalid_param"
	outcomeServerError          = "server_error"
	outcomeBadRequest           = "bad_request"
	outcomeUnsupportedMediaType = "unsupported_media_type"
)

// Metrics tracks signup outcomes and controller latency.
type Metrics struct {
	SignupRequests *prometheus.CounterVec
	SignupDuration prometheus.Histogram
}

// NewMetrics registers the signup metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SignupRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_requests_total",
			Help: "Total number of signup requests by outcome",
		}, []string{"outcome"}),
		SignupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "signup_duration_seconds",
			Help:    "Duration of signup handling, including hashing and storage",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) incOutcome(outcome string) {
	m.SignupRequests.WithLabelValues(outcome).Inc()
}

// ObserveSignup records a controller response and how long it took.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSignup(res Response, start time.Time) {
	m.SignupDuration.Observe(time.Since(start).Seconds())
	m.incOutcome(outcomeOf(res))
}

func outcomeOf(res Response) string {
	switch res.Status {
	case StatusOK:
		return outcomeCreated
	case StatusBadRequest:
		var missing *MissingParamError
		if errors.As(res.Err, &missing) {
			return outcomeMissingParam
		}
		return outcomeInvalidParam
	default:
		return outcomeServerError
	}
}

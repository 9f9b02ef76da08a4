package server

import (
	"errors"
	"time"

	"github.com/SaiNageswarS/go-mvc-boot/convention"
	"github.com/SaiNageswarS/go-mvc-boot/di"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK                  = "ok"
	outcomeNotFound            = "not_found"
	outcomeInvalidTarget       = "invalid_target"
	outcomeMissingClass        = "missing_class"
	outcomeResolution          = "resolution_error"
	outcomeUnsupportedCallback = "unsupported_callback"
	outcomeRender              = "render_error"
	outcomeInvocation          = "invocation_error"
)

// Metrics counts and times dispatches by outcome.
type Metrics struct {
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mvcboot",
			Name:      "dispatch_total",
			Help:      "Dispatched requests by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mvcboot",
			Name:      "dispatch_duration_seconds",
			Help:      "Time from route lookup to rendered response.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.dispatches, m.duration)
	return m
}

func (m *Metrics) observe(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrRouteNotFound):
		return outcomeNotFound
	case errors.Is(err, convention.ErrInvalidConvention):
		return outcomeInvalidTarget
	case errors.Is(err, convention.ErrClassNotFound):
		return outcomeMissingClass
	case errors.Is(err, di.ErrDependencyResolution):
		return outcomeResolution
	case errors.Is(err, ErrUnsupportedCallback):
		return outcomeUnsupportedCallback
	case errors.Is(err, ErrRender):
		return outcomeRender
	default:
		return outcomeInvocation
	}
}

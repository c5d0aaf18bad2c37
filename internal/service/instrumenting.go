package service

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/guttosm/cryptostats/internal/domain/models"
)

// Metrics groups the collectors recorded for every query.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

var metricLabels = []string{"method", "error"}

// NewMetrics creates the query collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cryptostats",
			Subsystem: "query",
			Name:      "requests_total",
			Help:      "Number of processed queries.",
		}, metricLabels),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cryptostats",
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Query latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, metricLabels),
	}
	for _, c := range []prometheus.Collector{m.Requests, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// instrumentingMiddleware wraps QueryService and records request metrics.
type instrumentingMiddleware struct {
	metrics *Metrics
	svc     QueryService
}

// NewInstrumentingMiddleware decorates svc with request count and latency metrics.
func NewInstrumentingMiddleware(metrics *Metrics, svc QueryService) QueryService {
	return &instrumentingMiddleware{metrics: metrics, svc: svc}
}

func (m *instrumentingMiddleware) GetNormalizedRange(ctx context.Context, dateFrom, dateTo *time.Time) (out []models.NormalizedRange, err error) {
	defer func(begin time.Time) { m.record("GetNormalizedRange", begin, err) }(time.Now())
	return m.svc.GetNormalizedRange(ctx, dateFrom, dateTo)
}

func (m *instrumentingMiddleware) GetBoundValues(ctx context.Context, symbol string, dateFrom, dateTo *time.Time) (out *models.BoundValues, err error) {
	defer func(begin time.Time) { m.record("GetBoundValues", begin, err) }(time.Now())
	return m.svc.GetBoundValues(ctx, symbol, dateFrom, dateTo)
}

func (m *instrumentingMiddleware) GetHighestNormalized(ctx context.Context, day time.Time) (out *models.NormalizedRange, err error) {
	defer func(begin time.Time) { m.record("GetHighestNormalized", begin, err) }(time.Now())
	return m.svc.GetHighestNormalized(ctx, day)
}

func (m *instrumentingMiddleware) record(method string, begin time.Time, err error) {
	labels := prometheus.Labels{"method": method, "error": strconv.FormatBool(err != nil)}
	m.metrics.Requests.With(labels).Inc()
	m.metrics.Duration.With(labels).Observe(time.Since(begin).Seconds())
}

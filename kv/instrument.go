package kv

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors updated by an instrumented Store.
type Metrics struct {
	ops     *prometheus.CounterVec
	latency *prometheus.HistogramVec
	size    prometheus.Gauge
}

// NewMetrics creates the store collectors and registers them into reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pricegraph",
			Subsystem: "kv",
			Name:      "operations_total",
			Help:      "Number of key-value store operations by operation and result.",
		}, []string{"op", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pricegraph",
			Subsystem: "kv",
			Name:      "operation_duration_seconds",
			Help:      "Latency of key-value store operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pricegraph",
			Subsystem: "kv",
			Name:      "last_value_bytes",
			Help:      "Size of the last value read or written.",
		}),
	}
	reg.MustRegister(m.ops, m.latency, m.size)
	return m
}

// Instrument wraps s so that every operation is counted and timed in m.
func Instrument(s Store, m *Metrics) Store {
	return &instrumented{inner: s, m: m}
}

type instrumented struct {
	inner Store
	m     *Metrics
}

func (i *instrumented) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	i.m.ops.WithLabelValues(op, result).Inc()
	i.m.latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, err := i.inner.Get(ctx, key)
	i.observe("get", start, err)
	if err == nil {
		i.m.size.Set(float64(len(v)))
	}
	return v, err
}

func (i *instrumented) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := i.inner.Set(ctx, key, value)
	i.observe("set", start, err)
	if err == nil {
		i.m.size.Set(float64(len(value)))
	}
	return err
}

func (i *instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := i.inner.Delete(ctx, key)
	i.observe("delete", start, err)
	return err
}

func (i *instrumented) Close() error { return i.inner.Close() }

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var histogramBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

type instrumented struct {
	next     Backend
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Instrument wraps b so every slot operation is counted and timed on reg.
func Instrument(b Backend, reg prometheus.Registerer) (Backend, error) {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docspot",
		Subsystem: "storage",
		Name:      "operations_total",
		Help:      "Count of slot operations by outcome",
	}, []string{"op", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "docspot",
		Subsystem: "storage",
		Name:      "operation_duration_seconds",
		Help:      "Latency distribution of slot operations",
		Buckets:   histogramBuckets,
	}, []string{"op"})

	if err := reg.Register(ops); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}
		ops = already.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(duration); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}
		duration = already.ExistingCollector.(*prometheus.HistogramVec)
	}

	return &instrumented{next: b, ops: ops, duration: duration}, nil
}

func (i *instrumented) observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	i.ops.WithLabelValues(op, outcome).Inc()
	i.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	v, ok, err := i.next.Get(ctx, key)
	i.observe("get", start, err)
	return v, ok, err
}

func (i *instrumented) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := i.next.Set(ctx, key, value)
	i.observe("set", start, err)
	return err
}

func (i *instrumented) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.Remove(ctx, key)
	i.observe("remove", start, err)
	return err
}

func (i *instrumented) Close() error {
	return i.next.Close()
}

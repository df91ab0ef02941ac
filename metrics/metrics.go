// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package metrics exports linelog activity as Prometheus metrics.
package metrics

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/milchinskiy/linelog/logger"
)

// Collector counts written lines, bytes and write failures per level and
// records scope timer durations per label. It implements logger.Observer.
type Collector struct {
	lines       *prometheus.CounterVec
	bytes       *prometheus.CounterVec
	writeErrors *prometheus.CounterVec
	timers      *prometheus.HistogramVec
}

var _ logger.Observer = (*Collector)(nil)

// NewCollector creates the metrics under namespace, which may be empty.
func NewCollector(namespace string) *Collector {
	return &Collector{
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Log lines written, by level.",
		}, []string{"level"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "line_bytes_total",
			Help:      "Bytes of log lines written, by level.",
		}, []string{"level"}),
		writeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "write_errors_total",
			Help:      "Log lines lost to write failures, by level.",
		}, []string{"level"}),
		timers: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "timer_duration_seconds",
			Help:      "Durations measured by scope timers, by label.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"label"}),
	}
}

// Register registers the metrics on reg, or on the default registerer when
// reg is nil. When equal metrics are already registered, the collector
// switches to the registered ones, so two collectors with the same
// namespace share counts. Call Register before the collector is in use.
func (c *Collector) Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	var err error
	if c.lines, err = register(reg, c.lines); err != nil {
		return err
	}
	if c.bytes, err = register(reg, c.bytes); err != nil {
		return err
	}
	if c.writeErrors, err = register(reg, c.writeErrors); err != nil {
		return err
	}
	if c.timers, err = register(reg, c.timers); err != nil {
		return err
	}
	return nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	err := reg.Register(col)
	if err == nil {
		return col, nil
	}
	var already prometheus.AlreadyRegisteredError
	if !errors.As(err, &already) {
		return col, err
	}
	if existing, ok := already.ExistingCollector.(T); ok {
		return existing, nil
	}
	return col, nil
}

// LineWritten implements logger.Observer.
func (c *Collector) LineWritten(level logger.Level, n int) {
	l := levelLabel(level)
	c.lines.WithLabelValues(l).Inc()
	c.bytes.WithLabelValues(l).Add(float64(n))
}

// WriteFailed implements logger.Observer.
func (c *Collector) WriteFailed(level logger.Level, _ error) {
	c.writeErrors.WithLabelValues(levelLabel(level)).Inc()
}

// TimerStopped implements logger.Observer.
func (c *Collector) TimerStopped(label string, elapsed time.Duration) {
	c.timers.WithLabelValues(label).Observe(elapsed.Seconds())
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func levelLabel(level logger.Level) string {
	return strings.ToLower(level.String())
}

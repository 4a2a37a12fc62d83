// Package config holds the scheduler core's configuration. The core has no
// CLI/env surface of its own — a Config is built programmatically by
// whatever embeds the core.
package config

import (
	"time"

	"go.opentelemetry.io/otel/trace"
	"k8s.io/utils/clock"

	"github.com/oriys/novasched/internal/cluster"
)

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // text, json
}

// Config is the scheduler core's configuration: allocation policy,
// scheduling quantum, clock, tracer, plus the ambient metrics/logging
// settings carried regardless of which domain features are in scope.
type Config struct {
	AllocationPolicy  cluster.AllocationPolicy
	SchedulingQuantum time.Duration
	Clock             clock.Clock
	Tracer            trace.Tracer

	Metrics MetricsConfig
	Logging LoggingConfig
}

// DefaultConfig returns a Config with sensible defaults: a first-fit
// allocation policy, a 60-second quantum, the real wall clock, and no
// tracer (tracing is opt-in).
func DefaultConfig() *Config {
	return &Config{
		AllocationPolicy:  cluster.FirstFit{},
		SchedulingQuantum: 60 * time.Second,
		Clock:             clock.RealClock{},
		Tracer:            nil,

		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "novasched",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

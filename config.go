package authflow

import (
	"errors"
	"log"
)

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	// Enabled turns audit emission on. When false no dispatcher goroutine
	// is started and sinks are never called.
	Enabled bool
	// BufferSize is the dispatcher channel capacity.
	BufferSize int
	// DropIfFull drops events under backpressure instead of blocking the
	// calling flow. Dropped events are counted, not silently lost.
	DropIfFull bool
}

// MetricsConfig controls the in-process atomic counters.
type MetricsConfig struct {
	Enabled bool
	// EnableLatency additionally records the gateway round-trip histogram.
	EnableLatency bool
}

// LoggingConfig carries the logger used for non-fatal anomalies (for
// example a rememberDevice request answered without a device-trust grant).
// A nil Logger falls back to the stdlib default logger.
type LoggingConfig struct {
	Logger *log.Logger
}

// Config defines a public type used by authflow APIs.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Config struct {
	Audit   AuditConfig
	Metrics MetricsConfig
	Logging LoggingConfig
}

func defaultConfig() Config {
	return Config{
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:       true,
			EnableLatency: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types today; the clone exists so Builder callers
	// can keep mutating their copy after WithConfig.
	return cfg
}

// Validate describes the validate operation and its observable behavior.
func (c Config) Validate() error {
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("authflow: audit buffer size must be positive when audit is enabled")
	}
	if c.Metrics.EnableLatency && !c.Metrics.Enabled {
		return errors.New("authflow: latency histogram requires metrics enabled")
	}
	return nil
}

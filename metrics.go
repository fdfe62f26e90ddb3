package authflow

import (
	"sync/atomic"
	"time"
)

// MetricID defines a public type used by authflow APIs.
type MetricID uint16

const (
	// MetricLoginSuccess is an exported constant or variable used by the authentication flow client.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure is an exported constant or variable used by the authentication flow client.
	MetricLoginFailure
	// MetricLoginMFARequired is an exported constant or variable used by the authentication flow client.
	MetricLoginMFARequired
	// MetricOTPRequested is an exported constant or variable used by the authentication flow client.
	MetricOTPRequested
	// MetricOTPRequestFailed is an exported constant or variable used by the authentication flow client.
	MetricOTPRequestFailed
	// MetricOTPVerifySuccess is an exported constant or variable used by the authentication flow client.
	MetricOTPVerifySuccess
	// MetricOTPVerifyFailure is an exported constant or variable used by the authentication flow client.
	MetricOTPVerifyFailure
	// MetricDeviceTrustGranted is an exported constant or variable used by the authentication flow client.
	MetricDeviceTrustGranted
	// MetricDeviceTrustAnomaly is an exported constant or variable used by the authentication flow client.
	MetricDeviceTrustAnomaly
	// MetricMFAEnrolled is an exported constant or variable used by the authentication flow client.
	MetricMFAEnrolled
	// MetricMFADisabled is an exported constant or variable used by the authentication flow client.
	MetricMFADisabled
	// MetricMFAOperationFailed is an exported constant or variable used by the authentication flow client.
	MetricMFAOperationFailed
	// MetricDevicesRevoked is an exported constant or variable used by the authentication flow client.
	MetricDevicesRevoked
	// MetricResetRequested is an exported constant or variable used by the authentication flow client.
	MetricResetRequested
	// MetricResetCodeVerified is an exported constant or variable used by the authentication flow client.
	MetricResetCodeVerified
	// MetricResetConfirmSuccess is an exported constant or variable used by the authentication flow client.
	MetricResetConfirmSuccess
	// MetricResetConfirmFailure is an exported constant or variable used by the authentication flow client.
	MetricResetConfirmFailure
	// MetricLogout is an exported constant or variable used by the authentication flow client.
	MetricLogout
	// MetricRegisterSuccess is an exported constant or variable used by the authentication flow client.
	MetricRegisterSuccess
	// MetricRegisterFailure is an exported constant or variable used by the authentication flow client.
	MetricRegisterFailure
	// MetricTransportError is an exported constant or variable used by the authentication flow client.
	MetricTransportError
	// MetricGatewayLatency is an exported constant or variable used by the authentication flow client.
	MetricGatewayLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics defines a public type used by authflow APIs.
//
// Metrics instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot defines a public type used by authflow APIs.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatency,
	}
}

// Enabled describes the enabled operation and its observable behavior.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled describes the latencyenabled operation and its observable behavior.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc describes the inc operation and its observable behavior.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe describes the observe operation and its observable behavior.
//
// Only [MetricGatewayLatency] carries a histogram; other IDs are ignored.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricGatewayLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value describes the value operation and its observable behavior.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot describes the snapshot operation and its observable behavior.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricGatewayLatency].buckets[i])
		}
		s.Histograms[MetricGatewayLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}

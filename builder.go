package authflow

import (
	"errors"

	"github.com/MrEthical07/authflow/gateway"
	"github.com/MrEthical07/authflow/store"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by authflow APIs.
//
// Builder instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	gw        gateway.Gateway
	creds     store.Store
	redis     *redis.Client
	namespace string

	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the default configuration. The value is cloned; later
// mutation of cfg by the caller has no effect.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithGateway installs the transport gateway. Required.
func (b *Builder) WithGateway(gw gateway.Gateway) *Builder {
	b.gw = gw
	return b
}

// WithStore installs the persisted credential store. Either this or
// [Builder.WithRedis] is required.
func (b *Builder) WithStore(s store.Store) *Builder {
	b.creds = s
	return b
}

// WithRedis is a convenience for backing the credential store with Redis
// under the given profile namespace. Ignored when WithStore was called.
func (b *Builder) WithRedis(client *redis.Client, namespace string) *Builder {
	b.redis = client
	b.namespace = namespace
	return b
}

// WithAuditSink installs the audit sink. Defaults to [NoOpSink].
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build wires the client. It is a configuration-only step: no network or
// store I/O happens until the first flow operation.
func (b *Builder) Build() (*Client, error) {
	if b == nil {
		return nil, errors.New("authflow: nil builder")
	}
	if b.built {
		return nil, errors.New("authflow: builder already used")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	if b.gw == nil {
		return nil, errors.New("authflow: gateway is required")
	}

	creds := b.creds
	if creds == nil {
		if b.redis == nil {
			return nil, errors.New("authflow: credential store is required (WithStore or WithRedis)")
		}
		redisStore, err := store.NewRedis(b.redis, b.namespace)
		if err != nil {
			return nil, err
		}
		creds = redisStore
	}

	c := &Client{
		config:  b.config,
		gateway: b.gw,
		creds:   creds,
		metrics: NewMetrics(b.config.Metrics),
		audit:   newAuditDispatcher(b.config.Audit, b.auditSink),
		logger:  b.config.Logging.Logger,
	}

	b.built = true
	return c, nil
}

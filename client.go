package authflow

import (
	"context"
	"log"
	"time"

	"github.com/MrEthical07/authflow/gateway"
	"github.com/MrEthical07/authflow/store"
)

// Client defines a public type used by authflow APIs.
//
// Client instances are intended to be configured during initialization
// through [Builder.Build] and then treated as immutable. Flow instances
// created from a Client carry the per-attempt state; the Client itself only
// holds collaborators. One in-flight operation per flow instance is the
// caller's contract — the Client takes no locks on the credential store.
type Client struct {
	config  Config
	gateway gateway.Gateway
	creds   store.Store
	metrics *Metrics
	audit   *auditDispatcher
	logger  *log.Logger
}

// Close describes the close operation and its observable behavior.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.audit != nil {
		c.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
func (c *Client) AuditDropped() uint64 {
	if c == nil || c.audit == nil {
		return 0
	}
	return c.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

func (c *Client) metricInc(id MetricID) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Inc(id)
}

func (c *Client) observeGateway(start time.Time) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Observe(MetricGatewayLatency, time.Since(start))
}

func (c *Client) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	cause error,
	detail func() map[string]string,
) {
	if c == nil || c.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		UserID:    userID,
		RequestID: gateway.RequestIDFromContext(ctx),
		Success:   success,
	}
	if cause != nil {
		event.Error = cause.Error()
	}
	if detail != nil {
		event.Metadata = detail()
	}

	c.audit.Emit(ctx, event)
}

func (c *Client) warn(msg string) {
	if c == nil {
		return
	}
	if c.logger != nil {
		c.logger.Println(msg)
		return
	}
	log.Println(msg)
}

// Register describes the register operation and its observable behavior.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if c == nil || c.gateway == nil {
		return nil, ErrClientNotReady
	}

	start := time.Now()
	resp, err := c.gateway.Register(ctx, gateway.RegisterRequest{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Phone:    input.Phone,
	})
	c.observeGateway(start)
	if err != nil {
		classified := c.classify(err, nil, ErrRegistrationFailed)
		c.metricInc(MetricRegisterFailure)
		c.emitAudit(ctx, auditEventRegister, false, "", classified, func() map[string]string {
			return map[string]string{
				"identifier": input.Username,
			}
		})
		return nil, classified
	}

	c.metricInc(MetricRegisterSuccess)
	c.emitAudit(ctx, auditEventRegister, true, resp.UserID, nil, func() map[string]string {
		return map[string]string{
			"identifier": input.Username,
		}
	})
	return &RegisterResult{
		UserID:  resp.UserID,
		Message: resp.Message,
	}, nil
}

// Logout clears the persisted session token and nothing else. The
// device-trust identifier deliberately survives logout so the next login on
// this device can still skip the second factor.
func (c *Client) Logout(ctx context.Context) error {
	if c == nil || c.creds == nil {
		return ErrClientNotReady
	}

	if err := c.creds.Clear(ctx, store.KindSession); err != nil {
		c.emitAudit(ctx, auditEventLogout, false, "", err, nil)
		return err
	}

	c.metricInc(MetricLogout)
	c.emitAudit(ctx, auditEventLogout, true, "", nil, nil)
	return nil
}

// TokenSource adapts the credential store's session slot to the gateway's
// bearer-token hook, closing the loop for authenticated endpoints.
func (c *Client) TokenSource() gateway.TokenSource {
	return func(ctx context.Context) (string, bool) {
		if c == nil || c.creds == nil {
			return "", false
		}
		token, ok, err := c.creds.Get(ctx, store.KindSession)
		if err != nil || !ok {
			return "", false
		}
		return token, true
	}
}

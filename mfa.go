package authflow

import (
	"context"
	"fmt"
	"time"

	"github.com/MrEthical07/authflow/gateway"
)

// EnableEmailMFA enrolls the email channel for an already-identified user.
// Enrolling an already-enabled method is the server's call to accept or
// refuse; the client performs no precondition check.
func (c *Client) EnableEmailMFA(ctx context.Context, userID string) error {
	return c.enableMFA(ctx, userID, MFAEmail, "")
}

// EnableSMSMFA enrolls the SMS channel. The server requires the phone
// number for this method only.
func (c *Client) EnableSMSMFA(ctx context.Context, userID, phone string) error {
	return c.enableMFA(ctx, userID, MFASMS, phone)
}

// EnableAppMFA enrolls the authenticator-app channel.
func (c *Client) EnableAppMFA(ctx context.Context, userID string) error {
	return c.enableMFA(ctx, userID, MFAApp, "")
}

func (c *Client) enableMFA(ctx context.Context, userID string, method MFAMethod, phone string) error {
	if c == nil || c.gateway == nil {
		return ErrClientNotReady
	}

	start := time.Now()
	_, err := c.gateway.EnableMFA(ctx, string(method), gateway.EnableMFARequest{
		UserID: userID,
		Phone:  phone,
	})
	c.observeGateway(start)
	if err != nil {
		classified := c.classify(err, nil, ErrMFAOperationFailed)
		c.metricInc(MetricMFAOperationFailed)
		c.emitAudit(ctx, auditEventMFAEnrolled, false, userID, classified, func() map[string]string {
			return map[string]string{
				"method": string(method),
			}
		})
		return classified
	}

	c.metricInc(MetricMFAEnrolled)
	c.emitAudit(ctx, auditEventMFAEnrolled, true, userID, nil, func() map[string]string {
		return map[string]string{
			"method": string(method),
		}
	})
	return nil
}

// MFAMethods lists the user's currently enrolled second-factor channels.
// The result is the server's live view, never cached.
func (c *Client) MFAMethods(ctx context.Context, userID string) ([]MFAMethod, error) {
	if c == nil || c.gateway == nil {
		return nil, ErrClientNotReady
	}

	start := time.Now()
	raw, err := c.gateway.MFAMethods(ctx, userID)
	c.observeGateway(start)
	if err != nil {
		classified := c.classify(err, nil, ErrMFAOperationFailed)
		c.metricInc(MetricMFAOperationFailed)
		c.emitAudit(ctx, auditEventMFAListFailed, false, userID, classified, nil)
		return nil, classified
	}

	return parseMethods(c, raw), nil
}

// DisableMFAMethod removes one enrolled channel. Disabling an unenrolled
// method is a server-decided no-op or error, not a client check.
func (c *Client) DisableMFAMethod(ctx context.Context, userID string, method MFAMethod) error {
	if c == nil || c.gateway == nil {
		return ErrClientNotReady
	}
	if !method.Valid() {
		return fmt.Errorf("%w: %q", ErrMethodNotOffered, string(method))
	}

	start := time.Now()
	_, err := c.gateway.DisableMFAMethod(ctx, gateway.DisableMFARequest{
		UserID: userID,
		Method: string(method),
	})
	c.observeGateway(start)
	if err != nil {
		classified := c.classify(err, nil, ErrMFAOperationFailed)
		c.metricInc(MetricMFAOperationFailed)
		c.emitAudit(ctx, auditEventMFADisabled, false, userID, classified, func() map[string]string {
			return map[string]string{
				"method": string(method),
			}
		})
		return classified
	}

	c.metricInc(MetricMFADisabled)
	c.emitAudit(ctx, auditEventMFADisabled, true, userID, nil, func() map[string]string {
		return map[string]string{
			"method": string(method),
		}
	})
	return nil
}

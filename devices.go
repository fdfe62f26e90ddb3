package authflow

import (
	"context"
	"time"

	"github.com/MrEthical07/authflow/gateway"
	"github.com/MrEthical07/authflow/store"
)

// TrustedDevices lists the server's current trust records for the user.
// Read-only projection; nothing is cached locally.
func (c *Client) TrustedDevices(ctx context.Context, userID string) ([]TrustedDevice, error) {
	if c == nil || c.gateway == nil {
		return nil, ErrClientNotReady
	}

	start := time.Now()
	devices, err := c.gateway.TrustedDevices(ctx, userID)
	c.observeGateway(start)
	if err != nil {
		return nil, c.classify(err, nil, ErrTransport)
	}
	return devices, nil
}

// RevokeAllDevices invalidates every trust grant server-side and then
// clears the locally persisted device-trust identifier. Without the local
// purge this device would keep claiming a grant the server just revoked.
// The purge is idempotent: revoking with no local identifier is not an
// error.
func (c *Client) RevokeAllDevices(ctx context.Context, userID string) error {
	if c == nil || c.gateway == nil || c.creds == nil {
		return ErrClientNotReady
	}

	start := time.Now()
	_, err := c.gateway.RevokeAllDevices(ctx, gateway.RevokeAllRequest{UserID: userID})
	c.observeGateway(start)
	if err != nil {
		classified := c.classify(err, nil, ErrDeviceRevokeFailed)
		c.emitAudit(ctx, auditEventDevicesRevoked, false, userID, classified, nil)
		return classified
	}

	if err := c.creds.Clear(ctx, store.KindDeviceTrust); err != nil {
		// Server-side revocation already happened; the stale local value
		// must not survive silently.
		c.emitAudit(ctx, auditEventDevicesRevoked, false, userID, err, func() map[string]string {
			return map[string]string{
				"reason": "local_purge_failed",
			}
		})
		return err
	}

	c.metricInc(MetricDevicesRevoked)
	c.emitAudit(ctx, auditEventDevicesRevoked, true, userID, nil, nil)
	return nil
}

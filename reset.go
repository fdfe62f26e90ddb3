package authflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/authflow/gateway"
	"github.com/MrEthical07/authflow/store"
)

// ResetState is the tagged state of a [PasswordResetFlow].
type ResetState uint8

const (
	// ResetIdle is an exported constant or variable used by the authentication flow client.
	ResetIdle ResetState = iota
	// ResetCodeRequested is an exported constant or variable used by the authentication flow client.
	ResetCodeRequested
	// ResetCodeVerified is an exported constant or variable used by the authentication flow client.
	ResetCodeVerified
	// ResetComplete is an exported constant or variable used by the authentication flow client.
	ResetComplete
)

// String describes the string operation and its observable behavior.
func (s ResetState) String() string {
	switch s {
	case ResetIdle:
		return "idle"
	case ResetCodeRequested:
		return "code_requested"
	case ResetCodeVerified:
		return "code_verified"
	case ResetComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// PasswordResetFlow is the three-step out-of-band identity re-proof:
// request a code to the account email, verify it, replace the password.
// The flow is independent of login state — no active session is required —
// and a completed reset purges the device-trust identifier so every device
// re-proves itself after a password change.
type PasswordResetFlow struct {
	client     *Client
	state      ResetState
	email      string
	code       string
	resetToken string
}

// NewPasswordResetFlow describes the newpasswordresetflow operation and its
// observable behavior.
func (c *Client) NewPasswordResetFlow() *PasswordResetFlow {
	return &PasswordResetFlow{
		client: c,
		state:  ResetIdle,
	}
}

// State describes the state operation and its observable behavior.
func (f *PasswordResetFlow) State() ResetState {
	return f.state
}

// Reset returns the flow to [ResetIdle], discarding the verified code and
// reset token.
func (f *PasswordResetFlow) Reset() {
	f.state = ResetIdle
	f.email = ""
	f.code = ""
	f.resetToken = ""
}

// RequestCode asks the server to deliver a recovery code to the account
// email. An unregistered address classifies as [ErrAccountNotFound] with
// the server's message passed through verbatim — nothing beyond what the
// server states is leaked about why.
//
// Re-requesting from [ResetCodeRequested] is legal and supersedes the
// previous code server-side.
func (f *PasswordResetFlow) RequestCode(ctx context.Context, email string) error {
	if f == nil || f.client == nil || f.client.gateway == nil {
		return ErrClientNotReady
	}
	switch f.state {
	case ResetIdle, ResetCodeRequested:
	default:
		return fmt.Errorf("%w: request code in state %s", ErrFlowState, f.state)
	}

	c := f.client
	start := time.Now()
	_, err := c.gateway.ForgotPassword(ctx, gateway.ForgotPasswordRequest{Email: email})
	c.observeGateway(start)
	if err != nil {
		classified := c.classify(err, forgotPasswordRules, ErrResetFailed)
		c.metricInc(MetricResetConfirmFailure)
		c.emitAudit(ctx, auditEventResetFailed, false, "", classified, func() map[string]string {
			return map[string]string{
				"step": "request_code",
			}
		})
		return classified
	}

	f.email = email
	f.code = ""
	f.resetToken = ""
	f.state = ResetCodeRequested
	c.metricInc(MetricResetRequested)
	c.emitAudit(ctx, auditEventResetRequested, true, "", nil, nil)
	return nil
}

// VerifyCode submits the delivered code. The failure categories are
// deliberately distinct because the recovery UX differs: [ErrCodeExpired]
// means request a new code, [ErrRateLimited] means back off, and
// [ErrCodeInvalid] means retry the same code step. None of them advance
// the flow — it stays in [ResetCodeRequested].
func (f *PasswordResetFlow) VerifyCode(ctx context.Context, code string) error {
	if f == nil || f.client == nil || f.client.gateway == nil {
		return ErrClientNotReady
	}
	if f.state != ResetCodeRequested {
		return fmt.Errorf("%w: verify code in state %s", ErrFlowState, f.state)
	}

	c := f.client
	start := time.Now()
	resp, err := c.gateway.VerifyResetCode(ctx, gateway.VerifyResetCodeRequest{
		Email: f.email,
		Code:  code,
	})
	c.observeGateway(start)
	if err != nil {
		classified := c.classify(err, verifyResetCodeRules, ErrResetFailed)
		c.metricInc(MetricResetConfirmFailure)
		c.emitAudit(ctx, auditEventResetFailed, false, "", classified, func() map[string]string {
			return map[string]string{
				"step": "verify_code",
			}
		})
		return classified
	}

	f.code = code
	f.resetToken = resp.ResetToken
	f.state = ResetCodeVerified
	c.metricInc(MetricResetCodeVerified)
	c.emitAudit(ctx, auditEventResetCodeVerified, true, "", nil, nil)
	return nil
}

// ResetPassword replaces the password using the token issued at code
// verification. The token is single-use per server contract; a second call
// after success is illegal here and would be refused by the server anyway.
//
// On success the persisted device-trust identifier is cleared as a
// security postcondition. The session token is deliberately untouched: a
// reset may run without any active session. [ErrTokenExpired] returns the
// flow to [ResetIdle] — the caller must restart at RequestCode.
func (f *PasswordResetFlow) ResetPassword(ctx context.Context, password string) error {
	if f == nil || f.client == nil || f.client.gateway == nil || f.client.creds == nil {
		return ErrClientNotReady
	}
	if f.state != ResetCodeVerified {
		return fmt.Errorf("%w: reset password in state %s", ErrFlowState, f.state)
	}

	token := f.resetToken
	if token == "" {
		// Some backend revisions never mint a separate token and accept the
		// verified code itself.
		token = f.code
	}

	c := f.client
	start := time.Now()
	_, err := c.gateway.ResetPassword(ctx, gateway.ResetPasswordRequest{
		Token:    token,
		Email:    f.email,
		Password: password,
	})
	c.observeGateway(start)
	if err != nil {
		classified := c.classify(err, resetPasswordRules, ErrResetFailed)
		if errors.Is(classified, ErrTokenExpired) {
			f.state = ResetIdle
			f.code = ""
			f.resetToken = ""
		}
		c.metricInc(MetricResetConfirmFailure)
		c.emitAudit(ctx, auditEventResetFailed, false, "", classified, func() map[string]string {
			return map[string]string{
				"step": "reset_password",
			}
		})
		return classified
	}

	f.state = ResetComplete
	c.metricInc(MetricResetConfirmSuccess)
	c.emitAudit(ctx, auditEventResetConfirmed, true, "", nil, nil)

	// Force re-trust of every device after a credential change. The
	// session slot is not touched.
	if err := c.creds.Clear(ctx, store.KindDeviceTrust); err != nil {
		c.warn("authflow: device-trust purge after password reset failed: " + err.Error())
		c.emitAudit(ctx, auditEventDeviceTrustAnomaly, false, "", err, func() map[string]string {
			return map[string]string{
				"reason": "post_reset_purge_failed",
			}
		})
		return err
	}
	return nil
}

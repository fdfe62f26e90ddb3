package authflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/authflow/gateway"
	"github.com/MrEthical07/authflow/store"
)

// LoginState is the tagged state of a [LoginFlow]. The state value — not
// ambient flags — decides which operation is legal next; illegal calls fail
// with [ErrFlowState] before any I/O.
type LoginState uint8

const (
	// LoginIdle is an exported constant or variable used by the authentication flow client.
	LoginIdle LoginState = iota
	// LoginSubmitting is an exported constant or variable used by the authentication flow client.
	LoginSubmitting
	// LoginAuthenticated is an exported constant or variable used by the authentication flow client.
	LoginAuthenticated
	// LoginRejected is an exported constant or variable used by the authentication flow client.
	LoginRejected
	// LoginAwaitingMethodSelection is an exported constant or variable used by the authentication flow client.
	LoginAwaitingMethodSelection
	// LoginRequestingOTP is an exported constant or variable used by the authentication flow client.
	LoginRequestingOTP
	// LoginAwaitingOTPEntry is an exported constant or variable used by the authentication flow client.
	LoginAwaitingOTPEntry
	// LoginVerifyingOTP is an exported constant or variable used by the authentication flow client.
	LoginVerifyingOTP
	// LoginOTPRejected is an exported constant or variable used by the authentication flow client.
	LoginOTPRejected
)

// String describes the string operation and its observable behavior.
func (s LoginState) String() string {
	switch s {
	case LoginIdle:
		return "idle"
	case LoginSubmitting:
		return "submitting"
	case LoginAuthenticated:
		return "authenticated"
	case LoginRejected:
		return "rejected"
	case LoginAwaitingMethodSelection:
		return "awaiting_method_selection"
	case LoginRequestingOTP:
		return "requesting_otp"
	case LoginAwaitingOTPEntry:
		return "awaiting_otp_entry"
	case LoginVerifyingOTP:
		return "verifying_otp"
	case LoginOTPRejected:
		return "otp_rejected"
	default:
		return "unknown"
	}
}

// LoginFlow drives one login attempt: credential submission, the optional
// MFA challenge, and the terminal authenticated state. A flow instance is
// single-attempt and single-caller; start a fresh attempt with
// [LoginFlow.Reset] or another [Client.NewLoginFlow].
type LoginFlow struct {
	client  *Client
	state   LoginState
	userID  string
	methods []MFAMethod
	method  MFAMethod
}

// NewLoginFlow describes the newloginflow operation and its observable behavior.
func (c *Client) NewLoginFlow() *LoginFlow {
	return &LoginFlow{
		client: c,
		state:  LoginIdle,
	}
}

// State describes the state operation and its observable behavior.
func (f *LoginFlow) State() LoginState {
	return f.state
}

// UserID returns the identifier reported with the MFA challenge, empty
// before [LoginFlow.Submit].
func (f *LoginFlow) UserID() string {
	return f.userID
}

// Methods returns the enrolled MFA methods offered by the server for this
// attempt.
func (f *LoginFlow) Methods() []MFAMethod {
	out := make([]MFAMethod, len(f.methods))
	copy(out, f.methods)
	return out
}

// Reset abandons the attempt and returns the flow to [LoginIdle]. Nothing
// persisted is touched.
func (f *LoginFlow) Reset() {
	f.state = LoginIdle
	f.userID = ""
	f.methods = nil
	f.method = ""
}

// Submit sends the credentials, including the persisted device-trust
// identifier when one exists so the server can recognize this device. On a
// direct accept the session token is stored before Submit returns; the
// device-trust slot is left untouched either way.
//
// Credential rejection classifies as [ErrInvalidCredentials] and any other
// transport failure as [ErrTransport]; both return the flow to [LoginIdle]
// so the caller decides on retry.
func (f *LoginFlow) Submit(ctx context.Context, creds Credentials) (*LoginOutcome, error) {
	if f == nil || f.client == nil || f.client.gateway == nil || f.client.creds == nil {
		return nil, ErrClientNotReady
	}
	if f.state != LoginIdle {
		return nil, fmt.Errorf("%w: submit in state %s", ErrFlowState, f.state)
	}
	f.state = LoginSubmitting

	c := f.client
	deviceTrust, _, err := c.creds.Get(ctx, store.KindDeviceTrust)
	if err != nil {
		f.state = LoginIdle
		return nil, err
	}

	start := time.Now()
	resp, err := c.gateway.Login(ctx, gateway.LoginRequest{
		Username:    creds.Username,
		Password:    creds.Password,
		DeviceTrust: deviceTrust,
	})
	c.observeGateway(start)
	if err != nil {
		classified := c.classify(err, loginRules, ErrTransport)
		f.state = LoginIdle
		c.metricInc(MetricLoginFailure)
		c.emitAudit(ctx, auditEventLoginFailure, false, "", classified, func() map[string]string {
			return map[string]string{
				"identifier":       creds.Username,
				"had_device_trust": fmt.Sprintf("%t", deviceTrust != ""),
			}
		})
		return nil, classified
	}

	if resp.RequiresMFA {
		f.userID = resp.UserID
		f.methods = parseMethods(c, resp.MFAMethods)
		f.state = LoginAwaitingMethodSelection
		c.metricInc(MetricLoginMFARequired)
		c.emitAudit(ctx, auditEventLoginMFARequired, true, resp.UserID, nil, func() map[string]string {
			return map[string]string{
				"identifier": creds.Username,
				"methods":    fmt.Sprintf("%v", resp.MFAMethods),
			}
		})
		return &LoginOutcome{
			Authenticated: false,
			DeviceTrusted: resp.DeviceTrusted,
			UserID:        resp.UserID,
			Methods:       f.Methods(),
			Message:       resp.Message,
		}, nil
	}

	// Direct accept: the server must have issued a token. A 2xx without one
	// is a malformed response and never reaches the store.
	if resp.Token == "" {
		f.state = LoginIdle
		c.metricInc(MetricLoginFailure)
		malformed := fmt.Errorf("%w: login response missing token", ErrTransport)
		c.emitAudit(ctx, auditEventLoginFailure, false, resp.UserID, malformed, nil)
		return nil, malformed
	}
	if err := c.creds.Set(ctx, store.KindSession, resp.Token); err != nil {
		f.state = LoginIdle
		c.metricInc(MetricLoginFailure)
		c.emitAudit(ctx, auditEventLoginFailure, false, resp.UserID, err, nil)
		return nil, err
	}

	f.userID = resp.UserID
	f.state = LoginAuthenticated
	c.metricInc(MetricLoginSuccess)
	c.emitAudit(ctx, auditEventLoginSuccess, true, resp.UserID, nil, func() map[string]string {
		return map[string]string{
			"identifier":     creds.Username,
			"device_trusted": fmt.Sprintf("%t", resp.DeviceTrusted),
		}
	})
	return &LoginOutcome{
		Authenticated: true,
		DeviceTrusted: resp.DeviceTrusted,
		UserID:        resp.UserID,
		Message:       resp.Message,
	}, nil
}

// RequestOTP asks the server to deliver a one-time code over the chosen
// method. The server is the source of truth for which methods are
// enrollable; a delivery refusal surfaces as [ErrChallengeDeliveryFailed].
func (f *LoginFlow) RequestOTP(ctx context.Context, method MFAMethod) error {
	if f == nil || f.client == nil || f.client.gateway == nil {
		return ErrClientNotReady
	}
	switch f.state {
	case LoginAwaitingMethodSelection, LoginAwaitingOTPEntry, LoginOTPRejected:
	default:
		return fmt.Errorf("%w: request otp in state %s", ErrFlowState, f.state)
	}
	if !method.Valid() {
		return fmt.Errorf("%w: %q", ErrMethodNotOffered, string(method))
	}

	previous := f.state
	f.state = LoginRequestingOTP

	c := f.client
	start := time.Now()
	_, err := c.gateway.RequestOTP(ctx, gateway.RequestOTPRequest{
		UserID: f.userID,
		Method: string(method),
	})
	c.observeGateway(start)
	if err != nil {
		classified := c.classify(err, requestOTPRules, ErrChallengeDeliveryFailed)
		f.state = previous
		c.metricInc(MetricOTPRequestFailed)
		c.emitAudit(ctx, auditEventOTPRequestFailed, false, f.userID, classified, func() map[string]string {
			return map[string]string{
				"method": string(method),
			}
		})
		return classified
	}

	f.method = method
	f.state = LoginAwaitingOTPEntry
	c.metricInc(MetricOTPRequested)
	c.emitAudit(ctx, auditEventOTPRequested, true, f.userID, nil, func() map[string]string {
		return map[string]string{
			"method": string(method),
		}
	})
	return nil
}

// VerifyOTP submits the entered code. On success the session token is
// always stored; the device-trust identifier is stored only when the server
// issued one. A rememberDevice request the server answered without a trust
// grant is a logged anomaly, never an error.
//
// A rejected code leaves the flow in [LoginOTPRejected], from which another
// VerifyOTP or RequestOTP is legal. [ErrTooManyAttempts] is terminal for
// the attempt and is never retried here.
func (f *LoginFlow) VerifyOTP(ctx context.Context, otp string, rememberDevice bool) (*LoginOutcome, error) {
	if f == nil || f.client == nil || f.client.gateway == nil || f.client.creds == nil {
		return nil, ErrClientNotReady
	}
	switch f.state {
	case LoginAwaitingOTPEntry, LoginOTPRejected:
	default:
		return nil, fmt.Errorf("%w: verify otp in state %s", ErrFlowState, f.state)
	}
	f.state = LoginVerifyingOTP

	c := f.client
	start := time.Now()
	resp, err := c.gateway.VerifyOTP(ctx, gateway.VerifyOTPRequest{
		UserID:         f.userID,
		Method:         string(f.method),
		OTP:            otp,
		RememberDevice: rememberDevice,
	})
	c.observeGateway(start)
	if err != nil {
		classified := c.classify(err, verifyOTPRules, ErrTransport)
		if isTooManyAttempts(classified) {
			f.state = LoginRejected
		} else {
			f.state = LoginOTPRejected
		}
		c.metricInc(MetricOTPVerifyFailure)
		c.emitAudit(ctx, auditEventOTPRejected, false, f.userID, classified, func() map[string]string {
			return map[string]string{
				"method": string(f.method),
			}
		})
		return nil, classified
	}

	if resp.Token == "" {
		f.state = LoginOTPRejected
		c.metricInc(MetricOTPVerifyFailure)
		malformed := fmt.Errorf("%w: verify-otp response missing token", ErrTransport)
		c.emitAudit(ctx, auditEventOTPRejected, false, f.userID, malformed, nil)
		return nil, malformed
	}
	if err := c.creds.Set(ctx, store.KindSession, resp.Token); err != nil {
		f.state = LoginOTPRejected
		c.emitAudit(ctx, auditEventOTPRejected, false, f.userID, err, nil)
		return nil, err
	}

	trusted := false
	switch {
	case resp.DeviceTrust != "":
		if err := c.creds.Set(ctx, store.KindDeviceTrust, resp.DeviceTrust); err != nil {
			// The session is valid either way; losing the trust grant only
			// means the next login repeats the second factor.
			c.warn("authflow: device-trust identifier could not be persisted: " + err.Error())
			c.metricInc(MetricDeviceTrustAnomaly)
			c.emitAudit(ctx, auditEventDeviceTrustAnomaly, false, f.userID, err, nil)
		} else {
			trusted = true
			c.metricInc(MetricDeviceTrustGranted)
			c.emitAudit(ctx, auditEventDeviceTrustGranted, true, f.userID, nil, nil)
		}
	case rememberDevice:
		// Server policy may decline to issue a grant; loggable, not fatal.
		c.warn("authflow: rememberDevice requested but server issued no device-trust identifier")
		c.metricInc(MetricDeviceTrustAnomaly)
		c.emitAudit(ctx, auditEventDeviceTrustAnomaly, true, f.userID, nil, func() map[string]string {
			return map[string]string{
				"reason": "remember_requested_no_grant",
			}
		})
	}

	f.state = LoginAuthenticated
	c.metricInc(MetricOTPVerifySuccess)
	c.metricInc(MetricLoginSuccess)
	c.emitAudit(ctx, auditEventOTPVerified, true, f.userID, nil, func() map[string]string {
		return map[string]string{
			"method":        string(f.method),
			"trust_granted": fmt.Sprintf("%t", trusted),
		}
	})
	return &LoginOutcome{
		Authenticated: true,
		DeviceTrusted: trusted,
		UserID:        f.userID,
		Message:       resp.Message,
	}, nil
}

func isTooManyAttempts(err error) bool {
	return errors.Is(err, ErrTooManyAttempts)
}

func parseMethods(c *Client, raw []string) []MFAMethod {
	methods := make([]MFAMethod, 0, len(raw))
	for _, m := range raw {
		method := MFAMethod(m)
		if !method.Valid() {
			// Unknown channel from a newer server; skip rather than offer
			// something this client cannot drive.
			c.warn("authflow: server offered unknown mfa method " + m)
			continue
		}
		methods = append(methods, method)
	}
	return methods
}

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	headerRequestID   = "X-Request-ID"
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"

	// maxErrorBody bounds how much of an error response is read while
	// looking for a server message.
	maxErrorBody = 64 << 10
)

// TokenSource supplies the bearer token for authenticated endpoints. The
// bool reports whether a token is currently available; unauthenticated
// calls proceed without the Authorization header.
type TokenSource func(ctx context.Context) (string, bool)

// HTTP is the production [Gateway] over net/http. Zero retries, zero
// caching; timeout policy belongs to the injected http.Client.
type HTTP struct {
	baseURL string
	client  *http.Client
	token   TokenSource
}

// HTTPOption configures [NewHTTP].
type HTTPOption func(*HTTP)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTP) {
		if c != nil {
			h.client = c
		}
	}
}

// WithTokenSource installs the bearer-token supplier used on authenticated
// endpoints. Typically wired to the credential store's session slot.
func WithTokenSource(src TokenSource) HTTPOption {
	return func(h *HTTP) {
		h.token = src
	}
}

// NewHTTP describes the newhttp operation and its observable behavior.
func NewHTTP(baseURL string, opts ...HTTPOption) (*HTTP, error) {
	trimmed := strings.TrimRight(baseURL, "/")
	if trimmed == "" {
		return nil, errors.New("gateway: empty base URL")
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("gateway: invalid base URL: %w", err)
	}

	h := &HTTP{
		baseURL: trimmed,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Register describes the register operation and its observable behavior.
func (h *HTTP) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	out := &RegisterResponse{}
	if err := h.post(ctx, "/auth/register", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Login describes the login operation and its observable behavior.
func (h *HTTP) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	out := &LoginResponse{}
	if err := h.post(ctx, "/auth/login", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RequestOTP describes the requestotp operation and its observable behavior.
func (h *HTTP) RequestOTP(ctx context.Context, req RequestOTPRequest) (*StatusResponse, error) {
	out := &StatusResponse{}
	if err := h.post(ctx, "/auth/request-otp", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyOTP describes the verifyotp operation and its observable behavior.
func (h *HTTP) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyOTPResponse, error) {
	out := &VerifyOTPResponse{}
	if err := h.post(ctx, "/auth/verify-otp", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnableMFA describes the enablemfa operation and its observable behavior.
// The wire contract exposes one endpoint per method
// (enable-mfa-email|enable-mfa-sms|enable-mfa-app).
func (h *HTTP) EnableMFA(ctx context.Context, method string, req EnableMFARequest) (*StatusResponse, error) {
	out := &StatusResponse{}
	if err := h.post(ctx, "/auth/enable-mfa-"+method, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MFAMethods describes the mfamethods operation and its observable behavior.
func (h *HTTP) MFAMethods(ctx context.Context, userID string) ([]string, error) {
	var out []string
	if err := h.get(ctx, "/auth/mfa-methods/"+url.PathEscape(userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DisableMFAMethod describes the disablemfamethod operation and its observable behavior.
func (h *HTTP) DisableMFAMethod(ctx context.Context, req DisableMFARequest) (*StatusResponse, error) {
	out := &StatusResponse{}
	if err := h.post(ctx, "/auth/disable-mfa-method", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// TrustedDevices describes the trusteddevices operation and its observable behavior.
func (h *HTTP) TrustedDevices(ctx context.Context, userID string) ([]TrustedDevice, error) {
	var out []TrustedDevice
	if err := h.get(ctx, "/auth/trusted-devices/"+url.PathEscape(userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RevokeAllDevices describes the revokealldevices operation and its observable behavior.
func (h *HTTP) RevokeAllDevices(ctx context.Context, req RevokeAllRequest) (*StatusResponse, error) {
	out := &StatusResponse{}
	if err := h.post(ctx, "/auth/revoke-all-devices", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ForgotPassword describes the forgotpassword operation and its observable behavior.
func (h *HTTP) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*StatusResponse, error) {
	out := &StatusResponse{}
	if err := h.post(ctx, "/auth/forgot-password", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyResetCode describes the verifyresetcode operation and its observable behavior.
func (h *HTTP) VerifyResetCode(ctx context.Context, req VerifyResetCodeRequest) (*VerifyResetCodeResponse, error) {
	out := &VerifyResetCodeResponse{}
	if err := h.post(ctx, "/auth/verify-reset-code", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResetPassword describes the resetpassword operation and its observable behavior.
func (h *HTTP) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*StatusResponse, error) {
	out := &StatusResponse{}
	if err := h.post(ctx, "/auth/reset-password", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *HTTP) post(ctx context.Context, endpoint string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("gateway: encode %s: %w", endpoint, err)
	}
	return h.do(ctx, http.MethodPost, endpoint, bytes.NewReader(body), out)
}

func (h *HTTP) get(ctx context.Context, endpoint string, out any) error {
	return h.do(ctx, http.MethodGet, endpoint, nil, out)
}

func (h *HTTP) do(ctx context.Context, method, endpoint string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("gateway: build %s: %w", endpoint, err)
	}

	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	if h.token != nil {
		if token, ok := h.token(ctx); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    serverMessage(resp.Body),
			RequestID:  requestID,
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty 2xx bodies are valid for the status-only endpoints.
			return nil
		}
		return fmt.Errorf("gateway: decode %s: %w", endpoint, err)
	}
	return nil
}

// serverMessage pulls the human-readable text out of an error body. Both
// {"message": ...} and {"error": ...} shapes are seen in the wild.
func serverMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

package gateway

import (
	"context"
	"fmt"
)

// RegisterRequest carries the profile fields for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// RegisterResponse defines a public type used by authflow APIs.
type RegisterResponse struct {
	UserID  string `json:"userId,omitempty"`
	Message string `json:"message,omitempty"`
}

// LoginRequest carries the credential payload for POST /auth/login. The
// device-trust identifier is included only when one is locally persisted.
type LoginRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	DeviceTrust  string `json:"deviceTrustId,omitempty"`
}

// LoginResponse classifies the attempt: token issued directly, or an MFA
// challenge with the enrolled method list.
type LoginResponse struct {
	RequiresMFA   bool     `json:"requiresMFA"`
	DeviceTrusted bool     `json:"deviceTrusted"`
	MFAMethods    []string `json:"mfaMethods,omitempty"`
	UserID        string   `json:"userId,omitempty"`
	Token         string   `json:"token,omitempty"`
	Message       string   `json:"message,omitempty"`
}

// RequestOTPRequest defines a public type used by authflow APIs.
type RequestOTPRequest struct {
	UserID string `json:"userId"`
	Method string `json:"method"`
}

// VerifyOTPRequest defines a public type used by authflow APIs.
type VerifyOTPRequest struct {
	UserID         string `json:"userId"`
	Method         string `json:"method"`
	OTP            string `json:"otp"`
	RememberDevice bool   `json:"rememberDevice"`
}

// VerifyOTPResponse defines a public type used by authflow APIs.
//
// DeviceTrust is present only when the server elected to issue a trust
// grant; a rememberDevice request does not guarantee one.
type VerifyOTPResponse struct {
	Token       string `json:"token"`
	DeviceTrust string `json:"deviceTrustId,omitempty"`
	Message     string `json:"message,omitempty"`
}

// EnableMFARequest defines a public type used by authflow APIs. Phone is
// required by the server for the SMS method only.
type EnableMFARequest struct {
	UserID string `json:"userId"`
	Phone  string `json:"phone,omitempty"`
}

// DisableMFARequest defines a public type used by authflow APIs.
type DisableMFARequest struct {
	UserID string `json:"userId"`
	Method string `json:"method"`
}

// TrustedDevice is the server-owned trust record projection. The client
// lists and revokes by reference and never constructs one.
type TrustedDevice struct {
	DeviceID   string `json:"deviceId"`
	Name       string `json:"name,omitempty"`
	UserAgent  string `json:"userAgent,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	LastUsedAt string `json:"lastUsedAt,omitempty"`
}

// RevokeAllRequest defines a public type used by authflow APIs.
type RevokeAllRequest struct {
	UserID string `json:"userId"`
}

// ForgotPasswordRequest defines a public type used by authflow APIs.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyResetCodeRequest defines a public type used by authflow APIs.
type VerifyResetCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyResetCodeResponse defines a public type used by authflow APIs.
type VerifyResetCodeResponse struct {
	ResetToken string `json:"token,omitempty"`
	Message    string `json:"message,omitempty"`
}

// ResetPasswordRequest defines a public type used by authflow APIs. The
// reset token is single-use per server contract.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StatusResponse is the generic acknowledgement body shared by the
// management endpoints.
type StatusResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// Gateway is the transport contract the flows program against. Every call
// is a single blocking round-trip; there is no internal retry or caching.
type Gateway interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	RequestOTP(ctx context.Context, req RequestOTPRequest) (*StatusResponse, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyOTPResponse, error)
	EnableMFA(ctx context.Context, method string, req EnableMFARequest) (*StatusResponse, error)
	MFAMethods(ctx context.Context, userID string) ([]string, error)
	DisableMFAMethod(ctx context.Context, req DisableMFARequest) (*StatusResponse, error)
	TrustedDevices(ctx context.Context, userID string) ([]TrustedDevice, error)
	RevokeAllDevices(ctx context.Context, req RevokeAllRequest) (*StatusResponse, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*StatusResponse, error)
	VerifyResetCode(ctx context.Context, req VerifyResetCodeRequest) (*VerifyResetCodeResponse, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (*StatusResponse, error)
}

// Error is a structured non-2xx server response. Message carries the
// server's human-readable text verbatim when the body provided one.
type Error struct {
	Endpoint   string
	StatusCode int
	Message    string
	RequestID  string
}

// Error describes the error operation and its observable behavior.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Endpoint, e.StatusCode)
}

package authflow

import "errors"

var (
	// ErrInvalidCredentials is an exported constant or variable used by the authentication flow client.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrOTPInvalid is an exported constant or variable used by the authentication flow client.
	ErrOTPInvalid = errors.New("invalid one-time code")
	// ErrTooManyAttempts is an exported constant or variable used by the authentication flow client.
	ErrTooManyAttempts = errors.New("too many verification attempts")
	// ErrChallengeDeliveryFailed is an exported constant or variable used by the authentication flow client.
	ErrChallengeDeliveryFailed = errors.New("challenge delivery failed")
	// ErrMFAOperationFailed is an exported constant or variable used by the authentication flow client.
	ErrMFAOperationFailed = errors.New("mfa operation failed")
	// ErrAccountNotFound is an exported constant or variable used by the authentication flow client.
	ErrAccountNotFound = errors.New("account not found")
	// ErrCodeExpired is an exported constant or variable used by the authentication flow client.
	ErrCodeExpired = errors.New("recovery code expired")
	// ErrCodeInvalid is an exported constant or variable used by the authentication flow client.
	ErrCodeInvalid = errors.New("recovery code invalid")
	// ErrRateLimited is an exported constant or variable used by the authentication flow client.
	ErrRateLimited = errors.New("rate limited")
	// ErrWeakPassword is an exported constant or variable used by the authentication flow client.
	ErrWeakPassword = errors.New("password rejected by policy")
	// ErrTokenExpired is an exported constant or variable used by the authentication flow client.
	ErrTokenExpired = errors.New("reset token expired")
	// ErrResetFailed is an exported constant or variable used by the authentication flow client.
	ErrResetFailed = errors.New("password reset failed")
	// ErrTransport is an exported constant or variable used by the authentication flow client.
	ErrTransport = errors.New("transport failure")

	// ErrFlowState is an exported constant or variable used by the authentication flow client.
	ErrFlowState = errors.New("operation not legal in current flow state")
	// ErrMethodNotOffered is an exported constant or variable used by the authentication flow client.
	ErrMethodNotOffered = errors.New("mfa method not offered by challenge")
	// ErrClientNotReady is an exported constant or variable used by the authentication flow client.
	ErrClientNotReady = errors.New("client not fully initialized")
	// ErrDeviceRevokeFailed is an exported constant or variable used by the authentication flow client.
	ErrDeviceRevokeFailed = errors.New("device revocation failed")
	// ErrRegistrationFailed is an exported constant or variable used by the authentication flow client.
	ErrRegistrationFailed = errors.New("registration failed")
)

package authflow

import "github.com/MrEthical07/authflow/gateway"

// MFAMethod is a second-factor verification channel. The set is closed;
// servers list enrolled methods per user and a user may have zero or many.
type MFAMethod string

const (
	// MFAEmail is an exported constant or variable used by the authentication flow client.
	MFAEmail MFAMethod = "email"
	// MFASMS is an exported constant or variable used by the authentication flow client.
	MFASMS MFAMethod = "sms"
	// MFAApp is an exported constant or variable used by the authentication flow client.
	MFAApp MFAMethod = "app"
)

// Valid reports whether m is one of the closed method set.
func (m MFAMethod) Valid() bool {
	switch m {
	case MFAEmail, MFASMS, MFAApp:
		return true
	default:
		return false
	}
}

// Credentials is the transient username/password pair for one login attempt.
// It is never persisted; only server-issued tokens reach the store.
type Credentials struct {
	Username string
	Password string
}

// LoginOutcome is returned by [LoginFlow.Submit]. Exactly one of the two
// shapes occurs: Authenticated true with the session token already stored,
// or Authenticated false with the enrolled MFA method list for the
// challenge step.
type LoginOutcome struct {
	Authenticated bool
	DeviceTrusted bool
	UserID        string
	Methods       []MFAMethod
	Message       string
}

// RegisterInput carries the profile fields for [Client.Register].
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    string
}

// RegisterResult defines a public type used by authflow APIs.
type RegisterResult struct {
	UserID  string
	Message string
}

// TrustedDevice is the server-owned trust record projection listed by
// [Client.TrustedDevices].
type TrustedDevice = gateway.TrustedDevice

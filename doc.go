// Package authflow is the client-side controller for an authenticated
// session with optional multi-factor verification and device-trust
// tracking: the login handshake, MFA method management, trusted-device
// revocation, and the password-recovery sequence.
//
// The package is the public surface. It exposes [Client], [Builder],
// [Config], the flow state machines ([LoginFlow], [PasswordResetFlow]) and
// value types; transport lives in the gateway package and credential
// persistence in the store package.
//
// # Architecture boundaries
//
// authflow decides WHAT each server response means — state transitions,
// which of the two persisted slots to write, and how a failure classifies
// into the error taxonomy. It never owns transport mechanics (retries,
// timeouts, TLS belong to the injected gateway) and never judges token
// validity (a 401 on a later call is the only expiry signal, propagated,
// not swallowed).
//
// # What this package must NOT do
//
//   - Generate tokens or device-trust identifiers. Both are opaque
//     server-issued strings, persisted verbatim or cleared.
//   - Retry or back off. The caller decides on retry for [ErrTransport];
//     everything else is terminal for the call.
//   - Couple the two persisted slots. Logout clears the session only;
//     revoke-all and password reset clear the device trust only.
//
// # Concurrency contract
//
// A Client is safe for concurrent use after [Builder.Build]. Flow instances
// are not: at most one in-flight operation per flow instance, enforced by
// the embedding UI, not by locks here.
package authflow

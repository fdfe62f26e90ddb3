// Package gateway is the transport boundary of the authflow client: a typed
// request/response surface over the backend's /auth endpoints.
//
// The [Gateway] interface is what the flows in the root package program
// against; [HTTP] is the production implementation. Failures from the server
// are reported as [*Error] carrying the HTTP status and the server's own
// message verbatim — classification into the client error taxonomy happens
// in the root package, never here.
//
// # What this package must NOT do
//
//   - Persist anything. Credential writes belong to the store package and
//     are driven by the flows.
//   - Retry, back off, or time out on its own beyond what the injected
//     http.Client is configured to do.
//   - Interpret response semantics (requiresMFA, deviceTrustId, ...) —
//     payloads pass through to the flows untouched.
package gateway

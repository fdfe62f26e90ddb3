// Package store provides the persisted credential slots used by the authflow
// client: the session token and the device-trust identifier.
//
// Exactly two named slots exist ([KindSession], [KindDeviceTrust]) and their
// lifecycles are independent by contract: clearing one never touches the
// other. Values are opaque strings issued by the server; this package never
// inspects, generates, or rewrites them.
//
// # Implementations
//
//   - [Memory] — process-local, mutex-guarded. Default for tests and
//     short-lived tools.
//   - [File] — a small JSON file in a profile directory. The durable
//     single-user choice, equivalent to browser localStorage.
//   - [Redis] — go-redis backed, namespaced keys, for clients that share a
//     credential profile across processes.
//
// # What this package must NOT do
//
//   - Decide token validity or expiry. Validity is a server concern; the only
//     expiry signal is a 401-class rejection on a later request.
//   - Mint device-trust identifiers. Only server-issued values are persisted.
//   - Couple the two slots. No operation here writes or clears both.
package store

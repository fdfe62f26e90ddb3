package store

import (
	"context"
	"errors"
)

// Kind names one of the two persisted credential slots.
type Kind uint8

const (
	// KindSession is the bearer session token slot. Present iff the user is
	// authenticated from the session guard's point of view.
	KindSession Kind = iota + 1
	// KindDeviceTrust is the server-issued device-trust identifier slot. It
	// survives logout and is cleared only by revoke-all-devices or a
	// successful password reset.
	KindDeviceTrust
)

// String describes the string operation and its observable behavior.
func (k Kind) String() string {
	switch k {
	case KindSession:
		return "session"
	case KindDeviceTrust:
		return "device_trust"
	default:
		return "unknown"
	}
}

var (
	// ErrUnknownKind is an exported constant or variable used by the credential store.
	ErrUnknownKind = errors.New("unknown credential kind")
	// ErrEmptyValue is an exported constant or variable used by the credential store.
	ErrEmptyValue = errors.New("empty credential value")
	// ErrBackend is an exported constant or variable used by the credential store.
	ErrBackend = errors.New("credential store backend unavailable")
)

// Store is the two-slot persisted credential contract. Get reports absence
// via the bool, not an error; Clear on an absent slot is a no-op.
//
// Implementations must keep the slots independent: no call mutates more than
// the slot it names.
type Store interface {
	Get(ctx context.Context, kind Kind) (string, bool, error)
	Set(ctx context.Context, kind Kind, value string) error
	Clear(ctx context.Context, kind Kind) error
}

func validKind(kind Kind) bool {
	return kind == KindSession || kind == KindDeviceTrust
}

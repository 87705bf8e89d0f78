// Package apperr defines the error taxonomy shared across repositories,
// services and handlers. Higher layers classify failures with errors.Is
// against these sentinels instead of matching driver error strings.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrIntegrity marks a constraint or invariant violation. Never retried
	// automatically, surfaced to the caller.
	ErrIntegrity = errors.New("integrity violation")

	// ErrStorage marks an I/O or corruption fault in the local store. Fatal
	// for the current operation, propagated unchanged.
	ErrStorage = errors.New("storage failure")

	// ErrNetwork marks a network-level failure (no HTTP response, including
	// timeouts). It only triggers the auth fallback or a sync retry, it is
	// never user-fatal.
	ErrNetwork = errors.New("network failure")

	// ErrNotFound is the auth subtype for an unknown local user, and the
	// generic missing-record error elsewhere.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is terminal, no retry and no fallback.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden marks an operation the session's role does not allow.
	ErrForbidden = errors.New("forbidden")

	// ErrSyncConflict marks a remote rejection of a queued entry. The entry
	// is retained and needs manual or policy-driven resolution.
	ErrSyncConflict = errors.New("sync conflict")

	// ErrValidation marks input rejected at the boundary before reaching
	// the store.
	ErrValidation = errors.New("validation failure")
)

func Integrity(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIntegrity, fmt.Sprintf(format, args...))
}

func Storage(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

func Network(err error) error {
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func SyncConflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSyncConflict, fmt.Sprintf(format, args...))
}

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

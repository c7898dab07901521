package interfaces

import "errors"

// Errors adapters return to signal contract-level outcomes. Use cases match
// them with errors.Is.
var (
	// ErrVersionConflict is returned by conditional writes when the stored
	// entity no longer matches the expected version or status.
	ErrVersionConflict = errors.New("version conflict")
	// ErrGatewayUnavailable wraps transient gateway failures. Only these are
	// retried.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrLockTimeout        = errors.New("lock acquisition timed out")
)

// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Lifecycle errors: an operation was invoked on a timesheet whose state
	// does not allow it.
	ErrInvalidState = errors.New("invalid state")

	// Parsing errors.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// Credential errors.
	ErrNoToken = errors.New("no API token configured")
)

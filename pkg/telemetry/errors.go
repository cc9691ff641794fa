package telemetry

import (
	"errors"
	"fmt"
)

var (
	// ErrAdminNotConfigured is returned by Authorize when no admin token
	// was configured for this deployment. Deliberately distinct from
	// ErrUnauthorized: a deployment that never opted in to stats must
	// not be probeable.
	ErrAdminNotConfigured = errors.New("admin token not configured")

	// ErrUnauthorized is returned by Authorize when the supplied token
	// does not match the configured one.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStoreDisabled is returned by store operations when no Redis URL
	// was configured at startup. Terminal for the process lifetime.
	ErrStoreDisabled = errors.New("redis not configured")
)

// StoreUnavailableError indicates the store is not in a connected state.
// LastError carries the most recent transport error, if any.
type StoreUnavailableError struct {
	LastError string
}

func (e *StoreUnavailableError) Error() string {
	if e.LastError == "" {
		return "redis unavailable"
	}
	return fmt.Sprintf("redis unavailable: %s", e.LastError)
}

// StatsQueryFailedError indicates a transport error during aggregation.
// The whole query fails rather than returning partial results.
type StatsQueryFailedError struct {
	Err error
}

func (e *StatsQueryFailedError) Error() string {
	return fmt.Sprintf("stats query failed: %v", e.Err)
}

func (e *StatsQueryFailedError) Unwrap() error {
	return e.Err
}

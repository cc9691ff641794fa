package telemetry

import "crypto/subtle"

// Authorize checks a supplied admin token against the configured one.
// No configured token means the deployment never opted in to stats:
// every request fails with ErrAdminNotConfigured regardless of what
// was supplied. Otherwise any mismatch, including an absent token,
// fails with ErrUnauthorized.
func Authorize(configured, supplied string) error {
	if configured == "" {
		return ErrAdminNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(configured), []byte(supplied)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

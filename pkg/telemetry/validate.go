package telemetry

import "regexp"

var (
	eventNameRe = regexp.MustCompile(`^[A-Za-z0-9_:-]{1,64}$`)
	sessionIDRe = regexp.MustCompile(`^[A-Za-z0-9-]{6,80}$`)
)

// ValidEventName reports whether s is an acceptable event name:
// 1-64 characters from [A-Za-z0-9_:-].
func ValidEventName(s string) bool {
	return eventNameRe.MatchString(s)
}

// ValidSessionID reports whether s is an acceptable session identifier:
// 6-80 characters from [A-Za-z0-9-]. An invalid session id is treated
// by callers as "no session", never as an error.
func ValidSessionID(s string) bool {
	return sessionIDRe.MatchString(s)
}

package telemetry

import (
	"errors"
	"testing"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		supplied   string
		want       error
	}{
		{"not configured, no token", "", "", ErrAdminNotConfigured},
		{"not configured, token supplied", "", "secret", ErrAdminNotConfigured},
		{"configured, correct token", "secret", "secret", nil},
		{"configured, wrong token", "secret", "wrong", ErrUnauthorized},
		{"configured, empty token", "secret", "", ErrUnauthorized},
		{"configured, token with prefix", "secret", "secret ", ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.configured, tt.supplied)
			if !errors.Is(err, tt.want) {
				t.Errorf("Authorize(%q, %q) = %v, want %v", tt.configured, tt.supplied, err, tt.want)
			}
		})
	}
}

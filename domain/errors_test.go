package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestTokenErrorsWrapInvalid(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{name: "ErrTokenExpired", err: ErrTokenExpired, expectedMsg: "invalid token: token has expired"},
		{name: "ErrTokenMalformed", err: ErrTokenMalformed, expectedMsg: "invalid token: malformed token"},
		{name: "ErrTokenPurpose", err: ErrTokenPurpose, expectedMsg: "invalid token: unexpected token purpose"},
		{name: "ErrTokenRevoked", err: ErrTokenRevoked, expectedMsg: "invalid token: token has been revoked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected error message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
			if !errors.Is(tt.err, ErrTokenInvalid) {
				t.Errorf("%v should wrap ErrTokenInvalid", tt.err)
			}
		})
	}

	if errors.Is(ErrTokenExpired, ErrTokenPurpose) {
		t.Error("distinct token errors must not match each other")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{"nil", nil, KindInternal},
		{"unknown", errors.New("boom"), KindInternal},
		{"invalid username", ErrInvalidUsername, KindInvalidInput},
		{"invalid role", ErrInvalidRole, KindInvalidInput},
		{"invalid credentials", ErrInvalidCredentials, KindUnauthenticated},
		{"unauthorized", ErrUnauthorized, KindUnauthenticated},
		{"expired token", ErrTokenExpired, KindUnauthenticated},
		{"purpose mismatch", ErrTokenPurpose, KindUnauthenticated},
		{"forbidden", ErrForbidden, KindForbidden},
		{"user not found", ErrUserNotFound, KindNotFound},
		{"contact not found", ErrContactNotFound, KindNotFound},
		{"duplicate user", ErrUserAlreadyExists, KindConflict},
		{"duplicate contact", ErrContactConflict, KindConflict},
		{"wrapped conflict", fmt.Errorf("failed to create user: %w", ErrUserAlreadyExists), KindConflict},
		{"wrapped not found", fmt.Errorf("lookup: %w", ErrContactNotFound), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.expected {
				t.Errorf("KindOf(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestErrorsHaveMessages(t *testing.T) {
	allErrors := []error{
		ErrInvalidUsername, ErrInvalidRole, ErrInvalidInput,
		ErrUserNotFound, ErrInvalidCredentials, ErrUserAlreadyExists,
		ErrTokenInvalid, ErrTokenExpired, ErrTokenMalformed, ErrTokenPurpose, ErrTokenRevoked,
		ErrUnauthorized, ErrForbidden,
		ErrContactNotFound, ErrContactConflict,
	}
	seen := make(map[string]bool)
	for _, err := range allErrors {
		if err.Error() == "" {
			t.Errorf("error %#v has an empty message", err)
		}
		if seen[err.Error()] {
			t.Errorf("duplicate error message %q", err.Error())
		}
		seen[err.Error()] = true
	}
}

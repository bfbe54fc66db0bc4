package domain

import (
	"errors"
	"fmt"
)

// Input errors
var (
	ErrInvalidUsername = errors.New("username must be a valid email address")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidInput    = errors.New("invalid input")
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// Token errors. Every token failure wraps ErrTokenInvalid.
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = fmt.Errorf("%w: token has expired", ErrTokenInvalid)
	ErrTokenMalformed = fmt.Errorf("%w: malformed token", ErrTokenInvalid)
	ErrTokenPurpose   = fmt.Errorf("%w: unexpected token purpose", ErrTokenInvalid)
	ErrTokenRevoked   = fmt.Errorf("%w: token has been revoked", ErrTokenInvalid)
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("could not validate credentials")
	ErrForbidden    = errors.New("user is not allowed to do this action")
)

// Contact errors
var (
	ErrContactNotFound = errors.New("contact not found")
	ErrContactConflict = errors.New("contact with this email or phone already exists")
)

// ErrorKind classifies errors for the transport layer
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalidInput
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

// KindOf maps an error to its kind by walking the wrap chain
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrInvalidUsername), errors.Is(err, ErrInvalidRole), errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenInvalid):
		return KindUnauthenticated
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrContactNotFound):
		return KindNotFound
	case errors.Is(err, ErrUserAlreadyExists), errors.Is(err, ErrContactConflict):
		return KindConflict
	}
	return KindInternal
}

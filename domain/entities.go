package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Role is the closed set of account roles
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole validates a caller-supplied role. Empty input yields RoleUser.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", ErrInvalidRole
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

var usernamePattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateUsername checks that a username is email-shaped
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

// ValidatePassword rejects passwords that cannot be hashed
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
	}
	if len([]byte(password)) > MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, MaxPasswordBytes)
	}
	return nil
}

// User represents an account holder
type User struct {
	ID           uint
	Username     string
	PasswordHash string
	Role         Role
	IsVerified   bool
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user holds any of the given roles
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// ContactFields holds every editable contact attribute
type ContactFields struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Birthday  time.Time
	ExtraData *string
}

// Contact is an entry in a user's address book
type Contact struct {
	ID     uint
	UserID uint
	ContactFields
}

// ContactFilter selects contacts by case-insensitive substring. Empty fields are ignored.
type ContactFilter struct {
	FirstName string
	LastName  string
	Email     string
}

// IsEmpty reports whether no criterion is set
func (f ContactFilter) IsEmpty() bool {
	return f.FirstName == "" && f.LastName == "" && f.Email == ""
}

// TokenPurpose tags a token with the single operation that may consume it
type TokenPurpose string

const (
	PurposeAccess        TokenPurpose = "access"
	PurposeRefresh       TokenPurpose = "refresh"
	PurposeVerifyEmail   TokenPurpose = "verify_email"
	PurposeResetPassword TokenPurpose = "reset_password"
)

// TokenClaims is the decoded payload of a signed token
type TokenClaims struct {
	ID        string       `json:"jti"`
	Subject   string       `json:"sub"`
	Purpose   TokenPurpose `json:"type"`
	Role      Role         `json:"role,omitempty"`
	IssuedAt  time.Time    `json:"iat"`
	ExpiresAt time.Time    `json:"exp"`
}

// IssuedToken is a signed token together with its claims
type IssuedToken struct {
	Token  string
	Claims TokenClaims
}

// AuthResult represents a successful login or refresh
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

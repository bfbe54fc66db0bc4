package domain

import (
	"context"
	"io"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	MarkVerified(ctx context.Context, userID uint) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	UpdateAvatar(ctx context.Context, userID uint, avatarURL string) error
	// Delete removes the user and every contact it owns in one transaction
	Delete(ctx context.Context, userID uint) error
}

// ContactRepository defines owner-scoped contact data access operations
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	List(ctx context.Context, ownerID uint, offset, limit int) ([]Contact, error)
	FindByID(ctx context.Context, ownerID, id uint) (*Contact, error)
	Update(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, ownerID, id uint) (*Contact, error)
	Search(ctx context.Context, ownerID uint, filter ContactFilter) ([]Contact, error)
	ListAll(ctx context.Context, ownerID uint) ([]Contact, error)
}

// RevocationStore records revoked token ids until they would have expired anyway.
// Revoke reports whether this call recorded the revocation; exactly one of any
// number of concurrent calls for the same id gets true.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) (bool, error)
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*User, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	ResolveCurrentUser(ctx context.Context, bearerToken string) (*User, error)
	RequireRole(user *User, roles ...Role) (*User, error)
}

// UserService defines account lifecycle operations
type UserService interface {
	Register(ctx context.Context, username, password string, role Role) (*User, error)
	VerifyEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, username string) (string, error)
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	UpdateAvatar(ctx context.Context, user *User, image io.Reader) (string, error)
	GetProfile(ctx context.Context, userID uint) (*User, error)
	DeleteUser(ctx context.Context, actor *User, userID uint) error
	EnsureAdmin(ctx context.Context, username, password string) (*User, error)
}

// ContactService defines owner-scoped contact operations
type ContactService interface {
	Create(ctx context.Context, ownerID uint, fields ContactFields) (*Contact, error)
	List(ctx context.Context, ownerID uint, offset, limit int) ([]Contact, error)
	Get(ctx context.Context, ownerID, id uint) (*Contact, error)
	Update(ctx context.Context, ownerID, id uint, fields ContactFields) (*Contact, error)
	Delete(ctx context.Context, ownerID, id uint) (*Contact, error)
	Search(ctx context.Context, ownerID uint, filter ContactFilter) ([]Contact, error)
	UpcomingBirthdays(ctx context.Context, ownerID uint) ([]Contact, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	Issue(subject string, purpose TokenPurpose, role Role) (*IssuedToken, error)
	Validate(token string, expected TokenPurpose) (*TokenClaims, error)
	TTL(purpose TokenPurpose) time.Duration
}

// NotificationService defines notification operations
type NotificationService interface {
	SendEmail(to, subject, body string) error
}

// ImageHost stores image bytes under a key and returns a durable URL
type ImageHost interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// ImageProcessor normalises an uploaded image before it is stored
type ImageProcessor interface {
	Normalize(r io.Reader) (data []byte, contentType string, err error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role Role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/you/contactsvc/domain"
	"github.com/you/contactsvc/internal/metrics"
)

// UserOptions tunes account lifecycle behaviour
type UserOptions struct {
	// PublicBaseURL prefixes links sent by email
	PublicBaseURL string
	// AllowRoleOnRegister lets callers self-assign a role other than USER
	AllowRoleOnRegister bool
}

// UserServiceImpl implements domain.UserService
type UserServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	revocations domain.RevocationStore
	notifier    domain.NotificationService
	images      domain.ImageHost
	processor   domain.ImageProcessor
	audit       domain.AuditLogger
	opts        UserOptions
}

// UserDeps groups the collaborators of the user service
type UserDeps struct {
	Users       domain.UserRepository
	Passwords   domain.PasswordService
	Tokens      domain.TokenService
	Revocations domain.RevocationStore
	Notifier    domain.NotificationService
	Images      domain.ImageHost
	Processor   domain.ImageProcessor
	Audit       domain.AuditLogger
}

// NewUserService creates a new user service
func NewUserService(deps UserDeps, opts UserOptions) domain.UserService {
	opts.PublicBaseURL = strings.TrimRight(opts.PublicBaseURL, "/")
	return &UserServiceImpl{
		userRepo:    deps.Users,
		passwordSvc: deps.Passwords,
		tokenSvc:    deps.Tokens,
		revocations: deps.Revocations,
		notifier:    deps.Notifier,
		images:      deps.Images,
		processor:   deps.Processor,
		audit:       deps.Audit,
		opts:        opts,
	}
}

// Register implements domain.UserService
func (s *UserServiceImpl) Register(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if role != domain.RoleUser && !s.opts.AllowRoleOnRegister {
		return nil, fmt.Errorf("%w: role %s cannot be self-assigned", domain.ErrForbidden, role)
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.sendVerification(user)

	_ = s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).
		WithUsername(user.Username).
		WithMetadata("role", string(user.Role)))
	return user, nil
}

// sendVerification emails a verification link. Delivery failures do not undo registration.
func (s *UserServiceImpl) sendVerification(user *domain.User) {
	token, err := s.tokenSvc.Issue(user.Username, domain.PurposeVerifyEmail, "")
	if err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("failed to issue verification token")
		return
	}

	link := fmt.Sprintf("%s/verify-email/%s", s.opts.PublicBaseURL, token.Token)
	body := fmt.Sprintf("Hello %s,\n\nplease confirm your email address by opening:\n%s\n", user.Username, link)
	if err := s.notifier.SendEmail(user.Username, "Confirm your email", body); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("failed to send verification email")
	}
}

// VerifyEmail implements domain.UserService. Verifying twice is not an error.
func (s *UserServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.tokenSvc.Validate(token, domain.PurposeVerifyEmail)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return nil
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return err
	}

	_ = s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.EmailVerifiedEvent, user.ID).WithUsername(user.Username))
	return nil
}

// RequestPasswordReset implements domain.UserService
func (s *UserServiceImpl) RequestPasswordReset(ctx context.Context, username string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", err
	}

	token, err := s.tokenSvc.Issue(user.Username, domain.PurposeResetPassword, "")
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	body := fmt.Sprintf("Hello %s,\n\nuse this token to reset your password:\n%s\n\nIt expires in %s.\n",
		user.Username, token.Token, s.tokenSvc.TTL(domain.PurposeResetPassword))
	if err := s.notifier.SendEmail(user.Username, "Reset your password", body); err != nil {
		return "", fmt.Errorf("failed to send reset email: %w", err)
	}

	_ = s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PasswordResetRequest, user.ID).WithUsername(user.Username))
	return token.Token, nil
}

// ConfirmPasswordReset implements domain.UserService. A reset token works once.
func (s *UserServiceImpl) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	claims, err := s.tokenSvc.Validate(token, domain.PurposeResetPassword)
	if err != nil {
		return err
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return domain.ErrTokenRevoked
	}

	user, err := s.userRepo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return err
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// claim the token before writing so concurrent confirmations cannot both win
	claimed, err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt)
	if err != nil {
		return err
	}
	if !claimed {
		return domain.ErrTokenRevoked
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("password update failed after the reset token was used")
		return err
	}

	_ = s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PasswordResetEvent, user.ID).WithUsername(user.Username))
	return nil
}

// UpdateAvatar implements domain.UserService
func (s *UserServiceImpl) UpdateAvatar(ctx context.Context, user *domain.User, image io.Reader) (string, error) {
	if user == nil {
		return "", domain.ErrUnauthorized
	}

	data, contentType, err := s.processor.Normalize(image)
	if err != nil {
		metrics.ObserveAvatarUpload("rejected")
		return "", err
	}

	url, err := s.images.Upload(ctx, fmt.Sprintf("avatars/%d", user.ID), contentType, data)
	if err != nil {
		metrics.ObserveAvatarUpload("error")
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.userRepo.UpdateAvatar(ctx, user.ID, url); err != nil {
		return "", err
	}
	user.AvatarURL = url
	metrics.ObserveAvatarUpload("success")

	_ = s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.AvatarUpdatedEvent, user.ID).WithUsername(user.Username))
	return url, nil
}

// GetProfile implements domain.UserService
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// DeleteUser implements domain.UserService. The user's contacts go with it.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, actor *domain.User, userID uint) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if !actor.HasRole(domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	if actor.ID == userID {
		return fmt.Errorf("%w: administrators cannot delete their own account", domain.ErrInvalidInput)
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	_ = s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserDeletedEvent, userID).
		WithMetadata("deleted_by", actor.ID))
	return nil
}

// EnsureAdmin implements domain.UserService. An existing account keeps its password and role.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		if !existing.HasRole(domain.RoleAdmin) {
			log.WithField("username", username).Warn("bootstrap admin account exists without ADMIN role")
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}
	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         domain.RoleAdmin,
		IsVerified:   true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	_ = s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, admin.ID).
		WithUsername(admin.Username).
		WithMetadata("bootstrap", true))
	return admin, nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/you/contactsvc/domain"
	"github.com/you/contactsvc/internal/metrics"
)

// AuthOptions tunes the token lifecycle
type AuthOptions struct {
	// RotateRefreshTokens revokes a refresh token once it has been exchanged
	RotateRefreshTokens bool
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	revocations domain.RevocationStore
	audit       domain.AuditLogger
	opts        AuthOptions
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	revocations domain.RevocationStore,
	audit domain.AuditLogger,
	opts AuthOptions,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		revocations: revocations,
		audit:       audit,
		opts:        opts,
	}
}

// Authenticate implements domain.AuthService
func (s *AuthServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		metrics.ObserveLogin("failure")
		_ = s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).
			WithUsername(username).
			WithError(err))
		return nil, err
	}

	result, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	metrics.ObserveLogin("success")
	_ = s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithUsername(user.Username))
	return result, nil
}

// Refresh implements domain.AuthService
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.validateRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if s.opts.RotateRefreshTokens {
		claimed, err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt)
		if err != nil {
			return nil, err
		}
		if !claimed {
			// a concurrent refresh already exchanged this token
			return nil, domain.ErrTokenRevoked
		}
	}

	result, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	_ = s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.TokenRefreshEvent, user.ID).
		WithUsername(user.Username).
		WithMetadata("rotated", s.opts.RotateRefreshTokens))
	return result, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.validateRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}

	if _, err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		return err
	}

	_ = s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, 0).WithUsername(claims.Subject))
	return nil
}

// ResolveCurrentUser implements domain.AuthService
func (s *AuthServiceImpl) ResolveCurrentUser(ctx context.Context, bearerToken string) (*domain.User, error) {
	claims, err := s.tokenSvc.Validate(bearerToken, domain.PurposeAccess)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// RequireRole implements domain.AuthService
func (s *AuthServiceImpl) RequireRole(user *domain.User, roles ...domain.Role) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.HasRole(roles...) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (s *AuthServiceImpl) validateRefresh(ctx context.Context, refreshToken string) (*domain.TokenClaims, error) {
	claims, err := s.tokenSvc.Validate(refreshToken, domain.PurposeRefresh)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

func (s *AuthServiceImpl) issuePair(user *domain.User) (*domain.AuthResult, error) {
	access, err := s.tokenSvc.Issue(user.Username, domain.PurposeAccess, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.tokenSvc.Issue(user.Username, domain.PurposeRefresh, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		ExpiresIn:    int64(s.tokenSvc.TTL(domain.PurposeAccess).Seconds()),
	}, nil
}

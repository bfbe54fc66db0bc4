package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/you/contactsvc/domain"
)

// TokenTTLs holds the lifetime of each token purpose
type TokenTTLs struct {
	Access        time.Duration
	Refresh       time.Duration
	VerifyEmail   time.Duration
	ResetPassword time.Duration
}

// jwtClaims is the wire form of domain.TokenClaims
type jwtClaims struct {
	Purpose domain.TokenPurpose `json:"type"`
	Role    domain.Role         `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey []byte
	method    jwt.SigningMethod
	issuer    string
	ttls      TokenTTLs
	now       func() time.Time
}

// NewJWTService creates a new JWT service. algorithm must be one of HS256, HS384 or HS512.
func NewJWTService(secretKey, algorithm, issuer string, ttls TokenTTLs) (domain.TokenService, error) {
	return newJWTService(secretKey, algorithm, issuer, ttls, time.Now)
}

// NewJWTServiceWithClock is NewJWTService with an injected clock
func NewJWTServiceWithClock(secretKey, algorithm, issuer string, ttls TokenTTLs, now func() time.Time) (domain.TokenService, error) {
	return newJWTService(secretKey, algorithm, issuer, ttls, now)
}

func newJWTService(secretKey, algorithm, issuer string, ttls TokenTTLs, now func() time.Time) (*JWTServiceImpl, error) {
	if secretKey == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if algorithm == "" {
		algorithm = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		method:    method,
		issuer:    issuer,
		ttls:      ttls,
		now:       now,
	}, nil
}

// TTL implements domain.TokenService
func (j *JWTServiceImpl) TTL(purpose domain.TokenPurpose) time.Duration {
	switch purpose {
	case domain.PurposeAccess:
		return j.ttls.Access
	case domain.PurposeRefresh:
		return j.ttls.Refresh
	case domain.PurposeVerifyEmail:
		return j.ttls.VerifyEmail
	case domain.PurposeResetPassword:
		return j.ttls.ResetPassword
	}
	return 0
}

// Issue implements domain.TokenService
func (j *JWTServiceImpl) Issue(subject string, purpose domain.TokenPurpose, role domain.Role) (*domain.IssuedToken, error) {
	ttl := j.TTL(purpose)
	if ttl <= 0 {
		return nil, fmt.Errorf("no lifetime configured for token purpose %q", purpose)
	}

	// NumericDate has second precision; truncate so the returned claims match the wire form
	now := j.now().Truncate(time.Second)
	claims := jwtClaims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if purpose == domain.PurposeAccess || purpose == domain.PurposeRefresh {
		claims.Role = role
	}

	signed, err := jwt.NewWithClaims(j.method, claims).SignedString(j.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &domain.IssuedToken{
		Token: signed,
		Claims: domain.TokenClaims{
			ID:        claims.ID,
			Subject:   subject,
			Purpose:   purpose,
			Role:      claims.Role,
			IssuedAt:  now,
			ExpiresAt: now.Add(ttl),
		},
	}, nil
}

// Validate implements domain.TokenService
func (j *JWTServiceImpl) Validate(tokenString string, expected domain.TokenPurpose) (*domain.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		}
		return nil, domain.ErrTokenInvalid
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, domain.ErrTokenMalformed
	}
	if claims.Purpose != expected {
		return nil, domain.ErrTokenPurpose
	}

	result := &domain.TokenClaims{
		ID:      claims.ID,
		Subject: claims.Subject,
		Purpose: claims.Purpose,
		Role:    claims.Role,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}

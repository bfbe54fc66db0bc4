package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/you/contactsvc/domain"
)

var testTTLs = TokenTTLs{
	Access:        30 * time.Minute,
	Refresh:       7 * 24 * time.Hour,
	VerifyEmail:   24 * time.Hour,
	ResetPassword: time.Hour,
}

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func newTestJWT(t *testing.T, clock *fakeClock) domain.TokenService {
	t.Helper()
	svc, err := NewJWTServiceWithClock("test-secret", "HS256", "contactsvc", testTTLs, clock.Now)
	if err != nil {
		t.Fatalf("failed to create jwt service: %v", err)
	}
	return svc
}

func TestNewJWTService_Validation(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		algorithm string
		wantErr   bool
	}{
		{"default algorithm", "s", "", false},
		{"HS384", "s", "HS384", false},
		{"HS512", "s", "HS512", false},
		{"empty secret", "", "HS256", true},
		{"asymmetric algorithm", "s", "RS256", true},
		{"none algorithm", "s", "none", true},
		{"unknown algorithm", "s", "XX1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJWTService(tt.secret, tt.algorithm, "", testTTLs)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestJWT(t, clock)

	purposes := []domain.TokenPurpose{
		domain.PurposeAccess,
		domain.PurposeRefresh,
		domain.PurposeVerifyEmail,
		domain.PurposeResetPassword,
	}

	for _, purpose := range purposes {
		t.Run(string(purpose), func(t *testing.T) {
			issued, err := svc.Issue("a@example.com", purpose, domain.RoleAdmin)
			if err != nil {
				t.Fatalf("unexpected issue error: %v", err)
			}
			if strings.Count(issued.Token, ".") != 2 {
				t.Fatalf("expected compact JWS, got %q", issued.Token)
			}

			claims, err := svc.Validate(issued.Token, purpose)
			if err != nil {
				t.Fatalf("unexpected validate error: %v", err)
			}
			if claims.Subject != "a@example.com" {
				t.Errorf("expected subject a@example.com, got %s", claims.Subject)
			}
			if claims.Purpose != purpose {
				t.Errorf("expected purpose %s, got %s", purpose, claims.Purpose)
			}
			if claims.ID == "" || claims.ID != issued.Claims.ID {
				t.Errorf("jti mismatch: issued %q validated %q", issued.Claims.ID, claims.ID)
			}
			if !claims.ExpiresAt.Equal(clock.t.Add(svc.TTL(purpose))) {
				t.Errorf("expected exp %v, got %v", clock.t.Add(svc.TTL(purpose)), claims.ExpiresAt)
			}

			wantRole := domain.Role("")
			if purpose == domain.PurposeAccess || purpose == domain.PurposeRefresh {
				wantRole = domain.RoleAdmin
			}
			if claims.Role != wantRole {
				t.Errorf("expected role %q, got %q", wantRole, claims.Role)
			}
		})
	}
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := newTestJWT(t, &fakeClock{t: time.Now()})
	first, _ := svc.Issue("a@example.com", domain.PurposeAccess, domain.RoleUser)
	second, _ := svc.Issue("a@example.com", domain.PurposeAccess, domain.RoleUser)
	if first.Token == second.Token || first.Claims.ID == second.Claims.ID {
		t.Error("tokens issued in the same second must still differ")
	}
}

func TestJWTService_ExpiryIsExclusive(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	svc := newTestJWT(t, clock)

	issued, err := svc.Issue("a@example.com", domain.PurposeAccess, domain.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"at issue", start, nil},
		{"one second before expiry", start.Add(testTTLs.Access - time.Second), nil},
		{"exactly at expiry", start.Add(testTTLs.Access), domain.ErrTokenExpired},
		{"after expiry", start.Add(testTTLs.Access + time.Hour), domain.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.t = tt.at
			_, err := svc.Validate(issued.Token, domain.PurposeAccess)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("expected token to be valid, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestJWTService_Rejections(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestJWT(t, clock)
	access, _ := svc.Issue("a@example.com", domain.PurposeAccess, domain.RoleUser)

	other, _ := NewJWTService("other-secret", "HS256", "contactsvc", testTTLs)
	foreign, _ := other.Issue("a@example.com", domain.PurposeAccess, domain.RoleUser)

	hs512, _ := NewJWTService("test-secret", "HS512", "contactsvc", testTTLs)
	wrongAlg, _ := hs512.Issue("a@example.com", domain.PurposeAccess, domain.RoleUser)

	otherIssuer, _ := NewJWTService("test-secret", "HS256", "someone-else", testTTLs)
	wrongIss, _ := otherIssuer.Issue("a@example.com", domain.PurposeAccess, domain.RoleUser)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "a@example.com", "type": "access", "jti": "x", "iss": "contactsvc",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	noneToken, _ := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a@example.com", "type": "access", "jti": "x", "iss": "contactsvc",
	})
	noExpToken, _ := noExp.SignedString([]byte("test-secret"))

	tests := []struct {
		name     string
		token    string
		expected domain.TokenPurpose
		wantErr  error
	}{
		{"purpose mismatch refresh", access.Token, domain.PurposeRefresh, domain.ErrTokenPurpose},
		{"purpose mismatch reset", access.Token, domain.PurposeResetPassword, domain.ErrTokenPurpose},
		{"wrong secret", foreign.Token, domain.PurposeAccess, domain.ErrTokenInvalid},
		{"wrong algorithm", wrongAlg.Token, domain.PurposeAccess, domain.ErrTokenInvalid},
		{"wrong issuer", wrongIss.Token, domain.PurposeAccess, domain.ErrTokenInvalid},
		{"alg none", noneToken, domain.PurposeAccess, domain.ErrTokenInvalid},
		{"missing exp", noExpToken, domain.PurposeAccess, domain.ErrTokenInvalid},
		{"garbage", "not-a-token", domain.PurposeAccess, domain.ErrTokenMalformed},
		{"empty", "", domain.PurposeAccess, domain.ErrTokenMalformed},
		{"tampered payload", access.Token[:len(access.Token)-2] + "xx", domain.PurposeAccess, domain.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Validate(tt.token, tt.expected)
			if claims != nil {
				t.Errorf("expected nil claims, got %+v", claims)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, domain.ErrTokenInvalid) {
				t.Errorf("every token failure must wrap ErrTokenInvalid, got %v", err)
			}
		})
	}
}

func TestJWTService_IssueUnknownPurpose(t *testing.T) {
	svc := newTestJWT(t, &fakeClock{t: time.Now()})
	if _, err := svc.Issue("a@example.com", domain.TokenPurpose("bogus"), domain.RoleUser); err == nil {
		t.Error("expected error for a purpose without TTL")
	}
}

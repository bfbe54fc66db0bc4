package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.AccessTTL != 30*time.Minute {
		t.Errorf("expected 30m access TTL, got %v", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 7*24*time.Hour {
		t.Errorf("expected 7d refresh TTL, got %v", cfg.RefreshTTL)
	}
	if cfg.VerifyEmailTTL != 24*time.Hour || cfg.ResetPasswordTTL != time.Hour {
		t.Errorf("unexpected single-use TTLs: %v / %v", cfg.VerifyEmailTTL, cfg.ResetPasswordTTL)
	}
	if cfg.AvatarUploadPolicy != AvatarAdminOnly {
		t.Errorf("expected admin_only avatar policy, got %s", cfg.AvatarUploadPolicy)
	}
}

func TestLoadFrom_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
app:
  env: development
  port: 9090
jwt:
  secret: from-file
  algorithm: HS512
  access_ttl_minutes: 15
storage:
  bucket: pictures
`)
	t.Setenv("ACCESS_TOKEN_EXPIRES_IN_MINUTES", "5")
	t.Setenv("S3_BUCKET", "override")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port from file, got %s", cfg.Port)
	}
	if cfg.JWTSecret != "from-file" || cfg.JWTAlgorithm != "HS512" {
		t.Errorf("jwt settings not read from file: %s %s", cfg.JWTSecret, cfg.JWTAlgorithm)
	}
	if cfg.AccessTTL != 5*time.Minute {
		t.Errorf("env should override access TTL, got %v", cfg.AccessTTL)
	}
	if cfg.S3Bucket != "override" {
		t.Errorf("env should override bucket, got %s", cfg.S3Bucket)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "default secret outside development",
			env:     map[string]string{"APP_ENV": "production"},
			wantErr: "SECRET_KEY must be changed",
		},
		{
			name:    "unsupported algorithm",
			env:     map[string]string{"SECRET_KEY": "s", "JWT_ALGORITHM": "RS256"},
			wantErr: "unsupported JWT_ALGORITHM",
		},
		{
			name:    "non numeric ttl",
			env:     map[string]string{"SECRET_KEY": "s", "ACCESS_TOKEN_EXPIRES_IN_MINUTES": "soon"},
			wantErr: "invalid ACCESS_TOKEN_EXPIRES_IN_MINUTES",
		},
		{
			name:    "zero ttl",
			env:     map[string]string{"SECRET_KEY": "s", "ACCESS_TOKEN_EXPIRES_IN_MINUTES": "0"},
			wantErr: "must be positive",
		},
		{
			name:    "unknown avatar policy",
			env:     map[string]string{"SECRET_KEY": "s", "AVATAR_UPLOAD_POLICY": "anyone"},
			wantErr: "unsupported avatar upload policy",
		},
		{
			name:    "admin username without password",
			env:     map[string]string{"SECRET_KEY": "s", "ADMIN_USERNAME": "root@example.com"},
			wantErr: "must be set together",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yml"))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadFrom_BadYAML(t *testing.T) {
	path := writeConfig(t, "app: [unterminated")
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vtube-go/internal/config"
)

func loadTestConfig(t *testing.T) {
	t.Helper()

	content := `
app:
  name: vtube-test
  version: test
  mode: test
  port: 8000
jwt:
  access_secret: test-access-secret
  access_expire_mins: 15
  refresh_secret: test-refresh-secret
  refresh_expire_days: 7
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Fatalf("load config: %v", err)
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash should not equal plaintext")
	}
	if !VerifyPassword("secret123", hash) {
		t.Fatal("correct password should verify")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Fatal("wrong password should not verify")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	loadTestConfig(t)

	token, err := GenerateAccessToken(42, "alice")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	claims, err := ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.UserName != "alice" {
		t.Fatalf("expected user name alice, got %q", claims.UserName)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	loadTestConfig(t)

	token, err := GenerateRefreshToken(42)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	claims, err := ParseRefreshToken(token)
	if err != nil {
		t.Fatalf("parse refresh token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
}

func TestTokenSecretsAreSeparate(t *testing.T) {
	loadTestConfig(t)

	accessToken, err := GenerateAccessToken(1, "bob")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	refreshToken, err := GenerateRefreshToken(1)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	// 访问令牌不能当刷新令牌用，反之亦然
	if _, err := ParseRefreshToken(accessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token should not parse as refresh token, got %v", err)
	}
	if _, err := ParseAccessToken(refreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token should not parse as access token, got %v", err)
	}
}

func TestParseInvalidToken(t *testing.T) {
	loadTestConfig(t)

	cases := []string{"", "not-a-token", "a.b.c"}
	for _, token := range cases {
		if _, err := ParseAccessToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestClaimsCarryExpiry(t *testing.T) {
	loadTestConfig(t)

	token, err := GenerateAccessToken(7, "carol")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	claims, err := ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 || remaining > 15*time.Minute {
		t.Fatalf("expected expiry within 15 minutes, got %v", remaining)
	}
}

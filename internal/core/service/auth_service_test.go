package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecell-iiitr/gatepass/internal/core/domain"
)

func testCredentials() map[string]string {
	return map[string]string{
		"arav":  "password123",
		"priya": "ecell@iiitr",
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService(testCredentials(), "secret", 8*time.Hour)

	token, user, err := svc.Login(context.Background(), "arav", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Name != "arav" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["name"] != "arav" {
		t.Fatalf("expected name arav, got %v", claims["name"])
	}
}

func TestAuthService_Login_EveryConfiguredUser(t *testing.T) {
	creds := testCredentials()
	svc := NewAuthService(creds, "secret", 8*time.Hour)

	for username, password := range creds {
		if _, _, err := svc.Login(context.Background(), username, password); err != nil {
			t.Fatalf("login failed for %s: %v", username, err)
		}
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := NewAuthService(testCredentials(), "secret", 8*time.Hour)

	if _, _, err := svc.Login(context.Background(), "arav", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(testCredentials(), "secret", 8*time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost", "password123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_BcryptEntry(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hello123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	svc := NewAuthService(map[string]string{"dev": string(hash)}, "secret", 8*time.Hour)

	if _, _, err := svc.Login(context.Background(), "dev", "hello123"); err != nil {
		t.Fatalf("login failed against bcrypt entry: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dev", "hello124"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_TokenExpiry(t *testing.T) {
	svc := NewAuthService(testCredentials(), "secret", 8*time.Hour)

	issued := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, _, err := svc.Login(context.Background(), "arav", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return issued.Add(7 * time.Hour) })); err != nil {
		t.Fatalf("token should still be valid within 8h: %v", err)
	}

	if _, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return issued.Add(9 * time.Hour) })); err == nil {
		t.Fatalf("token should be rejected after 8h")
	}
}

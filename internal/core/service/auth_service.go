package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecell-iiitr/gatepass/internal/api/metrics"
	"github.com/ecell-iiitr/gatepass/internal/core/domain"
)

const defaultTokenTTL = 8 * time.Hour

// AuthService authenticates staff against a static credential table injected
// at startup and mints HS256 session tokens. There is no user store and no
// revocation; token expiry is the only termination mechanism.
type AuthService struct {
	credentials map[string]string
	jwtSecret   string
	tokenTTL    time.Duration
	now         func() time.Time
}

func NewAuthService(credentials map[string]string, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		credentials: credentials,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		now:         time.Now,
	}
}

// Login checks the username/password pair against the credential table and
// returns a signed token carrying the staff member's name.
func (s *AuthService) Login(_ context.Context, username, password string) (string, *domain.User, error) {
	secret, ok := s.credentials[username]
	if !ok || !matchSecret(secret, password) {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user := &domain.User{Name: username}
	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return token, user, nil
}

// matchSecret compares a configured credential entry with the presented
// password. Entries may be bcrypt hashes; plaintext entries are compared in
// constant time.
func matchSecret(stored, presented string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"name": user.Name,
		"exp":  s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

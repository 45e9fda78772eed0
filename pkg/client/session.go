package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession means no stored session exists; callers should route to login.
var ErrNoSession = errors.New("no stored session, log in first")

// Session is the persisted login state: the bearer token and the staff
// identity, the terminal equivalent of the SPA's local storage entries.
type Session struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// Valid reports whether the stored token has not yet expired. The signature
// is not (and cannot be) checked client-side; the server remains the
// authority and answers 403 for anything it rejects.
func (s *Session) Valid() bool {
	if s.AccessToken == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}

// DefaultSessionPath returns the session file location under the user config
// directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gatepass", "session.json"), nil
}

// Save writes the session to path, creating parent directories as needed.
// The file is user-only: it holds a bearer token.
func (s *Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadSession restores a previously saved session. A missing file is
// ErrNoSession.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ClearSession removes the stored session, if any.
func ClearSession(path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

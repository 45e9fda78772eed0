package ports

import (
	"context"

	"github.com/ecell-iiitr/gatepass/internal/core/domain"
)

// AuthService validates staff credentials and mints session tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

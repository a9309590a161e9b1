package ports

import (
	"context"

	"github.com/apnajourney/platform/internal/core/domain"
)

// RegisterInput creates a self-registered user account (kind=user, role=user).
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService implements registration and login for both account kinds.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	// Login authenticates by email and returns a signed JWT plus the account.
	// Banned accounts fail with domain.ErrAccountBanned.
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
}

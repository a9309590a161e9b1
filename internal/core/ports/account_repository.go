package ports

import (
	"context"

	"github.com/apnajourney/platform/internal/core/domain"
)

// ListAccountsFilter narrows account listings for the admin back-office.
type ListAccountsFilter struct {
	Kind   domain.AccountKind // optional
	Status domain.AccountStatus
	Role   domain.Role
	Page   Page
}

// AccountRepository persists accounts. Email uniqueness is enforced by the
// store (case-insensitive: emails are stored lowercase).
type AccountRepository interface {
	Create(ctx context.Context, acc *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context, filter ListAccountsFilter) ([]*domain.Account, int64, error)

	// UpdateRole writes role and the full derived permission set in one update.
	UpdateRole(ctx context.Context, id string, role domain.Role, perms []domain.Permission) error
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus) error
}

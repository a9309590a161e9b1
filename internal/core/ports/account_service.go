package ports

import (
	"context"

	"github.com/apnajourney/platform/internal/core/domain"
)

// AssignRoleInput changes an account's role. The permission set is always
// overwritten with the table lookup for the new role; no partial sets exist.
type AssignRoleInput struct {
	Actor     Actor
	AccountID string
	Role      domain.Role
}

// SetAccountStatusInput bans, reactivates, or holds a user account.
type SetAccountStatusInput struct {
	Actor     Actor
	AccountID string
	Status    domain.AccountStatus
}

// CreateAdminInput creates an admin-kind account (requires manage-admins).
type CreateAdminInput struct {
	Actor    Actor
	Name     string
	Email    string
	Password string
	Role     domain.Role // editor or super-admin
}

// ListAccountsInput lists accounts for the back-office (requires manage-users).
type ListAccountsInput struct {
	Actor  Actor
	Filter ListAccountsFilter
}

// AccountService is the admin back-office over accounts.
type AccountService interface {
	List(ctx context.Context, in ListAccountsInput) ([]*domain.Account, PageResult, error)
	AssignRole(ctx context.Context, in AssignRoleInput) (*domain.Account, error)
	SetStatus(ctx context.Context, in SetAccountStatusInput) (*domain.Account, error)
	CreateAdmin(ctx context.Context, in CreateAdminInput) (*domain.Account, error)
}

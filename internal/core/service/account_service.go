package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// AccountService is the admin back-office over accounts: role assignment,
// banning, and admin account creation.
type AccountService struct {
	repo   ports.AccountRepository
	logger zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, logger: logger}
}

// List lists accounts for the back-office (requires manage-users).
func (s *AccountService) List(ctx context.Context, in ports.ListAccountsInput) ([]*domain.Account, ports.PageResult, error) {
	if !in.Actor.Can(domain.PermManageUsers) {
		return nil, ports.PageResult{}, domain.ErrForbidden
	}
	filter := in.Filter
	filter.Page = filter.Page.Normalize()
	accs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	return accs, ports.NewPageResult(filter.Page, total), nil
}

// AssignRole changes an account's role and overwrites its permission set with
// the table lookup for the new role. Custom permission sets never survive.
func (s *AccountService) AssignRole(ctx context.Context, in ports.AssignRoleInput) (*domain.Account, error) {
	if !in.Actor.Can(domain.PermManageUsers) {
		return nil, domain.ErrForbidden
	}

	acc, err := s.repo.FindByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if acc.Kind == domain.KindAdmin && !in.Actor.Can(domain.PermManageAdmins) {
		return nil, domain.ErrForbidden
	}

	perms, err := domain.DerivePermissions(acc.Kind, in.Role)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, in.AccountID, in.Role, perms); err != nil {
		return nil, err
	}

	acc.Role = in.Role
	acc.Permissions = perms
	acc.UpdatedAt = time.Now().UTC()

	s.logger.Info().
		Str("account_id", in.AccountID).
		Str("role", string(in.Role)).
		Str("assigned_by", in.Actor.ID).
		Msg("role assigned")
	return acc, nil
}

// SetStatus bans, reactivates, or holds a user account (requires manage-users).
// Admin accounts cannot be banned through this path.
func (s *AccountService) SetStatus(ctx context.Context, in ports.SetAccountStatusInput) (*domain.Account, error) {
	if !in.Actor.Can(domain.PermManageUsers) {
		return nil, domain.ErrForbidden
	}
	switch in.Status {
	case domain.StatusActive, domain.StatusBanned, domain.StatusPending:
	default:
		return nil, fmt.Errorf("%w: unknown account status %q", domain.ErrValidation, in.Status)
	}

	acc, err := s.repo.FindByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if acc.Kind == domain.KindAdmin {
		return nil, fmt.Errorf("%w: admin accounts cannot be suspended here", domain.ErrForbidden)
	}

	if err := s.repo.UpdateStatus(ctx, in.AccountID, in.Status); err != nil {
		return nil, err
	}
	acc.Status = in.Status
	acc.UpdatedAt = time.Now().UTC()

	s.logger.Info().Str("account_id", in.AccountID).Str("status", string(in.Status)).Str("set_by", in.Actor.ID).Msg("account status changed")
	return acc, nil
}

// CreateAdmin creates an admin-kind account (requires manage-admins).
func (s *AccountService) CreateAdmin(ctx context.Context, in ports.CreateAdminInput) (*domain.Account, error) {
	if !in.Actor.Can(domain.PermManageAdmins) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.Email == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: name, email and a password of at least 8 characters are required", domain.ErrValidation)
	}

	perms, err := domain.DerivePermissions(domain.KindAdmin, in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	acc := &domain.Account{
		Name:         in.Name,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Kind:         domain.KindAdmin,
		Role:         in.Role,
		Permissions:  perms,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, acc)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("account_id", created.ID).Str("role", string(in.Role)).Str("created_by", in.Actor.ID).Msg("admin account created")
	return created, nil
}

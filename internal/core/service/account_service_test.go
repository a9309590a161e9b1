package service

import (
	"context"
	"errors"
	"testing"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

func superAdminActor(id string) ports.Actor {
	perms, _ := domain.DerivePermissions(domain.KindAdmin, domain.RoleSuperAdmin)
	return ports.Actor{ID: id, Kind: domain.KindAdmin, Role: domain.RoleSuperAdmin, Permissions: perms}
}

// ---------------------------------------------------------------------------
// AssignRole tests
// ---------------------------------------------------------------------------

func TestAccountService_AssignRole_OverwritesPermissions(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, discardLogger)
	acc := seedAccount(repo, "u@example.com", "password123", domain.KindUser, domain.RoleUser, domain.StatusActive)

	updated, err := svc.AssignRole(context.Background(), ports.AssignRoleInput{
		Actor:     superAdminActor("sa1"),
		AccountID: acc.ID,
		Role:      domain.RoleContentCreator,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Role != domain.RoleContentCreator {
		t.Errorf("expected role %q, got %q", domain.RoleContentCreator, updated.Role)
	}

	want, _ := domain.DerivePermissions(domain.KindUser, domain.RoleContentCreator)
	if len(repo.lastPerms) != len(want) {
		t.Fatalf("expected %d permissions written, got %d", len(want), len(repo.lastPerms))
	}
	for i, p := range want {
		if repo.lastPerms[i] != p {
			t.Errorf("permission %d: expected %q, got %q", i, p, repo.lastPerms[i])
		}
	}
}

func TestAccountService_AssignRole_DowngradeShrinksPermissions(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, discardLogger)
	acc := seedAccount(repo, "c@example.com", "password123", domain.KindUser, domain.RoleCollaborator, domain.StatusActive)

	updated, err := svc.AssignRole(context.Background(), ports.AssignRoleInput{
		Actor:     superAdminActor("sa1"),
		AccountID: acc.ID,
		Role:      domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Permissions) != 0 {
		t.Errorf("downgrade to base role must clear permissions, got %v", updated.Permissions)
	}
}

func TestAccountService_AssignRole_WrongKindRole(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, discardLogger)
	acc := seedAccount(repo, "u@example.com", "password123", domain.KindUser, domain.RoleUser, domain.StatusActive)

	// editor is an admin-kind role; invalid for a user-kind account.
	_, err := svc.AssignRole(context.Background(), ports.AssignRoleInput{
		Actor:     superAdminActor("sa1"),
		AccountID: acc.ID,
		Role:      domain.RoleEditor,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAccountService_AssignRole_AdminTargetNeedsManageAdmins(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, discardLogger)
	acc := seedAccount(repo, "ed@example.com", "password123", domain.KindAdmin, domain.RoleEditor, domain.StatusActive)

	// manage-users without manage-admins is not enough for an admin target.
	actor := ports.Actor{
		ID:          "x1",
		Kind:        domain.KindAdmin,
		Role:        domain.RoleEditor,
		Permissions: []domain.Permission{domain.PermManageUsers},
	}
	_, err := svc.AssignRole(context.Background(), ports.AssignRoleInput{
		Actor:     actor,
		AccountID: acc.ID,
		Role:      domain.RoleSuperAdmin,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAccountService_AssignRole_WithoutPermission(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, discardLogger)
	acc := seedAccount(repo, "u@example.com", "password123", domain.KindUser, domain.RoleUser, domain.StatusActive)

	_, err := svc.AssignRole(context.Background(), ports.AssignRoleInput{
		Actor:     editorActor("ed1"),
		AccountID: acc.ID,
		Role:      domain.RoleContentCreator,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// SetStatus tests
// ---------------------------------------------------------------------------

func TestAccountService_SetStatus_Ban(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, discardLogger)
	acc := seedAccount(repo, "u@example.com", "password123", domain.KindUser, domain.RoleUser, domain.StatusActive)

	updated, err := svc.SetStatus(context.Background(), ports.SetAccountStatusInput{
		Actor:     superAdminActor("sa1"),
		AccountID: acc.ID,
		Status:    domain.StatusBanned,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusBanned {
		t.Errorf("expected status %q, got %q", domain.StatusBanned, updated.Status)
	}
	if repo.byID[acc.ID].Status != domain.StatusBanned {
		t.Error("ban not persisted")
	}
}

func TestAccountService_SetStatus_AdminAccountRefused(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, discardLogger)
	acc := seedAccount(repo, "ed@example.com", "password123", domain.KindAdmin, domain.RoleEditor, domain.StatusActive)

	_, err := svc.SetStatus(context.Background(), ports.SetAccountStatusInput{
		Actor:     superAdminActor("sa1"),
		AccountID: acc.ID,
		Status:    domain.StatusBanned,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAccountService_SetStatus_UnknownStatus(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, discardLogger)
	acc := seedAccount(repo, "u@example.com", "password123", domain.KindUser, domain.RoleUser, domain.StatusActive)

	_, err := svc.SetStatus(context.Background(), ports.SetAccountStatusInput{
		Actor:     superAdminActor("sa1"),
		AccountID: acc.ID,
		Status:    "frozen",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// CreateAdmin tests
// ---------------------------------------------------------------------------

func TestAccountService_CreateAdmin_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, discardLogger)

	acc, err := svc.CreateAdmin(context.Background(), ports.CreateAdminInput{
		Actor:    superAdminActor("sa1"),
		Name:     "New Editor",
		Email:    "New.Editor@Example.com",
		Password: "password123",
		Role:     domain.RoleEditor,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.Kind != domain.KindAdmin || acc.Role != domain.RoleEditor {
		t.Errorf("expected admin/editor, got %s/%s", acc.Kind, acc.Role)
	}
	if acc.Email != "new.editor@example.com" {
		t.Errorf("email must be stored lowercase, got %q", acc.Email)
	}
	if !acc.HasPermission(domain.PermManageJobs) || acc.HasPermission(domain.PermManageAdmins) {
		t.Errorf("editor permission set wrong: %v", acc.Permissions)
	}
}

func TestAccountService_CreateAdmin_EditorCannot(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, discardLogger)

	_, err := svc.CreateAdmin(context.Background(), ports.CreateAdminInput{
		Actor:    editorActor("ed1"),
		Name:     "New Editor",
		Email:    "x@example.com",
		Password: "password123",
		Role:     domain.RoleEditor,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAccountService_List_RequiresManageUsers(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, discardLogger)

	_, _, err := svc.List(context.Background(), ports.ListAccountsInput{Actor: editorActor("ed1")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if _, _, err := svc.List(context.Background(), ports.ListAccountsInput{Actor: superAdminActor("sa1")}); err != nil {
		t.Errorf("super-admin listing failed: %v", err)
	}
}

package domain

import (
	"fmt"
	"time"
)

// AccountKind separates the two actor populations. Users self-register and own
// content; admins are created by a super-admin and run the back-office.
type AccountKind string

const (
	KindUser  AccountKind = "user"
	KindAdmin AccountKind = "admin"
)

// Role is a named role within an account kind. The role alone determines the
// permission set (see DerivePermissions).
type Role string

const (
	// User-kind roles.
	RoleUser           Role = "user"
	RoleContentCreator Role = "content-creator"
	RoleCollaborator   Role = "collaborator"
	RoleUserAdmin      Role = "admin"

	// Admin-kind roles.
	RoleEditor     Role = "editor"
	RoleSuperAdmin Role = "super-admin"
)

// Permission is a capability token gating a single class of operations.
type Permission string

const (
	PermCreateJobs         Permission = "create-jobs"
	PermCreateNews         Permission = "create-news"
	PermEditOwnContent     Permission = "edit-own-content"
	PermDeleteOwnContent   Permission = "delete-own-content"
	PermViewAnalytics      Permission = "view-analytics"
	PermManageApplications Permission = "manage-applications"
	PermManageJobs         Permission = "manage-jobs"
	PermManageNews         Permission = "manage-news"
	PermManageUsers        Permission = "manage-users"
	PermManageSettings     Permission = "manage-settings"
	PermManageAdmins       Permission = "manage-admins"
)

// AccountStatus gates login ability. Admin accounts are always active.
type AccountStatus string

const (
	StatusActive  AccountStatus = "active"
	StatusBanned  AccountStatus = "banned"
	StatusPending AccountStatus = "pending"
)

// Account models any authenticated actor. Permissions are derived from
// (Kind, Role) and overwritten wholesale on every role change; they are never
// edited independently.
type Account struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Kind         AccountKind   `json:"kind"`
	Role         Role          `json:"role"`
	Permissions  []Permission  `json:"permissions"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// HasPermission reports whether the account carries the given permission.
func (a *Account) HasPermission(p Permission) bool {
	for _, have := range a.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

var userRolePermissions = map[Role][]Permission{
	RoleUser:           {},
	RoleContentCreator: {PermCreateJobs, PermCreateNews, PermEditOwnContent, PermDeleteOwnContent},
	RoleCollaborator:   {PermCreateJobs, PermCreateNews, PermEditOwnContent, PermDeleteOwnContent, PermViewAnalytics},
	RoleUserAdmin:      {PermCreateJobs, PermCreateNews, PermEditOwnContent, PermDeleteOwnContent, PermViewAnalytics, PermManageApplications},
}

var adminRolePermissions = map[Role][]Permission{
	RoleEditor:     {PermManageJobs, PermManageNews, PermManageApplications, PermViewAnalytics},
	RoleSuperAdmin: {PermManageJobs, PermManageNews, PermManageApplications, PermViewAnalytics, PermManageUsers, PermManageSettings, PermManageAdmins},
}

// DerivePermissions resolves the fixed permission set for a (kind, role) pair.
// The returned slice is a fresh copy; callers may store it as-is. A role
// outside the kind's enum is a validation error.
func DerivePermissions(kind AccountKind, role Role) ([]Permission, error) {
	var table map[Role][]Permission
	switch kind {
	case KindUser:
		table = userRolePermissions
	case KindAdmin:
		table = adminRolePermissions
	default:
		return nil, fmt.Errorf("%w: unknown account kind %q", ErrValidation, kind)
	}

	perms, ok := table[role]
	if !ok {
		return nil, fmt.Errorf("%w: role %q is not valid for kind %q", ErrValidation, role, kind)
	}

	out := make([]Permission, len(perms))
	copy(out, perms)
	return out, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	byID    map[string]*domain.Account
	byEmail map[string]*domain.Account
	nextID  int

	lastRole  domain.Role
	lastPerms []domain.Permission
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{
		byID:    make(map[string]*domain.Account),
		byEmail: make(map[string]*domain.Account),
	}
}

func (r *stubAccountRepo) Create(_ context.Context, acc *domain.Account) (*domain.Account, error) {
	if _, ok := r.byEmail[acc.Email]; ok {
		return nil, domain.ErrDuplicateEmail
	}
	r.nextID++
	clone := *acc
	clone.ID = fmt.Sprintf("acc_%d", r.nextID)
	r.byID[clone.ID] = &clone
	r.byEmail[clone.Email] = &clone
	out := clone
	return &out, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	acc, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *acc
	return &clone, nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	acc, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *acc
	return &clone, nil
}

func (r *stubAccountRepo) List(_ context.Context, f ports.ListAccountsFilter) ([]*domain.Account, int64, error) {
	var matched []*domain.Account
	for _, acc := range r.byID {
		if f.Kind != "" && acc.Kind != f.Kind {
			continue
		}
		if f.Status != "" && acc.Status != f.Status {
			continue
		}
		if f.Role != "" && acc.Role != f.Role {
			continue
		}
		clone := *acc
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubAccountRepo) UpdateRole(_ context.Context, id string, role domain.Role, perms []domain.Permission) error {
	acc, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Role = role
	acc.Permissions = perms
	r.lastRole = role
	r.lastPerms = perms
	return nil
}

func (r *stubAccountRepo) UpdateStatus(_ context.Context, id string, status domain.AccountStatus) error {
	acc, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Status = status
	return nil
}

// seedAccount stores an account with a real bcrypt hash so login paths work.
func seedAccount(repo *stubAccountRepo, email, password string, kind domain.AccountKind, role domain.Role, status domain.AccountStatus) *domain.Account {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	perms, _ := domain.DerivePermissions(kind, role)
	repo.nextID++
	acc := &domain.Account{
		ID:           fmt.Sprintf("acc_%d", repo.nextID),
		Name:         "Seeded",
		Email:        email,
		PasswordHash: string(hash),
		Kind:         kind,
		Role:         role,
		Permissions:  perms,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	repo.byID[acc.ID] = acc
	repo.byEmail[acc.Email] = acc
	return acc
}

// ---------------------------------------------------------------------------
// Register tests
// ---------------------------------------------------------------------------

func TestAuthService_Register_Defaults(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	acc, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Ravi Kumar",
		Email:    "Ravi.Kumar@Example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.Kind != domain.KindUser || acc.Role != domain.RoleUser {
		t.Errorf("self-registration must yield kind=user role=user, got %s/%s", acc.Kind, acc.Role)
	}
	if acc.Status != domain.StatusActive {
		t.Errorf("expected active status, got %q", acc.Status)
	}
	if acc.Email != "ravi.kumar@example.com" {
		t.Errorf("email must be stored lowercase, got %q", acc.Email)
	}
	if len(acc.Permissions) != 0 {
		t.Errorf("base user role carries no permissions, got %v", acc.Permissions)
	}
	if acc.PasswordHash == "password123" {
		t.Error("password must not be stored in plain text")
	}
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Register(context.Background(), ports.RegisterInput{Name: "R", Email: "r@example.com", Password: "short"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, "secret", time.Hour)
	seedAccount(repo, "taken@example.com", "password123", domain.KindUser, domain.RoleUser, domain.StatusActive)

	_, err := svc.Register(context.Background(), ports.RegisterInput{Name: "R", Email: "taken@example.com", Password: "password123"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login tests
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, "secret", time.Hour)
	seedAccount(repo, "editor@example.com", "password123", domain.KindAdmin, domain.RoleEditor, domain.StatusActive)

	token, acc, err := svc.Login(context.Background(), "Editor@Example.com", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.Email != "editor@example.com" {
		t.Errorf("unexpected account: %q", acc.Email)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["kind"] != "admin" || claims["role"] != "editor" {
		t.Errorf("claims wrong: kind=%v role=%v", claims["kind"], claims["role"])
	}
	perms, ok := claims["permissions"].([]interface{})
	if !ok || len(perms) == 0 {
		t.Errorf("expected permissions claim, got %v", claims["permissions"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, "secret", time.Hour)
	seedAccount(repo, "u@example.com", "password123", domain.KindUser, domain.RoleUser, domain.StatusActive)

	_, _, err := svc.Login(context.Background(), "u@example.com", "wrongwrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAuthService_Login_BannedAccount(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, "secret", time.Hour)
	seedAccount(repo, "banned@example.com", "password123", domain.KindUser, domain.RoleUser, domain.StatusBanned)

	_, _, err := svc.Login(context.Background(), "banned@example.com", "password123")
	if !errors.Is(err, domain.ErrAccountBanned) {
		t.Fatalf("expected ErrAccountBanned, got %v", err)
	}

	// Wrong password on a banned account must not reveal the ban.
	_, _, err = svc.Login(context.Background(), "banned@example.com", "wrongwrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

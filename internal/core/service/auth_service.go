package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// AuthService implements registration and login for users and admins.
type AuthService struct {
	repo      ports.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a self-registered user account. All self-registered
// accounts start as kind=user, role=user, status=active.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	if in.Name == "" || in.Email == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: name, email and a password of at least 8 characters are required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	perms, err := domain.DerivePermissions(domain.KindUser, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	acc := &domain.Account{
		Name:         in.Name,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Kind:         domain.KindUser,
		Role:         domain.RoleUser,
		Permissions:  perms,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, acc)
}

// Login authenticates by email and issues a JWT carrying the account's kind,
// role and derived permission set.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	acc, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if acc.Status == domain.StatusBanned {
		return "", nil, domain.ErrAccountBanned
	}

	token, err := s.generateToken(acc)
	if err != nil {
		return "", nil, err
	}
	return token, acc, nil
}

func (s *AuthService) generateToken(acc *domain.Account) (string, error) {
	perms := make([]string, len(acc.Permissions))
	for i, p := range acc.Permissions {
		perms[i] = string(p)
	}

	claims := jwt.MapClaims{
		"sub":         acc.ID,
		"email":       acc.Email,
		"kind":        string(acc.Kind),
		"role":        string(acc.Role),
		"permissions": perms,
		"exp":         time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

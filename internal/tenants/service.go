package tenants

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

// Service wraps tenant account business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput carries the fields required to open a tenant account.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Register creates a tenant account with a hashed password. Email and
// phone collisions surface as ErrDuplicate.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Tenant, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repo.Create(ctx, Tenant{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Role:         RoleOwner,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Authenticate validates tenant email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Tenant, error) {
	tenant, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(tenant.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return tenant, nil
}

// Profile returns the tenant account by id.
func (s *Service) Profile(ctx context.Context, id int64) (*Tenant, error) {
	return s.repo.Get(ctx, id)
}

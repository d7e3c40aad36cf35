package staff

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

// Service wraps staff account business rules. Creation and mutation
// require an actor with admin rights on the same tenant.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// requireAdmin allows the tenant owner and admin-role staff.
func requireAdmin(actor *shared.Identity) error {
	if actor == nil {
		return shared.ErrUnauthorized
	}
	if actor.Kind == shared.ActorTenant {
		return nil
	}
	if actor.Role == string(RoleAdmin) {
		return nil
	}
	return shared.ErrForbidden
}

// Create adds a staff login under the actor's tenant.
func (s *Service) Create(ctx context.Context, actor *shared.Identity, req CreateAdminRequest) (*Admin, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repo.Create(ctx, Admin{
		TenantID:     actor.TenantID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         req.Role,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, actor.TenantID, id)
}

// Get returns one staff login owned by the tenant.
func (s *Service) Get(ctx context.Context, tenantID, id int64) (*Admin, error) {
	return s.repo.Get(ctx, tenantID, id)
}

// List returns staff logins owned by the tenant with pagination.
func (s *Service) List(ctx context.Context, tenantID int64, req ListAdminsRequest) ([]Admin, shared.Pagination, error) {
	admins, total, err := s.repo.List(ctx, tenantID, req)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return admins, shared.NewPagination(req.Page, req.Limit, total), nil
}

// Update applies partial changes to a staff login owned by the tenant.
func (s *Service) Update(ctx context.Context, actor *shared.Identity, id int64, req UpdateAdminRequest) (*Admin, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsVerified != nil {
		updates["is_verified"] = *req.IsVerified
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password_hash"] = string(hash)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, actor.TenantID, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, actor.TenantID, id)
}

// Delete removes a staff login owned by the tenant.
func (s *Service) Delete(ctx context.Context, actor *shared.Identity, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.repo.Delete(ctx, actor.TenantID, id)
}

// Authenticate validates staff email/password credentials for login.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Admin, error) {
	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return admin, nil
}

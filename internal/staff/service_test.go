package staff

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

type memoryRepo struct {
	admins map[int64]Admin
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{admins: make(map[int64]Admin)}
}

func (r *memoryRepo) Create(_ context.Context, admin Admin) (int64, error) {
	for _, existing := range r.admins {
		if existing.TenantID == admin.TenantID && (existing.Email == admin.Email || existing.Phone == admin.Phone) {
			return 0, shared.ErrDuplicate
		}
	}
	r.nextID++
	admin.ID = r.nextID
	r.admins[admin.ID] = admin
	return admin.ID, nil
}

func (r *memoryRepo) Get(_ context.Context, tenantID, id int64) (*Admin, error) {
	admin, ok := r.admins[id]
	if !ok || admin.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &admin, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*Admin, error) {
	for _, admin := range r.admins {
		if admin.Email == email {
			found := admin
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryRepo) List(_ context.Context, tenantID int64, req ListAdminsRequest) ([]Admin, int, error) {
	var result []Admin
	for _, admin := range r.admins {
		if admin.TenantID != tenantID {
			continue
		}
		if req.Search != "" && !strings.Contains(admin.Name, req.Search) {
			continue
		}
		result = append(result, admin)
	}
	return result, len(result), nil
}

func (r *memoryRepo) Update(_ context.Context, tenantID, id int64, updates map[string]interface{}) error {
	admin, ok := r.admins[id]
	if !ok || admin.TenantID != tenantID {
		return shared.ErrNotFound
	}
	if name, ok := updates["name"]; ok {
		admin.Name = name.(string)
	}
	if role, ok := updates["role"]; ok {
		admin.Role = role.(Role)
	}
	if verified, ok := updates["is_verified"]; ok {
		admin.IsVerified = verified.(bool)
	}
	if hash, ok := updates["password_hash"]; ok {
		admin.PasswordHash = hash.(string)
	}
	r.admins[id] = admin
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, tenantID, id int64) error {
	admin, ok := r.admins[id]
	if !ok || admin.TenantID != tenantID {
		return shared.ErrNotFound
	}
	delete(r.admins, id)
	return nil
}

func owner(tenantID int64) *shared.Identity {
	return &shared.Identity{TenantID: tenantID, ActorID: tenantID, Kind: shared.ActorTenant}
}

func TestCreateAndAuthenticate(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	admin, err := svc.Create(ctx, owner(1), CreateAdminRequest{
		Name: "Maya", Email: "maya@example.com", Phone: "555-0100",
		Password: "correct-horse", Role: RoleManager,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), admin.TenantID)
	require.Equal(t, RoleManager, admin.Role)
	require.False(t, admin.IsVerified)

	authed, err := svc.Authenticate(ctx, "maya@example.com", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, admin.ID, authed.ID)

	_, err = svc.Authenticate(ctx, "maya@example.com", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestCreateRequiresAdminRights(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	staffActor := &shared.Identity{TenantID: 1, ActorID: 9, Kind: shared.ActorStaff, Role: string(RoleStaff)}
	_, err := svc.Create(ctx, staffActor, CreateAdminRequest{
		Name: "X", Email: "x@example.com", Phone: "555", Password: "password1", Role: RoleStaff,
	})
	require.ErrorIs(t, err, shared.ErrForbidden)

	adminActor := &shared.Identity{TenantID: 1, ActorID: 9, Kind: shared.ActorStaff, Role: string(RoleAdmin)}
	_, err = svc.Create(ctx, adminActor, CreateAdminRequest{
		Name: "X", Email: "x@example.com", Phone: "555", Password: "password1", Role: RoleStaff,
	})
	require.NoError(t, err)
}

func TestDuplicateEmailPerTenant(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	req := CreateAdminRequest{Name: "A", Email: "a@example.com", Phone: "1", Password: "password1", Role: RoleStaff}
	_, err := svc.Create(ctx, owner(1), req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, owner(1), req)
	require.ErrorIs(t, err, shared.ErrDuplicate)

	// same email under another tenant is allowed
	_, err = svc.Create(ctx, owner(2), req)
	require.NoError(t, err)
}

func TestTenantIsolation(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	admin, err := svc.Create(ctx, owner(1), CreateAdminRequest{
		Name: "A", Email: "a@example.com", Phone: "1", Password: "password1", Role: RoleStaff,
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, admin.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	err = svc.Delete(ctx, owner(2), admin.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.Get(ctx, 1, admin.ID)
	require.NoError(t, err)
}

func TestUpdateVerifiesAndRotatesPassword(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	admin, err := svc.Create(ctx, owner(1), CreateAdminRequest{
		Name: "A", Email: "a@example.com", Phone: "1", Password: "password1", Role: RoleStaff,
	})
	require.NoError(t, err)

	verified := true
	newPassword := "password2"
	updated, err := svc.Update(ctx, owner(1), admin.ID, UpdateAdminRequest{
		IsVerified: &verified,
		Password:   &newPassword,
	})
	require.NoError(t, err)
	require.True(t, updated.IsVerified)

	_, err = svc.Authenticate(ctx, "a@example.com", "password2")
	require.NoError(t, err)
}

package tenants

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradewind-erp/tradewind/internal/platform/db"
	"github.com/tradewind-erp/tradewind/internal/shared"
)

// Repository defines persistence operations for tenant accounts.
type Repository interface {
	Create(ctx context.Context, tenant Tenant) (int64, error)
	Get(ctx context.Context, id int64) (*Tenant, error)
	GetByEmail(ctx context.Context, email string) (*Tenant, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, tenant Tenant) (int64, error) {
	const query = `
		INSERT INTO tenants (name, email, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.pool.QueryRow(ctx, query, tenant.Name, tenant.Email, tenant.Phone, tenant.PasswordHash, tenant.Role).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, shared.ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Tenant, error) {
	return r.fetch(ctx, "SELECT id, name, email, phone, password_hash, role, created_at, updated_at FROM tenants WHERE id = $1", id)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Tenant, error) {
	return r.fetch(ctx, "SELECT id, name, email, phone, password_hash, role, created_at, updated_at FROM tenants WHERE email = $1", email)
}

func (r *repository) fetch(ctx context.Context, query string, arg interface{}) (*Tenant, error) {
	var t Tenant
	var createdAt, updatedAt pgtype.Timestamptz
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&t.ID, &t.Name, &t.Email, &t.Phone, &t.PasswordHash, &t.Role, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return &t, nil
}

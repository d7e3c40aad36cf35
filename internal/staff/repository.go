package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradewind-erp/tradewind/internal/platform/db"
	"github.com/tradewind-erp/tradewind/internal/shared"
)

// Repository defines persistence operations for staff logins. Every
// query is scoped by tenant id.
type Repository interface {
	Create(ctx context.Context, admin Admin) (int64, error)
	Get(ctx context.Context, tenantID, id int64) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	List(ctx context.Context, tenantID int64, req ListAdminsRequest) ([]Admin, int, error)
	Update(ctx context.Context, tenantID, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, tenantID, id int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db dbtx
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const adminColumns = "id, tenant_id, name, email, phone, password_hash, role, is_verified, created_at, updated_at"

func (r *repository) Create(ctx context.Context, admin Admin) (int64, error) {
	const query = `
		INSERT INTO tenant_admins (tenant_id, name, email, phone, password_hash, role, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		admin.TenantID, admin.Name, admin.Email, admin.Phone,
		admin.PasswordHash, admin.Role, admin.IsVerified,
	).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, shared.ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, tenantID, id int64) (*Admin, error) {
	query := fmt.Sprintf("SELECT %s FROM tenant_admins WHERE tenant_id = $1 AND id = $2", adminColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, tenantID, id))
}

// GetByEmail resolves a staff login during authentication, before any
// tenant identity exists; it is the single unscoped read in this
// repository.
func (r *repository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	query := fmt.Sprintf("SELECT %s FROM tenant_admins WHERE email = $1 ORDER BY id LIMIT 1", adminColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

func (r *repository) List(ctx context.Context, tenantID int64, req ListAdminsRequest) ([]Admin, int, error) {
	conditions := []string{"tenant_id = $1"}
	args := []interface{}{tenantID}
	argPos := 2

	if req.Role != nil {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argPos))
		args = append(args, *req.Role)
		argPos++
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", argPos, argPos, argPos))
		args = append(args, pattern)
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tenant_admins %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := shared.NewPagination(req.Page, req.Limit, total)
	query := fmt.Sprintf(`
		SELECT %s FROM tenant_admins
		%s
		ORDER BY name, id
		LIMIT $%d OFFSET $%d
	`, adminColumns, whereClause, argPos, argPos+1)
	args = append(args, page.Limit, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var admins []Admin
	for rows.Next() {
		admin, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		admins = append(admins, *admin)
	}
	return admins, total, rows.Err()
}

func (r *repository) Update(ctx context.Context, tenantID, id int64, updates map[string]interface{}) error {
	query := "UPDATE tenant_admins SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, column := range []string{"name", "phone", "password_hash", "role", "is_verified"} {
		if value, ok := updates[column]; ok {
			query += fmt.Sprintf(", %s = $%d", column, argPos)
			args = append(args, value)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE tenant_id = $%d AND id = $%d", argPos, argPos+1)
	args = append(args, tenantID, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, tenantID, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM tenant_admins WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) scanOne(row pgx.Row) (*Admin, error) {
	admin, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (r *repository) scanRow(row pgx.Row) (*Admin, error) {
	var a Admin
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(
		&a.ID, &a.TenantID, &a.Name, &a.Email, &a.Phone,
		&a.PasswordHash, &a.Role, &a.IsVerified, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return &a, nil
}

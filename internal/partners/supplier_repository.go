package partners

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

// SupplierRepository mirrors CustomerRepository for vendors.
type SupplierRepository interface {
	Create(ctx context.Context, supplier Supplier) (int64, error)
	Get(ctx context.Context, tenantID, id int64) (*Supplier, error)
	List(ctx context.Context, tenantID int64, req ListPartiesRequest) ([]Supplier, int, error)
	Update(ctx context.Context, tenantID, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, tenantID, id int64) error
	AddAddress(ctx context.Context, tenantID, supplierID int64, addr Address) error
	UpdateAddress(ctx context.Context, tenantID, supplierID int64, addr Address) error
	DeleteAddress(ctx context.Context, tenantID, supplierID int64, addressID string) error
}

type supplierRepository struct {
	db dbtx
}

func NewSupplierRepository(pool *pgxpool.Pool) SupplierRepository {
	return &supplierRepository{db: pool}
}

func (r *supplierRepository) Create(ctx context.Context, s Supplier) (int64, error) {
	const query = `
		INSERT INTO suppliers (tenant_id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRow(ctx, query, s.TenantID, s.Name, s.Email, s.Phone).Scan(&id); err != nil {
		return 0, err
	}
	for i, addr := range s.Addresses {
		if err := r.insertAddress(ctx, id, addr, i+1); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (r *supplierRepository) Get(ctx context.Context, tenantID, id int64) (*Supplier, error) {
	const query = `
		SELECT id, tenant_id, name, email, phone, created_at, updated_at
		FROM suppliers
		WHERE tenant_id = $1 AND id = $2
	`
	var s Supplier
	var createdAt, updatedAt pgtype.Timestamptz
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&s.ID, &s.TenantID, &s.Name, &s.Email, &s.Phone, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	addresses, err := r.addresses(ctx, []int64{s.ID})
	if err != nil {
		return nil, err
	}
	s.Addresses = addresses[s.ID]
	if s.Addresses == nil {
		s.Addresses = []Address{}
	}
	return &s, nil
}

func (r *supplierRepository) List(ctx context.Context, tenantID int64, req ListPartiesRequest) ([]Supplier, int, error) {
	conditions := []string{"tenant_id = $1"}
	args := []interface{}{tenantID}
	argPos := 2

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

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM suppliers "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := shared.NewPagination(req.Page, req.Limit, total)
	query := fmt.Sprintf(`
		SELECT id, tenant_id, name, email, phone, created_at, updated_at
		FROM suppliers
		%s
		ORDER BY name, id
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)
	args = append(args, page.Limit, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var suppliers []Supplier
	var ids []int64
	for rows.Next() {
		var s Supplier
		var createdAt, updatedAt pgtype.Timestamptz
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.Email, &s.Phone, &createdAt, &updatedAt); err != nil {
			return nil, 0, err
		}
		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		s.Addresses = []Address{}
		suppliers = append(suppliers, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		addresses, err := r.addresses(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range suppliers {
			if addrs, ok := addresses[suppliers[i].ID]; ok {
				suppliers[i].Addresses = addrs
			}
		}
	}
	return suppliers, total, nil
}

func (r *supplierRepository) Update(ctx context.Context, tenantID, id int64, updates map[string]interface{}) error {
	query := "UPDATE suppliers SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, column := range []string{"name", "email", "phone"} {
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
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *supplierRepository) Delete(ctx context.Context, tenantID, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM suppliers WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *supplierRepository) AddAddress(ctx context.Context, tenantID, supplierID int64, addr Address) error {
	if err := r.assertOwned(ctx, tenantID, supplierID); err != nil {
		return err
	}
	var position int
	err := r.db.QueryRow(ctx, "SELECT COALESCE(MAX(position), 0) + 1 FROM supplier_addresses WHERE supplier_id = $1", supplierID).Scan(&position)
	if err != nil {
		return err
	}
	return r.insertAddress(ctx, supplierID, addr, position)
}

func (r *supplierRepository) UpdateAddress(ctx context.Context, tenantID, supplierID int64, addr Address) error {
	if err := r.assertOwned(ctx, tenantID, supplierID); err != nil {
		return err
	}
	const query = `
		UPDATE supplier_addresses
		SET street = $1, street2 = $2, city = $3, state = $4, postal_code = $5
		WHERE supplier_id = $6 AND id = $7
	`
	tag, err := r.db.Exec(ctx, query,
		addr.Street, addr.Street2, addr.City, addr.State, addr.PostalCode,
		supplierID, addr.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *supplierRepository) DeleteAddress(ctx context.Context, tenantID, supplierID int64, addressID string) error {
	if err := r.assertOwned(ctx, tenantID, supplierID); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, "DELETE FROM supplier_addresses WHERE supplier_id = $1 AND id = $2", supplierID, addressID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *supplierRepository) assertOwned(ctx context.Context, tenantID, supplierID int64) error {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM suppliers WHERE tenant_id = $1 AND id = $2)", tenantID, supplierID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}
	return nil
}

func (r *supplierRepository) insertAddress(ctx context.Context, supplierID int64, addr Address, position int) error {
	const query = `
		INSERT INTO supplier_addresses (id, supplier_id, street, street2, city, state, postal_code, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		addr.ID, supplierID, addr.Street, addr.Street2,
		addr.City, addr.State, addr.PostalCode, position,
	)
	return err
}

func (r *supplierRepository) addresses(ctx context.Context, supplierIDs []int64) (map[int64][]Address, error) {
	const query = `
		SELECT supplier_id, id, street, street2, city, state, postal_code
		FROM supplier_addresses
		WHERE supplier_id = ANY($1)
		ORDER BY supplier_id, position
	`
	rows, err := r.db.Query(ctx, query, supplierIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]Address)
	for rows.Next() {
		var ownerID int64
		var addr Address
		if err := rows.Scan(&ownerID, &addr.ID, &addr.Street, &addr.Street2, &addr.City, &addr.State, &addr.PostalCode); err != nil {
			return nil, err
		}
		out[ownerID] = append(out[ownerID], addr)
	}
	return out, rows.Err()
}

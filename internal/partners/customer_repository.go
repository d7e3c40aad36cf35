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

// CustomerRepository defines tenant-scoped persistence for customers
// and their owned addresses.
type CustomerRepository interface {
	Create(ctx context.Context, customer Customer) (int64, error)
	Get(ctx context.Context, tenantID, id int64) (*Customer, error)
	List(ctx context.Context, tenantID int64, req ListPartiesRequest) ([]Customer, int, error)
	Update(ctx context.Context, tenantID, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, tenantID, id int64) error
	AddAddress(ctx context.Context, tenantID, customerID int64, addr Address) error
	UpdateAddress(ctx context.Context, tenantID, customerID int64, addr Address) error
	DeleteAddress(ctx context.Context, tenantID, customerID int64, addressID string) error
}

type customerRepository struct {
	db dbtx
}

func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{db: pool}
}

func (r *customerRepository) Create(ctx context.Context, c Customer) (int64, error) {
	const query = `
		INSERT INTO customers (tenant_id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRow(ctx, query, c.TenantID, c.Name, c.Email, c.Phone).Scan(&id); err != nil {
		return 0, err
	}
	for i, addr := range c.Addresses {
		if err := r.insertAddress(ctx, id, addr, i+1); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (r *customerRepository) Get(ctx context.Context, tenantID, id int64) (*Customer, error) {
	const query = `
		SELECT id, tenant_id, name, email, phone, created_at, updated_at
		FROM customers
		WHERE tenant_id = $1 AND id = $2
	`
	var c Customer
	var createdAt, updatedAt pgtype.Timestamptz
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	addresses, err := r.addresses(ctx, []int64{c.ID})
	if err != nil {
		return nil, err
	}
	c.Addresses = addresses[c.ID]
	if c.Addresses == nil {
		c.Addresses = []Address{}
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, tenantID int64, req ListPartiesRequest) ([]Customer, int, error) {
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
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM customers "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := shared.NewPagination(req.Page, req.Limit, total)
	query := fmt.Sprintf(`
		SELECT id, tenant_id, name, email, phone, created_at, updated_at
		FROM customers
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

	var customers []Customer
	var ids []int64
	for rows.Next() {
		var c Customer
		var createdAt, updatedAt pgtype.Timestamptz
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &createdAt, &updatedAt); err != nil {
			return nil, 0, err
		}
		c.CreatedAt = createdAt.Time
		c.UpdatedAt = updatedAt.Time
		c.Addresses = []Address{}
		customers = append(customers, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		addresses, err := r.addresses(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range customers {
			if addrs, ok := addresses[customers[i].ID]; ok {
				customers[i].Addresses = addrs
			}
		}
	}
	return customers, total, nil
}

func (r *customerRepository) Update(ctx context.Context, tenantID, id int64, updates map[string]interface{}) error {
	query := "UPDATE customers SET updated_at = NOW()"
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

func (r *customerRepository) Delete(ctx context.Context, tenantID, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM customers WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *customerRepository) AddAddress(ctx context.Context, tenantID, customerID int64, addr Address) error {
	if err := r.assertOwned(ctx, tenantID, customerID); err != nil {
		return err
	}
	const query = `
		SELECT COALESCE(MAX(position), 0) + 1 FROM customer_addresses WHERE customer_id = $1
	`
	var position int
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&position); err != nil {
		return err
	}
	return r.insertAddress(ctx, customerID, addr, position)
}

func (r *customerRepository) UpdateAddress(ctx context.Context, tenantID, customerID int64, addr Address) error {
	if err := r.assertOwned(ctx, tenantID, customerID); err != nil {
		return err
	}
	const query = `
		UPDATE customer_addresses
		SET street = $1, street2 = $2, city = $3, state = $4, postal_code = $5
		WHERE customer_id = $6 AND id = $7
	`
	tag, err := r.db.Exec(ctx, query,
		addr.Street, addr.Street2, addr.City, addr.State, addr.PostalCode,
		customerID, addr.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *customerRepository) DeleteAddress(ctx context.Context, tenantID, customerID int64, addressID string) error {
	if err := r.assertOwned(ctx, tenantID, customerID); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, "DELETE FROM customer_addresses WHERE customer_id = $1 AND id = $2", customerID, addressID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *customerRepository) assertOwned(ctx context.Context, tenantID, customerID int64) error {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM customers WHERE tenant_id = $1 AND id = $2)", tenantID, customerID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}
	return nil
}

func (r *customerRepository) insertAddress(ctx context.Context, customerID int64, addr Address, position int) error {
	const query = `
		INSERT INTO customer_addresses (id, customer_id, street, street2, city, state, postal_code, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		addr.ID, customerID, addr.Street, addr.Street2,
		addr.City, addr.State, addr.PostalCode, position,
	)
	return err
}

func (r *customerRepository) addresses(ctx context.Context, customerIDs []int64) (map[int64][]Address, error) {
	const query = `
		SELECT customer_id, id, street, street2, city, state, postal_code
		FROM customer_addresses
		WHERE customer_id = ANY($1)
		ORDER BY customer_id, position
	`
	rows, err := r.db.Query(ctx, query, customerIDs)
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

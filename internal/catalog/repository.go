package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

// Repository defines tenant-scoped persistence for products.
type Repository interface {
	Create(ctx context.Context, product Product) (int64, error)
	Get(ctx context.Context, tenantID, id int64) (*Product, error)
	List(ctx context.Context, tenantID int64, req ListProductsRequest) ([]Product, int, error)
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

const productColumns = "id, tenant_id, name, price, description, image_url, category, brand, weight, created_at, updated_at"

func (r *repository) Create(ctx context.Context, p Product) (int64, error) {
	const query = `
		INSERT INTO products (tenant_id, name, price, description, image_url, category, brand, weight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		p.TenantID, p.Name, p.Price, p.Description,
		p.ImageURL, p.Category, p.Brand, p.Weight,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, tenantID, id int64) (*Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE tenant_id = $1 AND id = $2", productColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *repository) List(ctx context.Context, tenantID int64, req ListProductsRequest) ([]Product, int, error) {
	conditions := []string{"tenant_id = $1"}
	args := []interface{}{tenantID}
	argPos := 2

	if req.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, req.Category)
		argPos++
	}
	if req.Brand != "" {
		conditions = append(conditions, fmt.Sprintf("brand = $%d", argPos))
		args = append(args, req.Brand)
		argPos++
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR category ILIKE $%d OR brand ILIKE $%d)", argPos, argPos, argPos))
		args = append(args, pattern)
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := shared.NewPagination(req.Page, req.Limit, total)
	query := fmt.Sprintf(`
		SELECT %s FROM products
		%s
		ORDER BY name, id
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, argPos, argPos+1)
	args = append(args, page.Limit, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		product, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *product)
	}
	return products, total, rows.Err()
}

func (r *repository) Update(ctx context.Context, tenantID, id int64, updates map[string]interface{}) error {
	query := "UPDATE products SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, column := range []string{"name", "price", "description", "image_url", "category", "brand", "weight"} {
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

func (r *repository) Delete(ctx context.Context, tenantID, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM products WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) scanOne(row pgx.Row) (*Product, error) {
	product, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *repository) scanRow(row pgx.Row) (*Product, error) {
	var p Product
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(
		&p.ID, &p.TenantID, &p.Name, &p.Price, &p.Description,
		&p.ImageURL, &p.Category, &p.Brand, &p.Weight, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

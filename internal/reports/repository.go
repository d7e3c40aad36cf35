package reports

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository fetches the flat rows the aggregation pipeline consumes.
// Tenant, date range and dimension filters are pushed down to SQL;
// bucketing and grouping happen in the service.
type Repository interface {
	ProductLineRows(ctx context.Context, tenantID int64, filter ProductSalesFilter) ([]LineRow, error)
	CustomerLineRows(ctx context.Context, tenantID int64, filter CustomerSalesFilter) ([]CustomerLineRow, error)
	OrderRows(ctx context.Context, tenantID int64, rng DateRange) ([]OrderRow, error)
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

func (r *repository) ProductLineRows(ctx context.Context, tenantID int64, filter ProductSalesFilter) ([]LineRow, error) {
	conditions := []string{"o.tenant_id = $1"}
	args := []interface{}{tenantID}
	argPos := 2

	argPos, conditions, args = rangeConditions(filter.Range, argPos, conditions, args)

	if filter.ProductID != nil {
		conditions = append(conditions, fmt.Sprintf("p.id = $%d", argPos))
		args = append(args, *filter.ProductID)
		argPos++
	}
	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", argPos))
		args = append(args, *filter.Category)
		argPos++
	}
	if filter.Brand != nil {
		conditions = append(conditions, fmt.Sprintf("p.brand = $%d", argPos))
		args = append(args, *filter.Brand)
		argPos++
	}

	query := fmt.Sprintf(`
		SELECT o.id, o.created_at, p.id, p.name, p.category, p.brand,
		       ol.quantity, ol.price, ol.total
		FROM order_lines ol
		JOIN orders o ON ol.order_id = o.id
		JOIN products p ON ol.product_id = p.id
		%s
		ORDER BY o.created_at, o.id, ol.id
	`, whereClause(conditions))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []LineRow
	for rows.Next() {
		var row LineRow
		var createdAt pgtype.Timestamptz
		var category, brand pgtype.Text
		if err := rows.Scan(
			&row.OrderID, &createdAt, &row.ProductID, &row.ProductName,
			&category, &brand, &row.Quantity, &row.Price, &row.LineTotal,
		); err != nil {
			return nil, err
		}
		row.OrderCreatedAt = createdAt.Time
		row.Category = category.String
		row.Brand = brand.String
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *repository) CustomerLineRows(ctx context.Context, tenantID int64, filter CustomerSalesFilter) ([]CustomerLineRow, error) {
	conditions := []string{"o.tenant_id = $1"}
	args := []interface{}{tenantID}
	argPos := 2

	argPos, conditions, args = rangeConditions(filter.Range, argPos, conditions, args)

	if filter.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("c.id = $%d", argPos))
		args = append(args, *filter.CustomerID)
		argPos++
	}

	query := fmt.Sprintf(`
		SELECT o.id, o.created_at, c.id, c.name, c.email, c.phone,
		       ol.quantity, ol.price, ol.total
		FROM order_lines ol
		JOIN orders o ON ol.order_id = o.id
		JOIN customers c ON o.customer_id = c.id
		%s
		ORDER BY o.created_at, o.id, ol.id
	`, whereClause(conditions))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CustomerLineRow
	for rows.Next() {
		var row CustomerLineRow
		var createdAt pgtype.Timestamptz
		var email, phone pgtype.Text
		if err := rows.Scan(
			&row.OrderID, &createdAt, &row.CustomerID, &row.CustomerName,
			&email, &phone, &row.Quantity, &row.Price, &row.LineTotal,
		); err != nil {
			return nil, err
		}
		row.OrderCreatedAt = createdAt.Time
		row.CustomerEmail = email.String
		row.CustomerPhone = phone.String
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *repository) OrderRows(ctx context.Context, tenantID int64, rng DateRange) ([]OrderRow, error) {
	conditions := []string{"o.tenant_id = $1"}
	args := []interface{}{tenantID}
	argPos := 2

	_, conditions, args = rangeConditions(rng, argPos, conditions, args)

	query := fmt.Sprintf(`
		SELECT o.id, o.created_at, o.total
		FROM orders o
		%s
		ORDER BY o.created_at, o.id
	`, whereClause(conditions))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OrderRow
	for rows.Next() {
		var row OrderRow
		var createdAt pgtype.Timestamptz
		if err := rows.Scan(&row.OrderID, &createdAt, &row.Total); err != nil {
			return nil, err
		}
		row.CreatedAt = createdAt.Time
		result = append(result, row)
	}
	return result, rows.Err()
}

// rangeConditions appends date predicates only for the bounds present;
// an empty range emits no predicate at all.
func rangeConditions(rng DateRange, argPos int, conditions []string, args []interface{}) (int, []string, []interface{}) {
	if rng.From != nil {
		conditions = append(conditions, fmt.Sprintf("o.created_at >= $%d", argPos))
		args = append(args, *rng.From)
		argPos++
	}
	if rng.To != nil {
		conditions = append(conditions, fmt.Sprintf("o.created_at <= $%d", argPos))
		args = append(args, *rng.To)
		argPos++
	}
	return argPos, conditions, args
}

func whereClause(conditions []string) string {
	clause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		clause += " AND " + conditions[i]
	}
	return clause
}

package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradewind-erp/tradewind/internal/ledger"
	"github.com/tradewind-erp/tradewind/internal/platform/db"
	"github.com/tradewind-erp/tradewind/internal/shared"
)

// Repository defines tenant-scoped persistence for stock purchases.
type Repository interface {
	Create(ctx context.Context, stock Stock) (int64, error)
	Get(ctx context.Context, tenantID, id int64) (*Stock, error)
	List(ctx context.Context, tenantID int64, req ListStocksRequest) ([]Stock, int, error)
	Update(ctx context.Context, tenantID, id int64, updates map[string]interface{}, lines []Line, payments []ledger.Event) error
	Delete(ctx context.Context, tenantID, id int64) error
	SetStatus(ctx context.Context, tenantID, id int64, status Status) error
	SetPayments(ctx context.Context, tenantID, id int64, paymentStatus ledger.Status, history []ledger.Event) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const stockColumns = `id, tenant_id, supplier_id, total, description, shipping_address,
	phone, email, has_invoice, has_gst, payment_method, stock_status, payment_status,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, s Stock) (int64, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
			INSERT INTO stocks (tenant_id, supplier_id, total, description, shipping_address,
				phone, email, has_invoice, has_gst, payment_method, stock_status, payment_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id
		`
		err := tx.QueryRow(ctx, query,
			s.TenantID, s.SupplierID, s.Total, s.Description, s.ShippingAddress,
			s.Phone, s.Email, s.HasInvoice, s.HasGST, s.PaymentMethod,
			s.StockStatus, s.PaymentStatus,
		).Scan(&id)
		if err != nil {
			return err
		}
		if err := insertLines(ctx, tx, id, s.Lines); err != nil {
			return err
		}
		return insertPayments(ctx, tx, id, s.PaymentHistory)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, tenantID, id int64) (*Stock, error) {
	query := fmt.Sprintf("SELECT %s FROM stocks WHERE tenant_id = $1 AND id = $2", stockColumns)
	s, err := scanStock(r.pool.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadChildren(ctx, []*Stock{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repository) List(ctx context.Context, tenantID int64, req ListStocksRequest) ([]Stock, int, error) {
	conditions := []string{"tenant_id = $1"}
	args := []interface{}{tenantID}
	argPos := 2

	if req.SupplierID != nil {
		conditions = append(conditions, fmt.Sprintf("supplier_id = $%d", argPos))
		args = append(args, *req.SupplierID)
		argPos++
	}
	if req.StockStatus != nil {
		conditions = append(conditions, fmt.Sprintf("stock_status = $%d", argPos))
		args = append(args, *req.StockStatus)
		argPos++
	}
	if req.PaymentStatus != nil {
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", argPos))
		args = append(args, *req.PaymentStatus)
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM stocks "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := shared.NewPagination(req.Page, req.Limit, total)
	query := fmt.Sprintf(`
		SELECT %s FROM stocks
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, stockColumns, whereClause, argPos, argPos+1)
	args = append(args, page.Limit, page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	refs := make([]*Stock, len(out))
	for i := range out {
		refs[i] = &out[i]
	}
	if err := r.loadChildren(ctx, refs); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repository) Update(ctx context.Context, tenantID, id int64, updates map[string]interface{}, lines []Line, payments []ledger.Event) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := "UPDATE stocks SET updated_at = NOW()"
		var args []interface{}
		argPos := 1

		for _, column := range []string{
			"supplier_id", "total", "description", "shipping_address",
			"phone", "email", "has_invoice", "has_gst", "payment_method",
			"payment_status",
		} {
			if value, ok := updates[column]; ok {
				query += fmt.Sprintf(", %s = $%d", column, argPos)
				args = append(args, value)
				argPos++
			}
		}

		query += fmt.Sprintf(" WHERE tenant_id = $%d AND id = $%d", argPos, argPos+1)
		args = append(args, tenantID, id)

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}

		if lines != nil {
			if _, err := tx.Exec(ctx, "DELETE FROM stock_lines WHERE stock_id = $1", id); err != nil {
				return err
			}
			if err := insertLines(ctx, tx, id, lines); err != nil {
				return err
			}
		}
		if payments != nil {
			if _, err := tx.Exec(ctx, "DELETE FROM stock_payments WHERE stock_id = $1", id); err != nil {
				return err
			}
			return insertPayments(ctx, tx, id, payments)
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, tenantID, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM stocks WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, tenantID, id int64, status Status) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE stocks SET stock_status = $1, updated_at = NOW() WHERE tenant_id = $2 AND id = $3",
		status, tenantID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetPayments(ctx context.Context, tenantID, id int64, paymentStatus ledger.Status, history []ledger.Event) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			"UPDATE stocks SET payment_status = $1, updated_at = NOW() WHERE tenant_id = $2 AND id = $3",
			paymentStatus, tenantID, id,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		if _, err := tx.Exec(ctx, "DELETE FROM stock_payments WHERE stock_id = $1", id); err != nil {
			return err
		}
		return insertPayments(ctx, tx, id, history)
	})
}

func insertLines(ctx context.Context, tx dbtx, stockID int64, lines []Line) error {
	const query = `
		INSERT INTO stock_lines (stock_id, product_id, quantity, price, total, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, line := range lines {
		if _, err := tx.Exec(ctx, query, stockID, line.ProductID, line.Quantity, line.Price, line.Total, i+1); err != nil {
			return err
		}
	}
	return nil
}

func insertPayments(ctx context.Context, tx dbtx, stockID int64, history []ledger.Event) error {
	const query = `
		INSERT INTO stock_payments (stock_id, date, credit_amount, payment_method, remaining_amount, receiver, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, event := range history {
		if _, err := tx.Exec(ctx, query,
			stockID, event.Date, event.CreditAmount, event.PaymentMethod,
			event.RemainingAmount, event.Receiver, i+1,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) loadChildren(ctx context.Context, stocks []*Stock) error {
	if len(stocks) == 0 {
		return nil
	}
	byID := make(map[int64]*Stock, len(stocks))
	ids := make([]int64, 0, len(stocks))
	for _, s := range stocks {
		s.Lines = []Line{}
		s.PaymentHistory = []ledger.Event{}
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	lineRows, err := r.pool.Query(ctx, `
		SELECT stock_id, id, product_id, quantity, price, total
		FROM stock_lines
		WHERE stock_id = ANY($1)
		ORDER BY stock_id, position
	`, ids)
	if err != nil {
		return err
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var ownerID int64
		var l Line
		if err := lineRows.Scan(&ownerID, &l.ID, &l.ProductID, &l.Quantity, &l.Price, &l.Total); err != nil {
			return err
		}
		byID[ownerID].Lines = append(byID[ownerID].Lines, l)
	}
	if err := lineRows.Err(); err != nil {
		return err
	}

	paymentRows, err := r.pool.Query(ctx, `
		SELECT stock_id, date, credit_amount, payment_method, remaining_amount, receiver
		FROM stock_payments
		WHERE stock_id = ANY($1)
		ORDER BY stock_id, position
	`, ids)
	if err != nil {
		return err
	}
	defer paymentRows.Close()
	for paymentRows.Next() {
		var ownerID int64
		var e ledger.Event
		var date pgtype.Timestamptz
		if err := paymentRows.Scan(&ownerID, &date, &e.CreditAmount, &e.PaymentMethod, &e.RemainingAmount, &e.Receiver); err != nil {
			return err
		}
		e.Date = date.Time
		byID[ownerID].PaymentHistory = append(byID[ownerID].PaymentHistory, e)
	}
	return paymentRows.Err()
}

func scanStock(row pgx.Row) (*Stock, error) {
	var s Stock
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(
		&s.ID, &s.TenantID, &s.SupplierID, &s.Total, &s.Description, &s.ShippingAddress,
		&s.Phone, &s.Email, &s.HasInvoice, &s.HasGST, &s.PaymentMethod,
		&s.StockStatus, &s.PaymentStatus, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

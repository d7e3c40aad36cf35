package stock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tradewind-erp/tradewind/internal/ledger"
	"github.com/tradewind-erp/tradewind/internal/shared"
)

// ReportInvalidator bumps the report cache version after a mutation.
// A nil invalidator is a no-op.
type ReportInvalidator interface {
	Bump(ctx context.Context) error
}

// Service implements stock CRUD plus the status and payment
// operations, sharing the ledger semantics with orders.
type Service struct {
	logger     *slog.Logger
	repo       Repository
	invalidate ReportInvalidator
	now        func() time.Time
}

func NewService(logger *slog.Logger, repo Repository, invalidate ReportInvalidator) *Service {
	return &Service{logger: logger, repo: repo, invalidate: invalidate, now: time.Now}
}

func (s *Service) Create(ctx context.Context, tenantID int64, req CreateStockRequest) (*Stock, error) {
	lines, linesTotal, err := buildLines(req.Lines)
	if err != nil {
		return nil, err
	}

	total := linesTotal
	if req.Total != nil {
		total = *req.Total
	}

	status := req.StockStatus
	if status == "" {
		status = StatusPending
	}
	if !ValidStatus(status) {
		return nil, fmt.Errorf("unknown stock status %q: %w", status, shared.ErrValidation)
	}
	if req.PaymentMethod != "" && !ledger.ValidMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("unknown payment method %q: %w", req.PaymentMethod, shared.ErrValidation)
	}

	history, err := s.buildEvents(req.PaymentHistory)
	if err != nil {
		return nil, err
	}
	paymentStatus, history := ledger.Reconcile(total, history, req.PaymentStatus)

	id, err := s.repo.Create(ctx, Stock{
		TenantID:        tenantID,
		SupplierID:      req.SupplierID,
		Lines:           lines,
		Total:           total,
		Description:     req.Description,
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		Email:           req.Email,
		HasInvoice:      req.HasInvoice,
		HasGST:          req.HasGST,
		PaymentMethod:   req.PaymentMethod,
		StockStatus:     status,
		PaymentStatus:   paymentStatus,
		PaymentHistory:  history,
	})
	if err != nil {
		return nil, err
	}
	s.bump(ctx)
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) Get(ctx context.Context, tenantID, id int64) (*Stock, error) {
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID int64, req ListStocksRequest) ([]Stock, shared.Pagination, error) {
	items, total, err := s.repo.List(ctx, tenantID, req)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return items, shared.NewPagination(req.Page, req.Limit, total), nil
}

func (s *Service) Update(ctx context.Context, tenantID, id int64, req UpdateStockRequest) (*Stock, error) {
	updates := map[string]interface{}{}
	if req.SupplierID != nil {
		updates["supplier_id"] = *req.SupplierID
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ShippingAddress != nil {
		updates["shipping_address"] = *req.ShippingAddress
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.HasInvoice != nil {
		updates["has_invoice"] = *req.HasInvoice
	}
	if req.HasGST != nil {
		updates["has_gst"] = *req.HasGST
	}
	if req.PaymentMethod != nil {
		if !ledger.ValidMethod(*req.PaymentMethod) {
			return nil, fmt.Errorf("unknown payment method %q: %w", *req.PaymentMethod, shared.ErrValidation)
		}
		updates["payment_method"] = *req.PaymentMethod
	}

	var lines []Line
	if req.Lines != nil {
		built, linesTotal, err := buildLines(req.Lines)
		if err != nil {
			return nil, err
		}
		lines = built
		if req.Total == nil {
			updates["total"] = linesTotal
		}
	}
	if req.Total != nil {
		updates["total"] = *req.Total
	}

	// A changed total invalidates the stored remaining amounts, so the
	// existing history is re-reconciled against it in the same update.
	var payments []ledger.Event
	if newTotal, ok := updates["total"]; ok {
		current, err := s.repo.Get(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		status, history := ledger.Reconcile(newTotal.(float64), current.PaymentHistory, current.PaymentStatus)
		updates["payment_status"] = status
		payments = history
	}

	if len(updates) > 0 || lines != nil {
		if err := s.repo.Update(ctx, tenantID, id, updates, lines, payments); err != nil {
			return nil, err
		}
		s.bump(ctx)
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, tenantID, id int64, status Status) (*Stock, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("unknown stock status %q: %w", status, shared.ErrValidation)
	}
	if err := s.repo.SetStatus(ctx, tenantID, id, status); err != nil {
		return nil, err
	}
	s.bump(ctx)
	return s.repo.Get(ctx, tenantID, id)
}

// AddPayment appends one event and re-reconciles the full history.
func (s *Service) AddPayment(ctx context.Context, tenantID, id int64, req PaymentPayload) (*Stock, error) {
	event, err := s.buildEvent(req)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	status, history := ledger.Append(entry.Total, entry.PaymentHistory, event)
	if err := s.repo.SetPayments(ctx, tenantID, id, status, history); err != nil {
		return nil, err
	}
	s.bump(ctx)
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) bump(ctx context.Context) {
	if s.invalidate == nil {
		return
	}
	if err := s.invalidate.Bump(ctx); err != nil {
		s.logger.Warn("bump report cache", "error", err)
	}
}

func (s *Service) buildEvent(p PaymentPayload) (ledger.Event, error) {
	if p.CreditAmount <= 0 {
		return ledger.Event{}, fmt.Errorf("credit amount must be positive: %w", shared.ErrValidation)
	}
	if !ledger.ValidMethod(p.PaymentMethod) {
		return ledger.Event{}, fmt.Errorf("unknown payment method %q: %w", p.PaymentMethod, shared.ErrValidation)
	}
	date := s.now()
	if p.Date != nil {
		date = *p.Date
	}
	return ledger.Event{
		Date:          date,
		CreditAmount:  p.CreditAmount,
		PaymentMethod: p.PaymentMethod,
		Receiver:      p.Receiver,
	}, nil
}

func (s *Service) buildEvents(payloads []PaymentPayload) ([]ledger.Event, error) {
	events := make([]ledger.Event, 0, len(payloads))
	for _, p := range payloads {
		event, err := s.buildEvent(p)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func buildLines(payloads []LinePayload) ([]Line, float64, error) {
	lines := make([]Line, 0, len(payloads))
	var sum float64
	for _, p := range payloads {
		if p.Quantity <= 0 {
			return nil, 0, fmt.Errorf("line quantity must be positive: %w", shared.ErrValidation)
		}
		if p.Price < 0 {
			return nil, 0, fmt.Errorf("line price must not be negative: %w", shared.ErrValidation)
		}
		total := p.Quantity * p.Price
		if p.Total != nil {
			total = *p.Total
		}
		lines = append(lines, Line{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			Price:     p.Price,
			Total:     total,
		})
		sum += total
	}
	return lines, sum, nil
}

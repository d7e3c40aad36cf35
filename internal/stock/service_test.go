package stock

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tradewind-erp/tradewind/internal/ledger"
	"github.com/tradewind-erp/tradewind/internal/shared"
)

type memoryRepo struct {
	nextID int64
	stocks map[int64]Stock
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, stocks: map[int64]Stock{}}
}

func (m *memoryRepo) Create(_ context.Context, s Stock) (int64, error) {
	s.ID = m.nextID
	m.nextID++
	m.stocks[s.ID] = s
	return s.ID, nil
}

func (m *memoryRepo) Get(_ context.Context, tenantID, id int64) (*Stock, error) {
	s, ok := m.stocks[id]
	if !ok || s.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &s, nil
}

func (m *memoryRepo) List(_ context.Context, tenantID int64, req ListStocksRequest) ([]Stock, int, error) {
	var out []Stock
	for _, s := range m.stocks {
		if s.TenantID != tenantID {
			continue
		}
		if req.StockStatus != nil && s.StockStatus != *req.StockStatus {
			continue
		}
		if req.SupplierID != nil && (s.SupplierID == nil || *s.SupplierID != *req.SupplierID) {
			continue
		}
		out = append(out, s)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Update(_ context.Context, tenantID, id int64, updates map[string]interface{}, lines []Line, payments []ledger.Event) error {
	s, ok := m.stocks[id]
	if !ok || s.TenantID != tenantID {
		return shared.ErrNotFound
	}
	if v, ok := updates["total"]; ok {
		s.Total = v.(float64)
	}
	if v, ok := updates["supplier_id"]; ok {
		supplierID := v.(int64)
		s.SupplierID = &supplierID
	}
	if v, ok := updates["payment_status"]; ok {
		s.PaymentStatus = v.(ledger.Status)
	}
	if lines != nil {
		s.Lines = lines
	}
	if payments != nil {
		s.PaymentHistory = payments
	}
	m.stocks[id] = s
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, tenantID, id int64) error {
	s, ok := m.stocks[id]
	if !ok || s.TenantID != tenantID {
		return shared.ErrNotFound
	}
	delete(m.stocks, id)
	return nil
}

func (m *memoryRepo) SetStatus(_ context.Context, tenantID, id int64, status Status) error {
	s, ok := m.stocks[id]
	if !ok || s.TenantID != tenantID {
		return shared.ErrNotFound
	}
	s.StockStatus = status
	m.stocks[id] = s
	return nil
}

func (m *memoryRepo) SetPayments(_ context.Context, tenantID, id int64, paymentStatus ledger.Status, history []ledger.Event) error {
	s, ok := m.stocks[id]
	if !ok || s.TenantID != tenantID {
		return shared.ErrNotFound
	}
	s.PaymentStatus = paymentStatus
	s.PaymentHistory = history
	m.stocks[id] = s
	return nil
}

func newTestService() *Service {
	return NewService(slog.Default(), newMemoryRepo(), nil)
}

func TestStockCreateWithoutSupplier(t *testing.T) {
	svc := newTestService()

	entry, err := svc.Create(context.Background(), 1, CreateStockRequest{
		Lines: []LinePayload{{ProductID: 1, Quantity: 5, Price: 8}},
	})
	require.NoError(t, err)
	require.Nil(t, entry.SupplierID)
	require.Equal(t, 40.0, entry.Total)
	require.Equal(t, StatusPending, entry.StockStatus)
}

func TestStockPaymentFlow(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	supplierID := int64(7)
	entry, err := svc.Create(ctx, 1, CreateStockRequest{
		SupplierID: &supplierID,
		Lines:      []LinePayload{{ProductID: 1, Quantity: 10, Price: 50}},
	})
	require.NoError(t, err)
	require.Equal(t, 500.0, entry.Total)

	entry, err = svc.AddPayment(ctx, 1, entry.ID, PaymentPayload{CreditAmount: 500, PaymentMethod: ledger.MethodOther})
	require.NoError(t, err)
	require.Equal(t, ledger.StatusPaid, entry.PaymentStatus)
	require.Equal(t, 0.0, entry.PaymentHistory[0].RemainingAmount)
}

func TestStockStatusValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	entry, err := svc.Create(ctx, 1, CreateStockRequest{
		Lines: []LinePayload{{ProductID: 1, Quantity: 1, Price: 10}},
	})
	require.NoError(t, err)

	entry, err = svc.UpdateStatus(ctx, 1, entry.ID, StatusCancelled)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, entry.StockStatus)

	_, err = svc.UpdateStatus(ctx, 1, entry.ID, "received")
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestStockUpdateTotalReconcilesHistory(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	entry, err := svc.Create(ctx, 1, CreateStockRequest{
		Lines: []LinePayload{{ProductID: 1, Quantity: 1, Price: 500}},
		PaymentHistory: []PaymentPayload{
			{CreditAmount: 500, PaymentMethod: ledger.MethodOnline},
		},
	})
	require.NoError(t, err)
	require.Equal(t, ledger.StatusPaid, entry.PaymentStatus)

	// Raising the total reopens the balance.
	newTotal := 750.0
	entry, err = svc.Update(ctx, 1, entry.ID, UpdateStockRequest{Total: &newTotal})
	require.NoError(t, err)
	require.Equal(t, ledger.StatusPartiallyPaid, entry.PaymentStatus)
	require.Equal(t, 250.0, entry.PaymentHistory[0].RemainingAmount)

	// Lowering it below the paid sum settles the entry again.
	newTotal = 400.0
	entry, err = svc.Update(ctx, 1, entry.ID, UpdateStockRequest{Total: &newTotal})
	require.NoError(t, err)
	require.Equal(t, ledger.StatusPaid, entry.PaymentStatus)
	require.Equal(t, 0.0, entry.PaymentHistory[0].RemainingAmount)
}

func TestStockTenantIsolation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	entry, err := svc.Create(ctx, 1, CreateStockRequest{
		Lines: []LinePayload{{ProductID: 1, Quantity: 1, Price: 10}},
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, entry.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// memoryRepo mimics the SQL push-down: tenant, range and dimension
// filters are applied before rows reach the service, and dangling
// references are excluded the way the inner joins would.
type memoryRepo struct {
	products  map[int64]testProduct
	customers map[int64]testCustomer
	orders    []testOrder
}

type testProduct struct {
	name     string
	category string
	brand    string
}

type testCustomer struct {
	name  string
	email string
	phone string
}

type testOrder struct {
	id         int64
	tenantID   int64
	customerID int64
	createdAt  time.Time
	total      float64
	lines      []testLine
}

type testLine struct {
	productID int64
	quantity  float64
	price     float64
	total     float64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		products:  make(map[int64]testProduct),
		customers: make(map[int64]testCustomer),
	}
}

func (r *memoryRepo) ProductLineRows(_ context.Context, tenantID int64, filter ProductSalesFilter) ([]LineRow, error) {
	var rows []LineRow
	for _, order := range r.orders {
		if order.tenantID != tenantID || !filter.Range.Contains(order.createdAt) {
			continue
		}
		for _, line := range order.lines {
			product, ok := r.products[line.productID]
			if !ok {
				continue
			}
			if filter.ProductID != nil && line.productID != *filter.ProductID {
				continue
			}
			if filter.Category != nil && product.category != *filter.Category {
				continue
			}
			if filter.Brand != nil && product.brand != *filter.Brand {
				continue
			}
			rows = append(rows, LineRow{
				OrderID:        order.id,
				OrderCreatedAt: order.createdAt,
				ProductID:      line.productID,
				ProductName:    product.name,
				Category:       product.category,
				Brand:          product.brand,
				Quantity:       line.quantity,
				Price:          line.price,
				LineTotal:      line.total,
			})
		}
	}
	return rows, nil
}

func (r *memoryRepo) CustomerLineRows(_ context.Context, tenantID int64, filter CustomerSalesFilter) ([]CustomerLineRow, error) {
	var rows []CustomerLineRow
	for _, order := range r.orders {
		if order.tenantID != tenantID || !filter.Range.Contains(order.createdAt) {
			continue
		}
		customer, ok := r.customers[order.customerID]
		if !ok {
			continue
		}
		if filter.CustomerID != nil && order.customerID != *filter.CustomerID {
			continue
		}
		for _, line := range order.lines {
			rows = append(rows, CustomerLineRow{
				OrderID:        order.id,
				OrderCreatedAt: order.createdAt,
				CustomerID:     order.customerID,
				CustomerName:   customer.name,
				CustomerEmail:  customer.email,
				CustomerPhone:  customer.phone,
				Quantity:       line.quantity,
				Price:          line.price,
				LineTotal:      line.total,
			})
		}
	}
	return rows, nil
}

func (r *memoryRepo) OrderRows(_ context.Context, tenantID int64, rng DateRange) ([]OrderRow, error) {
	var rows []OrderRow
	for _, order := range r.orders {
		if order.tenantID != tenantID || !rng.Contains(order.createdAt) {
			continue
		}
		rows = append(rows, OrderRow{OrderID: order.id, CreatedAt: order.createdAt, Total: order.total})
	}
	return rows, nil
}

func seedRepo() *memoryRepo {
	repo := newMemoryRepo()
	repo.products[1] = testProduct{name: "Basmati Rice 5kg", category: "grocery", brand: "Daawat"}
	repo.products[2] = testProduct{name: "Sunflower Oil 1L", category: "grocery", brand: "Fortune"}
	repo.customers[10] = testCustomer{name: "Asha Traders", email: "asha@example.com", phone: "9800000001"}
	repo.customers[11] = testCustomer{name: "Binod Stores", email: "binod@example.com", phone: "9800000002"}
	return repo
}

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 10, 0, 0, 0, time.UTC)
}

func TestProductSalesGroupsByMonth(t *testing.T) {
	repo := seedRepo()
	repo.orders = []testOrder{
		{id: 1, tenantID: 7, customerID: 10, createdAt: day(time.May, 2), total: 20,
			lines: []testLine{{productID: 1, quantity: 2, price: 10, total: 20}}},
		{id: 2, tenantID: 7, customerID: 11, createdAt: day(time.May, 20), total: 30,
			lines: []testLine{{productID: 1, quantity: 3, price: 10, total: 30}}},
	}
	svc := NewService(repo, nil)

	rows, err := svc.ProductSales(context.Background(), 7, ProductSalesFilter{Frequency: FreqMonthly})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(1), rows[0].ProductID)
	require.Equal(t, "Basmati Rice 5kg", rows[0].ProductName)
	require.Equal(t, PeriodKey{Year: 2024, Month: 5}, rows[0].Period)
	require.InDelta(t, 5, rows[0].TotalQuantity, 0.0001)
	require.InDelta(t, 50, rows[0].TotalAmount, 0.0001)
}

func TestProductSalesFallsBackToQuantityTimesPrice(t *testing.T) {
	repo := seedRepo()
	repo.orders = []testOrder{
		{id: 1, tenantID: 7, customerID: 10, createdAt: day(time.May, 2),
			lines: []testLine{{productID: 2, quantity: 4, price: 2.5, total: 0}}},
	}
	svc := NewService(repo, nil)

	rows, err := svc.ProductSales(context.Background(), 7, ProductSalesFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.InDelta(t, 10, rows[0].TotalAmount, 0.0001)
}

func TestProductSalesExcludesDanglingProducts(t *testing.T) {
	repo := seedRepo()
	repo.orders = []testOrder{
		{id: 1, tenantID: 7, customerID: 10, createdAt: day(time.May, 2),
			lines: []testLine{
				{productID: 1, quantity: 1, price: 10, total: 10},
				{productID: 999, quantity: 5, price: 100, total: 500}, // deleted product
			}},
	}
	svc := NewService(repo, nil)

	rows, err := svc.ProductSales(context.Background(), 7, ProductSalesFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.InDelta(t, 10, rows[0].TotalAmount, 0.0001)
}

func TestProductSalesDimensionFilters(t *testing.T) {
	repo := seedRepo()
	repo.orders = []testOrder{
		{id: 1, tenantID: 7, customerID: 10, createdAt: day(time.May, 2),
			lines: []testLine{
				{productID: 1, quantity: 1, price: 10, total: 10},
				{productID: 2, quantity: 1, price: 5, total: 5},
			}},
	}
	svc := NewService(repo, nil)

	brand := "Fortune"
	rows, err := svc.ProductSales(context.Background(), 7, ProductSalesFilter{Brand: &brand})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(2), rows[0].ProductID)

	productID := int64(1)
	rows, err = svc.ProductSales(context.Background(), 7, ProductSalesFilter{ProductID: &productID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(1), rows[0].ProductID)
}

func TestProductSalesTenantIsolation(t *testing.T) {
	repo := seedRepo()
	repo.orders = []testOrder{
		{id: 1, tenantID: 7, customerID: 10, createdAt: day(time.May, 2),
			lines: []testLine{{productID: 1, quantity: 2, price: 10, total: 20}}},
	}
	svc := NewService(repo, nil)

	rows, err := svc.ProductSales(context.Background(), 8, ProductSalesFilter{})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestProductSalesSortedAscendingByPeriod(t *testing.T) {
	repo := seedRepo()
	repo.orders = []testOrder{
		{id: 1, tenantID: 7, customerID: 10, createdAt: day(time.September, 1),
			lines: []testLine{{productID: 1, quantity: 1, price: 10, total: 10}}},
		{id: 2, tenantID: 7, customerID: 10, createdAt: day(time.February, 1),
			lines: []testLine{{productID: 1, quantity: 1, price: 10, total: 10}}},
		{id: 3, tenantID: 7, customerID: 10, createdAt: day(time.June, 1),
			lines: []testLine{{productID: 1, quantity: 1, price: 10, total: 10}}},
	}
	svc := NewService(repo, nil)

	rows, err := svc.ProductSales(context.Background(), 7, ProductSalesFilter{Frequency: FreqMonthly})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i := 1; i < len(rows); i++ {
		require.True(t, rows[i-1].Period.Less(rows[i].Period))
	}
}

func TestCustomerSalesCountsDistinctOrders(t *testing.T) {
	repo := seedRepo()
	repo.orders = []testOrder{
		{id: 1, tenantID: 7, customerID: 10, createdAt: day(time.May, 2),
			lines: []testLine{
				{productID: 1, quantity: 2, price: 10, total: 20},
				{productID: 2, quantity: 1, price: 5, total: 5},
			}},
		{id: 2, tenantID: 7, customerID: 10, createdAt: day(time.May, 9),
			lines: []testLine{{productID: 1, quantity: 1, price: 10, total: 10}}},
	}
	svc := NewService(repo, nil)

	rows, err := svc.CustomerSales(context.Background(), 7, CustomerSalesFilter{Frequency: FreqMonthly})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// two orders, three line items: count must be per order
	require.Equal(t, 2, rows[0].OrderCount)
	require.InDelta(t, 4, rows[0].TotalQuantity, 0.0001)
	require.InDelta(t, 35, rows[0].TotalAmount, 0.0001)
	require.Equal(t, "Asha Traders", rows[0].CustomerName)
	require.Equal(t, "asha@example.com", rows[0].CustomerEmail)
}

func TestCustomerSalesUnmatchedFilterReturnsEmpty(t *testing.T) {
	repo := seedRepo()
	repo.orders = []testOrder{
		{id: 1, tenantID: 7, customerID: 10, createdAt: day(time.May, 2),
			lines: []testLine{{productID: 1, quantity: 1, price: 10, total: 10}}},
	}
	svc := NewService(repo, nil)

	customerID := int64(404)
	rows, err := svc.CustomerSales(context.Background(), 7, CustomerSalesFilter{CustomerID: &customerID})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestCustomerSalesExcludesDanglingCustomer(t *testing.T) {
	repo := seedRepo()
	repo.orders = []testOrder{
		{id: 1, tenantID: 7, customerID: 999, createdAt: day(time.May, 2),
			lines: []testLine{{productID: 1, quantity: 1, price: 10, total: 10}}},
		{id: 2, tenantID: 7, customerID: 11, createdAt: day(time.May, 4),
			lines: []testLine{{productID: 1, quantity: 1, price: 10, total: 10}}},
	}
	svc := NewService(repo, nil)

	rows, err := svc.CustomerSales(context.Background(), 7, CustomerSalesFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(11), rows[0].CustomerID)
}

func TestOrderAnalyticsQuarterBuckets(t *testing.T) {
	repo := seedRepo()
	repo.orders = []testOrder{
		{id: 1, tenantID: 7, customerID: 10, createdAt: day(time.January, 5), total: 100},
		{id: 2, tenantID: 7, customerID: 10, createdAt: day(time.April, 5), total: 200},
		{id: 3, tenantID: 7, customerID: 11, createdAt: day(time.July, 5), total: 300},
	}
	svc := NewService(repo, nil)

	rows, err := svc.OrderAnalytics(context.Background(), 7, OrderAnalyticsFilter{Frequency: FreqQuarterly})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, quarter := range []int{1, 2, 3} {
		require.Equal(t, quarter, rows[i].Period.Quarter)
		require.Equal(t, 1, rows[i].OrderCount)
	}
	require.InDelta(t, 200, rows[1].TotalAmount, 0.0001)
}

func TestOrderAnalyticsDateRange(t *testing.T) {
	repo := seedRepo()
	repo.orders = []testOrder{
		{id: 1, tenantID: 7, customerID: 10, createdAt: day(time.January, 5), total: 100},
		{id: 2, tenantID: 7, customerID: 10, createdAt: day(time.June, 5), total: 200},
	}
	svc := NewService(repo, nil)

	rng, err := ParseDateRange("2024-05-01", "2024-06-30")
	require.NoError(t, err)

	rows, err := svc.OrderAnalytics(context.Background(), 7, OrderAnalyticsFilter{Range: rng})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.InDelta(t, 200, rows[0].TotalAmount, 0.0001)
}

func TestGetSummaryFansOut(t *testing.T) {
	repo := seedRepo()
	repo.orders = []testOrder{
		{id: 1, tenantID: 7, customerID: 10, createdAt: day(time.May, 2), total: 20,
			lines: []testLine{{productID: 1, quantity: 2, price: 10, total: 20}}},
	}
	svc := NewService(repo, nil)

	summary, err := svc.GetSummary(context.Background(), 7, DateRange{}, FreqMonthly)
	require.NoError(t, err)
	require.Len(t, summary.ProductSales, 1)
	require.Len(t, summary.CustomerSales, 1)
	require.Len(t, summary.OrderAnalytics, 1)
}

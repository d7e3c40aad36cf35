package catalog

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

type memoryRepo struct {
	nextID   int64
	products map[int64]Product
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, products: map[int64]Product{}}
}

func (m *memoryRepo) Create(_ context.Context, p Product) (int64, error) {
	p.ID = m.nextID
	m.nextID++
	m.products[p.ID] = p
	return p.ID, nil
}

func (m *memoryRepo) Get(_ context.Context, tenantID, id int64) (*Product, error) {
	p, ok := m.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (m *memoryRepo) List(_ context.Context, tenantID int64, req ListProductsRequest) ([]Product, int, error) {
	var out []Product
	for _, p := range m.products {
		if p.TenantID != tenantID {
			continue
		}
		if req.Category != "" && p.Category != req.Category {
			continue
		}
		if req.Brand != "" && p.Brand != req.Brand {
			continue
		}
		if req.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(req.Search)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (m *memoryRepo) Update(_ context.Context, tenantID, id int64, updates map[string]interface{}) error {
	p, ok := m.products[id]
	if !ok || p.TenantID != tenantID {
		return shared.ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := updates["price"]; ok {
		p.Price = v.(float64)
	}
	if v, ok := updates["category"]; ok {
		p.Category = v.(string)
	}
	if v, ok := updates["brand"]; ok {
		p.Brand = v.(string)
	}
	m.products[id] = p
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, tenantID, id int64) error {
	p, ok := m.products[id]
	if !ok || p.TenantID != tenantID {
		return shared.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func TestProductCreateAndGet(t *testing.T) {
	svc := NewService(newMemoryRepo())

	created, err := svc.Create(context.Background(), 1, CreateProductRequest{
		Name: "Widget", Price: 9.99, Category: "tools", Brand: "acme",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.TenantID)
	require.Equal(t, "Widget", created.Name)

	fetched, err := svc.Get(context.Background(), 1, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
}

func TestProductNegativePriceRejected(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), 1, CreateProductRequest{Name: "Widget", Price: -1})
	require.ErrorIs(t, err, shared.ErrValidation)

	created, err := svc.Create(context.Background(), 1, CreateProductRequest{Name: "Widget", Price: 5})
	require.NoError(t, err)

	bad := -3.0
	_, err = svc.Update(context.Background(), 1, created.ID, UpdateProductRequest{Price: &bad})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestProductTenantIsolation(t *testing.T) {
	svc := NewService(newMemoryRepo())

	created, err := svc.Create(context.Background(), 1, CreateProductRequest{Name: "Widget", Price: 5})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 2, created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	err = svc.Delete(context.Background(), 2, created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	items, _, err := svc.List(context.Background(), 2, ListProductsRequest{})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestProductListFilters(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateProductRequest{Name: "Hammer", Price: 10, Category: "tools", Brand: "acme"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, CreateProductRequest{Name: "Notebook", Price: 3, Category: "office", Brand: "acme"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, CreateProductRequest{Name: "Saw", Price: 15, Category: "tools", Brand: "other"})
	require.NoError(t, err)

	items, _, err := svc.List(ctx, 1, ListProductsRequest{Category: "tools"})
	require.NoError(t, err)
	require.Len(t, items, 2)

	items, _, err = svc.List(ctx, 1, ListProductsRequest{Category: "tools", Brand: "acme"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Hammer", items[0].Name)

	items, _, err = svc.List(ctx, 1, ListProductsRequest{Search: "note"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Notebook", items[0].Name)
}

func TestProductPartialUpdate(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateProductRequest{Name: "Hammer", Price: 10, Category: "tools"})
	require.NoError(t, err)

	newPrice := 12.5
	updated, err := svc.Update(ctx, 1, created.ID, UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	require.Equal(t, 12.5, updated.Price)
	require.Equal(t, "Hammer", updated.Name)
	require.Equal(t, "tools", updated.Category)
}

package partners

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

type memoryCustomerRepo struct {
	nextID    int64
	customers map[int64]Customer
}

func newMemoryCustomerRepo() *memoryCustomerRepo {
	return &memoryCustomerRepo{nextID: 1, customers: map[int64]Customer{}}
}

func (m *memoryCustomerRepo) Create(_ context.Context, c Customer) (int64, error) {
	c.ID = m.nextID
	m.nextID++
	m.customers[c.ID] = c
	return c.ID, nil
}

func (m *memoryCustomerRepo) Get(_ context.Context, tenantID, id int64) (*Customer, error) {
	c, ok := m.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	if c.Addresses == nil {
		c.Addresses = []Address{}
	}
	return &c, nil
}

func (m *memoryCustomerRepo) List(_ context.Context, tenantID int64, req ListPartiesRequest) ([]Customer, int, error) {
	var out []Customer
	for _, c := range m.customers {
		if c.TenantID != tenantID {
			continue
		}
		if req.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(req.Search)) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (m *memoryCustomerRepo) Update(_ context.Context, tenantID, id int64, updates map[string]interface{}) error {
	c, ok := m.customers[id]
	if !ok || c.TenantID != tenantID {
		return shared.ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		c.Name = v.(string)
	}
	if v, ok := updates["email"]; ok {
		c.Email = v.(string)
	}
	if v, ok := updates["phone"]; ok {
		c.Phone = v.(string)
	}
	m.customers[id] = c
	return nil
}

func (m *memoryCustomerRepo) Delete(_ context.Context, tenantID, id int64) error {
	c, ok := m.customers[id]
	if !ok || c.TenantID != tenantID {
		return shared.ErrNotFound
	}
	delete(m.customers, id)
	return nil
}

func (m *memoryCustomerRepo) AddAddress(_ context.Context, tenantID, customerID int64, addr Address) error {
	c, ok := m.customers[customerID]
	if !ok || c.TenantID != tenantID {
		return shared.ErrNotFound
	}
	c.Addresses = append(c.Addresses, addr)
	m.customers[customerID] = c
	return nil
}

func (m *memoryCustomerRepo) UpdateAddress(_ context.Context, tenantID, customerID int64, addr Address) error {
	c, ok := m.customers[customerID]
	if !ok || c.TenantID != tenantID {
		return shared.ErrNotFound
	}
	for i := range c.Addresses {
		if c.Addresses[i].ID == addr.ID {
			c.Addresses[i] = addr
			m.customers[customerID] = c
			return nil
		}
	}
	return shared.ErrNotFound
}

func (m *memoryCustomerRepo) DeleteAddress(_ context.Context, tenantID, customerID int64, addressID string) error {
	c, ok := m.customers[customerID]
	if !ok || c.TenantID != tenantID {
		return shared.ErrNotFound
	}
	for i := range c.Addresses {
		if c.Addresses[i].ID == addressID {
			c.Addresses = append(c.Addresses[:i], c.Addresses[i+1:]...)
			m.customers[customerID] = c
			return nil
		}
	}
	return shared.ErrNotFound
}

func TestCustomerCreateGeneratesAddressIDs(t *testing.T) {
	svc := NewCustomerService(newMemoryCustomerRepo())

	created, err := svc.Create(context.Background(), 1, CreatePartyRequest{
		Name: "Acme Retail",
		Addresses: []AddressPayload{
			{Street: "1 Main St", City: "Springfield"},
			{Street: "2 Side St", City: "Shelbyville"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Addresses, 2)
	require.NotEmpty(t, created.Addresses[0].ID)
	require.NotEmpty(t, created.Addresses[1].ID)
	require.NotEqual(t, created.Addresses[0].ID, created.Addresses[1].ID)
}

func TestCustomerAddressLifecycle(t *testing.T) {
	svc := NewCustomerService(newMemoryCustomerRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreatePartyRequest{Name: "Acme Retail"})
	require.NoError(t, err)
	require.Empty(t, created.Addresses)

	withAddr, err := svc.AddAddress(ctx, 1, created.ID, AddressPayload{Street: "1 Main St", City: "Springfield"})
	require.NoError(t, err)
	require.Len(t, withAddr.Addresses, 1)
	addrID := withAddr.Addresses[0].ID

	updated, err := svc.UpdateAddress(ctx, 1, created.ID, addrID, AddressPayload{Street: "9 New St", City: "Springfield"})
	require.NoError(t, err)
	require.Equal(t, "9 New St", updated.Addresses[0].Street)
	require.Equal(t, addrID, updated.Addresses[0].ID)

	emptied, err := svc.DeleteAddress(ctx, 1, created.ID, addrID)
	require.NoError(t, err)
	require.Empty(t, emptied.Addresses)

	_, err = svc.DeleteAddress(ctx, 1, created.ID, addrID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCustomerAddressTenantScoped(t *testing.T) {
	svc := NewCustomerService(newMemoryCustomerRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreatePartyRequest{Name: "Acme Retail"})
	require.NoError(t, err)

	_, err = svc.AddAddress(ctx, 2, created.ID, AddressPayload{Street: "1 Main St", City: "Springfield"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCustomerUpdateScalars(t *testing.T) {
	svc := NewCustomerService(newMemoryCustomerRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreatePartyRequest{Name: "Acme Retail", Email: "old@acme.test"})
	require.NoError(t, err)

	email := "new@acme.test"
	updated, err := svc.Update(ctx, 1, created.ID, UpdatePartyRequest{Email: &email})
	require.NoError(t, err)
	require.Equal(t, "new@acme.test", updated.Email)
	require.Equal(t, "Acme Retail", updated.Name)
}

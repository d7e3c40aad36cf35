package partners

import (
	"context"

	"github.com/google/uuid"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

// CustomerService implements customer CRUD and the address
// sub-collection operations.
type CustomerService struct {
	repo CustomerRepository
}

func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) Create(ctx context.Context, tenantID int64, req CreatePartyRequest) (*Customer, error) {
	customer := Customer{
		TenantID:  tenantID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Addresses: buildAddresses(req.Addresses),
	}
	id, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *CustomerService) Get(ctx context.Context, tenantID, id int64) (*Customer, error) {
	return s.repo.Get(ctx, tenantID, id)
}

func (s *CustomerService) List(ctx context.Context, tenantID int64, req ListPartiesRequest) ([]Customer, shared.Pagination, error) {
	customers, total, err := s.repo.List(ctx, tenantID, req)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return customers, shared.NewPagination(req.Page, req.Limit, total), nil
}

func (s *CustomerService) Update(ctx context.Context, tenantID, id int64, req UpdatePartyRequest) (*Customer, error) {
	updates := partyUpdates(req)
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, tenantID, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *CustomerService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *CustomerService) AddAddress(ctx context.Context, tenantID, customerID int64, req AddressPayload) (*Customer, error) {
	addr := newAddress(req)
	if err := s.repo.AddAddress(ctx, tenantID, customerID, addr); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, tenantID, customerID)
}

func (s *CustomerService) UpdateAddress(ctx context.Context, tenantID, customerID int64, addressID string, req AddressPayload) (*Customer, error) {
	addr := Address{
		ID:         addressID,
		Street:     req.Street,
		Street2:    req.Street2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
	}
	if err := s.repo.UpdateAddress(ctx, tenantID, customerID, addr); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, tenantID, customerID)
}

func (s *CustomerService) DeleteAddress(ctx context.Context, tenantID, customerID int64, addressID string) (*Customer, error) {
	if err := s.repo.DeleteAddress(ctx, tenantID, customerID, addressID); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, tenantID, customerID)
}

func newAddress(req AddressPayload) Address {
	return Address{
		ID:         uuid.NewString(),
		Street:     req.Street,
		Street2:    req.Street2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
	}
}

func buildAddresses(payloads []AddressPayload) []Address {
	addresses := make([]Address, 0, len(payloads))
	for _, p := range payloads {
		addresses = append(addresses, newAddress(p))
	}
	return addresses
}

func partyUpdates(req UpdatePartyRequest) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	return updates
}

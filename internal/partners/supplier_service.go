package partners

import (
	"context"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

// SupplierService mirrors CustomerService for vendors.
type SupplierService struct {
	repo SupplierRepository
}

func NewSupplierService(repo SupplierRepository) *SupplierService {
	return &SupplierService{repo: repo}
}

func (s *SupplierService) Create(ctx context.Context, tenantID int64, req CreatePartyRequest) (*Supplier, error) {
	supplier := Supplier{
		TenantID:  tenantID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Addresses: buildAddresses(req.Addresses),
	}
	id, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *SupplierService) Get(ctx context.Context, tenantID, id int64) (*Supplier, error) {
	return s.repo.Get(ctx, tenantID, id)
}

func (s *SupplierService) List(ctx context.Context, tenantID int64, req ListPartiesRequest) ([]Supplier, shared.Pagination, error) {
	suppliers, total, err := s.repo.List(ctx, tenantID, req)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return suppliers, shared.NewPagination(req.Page, req.Limit, total), nil
}

func (s *SupplierService) Update(ctx context.Context, tenantID, id int64, req UpdatePartyRequest) (*Supplier, error) {
	updates := partyUpdates(req)
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, tenantID, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *SupplierService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *SupplierService) AddAddress(ctx context.Context, tenantID, supplierID int64, req AddressPayload) (*Supplier, error) {
	addr := newAddress(req)
	if err := s.repo.AddAddress(ctx, tenantID, supplierID, addr); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, tenantID, supplierID)
}

func (s *SupplierService) UpdateAddress(ctx context.Context, tenantID, supplierID int64, addressID string, req AddressPayload) (*Supplier, error) {
	addr := Address{
		ID:         addressID,
		Street:     req.Street,
		Street2:    req.Street2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
	}
	if err := s.repo.UpdateAddress(ctx, tenantID, supplierID, addr); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, tenantID, supplierID)
}

func (s *SupplierService) DeleteAddress(ctx context.Context, tenantID, supplierID int64, addressID string) (*Supplier, error) {
	if err := s.repo.DeleteAddress(ctx, tenantID, supplierID, addressID); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, tenantID, supplierID)
}

package stock

import (
	"time"

	"github.com/tradewind-erp/tradewind/internal/ledger"
)

// Status is the fulfilment state of a stock purchase.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Line is one purchased item on a stock entry.
type Line struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// Stock is a tenant-owned purchase-in entry. It shares the payment
// ledger semantics of an order, but against a supplier, and the
// supplier reference is optional.
type Stock struct {
	ID              int64          `json:"id"`
	TenantID        int64          `json:"tenantId"`
	SupplierID      *int64         `json:"supplierId,omitempty"`
	Lines           []Line         `json:"lines"`
	Total           float64        `json:"total"`
	Description     string         `json:"description,omitempty"`
	ShippingAddress string         `json:"shippingAddress,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	Email           string         `json:"email,omitempty"`
	HasInvoice      bool           `json:"hasInvoice"`
	HasGST          bool           `json:"hasGst"`
	PaymentMethod   ledger.Method  `json:"paymentMethod"`
	StockStatus     Status         `json:"stockStatus"`
	PaymentStatus   ledger.Status  `json:"paymentStatus"`
	PaymentHistory  []ledger.Event `json:"paymentHistory"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

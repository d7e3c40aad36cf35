package orders

import (
	"time"

	"github.com/tradewind-erp/tradewind/internal/ledger"
)

// Status is the fulfilment state of an order. Transitions are free;
// payment state is tracked separately by the ledger.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Line is one sold item on an order.
type Line struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// Order is a tenant-owned sale. PaymentStatus and the
// RemainingAmount on each history event are derived by the ledger on
// every payment mutation, never stored from client input.
type Order struct {
	ID              int64          `json:"id"`
	TenantID        int64          `json:"tenantId"`
	CustomerID      int64          `json:"customerId"`
	Lines           []Line         `json:"lines"`
	Total           float64        `json:"total"`
	Description     string         `json:"description,omitempty"`
	ShippingAddress string         `json:"shippingAddress,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	Email           string         `json:"email,omitempty"`
	HasInvoice      bool           `json:"hasInvoice"`
	HasGST          bool           `json:"hasGst"`
	PaymentMethod   ledger.Method  `json:"paymentMethod"`
	OrderStatus     Status         `json:"orderStatus"`
	PaymentStatus   ledger.Status  `json:"paymentStatus"`
	PaymentHistory  []ledger.Event `json:"paymentHistory"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

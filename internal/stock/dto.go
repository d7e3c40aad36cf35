package stock

import (
	"time"

	"github.com/tradewind-erp/tradewind/internal/ledger"
)

// LinePayload is one line item in a create or update request. Total
// defaults to quantity times price.
type LinePayload struct {
	ProductID int64    `json:"product" validate:"required"`
	Quantity  float64  `json:"quantity" validate:"gt=0"`
	Price     float64  `json:"price" validate:"gte=0"`
	Total     *float64 `json:"total" validate:"omitempty,gte=0"`
}

// PaymentPayload is one payment event supplied by the client.
type PaymentPayload struct {
	Date          *time.Time    `json:"date"`
	CreditAmount  float64       `json:"creditAmount" validate:"gt=0"`
	PaymentMethod ledger.Method `json:"paymentMethod" validate:"required"`
	Receiver      *string       `json:"receiver"`
}

// CreateStockRequest is the POST /stocks payload. Supplier is
// optional.
type CreateStockRequest struct {
	SupplierID      *int64           `json:"supplier"`
	Lines           []LinePayload    `json:"lines" validate:"required,min=1,dive"`
	Total           *float64         `json:"total" validate:"omitempty,gte=0"`
	Description     string           `json:"description"`
	ShippingAddress string           `json:"shippingAddress"`
	Phone           string           `json:"phone" validate:"max=20"`
	Email           string           `json:"email" validate:"omitempty,email"`
	HasInvoice      bool             `json:"hasInvoice"`
	HasGST          bool             `json:"hasGst"`
	PaymentMethod   ledger.Method    `json:"paymentMethod"`
	StockStatus     Status           `json:"stockStatus"`
	PaymentStatus   ledger.Status    `json:"paymentStatus"`
	PaymentHistory  []PaymentPayload `json:"paymentHistory" validate:"dive"`
}

// UpdateStockRequest carries partial updates.
type UpdateStockRequest struct {
	SupplierID      *int64         `json:"supplier"`
	Lines           []LinePayload  `json:"lines" validate:"omitempty,min=1,dive"`
	Total           *float64       `json:"total" validate:"omitempty,gte=0"`
	Description     *string        `json:"description"`
	ShippingAddress *string        `json:"shippingAddress"`
	Phone           *string        `json:"phone" validate:"omitempty,max=20"`
	Email           *string        `json:"email" validate:"omitempty,email"`
	HasInvoice      *bool          `json:"hasInvoice"`
	HasGST          *bool          `json:"hasGst"`
	PaymentMethod   *ledger.Method `json:"paymentMethod"`
}

// UpdateStatusRequest is the PATCH /stocks/{id}/status payload.
type UpdateStatusRequest struct {
	StockStatus Status `json:"stockStatus" validate:"required"`
}

// ListStocksRequest holds the query filters for GET /stocks.
type ListStocksRequest struct {
	SupplierID    *int64
	StockStatus   *Status
	PaymentStatus *ledger.Status
	Page          int
	Limit         int
}

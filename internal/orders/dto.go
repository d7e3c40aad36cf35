package orders

import (
	"time"

	"github.com/tradewind-erp/tradewind/internal/ledger"
)

// LinePayload is one line item in a create or update request. Total is
// optional; it defaults to quantity times price.
type LinePayload struct {
	ProductID int64    `json:"product" validate:"required"`
	Quantity  float64  `json:"quantity" validate:"gt=0"`
	Price     float64  `json:"price" validate:"gte=0"`
	Total     *float64 `json:"total" validate:"omitempty,gte=0"`
}

// PaymentPayload is one payment event supplied by the client. The
// remaining amount is always recomputed server side.
type PaymentPayload struct {
	Date          *time.Time    `json:"date"`
	CreditAmount  float64       `json:"creditAmount" validate:"gt=0"`
	PaymentMethod ledger.Method `json:"paymentMethod" validate:"required"`
	Receiver      *string       `json:"receiver"`
}

// CreateOrderRequest is the POST /orders payload. Total defaults to
// the sum of line totals when omitted.
type CreateOrderRequest struct {
	CustomerID      int64            `json:"customer" validate:"required"`
	Lines           []LinePayload    `json:"lines" validate:"required,min=1,dive"`
	Total           *float64         `json:"total" validate:"omitempty,gte=0"`
	Description     string           `json:"description"`
	ShippingAddress string           `json:"shippingAddress"`
	Phone           string           `json:"phone" validate:"max=20"`
	Email           string           `json:"email" validate:"omitempty,email"`
	HasInvoice      bool             `json:"hasInvoice"`
	HasGST          bool             `json:"hasGst"`
	PaymentMethod   ledger.Method    `json:"paymentMethod"`
	OrderStatus     Status           `json:"orderStatus"`
	PaymentStatus   ledger.Status    `json:"paymentStatus"`
	PaymentHistory  []PaymentPayload `json:"paymentHistory" validate:"dive"`
}

// UpdateOrderRequest carries partial updates. The tenant reference and
// payment history are never updatable through this path.
type UpdateOrderRequest struct {
	CustomerID      *int64        `json:"customer"`
	Lines           []LinePayload `json:"lines" validate:"omitempty,min=1,dive"`
	Total           *float64      `json:"total" validate:"omitempty,gte=0"`
	Description     *string       `json:"description"`
	ShippingAddress *string       `json:"shippingAddress"`
	Phone           *string       `json:"phone" validate:"omitempty,max=20"`
	Email           *string       `json:"email" validate:"omitempty,email"`
	HasInvoice      *bool         `json:"hasInvoice"`
	HasGST          *bool         `json:"hasGst"`
	PaymentMethod   *ledger.Method `json:"paymentMethod"`
}

// UpdateStatusRequest is the PATCH /orders/{id}/status payload.
type UpdateStatusRequest struct {
	OrderStatus Status `json:"orderStatus" validate:"required"`
}

// ListOrdersRequest holds the query filters for GET /orders.
type ListOrdersRequest struct {
	CustomerID    *int64
	OrderStatus   *Status
	PaymentStatus *ledger.Status
	Page          int
	Limit         int
}

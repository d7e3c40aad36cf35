// Package ledger derives remaining amounts and an aggregate payment
// status from an ordered payment history. Orders and stock purchases
// share the exact same history shape and status vocabulary, so both
// services delegate here on every mutation of payment history.
package ledger

import "time"

// Status is the aggregate payment state of an order or stock purchase.
type Status string

const (
	StatusPending       Status = "pending"
	StatusPaid          Status = "paid"
	StatusPartiallyPaid Status = "partially_paid"
	StatusFailed        Status = "failed"
)

// ValidStatus reports whether s is a known payment status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusPaid, StatusPartiallyPaid, StatusFailed:
		return true
	}
	return false
}

// Method is the payment channel recorded on an event.
type Method string

const (
	MethodCash   Method = "cash"
	MethodOnline Method = "online"
	MethodOther  Method = "other"
)

// ValidMethod reports whether m is a known payment method.
func ValidMethod(m Method) bool {
	switch m {
	case MethodCash, MethodOnline, MethodOther:
		return true
	}
	return false
}

// Event is one entry in a payment history. Ordering is insertion order.
// RemainingAmount is derived, never trusted from the caller.
type Event struct {
	Date            time.Time `json:"date"`
	CreditAmount    float64   `json:"creditAmount"`
	PaymentMethod   Method    `json:"paymentMethod"`
	RemainingAmount float64   `json:"remainingAmount"`
	Receiver        *string   `json:"receiver,omitempty"`
}

// Reconcile walks events in order, maintaining the cumulative paid
// amount, and sets each event's RemainingAmount to
// max(0, total - cumulative paid up to and including that event).
// The returned slice is a copy; the input is never mutated.
//
// The final status follows the cumulative comparison, with >= rather
// than equality so float drift cannot leave a fully paid entity stuck
// between states:
//
//	cumulative >= total and total > 0  -> paid
//	cumulative > 0                     -> partially_paid
//	otherwise                          -> pending
//
// When events is empty the fallback status is returned unchanged
// (callers pass their stored or requested status, or StatusPending).
func Reconcile(total float64, events []Event, fallback Status) (Status, []Event) {
	if len(events) == 0 {
		if !ValidStatus(fallback) {
			fallback = StatusPending
		}
		return fallback, nil
	}

	enriched := make([]Event, len(events))
	copy(enriched, events)

	var paid float64
	for i := range enriched {
		paid += enriched[i].CreditAmount
		remaining := total - paid
		if remaining < 0 {
			remaining = 0
		}
		enriched[i].RemainingAmount = remaining
	}

	switch {
	case paid >= total && total > 0:
		return StatusPaid, enriched
	case paid > 0:
		return StatusPartiallyPaid, enriched
	default:
		return StatusPending, enriched
	}
}

// Append adds one event to an existing history and reconciles the whole
// list. The incremental path deliberately re-walks the full history so
// a bad stored remainder can never propagate into the derived status.
func Append(total float64, history []Event, event Event) (Status, []Event) {
	combined := make([]Event, 0, len(history)+1)
	combined = append(combined, history...)
	combined = append(combined, event)
	return Reconcile(total, combined, StatusPending)
}

// TotalPaid sums the credit amounts of a history.
func TotalPaid(events []Event) float64 {
	var paid float64
	for _, e := range events {
		paid += e.CreditAmount
	}
	return paid
}

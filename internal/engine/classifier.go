package engine

import "strings"

// Status enum constants. Exactly one applies to every non-cancelled order.
const (
	StatusDelivered = "DELIVERED"
	StatusFailed    = "FAILED"
	StatusPending   = "PENDING"
)

// Classify resolves the economic status of an order. Priority order:
//
//  1. Operator RTO override — beats every courier signal.
//  2. Courier failure text: "failure", or anything containing "failed"/"rto".
//  3. Courier "delivered".
//  4. Prepaid shortcut: money is already captured, so an undelivered prepaid
//     order is recognized as DELIVERED for revenue purposes; the delivery risk
//     is operational, not financial.
//  5. Everything else is PENDING — no revenue, no NDR cost yet.
func Classify(o Order, rtoSet map[string]bool) string {
	if rtoSet[o.ID] {
		return StatusFailed
	}

	ds := strings.ToLower(strings.TrimSpace(o.DeliveryStatus))
	if ds == "failure" || strings.Contains(ds, "failed") || strings.Contains(ds, "rto") {
		return StatusFailed
	}
	if ds == "delivered" {
		return StatusDelivered
	}
	if NormalizePayment(o.PaymentMethod) == PaymentPrepaid {
		return StatusDelivered
	}
	return StatusPending
}

// IsFinal reports whether a status participates in the NDR-rate population.
func IsFinal(status string) bool {
	return status == StatusDelivered || status == StatusFailed
}

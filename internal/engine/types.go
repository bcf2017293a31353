// Package engine computes order economics for the dashboard: status
// classification, cost allocation, ad-spend amortization, P&L aggregation and
// profit projection. It is a pure package — no I/O, no persistence, no clock;
// identical inputs always produce identical reports.
package engine

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enum constants
const (
	PaymentPrepaid = "PREPAID"
	PaymentCOD     = "COD"
)

// LineItem is one ordered product line.
type LineItem struct {
	Title        string
	VariantTitle string
	Quantity     int
}

// ShippingBreakdown holds the courier's five named charge components.
type ShippingBreakdown struct {
	ForwardFreight   decimal.Decimal
	CODFreight       decimal.Decimal
	RTOFreight       decimal.Decimal
	MessagingCharges decimal.Decimal
	OtherCharges     decimal.Decimal
}

// Order is the engine's view of one order from the channel feed. Cancelled
// orders never participate in any calculation.
type Order struct {
	ID                 string
	PlacedAt           time.Time // UTC instant; bucketed into the store calendar
	Cancelled          bool
	FulfillmentStatus  string
	DeliveryStatus     string // free-form courier status, may be empty
	PaymentMethod      string // raw feed value, normalized via NormalizePayment
	TotalPrice         decimal.Decimal
	Items              []LineItem
	Shipping           *ShippingBreakdown
	FlatShippingCharge decimal.Decimal // fallback when no breakdown is present
}

// NormalizePayment maps the raw feed value onto PREPAID/COD. Anything
// unrecognized is treated as COD, the channel's default.
func NormalizePayment(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), "prepaid") {
		return PaymentPrepaid
	}
	return PaymentCOD
}

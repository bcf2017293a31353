package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod raw feed values (normalized inside the engine)
const (
	PaymentMethodPrepaid = "prepaid"
	PaymentMethodCOD     = "cod"
)

// Order is one order synced from the sales channel feed. The channel's own id
// is the primary key so re-syncs upsert instead of duplicating. Orders are
// read-only inputs to the economics engine — nothing derived from them is
// stored back.
type Order struct {
	ID                 string                `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name               string                `gorm:"type:varchar(64)" json:"name"` // display number, e.g. "#1042"
	PlacedAt           time.Time             `gorm:"not null;index" json:"placed_at"`
	CancelledAt        *time.Time            `json:"cancelled_at"` // set = excluded from every calculation
	FulfillmentStatus  *string               `gorm:"type:varchar(50)" json:"fulfillment_status"`
	DeliveryStatus     *string               `gorm:"type:varchar(50)" json:"delivery_status"` // free-form courier text
	PaymentMethod      string                `gorm:"type:varchar(20);not null;default:'cod'" json:"payment_method"`
	TotalPrice         decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0" json:"total_price"`
	FlatShippingCharge decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0" json:"flat_shipping_charge"`
	Items              []OrderItem           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingCharges    *OrderShippingCharges `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"shipping_charges,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// OrderItem is one ordered line.
type OrderItem struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID      string    `gorm:"type:varchar(64);not null;index" json:"order_id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	VariantTitle string    `gorm:"type:varchar(255)" json:"variant_title"`
	Quantity     int       `gorm:"type:int;not null;default:1" json:"quantity"`
}

// OrderShippingCharges is the courier's charge breakdown for one order.
type OrderShippingCharges struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID          string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_id"`
	ForwardFreight   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"forward_freight"`
	CODFreight       decimal.Decimal `gorm:"column:cod_freight;type:decimal(18,2);not null;default:0" json:"cod_freight"`
	RTOFreight       decimal.Decimal `gorm:"column:rto_freight;type:decimal(18,2);not null;default:0" json:"rto_freight"`
	MessagingCharges decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"messaging_charges"`
	OtherCharges     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"other_charges"`
}

// OrderOverride carries the operator's manual flags for one order: force-fail
// it (RTO) or hide it from sales-facing aggregates (discard).
type OrderOverride struct {
	OrderID     string    `gorm:"type:varchar(64);primaryKey" json:"order_id"`
	IsRTO       bool      `gorm:"column:is_rto;not null;default:false" json:"is_rto"`
	IsDiscarded bool      `gorm:"not null;default:false" json:"is_discarded"`
	UpdatedAt   time.Time `json:"updated_at"`
}

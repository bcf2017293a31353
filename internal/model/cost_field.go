package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CostFieldType enum constants — which order classification the field bills
const (
	CostTypeCOGS = "COGS"
	CostTypeNDR  = "NDR"
	CostTypeBoth = "BOTH"
)

// CalculationType enum constants
const (
	CalcTypeFixed      = "FIXED"
	CalcTypePercentage = "PERCENTAGE"
)

// PercentageType enum constants
const (
	PercentageTypeExcluded = "EXCLUDED"
	PercentageTypeIncluded = "INCLUDED"
)

// CostField is one component of the store's cost model. The four values form
// an explicit variant × payment-method grid; exactly one cell applies per
// order, selected by the engine. Explicit columns instead of a name-keyed map
// keep typos out of the lookup path.
type CostField struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string          `gorm:"type:varchar(100);not null" json:"name"`
	Type            string          `gorm:"type:varchar(10);not null" json:"type"`                               // COGS, NDR, BOTH
	CalculationType string          `gorm:"type:varchar(15);not null;default:'FIXED'" json:"calculation_type"`   // FIXED, PERCENTAGE
	PercentageType  string          `gorm:"type:varchar(10);not null;default:'EXCLUDED'" json:"percentage_type"` // EXCLUDED, INCLUDED
	SmallPrepaid    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"small_prepaid"`
	SmallCOD        decimal.Decimal `gorm:"column:small_cod;type:decimal(18,2);not null;default:0" json:"small_cod"`
	LargePrepaid    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"large_prepaid"`
	LargeCOD        decimal.Decimal `gorm:"column:large_cod;type:decimal(18,2);not null;default:0" json:"large_cod"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

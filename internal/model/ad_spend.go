package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdSpendEntry is one day's recorded ad spend. SpendDate is a store-local
// calendar date kept as a plain YYYY-MM-DD string — storing it as a timestamp
// would let timezone conversion shift it onto the wrong day. Multiple entries
// per date are legal; the engine sums them.
type AdSpendEntry struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SpendDate string          `gorm:"type:varchar(10);not null;index" json:"spend_date"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Note      string          `gorm:"type:text" json:"note"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit action constants
const (
	ActionSyncOrders      = "SYNC_ORDERS"
	ActionMarkRTO         = "MARK_RTO"
	ActionUnmarkRTO       = "UNMARK_RTO"
	ActionDiscardOrder    = "DISCARD_ORDER"
	ActionRestoreOrder    = "RESTORE_ORDER"
	ActionCreateCostField = "CREATE_COST_FIELD"
	ActionUpdateCostField = "UPDATE_COST_FIELD"
	ActionDeleteCostField = "DELETE_COST_FIELD"
	ActionCreateAdSpend   = "CREATE_AD_SPEND"
	ActionUpdateAdSpend   = "UPDATE_AD_SPEND"
	ActionDeleteAdSpend   = "DELETE_AD_SPEND"
)

// AuditLog tracks Who, What, and When for every mutation that changes the
// economics of a report.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(64);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

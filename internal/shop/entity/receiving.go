package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receiving condition
const (
	ConditionGood       = "good"
	ConditionDamaged    = "damaged"
	ConditionWrongItem  = "wrong_item"
	ConditionIncomplete = "incomplete"
)

// Receiving is one discrete event of physically receiving goods against a
// line item. Records are append-only; updates and deletes exist only as an
// administrative correction path and always re-derive the item's received
// quantity from the surviving records.
type Receiving struct {
	ID     string `json:"id" gorm:"primaryKey;size:36"`
	ItemID string `json:"item_id" gorm:"size:36;not null;index"`

	Quantity     decimal.Decimal `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Condition    string          `json:"condition" gorm:"size:20;not null;default:good"`
	ReceivedBy   string          `json:"received_by" gorm:"size:64"`
	ReceivedDate time.Time       `json:"received_date" gorm:"not null"`
	Notes        string          `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Receiving) TableName() string {
	return "shop_receivings"
}

// ValidCondition reports whether c is one of the known receiving conditions.
func ValidCondition(c string) bool {
	switch c {
	case ConditionGood, ConditionDamaged, ConditionWrongItem, ConditionIncomplete:
		return true
	}
	return false
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part is a catalog entry in the shop's inventory. PO line items snapshot
// the identity fields at order time, so catalog edits never rewrite history.
type Part struct {
	ID           string `json:"id" gorm:"primaryKey;size:36"`
	PartNumber   string `json:"part_number" gorm:"size:64;uniqueIndex;not null"`
	Name         string `json:"name" gorm:"size:200;not null"`
	Manufacturer string `json:"manufacturer" gorm:"size:100"`
	Category     string `json:"category" gorm:"size:64;index"`
	Location     string `json:"location" gorm:"size:64"` // bin/shelf

	UnitCost       decimal.Decimal `json:"unit_cost" gorm:"type:decimal(12,4);default:0"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand" gorm:"type:decimal(12,4);default:0"`
	ReorderLevel   decimal.Decimal `json:"reorder_level" gorm:"type:decimal(12,4);default:0"`

	Notes string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Part) TableName() string {
	return "shop_parts"
}

// BelowReorder reports whether on-hand stock is at or under the reorder
// level. A zero reorder level disables the check.
func (p *Part) BelowReorder() bool {
	if p.ReorderLevel.IsZero() {
		return false
	}
	return p.QuantityOnHand.LessThanOrEqual(p.ReorderLevel)
}

// Engine is a customer's engine worked on by job tickets.
type Engine struct {
	ID         string  `json:"id" gorm:"primaryKey;size:36"`
	CustomerID *string `json:"customer_id" gorm:"size:36;index"`

	Make         string `json:"make" gorm:"size:100"`
	Model        string `json:"model" gorm:"size:100"`
	SerialNumber string `json:"serial_number" gorm:"size:100;index"`
	Cylinders    int    `json:"cylinders" gorm:"default:0"`
	Notes        string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Engine) TableName() string {
	return "shop_engines"
}

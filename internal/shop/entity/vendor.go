package entity

import "time"

// Vendor status
const (
	VendorStatusActive   = "active"
	VendorStatusInactive = "inactive"
)

// Vendor supplies parts ordered through purchasing. Deleting a vendor is
// blocked while purchase orders reference it; historical orders keep their
// own snapshot of the vendor name.
type Vendor struct {
	ID      string `json:"id" gorm:"primaryKey;size:36"`
	Code    string `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name    string `json:"name" gorm:"size:200;not null"`
	Contact string `json:"contact" gorm:"size:100"`
	Phone   string `json:"phone" gorm:"size:50"`
	Email   string `json:"email" gorm:"size:100"`

	Address string `json:"address" gorm:"size:300"`
	City    string `json:"city" gorm:"size:100"`
	State   string `json:"state" gorm:"size:50"`
	Zip     string `json:"zip" gorm:"size:20"`

	AccountNumber string `json:"account_number" gorm:"size:64"`
	Status        string `json:"status" gorm:"size:20;not null;default:active"`
	Notes         string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Vendor) TableName() string {
	return "shop_vendors"
}

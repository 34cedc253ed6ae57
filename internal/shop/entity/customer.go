package entity

import "time"

// Customer owns engines and job tickets. Deleting a customer is blocked
// while jobs reference it; jobs keep their own name/phone snapshot.
type Customer struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	Name      string `json:"name" gorm:"size:200;not null;index"`
	Company   string `json:"company" gorm:"size:200"`
	Phone     string `json:"phone" gorm:"size:50"`
	AltPhone  string `json:"alt_phone" gorm:"size:50"`
	Email     string `json:"email" gorm:"size:100"`

	Address string `json:"address" gorm:"size:300"`
	City    string `json:"city" gorm:"size:100"`
	State   string `json:"state" gorm:"size:50"`
	Zip     string `json:"zip" gorm:"size:20"`

	Notes string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Engines []Engine `json:"engines,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Customer) TableName() string {
	return "shop_customers"
}

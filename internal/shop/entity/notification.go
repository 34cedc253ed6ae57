package entity

import "time"

// Notification type
const (
	NotifyPOReceived   = "po_received"
	NotifyJobComplete  = "job_complete"
	NotifyPartLowStock = "part_low_stock"
)

// Notification is an internal message shown to a shop user.
type Notification struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	Recipient string `json:"recipient" gorm:"size:64;not null;index"`
	Type      string `json:"type" gorm:"size:32;not null"`
	Title     string `json:"title" gorm:"size:200;not null"`
	Body      string `json:"body" gorm:"type:text"`

	RefType string `json:"ref_type" gorm:"size:32"` // purchase_order, job, part
	RefID   string `json:"ref_id" gorm:"size:36"`

	Read   bool       `json:"read" gorm:"default:false;index"`
	ReadAt *time.Time `json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "shop_notifications"
}

package entity

import "time"

// Attachment is the metadata row for a file stored in object storage. The
// file body lives in the bucket under ObjectKey.
type Attachment struct {
	ID      string `json:"id" gorm:"primaryKey;size:36"`
	RefType string `json:"ref_type" gorm:"size:32;not null;index:idx_attachment_ref"` // purchase_order, job, receiving
	RefID   string `json:"ref_id" gorm:"size:36;not null;index:idx_attachment_ref"`

	FileName    string `json:"file_name" gorm:"size:255;not null"`
	ContentType string `json:"content_type" gorm:"size:100"`
	Size        int64  `json:"size"`
	ObjectKey   string `json:"object_key" gorm:"size:500;not null"`

	UploadedBy string    `json:"uploaded_by" gorm:"size:64"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Attachment) TableName() string {
	return "shop_attachments"
}

package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories is the shop repository set.
type Repositories struct {
	Vendor       *VendorRepository
	Customer     *CustomerRepository
	Part         *PartRepository
	Engine       *EngineRepository
	Job          *JobRepository
	PO           *PORepository
	Notification *NotificationRepository
	Attachment   *AttachmentRepository
}

// NewRepositories wires the repository set onto one gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Vendor:       NewVendorRepository(db),
		Customer:     NewCustomerRepository(db),
		Part:         NewPartRepository(db),
		Engine:       NewEngineRepository(db),
		Job:          NewJobRepository(db),
		PO:           NewPORepository(db),
		Notification: NewNotificationRepository(db),
		Attachment:   NewAttachmentRepository(db),
	}
}

// lockForUpdate adds a row-level lock on dialects that support it. SQLite
// (used by the test harness) serializes writers on its own and rejects
// FOR UPDATE syntax.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

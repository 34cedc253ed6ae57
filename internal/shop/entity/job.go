package entity

import "time"

// Job status
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusComplete   = "complete"
	JobStatusClosed     = "closed"
)

// Job is a shop job ticket. Customer name and phone are snapshotted when the
// ticket is opened, so later customer edits do not rewrite the ticket.
// Progress is derived from the stage flags, never stored.
type Job struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	JobNumber string `json:"job_number" gorm:"size:32;uniqueIndex;not null"`
	Status    string `json:"status" gorm:"size:20;not null;default:open"`

	CustomerID    *string `json:"customer_id" gorm:"size:36;index"`
	CustomerName  string  `json:"customer_name" gorm:"size:200"` // snapshot
	CustomerPhone string  `json:"customer_phone" gorm:"size:50"` // snapshot
	EngineID      *string `json:"engine_id" gorm:"size:36;index"`

	Description string `json:"description" gorm:"type:text"`

	// Shop stages
	Disassembled bool `json:"disassembled" gorm:"default:false"`
	Cleaned      bool `json:"cleaned" gorm:"default:false"`
	Inspected    bool `json:"inspected" gorm:"default:false"`
	Machined     bool `json:"machined" gorm:"default:false"`
	Assembled    bool `json:"assembled" gorm:"default:false"`
	Tested       bool `json:"tested" gorm:"default:false"`

	Progress int `json:"progress" gorm:"-"` // derived, filled on read

	AssignedTo    string     `json:"assigned_to" gorm:"size:64"`
	PromisedDate  *time.Time `json:"promised_date"`
	CompletedDate *time.Time `json:"completed_date"`
	Notes         string     `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Job) TableName() string {
	return "shop_jobs"
}

// ProgressPercent is the share of completed stage flags, 0-100.
func (j *Job) ProgressPercent() int {
	stages := []bool{j.Disassembled, j.Cleaned, j.Inspected, j.Machined, j.Assembled, j.Tested}
	done := 0
	for _, s := range stages {
		if s {
			done++
		}
	}
	return done * 100 / len(stages)
}

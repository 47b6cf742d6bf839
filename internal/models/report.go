package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report statuses. Transitions are one-shot: pending -> approved or
// pending -> rejected, nothing else.
const (
	ReportStatusPending  = "pending"
	ReportStatusApproved = "approved"
	ReportStatusRejected = "rejected"
)

// Report types carried over from the public submission form.
const (
	ReportTypeScam = "scam"
	ReportTypeSpam = "spam"
	ReportTypeSafe = "safe"
)

// Report is one user-submitted claim about a suspicious identifier.
type Report struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EntityKey   string     `gorm:"size:255;not null;index" json:"entity_key"`
	EntityType  string     `gorm:"size:20;not null" json:"entity_type"`
	EntityValue string     `gorm:"size:500;not null" json:"entity_value"`
	RawInput    string     `gorm:"size:500;not null" json:"raw_input"`
	ReportType  string     `gorm:"size:20;not null;default:'scam'" json:"report_type"`
	Category    string     `gorm:"size:100" json:"category,omitempty"`
	Region      string     `gorm:"size:100" json:"region,omitempty"`
	Description string     `gorm:"size:2000" json:"description,omitempty"`
	Amount      *float64   `json:"amount,omitempty"`
	Status      string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	// MergedAt is the aggregation marker: set exactly once when the report is
	// folded into its entity, so approve and backfill can never double-count.
	MergedAt  *time.Time `gorm:"index" json:"-"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

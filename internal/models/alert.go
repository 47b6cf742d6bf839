package models

import "time"

// Alert severities.
const (
	AlertSeverityInfo    = "info"
	AlertSeverityWarning = "warning"
	AlertSeverityDanger  = "danger"
)

// Alert is a derived public warning, keyed by the entity that triggered it.
// Stays active until a moderator deactivates it; there is no automatic expiry.
type Alert struct {
	Key          string    `gorm:"primaryKey;size:255" json:"key"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Message      string    `gorm:"size:2000;not null" json:"message"`
	Severity     string    `gorm:"size:20;not null;default:'info'" json:"severity"`
	Active       bool      `gorm:"not null;default:true;index" json:"active"`
	ReportsCount int       `gorm:"not null;default:0" json:"reports_count"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package models

import "time"

// Entity statuses.
const (
	EntityStatusUnconfirmed = "unconfirmed"
	EntityStatusConfirmed   = "confirmed"
)

// Entity is the aggregate of all approved reports sharing one key.
// Created lazily on the first approved report; never deleted.
type Entity struct {
	Key             string     `gorm:"primaryKey;size:255" json:"key"`
	Type            string     `gorm:"size:20;not null;index:idx_entities_type_value" json:"type"`
	Value           string     `gorm:"size:500;not null;index:idx_entities_type_value" json:"value"`
	DisplayValue    string     `gorm:"size:500" json:"display_value"`
	Country         *string    `gorm:"size:10" json:"country,omitempty"`
	FirstReportedAt *time.Time `json:"first_reported_at,omitempty"`
	LastReportedAt  *time.Time `json:"last_reported_at,omitempty"`
	Status          string     `gorm:"size:20;not null;default:'unconfirmed'" json:"status"`
	ConfirmedScam   bool       `gorm:"not null;default:false" json:"confirmed_scam"`
	ReportsCount    int        `gorm:"not null;default:0" json:"reports_count"`
	RiskScore       int        `gorm:"not null;default:0" json:"risk_score"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

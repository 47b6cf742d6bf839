package dto

import (
	"time"

	"github.com/safemm/safemm-backend/internal/models"
)

// Risk tiers, weakest to strongest.
const (
	RiskTierNone      = "none"
	RiskTierMixed     = "mixed"
	RiskTierMedium    = "medium"
	RiskTierHigh      = "high"
	RiskTierConfirmed = "confirmed"
)

// RiskView is the read-side answer to "is this identifier dangerous?".
type RiskView struct {
	Tier         string         `json:"tier"`
	ReportsCount int            `json:"reports_count"`
	Entity       *models.Entity `json:"entity,omitempty"`
}

// ConfirmedEntityRow is one display row of the public confirmed-scam list:
// approved scam reports grouped by entity key.
type ConfirmedEntityRow struct {
	Key        string     `json:"key"`
	Type       string     `json:"type"`
	Value      string     `json:"value"`
	Count      int        `json:"count"`
	Categories []string   `json:"categories,omitempty"`
	Regions    []string   `json:"regions,omitempty"`
	LastSeen   *time.Time `json:"last_seen,omitempty"`
}

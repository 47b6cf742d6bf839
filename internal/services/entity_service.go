package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/safemm/safemm-backend/internal/models"
	"github.com/safemm/safemm-backend/internal/normalize"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAlreadyMerged = errors.New("report already merged")
	ErrAlertNotFound = errors.New("alert not found")
)

// EntityService folds approved reports into entity aggregates and raises the
// public alert once an entity crosses the report threshold.
type EntityService struct {
	db        *gorm.DB
	threshold int
}

func NewEntityService(db *gorm.DB, threshold int) *EntityService {
	if threshold <= 0 {
		threshold = 3
	}
	return &EntityService{db: db, threshold: threshold}
}

// entityRef is the canonical (key, type, value) triple used for aggregation.
type entityRef struct {
	Key   string
	Type  string
	Value string
}

// entityRefOf adapts a report into the canonical triple. Rows imported from
// older schema versions may lack the derived columns; the fallback chain
// lives here and only here, so the rest of the aggregation logic never sees
// legacy field shapes.
func entityRefOf(r *models.Report) entityRef {
	t := r.EntityType
	if t == "" {
		t = normalize.TypeOther
	}
	v := r.EntityValue
	if v == "" {
		v = r.RawInput
	}
	key := r.EntityKey
	if key == "" {
		key = normalize.BuildKey(t, v)
	}
	return entityRef{Key: key, Type: t, Value: v}
}

// Merge folds one approved report into its entity. Safe to call repeatedly
// for the same report: the first call claims the report's merge marker, every
// later call returns ErrAlreadyMerged without touching the entity.
func (s *EntityService) Merge(report *models.Report) error {
	ref := entityRefOf(report)
	if ref.Value == "" {
		return errors.New("report has no entity value")
	}

	reportedAt := report.CreatedAt
	if reportedAt.IsZero() {
		reportedAt = time.Now().UTC()
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.Report{}).
			Where("id = ? AND merged_at IS NULL", report.ID).
			Update("merged_at", time.Now().UTC())
		if claim.Error != nil {
			return fmt.Errorf("failed to claim merge marker: %w", claim.Error)
		}
		if claim.RowsAffected == 0 {
			return ErrAlreadyMerged
		}

		entity := models.Entity{
			Key:             ref.Key,
			Type:            ref.Type,
			Value:           ref.Value,
			DisplayValue:    ref.Value,
			FirstReportedAt: &reportedAt,
			LastReportedAt:  &reportedAt,
			Status:          models.EntityStatusConfirmed,
			ConfirmedScam:   true,
			ReportsCount:    1,
		}
		// The counter bump happens inside the conflict clause as a single SQL
		// expression, so two concurrent approvals for the same key cannot
		// lose an increment.
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"type":              ref.Type,
				"value":             ref.Value,
				"display_value":     ref.Value,
				"first_reported_at": gorm.Expr("COALESCE(first_reported_at, ?)", reportedAt),
				"last_reported_at":  reportedAt,
				"status":            models.EntityStatusConfirmed,
				"confirmed_scam":    true,
				"reports_count":     gorm.Expr("reports_count + 1"),
				"updated_at":        time.Now().UTC(),
			}),
		}).Create(&entity).Error
		if err != nil {
			return fmt.Errorf("entity upsert failed: %w", err)
		}

		var current models.Entity
		if err := tx.First(&current, "key = ?", ref.Key).Error; err != nil {
			return fmt.Errorf("failed to reload entity: %w", err)
		}

		// The upsert holds the row lock for the rest of the transaction, so
		// this read-modify-write on the score is isolated.
		if score := clampScore(current.RiskScore + scoreDelta(report.ReportType)); score != current.RiskScore {
			if err := tx.Model(&models.Entity{}).Where("key = ?", ref.Key).
				Update("risk_score", score).Error; err != nil {
				return fmt.Errorf("failed to update risk score: %w", err)
			}
		}

		if current.ReportsCount >= s.threshold {
			if err := upsertAlert(tx, ref, current.ReportsCount); err != nil {
				return fmt.Errorf("alert upsert failed: %w", err)
			}
		}
		return nil
	})
}

func upsertAlert(tx *gorm.DB, ref entityRef, count int) error {
	alert := models.Alert{
		Key:   ref.Key,
		Title: fmt.Sprintf("Warning: Suspicious %s detected", strings.ToUpper(ref.Type)),
		Message: fmt.Sprintf(
			"This %s (%s) has %d verified community reports. Please double-check before sending money or sharing personal information.",
			ref.Type, ref.Value, count),
		Severity:     models.AlertSeverityDanger,
		Active:       true,
		ReportsCount: count,
	}
	// created_at is first-write-wins; everything else refreshes on each merge
	// past the threshold.
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"title":         alert.Title,
			"message":       alert.Message,
			"severity":      models.AlertSeverityDanger,
			"active":        true,
			"reports_count": count,
			"updated_at":    time.Now().UTC(),
		}),
	}).Create(&alert).Error
}

// DeactivateAlert turns an alert off; nothing in the aggregation path ever
// deactivates one automatically.
func (s *EntityService) DeactivateAlert(key string) error {
	res := s.db.Model(&models.Alert{}).Where("key = ?", key).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func scoreDelta(reportType string) int {
	switch reportType {
	case models.ReportTypeSpam:
		return 5
	case models.ReportTypeSafe:
		return -10
	default:
		return 15
	}
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

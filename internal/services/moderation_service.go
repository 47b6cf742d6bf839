package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/safemm/safemm-backend/internal/dto"
	"github.com/safemm/safemm-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrAlreadyReviewed = errors.New("report already reviewed")
)

// ModerationService owns the report state machine: pending -> approved or
// pending -> rejected, each exactly once. Approval hands the report to the
// entity aggregator.
type ModerationService struct {
	db       *gorm.DB
	entities *EntityService
	pageSize int
}

func NewModerationService(db *gorm.DB, entities *EntityService, pageSize int) *ModerationService {
	if pageSize <= 0 {
		pageSize = 200
	}
	return &ModerationService{db: db, entities: entities, pageSize: pageSize}
}

func (s *ModerationService) ListReports(status string, limit, offset int) ([]models.Report, int64, error) {
	if limit <= 0 || limit > s.pageSize {
		limit = s.pageSize
	}

	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// Approve marks a pending report approved and merges it into its entity.
// The status flip and the merge are not one database transaction on purpose:
// if aggregation fails the report stays approved, the failure is logged, and
// Backfill re-syncs it later.
func (s *ModerationService) Approve(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	now := time.Now().UTC()
	res := s.db.Model(&models.Report{}).
		Where("id = ? AND status = ?", id, models.ReportStatusPending).
		Updates(map[string]interface{}{"status": models.ReportStatusApproved, "approved_at": now})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to approve report: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyReviewed
	}
	report.Status = models.ReportStatusApproved
	report.ApprovedAt = &now

	if err := s.entities.Merge(&report); err != nil && !errors.Is(err, ErrAlreadyMerged) {
		slog.Error("entity aggregation failed after approval",
			"report_id", report.ID, "entity_key", report.EntityKey, "error", err)
	}
	return &report, nil
}

// Reject marks a pending report rejected. No entity is ever touched.
func (s *ModerationService) Reject(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	now := time.Now().UTC()
	res := s.db.Model(&models.Report{}).
		Where("id = ? AND status = ?", id, models.ReportStatusPending).
		Updates(map[string]interface{}{"status": models.ReportStatusRejected, "reviewed_at": now})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to reject report: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyReviewed
	}
	report.Status = models.ReportStatusRejected
	report.ReviewedAt = &now
	return &report, nil
}

// Backfill re-merges approved reports whose aggregation never landed. The
// merge marker makes this idempotent, so running it after normal approvals
// changes nothing; one bad record does not stop the rest of the batch.
func (s *ModerationService) Backfill(limit int) (*dto.BackfillResult, error) {
	if limit <= 0 || limit > s.pageSize {
		limit = s.pageSize
	}

	var reports []models.Report
	if err := s.db.
		Where("status = ? AND merged_at IS NULL", models.ReportStatusApproved).
		Order("created_at ASC").
		Limit(limit).
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list approved reports: %w", err)
	}

	result := &dto.BackfillResult{}
	for i := range reports {
		switch err := s.entities.Merge(&reports[i]); {
		case err == nil:
			result.Synced++
		case errors.Is(err, ErrAlreadyMerged):
			result.Skipped++
		default:
			result.Failed++
			slog.Error("backfill merge failed", "report_id", reports[i].ID, "error", err)
		}
	}
	return result, nil
}

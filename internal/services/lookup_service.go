package services

import (
	"errors"
	"fmt"

	"github.com/safemm/safemm-backend/internal/dto"
	"github.com/safemm/safemm-backend/internal/models"
	"github.com/safemm/safemm-backend/internal/normalize"
	"gorm.io/gorm"
)

var ErrInvalidLookup = errors.New("invalid input (not a valid link or phone)")

// LookupService is the read-only public path: risk lookup, the alert feed,
// and the confirmed-scam list.
type LookupService struct {
	db *gorm.DB
}

func NewLookupService(db *gorm.DB) *LookupService {
	return &LookupService{db: db}
}

// Lookup normalizes the query exactly like submission does, so the read and
// write paths always address the same entity.
func (s *LookupService) Lookup(entityType, raw string) (*dto.RiskView, error) {
	if entityType == "" || entityType == normalize.TypeAuto {
		entityType = normalize.Classify(raw)
	}
	if !normalize.KnownType(entityType) {
		return nil, ErrInvalidLookup
	}
	value, err := normalize.Normalize(entityType, raw)
	if err != nil {
		return nil, ErrInvalidLookup
	}

	var entity models.Entity
	if err := s.db.Where("type = ? AND value = ?", entityType, value).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.RiskView{Tier: dto.RiskTierNone, ReportsCount: 0}, nil
		}
		return nil, fmt.Errorf("entity lookup failed: %w", err)
	}

	return &dto.RiskView{
		Tier:         riskTier(&entity),
		ReportsCount: entity.ReportsCount,
		Entity:       &entity,
	}, nil
}

// riskTier maps an entity onto a badge tier. The stored confirmed flag is
// authoritative; score tiers only apply to unconfirmed entities.
func riskTier(e *models.Entity) string {
	switch {
	case e.ConfirmedScam:
		return dto.RiskTierConfirmed
	case e.RiskScore >= 70:
		return dto.RiskTierHigh
	case e.RiskScore >= 30:
		return dto.RiskTierMedium
	case e.ReportsCount > 0:
		return dto.RiskTierMixed
	default:
		return dto.RiskTierNone
	}
}

// ActiveAlerts returns the public alert feed, newest first.
func (s *LookupService) ActiveAlerts(limit int) ([]models.Alert, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var alerts []models.Alert
	err := s.db.Where("active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}

// ConfirmedEntities groups approved scam reports by entity key into the
// public confirmed-scam list. Rows come out in recency order of each
// entity's newest report.
func (s *LookupService) ConfirmedEntities(limit int) ([]dto.ConfirmedEntityRow, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}

	var reports []models.Report
	if err := s.db.
		Where("status = ? AND report_type = ?", models.ReportStatusApproved, models.ReportTypeScam).
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list approved reports: %w", err)
	}

	index := make(map[string]int)
	rows := make([]dto.ConfirmedEntityRow, 0)

	for i := range reports {
		r := &reports[i]
		ref := entityRefOf(r)
		if ref.Value == "" {
			continue
		}

		pos, seen := index[ref.Key]
		if !seen {
			rows = append(rows, dto.ConfirmedEntityRow{
				Key:   ref.Key,
				Type:  ref.Type,
				Value: ref.Value,
			})
			pos = len(rows) - 1
			index[ref.Key] = pos
		}

		row := &rows[pos]
		row.Count++
		if r.Category != "" && !containsString(row.Categories, r.Category) {
			row.Categories = append(row.Categories, r.Category)
		}
		if r.Region != "" && !containsString(row.Regions, r.Region) {
			row.Regions = append(row.Regions, r.Region)
		}
		if row.LastSeen == nil || r.CreatedAt.After(*row.LastSeen) {
			t := r.CreatedAt
			row.LastSeen = &t
		}
	}

	return rows, nil
}

func containsString(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}

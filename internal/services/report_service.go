package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/safemm/safemm-backend/internal/dto"
	"github.com/safemm/safemm-backend/internal/models"
	"github.com/safemm/safemm-backend/internal/normalize"
	"gorm.io/gorm"
)

// ReportService handles public report submission. Submitting never touches
// entities; aggregation happens only when a moderator approves.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

func (s *ReportService) Submit(req *dto.SubmitReportRequest) (*models.Report, error) {
	raw := strings.TrimSpace(req.Value)
	if raw == "" {
		return nil, errors.New("value is required (phone, link, account, etc.)")
	}

	entityType := req.Type
	if entityType == "" || entityType == normalize.TypeAuto {
		entityType = normalize.Classify(raw)
	}
	if !normalize.KnownType(entityType) {
		return nil, errors.New("unknown entity type")
	}

	reportType := req.ReportType
	if reportType == "" {
		reportType = models.ReportTypeScam
	}
	switch reportType {
	case models.ReportTypeScam, models.ReportTypeSpam, models.ReportTypeSafe:
	default:
		return nil, errors.New("invalid report type: must be scam, spam, or safe")
	}

	if req.Amount != nil {
		a := *req.Amount
		if math.IsNaN(a) || math.IsInf(a, 0) || a < 0 {
			return nil, errors.New("amount must be a finite number >= 0")
		}
	}

	value, err := normalize.Normalize(entityType, raw)
	if err != nil {
		switch entityType {
		case normalize.TypePhone:
			return nil, errors.New("invalid phone number: use formats like 09..., +95..., a 10-digit US number or +1...")
		case normalize.TypeLink:
			return nil, errors.New("invalid link: must be an absolute http(s) URL")
		default:
			return nil, errors.New("invalid or unsupported value")
		}
	}

	report := models.Report{
		EntityKey:   normalize.BuildKey(entityType, value),
		EntityType:  entityType,
		EntityValue: value,
		RawInput:    raw,
		ReportType:  reportType,
		Category:    strings.TrimSpace(req.Category),
		Region:      strings.TrimSpace(req.Region),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Status:      models.ReportStatusPending,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/safemm/safemm-backend/internal/dto"
	"github.com/safemm/safemm-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func submitPhone(t *testing.T, env *testEnv, value string) *models.Report {
	t.Helper()
	report, err := env.reports.Submit(&dto.SubmitReportRequest{Type: "auto", Value: value})
	require.NoError(t, err)
	return report
}

func TestApproveMergesEntity(t *testing.T) {
	env := newTestEnv(t)
	report := submitPhone(t, env, "09912345678")

	approved, err := env.mod.Approve(report.ID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	var entity models.Entity
	require.NoError(t, env.db.First(&entity, "key = ?", report.EntityKey).Error)
	require.Equal(t, 1, entity.ReportsCount)
	require.True(t, entity.ConfirmedScam)
	require.Equal(t, models.EntityStatusConfirmed, entity.Status)
	require.Equal(t, "+959912345678", entity.Value)
	require.Equal(t, entity.Value, entity.DisplayValue)
	require.NotNil(t, entity.FirstReportedAt)
	require.NotNil(t, entity.LastReportedAt)
	require.Equal(t, 15, entity.RiskScore)

	// Below the threshold: no alert yet.
	var alerts int64
	env.db.Model(&models.Alert{}).Count(&alerts)
	require.Zero(t, alerts)
}

func TestApproveIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	report := submitPhone(t, env, "09912345678")

	_, err := env.mod.Approve(report.ID)
	require.NoError(t, err)

	_, err = env.mod.Approve(report.ID)
	require.ErrorIs(t, err, ErrAlreadyReviewed)

	_, err = env.mod.Reject(report.ID)
	require.ErrorIs(t, err, ErrAlreadyReviewed)

	// The second attempts must not have double-counted.
	var entity models.Entity
	require.NoError(t, env.db.First(&entity, "key = ?", report.EntityKey).Error)
	require.Equal(t, 1, entity.ReportsCount)
}

func TestApproveMissingReport(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.mod.Approve(uuid.New())
	require.ErrorIs(t, err, ErrReportNotFound)
}

func TestRejectNeverTouchesEntities(t *testing.T) {
	env := newTestEnv(t)
	report := submitPhone(t, env, "09912345678")

	rejected, err := env.mod.Reject(report.ID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusRejected, rejected.Status)
	require.NotNil(t, rejected.ReviewedAt)

	var entities int64
	env.db.Model(&models.Entity{}).Count(&entities)
	require.Zero(t, entities)
}

func TestAlertRaisedAtThreshold(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 2; i++ {
		report := submitPhone(t, env, "09912345678")
		_, err := env.mod.Approve(report.ID)
		require.NoError(t, err)
	}

	var alerts int64
	env.db.Model(&models.Alert{}).Count(&alerts)
	require.Zero(t, alerts, "reports 1 and 2 must not raise an alert")

	third := submitPhone(t, env, "09912345678")
	_, err := env.mod.Approve(third.ID)
	require.NoError(t, err)

	var entity models.Entity
	require.NoError(t, env.db.First(&entity, "key = ?", third.EntityKey).Error)
	require.Equal(t, 3, entity.ReportsCount)
	require.True(t, entity.ConfirmedScam)

	var alertRows []models.Alert
	require.NoError(t, env.db.Find(&alertRows).Error)
	require.Len(t, alertRows, 1, "exactly one alert per key")

	alert := alertRows[0]
	require.Equal(t, third.EntityKey, alert.Key)
	require.Equal(t, models.AlertSeverityDanger, alert.Severity)
	require.True(t, alert.Active)
	require.Equal(t, 3, alert.ReportsCount)
	require.Contains(t, alert.Message, "+959912345678")

	// A fourth approval refreshes the alert, never duplicates it.
	fourth := submitPhone(t, env, "09912345678")
	_, err = env.mod.Approve(fourth.ID)
	require.NoError(t, err)
	env.db.Model(&models.Alert{}).Count(&alerts)
	require.EqualValues(t, 1, alerts)
}

func TestListReports(t *testing.T) {
	env := newTestEnv(t)
	submitPhone(t, env, "09912345678")
	submitPhone(t, env, "09912345679")
	approved := submitPhone(t, env, "09912345670")
	_, err := env.mod.Approve(approved.ID)
	require.NoError(t, err)

	pending, total, err := env.mod.ListReports(models.ReportStatusPending, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, pending, 2)
	for _, r := range pending {
		require.Equal(t, models.ReportStatusPending, r.Status)
	}

	// Limit is capped by the configured page size.
	capped, _, err := env.mod.ListReports("", 100000, 0)
	require.NoError(t, err)
	require.Len(t, capped, 3)
}

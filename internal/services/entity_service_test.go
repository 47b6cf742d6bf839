package services

import (
	"testing"
	"time"

	"github.com/safemm/safemm-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestMergeIsIdempotentPerReport(t *testing.T) {
	env := newTestEnv(t)
	report := submitPhone(t, env, "09912345678")

	require.NoError(t, env.ents.Merge(report))
	require.ErrorIs(t, env.ents.Merge(report), ErrAlreadyMerged)

	var entity models.Entity
	require.NoError(t, env.db.First(&entity, "key = ?", report.EntityKey).Error)
	require.Equal(t, 1, entity.ReportsCount)
}

func TestMergeFirstAndLastReportedAt(t *testing.T) {
	env := newTestEnv(t)

	first := submitPhone(t, env, "09912345678")
	require.NoError(t, env.ents.Merge(first))

	var afterFirst models.Entity
	require.NoError(t, env.db.First(&afterFirst, "key = ?", first.EntityKey).Error)

	second := submitPhone(t, env, "09912345678")
	require.NoError(t, env.ents.Merge(second))

	var afterSecond models.Entity
	require.NoError(t, env.db.First(&afterSecond, "key = ?", first.EntityKey).Error)

	require.Equal(t, 2, afterSecond.ReportsCount)
	// firstReportedAt is first-write-wins; lastReportedAt always moves.
	require.Equal(t,
		afterFirst.FirstReportedAt.Unix(),
		afterSecond.FirstReportedAt.Unix())
	require.False(t, afterSecond.LastReportedAt.Before(*afterFirst.LastReportedAt))
}

func TestMergeLegacyReportWithoutDerivedFields(t *testing.T) {
	env := newTestEnv(t)

	// Rows imported from older schema versions may carry only the raw input.
	legacy := models.Report{
		RawInput:   "+959912345678",
		ReportType: models.ReportTypeScam,
		Status:     models.ReportStatusApproved,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, env.db.Create(&legacy).Error)

	require.NoError(t, env.ents.Merge(&legacy))

	var entity models.Entity
	require.NoError(t, env.db.First(&entity, "key = ?", "other_+959912345678").Error)
	require.Equal(t, "other", entity.Type)
	require.Equal(t, "+959912345678", entity.Value)
	require.Equal(t, 1, entity.ReportsCount)
}

func TestRiskScoreShiftsByReportType(t *testing.T) {
	env := newTestEnv(t)

	scam := submitPhone(t, env, "09912345678")
	require.NoError(t, env.ents.Merge(scam))

	safe := submitPhone(t, env, "09912345678")
	require.NoError(t, env.db.Model(&models.Report{}).
		Where("id = ?", safe.ID).
		Update("report_type", models.ReportTypeSafe).Error)
	safe.ReportType = models.ReportTypeSafe
	require.NoError(t, env.ents.Merge(safe))

	var entity models.Entity
	require.NoError(t, env.db.First(&entity, "key = ?", scam.EntityKey).Error)
	require.Equal(t, 2, entity.ReportsCount)
	require.Equal(t, 5, entity.RiskScore) // 15 for scam, -10 for safe

	// Confirmed never reverts, even after a "safe" report.
	require.True(t, entity.ConfirmedScam)
}

func TestBackfillResyncsAndStaysIdempotent(t *testing.T) {
	env := newTestEnv(t)

	// Two approved reports whose aggregation never landed.
	for i := 0; i < 2; i++ {
		r := submitPhone(t, env, "09912345678")
		require.NoError(t, env.db.Model(&models.Report{}).
			Where("id = ?", r.ID).
			Update("status", models.ReportStatusApproved).Error)
	}
	// One merged through the normal approval path.
	approved := submitPhone(t, env, "09912345678")
	_, err := env.mod.Approve(approved.ID)
	require.NoError(t, err)

	result, err := env.mod.Backfill(0)
	require.NoError(t, err)
	require.Equal(t, 2, result.Synced)
	require.Zero(t, result.Failed)

	var entity models.Entity
	require.NoError(t, env.db.First(&entity, "key = ?", approved.EntityKey).Error)
	require.Equal(t, 3, entity.ReportsCount)

	// Running backfill again must change nothing.
	again, err := env.mod.Backfill(0)
	require.NoError(t, err)
	require.Zero(t, again.Synced)
	require.Zero(t, again.Failed)

	require.NoError(t, env.db.First(&entity, "key = ?", approved.EntityKey).Error)
	require.Equal(t, 3, entity.ReportsCount)
}

func TestDeactivateAlert(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		r := submitPhone(t, env, "09912345678")
		_, err := env.mod.Approve(r.ID)
		require.NoError(t, err)
	}

	var alert models.Alert
	require.NoError(t, env.db.First(&alert).Error)
	require.True(t, alert.Active)

	require.NoError(t, env.ents.DeactivateAlert(alert.Key))
	require.NoError(t, env.db.First(&alert, "key = ?", alert.Key).Error)
	require.False(t, alert.Active)

	require.ErrorIs(t, env.ents.DeactivateAlert("phone_none"), ErrAlertNotFound)
}

package services

import (
	"fmt"
	"testing"

	"github.com/safemm/safemm-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database. The shared-cache DSN
// keeps every pooled connection pointed at the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Report{},
		&models.Entity{},
		&models.Alert{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

type testEnv struct {
	db      *gorm.DB
	reports *ReportService
	ents    *EntityService
	mod     *ModerationService
	lookup  *LookupService
}

func newTestEnv(t *testing.T) *testEnv {
	db := newTestDB(t)
	ents := NewEntityService(db, 3)
	return &testEnv{
		db:      db,
		reports: NewReportService(db),
		ents:    ents,
		mod:     NewModerationService(db, ents, 200),
		lookup:  NewLookupService(db),
	}
}

package testutil

import (
	"testing"

	"careloom-backend/config"
	"careloom-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB swaps the global DB for an in-memory sqlite database with the
// full schema migrated, restoring it on cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := gdb.AutoMigrate(&models.Profile{}, &models.Relationship{}, &models.ReminderLog{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	previous := config.DB
	config.DB = gdb

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
		config.DB = previous
	})

	return gdb
}

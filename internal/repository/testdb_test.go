package repository

import (
	"path/filepath"
	"testing"

	"github.com/ZahraSafaei1272/WebScraping/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a throwaway sqlite store with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Person{},
		&domain.MovieResult{},
		&domain.Title{},
		&domain.ScrapeRun{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

package repositories

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/medtrack-dev/medtrack/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(&models.User{}, &models.Patient{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return database
}

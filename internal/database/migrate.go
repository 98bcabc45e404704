package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/vk-smartminds/practice-platform/internal/models"
)

// Models lists every table owned by the service.
func Models() []interface{} {
	return []interface{}{
		&models.Class{},
		&models.Subject{},
		&models.Chapter{},
		&models.Topic{},
		&models.Question{},
		&models.Student{},
		&models.Admin{},
		&models.ActivityLog{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

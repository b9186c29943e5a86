package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/models"
)

// Migrate applies the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Idea{},
		&models.IdeaComment{},
		&models.IdeaAttachment{},
		&models.EvaluatorAssignment{},
		&models.Evaluation{},
		&models.IdeaActionLog{},
		&models.IdeaStatusLog{},
		&models.Notification{},
		&models.Translation{},
		&models.ListOfValue{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

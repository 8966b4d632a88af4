package database

import (
	"fmt"

	videoRepo "github.com/xpanvictor/vidquiz/internal/repository/video"
	"gorm.io/gorm"
)

func MigrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&videoRepo.VideoEntity{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"comment-service/internal/domain"
)

// modelInfo holds information about a domain model and its table name
type modelInfo struct {
	model     interface{}
	tableName string
}

var models = []modelInfo{
	{&domain.Post{}, "posts"},
	{&domain.Comment{}, "comments"},
}

// AutoMigrate creates or updates the posts and comments tables.
// Existing tables only gain missing columns and indexes.
func AutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	for _, m := range models {
		existed := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		logger.Info("Migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", existed),
		)
	}

	return nil
}

package database

import (
	"gamenight/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// MigrateModels runs GORM AutoMigrate for all models.
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []any{
		&models.User{},
		&models.Contact{},
		&models.Category{},
		&models.Tag{},
		&models.Game{},
		&models.GameNight{},
		&models.RSVP{},
		&models.Voting{},
		&models.GeneralFeedback{},
		&models.GameFeedback{},
		&models.ScheduledTask{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates composite indexes GORM does not derive from tags.
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_gamenights_user_status ON game_nights(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_scheduled_tasks_status_fire_at ON scheduled_tasks(status, fire_at)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
		}
	}

	log.Info("Additional database indexes created")
	return nil
}

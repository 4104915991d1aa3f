package initialize

import (
	. "gamenight/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeCategories(db, log); err != nil {
		return log.Err("failed to initialize categories", err)
	}

	log.Info("Table initialization complete")
	return nil
}

// initializeCategories seeds the global category table with the external
// catalog's category vocabulary. Catalog imports resolve names against this
// table, so a missing entry makes the matching games unimportable.
func initializeCategories(db *gorm.DB, log logger.Logger) error {
	log.Info("Initializing category reference data")

	for _, name := range categoryNames {
		var existing Category
		if err := db.First(&existing, "name = ?", name).Error; err == nil {
			continue
		}
		if err := db.Create(&Category{Name: name}).Error; err != nil {
			return log.Err("failed to create category", err, "name", name)
		}
	}

	log.Info("Category reference data initialized", "count", len(categoryNames))
	return nil
}

var categoryNames = []string{
	"Abstract Strategy",
	"Adventure",
	"Ancient",
	"Animals",
	"Bluffing",
	"Card Game",
	"Children's Game",
	"City Building",
	"Civilization",
	"Deduction",
	"Dice",
	"Economic",
	"Educational",
	"Exploration",
	"Fantasy",
	"Farming",
	"Fighting",
	"Horror",
	"Humor",
	"Industry / Manufacturing",
	"Medieval",
	"Miniatures",
	"Murder/Mystery",
	"Mythology",
	"Nautical",
	"Negotiation",
	"Party Game",
	"Pirates",
	"Political",
	"Puzzle",
	"Racing",
	"Real-time",
	"Science Fiction",
	"Space Exploration",
	"Territory Building",
	"Trading",
	"Trains",
	"Transportation",
	"Travel",
	"Trivia",
	"Wargame",
	"Word Game",
	"Zombies",
}

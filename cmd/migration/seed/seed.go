package seed

import (
	"time"

	. "gamenight/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

// Seed loads a small development fixture: one host with contacts, a few
// catalog games and a finalized game night so the stats endpoints have data
// to chew on.
func Seed(db *gorm.DB, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	user := User{
		Username:    "demo",
		DisplayName: "Demo Host",
		Email:       stringPtr("demo@example.com"),
	}
	if err := db.Create(&user).Error; err != nil {
		return log.Err("failed to seed user", err)
	}

	contacts := []Contact{
		{UserID: user.ID, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		{UserID: user.ID, FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"},
		{UserID: user.ID, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"},
	}
	if err := db.Create(&contacts).Error; err != nil {
		return log.Err("failed to seed contacts", err)
	}

	var negotiation, economic Category
	if err := db.First(&negotiation, "name = ?", "Negotiation").Error; err != nil {
		return log.Err("failed to load seed category", err)
	}
	if err := db.First(&economic, "name = ?", "Economic").Error; err != nil {
		return log.Err("failed to load seed category", err)
	}

	games := []Game{
		{
			Title:      "Catan",
			BGGID:      13,
			PubYear:    1995,
			MinPlayers: 3,
			MaxPlayers: 4,
			Playtime:   120,
			PlayerAge:  10,
			Weight:     decimal.NewFromFloat(2.29),
			Owners:     []User{user},
			Categories: []Category{negotiation, economic},
		},
		{
			Title:      "Azul",
			BGGID:      230802,
			PubYear:    2017,
			MinPlayers: 2,
			MaxPlayers: 4,
			Playtime:   45,
			PlayerAge:  8,
			Weight:     decimal.NewFromFloat(1.76),
			Owners:     []User{user},
		},
	}
	if err := db.Create(&games).Error; err != nil {
		return log.Err("failed to seed games", err)
	}

	endTime := time.Date(0, 1, 1, 23, 0, 0, 0, time.UTC)
	gamenight := GameNight{
		UserID:    user.ID,
		Date:      time.Now().AddDate(0, 0, -7).Truncate(24 * time.Hour),
		RID:       "seedDemoNight01",
		StartTime: time.Date(0, 1, 1, 19, 0, 0, 0, time.UTC),
		EndTime:   &endTime,
		Location:  "Demo HQ",
		Status:    StatusFinalized,
		Invitees:  contacts,
		Attendees: contacts[:2],
		Options:   games,
		Games:     games[:1],
	}
	if err := db.Create(&gamenight).Error; err != nil {
		return log.Err("failed to seed gamenight", err)
	}

	feedback := []GeneralFeedback{
		{
			GameNightID:    gamenight.ID,
			AttendeeID:     contacts[0].ID,
			OverallRating:  4,
			PeopleRating:   5,
			LocationRating: 4,
			Comment:        "Great night!",
		},
		{
			GameNightID:    gamenight.ID,
			AttendeeID:     contacts[1].ID,
			OverallRating:  5,
			PeopleRating:   4,
			LocationRating: 5,
		},
	}
	if err := db.Create(&feedback).Error; err != nil {
		return log.Err("failed to seed feedback", err)
	}

	log.Info("Development data seeded")
	return nil
}

package models

import "github.com/google/uuid"

const (
	MinRating = 1
	MaxRating = 5
)

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// GeneralFeedback is an attendee's post-session rating of the night as a
// whole. One row per (gamenight, attendee), immutable once recorded.
type GeneralFeedback struct {
	BaseUUIDModel
	GameNightID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_night_attendee" json:"gamenightId"`
	GameNight      GameNight `gorm:"foreignKey:GameNightID"                                     json:"-"`
	AttendeeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_night_attendee" json:"attendeeId"`
	Attendee       Contact   `gorm:"foreignKey:AttendeeID"                                      json:"-"`
	OverallRating  int       `gorm:"type:int;not null" json:"overallRating"`
	PeopleRating   int       `gorm:"type:int;not null" json:"peopleRating"`
	LocationRating int       `gorm:"type:int;not null" json:"locationRating"`
	Comment        string    `gorm:"type:text"         json:"comment,omitempty"`
}

// GameFeedback is an attendee's rating of one game played at one night. One
// row per (gamenight, attendee, game), immutable once recorded.
type GameFeedback struct {
	BaseUUIDModel
	GameNightID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_gamefeedback_tuple" json:"gamenightId"`
	GameNight   GameNight `gorm:"foreignKey:GameNightID"                                json:"-"`
	AttendeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_gamefeedback_tuple" json:"attendeeId"`
	Attendee    Contact   `gorm:"foreignKey:AttendeeID"                                 json:"-"`
	GameID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_gamefeedback_tuple" json:"gameId"`
	Game        Game      `gorm:"foreignKey:GameID"                                     json:"-"`
	Rating      int       `gorm:"type:int;not null" json:"rating"`
}

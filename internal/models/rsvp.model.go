package models

import "github.com/google/uuid"

// RSVP records an invitee's yes/no for one GameNight. One row per
// (gamenight, invitee); the composite unique index is the race-safety
// backstop for concurrent submissions.
type RSVP struct {
	BaseUUIDModel
	GameNightID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rsvp_night_invitee" json:"gamenightId"`
	GameNight   GameNight `gorm:"foreignKey:GameNightID"                                json:"-"`
	InviteeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rsvp_night_invitee" json:"inviteeId"`
	Invitee     Contact   `gorm:"foreignKey:InviteeID"                                  json:"invitee"`
	Attending   bool      `gorm:"type:bool;not null"                                    json:"attending"`
}

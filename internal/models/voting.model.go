package models

import "github.com/google/uuid"

const (
	VoteDown = -1
	VoteNone = 0
	VoteUp   = 1
)

// Voting is one invitee's vote on one candidate game for one night. Votes are
// immutable once recorded; re-submissions are dropped from the batch.
type Voting struct {
	BaseUUIDModel
	GameNightID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vote_night_invitee_game" json:"gamenightId"`
	GameNight   GameNight `gorm:"foreignKey:GameNightID"                                     json:"-"`
	InviteeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vote_night_invitee_game" json:"inviteeId"`
	Invitee     Contact   `gorm:"foreignKey:InviteeID"                                       json:"-"`
	GameID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vote_night_invitee_game" json:"gameId"`
	Game        Game      `gorm:"foreignKey:GameID"                                          json:"-"`
	Vote        int       `gorm:"type:int;not null"                                          json:"vote"`
}

func ValidVote(vote int) bool {
	return vote == VoteDown || vote == VoteNone || vote == VoteUp
}

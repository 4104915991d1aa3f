package models

import (
	"time"

	"github.com/google/uuid"
)

type GameNightStatus string

const (
	StatusVoting    GameNightStatus = "Voting"
	StatusFinalized GameNightStatus = "Finalized"
	StatusCancelled GameNightStatus = "Cancelled"
)

func (s GameNightStatus) Valid() bool {
	switch s {
	case StatusVoting, StatusFinalized, StatusCancelled:
		return true
	}
	return false
}

// MembershipOp reports what a toggle did to a membership set.
type MembershipOp int

const (
	MembershipNone MembershipOp = iota
	MembershipAdded
	MembershipRemoved
)

// GameNight is one scheduled session. The rid is the public lookup key so
// invitees can vote and RSVP without a database id leaking into links.
//
// Invariants maintained by the toggle methods: Attendees is a subset of
// Invitees, and Games (actually played) is a subset of Options (candidates).
type GameNight struct {
	BaseUUIDModel
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_gamenight_user_date_rid" json:"userId"`
	User      User            `gorm:"foreignKey:UserID"                                                json:"-"`
	Date      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_gamenight_user_date_rid"       json:"date"`
	RID       string          `gorm:"column:rid;type:varchar(15);not null;uniqueIndex:idx_gamenight_user_date_rid;index" json:"rid"`
	StartTime time.Time       `gorm:"type:time;not null"                json:"startTime"`
	EndTime   *time.Time      `gorm:"type:time"                         json:"endTime,omitempty"`
	Location  string          `gorm:"type:text"                         json:"location,omitempty"`
	Status    GameNightStatus `gorm:"type:text;default:'Voting'"        json:"status"`

	FeedbackTask FeedbackTask `gorm:"embedded;embeddedPrefix:feedback_task_" json:"feedbackTask"`

	Invitees  []Contact `gorm:"many2many:gamenight_invitees"  json:"invitees"`
	Attendees []Contact `gorm:"many2many:gamenight_attendees" json:"attendees"`
	Options   []Game    `gorm:"many2many:gamenight_options"   json:"options"`
	Games     []Game    `gorm:"many2many:gamenight_games"     json:"games"`

	RSVPs           []RSVP            `gorm:"foreignKey:GameNightID;constraint:OnDelete:CASCADE" json:"rsvps,omitempty"`
	Votes           []Voting          `gorm:"foreignKey:GameNightID;constraint:OnDelete:CASCADE" json:"-"`
	GeneralFeedback []GeneralFeedback `gorm:"foreignKey:GameNightID;constraint:OnDelete:CASCADE" json:"-"`
	GameFeedback    []GameFeedback    `gorm:"foreignKey:GameNightID;constraint:OnDelete:CASCADE" json:"-"`
}

func (gn *GameNight) HasInvitee(contactID uuid.UUID) bool {
	return containsContact(gn.Invitees, contactID)
}

func (gn *GameNight) HasAttendee(contactID uuid.UUID) bool {
	return containsContact(gn.Attendees, contactID)
}

func (gn *GameNight) HasOption(gameID uuid.UUID) bool {
	return containsGame(gn.Options, gameID)
}

func (gn *GameNight) HasGame(gameID uuid.UUID) bool {
	return containsGame(gn.Games, gameID)
}

// ToggleAttendee flips the contact's membership in Attendees. Silent no-op
// when the contact is not invited, which keeps Attendees a subset of Invitees.
func (gn *GameNight) ToggleAttendee(contact Contact) MembershipOp {
	if !gn.HasInvitee(contact.ID) {
		return MembershipNone
	}
	if gn.HasAttendee(contact.ID) {
		gn.Attendees = removeContact(gn.Attendees, contact.ID)
		return MembershipRemoved
	}
	gn.Attendees = append(gn.Attendees, contact)
	return MembershipAdded
}

// ToggleInvitee flips the contact's membership in Invitees. Removing an
// invitee cascades them out of Attendees. The returned attendeeRemoved flag
// tells the caller to persist the cascade as well.
func (gn *GameNight) ToggleInvitee(contact Contact) (op MembershipOp, attendeeRemoved bool) {
	if gn.HasInvitee(contact.ID) {
		gn.Invitees = removeContact(gn.Invitees, contact.ID)
		if gn.HasAttendee(contact.ID) {
			gn.Attendees = removeContact(gn.Attendees, contact.ID)
			attendeeRemoved = true
		}
		return MembershipRemoved, attendeeRemoved
	}
	gn.Invitees = append(gn.Invitees, contact)
	return MembershipAdded, false
}

// ToggleOption flips the game's membership in Options. Removing an option
// cascades the game out of the played set.
func (gn *GameNight) ToggleOption(game Game) (op MembershipOp, playRemoved bool) {
	if gn.HasOption(game.ID) {
		gn.Options = removeGame(gn.Options, game.ID)
		if gn.HasGame(game.ID) {
			gn.Games = removeGame(gn.Games, game.ID)
			playRemoved = true
		}
		return MembershipRemoved, playRemoved
	}
	gn.Options = append(gn.Options, game)
	return MembershipAdded, false
}

// ToggleGame flips the game's membership in the played set. Silent no-op when
// the game is not an option, which keeps Games a subset of Options.
func (gn *GameNight) ToggleGame(game Game) MembershipOp {
	if !gn.HasOption(game.ID) {
		return MembershipNone
	}
	if gn.HasGame(game.ID) {
		gn.Games = removeGame(gn.Games, game.ID)
		return MembershipRemoved
	}
	gn.Games = append(gn.Games, game)
	return MembershipAdded
}

// AttendeeEmails returns the addresses the lifecycle notifications go to.
func (gn *GameNight) AttendeeEmails() []string {
	emails := make([]string, 0, len(gn.Attendees))
	for _, contact := range gn.Attendees {
		if contact.Email != "" {
			emails = append(emails, contact.Email)
		}
	}
	return emails
}

// InviteeEmails returns the addresses invitation mail goes to.
func (gn *GameNight) InviteeEmails() []string {
	emails := make([]string, 0, len(gn.Invitees))
	for _, contact := range gn.Invitees {
		if contact.Email != "" {
			emails = append(emails, contact.Email)
		}
	}
	return emails
}

// StartsAt combines Date and StartTime into one timestamp.
func (gn *GameNight) StartsAt() time.Time {
	return combineDateTime(gn.Date, gn.StartTime)
}

// EndsAt combines Date and EndTime, rolling over midnight when the end hour
// precedes the start hour. Nil when no end time is set.
func (gn *GameNight) EndsAt() *time.Time {
	if gn.EndTime == nil {
		return nil
	}
	end := combineDateTime(gn.Date, *gn.EndTime)
	if gn.EndTime.Hour() < gn.StartTime.Hour() {
		end = end.AddDate(0, 0, 1)
	}
	return &end
}

func combineDateTime(date, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0,
		date.Location(),
	)
}

func containsContact(contacts []Contact, id uuid.UUID) bool {
	for _, c := range contacts {
		if c.ID == id {
			return true
		}
	}
	return false
}

func removeContact(contacts []Contact, id uuid.UUID) []Contact {
	result := contacts[:0]
	for _, c := range contacts {
		if c.ID != id {
			result = append(result, c)
		}
	}
	return result
}

func containsGame(games []Game, id uuid.UUID) bool {
	for _, g := range games {
		if g.ID == id {
			return true
		}
	}
	return false
}

func removeGame(games []Game, id uuid.UUID) []Game {
	result := games[:0]
	for _, g := range games {
		if g.ID != id {
			result = append(result, g)
		}
	}
	return result
}

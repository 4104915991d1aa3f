package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContact() Contact {
	return Contact{BaseUUIDModel: BaseUUIDModel{ID: uuid.New()}, Email: "contact@example.com"}
}

func newGame(title string) Game {
	return Game{BaseUUIDModel: BaseUUIDModel{ID: uuid.New()}, Title: title}
}

func TestGameNight_ToggleAttendee(t *testing.T) {
	contact := newContact()
	stranger := newContact()

	t.Run("No-op when contact is not invited", func(t *testing.T) {
		gn := &GameNight{Invitees: []Contact{contact}}
		op := gn.ToggleAttendee(stranger)
		assert.Equal(t, MembershipNone, op)
		assert.Empty(t, gn.Attendees)
	})

	t.Run("Adds invited contact", func(t *testing.T) {
		gn := &GameNight{Invitees: []Contact{contact}}
		op := gn.ToggleAttendee(contact)
		assert.Equal(t, MembershipAdded, op)
		assert.True(t, gn.HasAttendee(contact.ID))
	})

	t.Run("Involutive", func(t *testing.T) {
		gn := &GameNight{Invitees: []Contact{contact}}
		gn.ToggleAttendee(contact)
		op := gn.ToggleAttendee(contact)
		assert.Equal(t, MembershipRemoved, op)
		assert.False(t, gn.HasAttendee(contact.ID))
	})
}

func TestGameNight_ToggleInvitee(t *testing.T) {
	a := newContact()
	b := newContact()

	t.Run("Adding a new invitee", func(t *testing.T) {
		gn := &GameNight{}
		op, cascaded := gn.ToggleInvitee(a)
		assert.Equal(t, MembershipAdded, op)
		assert.False(t, cascaded)
		assert.True(t, gn.HasInvitee(a.ID))
	})

	t.Run("Removing an invitee cascades out of attendees", func(t *testing.T) {
		gn := &GameNight{
			Invitees:  []Contact{a, b},
			Attendees: []Contact{a, b},
		}
		op, cascaded := gn.ToggleInvitee(a)
		assert.Equal(t, MembershipRemoved, op)
		assert.True(t, cascaded)
		assert.Equal(t, []Contact{b}, gn.Invitees)
		assert.Equal(t, []Contact{b}, gn.Attendees)
	})

	t.Run("Removing a non-attending invitee does not cascade", func(t *testing.T) {
		gn := &GameNight{Invitees: []Contact{a, b}, Attendees: []Contact{b}}
		_, cascaded := gn.ToggleInvitee(a)
		assert.False(t, cascaded)
		assert.True(t, gn.HasAttendee(b.ID))
	})

	t.Run("Involutive", func(t *testing.T) {
		gn := &GameNight{Invitees: []Contact{a}}
		gn.ToggleInvitee(b)
		gn.ToggleInvitee(b)
		assert.Equal(t, []Contact{a}, gn.Invitees)
	})
}

func TestGameNight_ToggleOption(t *testing.T) {
	catan := newGame("Catan")
	azul := newGame("Azul")

	t.Run("Removing an option cascades out of played games", func(t *testing.T) {
		gn := &GameNight{Options: []Game{catan, azul}, Games: []Game{catan}}
		op, cascaded := gn.ToggleOption(catan)
		assert.Equal(t, MembershipRemoved, op)
		assert.True(t, cascaded)
		assert.False(t, gn.HasGame(catan.ID))
		assert.Equal(t, []Game{azul}, gn.Options)
	})

	t.Run("Involutive", func(t *testing.T) {
		gn := &GameNight{}
		gn.ToggleOption(catan)
		gn.ToggleOption(catan)
		assert.Empty(t, gn.Options)
	})
}

func TestGameNight_ToggleGame(t *testing.T) {
	catan := newGame("Catan")
	azul := newGame("Azul")

	t.Run("No-op when game is not an option", func(t *testing.T) {
		gn := &GameNight{Options: []Game{azul}}
		op := gn.ToggleGame(catan)
		assert.Equal(t, MembershipNone, op)
		assert.Empty(t, gn.Games)
	})

	t.Run("Played games stay a subset of options", func(t *testing.T) {
		gn := &GameNight{Options: []Game{catan, azul}}
		gn.ToggleGame(catan)
		gn.ToggleGame(azul)
		for _, g := range gn.Games {
			assert.True(t, gn.HasOption(g.ID))
		}
	})

	t.Run("Involutive", func(t *testing.T) {
		gn := &GameNight{Options: []Game{catan}}
		gn.ToggleGame(catan)
		gn.ToggleGame(catan)
		assert.Empty(t, gn.Games)
	})
}

func TestGameNight_SubsetInvariantUnderToggleSequences(t *testing.T) {
	a, b, c := newContact(), newContact(), newContact()
	catan, azul := newGame("Catan"), newGame("Azul")

	gn := &GameNight{}
	gn.ToggleInvitee(a)
	gn.ToggleInvitee(b)
	gn.ToggleInvitee(c)
	gn.ToggleAttendee(a)
	gn.ToggleAttendee(b)
	gn.ToggleOption(catan)
	gn.ToggleOption(azul)
	gn.ToggleGame(catan)
	gn.ToggleInvitee(b)
	gn.ToggleOption(catan)
	gn.ToggleAttendee(c)
	gn.ToggleAttendee(c)

	for _, attendee := range gn.Attendees {
		assert.True(t, gn.HasInvitee(attendee.ID), "attendee %s not invited", attendee.ID)
	}
	for _, game := range gn.Games {
		assert.True(t, gn.HasOption(game.ID), "played game %s not an option", game.ID)
	}
}

func TestGameNight_EndsAt(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	clock := func(hour, min int) time.Time {
		return time.Date(2000, 1, 1, hour, min, 0, 0, time.UTC)
	}

	t.Run("Nil when end time is unset", func(t *testing.T) {
		gn := &GameNight{Date: date, StartTime: clock(19, 0)}
		assert.Nil(t, gn.EndsAt())
	})

	t.Run("Same-day session", func(t *testing.T) {
		end := clock(23, 30)
		gn := &GameNight{Date: date, StartTime: clock(19, 0), EndTime: &end}
		got := gn.EndsAt()
		require.NotNil(t, got)
		assert.Equal(t, 15, got.Day())
		assert.Equal(t, 23, got.Hour())
	})

	t.Run("Overnight session rolls into the next day", func(t *testing.T) {
		end := clock(1, 0)
		gn := &GameNight{Date: date, StartTime: clock(20, 0), EndTime: &end}
		got := gn.EndsAt()
		require.NotNil(t, got)
		assert.Equal(t, 16, got.Day())
		assert.Equal(t, 1, got.Hour())
	})
}

func TestGameNight_AttendeeEmails(t *testing.T) {
	withEmail := newContact()
	noEmail := Contact{BaseUUIDModel: BaseUUIDModel{ID: uuid.New()}}

	gn := &GameNight{Attendees: []Contact{withEmail, noEmail}}
	assert.Equal(t, []string{"contact@example.com"}, gn.AttendeeEmails())
}

package statsController

import (
	. "gamenight/internal/models"
)

// AttendanceRatio is attendees over invitees for one night. Nil when nobody
// was invited, since the ratio has no denominator to speak of.
func AttendanceRatio(gamenight *GameNight) *float64 {
	if len(gamenight.Invitees) == 0 {
		return nil
	}
	ratio := round2(float64(len(gamenight.Attendees)) / float64(len(gamenight.Invitees)))
	return &ratio
}

// SessionLengthMinutes is the scheduled duration of a night, rolling the end
// time into the next day when it reads earlier than the start. Nil when the
// night never had an end time set.
func SessionLengthMinutes(gamenight *GameNight) *int {
	end := gamenight.EndsAt()
	if end == nil {
		return nil
	}
	minutes := int(end.Sub(gamenight.StartsAt()).Minutes())
	return &minutes
}

// UniqueGameCount is how many distinct games were played at a night.
func UniqueGameCount(gamenight *GameNight) int {
	return len(gamenight.Games)
}

// PlayerCount is how many contacts actually attended a night.
func PlayerCount(gamenight *GameNight) int {
	return len(gamenight.Attendees)
}

package statsController

import (
	. "gamenight/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// round2 rounds to two decimal places, half away from zero.
func round2(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

func roundedMean(sum float64, count int) *float64 {
	if count == 0 {
		return nil
	}
	mean := round2(sum / float64(count))
	return &mean
}

// AverageOverall is the mean overall rating across a night's general
// feedback. Nil when the night has no feedback: a missing rating is not a
// zero rating.
func AverageOverall(gamenight *GameNight) *float64 {
	var sum float64
	for _, feedback := range gamenight.GeneralFeedback {
		sum += float64(feedback.OverallRating)
	}
	return roundedMean(sum, len(gamenight.GeneralFeedback))
}

// AverageGameRating is the mean rating one game received at one night.
func AverageGameRating(gamenight *GameNight, gameID uuid.UUID) *float64 {
	var sum float64
	var count int
	for _, feedback := range gamenight.GameFeedback {
		if feedback.GameID == gameID {
			sum += float64(feedback.Rating)
			count++
		}
	}
	return roundedMean(sum, count)
}

// AverageGameRatingForUser is the mean across every rating row the game
// collected over the given nights (the user's finalized nights featuring it).
func AverageGameRatingForUser(gamenights []*GameNight, gameID uuid.UUID) *float64 {
	var sum float64
	var count int
	for _, gamenight := range gamenights {
		for _, feedback := range gamenight.GameFeedback {
			if feedback.GameID == gameID {
				sum += float64(feedback.Rating)
				count++
			}
		}
	}
	return roundedMean(sum, count)
}

// TallyVotes sums the signed votes a game received for a night. An empty
// tally is 0, not nil: voting absence is a valid zero, unlike rating absence.
func TallyVotes(gamenight *GameNight, gameID uuid.UUID) int {
	var total int
	for _, vote := range gamenight.Votes {
		if vote.GameID == gameID {
			total += vote.Vote
		}
	}
	return total
}

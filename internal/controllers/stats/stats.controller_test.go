package statsController

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	. "gamenight/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nextCategoryID int

func testCategory(name string) Category {
	nextCategoryID++
	category := Category{Name: name}
	category.ID = nextCategoryID
	return category
}

func testGame(title string, categories ...string) *Game {
	game := &Game{Title: title}
	game.ID = uuid.New()
	for _, name := range categories {
		game.Categories = append(game.Categories, testCategory(name))
	}
	return game
}

func testContact(first, last string) Contact {
	contact := Contact{FirstName: first, LastName: last, Email: first + "@example.com"}
	contact.ID = uuid.New()
	return contact
}

func testNight(date time.Time, games ...*Game) *GameNight {
	gamenight := &GameNight{Date: date, Status: StatusFinalized}
	gamenight.ID = uuid.New()
	for _, game := range games {
		gamenight.Games = append(gamenight.Games, *game)
	}
	return gamenight
}

func clock(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	// Exact halves must round away from zero; banker's rounding would give
	// 0.66 and 0.68 here.
	assert.Equal(t, 0.67, round2(0.665))
	assert.Equal(t, 0.69, round2(0.685))
	assert.Equal(t, -0.67, round2(-0.665))
	assert.Equal(t, 0.67, round2(2.0/3.0))

	mean := roundedMean(1.33, 2)
	require.NotNil(t, mean)
	assert.Equal(t, 0.67, *mean)
}

func TestAverageOverall(t *testing.T) {
	gamenight := &GameNight{}

	assert.Nil(t, AverageOverall(gamenight), "no feedback means no average")

	gamenight.GeneralFeedback = []GeneralFeedback{
		{OverallRating: 4},
		{OverallRating: 5},
	}
	result := AverageOverall(gamenight)
	require.NotNil(t, result)
	assert.Equal(t, 4.5, *result)
}

func TestAverageGameRatingForUser(t *testing.T) {
	game := testGame("Catan")
	nightOne := testNight(time.Now(), game)
	nightOne.GameFeedback = []GameFeedback{{GameID: game.ID, Rating: 5}}
	nightTwo := testNight(time.Now(), game)
	nightTwo.GameFeedback = []GameFeedback{{GameID: game.ID, Rating: 3}}

	result := AverageGameRatingForUser([]*GameNight{nightOne, nightTwo}, game.ID)
	require.NotNil(t, result)
	assert.Equal(t, 4.0, *result, "flat mean across rows, not mean of night averages")

	assert.Nil(t, AverageGameRatingForUser([]*GameNight{nightOne}, uuid.New()))
}

func TestTallyVotes(t *testing.T) {
	game := testGame("Azul")
	other := testGame("Wingspan")
	gamenight := testNight(time.Now(), game, other)

	assert.Equal(t, 0, TallyVotes(gamenight, game.ID), "empty tally is zero, not nil")

	gamenight.Votes = []Voting{
		{GameID: game.ID, Vote: VoteUp},
		{GameID: game.ID, Vote: VoteUp},
		{GameID: game.ID, Vote: VoteDown},
		{GameID: other.ID, Vote: VoteUp},
	}
	assert.Equal(t, 1, TallyVotes(gamenight, game.ID))
	assert.Equal(t, 1, TallyVotes(gamenight, other.ID))
}

func TestAttendanceRatio(t *testing.T) {
	gamenight := &GameNight{}
	assert.Nil(t, AttendanceRatio(gamenight), "no invitees means no ratio")

	a, b, c := testContact("Ann", "A"), testContact("Bob", "B"), testContact("Cy", "C")
	gamenight.Invitees = []Contact{a, b, c}
	gamenight.Attendees = []Contact{a, b}

	result := AttendanceRatio(gamenight)
	require.NotNil(t, result)
	assert.Equal(t, 0.67, *result, "rounded half away from zero")
}

func TestSessionLengthMinutes(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	gamenight := &GameNight{Date: date, StartTime: clock(19, 0)}
	assert.Nil(t, SessionLengthMinutes(gamenight))

	end := clock(23, 30)
	gamenight.EndTime = &end
	result := SessionLengthMinutes(gamenight)
	require.NotNil(t, result)
	assert.Equal(t, 270, *result)

	overnight := clock(1, 0)
	gamenight.StartTime = clock(20, 0)
	gamenight.EndTime = &overnight
	result = SessionLengthMinutes(gamenight)
	require.NotNil(t, result)
	assert.Equal(t, 300, *result, "end before start rolls into the next day")
}

func TestBuildWeekdayStats(t *testing.T) {
	game := testGame("Catan")
	host := testContact("Ann", "A")
	guest := testContact("Bob", "B")

	// 2026-03-13 is a Friday, 2026-03-16 a Monday.
	friday := testNight(time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), game)
	friday.Invitees = []Contact{host, guest}
	friday.Attendees = []Contact{host, guest}
	friday.GeneralFeedback = []GeneralFeedback{{OverallRating: 4}, {OverallRating: 5}}

	fridayUnrated := testNight(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), game)
	fridayUnrated.Invitees = []Contact{host, guest}
	fridayUnrated.Attendees = []Contact{host}

	monday := testNight(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))

	buckets := buildWeekdayStats([]*GameNight{friday, fridayUnrated, monday})
	require.Len(t, buckets, 7)
	assert.Equal(t, "Monday", buckets[0].Weekday)
	assert.Equal(t, "Sunday", buckets[6].Weekday)

	fridayBucket := buckets[4]
	assert.Equal(t, "Friday", fridayBucket.Weekday)
	assert.Equal(t, 2, fridayBucket.Sessions)
	require.NotNil(t, fridayBucket.AvgOverallRating)
	assert.Equal(t, 4.5, *fridayBucket.AvgOverallRating, "unrated night is skipped, not zeroed")
	require.NotNil(t, fridayBucket.AvgAttendancePct)
	assert.Equal(t, 75.0, *fridayBucket.AvgAttendancePct)
	require.NotNil(t, fridayBucket.AvgUniqueGames)
	assert.Equal(t, 1.0, *fridayBucket.AvgUniqueGames)
	assert.Nil(t, fridayBucket.AvgLengthMinutes, "no night had an end time")

	mondayBucket := buckets[0]
	assert.Equal(t, 1, mondayBucket.Sessions)
	assert.Nil(t, mondayBucket.AvgOverallRating)

	assert.Equal(t, 0, buckets[1].Sessions)
	assert.Nil(t, buckets[1].AvgPlayers)
}

func TestBuildSharesRoundingDrift(t *testing.T) {
	entries := []shareEntry{
		{name: "A", count: 1},
		{name: "B", count: 1},
		{name: "C", count: 1},
	}

	shares := buildShares(entries)
	require.Len(t, shares, 3)
	assert.Equal(t, 33.33, shares[0].Percent)
	assert.Equal(t, 33.33, shares[1].Percent)
	assert.Equal(t, 33.34, shares[2].Percent, "final entry absorbs the drift")

	var sum float64
	for _, share := range shares {
		sum += share.Percent
	}
	assert.InDelta(t, 100.0, sum, 0.001)
}

func TestBuildSharesOtherBucket(t *testing.T) {
	entries := make([]shareEntry, 0, 12)
	for i := range 12 {
		entries = append(entries, shareEntry{name: fmt.Sprintf("game-%d", i), count: 12 - i})
	}

	shares := buildShares(entries)
	require.Len(t, shares, maxShareEntries+1)

	other := shares[maxShareEntries]
	assert.Equal(t, "Other", other.Name)
	assert.Equal(t, 1+2+3, other.Count, "tail counts collapse into Other")

	var sum float64
	for _, share := range shares {
		sum += share.Percent
	}
	assert.InDelta(t, 100.0, sum, 0.1)
}

func TestBuildSharesEmpty(t *testing.T) {
	assert.Empty(t, buildShares(nil))
}

func TestBuildMostPlayedTieBreak(t *testing.T) {
	first := testGame("Azul")
	second := testGame("Catan")
	third := testGame("Wingspan")
	library := []*Game{first, second, third}

	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	nights := []*GameNight{
		testNight(date, second, third),
		testNight(date.AddDate(0, 0, 7), second, first),
		testNight(date.AddDate(0, 0, 14), third),
	}

	shares := buildMostPlayed(countPlays(nights, library))
	require.Len(t, shares, 3)
	assert.Equal(t, "Catan", shares[0].Name)
	assert.Equal(t, "Azul", shares[1].Name, "ties fall back to catalog insertion order")
	assert.Equal(t, "Wingspan", shares[2].Name)
	assert.Equal(t, 2, shares[0].Count)
}

func TestBuildLeastPlayed(t *testing.T) {
	library := make([]*Game, 0, 8)
	for i := range 8 {
		library = append(library, testGame(fmt.Sprintf("game-%d", i)))
	}

	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	nights := make([]*GameNight, 0)
	// game-0 played once, game-1 twice, and so on; game-7 never played.
	for i, game := range library[:7] {
		for play := 0; play <= i; play++ {
			nights = append(nights, testNight(date.AddDate(0, 0, play), game))
		}
	}

	entries := buildLeastPlayed(countPlays(nights, library))
	require.Len(t, entries, leastPlayedLimit)
	assert.Equal(t, "game-0", entries[0].Game.Title, "never-played games are excluded")
	assert.Equal(t, 1, entries[0].Count)
	assert.Equal(t, date, entries[0].LastPlayed)
	assert.Equal(t, "game-2", entries[2].Game.Title)
	assert.Equal(t, date.AddDate(0, 0, 2), entries[2].LastPlayed, "annotated with the latest play date")
}

func TestNotPlayedGames(t *testing.T) {
	library := make([]*Game, 0, 8)
	for i := range 8 {
		library = append(library, testGame(fmt.Sprintf("game-%d", i)))
	}
	nights := []*GameNight{testNight(time.Now(), library[0])}
	counts := countPlays(nights, library)

	firstK := func(n, k int) []int {
		picks := make([]int, k)
		for i := range picks {
			picks[i] = i
		}
		return picks
	}

	sampled := notPlayedGames(counts, firstK)
	require.Len(t, sampled, notPlayedSampleMax)
	assert.Equal(t, "game-1", sampled[0].Title)
	assert.Equal(t, "game-5", sampled[4].Title)

	few := countPlays(nights, library[:4])
	assert.Len(t, notPlayedGames(few, firstK), 3, "small sets are returned whole")
}

func TestBuildHighestRated(t *testing.T) {
	rated := testGame("Catan")
	alsoRated := testGame("Azul")
	unrated := testGame("Wingspan")
	library := []*Game{rated, alsoRated, unrated}

	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	nightOne := testNight(date, rated, alsoRated, unrated)
	nightOne.GameFeedback = []GameFeedback{
		{GameID: rated.ID, Rating: 4},
		{GameID: rated.ID, Rating: 5},
		{GameID: alsoRated.ID, Rating: 3},
	}
	nightTwo := testNight(date.AddDate(0, 0, 7), rated)
	nightTwo.GameFeedback = []GameFeedback{{GameID: rated.ID, Rating: 3}}

	result := buildHighestRated([]*GameNight{nightOne, nightTwo}, library)
	require.Len(t, result, 2, "never-rated games are excluded")
	assert.Equal(t, "Catan", result[0].Game.Title)
	assert.Equal(t, 3.75, result[0].Rating, "mean of per-night averages, not of raw rows")
	assert.Equal(t, "Azul", result[1].Game.Title)
	assert.Equal(t, 3.0, result[1].Rating)
}

func TestBuildCategoryShares(t *testing.T) {
	euro := testGame("Catan", "Strategy", "Trading")
	party := testGame("Codenames", "Party")
	library := []*Game{euro, party}

	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	nights := []*GameNight{
		testNight(date, euro, party),
		testNight(date.AddDate(0, 0, 7), euro),
		testNight(date.AddDate(0, 0, 14), euro),
	}

	shares := buildCategoryShares(countPlays(nights, library))
	require.Len(t, shares, 3)
	assert.Equal(t, "Strategy", shares[0].Name)
	assert.Equal(t, 3, shares[0].Count, "full play count goes to every category, not a split")
	assert.Equal(t, "Trading", shares[1].Name)
	assert.Equal(t, 3, shares[1].Count)
	assert.Equal(t, "Party", shares[2].Name)
	assert.Equal(t, 1, shares[2].Count)

	var sum float64
	for _, share := range shares {
		sum += share.Percent
	}
	assert.InDelta(t, 100.0, sum, 0.1)
}

func TestBuildCategorySharesAggregatesByID(t *testing.T) {
	strategy := testCategory("Strategy")
	euro := testGame("Catan")
	euro.Categories = []Category{strategy}
	tiles := testGame("Azul")
	tiles.Categories = []Category{strategy}
	library := []*Game{euro, tiles}

	date := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	nights := []*GameNight{
		testNight(date, euro),
		testNight(date.AddDate(0, 0, 7), tiles),
	}

	shares := buildCategoryShares(countPlays(nights, library))
	require.Len(t, shares, 1, "one category shared by two games is one entry")
	assert.Equal(t, strconv.Itoa(strategy.ID), shares[0].ID)
	assert.Equal(t, "Strategy", shares[0].Name)
	assert.Equal(t, 2, shares[0].Count)
}

func TestBuildCommonPlayers(t *testing.T) {
	contacts := make([]*Contact, 0, 7)
	attendance := make(map[uuid.UUID]int, 7)
	for i := range 7 {
		contact := testContact(fmt.Sprintf("player%d", i), "Test")
		contacts = append(contacts, &contact)
		attendance[contact.ID] = i // player0 never attended anything
	}

	players := buildCommonPlayers(contacts, attendance)
	require.Len(t, players, commonPlayersLimit)
	assert.Equal(t, "player6 Test", players[0].Name)
	assert.Equal(t, 6, players[0].Count)
	assert.Equal(t, 2, players[4].Count, "zero-attendance contacts are excluded")
}

func TestCountPlaysIgnoresUnownedGames(t *testing.T) {
	owned := testGame("Catan")
	unowned := testGame("Borrowed")

	nights := []*GameNight{testNight(time.Now(), owned, unowned)}
	counts := countPlays(nights, []*Game{owned})

	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0].count)
}

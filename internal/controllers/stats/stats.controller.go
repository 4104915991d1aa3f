package statsController

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"time"

	. "gamenight/internal/models"
	"gamenight/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

const (
	maxShareEntries    = 9
	leastPlayedLimit   = 5
	notPlayedSampleMax = 5
	commonPlayersLimit = 5
)

// Sampler picks k distinct indices out of n. Swapped for a deterministic
// implementation in tests.
type Sampler func(n, k int) []int

func randomSampler(n, k int) []int {
	return rand.Perm(n)[:k]
}

type StatsControllerInterface interface {
	GetWeekdayStats(ctx context.Context, user *User) ([]WeekdayBucket, error)
	GetMostPlayed(ctx context.Context, user *User) ([]PlayShare, error)
	GetLeastPlayed(ctx context.Context, user *User) (*LeastPlayedReport, error)
	GetHighestRated(ctx context.Context, user *User) ([]RatedGame, error)
	GetCategoryBreakdown(ctx context.Context, user *User) ([]PlayShare, error)
	GetCommonPlayers(ctx context.Context, user *User) ([]CommonPlayer, error)
}

type StatsController struct {
	gameNightRepo repositories.GameNightRepository
	gameRepo      repositories.GameRepository
	contactRepo   repositories.ContactRepository
	sample        Sampler
	log           logger.Logger
}

func New(repos repositories.Repository) *StatsController {
	return &StatsController{
		gameNightRepo: repos.GameNight,
		gameRepo:      repos.Game,
		contactRepo:   repos.Contact,
		sample:        randomSampler,
		log:           logger.New("statsController"),
	}
}

// WeekdayBucket aggregates the user's finalized nights that fell on one
// weekday. Averages are nil when no night in the bucket could contribute.
type WeekdayBucket struct {
	Weekday          string   `json:"weekday"`
	Sessions         int      `json:"sessions"`
	AvgOverallRating *float64 `json:"avgOverallRating,omitempty"`
	AvgAttendancePct *float64 `json:"avgAttendancePct,omitempty"`
	AvgLengthMinutes *float64 `json:"avgLengthMinutes,omitempty"`
	AvgUniqueGames   *float64 `json:"avgUniqueGames,omitempty"`
	AvgPlayers       *float64 `json:"avgPlayers,omitempty"`
}

// PlayShare is one slice of a played-games or category distribution. ID is
// empty for category entries and the synthesized "Other" bucket.
type PlayShare struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type LeastPlayedEntry struct {
	Game       GameSummary `json:"game"`
	Count      int         `json:"count"`
	LastPlayed time.Time   `json:"lastPlayed"`
}

type LeastPlayedReport struct {
	LeastPlayed []LeastPlayedEntry `json:"leastPlayed"`
	NotPlayed   []GameSummary      `json:"notPlayed"`
}

type RatedGame struct {
	Game   GameSummary `json:"game"`
	Rating float64     `json:"rating"`
}

type CommonPlayer struct {
	ContactID uuid.UUID `json:"contactId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Count     int       `json:"count"`
}

func (c *StatsController) GetWeekdayStats(
	ctx context.Context,
	user *User,
) ([]WeekdayBucket, error) {
	log := c.log.Function("GetWeekdayStats")

	gamenights, err := c.gameNightRepo.FinalizedByUser(ctx, user.ID)
	if err != nil {
		return nil, log.Err("failed to load finalized game nights", err, "userID", user.ID)
	}

	return buildWeekdayStats(gamenights), nil
}

func (c *StatsController) GetMostPlayed(
	ctx context.Context,
	user *User,
) ([]PlayShare, error) {
	log := c.log.Function("GetMostPlayed")

	counts, err := c.playCounts(ctx, user, log)
	if err != nil {
		return nil, err
	}

	return buildMostPlayed(counts), nil
}

func (c *StatsController) GetLeastPlayed(
	ctx context.Context,
	user *User,
) (*LeastPlayedReport, error) {
	log := c.log.Function("GetLeastPlayed")

	counts, err := c.playCounts(ctx, user, log)
	if err != nil {
		return nil, err
	}

	return &LeastPlayedReport{
		LeastPlayed: buildLeastPlayed(counts),
		NotPlayed:   notPlayedGames(counts, c.sample),
	}, nil
}

func (c *StatsController) GetHighestRated(
	ctx context.Context,
	user *User,
) ([]RatedGame, error) {
	log := c.log.Function("GetHighestRated")

	gamenights, err := c.gameNightRepo.FinalizedByUser(ctx, user.ID)
	if err != nil {
		return nil, log.Err("failed to load finalized game nights", err, "userID", user.ID)
	}
	library, err := c.gameRepo.LibraryWithCategories(ctx, user.ID)
	if err != nil {
		return nil, log.Err("failed to load game library", err, "userID", user.ID)
	}

	return buildHighestRated(gamenights, library), nil
}

func (c *StatsController) GetCategoryBreakdown(
	ctx context.Context,
	user *User,
) ([]PlayShare, error) {
	log := c.log.Function("GetCategoryBreakdown")

	counts, err := c.playCounts(ctx, user, log)
	if err != nil {
		return nil, err
	}

	return buildCategoryShares(counts), nil
}

func (c *StatsController) GetCommonPlayers(
	ctx context.Context,
	user *User,
) ([]CommonPlayer, error) {
	log := c.log.Function("GetCommonPlayers")

	contacts, err := c.contactRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, log.Err("failed to load contacts", err, "userID", user.ID)
	}
	if len(contacts) == 0 {
		return []CommonPlayer{}, nil
	}

	contactIDs := make([]uuid.UUID, 0, len(contacts))
	for _, contact := range contacts {
		contactIDs = append(contactIDs, contact.ID)
	}

	// Attendance is counted across every night the contact attended, not
	// just this user's.
	attendance, err := c.gameNightRepo.CountAttendanceByContacts(ctx, contactIDs)
	if err != nil {
		return nil, log.Err("failed to count contact attendance", err, "userID", user.ID)
	}

	return buildCommonPlayers(contacts, attendance), nil
}

// playCount pairs an owned game with its appearances across the user's
// finalized nights.
type playCount struct {
	game       *Game
	count      int
	lastPlayed time.Time
}

func (c *StatsController) playCounts(
	ctx context.Context,
	user *User,
	log logger.Logger,
) ([]playCount, error) {
	gamenights, err := c.gameNightRepo.FinalizedByUser(ctx, user.ID)
	if err != nil {
		return nil, log.Err("failed to load finalized game nights", err, "userID", user.ID)
	}
	library, err := c.gameRepo.LibraryWithCategories(ctx, user.ID)
	if err != nil {
		return nil, log.Err("failed to load game library", err, "userID", user.ID)
	}

	return countPlays(gamenights, library), nil
}

// countPlays tallies, per owned game, the finalized nights it was played at.
// Library order (catalog insertion order) is preserved so later sorts can
// break ties on it with a stable sort.
func countPlays(gamenights []*GameNight, library []*Game) []playCount {
	counts := make([]playCount, len(library))
	index := make(map[uuid.UUID]int, len(library))
	for i, game := range library {
		counts[i] = playCount{game: game}
		index[game.ID] = i
	}

	for _, gamenight := range gamenights {
		for _, game := range gamenight.Games {
			i, owned := index[game.ID]
			if !owned {
				continue
			}
			counts[i].count++
			if gamenight.Date.After(counts[i].lastPlayed) {
				counts[i].lastPlayed = gamenight.Date
			}
		}
	}

	return counts
}

var weekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

func buildWeekdayStats(gamenights []*GameNight) []WeekdayBucket {
	type accumulator struct {
		sessions      int
		ratingSum     float64
		ratingCount   int
		attendSum     float64
		attendCount   int
		lengthSum     float64
		lengthCount   int
		uniqueGameSum float64
		playerSum     float64
	}

	byWeekday := make(map[time.Weekday]*accumulator, len(weekdayOrder))
	for _, weekday := range weekdayOrder {
		byWeekday[weekday] = &accumulator{}
	}

	for _, gamenight := range gamenights {
		acc := byWeekday[gamenight.Date.Weekday()]
		acc.sessions++
		acc.uniqueGameSum += float64(UniqueGameCount(gamenight))
		acc.playerSum += float64(PlayerCount(gamenight))

		if rating := AverageOverall(gamenight); rating != nil {
			acc.ratingSum += *rating
			acc.ratingCount++
		}
		if ratio := AttendanceRatio(gamenight); ratio != nil {
			acc.attendSum += *ratio * 100
			acc.attendCount++
		}
		if length := SessionLengthMinutes(gamenight); length != nil {
			acc.lengthSum += float64(*length)
			acc.lengthCount++
		}
	}

	buckets := make([]WeekdayBucket, 0, len(weekdayOrder))
	for _, weekday := range weekdayOrder {
		acc := byWeekday[weekday]
		buckets = append(buckets, WeekdayBucket{
			Weekday:          weekday.String(),
			Sessions:         acc.sessions,
			AvgOverallRating: roundedMean(acc.ratingSum, acc.ratingCount),
			AvgAttendancePct: roundedMean(acc.attendSum, acc.attendCount),
			AvgLengthMinutes: roundedMean(acc.lengthSum, acc.lengthCount),
			AvgUniqueGames:   roundedMean(acc.uniqueGameSum, acc.sessions),
			AvgPlayers:       roundedMean(acc.playerSum, acc.sessions),
		})
	}

	return buckets
}

// shareEntry is the pre-percentage input to buildShares.
type shareEntry struct {
	id    string
	name  string
	count int
}

// buildShares converts counted entries, already sorted descending, into
// percentage slices. Past maxShareEntries the tail collapses into a single
// "Other" bucket. The final entry absorbs rounding drift so the reported
// percentages sum to 100.
func buildShares(entries []shareEntry) []PlayShare {
	if len(entries) == 0 {
		return []PlayShare{}
	}

	var total int
	for _, entry := range entries {
		total += entry.count
	}

	head := entries
	var other *shareEntry
	if len(entries) > maxShareEntries {
		head = entries[:maxShareEntries]
		other = &shareEntry{name: "Other"}
		for _, entry := range entries[maxShareEntries:] {
			other.count += entry.count
		}
	}

	shares := make([]PlayShare, 0, len(head)+1)
	var allotted float64
	for _, entry := range head {
		percent := round2(float64(entry.count) / float64(total) * 100)
		allotted += percent
		shares = append(shares, PlayShare{
			ID:      entry.id,
			Name:    entry.name,
			Count:   entry.count,
			Percent: percent,
		})
	}

	if other != nil {
		shares = append(shares, PlayShare{
			Name:    other.name,
			Count:   other.count,
			Percent: round2(100 - allotted),
		})
	} else {
		last := &shares[len(shares)-1]
		last.Percent = round2(100 - (allotted - last.Percent))
	}

	return shares
}

func buildMostPlayed(counts []playCount) []PlayShare {
	played := playedOnly(counts)
	sort.SliceStable(played, func(i, j int) bool {
		return played[i].count > played[j].count
	})

	entries := make([]shareEntry, 0, len(played))
	for _, pc := range played {
		entries = append(entries, shareEntry{
			id:    pc.game.ID.String(),
			name:  pc.game.Title,
			count: pc.count,
		})
	}

	return buildShares(entries)
}

func buildLeastPlayed(counts []playCount) []LeastPlayedEntry {
	played := playedOnly(counts)
	sort.SliceStable(played, func(i, j int) bool {
		return played[i].count < played[j].count
	})
	if len(played) > leastPlayedLimit {
		played = played[:leastPlayedLimit]
	}

	entries := make([]LeastPlayedEntry, 0, len(played))
	for _, pc := range played {
		entries = append(entries, LeastPlayedEntry{
			Game:       pc.game.ToSummary(),
			Count:      pc.count,
			LastPlayed: pc.lastPlayed,
		})
	}

	return entries
}

func notPlayedGames(counts []playCount, sample Sampler) []GameSummary {
	unplayed := make([]*Game, 0)
	for _, pc := range counts {
		if pc.count == 0 {
			unplayed = append(unplayed, pc.game)
		}
	}

	if len(unplayed) > notPlayedSampleMax {
		sampled := make([]*Game, 0, notPlayedSampleMax)
		for _, i := range sample(len(unplayed), notPlayedSampleMax) {
			sampled = append(sampled, unplayed[i])
		}
		unplayed = sampled
	}

	summaries := make([]GameSummary, 0, len(unplayed))
	for _, game := range unplayed {
		summaries = append(summaries, game.ToSummary())
	}

	return summaries
}

// buildHighestRated averages each owned game's per-night rating averages,
// skipping nights where the game went unrated. Games never rated at all are
// left out entirely.
func buildHighestRated(gamenights []*GameNight, library []*Game) []RatedGame {
	rated := make([]RatedGame, 0)
	for _, game := range library {
		var sum float64
		var nights int
		for _, gamenight := range gamenights {
			if !gamenight.HasGame(game.ID) {
				continue
			}
			if rating := AverageGameRating(gamenight, game.ID); rating != nil {
				sum += *rating
				nights++
			}
		}
		if nights == 0 {
			continue
		}
		rated = append(rated, RatedGame{
			Game:   game.ToSummary(),
			Rating: round2(sum / float64(nights)),
		})
	}

	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})

	return rated
}

// buildCategoryShares attributes each game's full play count to every
// category it belongs to. A game played 3 times in 2 categories adds 3 to
// both, so category counts intentionally overlap.
func buildCategoryShares(counts []playCount) []PlayShare {
	totals := make(map[int]int)
	names := make(map[int]string)
	order := make([]int, 0)
	for _, pc := range counts {
		if pc.count == 0 {
			continue
		}
		for _, category := range pc.game.Categories {
			if _, seen := totals[category.ID]; !seen {
				order = append(order, category.ID)
				names[category.ID] = category.Name
			}
			totals[category.ID] += pc.count
		}
	}

	entries := make([]shareEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, shareEntry{
			id:    strconv.Itoa(id),
			name:  names[id],
			count: totals[id],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})

	return buildShares(entries)
}

func buildCommonPlayers(contacts []*Contact, attendance map[uuid.UUID]int) []CommonPlayer {
	players := make([]CommonPlayer, 0, len(contacts))
	for _, contact := range contacts {
		count := attendance[contact.ID]
		if count == 0 {
			continue
		}
		players = append(players, CommonPlayer{
			ContactID: contact.ID,
			Name:      contact.FullName(),
			Email:     contact.Email,
			Count:     count,
		})
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Count > players[j].Count
	})
	if len(players) > commonPlayersLimit {
		players = players[:commonPlayersLimit]
	}

	return players
}

func playedOnly(counts []playCount) []playCount {
	played := make([]playCount, 0, len(counts))
	for _, pc := range counts {
		if pc.count > 0 {
			played = append(played, pc)
		}
	}
	return played
}

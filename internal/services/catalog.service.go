package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"gamenight/config"
	"gamenight/internal/errs"
	"gamenight/internal/metrics"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
)

// CatalogService looks board games up on the BoardGameGeek XML API2. Lookups
// are synchronous and blocking; a failure aborts the enclosing request.
type CatalogService struct {
	client  *http.Client
	baseURL string
	log     logger.Logger
}

// CatalogGame is the parsed external record before category resolution.
type CatalogGame struct {
	BGGID       int64
	Title       string
	Description string
	Image       string
	PubYear     int
	MinPlayers  int
	MaxPlayers  int
	Playtime    int
	PlayerAge   int
	Weight      decimal.Decimal
	Categories  []string
}

type bggItems struct {
	XMLName xml.Name  `xml:"items"`
	Items   []bggItem `xml:"item"`
}

type bggItem struct {
	ID            int64    `xml:"id,attr"`
	Image         string   `xml:"image"`
	Description   string   `xml:"description"`
	Names         []bggTag `xml:"name"`
	YearPublished bggTag   `xml:"yearpublished"`
	MinPlayers    bggTag   `xml:"minplayers"`
	MaxPlayers    bggTag   `xml:"maxplayers"`
	PlayingTime   bggTag   `xml:"playingtime"`
	MinAge        bggTag   `xml:"minage"`
	Links         []bggTag `xml:"link"`
	Statistics    struct {
		Ratings struct {
			AverageWeight bggTag `xml:"averageweight"`
		} `xml:"ratings"`
	} `xml:"statistics"`
}

// bggTag covers BGG's attribute-carrying elements: <name type="primary"
// value="Catan"/>, <minplayers value="3"/>, <link type="boardgamecategory"
// value="Negotiation"/>.
type bggTag struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

func NewCatalogService(config config.Config) *CatalogService {
	return &CatalogService{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: config.BGGBaseURL,
		log:     logger.New("catalog"),
	}
}

// Fetch retrieves and parses one game by external id. An unknown id, a
// non-200 response or unparseable XML all surface as ErrUpstream.
func (c *CatalogService) Fetch(ctx context.Context, bggID int64) (game *CatalogGame, err error) {
	log := c.log.Function("Fetch")

	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.CatalogLookups.WithLabelValues(outcome).Inc()
	}()

	url := fmt.Sprintf("%s/thing?id=%d&stats=1", c.baseURL, bggID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, log.Err("failed to create catalog request", err, "bggID", bggID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request for %d failed: %w: %w", bggID, errs.ErrUpstream, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn("failed to close catalog response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d for %d: %w",
			resp.StatusCode, bggID, errs.ErrUpstream)
	}

	var parsed bggItems
	if err := xml.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog response for %d: %w: %w",
			bggID, errs.ErrUpstream, err)
	}

	if len(parsed.Items) == 0 {
		return nil, fmt.Errorf("catalog has no game with id %d: %w", bggID, errs.ErrUpstream)
	}

	record := toCatalogGame(parsed.Items[0])
	log.Info("catalog lookup succeeded", "bggID", bggID, "title", record.Title)
	return &record, nil
}

func toCatalogGame(item bggItem) CatalogGame {
	game := CatalogGame{
		BGGID:       item.ID,
		Title:       primaryName(item.Names),
		Description: item.Description,
		Image:       item.Image,
		PubYear:     intValue(item.YearPublished),
		MinPlayers:  intValue(item.MinPlayers),
		MaxPlayers:  intValue(item.MaxPlayers),
		Playtime:    intValue(item.PlayingTime),
		PlayerAge:   intValue(item.MinAge),
	}

	if weight, err := decimal.NewFromString(item.Statistics.Ratings.AverageWeight.Value); err == nil {
		game.Weight = weight
	}

	for _, link := range item.Links {
		if link.Type == "boardgamecategory" {
			game.Categories = append(game.Categories, link.Value)
		}
	}

	return game
}

// primaryName picks the English primary title among the listed names,
// falling back to the first entry.
func primaryName(names []bggTag) string {
	for _, name := range names {
		if name.Type == "primary" {
			return name.Value
		}
	}
	if len(names) > 0 {
		return names[0].Value
	}
	return ""
}

func intValue(tag bggTag) int {
	var value int
	_, _ = fmt.Sscanf(tag.Value, "%d", &value)
	return value
}

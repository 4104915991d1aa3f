package models

import "github.com/shopspring/decimal"

// Game is a local copy of an external-catalog board game record, shared by all
// users. Ownership and wishlisting are per-user many-to-many relations.
type Game struct {
	BaseUUIDModel
	Title       string          `gorm:"type:text;not null"           json:"title"`
	BGGID       int64           `gorm:"column:bgg_id;uniqueIndex"    json:"bggId"`
	PubYear     int             `gorm:"type:int"                     json:"pubYear"`
	Description string          `gorm:"type:text"                    json:"description,omitempty"`
	MinPlayers  int             `gorm:"type:int"                     json:"minPlayers"`
	MaxPlayers  int             `gorm:"type:int"                     json:"maxPlayers"`
	Playtime    int             `gorm:"type:int"                     json:"playtime"`
	PlayerAge   int             `gorm:"type:int"                     json:"playerAge"`
	Weight      decimal.Decimal `gorm:"type:numeric(4,2)"            json:"weight"`
	Image       string          `gorm:"type:text"                    json:"image,omitempty"`

	Owners     []User     `gorm:"many2many:game_owners"      json:"-"`
	Wishlisted []User     `gorm:"many2many:game_wishlisters" json:"-"`
	Tags       []Tag      `gorm:"many2many:game_tags"        json:"tags,omitempty"`
	Categories []Category `gorm:"many2many:game_categories"  json:"categories,omitempty"`
}

// GameSummary is the list shape for library and wishlist responses.
type GameSummary struct {
	ID      string `json:"id"`
	BGGID   int64  `json:"bggId"`
	Title   string `json:"title"`
	PubYear int    `json:"pubYear"`
	Image   string `json:"image,omitempty"`
}

func (g *Game) ToSummary() GameSummary {
	return GameSummary{
		ID:      g.ID.String(),
		BGGID:   g.BGGID,
		Title:   g.Title,
		PubYear: g.PubYear,
		Image:   g.Image,
	}
}

package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamenight/config"
	"gamenight/internal/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catanXML = `<?xml version="1.0" encoding="utf-8"?>
<items termsofuse="https://boardgamegeek.com/xmlapi/termsofuse">
  <item type="boardgame" id="13">
    <image>https://cf.geekdo-images.com/catan.jpg</image>
    <name type="primary" sortindex="1" value="CATAN"/>
    <name type="alternate" sortindex="1" value="Catan: Das Spiel"/>
    <description>Trade, build, settle.</description>
    <yearpublished value="1995"/>
    <minplayers value="3"/>
    <maxplayers value="4"/>
    <playingtime value="120"/>
    <minage value="10"/>
    <link type="boardgamecategory" id="1026" value="Negotiation"/>
    <link type="boardgamecategory" id="1086" value="Economic"/>
    <link type="boardgamemechanic" id="2072" value="Dice Rolling"/>
    <statistics page="1">
      <ratings>
        <averageweight value="2.2896"/>
      </ratings>
    </statistics>
  </item>
</items>`

const emptyItemsXML = `<?xml version="1.0" encoding="utf-8"?>
<items termsofuse="https://boardgamegeek.com/xmlapi/termsofuse"/>`

func newTestCatalog(t *testing.T, handler http.HandlerFunc) *CatalogService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewCatalogService(config.Config{BGGBaseURL: server.URL})
}

func TestCatalogService_Fetch(t *testing.T) {
	t.Run("Parses a full game record", func(t *testing.T) {
		catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "13", r.URL.Query().Get("id"))
			assert.Equal(t, "1", r.URL.Query().Get("stats"))
			_, _ = w.Write([]byte(catanXML))
		})

		game, err := catalog.Fetch(context.Background(), 13)
		require.NoError(t, err)

		assert.Equal(t, int64(13), game.BGGID)
		assert.Equal(t, "CATAN", game.Title)
		assert.Equal(t, "Trade, build, settle.", game.Description)
		assert.Equal(t, 1995, game.PubYear)
		assert.Equal(t, 3, game.MinPlayers)
		assert.Equal(t, 4, game.MaxPlayers)
		assert.Equal(t, 120, game.Playtime)
		assert.Equal(t, 10, game.PlayerAge)
		assert.True(t, decimal.NewFromFloat(2.2896).Equal(game.Weight))
		assert.Equal(t, []string{"Negotiation", "Economic"}, game.Categories)
	})

	t.Run("Unknown id is an upstream failure", func(t *testing.T) {
		catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(emptyItemsXML))
		})

		_, err := catalog.Fetch(context.Background(), 999999999)
		assert.ErrorIs(t, err, errs.ErrUpstream)
	})

	t.Run("Non-200 response is an upstream failure", func(t *testing.T) {
		catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := catalog.Fetch(context.Background(), 13)
		assert.ErrorIs(t, err, errs.ErrUpstream)
	})

	t.Run("Garbage body is an upstream failure", func(t *testing.T) {
		catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not xml at all"))
		})

		_, err := catalog.Fetch(context.Background(), 13)
		assert.ErrorIs(t, err, errs.ErrUpstream)
	})
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomRID(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		rid := RandomRID()
		assert.Len(t, rid, RIDLength)
		for _, char := range rid {
			assert.True(t,
				(char >= 'a' && char <= 'z') ||
					(char >= 'A' && char <= 'Z') ||
					(char >= '0' && char <= '9'),
				"rid must be alphanumeric, got %q", rid)
		}
		seen[rid] = true
	}
	assert.Greater(t, len(seen), 1, "rids should not repeat constantly")
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, 14, date.Day())

	_, err = ParseDate("03/14/2026")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	clock, err := ParseClock("19:30")
	require.NoError(t, err)
	assert.Equal(t, 19, clock.Hour())
	assert.Equal(t, 30, clock.Minute())

	clock, err = ParseClock("19:30:15")
	require.NoError(t, err)
	assert.Equal(t, 19, clock.Hour())

	_, err = ParseClock("7:30 PM")
	assert.Error(t, err)
}

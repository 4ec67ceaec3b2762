package database

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
)

func TestDecodeStoredCloseSeries(t *testing.T) {
	logger := log.With().Str("component", "database").Logger()
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	// Ensure stored rows decode into a price series and malformed rows are
	// skipped.
	rows := []map[string]any{
		{"date": float64(start.Unix()), "close": float64(100)},
		{"date": float64(start.AddDate(0, 0, 1).Unix()), "close": float64(98.5)},
		{"date": "not-a-timestamp", "close": float64(97)},
		{"close": float64(96)},
	}

	series := decodeStoredCloseSeries("^GSPC", rows, &logger)
	assert.Equal(t, len(series), 2)
	assert.Equal(t, series[0].Date, start)
	assert.Equal(t, series[0].Close, float64(100))
	assert.Equal(t, series[1].Date, start.AddDate(0, 0, 1))
	assert.Equal(t, series[1].Close, 98.5)
}

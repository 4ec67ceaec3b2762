package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dnldd/dropscan/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
)

func TestHistoricData(t *testing.T) {
	logger := log.With().Str("component", "historicdata").Logger()
	market := "^GSPC"

	// Ensure creating a historic data source from a missing file fails.
	_, err := NewHistoricData(&HistoricDataConfig{
		Market:   market,
		FilePath: filepath.Join(t.TempDir(), "missing.json"),
		Logger:   &logger,
	})
	assert.Error(t, err)

	// Ensure historic data can be loaded from a file.
	hd, err := NewHistoricData(&HistoricDataConfig{
		Market:   market,
		FilePath: "../testdata/closeseries.json",
		Logger:   &logger,
	})
	assert.NoError(t, err)

	// Ensure the loaded series is served time-ascending for the configured
	// market.
	series, err := hd.FetchCloseSeries(context.Background(), market, shared.OneYear)
	assert.NoError(t, err)
	assert.Equal(t, len(series), 31)
	assert.True(t, series[0].Date.Before(series[len(series)-1].Date))

	// Ensure requests for other markets fail with a data unavailable error.
	_, err = hd.FetchCloseSeries(context.Background(), "AAPL", shared.OneYear)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrDataUnavailable))
}

func TestHistoricDataPeriodTrim(t *testing.T) {
	logger := log.With().Str("component", "historicdata").Logger()
	market := "^GSPC"

	// Ensure the lookback period trims the served series relative to its
	// last entry. The fixture spans four yearly entries.
	data := `[{"date":"2024-01-02","close":100},
		{"date":"2023-01-02","close":98},
		{"date":"2022-01-02","close":96},
		{"date":"2021-01-02","close":94}]`
	path := filepath.Join(t.TempDir(), "closeseries.json")
	err := os.WriteFile(path, []byte(data), 0o644)
	assert.NoError(t, err)

	hd, err := NewHistoricData(&HistoricDataConfig{
		Market:   market,
		FilePath: path,
		Logger:   &logger,
	})
	assert.NoError(t, err)

	series, err := hd.FetchCloseSeries(context.Background(), market, shared.TwoYears)
	assert.NoError(t, err)
	assert.Equal(t, len(series), 3)
	assert.Equal(t, series[0].Close, 96)

	series, err = hd.FetchCloseSeries(context.Background(), market, shared.FiveYears)
	assert.NoError(t, err)
	assert.Equal(t, len(series), 4)
}

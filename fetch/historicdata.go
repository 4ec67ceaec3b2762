package fetch

import (
	"context"
	"fmt"
	"os"

	"github.com/dnldd/dropscan/shared"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// HistoricDataConfig represents the historic data source configuration.
type HistoricDataConfig struct {
	// Market represents the historic data market.
	Market string
	// FilePath is the filepath to the historic close series data.
	FilePath string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// HistoricData represents a file backed close series source, used for
// offline runs without a network dependency.
type HistoricData struct {
	cfg    *HistoricDataConfig
	series shared.PriceSeries
}

// Ensure the historic data source implements the CloseSeriesFetcher interface.
var _ shared.CloseSeriesFetcher = (*HistoricData)(nil)

// loadHistoricData loads the historic data bytes from the provided file path.
func loadHistoricData(filepath string) ([]gjson.Result, error) {
	readb, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading historic data from file with path '%s': %w", filepath, err)
	}

	return gjson.ParseBytes(readb).Array(), nil
}

// NewHistoricData initializes a new historic data source.
func NewHistoricData(cfg *HistoricDataConfig) (*HistoricData, error) {
	data, err := loadHistoricData(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("loading historic data: %w", err)
	}

	series, err := ParseCloseSeries(data)
	if err != nil {
		return nil, fmt.Errorf("parsing close series: %w", err)
	}

	cfg.Logger.Info().Msgf("loaded %d historic close entries for %s from %s",
		len(series), cfg.Market, cfg.FilePath)

	return &HistoricData{
		cfg:    cfg,
		series: series,
	}, nil
}

// FetchCloseSeries returns the loaded close series trimmed to the provided
// lookback period, anchored on the last entry of the data. Requests for
// markets other than the configured one wrap shared.ErrDataUnavailable.
func (h *HistoricData) FetchCloseSeries(_ context.Context, market string, period shared.Period) (shared.PriceSeries, error) {
	if market != h.cfg.Market {
		return nil, fmt.Errorf("%w: no historic data for market %s", shared.ErrDataUnavailable, market)
	}

	if len(h.series) == 0 {
		return nil, fmt.Errorf("%w: historic data for %s is empty", shared.ErrDataUnavailable, market)
	}

	series, err := h.series.TrimToPeriod(period)
	if err != nil {
		return nil, fmt.Errorf("trimming historic data for %s: %w", market, err)
	}

	return series, nil
}

package fetch

import (
	"context"
	"errors"

	"github.com/dnldd/dropscan/shared"
	"github.com/rs/zerolog"
)

// CachedFetcherConfig represents the cached fetcher configuration.
type CachedFetcherConfig struct {
	// Source is the upstream close series data source.
	Source shared.CloseSeriesFetcher
	// Store caches close series fetched from the source.
	Store shared.CloseSeriesStorer
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// CachedFetcher wraps a close series source with a store. Successful fetches
// refresh the stored series for the market, and the store serves the last
// fetched series when the source is unavailable.
type CachedFetcher struct {
	cfg *CachedFetcherConfig
}

// Ensure the cached fetcher implements the CloseSeriesFetcher interface.
var _ shared.CloseSeriesFetcher = (*CachedFetcher)(nil)

// NewCachedFetcher initializes a new cached fetcher.
func NewCachedFetcher(cfg *CachedFetcherConfig) *CachedFetcher {
	return &CachedFetcher{cfg: cfg}
}

// FetchCloseSeries fetches a close series from the source, falling back to
// the stored series for the market when the source is unavailable. A store
// failure never fails a successful source fetch.
func (c *CachedFetcher) FetchCloseSeries(ctx context.Context, market string, period shared.Period) (shared.PriceSeries, error) {
	series, err := c.cfg.Source.FetchCloseSeries(ctx, market, period)
	if err != nil {
		if !errors.Is(err, shared.ErrDataUnavailable) {
			return nil, err
		}

		cached, cacheErr := c.cfg.Store.FetchStoredCloseSeries(ctx, market)
		if cacheErr != nil || len(cached) == 0 {
			return nil, err
		}

		trimmed, trimErr := cached.TrimToPeriod(period)
		if trimErr != nil {
			return nil, trimErr
		}

		c.cfg.Logger.Warn().Msgf("serving %d stored close entries for %s, source unavailable: %v",
			len(trimmed), market, err)

		return trimmed, nil
	}

	err = c.cfg.Store.PersistCloseSeries(ctx, market, series)
	if err != nil {
		c.cfg.Logger.Error().Msgf("caching close series for %s: %v", market, err)
	}

	return series, nil
}

package fetch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dnldd/dropscan/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
)

// stubSource is a canned close series source.
type stubSource struct {
	series shared.PriceSeries
	err    error
}

func (s *stubSource) FetchCloseSeries(_ context.Context, _ string, _ shared.Period) (shared.PriceSeries, error) {
	return s.series, s.err
}

// stubStore is an in-memory close series store.
type stubStore struct {
	stored     map[string]shared.PriceSeries
	persistErr error
}

func (s *stubStore) PersistCloseSeries(_ context.Context, market string, series shared.PriceSeries) error {
	if s.persistErr != nil {
		return s.persistErr
	}

	s.stored[market] = series
	return nil
}

func (s *stubStore) FetchStoredCloseSeries(_ context.Context, market string) (shared.PriceSeries, error) {
	return s.stored[market], nil
}

// closeSeries generates a series of the provided closes on consecutive days.
func closeSeries(closes []float64) shared.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series := make(shared.PriceSeries, 0, len(closes))
	for idx := range closes {
		series = append(series, shared.PricePoint{
			Date:  start.AddDate(0, 0, idx),
			Close: closes[idx],
		})
	}

	return series
}

func TestCachedFetcher(t *testing.T) {
	logger := log.With().Str("component", "cachedfetcher").Logger()
	market := "^GSPC"
	series := closeSeries([]float64{100, 101, 99.5})

	// Ensure a successful source fetch refreshes the stored series.
	source := &stubSource{series: series}
	store := &stubStore{stored: make(map[string]shared.PriceSeries)}
	cf := NewCachedFetcher(&CachedFetcherConfig{
		Source: source,
		Store:  store,
		Logger: &logger,
	})

	got, err := cf.FetchCloseSeries(context.Background(), market, shared.OneYear)
	assert.NoError(t, err)
	assert.Equal(t, len(got), 3)
	assert.Equal(t, len(store.stored[market]), 3)

	// Ensure an unavailable source is served from the stored series.
	source.err = fmt.Errorf("%w: source down", shared.ErrDataUnavailable)
	got, err = cf.FetchCloseSeries(context.Background(), market, shared.OneYear)
	assert.NoError(t, err)
	assert.Equal(t, len(got), 3)
	assert.Equal(t, got[0].Close, float64(100))

	// Ensure an unavailable source with nothing stored propagates the error.
	delete(store.stored, market)
	_, err = cf.FetchCloseSeries(context.Background(), market, shared.OneYear)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrDataUnavailable))

	// Ensure errors other than data unavailability never consult the store.
	store.stored[market] = series
	source.err = errors.New("unknown period")
	_, err = cf.FetchCloseSeries(context.Background(), market, shared.OneYear)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, shared.ErrDataUnavailable))

	// Ensure a store failure never fails a successful source fetch.
	source.err = nil
	store.persistErr = errors.New("store down")
	got, err = cf.FetchCloseSeries(context.Background(), market, shared.OneYear)
	assert.NoError(t, err)
	assert.Equal(t, len(got), 3)
}

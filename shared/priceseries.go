package shared

import "time"

const (
	// DateLayout is the format layout for parsing close series dates.
	DateLayout = "2006-01-02"
)

// PricePoint represents a unit closing price observation for a market.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries represents a time-ascending sequence of closing prices for a market.
//
// Drop point detection compares entries at positional offsets (t-1, t-2, t+1),
// so the series is kept as a random access slice rather than a date keyed map.
type PriceSeries []PricePoint

// Closes returns the closing prices of the series.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for idx := range s {
		closes[idx] = s[idx].Close
	}

	return closes
}

// TrimToPeriod returns the tail of the series covering the provided lookback
// period, anchored on the last entry.
func (s PriceSeries) TrimToPeriod(period Period) (PriceSeries, error) {
	if len(s) == 0 {
		return s, nil
	}

	start, err := period.Start(s[len(s)-1].Date)
	if err != nil {
		return nil, err
	}

	for idx := range s {
		if !s[idx].Date.Before(start) {
			return s[idx:], nil
		}
	}

	return PriceSeries{}, nil
}

// IndexOf returns the position of the provided date in the series and whether
// it exists.
func (s PriceSeries) IndexOf(date time.Time) (int, bool) {
	for idx := range s {
		if s[idx].Date.Equal(date) {
			return idx, true
		}
	}

	return 0, false
}

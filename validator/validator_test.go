package validator

import (
	"testing"
	"time"

	"github.com/dnldd/dropscan/shared"
	"github.com/peterldowns/testy/assert"
)

// series generates a series of the provided closes on consecutive days.
func series(closes []float64) shared.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	prices := make(shared.PriceSeries, 0, len(closes))
	for idx := range closes {
		prices = append(prices, shared.PricePoint{
			Date:  start.AddDate(0, 0, idx),
			Close: closes[idx],
		})
	}

	return prices
}

// candidateAt flags the series entry at the provided position as a candidate.
func candidateAt(prices shared.PriceSeries, idx int) shared.DropPoint {
	return shared.NewDropPoint(prices[idx].Date, prices[idx].Close,
		[]shared.Reason{shared.DeathCross, shared.OscillatorDecline})
}

func TestValidateDropPoints(t *testing.T) {
	// Ensure no candidates yields two empty lists.
	prices := series([]float64{100, 99, 98})
	outcome := ValidateDropPoints(prices, nil, DefaultThreshold, DefaultForwardWindow)
	assert.Equal(t, len(outcome.Precise), 0)
	assert.Equal(t, len(outcome.Inaccurate), 0)

	// Ensure a forward minimum exactly at the threshold boundary is precise,
	// the comparison is inclusive.
	prices = series([]float64{100, 98, 99, 100, 100})
	outcome = ValidateDropPoints(prices, []shared.DropPoint{candidateAt(prices, 0)},
		DefaultThreshold, DefaultForwardWindow)
	assert.Equal(t, len(outcome.Precise), 1)
	assert.Equal(t, len(outcome.Inaccurate), 0)
	assert.Equal(t, outcome.Precise[0].MinForwardPrice, 98)
	assert.Equal(t, outcome.Precise[0].PctChange, -0.02)

	// Ensure a shallower forward drop is inaccurate.
	prices = series([]float64{100, 99, 99.5, 100, 100})
	outcome = ValidateDropPoints(prices, []shared.DropPoint{candidateAt(prices, 0)},
		DefaultThreshold, DefaultForwardWindow)
	assert.Equal(t, len(outcome.Precise), 0)
	assert.Equal(t, len(outcome.Inaccurate), 1)
	assert.Equal(t, outcome.Inaccurate[0].PctChange, -0.01)
}

func TestValidateDropPointsExclusions(t *testing.T) {
	prices := series([]float64{100, 95, 90, 85, 80, 75})

	// Ensure a candidate absent from the price index is excluded from both
	// lists.
	missing := shared.NewDropPoint(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), 100,
		[]shared.Reason{shared.DeathCross, shared.BearishDivergence})
	outcome := ValidateDropPoints(prices, []shared.DropPoint{missing},
		DefaultThreshold, DefaultForwardWindow)
	assert.Equal(t, len(outcome.Precise), 0)
	assert.Equal(t, len(outcome.Inaccurate), 0)

	// Ensure a candidate at the last entry is excluded, a single observation
	// cannot produce a meaningful forward minimum.
	outcome = ValidateDropPoints(prices, []shared.DropPoint{candidateAt(prices, len(prices)-1)},
		DefaultThreshold, DefaultForwardWindow)
	assert.Equal(t, len(outcome.Precise), 0)
	assert.Equal(t, len(outcome.Inaccurate), 0)

	// Ensure a candidate near the series end validates against a truncated
	// forward window.
	outcome = ValidateDropPoints(prices, []shared.DropPoint{candidateAt(prices, len(prices)-2)},
		DefaultThreshold, DefaultForwardWindow)
	assert.Equal(t, len(outcome.Precise), 1)
	assert.Equal(t, outcome.Precise[0].MinForwardPrice, 75)
}

func TestValidateDropPointsPartition(t *testing.T) {
	// Ensure every validatable candidate lands in exactly one list and both
	// lists preserve candidate order.
	prices := series([]float64{100, 97, 96, 100, 100, 99.5, 100, 100, 100, 100, 89, 88})
	candidates := []shared.DropPoint{
		candidateAt(prices, 0),  // falls to 96 within the window, precise.
		candidateAt(prices, 5),  // barely moves, inaccurate.
		candidateAt(prices, 8),  // falls to 88, precise.
		candidateAt(prices, 11), // last entry, excluded.
	}

	outcome := ValidateDropPoints(prices, candidates, DefaultThreshold, DefaultForwardWindow)
	assert.Equal(t, len(outcome.Precise), 2)
	assert.Equal(t, len(outcome.Inaccurate), 1)
	assert.Equal(t, outcome.Precise[0].Date, prices[0].Date)
	assert.Equal(t, outcome.Precise[1].Date, prices[8].Date)
	assert.Equal(t, outcome.Inaccurate[0].Date, prices[5].Date)

	// Ensure the forward window size is honoured. With a window of two only
	// the immediate next observation is inspected.
	prices = series([]float64{100, 100, 100, 90})
	outcome = ValidateDropPoints(prices, []shared.DropPoint{candidateAt(prices, 0)},
		DefaultThreshold, 2)
	assert.Equal(t, len(outcome.Precise), 0)
	assert.Equal(t, len(outcome.Inaccurate), 1)
}

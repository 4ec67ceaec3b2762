package detector

import "github.com/dnldd/dropscan/shared"

const (
	// Quorum is the minimum number of concurring drop conditions required to
	// flag a candidate. A single weak signal is not actionable on its own.
	Quorum = 2
	// DefaultOscillatorMagnitude is the minimum single-step oscillator drop,
	// as a fraction of the current price, for an oscillator decline to be
	// considered economically significant.
	DefaultOscillatorMagnitude = 0.01
	// minSeriesSize is the minimum series size evaluated by the detector.
	minSeriesSize = 3
)

// deathCross reports whether the macd line crossed from above to below the
// signal line between t-1 and t, with a negative oscillator at t.
func deathCross(indicators *shared.IndicatorSeries, idx int) bool {
	if idx < 1 {
		return false
	}

	return indicators.MACD[idx] < indicators.Signal[idx] &&
		indicators.MACD[idx-1] > indicators.Signal[idx-1] &&
		indicators.Osc(idx) < 0
}

// oscillatorDecline reports whether the oscillator strictly decreased for two
// consecutive steps, with the last step exceeding the magnitude fraction of
// the current price.
func oscillatorDecline(prices shared.PriceSeries, indicators *shared.IndicatorSeries, idx int, magnitude float64) bool {
	if idx < 2 {
		return false
	}

	osc := indicators.Osc(idx)
	oscPrev := indicators.Osc(idx - 1)
	oscPrevPrev := indicators.Osc(idx - 2)

	return osc < oscPrev && oscPrev < oscPrevPrev &&
		oscPrev-osc > magnitude*prices[idx].Close
}

// bearishDivergence reports whether a death cross at t coincides with the
// price being a local maximum relative to its immediate neighbours. It needs
// one step of lookahead, so it cannot hold at the last entry.
func bearishDivergence(prices shared.PriceSeries, indicators *shared.IndicatorSeries, idx int) bool {
	if idx+1 >= len(prices) {
		return false
	}

	return deathCross(indicators, idx) &&
		prices[idx].Close > prices[idx-1].Close &&
		prices[idx].Close > prices[idx+1].Close
}

// FindDropPoints evaluates the drop conditions over the provided close series
// and its indicators, flagging entries where at least Quorum conditions
// concur. The returned drop points are ordered by date and carry the
// contributing reasons and confluence count.
func FindDropPoints(prices shared.PriceSeries, indicators *shared.IndicatorSeries, magnitude float64) []shared.DropPoint {
	drops := make([]shared.DropPoint, 0)
	if len(prices) < minSeriesSize || indicators.Len() != len(prices) {
		return drops
	}

	if magnitude <= 0 {
		magnitude = DefaultOscillatorMagnitude
	}

	for idx := range prices {
		reasons := make([]shared.Reason, 0, 3)
		if deathCross(indicators, idx) {
			reasons = append(reasons, shared.DeathCross)
		}
		if oscillatorDecline(prices, indicators, idx, magnitude) {
			reasons = append(reasons, shared.OscillatorDecline)
		}
		if bearishDivergence(prices, indicators, idx) {
			reasons = append(reasons, shared.BearishDivergence)
		}

		if len(reasons) >= Quorum {
			drops = append(drops, shared.NewDropPoint(prices[idx].Date, prices[idx].Close, reasons))
		}
	}

	return drops
}

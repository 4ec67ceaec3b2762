package validator

import "github.com/dnldd/dropscan/shared"

const (
	// DefaultThreshold is the forward drop fraction required to confirm a
	// candidate drop point.
	DefaultThreshold = 0.02
	// DefaultForwardWindow is the number of observations, including the
	// candidate itself, inspected ahead of a candidate.
	DefaultForwardWindow = 5
	// minForwardPoints is the minimum number of forward observations needed
	// to validate a candidate.
	minForwardPoints = 2
)

// Outcome partitions validated candidates into confirmed and unconfirmed
// drops. Candidates that cannot be validated appear in neither list.
type Outcome struct {
	Precise    []shared.ValidatedDrop
	Inaccurate []shared.ValidatedDrop
}

// ValidateDropPoints classifies each candidate against realized forward price
// movement. A candidate is precise if the minimum close over its forward
// window fell at least the threshold fraction below its own close, the
// boundary is inclusive. Candidates absent from the price index or with fewer
// than two forward observations are excluded silently, being unable to
// validate is an expected outcome, not an error. Both outcome lists preserve
// candidate order.
func ValidateDropPoints(prices shared.PriceSeries, candidates []shared.DropPoint, threshold float64, forwardWindow int) *Outcome {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if forwardWindow < minForwardPoints {
		forwardWindow = DefaultForwardWindow
	}

	outcome := &Outcome{
		Precise:    make([]shared.ValidatedDrop, 0, len(candidates)),
		Inaccurate: make([]shared.ValidatedDrop, 0, len(candidates)),
	}

	for idx := range candidates {
		candidate := candidates[idx]

		pos, ok := prices.IndexOf(candidate.Date)
		if !ok {
			continue
		}

		end := pos + forwardWindow
		if end > len(prices) {
			end = len(prices)
		}

		window := prices[pos:end]
		if len(window) < minForwardPoints {
			continue
		}

		entry := window[0].Close
		minForward := entry
		for k := range window {
			if window[k].Close < minForward {
				minForward = window[k].Close
			}
		}

		validated := shared.ValidatedDrop{
			DropPoint:       candidate,
			MinForwardPrice: minForward,
			PctChange:       (minForward - entry) / entry,
		}

		switch {
		case validated.PctChange <= -threshold:
			outcome.Precise = append(outcome.Precise, validated)
		default:
			outcome.Inaccurate = append(outcome.Inaccurate, validated)
		}
	}

	return outcome
}

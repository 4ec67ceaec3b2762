package indicator

import (
	"errors"
	"fmt"

	"github.com/dnldd/dropscan/shared"
)

const (
	// DefaultShortWindow is the default span for the short ema.
	DefaultShortWindow = 12
	// DefaultLongWindow is the default span for the long ema.
	DefaultLongWindow = 26
	// DefaultSignalWindow is the default span for the signal line ema.
	DefaultSignalWindow = 9
)

// MACDParams represents the window parameters for macd computation.
type MACDParams struct {
	// ShortWindow is the span of the short ema.
	ShortWindow int
	// LongWindow is the span of the long ema.
	LongWindow int
	// SignalWindow is the span of the signal line ema.
	SignalWindow int
}

// DefaultMACDParams returns the standard 12/26/9 macd parameters.
func DefaultMACDParams() MACDParams {
	return MACDParams{
		ShortWindow:  DefaultShortWindow,
		LongWindow:   DefaultLongWindow,
		SignalWindow: DefaultSignalWindow,
	}
}

// Validate asserts the params have sane inputs.
func (p *MACDParams) Validate() error {
	var errs error

	if p.ShortWindow < 1 {
		errs = errors.Join(errs, fmt.Errorf("short window must be a positive integer, got %d", p.ShortWindow))
	}
	if p.LongWindow < 1 {
		errs = errors.Join(errs, fmt.Errorf("long window must be a positive integer, got %d", p.LongWindow))
	}
	if p.SignalWindow < 1 {
		errs = errors.Join(errs, fmt.Errorf("signal window must be a positive integer, got %d", p.SignalWindow))
	}

	return errs
}

// EMA computes the exponentially weighted moving average of the provided
// values with the provided span. The smoothing factor is 2/(span+1) and the
// output is seeded by the first input value, so no warm-up bias correction
// is applied.
func EMA(values []float64, span int) []float64 {
	ema := make([]float64, len(values))
	if len(values) == 0 {
		return ema
	}

	alpha := 2 / float64(span+1)
	ema[0] = values[0]
	for idx := 1; idx < len(values); idx++ {
		ema[idx] = alpha*values[idx] + (1-alpha)*ema[idx-1]
	}

	return ema
}

// ComputeIndicators derives the macd line and signal line from the provided
// close series. The outputs share the positional index of the input series,
// a degenerate input yields a degenerate, well defined output rather than
// an error.
func ComputeIndicators(prices shared.PriceSeries, params MACDParams) (*shared.IndicatorSeries, error) {
	err := params.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating macd params: %w", err)
	}

	closes := prices.Closes()
	shortEMA := EMA(closes, params.ShortWindow)
	longEMA := EMA(closes, params.LongWindow)

	macd := make([]float64, len(closes))
	for idx := range closes {
		macd[idx] = shortEMA[idx] - longEMA[idx]
	}

	return &shared.IndicatorSeries{
		MACD:   macd,
		Signal: EMA(macd, params.SignalWindow),
	}, nil
}

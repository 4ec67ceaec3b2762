package shared

// IndicatorSeries holds the MACD line and signal line derived from a price
// series. Both lines share the positional index of the source series.
type IndicatorSeries struct {
	MACD   []float64 `json:"macd"`
	Signal []float64 `json:"signal"`
}

// Len returns the number of entries in the series.
func (s *IndicatorSeries) Len() int {
	return len(s.MACD)
}

// Osc returns the oscillator (histogram) value at the provided position.
func (s *IndicatorSeries) Osc(idx int) float64 {
	return s.MACD[idx] - s.Signal[idx]
}

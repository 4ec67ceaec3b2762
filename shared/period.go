package shared

import (
	"fmt"
	"time"
)

// Period represents the lookback period for a close series fetch.
type Period string

const (
	ThreeMonths Period = "3mo"
	SixMonths   Period = "6mo"
	OneYear     Period = "1y"
	TwoYears    Period = "2y"
	FiveYears   Period = "5y"
)

// Validate asserts the period is a known lookback period.
func (p Period) Validate() error {
	switch p {
	case ThreeMonths, SixMonths, OneYear, TwoYears, FiveYears:
		return nil
	default:
		return fmt.Errorf("unknown period provided: %s", string(p))
	}
}

// Start returns the fetch start time for the period relative to the provided
// reference time.
func (p Period) Start(ref time.Time) (time.Time, error) {
	switch p {
	case ThreeMonths:
		return ref.AddDate(0, -3, 0), nil
	case SixMonths:
		return ref.AddDate(0, -6, 0), nil
	case OneYear:
		return ref.AddDate(-1, 0, 0), nil
	case TwoYears:
		return ref.AddDate(-2, 0, 0), nil
	case FiveYears:
		return ref.AddDate(-5, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown period provided: %s", string(p))
	}
}

package shared

import (
	"time"

	"github.com/google/uuid"
)

// Report represents the rendered output of one detection pipeline run.
type Report struct {
	ID         string           `json:"id"`
	Market     string           `json:"market"`
	Prices     PriceSeries      `json:"prices"`
	Indicators *IndicatorSeries `json:"indicators"`
	Precise    []ValidatedDrop  `json:"precise"`
	Inaccurate []ValidatedDrop  `json:"inaccurate"`
	CreatedOn  time.Time        `json:"createdon"`
}

// NewReport initializes a new report for the provided market.
func NewReport(market string, prices PriceSeries, indicators *IndicatorSeries,
	precise []ValidatedDrop, inaccurate []ValidatedDrop) *Report {
	return &Report{
		ID:         uuid.New().String(),
		Market:     market,
		Prices:     prices,
		Indicators: indicators,
		Precise:    precise,
		Inaccurate: inaccurate,
		CreatedOn:  time.Now().UTC(),
	}
}

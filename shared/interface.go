package shared

import "context"

// CloseSeriesFetcher defines the requirements for fetching a closing price
// series for a market.
type CloseSeriesFetcher interface {
	// FetchCloseSeries fetches a time-ascending closing price series for the
	// provided market covering the provided lookback period.
	FetchCloseSeries(ctx context.Context, market string, period Period) (PriceSeries, error)
}

// ReportRenderer defines the requirements for rendering a finished report.
type ReportRenderer interface {
	// Render presents the provided report.
	Render(ctx context.Context, report *Report) error
}

// CloseSeriesStorer defines the requirements for caching fetched close series.
type CloseSeriesStorer interface {
	// PersistCloseSeries stores the provided close series for the market.
	PersistCloseSeries(ctx context.Context, market string, series PriceSeries) error
	// FetchStoredCloseSeries loads the stored close series for the provided
	// market, oldest first.
	FetchStoredCloseSeries(ctx context.Context, market string) (PriceSeries, error)
}

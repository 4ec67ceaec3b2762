package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/dnldd/dropscan/shared"
	"github.com/tidwall/gjson"
)

const (
	// BaseURL is the base url for the FMP stable api.
	BaseURL = "https://financialmodelingprep.com/stable"
	// eodHistoricalPath is the end of day historical close path.
	eodHistoricalPath = "/historical-price-eod/full"
)

// FMPConfig represents the configuration for the FMP client.
type FMPConfig struct {
	// APIKey is the FMP API Key.
	APIKey string
	// BaseURL is the FMP api base url.
	BaseURL string
}

// FMPClient represents the Financial Modeling Preparation (FMP) API client.
type FMPClient struct {
	cfg   *FMPConfig
	httpc http.Client
	buf   *bytes.Buffer
}

// Ensure the FMP client implements the CloseSeriesFetcher interface.
var _ shared.CloseSeriesFetcher = (*FMPClient)(nil)

// NewFMPClient instantiates a new FMP client.
func NewFMPClient(cfg *FMPConfig) *FMPClient {
	return &FMPClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: time.Second * 5},
		buf:   bytes.NewBuffer(make([]byte, 0, 512)),
	}
}

// formURL creates full urls including parameters for the api.
func (c *FMPClient) formURL(path string, params string) string {
	c.buf.WriteString(c.cfg.BaseURL)
	c.buf.WriteString(path)
	c.buf.WriteString("?")
	c.buf.WriteString(params)
	url := c.buf.String()
	c.buf.Reset()

	return url
}

// ParseCloseSeries parses a time-ascending close series from the provided
// json data. Entries with non-positive closes are skipped.
func ParseCloseSeries(data []gjson.Result) (shared.PriceSeries, error) {
	series := make(shared.PriceSeries, 0, len(data))

	for idx := range data {
		close := data[idx].Get("close").Float()
		if close <= 0 {
			continue
		}

		date, err := time.Parse(shared.DateLayout, data[idx].Get("date").String())
		if err != nil {
			return nil, fmt.Errorf("parsing close series date: %w", err)
		}

		series = append(series, shared.PricePoint{Date: date, Close: close})
	}

	// The eod endpoint returns entries newest first.
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	return series, nil
}

// FetchCloseSeries fetches a time-ascending end of day close series for the
// provided market covering the provided lookback period. Fetch failures wrap
// shared.ErrDataUnavailable.
func (c *FMPClient) FetchCloseSeries(ctx context.Context, market string, period shared.Period) (shared.PriceSeries, error) {
	now := time.Now().UTC()
	start, err := period.Start(now)
	if err != nil {
		return nil, fmt.Errorf("fetching period start: %w", err)
	}

	params := url.Values{}
	params.Add("symbol", market)
	params.Add("apikey", c.cfg.APIKey)
	params.Add("from", start.Format(shared.DateLayout))
	params.Add("to", now.Format(shared.DateLayout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.formURL(eodHistoricalPath, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("creating close series request for %s: %w", market, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching close series for %s: %v", shared.ErrDataUnavailable, market, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetching close series for %s: status %d", shared.ErrDataUnavailable, market, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading close series response for %s: %v", shared.ErrDataUnavailable, market, err)
	}

	data := gjson.ParseBytes(body).Array()
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no close series data returned for %s", shared.ErrDataUnavailable, market)
	}

	series, err := ParseCloseSeries(data)
	if err != nil {
		return nil, fmt.Errorf("parsing close series for %s: %w", market, err)
	}

	return series, nil
}

package shared

import "errors"

// ErrDataUnavailable indicates close series data could not be fetched from
// the data source. It propagates unchanged through the pipeline, retries and
// backoff are the data source's concern.
var ErrDataUnavailable = errors.New("market data unavailable")

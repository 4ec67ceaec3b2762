package database

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/dropscan/shared"
	rqlitehttp "github.com/rqlite/rqlite-go-http"
	"github.com/rs/zerolog"
)

const (
	// SQL statements.
	createCloseSeriesTableSQL = "CREATE TABLE IF NOT EXISTS closeseries (market TEXT, date INTEGER, close REAL, PRIMARY KEY (market, date))"
	upsertClosePriceSQL       = "INSERT OR REPLACE INTO closeseries(market, date, close) VALUES(?,?,?)"
	findCloseSeriesSQL        = "SELECT date, close FROM closeseries WHERE market = ? ORDER BY date ASC"
)

// DatabaseConfig is the configuration for the database.
type DatabaseConfig struct {
	// Endpoint represents the database connection endpoint.
	Endpoint string
	// User is the database user.
	User string
	// Pass is the database user pass.
	Pass string
	// Logger is the database logger.
	Logger *zerolog.Logger
}

// Database represents the database connection. It caches fetched close
// series per market, detection and validation results are never persisted.
type Database struct {
	cfg    *DatabaseConfig
	client *rqlitehttp.Client
}

// Ensure the database implements the CloseSeriesStorer interface.
var _ shared.CloseSeriesStorer = (*Database)(nil)

// NewDatabase initializes a new database connection.
func NewDatabase(ctx context.Context, cfg *DatabaseConfig) (*Database, error) {
	httpc := &http.Client{Timeout: time.Second * 5}
	client, err := rqlitehttp.NewClient(cfg.Endpoint, httpc)
	if err != nil {
		return nil, fmt.Errorf("creating database client: %w", err)
	}

	client.SetBasicAuth(cfg.User, cfg.Pass)

	db := &Database{
		cfg:    cfg,
		client: client,
	}

	err = db.bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping database: %w", err)
	}

	return db, nil
}

// bootstrap initializes the database.
func (db *Database) bootstrap(ctx context.Context) error {
	_, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{SQL: createCloseSeriesTableSQL},
	}, &rqlitehttp.ExecuteOptions{
		Transaction: true,
		Timings:     true,
	})
	if err != nil {
		return err
	}

	return nil
}

// PersistCloseSeries stores the provided close series for the market,
// replacing entries sharing the same date.
func (db *Database) PersistCloseSeries(ctx context.Context, market string, series shared.PriceSeries) error {
	stmts := make(rqlitehttp.SQLStatements, 0, len(series))
	for idx := range series {
		stmts = append(stmts, &rqlitehttp.SQLStatement{
			SQL:              upsertClosePriceSQL,
			PositionalParams: []any{market, series[idx].Date.Unix(), series[idx].Close},
		})
	}

	resp, err := db.client.Execute(ctx, stmts, &rqlitehttp.ExecuteOptions{Transaction: true, Timings: true})
	if err != nil {
		return fmt.Errorf("persisting close series for %s: %w", market, err)
	}

	has, idx, errStr := resp.HasError()
	if has {
		return fmt.Errorf("persisting close series for %s: %d -> %s", market, idx, errStr)
	}

	return nil
}

// decodeStoredCloseSeries decodes stored close series rows into a price
// series. Rows that do not carry a numeric date and close are skipped.
func decodeStoredCloseSeries(market string, rows []map[string]any, logger *zerolog.Logger) shared.PriceSeries {
	series := make(shared.PriceSeries, 0, len(rows))
	for _, row := range rows {
		date, dateOk := row["date"].(float64)
		close, closeOk := row["close"].(float64)
		if !dateOk || !closeOk {
			logger.Error().Msgf("unexpected stored close series row for %s: %s",
				market, spew.Sdump(row))
			continue
		}

		series = append(series, shared.PricePoint{
			Date:  time.Unix(int64(date), 0).UTC(),
			Close: close,
		})
	}

	return series
}

// FetchStoredCloseSeries loads the cached close series for the provided
// market, oldest first.
func (db *Database) FetchStoredCloseSeries(ctx context.Context, market string) (shared.PriceSeries, error) {
	resp, err := db.client.QuerySingle(ctx, findCloseSeriesSQL, market)
	if err != nil {
		return nil, fmt.Errorf("fetching stored close series for %s: %w", market, err)
	}

	series := make(shared.PriceSeries, 0)
	for _, results := range resp.GetQueryResultsAssoc() {
		series = append(series, decodeStoredCloseSeries(market, results.Rows, db.cfg.Logger)...)
	}

	return series, nil
}

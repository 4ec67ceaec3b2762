package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dnldd/dropscan/chart"
	"github.com/dnldd/dropscan/database"
	"github.com/dnldd/dropscan/fetch"
	"github.com/dnldd/dropscan/indicator"
	"github.com/dnldd/dropscan/pipeline"
	"github.com/dnldd/dropscan/shared"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

const (
	// bufferSize is the default buffer size for channels.
	bufferSize = 64
)

// ScanSignal represents a signal to scan a market for drop points.
type ScanSignal struct {
	// Market is the market to scan.
	Market string
}

// ScannerConfig represents the configuration struct for the scanner service.
type ScannerConfig struct {
	// Markets represents the scanned markets.
	Markets []string
	// FMPAPIKey is the FMP service API Key.
	FMPAPIKey string
	// Period is the close series lookback period.
	Period shared.Period
	// ScanSchedule is the cron expression for recurring market scans.
	ScanSchedule string
	// MACDParams are the macd window parameters.
	MACDParams indicator.MACDParams
	// OscillatorMagnitude is the oscillator decline magnitude filter.
	OscillatorMagnitude float64
	// ValidationThreshold is the forward drop fraction confirming a candidate.
	ValidationThreshold float64
	// ForwardWindow is the number of observations inspected ahead of a candidate.
	ForwardWindow int
	// ReportDir is the directory rendered reports are written to. Reports are
	// discarded when unset.
	ReportDir string
	// HistoricDataFilepath is the filepath to offline close series data. When
	// set the scanner runs against the file instead of the FMP api.
	HistoricDataFilepath string
	// DatabaseEndpoint is the optional rqlite endpoint caching fetched series.
	DatabaseEndpoint string
	// DatabaseUser is the database user.
	DatabaseUser string
	// DatabasePass is the database user pass.
	DatabasePass string
	// Cancel is the context cancellation function.
	Cancel context.CancelFunc
}

// Validate asserts the config has sane inputs.
func (cfg *ScannerConfig) Validate() error {
	var errs error

	if len(cfg.Markets) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no markets provided for scanner service"))
	}
	if cfg.FMPAPIKey == "" && cfg.HistoricDataFilepath == "" {
		errs = errors.Join(errs, fmt.Errorf("fmp api key cannot be an empty string"))
	}
	if err := cfg.Period.Validate(); err != nil {
		errs = errors.Join(errs, err)
	}
	if cfg.Cancel == nil {
		errs = errors.Join(errs, fmt.Errorf("context cancellation function cannot be nil"))
	}

	return errs
}

// Scanner represents a market drop point scanning service.
type Scanner struct {
	cfg          *ScannerConfig
	fetcher      shared.CloseSeriesFetcher
	pipeline     *pipeline.Pipeline
	jobScheduler *gocron.Scheduler
	scanSignals  chan ScanSignal
	logger       *zerolog.Logger
}

// NewScanner initializes a new scanner service.
func NewScanner(ctx context.Context, cfg *ScannerConfig) (*Scanner, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating scanner config: %w", err)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	logger := log.With().Str("service", "dropscan").Logger()

	var fetcher shared.CloseSeriesFetcher
	switch {
	case cfg.HistoricDataFilepath != "":
		historicDataLogger := logger.With().Str("component", "historicdata").Logger()
		fetcher, err = fetch.NewHistoricData(&fetch.HistoricDataConfig{
			Market:   cfg.Markets[0],
			FilePath: cfg.HistoricDataFilepath,
			Logger:   &historicDataLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating historic data source: %w", err)
		}
	default:
		fetcher = fetch.NewFMPClient(&fetch.FMPConfig{
			APIKey:  cfg.FMPAPIKey,
			BaseURL: fetch.BaseURL,
		})
	}

	var renderer shared.ReportRenderer
	switch {
	case cfg.ReportDir != "":
		rendererLogger := logger.With().Str("component", "renderer").Logger()
		renderer, err = chart.NewJSONRenderer(&chart.JSONRendererConfig{
			Dir:    cfg.ReportDir,
			Logger: &rendererLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating json renderer: %w", err)
		}
	default:
		renderer = chart.NewNoopRenderer()
	}

	if cfg.DatabaseEndpoint != "" {
		dbLogger := logger.With().Str("component", "database").Logger()
		db, err := database.NewDatabase(ctx, &database.DatabaseConfig{
			Endpoint: cfg.DatabaseEndpoint,
			User:     cfg.DatabaseUser,
			Pass:     cfg.DatabasePass,
			Logger:   &dbLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating database: %w", err)
		}

		cacheLogger := logger.With().Str("component", "cachedfetcher").Logger()
		fetcher = fetch.NewCachedFetcher(&fetch.CachedFetcherConfig{
			Source: fetcher,
			Store:  db,
			Logger: &cacheLogger,
		})
	}

	pipelineLogger := logger.With().Str("component", "pipeline").Logger()
	pl, err := pipeline.NewPipeline(&pipeline.PipelineConfig{
		Fetcher:             fetcher,
		Renderer:            renderer,
		MACDParams:          cfg.MACDParams,
		OscillatorMagnitude: cfg.OscillatorMagnitude,
		ValidationThreshold: cfg.ValidationThreshold,
		ForwardWindow:       cfg.ForwardWindow,
		Logger:              &pipelineLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}

	return &Scanner{
		cfg:          cfg,
		fetcher:      fetcher,
		pipeline:     pl,
		jobScheduler: gocron.NewScheduler(time.UTC),
		scanSignals:  make(chan ScanSignal, bufferSize),
		logger:       &logger,
	}, nil
}

// SendScanSignal relays the provided scan signal for processing.
func (s *Scanner) SendScanSignal(signal ScanSignal) {
	select {
	case s.scanSignals <- signal:
		// do nothing.
	default:
		s.logger.Error().Msgf("scan signal channel at capacity: %d/%d",
			len(s.scanSignals), bufferSize)
	}
}

// ScanAll enqueues a scan for every configured market.
func (s *Scanner) ScanAll() {
	for idx := range s.cfg.Markets {
		s.SendScanSignal(ScanSignal{Market: s.cfg.Markets[idx]})
	}
}

// handleScanSignal processes the provided scan signal.
func (s *Scanner) handleScanSignal(ctx context.Context, signal ScanSignal) {
	_, err := s.pipeline.Run(ctx, signal.Market, s.cfg.Period)
	if err != nil {
		s.logger.Error().Msgf("scanning %s: %v", signal.Market, err)
	}

	// A historic data run without a recurring schedule is a one-shot scan,
	// terminate the service once the queue drains.
	if s.cfg.HistoricDataFilepath != "" && s.cfg.ScanSchedule == "" && len(s.scanSignals) == 0 {
		s.logger.Info().Msg("historic data scan complete, shutting down")
		s.cfg.Cancel()
	}
}

// Run manages the lifecycle processes of the scanner service. Scans are
// processed sequentially, each market's run is fully independent.
func (s *Scanner) Run(ctx context.Context) error {
	if s.cfg.ScanSchedule != "" {
		_, err := s.jobScheduler.Cron(s.cfg.ScanSchedule).Do(s.ScanAll)
		if err != nil {
			return fmt.Errorf("scheduling market scans: %w", err)
		}

		s.jobScheduler.StartAsync()
	}

	for {
		select {
		case <-ctx.Done():
			s.jobScheduler.Stop()
			return nil
		case signal := <-s.scanSignals:
			s.handleScanSignal(ctx, signal)
		}
	}
}

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/dnldd/dropscan/detector"
	"github.com/dnldd/dropscan/indicator"
	"github.com/dnldd/dropscan/shared"
	"github.com/dnldd/dropscan/validator"
	"github.com/rs/zerolog"
)

// PipelineConfig represents the configuration for the detection pipeline.
type PipelineConfig struct {
	// Fetcher is the close series data source.
	Fetcher shared.CloseSeriesFetcher
	// Renderer consumes finished reports.
	Renderer shared.ReportRenderer
	// MACDParams are the macd window parameters.
	MACDParams indicator.MACDParams
	// OscillatorMagnitude is the oscillator decline magnitude filter.
	OscillatorMagnitude float64
	// ValidationThreshold is the forward drop fraction confirming a candidate.
	ValidationThreshold float64
	// ForwardWindow is the number of observations inspected ahead of a candidate.
	ForwardWindow int
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config has sane inputs.
func (cfg *PipelineConfig) Validate() error {
	var errs error

	if cfg.Fetcher == nil {
		errs = errors.Join(errs, fmt.Errorf("close series fetcher cannot be nil"))
	}
	if cfg.Renderer == nil {
		errs = errors.Join(errs, fmt.Errorf("report renderer cannot be nil"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}
	if err := cfg.MACDParams.Validate(); err != nil {
		errs = errors.Join(errs, err)
	}

	return errs
}

// Pipeline sequences indicator computation, drop point detection and forward
// validation for one market at a time. It holds no state across runs, each
// run operates on its own freshly fetched series.
type Pipeline struct {
	cfg *PipelineConfig
}

// NewPipeline initializes a new detection pipeline.
func NewPipeline(cfg *PipelineConfig) (*Pipeline, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating pipeline config: %w", err)
	}

	return &Pipeline{cfg: cfg}, nil
}

// Run executes one detection pass for the provided market and period. A
// failure in any stage propagates unchanged, the pipeline has no recovery
// strategy of its own.
func (p *Pipeline) Run(ctx context.Context, market string, period shared.Period) (*shared.Report, error) {
	prices, err := p.cfg.Fetcher.FetchCloseSeries(ctx, market, period)
	if err != nil {
		return nil, fmt.Errorf("fetching close series for %s: %w", market, err)
	}

	indicators, err := indicator.ComputeIndicators(prices, p.cfg.MACDParams)
	if err != nil {
		return nil, fmt.Errorf("computing indicators for %s: %w", market, err)
	}

	candidates := detector.FindDropPoints(prices, indicators, p.cfg.OscillatorMagnitude)
	outcome := validator.ValidateDropPoints(prices, candidates, p.cfg.ValidationThreshold, p.cfg.ForwardWindow)

	report := shared.NewReport(market, prices, indicators, outcome.Precise, outcome.Inaccurate)
	p.cfg.Logger.Info().Msgf("%s: %d candidate drop points, %d precise, %d inaccurate",
		market, len(candidates), len(outcome.Precise), len(outcome.Inaccurate))

	err = p.cfg.Renderer.Render(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("rendering report for %s: %w", market, err)
	}

	return report, nil
}

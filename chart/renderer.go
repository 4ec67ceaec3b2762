package chart

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dnldd/dropscan/shared"
	"github.com/rs/zerolog"
)

// JSONRendererConfig represents the json renderer configuration.
type JSONRendererConfig struct {
	// Dir is the directory report files are written to.
	Dir string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// JSONRenderer writes finished reports as json files for external charting
// frontends to consume.
type JSONRenderer struct {
	cfg *JSONRendererConfig
}

// Ensure the json renderer implements the ReportRenderer interface.
var _ shared.ReportRenderer = (*JSONRenderer)(nil)

// NewJSONRenderer initializes a new json renderer.
func NewJSONRenderer(cfg *JSONRendererConfig) (*JSONRenderer, error) {
	err := os.MkdirAll(cfg.Dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("creating report directory '%s': %w", cfg.Dir, err)
	}

	return &JSONRenderer{cfg: cfg}, nil
}

// Render writes the provided report to a json file named after its market
// and id.
func (r *JSONRenderer) Render(_ context.Context, report *shared.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling report %s: %w", report.ID, err)
	}

	path := filepath.Join(r.cfg.Dir, fmt.Sprintf("%s-%s.json", report.Market, report.ID))
	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("writing report %s: %w", report.ID, err)
	}

	r.cfg.Logger.Info().Msgf("rendered report for %s to %s", report.Market, path)

	return nil
}

// NoopRenderer discards reports, used for headless runs and tests.
type NoopRenderer struct{}

// Ensure the noop renderer implements the ReportRenderer interface.
var _ shared.ReportRenderer = (*NoopRenderer)(nil)

// NewNoopRenderer initializes a new noop renderer.
func NewNoopRenderer() *NoopRenderer {
	return &NoopRenderer{}
}

// Render discards the provided report.
func (r *NoopRenderer) Render(_ context.Context, _ *shared.Report) error {
	return nil
}

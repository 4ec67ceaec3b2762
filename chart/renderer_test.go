package chart

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dnldd/dropscan/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

func TestJSONRenderer(t *testing.T) {
	logger := log.With().Str("component", "renderer").Logger()
	dir := t.TempDir()

	// Ensure the json renderer can be created.
	renderer, err := NewJSONRenderer(&JSONRendererConfig{
		Dir:    filepath.Join(dir, "reports"),
		Logger: &logger,
	})
	assert.NoError(t, err)

	prices := shared.PriceSeries{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: 100},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Close: 98},
	}
	indicators := &shared.IndicatorSeries{
		MACD:   []float64{0, -0.5},
		Signal: []float64{0, -0.25},
	}
	report := shared.NewReport("^GSPC", prices, indicators, nil, nil)

	// Ensure reports are rendered to json files named after their market and id.
	err = renderer.Render(context.Background(), report)
	assert.NoError(t, err)

	path := filepath.Join(dir, "reports", "^GSPC-"+report.ID+".json")
	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	// Ensure the rendered file carries the report contents.
	gjd := gjson.ParseBytes(data)
	assert.Equal(t, gjd.Get("market").String(), "^GSPC")
	assert.Equal(t, gjd.Get("id").String(), report.ID)
	assert.Equal(t, len(gjd.Get("prices").Array()), 2)
}

func TestNoopRenderer(t *testing.T) {
	// Ensure the noop renderer discards reports without error.
	renderer := NewNoopRenderer()
	err := renderer.Render(context.Background(), &shared.Report{})
	assert.NoError(t, err)
}

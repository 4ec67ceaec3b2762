package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/dnldd/dropscan/indicator"
	"github.com/dnldd/dropscan/service"
	"github.com/dnldd/dropscan/shared"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Printf("loading config: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scannerCfg := service.ScannerConfig{
		Markets:      cfg.Markets,
		FMPAPIKey:    cfg.FMPAPIKey,
		Period:       shared.Period(cfg.Period),
		ScanSchedule: cfg.ScanSchedule,
		MACDParams: indicator.MACDParams{
			ShortWindow:  cfg.ShortWindow,
			LongWindow:   cfg.LongWindow,
			SignalWindow: cfg.SignalWindow,
		},
		OscillatorMagnitude:  cfg.OscillatorMagnitude,
		ValidationThreshold:  cfg.ValidationThreshold,
		ForwardWindow:        cfg.ForwardWindow,
		ReportDir:            cfg.ReportDir,
		HistoricDataFilepath: cfg.HistoricDataFilepath,
		DatabaseEndpoint:     cfg.DatabaseEndpoint,
		DatabaseUser:         cfg.DatabaseUser,
		DatabasePass:         cfg.DatabasePass,
		Cancel:               cancel,
	}
	scanner, err := service.NewScanner(ctx, &scannerCfg)
	if err != nil {
		log.Printf("creating scanner service: %v", err)
		return
	}

	go handleTermination(ctx, cancel)

	// Run an initial scan for all markets on start.
	scanner.ScanAll()

	err = scanner.Run(ctx)
	if err != nil {
		log.Printf("running scanner service: %v", err)
	}
}

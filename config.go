package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/dnldd/dropscan/shared"
	"github.com/joho/godotenv"
)

// Config is the configuration struct for the service.
type Config struct {
	// Markets represents the scanned markets.
	Markets []string
	// FMPAPIKey is the FMP service API Key.
	FMPAPIKey string
	// Period is the close series lookback period.
	Period string
	// ScanSchedule is the cron expression for recurring market scans.
	ScanSchedule string
	// ShortWindow is the span of the short ema.
	ShortWindow int
	// LongWindow is the span of the long ema.
	LongWindow int
	// SignalWindow is the span of the signal line ema.
	SignalWindow int
	// OscillatorMagnitude is the oscillator decline magnitude filter.
	OscillatorMagnitude float64
	// ValidationThreshold is the forward drop fraction confirming a candidate.
	ValidationThreshold float64
	// ForwardWindow is the number of observations inspected ahead of a candidate.
	ForwardWindow int
	// ReportDir is the directory rendered reports are written to.
	ReportDir string
	// HistoricDataFilepath is the filepath to offline close series data.
	HistoricDataFilepath string
	// DatabaseEndpoint is the optional rqlite endpoint caching fetched series.
	DatabaseEndpoint string
	// DatabaseUser is the database user.
	DatabaseUser string
	// DatabasePass is the database user pass.
	DatabasePass string

	registeredFlags map[string]bool
}

// Validate asserts the config has sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if len(cfg.Markets) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no markets provided for scanner service"))
	}
	if cfg.FMPAPIKey == "" && cfg.HistoricDataFilepath == "" {
		errs = errors.Join(errs, fmt.Errorf("fmp api key cannot be an empty string"))
	}
	if err := shared.Period(cfg.Period).Validate(); err != nil {
		errs = errors.Join(errs, err)
	}
	if cfg.ShortWindow < 1 || cfg.LongWindow < 1 || cfg.SignalWindow < 1 {
		errs = errors.Join(errs, fmt.Errorf("macd windows must be positive integers"))
	}
	if cfg.OscillatorMagnitude <= 0 {
		errs = errors.Join(errs, fmt.Errorf("oscillator magnitude must be positive"))
	}
	if cfg.ValidationThreshold <= 0 {
		errs = errors.Join(errs, fmt.Errorf("validation threshold must be positive"))
	}
	if cfg.ForwardWindow < 2 {
		errs = errors.Join(errs, fmt.Errorf("forward window must be at least 2 observations"))
	}

	return errs
}

// registerFlag registers command line arguments of any type and tracks them to avoid reregistration.
func (cfg *Config) registerFlag(name string, value interface{}, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := os.Getenv(name)
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	switch val.Elem().Kind() {
	case reflect.String:
		flag.StringVar(value.(*string), name, defValue, usage)
	case reflect.Bool:
		var def bool
		if defValue != "" {
			def, _ = strconv.ParseBool(defValue)
		}
		flag.BoolVar(value.(*bool), name, def, usage)
	case reflect.Int:
		var def int
		if defValue != "" {
			def, _ = strconv.Atoi(defValue)
		}
		flag.IntVar(value.(*int), name, def, usage)
	case reflect.Float64:
		var def float64
		if defValue != "" {
			def, _ = strconv.ParseFloat(defValue, 64)
		}
		flag.Float64Var(value.(*float64), name, def, usage)
	case reflect.Slice:
		// Only handle []string
		if val.Elem().Type().Elem().Kind() == reflect.String {
			var def []string
			if defValue != "" {
				def = strings.Split(defValue, ",")
			}
			flag.Func(name, usage, func(s string) error {
				*value.(*[]string) = strings.Split(s, ",")
				return nil
			})
			// Set default if not provided via flag
			if len(def) > 0 {
				*value.(*[]string) = def
			}
		} else {
			return fmt.Errorf("%s: unsupported slice type", name)
		}
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// applyDefaults fills unset parameters with their documented defaults.
func (cfg *Config) applyDefaults() {
	if cfg.Period == "" {
		cfg.Period = string(shared.OneYear)
	}
	if cfg.ShortWindow == 0 {
		cfg.ShortWindow = 12
	}
	if cfg.LongWindow == 0 {
		cfg.LongWindow = 26
	}
	if cfg.SignalWindow == 0 {
		cfg.SignalWindow = 9
	}
	if cfg.OscillatorMagnitude == 0 {
		cfg.OscillatorMagnitude = 0.01
	}
	if cfg.ValidationThreshold == 0 {
		cfg.ValidationThreshold = 0.02
	}
	if cfg.ForwardWindow == 0 {
		cfg.ForwardWindow = 5
	}
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	// Register command line arguments using loaded environment variables as defaults.
	err = cfg.registerFlag("markets", &cfg.Markets, "the scanned markets")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("fmpapikey", &cfg.FMPAPIKey, "the FMP api key")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("period", &cfg.Period, "the close series lookback period")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("scanschedule", &cfg.ScanSchedule, "the cron expression for recurring scans")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("shortwindow", &cfg.ShortWindow, "the short ema span")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("longwindow", &cfg.LongWindow, "the long ema span")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("signalwindow", &cfg.SignalWindow, "the signal line ema span")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("oscillatormagnitude", &cfg.OscillatorMagnitude, "the oscillator decline magnitude filter")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("validationthreshold", &cfg.ValidationThreshold, "the forward drop fraction confirming a candidate")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("forwardwindow", &cfg.ForwardWindow, "the validation forward window size")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("reportdir", &cfg.ReportDir, "the rendered report directory")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("historicdatafilepath", &cfg.HistoricDataFilepath, "the offline close series data filepath")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("databaseendpoint", &cfg.DatabaseEndpoint, "the rqlite close series cache endpoint")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("databaseuser", &cfg.DatabaseUser, "the database user")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("databasepass", &cfg.DatabasePass, "the database user pass")
	if err != nil {
		return err
	}

	// Parse command-line flags.
	flag.Parse()

	cfg.applyDefaults()

	return cfg.Validate()
}

package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./storescope.db" description:"Path to the SQLite database file (empty disables persistence)"`

	// Application configuration
	Port            string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount     int    `long:"worker-count" env:"WORKER_COUNT" default:"4" description:"Number of concurrent workers for extraction probes"`
	RequestTimeout  int    `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"30" description:"Total HTTP timeout per outgoing request in seconds"`
	APIAccessKey    string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for admin endpoints (optional)"`
	CompetitorsFile string `long:"competitors-file" env:"COMPETITORS_FILE" description:"YAML file with the static competitor search list (optional)"`

	// Competitor analysis configuration
	MaxCompetitors    int `long:"max-competitors" env:"MAX_COMPETITORS" default:"5" description:"Upper bound on competitors analyzed per request"`
	CompetitorTimeout int `long:"competitor-timeout" env:"COMPETITOR_TIMEOUT" default:"60" description:"Per-competitor extraction timeout in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" description:"Fixed User-Agent for outgoing requests (default: rotating)"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:            raw.DBPath,
		Port:              raw.Port,
		WorkerCount:       raw.WorkerCount,
		RequestTimeout:    raw.RequestTimeout,
		APIAccessKey:      raw.APIAccessKey,
		CompetitorsFile:   raw.CompetitorsFile,
		MaxCompetitors:    raw.MaxCompetitors,
		CompetitorTimeout: raw.CompetitorTimeout,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}

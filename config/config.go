package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/trade/accumulator"
	"github.com/rustyeddy/trade/internal/logger"
	"github.com/rustyeddy/trade/journal"
	"github.com/rustyeddy/trade/market"
	"gopkg.in/yaml.v3"
)

// Config represents a replay run over one asset
type Config struct {
	Asset   market.Asset        `json:"asset" yaml:"asset"`
	Initial *accumulator.Status `json:"initial,omitempty" yaml:"initial,omitempty"`
	Logging bool                `json:"logging" yaml:"logging"`
	Journal JournalConfig       `json:"journal" yaml:"journal"`
	Log     LogConfig           `json:"log" yaml:"log"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type           string `json:"type" yaml:"type"` // "", "csv" or "sqlite"
	OperationsFile string `json:"operations_file,omitempty" yaml:"operations_file,omitempty"`
	EventsFile     string `json:"events_file,omitempty" yaml:"events_file,omitempty"`
	PositionsFile  string `json:"positions_file,omitempty" yaml:"positions_file,omitempty"`
	DBPath         string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// Load reads configuration from a file (YAML, or JSON) without validating
// it, for callers that adjust it before calling Validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = &Config{}
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	return cfg, nil
}

// LoadFromFile loads and validates configuration from a file (YAML, or JSON)
func LoadFromFile(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file, YAML for .yaml and .yml
// paths and JSON otherwise
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Asset.Validate(); err != nil {
		return fmt.Errorf("asset: %w", err)
	}
	if c.Initial != nil {
		if err := c.Initial.Validate(); err != nil {
			return fmt.Errorf("initial: %w", err)
		}
	}
	switch c.Journal.Type {
	case "":
	case "csv":
		if c.Journal.OperationsFile == "" || c.Journal.EventsFile == "" || c.Journal.PositionsFile == "" {
			return fmt.Errorf("journal operations_file, events_file and positions_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be empty, 'csv' or 'sqlite'")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Asset:   market.NewAsset("GOOG", "Alphabet Inc.", "USD"),
		Logging: true,
		Journal: JournalConfig{
			Type:           "csv",
			OperationsFile: "./operations.csv",
			EventsFile:     "./events.csv",
			PositionsFile:  "./positions.csv",
		},
		Log: LogConfig{Level: "info"},
	}
}

// AssetInfo returns the configured asset with its symbol and currency
// normalized.
func (c *Config) AssetInfo() market.Asset {
	return market.NewAsset(c.Asset.Symbol, c.Asset.Name, c.Asset.Currency)
}

// Options returns the accumulator options for the configuration.
func (c *Config) Options() []accumulator.Option {
	var opts []accumulator.Option
	if c.Initial != nil {
		opts = append(opts, accumulator.WithInitialStatus(*c.Initial))
	}
	if c.Logging {
		opts = append(opts, accumulator.WithLogging())
	}
	return opts
}

// OpenJournal opens the configured journal. It returns nil when no
// journal is configured.
func (c *Config) OpenJournal() (journal.Journal, error) {
	switch c.Journal.Type {
	case "csv":
		j, err := journal.NewCSV(c.Journal.OperationsFile, c.Journal.EventsFile, c.Journal.PositionsFile)
		if err != nil {
			return nil, fmt.Errorf("open csv journal: %w", err)
		}
		return j, nil
	case "sqlite":
		j, err := journal.NewSQLite(c.Journal.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite journal: %w", err)
		}
		return j, nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown journal type %q", c.Journal.Type)
	}
}

package cfg

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

// ServerConfiguration controls the workbench HTTP API
type ServerConfiguration struct {
	BindAddress string `toml:"bind_address"`
	Port        int    `toml:"port"`
}

// LoggingConfiguration controls logging behavior
type LoggingConfiguration struct {
	Verbose bool   `toml:"verbose"`
	Format  string `toml:"format"` // "console" or "json"
}

// PrometheusConfiguration for metrics
type PrometheusConfiguration struct {
	Enabled bool `toml:"enabled"`
}

// DMLConfiguration controls the statement parser and execution engine
type DMLConfiguration struct {
	ScriptIDPrefix         string   `toml:"script_id_prefix"`          // Prepended to generated script IDs
	AllowedTables          []string `toml:"allowed_tables"`            // Glob patterns; empty allows all
	ParseCacheSize         int      `toml:"parse_cache_size"`          // LRU entries; 0 disables caching
	EnableLiveListCreation bool     `toml:"enable_live_list_creation"` // CREATE LIST calls the platform primitive instead of generating instructions
}

// HistorySinkConfiguration describes one attempt-log sink
type HistorySinkConfiguration struct {
	Type    string   `toml:"type"`     // "nats" or "kafka"
	NatsURL string   `toml:"nats_url"` // For nats sinks
	Subject string   `toml:"subject"`  // NATS subject (default "workbench.dml.history")
	Brokers []string `toml:"brokers"`  // For kafka sinks
	Topic   string   `toml:"topic"`    // Kafka topic (default "workbench-dml-history")
}

// HistoryConfiguration controls attempt logging
type HistoryConfiguration struct {
	Enabled bool                       `toml:"enabled"`
	Path    string                     `toml:"path"` // SQLite file, relative to data dir when not absolute
	Sinks   []HistorySinkConfiguration `toml:"sinks"`
}

// Configuration is the main configuration structure
type Configuration struct {
	DataDir string `toml:"data_dir"`

	Server     ServerConfiguration     `toml:"server"`
	Logging    LoggingConfiguration    `toml:"logging"`
	Prometheus PrometheusConfiguration `toml:"prometheus"`
	DML        DMLConfiguration        `toml:"dml"`
	History    HistoryConfiguration    `toml:"history"`
}

// Command line flags
var (
	ConfigPathFlag = flag.String("config", "config.toml", "Path to configuration file")
	DataDirFlag    = flag.String("data-dir", "", "Data directory (overrides config)")
	PortFlag       = flag.Int("port", 0, "HTTP port (overrides config)")
)

// Default configuration
var Config = &Configuration{
	DataDir: "./workbench-data",

	Server: ServerConfiguration{
		BindAddress: "0.0.0.0",
		Port:        8372,
	},

	Logging: LoggingConfiguration{
		Verbose: false,
		Format:  "console",
	},

	Prometheus: PrometheusConfiguration{
		Enabled: true,
	},

	DML: DMLConfiguration{
		ScriptIDPrefix:         "",
		AllowedTables:          []string{},
		ParseCacheSize:         512,
		EnableLiveListCreation: false,
	},

	History: HistoryConfiguration{
		Enabled: true,
		Path:    "history.db",
		Sinks:   []HistorySinkConfiguration{},
	},
}

// Load loads configuration from file and applies CLI overrides
func Load(configPath string) error {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			log.Info().Str("path", configPath).Msg("Loading configuration")
			if _, err := toml.DecodeFile(configPath, Config); err != nil {
				return fmt.Errorf("failed to decode config: %w", err)
			}
		} else {
			log.Warn().Str("path", configPath).Msg("Config file not found, using defaults")
		}
	}

	// Apply CLI overrides
	if *DataDirFlag != "" {
		Config.DataDir = *DataDirFlag
	}
	if *PortFlag != 0 {
		Config.Server.Port = *PortFlag
	}

	// Ensure data directory exists
	if err := os.MkdirAll(Config.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	return nil
}

// Validate checks configuration for errors
func Validate() error {
	if Config.Server.Port < 1 || Config.Server.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", Config.Server.Port)
	}
	if f := Config.Logging.Format; f != "console" && f != "json" {
		return fmt.Errorf("invalid logging format: %q (expected console or json)", f)
	}
	if Config.DML.ParseCacheSize < 0 {
		return fmt.Errorf("parse_cache_size must not be negative")
	}
	for _, sink := range Config.History.Sinks {
		switch sink.Type {
		case "nats":
			if sink.NatsURL == "" {
				return fmt.Errorf("nats history sink requires nats_url")
			}
		case "kafka":
			if len(sink.Brokers) == 0 {
				return fmt.Errorf("kafka history sink requires at least one broker")
			}
		default:
			return fmt.Errorf("unknown history sink type: %q", sink.Type)
		}
	}
	return nil
}

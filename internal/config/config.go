package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/bms-sim/internal/domain/sensor"
	"github.com/oshokin/bms-sim/internal/logger"
)

// Config holds the settings shared by the simulation binaries.
type Config struct {
	// ServerAddress is the gRPC address of the simulation server.
	ServerAddress string `yaml:"server_addr"`
	// LayoutFile is the path to the facility layout YAML.
	LayoutFile string `yaml:"layout_file"`
	// TickInterval is the wall-clock time between simulated units on the server.
	TickInterval time.Duration `yaml:"tick_interval"`
	// Timeout bounds every RPC call.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// AlertLevel is the hazard level from which sensors are reported as alerts.
	AlertLevel int `yaml:"alert_level"`
	// SnapshotFile is where the server writes its last snapshot on shutdown. Empty disables it.
	SnapshotFile string `yaml:"snapshot_file,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "bms-settings.yaml"

	// DefaultLayoutFilename is the default filename for the facility layout.
	DefaultLayoutFilename = "bms-layout.yaml"

	// DefaultServerAddress is used by the server and the control client when nothing is configured.
	DefaultServerAddress = "127.0.0.1:50061"

	// DefaultTickInterval is the default wall-clock length of one simulated unit.
	DefaultTickInterval = time.Second

	// DefaultTimeout is the default duration for RPC calls.
	DefaultTimeout = 5 * time.Second

	// DefaultAlertLevel is the default hazard level that triggers alerts.
	DefaultAlertLevel = 50

	// maxAlertLevel is the highest hazard level a sensor can report.
	maxAlertLevel = sensor.MaxHazardLevel

	// DefaultFilePermissions is the permission used when saving settings.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidAlertLevel is returned when the alert level is outside [0, 100].
	errInvalidAlertLevel = errors.New("alert level must be within [0, 100]")
	// errInvalidLogLevel is returned for unknown log level names.
	errInvalidLogLevel = errors.New("unknown log level")
)

// Default returns settings with every default applied.
func Default() *Config {
	cfg := new(Config)
	_ = Validate(cfg) //nolint:errcheck // Defaults are always valid.

	return cfg
}

// Load reads settings from path and validates them.
// A missing file at the default location yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultConfigFilename {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills in defaults for empty fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ServerAddress == "" {
		cfg.ServerAddress = DefaultServerAddress
	}

	if _, _, err := net.SplitHostPort(cfg.ServerAddress); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	if cfg.LayoutFile == "" {
		cfg.LayoutFile = DefaultLayoutFilename
	}

	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.AlertLevel == 0 {
		cfg.AlertLevel = DefaultAlertLevel
	}

	if cfg.AlertLevel < 0 || cfg.AlertLevel > maxAlertLevel {
		return fmt.Errorf("%w: %d", errInvalidAlertLevel, cfg.AlertLevel)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.LogLevel)
	}

	return nil
}

// ApplyLogLevel sets the global logger level from the settings.
func (c *Config) ApplyLogLevel() {
	if lvl, ok := logger.ParseLogLevel(c.LogLevel); ok {
		logger.SetLevel(lvl)
	}
}

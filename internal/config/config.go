// Package config loads the draft server settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Draft   DraftConfig   `toml:"draft"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig contains websocket and HTTP settings.
type ServerConfig struct {
	Port         int     `toml:"port" env:"GODR4FT_PORT"`
	Intermission string  `toml:"intermission" env:"GODR4FT_INTERMISSION"` // pause between rounds (e.g., "3s")
	MessageRate  float64 `toml:"message_rate" env:"GODR4FT_MESSAGE_RATE"` // client messages per second
	MessageBurst int     `toml:"message_burst" env:"GODR4FT_MESSAGE_BURST"`
	StaticDir    string  `toml:"static_dir" env:"GODR4FT_STATIC_DIR"`
}

// DraftConfig contains catalog and randomness settings.
type DraftConfig struct {
	DataDir   string `toml:"data_dir" env:"GODR4FT_DATA_DIR"`
	SetCode   string `toml:"set_code" env:"GODR4FT_SET"`
	BonusFile string `toml:"bonus_file" env:"GODR4FT_BONUS_FILE"`
	Seed      uint64 `toml:"seed" env:"GODR4FT_SEED"` // 0 = real entropy
	WatchData bool   `toml:"watch_data" env:"GODR4FT_WATCH_DATA"`
}

// StorageConfig contains the completed-draft archive settings.
type StorageConfig struct {
	Enabled bool   `toml:"enabled" env:"GODR4FT_ARCHIVE"`
	Path    string `toml:"path" env:"GODR4FT_DB_PATH"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Debug bool `toml:"debug" env:"GODR4FT_DEBUG"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8000,
			Intermission: "3s",
			MessageRate:  5,
			MessageBurst: 10,
			StaticDir:    "webroot",
		},
		Draft: DraftConfig{
			DataDir:   "data",
			SetCode:   "dsk",
			BonusFile: "plst.json",
			WatchData: true,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    filepath.Join("data", "drafts.db"),
		},
		Log: LogConfig{
			Debug: true,
		},
	}
}

// Load reads the TOML file at path on top of the defaults, then applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if _, err := c.IntermissionDuration(); err != nil {
		return fmt.Errorf("invalid intermission %q: %w", c.Server.Intermission, err)
	}
	if c.Server.MessageRate <= 0 {
		return fmt.Errorf("message rate must be positive: %v", c.Server.MessageRate)
	}
	if c.Server.MessageBurst < 1 {
		return fmt.Errorf("message burst must be at least 1: %d", c.Server.MessageBurst)
	}
	if c.Draft.DataDir == "" {
		return errors.New("data directory is required")
	}
	if c.Storage.Enabled && c.Storage.Path == "" {
		return errors.New("storage path is required when the archive is enabled")
	}
	return nil
}

// IntermissionDuration returns the pause between rounds.
func (c *Config) IntermissionDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.Intermission)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", d)
	}
	return d, nil
}

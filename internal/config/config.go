package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Environment overrides, applied after the file is read
const (
	EnvAPIURL     = "MUSICSTREAM_API_URL"
	EnvBridgeAddr = "MUSICSTREAM_BRIDGE_ADDR"
	EnvE2ETest    = "MUSICSTREAM_E2E_TEST"
)

// ErrMissingBaseURL is returned by Validate when no search API is configured
var ErrMissingBaseURL = errors.New("api.base_url is not set (config file or " + EnvAPIURL + ")")

// Config represents the application configuration
type Config struct {
	Version int          `toml:"version"`
	API     APIConfig    `toml:"api"`
	Search  SearchConfig `toml:"search"`
	Player  PlayerConfig `toml:"player"`
	Bridge  BridgeConfig `toml:"bridge"`
	Log     LogConfig    `toml:"log"`

	// E2E is set from the environment only
	E2E bool `toml:"-"`
}

// APIConfig points at the song-search API
type APIConfig struct {
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

// SearchConfig tunes search-on-type
type SearchConfig struct {
	Debounce Duration `toml:"debounce"`
	Tags     []string `toml:"tags"` // suggested queries on the welcome screen
}

// PlayerConfig describes the external video host
type PlayerConfig struct {
	EmbedHost string `toml:"embed_host"` // base of the embed URL
	Origin    string `toml:"origin"`     // origin accepted on status messages
}

// BridgeConfig controls the local player page
type BridgeConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// LogConfig controls the log file
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Duration wraps time.Duration so it reads and writes as "500ms" in TOML
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
	getenv   func(string) string
}

// NewConfigService creates a config service rooted in the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "musicstream", "config.toml"),
		getenv:   os.Getenv,
	}
}

// NewConfigServiceAt creates a config service bound to an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path, getenv: os.Getenv}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the config file, creating it with defaults on first run.
// Environment overrides are applied to the returned value only.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cs.Save(cfg); err != nil {
			return nil, err
		}
		cfg.ApplyEnv(cs.getenv)
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(cs.getenv)
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillDefaults()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays the MUSICSTREAM_* environment variables
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := getenv(EnvBridgeAddr); v != "" {
		c.Bridge.Addr = v
	}
	if getenv(EnvE2ETest) != "" {
		c.E2E = true
	}
}

// Validate checks the values the application cannot run without
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if c.Search.Debounce.Duration < 0 {
		return fmt.Errorf("search.debounce must not be negative, got %s", c.Search.Debounce)
	}
	return nil
}

// fillDefaults repairs zero values an edited file may leave behind
func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.Version == 0 {
		c.Version = d.Version
	}
	if c.API.Timeout.Duration <= 0 {
		c.API.Timeout = d.API.Timeout
	}
	if c.Player.EmbedHost == "" {
		c.Player.EmbedHost = d.Player.EmbedHost
	}
	if c.Player.Origin == "" {
		c.Player.Origin = d.Player.Origin
	}
	if c.Bridge.Addr == "" {
		c.Bridge.Addr = d.Bridge.Addr
	}
	if c.Log.File == "" {
		c.Log.File = d.Log.File
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			Timeout: Duration{10 * time.Second},
		},
		Search: SearchConfig{
			Debounce: Duration{500 * time.Millisecond},
			Tags:     []string{"Yoga Music", "Classical", "Meditation"},
		},
		Player: PlayerConfig{
			EmbedHost: "https://www.youtube.com",
			Origin:    "https://www.youtube.com",
		},
		Bridge: BridgeConfig{
			Enabled: true,
			Addr:    "127.0.0.1:8765",
		},
		Log: LogConfig{
			File:  "musicstream.log",
			Level: "info",
		},
	}
}

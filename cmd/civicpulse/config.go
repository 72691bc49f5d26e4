package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration, read from YAML and overridden by the
// environment and then by flags.
type Config struct {
	// APIURL is the backend root, without the /api suffix.
	APIURL  string        `yaml:"api_url"`
	Offline bool          `yaml:"offline"`
	Timeout time.Duration `yaml:"timeout"`

	// StatePath is the sqlite file holding local state.
	StatePath string      `yaml:"state"`
	Redis     RedisConfig `yaml:"redis"`

	Gemini GeminiConfig `yaml:"gemini"`

	// LogEnv selects the zap preset: production, development or test.
	LogEnv string `yaml:"log_env"`
}

// RedisConfig switches local state to a shared redis instance when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// GeminiConfig enables the suggest command.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		APIURL:    "http://localhost:8080",
		Timeout:   15 * time.Second,
		StatePath: filepath.Join(defaultDir(), "state.db"),
		Redis:     RedisConfig{Prefix: "civicpulse:"},
		Gemini:    GeminiConfig{Model: "gemini-2.5-flash"},
		LogEnv:    "production",
	}
}

func defaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "civicpulse")
	}
	return ".civicpulse"
}

// DefaultConfigPath is where LoadConfig looks when no path is given.
func DefaultConfigPath() string {
	if p := os.Getenv("CIVICPULSE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(defaultDir(), "config.yaml")
}

// LoadConfig reads path on top of the defaults. A missing file is only an
// error when the path was given explicitly.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CIVICPULSE_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("CIVICPULSE_STATE"); v != "" {
		c.StatePath = v
	}
	if v := os.Getenv("CIVICPULSE_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

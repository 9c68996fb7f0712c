package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all service configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Projection ProjectionConfig `yaml:"projection"`
	Policy     PolicyConfig     `yaml:"policy"`
	Narrative  NarrativeConfig  `yaml:"narrative"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
	MaxBodyBytes int    `yaml:"max_body_bytes"`
}

// ProjectionConfig supplies defaults for requests that leave options unset.
type ProjectionConfig struct {
	Periods            int `yaml:"periods"`
	FirstFinancialYear int `yaml:"first_financial_year"`
}

// PolicyConfig configures where RAG thresholds come from.
type PolicyConfig struct {
	RegistryURL     string `yaml:"registry_url"`
	RegistryTimeout string `yaml:"registry_timeout"`
	ThresholdsFile  string `yaml:"thresholds_file"`
	WatchFile       bool   `yaml:"watch_file"`
}

type NarrativeConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
	UnitSuffix     string `yaml:"unit_suffix"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  "5s",
			WriteTimeout: "5s",
			MaxBodyBytes: 1 << 20,
		},
		Projection: ProjectionConfig{
			Periods:            4,
			FirstFinancialYear: 2024,
		},
		Policy: PolicyConfig{
			RegistryTimeout: "2s",
			WatchFile:       true,
		},
		Narrative: NarrativeConfig{
			CurrencySymbol: "£",
			UnitSuffix:     "m",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if url := os.Getenv("POLICY_REGISTRY_URL"); url != "" {
		c.Policy.RegistryURL = url
	}
	if path := os.Getenv("POLICY_THRESHOLDS_FILE"); path != "" {
		c.Policy.ThresholdsFile = path
	}
}

// GetReadTimeout returns the server read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 5*time.Second)
}

// GetWriteTimeout returns the server write timeout as a duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 5*time.Second)
}

// GetRegistryTimeout returns the policy registry timeout as a duration.
func (c *Config) GetRegistryTimeout() time.Duration {
	return parseDuration(c.Policy.RegistryTimeout, 2*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port not configured (set server.port or PORT)")
	}
	if c.Projection.Periods < 0 {
		return fmt.Errorf("projection periods must be non-negative, got %d", c.Projection.Periods)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}

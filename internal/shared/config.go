package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed config.example.toml
var exampleConf []byte

// DefaultRemoteBase is the official Monster Siren API root.
const DefaultRemoteBase = "https://monster-siren.hypergryph.com/api"

// Config represents the application configuration loaded from a TOML or YAML file.
type Config struct {
	Server ServerConfig `toml:"server" yaml:"server"`
	Remote RemoteConfig `toml:"remote" yaml:"remote"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host    string `toml:"host" yaml:"host"`
	Port    int    `toml:"port" yaml:"port"`
	Docs    bool   `toml:"docs" yaml:"docs"`
	Metrics bool   `toml:"metrics" yaml:"metrics"`
}

// RemoteConfig contains upstream API settings.
type RemoteConfig struct {
	BaseURL   string        `toml:"base_url" yaml:"base_url"`
	Timeout   time.Duration `toml:"timeout" yaml:"timeout"`
	UserAgent string        `toml:"user_agent" yaml:"user_agent"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Addr returns the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoadConfig reads a configuration file on top of [DefaultConfig].
//
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = toml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveConfig builds the runtime configuration.
//
// Defaults come from the embedded example. A file at path is layered on top; when required is false a missing
// file is not an error. Variables from a .env file in the working directory are then loaded without replacing
// variables already set, the environment is applied, and the result is validated.
func ResolveConfig(path string, required bool) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		loaded, err := LoadConfig(path)
		switch {
		case err == nil:
			config = loaded
		case errors.Is(err, os.ErrNotExist) && !required:
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: failed to load .env: %v", ErrInvalidConfig, err)
	}

	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyEnv overrides fields from environment variables using lookup.
//
// Recognized variables: SERVER_PORT, REMOTE_BASE, REMOTE_TIMEOUT, LOG_LEVEL and SIREN_DOCS.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("SERVER_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: SERVER_PORT must be a valid port number", ErrInvalidConfig)
		}
		c.Server.Port = port
	}

	if v, ok := lookup("REMOTE_BASE"); ok && v != "" {
		c.Remote.BaseURL = v
	}

	if v, ok := lookup("REMOTE_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: REMOTE_TIMEOUT must be a duration such as 30s", ErrInvalidConfig)
		}
		c.Remote.Timeout = d
	}

	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}

	if v, ok := lookup("SIREN_DOCS"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: SIREN_DOCS must be a boolean", ErrInvalidConfig)
		}
		c.Server.Docs = enabled
	}

	return nil
}

// Validate checks the configuration before any traffic is served.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	}

	if err := ValidateBaseURL(c.Remote.BaseURL); err != nil {
		return err
	}

	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("%w: remote timeout must be positive", ErrInvalidConfig)
	}

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// ValidateBaseURL requires an absolute http or https URL with a host.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: remote base must be a valid URL: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: remote base must use http or https, got %q", ErrInvalidConfig, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: remote base has no host: %q", ErrInvalidConfig, raw)
	}
	return nil
}

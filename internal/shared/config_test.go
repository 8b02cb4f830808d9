package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Remote.BaseURL != DefaultRemoteBase {
			t.Errorf("expected remote base %s, got %s", DefaultRemoteBase, config.Remote.BaseURL)
		}

		if config.Remote.Timeout != 30*time.Second {
			t.Errorf("expected remote timeout 30s, got %v", config.Remote.Timeout)
		}

		if config.Server.Docs || config.Server.Metrics {
			t.Error("expected docs and metrics to be disabled by default")
		}

		if err := config.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})

	t.Run("Addr", func(t *testing.T) {
		s := ServerConfig{Host: "127.0.0.1", Port: 9000}
		if s.Addr() != "127.0.0.1:9000" {
			t.Errorf("expected 127.0.0.1:9000, got %s", s.Addr())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if *config != *defaultConfig {
			t.Errorf("created config doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("TOML", func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.toml")

			testConfig := `[server]
host = "127.0.0.1"
port = 9090

[remote]
base_url = "http://localhost:3000/api"
timeout = "5s"
`
			if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			config, err := LoadConfig(configPath)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if config.Server.Port != 9090 {
				t.Errorf("expected server port 9090, got %d", config.Server.Port)
			}

			if config.Remote.BaseURL != "http://localhost:3000/api" {
				t.Errorf("expected custom base, got %s", config.Remote.BaseURL)
			}

			if config.Remote.Timeout != 5*time.Second {
				t.Errorf("expected 5s timeout, got %v", config.Remote.Timeout)
			}

			if config.Log.Level != "info" {
				t.Errorf("expected log level to keep default info, got %s", config.Log.Level)
			}
		})

		t.Run("YAML", func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.yaml")

			testConfig := `server:
  port: 7070
  docs: true
remote:
  timeout: 2s
log:
  level: debug
`
			if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			config, err := LoadConfig(configPath)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if config.Server.Port != 7070 {
				t.Errorf("expected server port 7070, got %d", config.Server.Port)
			}

			if !config.Server.Docs {
				t.Error("expected docs to be enabled")
			}

			if config.Remote.Timeout != 2*time.Second {
				t.Errorf("expected 2s timeout, got %v", config.Remote.Timeout)
			}

			if config.Remote.BaseURL != DefaultRemoteBase {
				t.Errorf("expected default base to be kept, got %s", config.Remote.BaseURL)
			}

			if config.Log.Level != "debug" {
				t.Errorf("expected log level debug, got %s", config.Log.Level)
			}
		})

		t.Run("Malformed", func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.toml")
			os.WriteFile(configPath, []byte("[server\nport ="), 0644)

			if _, err := LoadConfig(configPath); err == nil {
				t.Error("expected parse error")
			}
		})

		t.Run("Missing File", func(t *testing.T) {
			_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
			if !errors.Is(err, os.ErrNotExist) {
				t.Errorf("expected not exist error, got %v", err)
			}
		})
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Run("Overrides", func(t *testing.T) {
			config := DefaultConfig()
			err := config.ApplyEnv(lookupFrom(map[string]string{
				"SERVER_PORT":    "9999",
				"REMOTE_BASE":    "http://mirror.local/api/",
				"REMOTE_TIMEOUT": "750ms",
				"LOG_LEVEL":      "warn",
				"SIREN_DOCS":     "true",
			}))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if config.Server.Port != 9999 {
				t.Errorf("expected port 9999, got %d", config.Server.Port)
			}
			if config.Remote.BaseURL != "http://mirror.local/api/" {
				t.Errorf("unexpected base %s", config.Remote.BaseURL)
			}
			if config.Remote.Timeout != 750*time.Millisecond {
				t.Errorf("expected 750ms, got %v", config.Remote.Timeout)
			}
			if config.Log.Level != "warn" {
				t.Errorf("expected warn, got %s", config.Log.Level)
			}
			if !config.Server.Docs {
				t.Error("expected docs enabled")
			}
		})

		t.Run("Empty Values Are Ignored", func(t *testing.T) {
			config := DefaultConfig()
			if err := config.ApplyEnv(lookupFrom(map[string]string{"SERVER_PORT": ""})); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Server.Port != 8080 {
				t.Errorf("expected default port, got %d", config.Server.Port)
			}
		})

		tc := []struct {
			name string
			env  map[string]string
		}{
			{name: "Bad Port", env: map[string]string{"SERVER_PORT": "http"}},
			{name: "Bad Timeout", env: map[string]string{"REMOTE_TIMEOUT": "thirty"}},
			{name: "Bad Docs Flag", env: map[string]string{"SIREN_DOCS": "maybe"}},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				if err := config.ApplyEnv(lookupFrom(tt.env)); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name   string
			mutate func(c *Config)
		}{
			{name: "Port Zero", mutate: func(c *Config) { c.Server.Port = 0 }},
			{name: "Port Too Large", mutate: func(c *Config) { c.Server.Port = 70000 }},
			{name: "Relative Base", mutate: func(c *Config) { c.Remote.BaseURL = "/api" }},
			{name: "Unsupported Scheme", mutate: func(c *Config) { c.Remote.BaseURL = "ftp://example.com" }},
			{name: "No Host", mutate: func(c *Config) { c.Remote.BaseURL = "http://" }},
			{name: "Zero Timeout", mutate: func(c *Config) { c.Remote.Timeout = 0 }},
			{name: "Unknown Log Level", mutate: func(c *Config) { c.Log.Level = "loud" }},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("ResolveConfig", func(t *testing.T) {
		t.Run("Optional Missing File", func(t *testing.T) {
			t.Setenv("SERVER_PORT", "8181")

			config, err := ResolveConfig(filepath.Join(t.TempDir(), "config.toml"), false)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Server.Port != 8181 {
				t.Errorf("expected env port 8181, got %d", config.Server.Port)
			}
		})

		t.Run("Required Missing File", func(t *testing.T) {
			_, err := ResolveConfig(filepath.Join(t.TempDir(), "config.toml"), true)
			if !errors.Is(err, ErrMissingConfig) {
				t.Errorf("expected ErrMissingConfig, got %v", err)
			}
		})

		t.Run("Invalid Environment", func(t *testing.T) {
			t.Setenv("REMOTE_BASE", "not a url")

			if _, err := ResolveConfig("", false); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})

		t.Run("Environment Wins Over File", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(configPath, []byte("[server]\nport = 9000\n"), 0644)
			t.Setenv("SERVER_PORT", "9001")

			config, err := ResolveConfig(configPath, true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Server.Port != 9001 {
				t.Errorf("expected 9001, got %d", config.Server.Port)
			}
		})
	})
}

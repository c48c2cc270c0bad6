// Package config handles the stockdeck home directory and its settings file.
// Every user gets a home dir (default ~/.stockdeck) holding config.yaml, the
// persisted session, and logs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// HomeDirName is the directory created under the user's home.
	HomeDirName = ".stockdeck"

	defaultBaseURL        = "http://localhost:8000"
	defaultTimeoutSeconds = 15

	// Environment overrides. A .env file in the working directory is loaded
	// first, so deployments can pin these without touching config.yaml.
	envHome    = "STOCKDECK_HOME"
	envBaseURL = "STOCKDECK_SERVER_URL"
	envTimeout = "STOCKDECK_TIMEOUT_SECONDS"
)

const defaultConfigYAML = `# stockdeck configuration
version: 1

server:
  # Base address of the inventory API.
  base_url: http://localhost:8000
  # Per-request timeout in seconds.
  timeout_seconds: 15
`

// ServerSettings points the client at the inventory collaborator.
type ServerSettings struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Settings models config.yaml.
type Settings struct {
	Version int            `yaml:"version"`
	Server  ServerSettings `yaml:"server"`
}

// Config holds the runtime configuration.
type Config struct {
	// Home is the stockdeck state directory.
	Home string

	Settings Settings
}

// ResolveHome picks the state directory: STOCKDECK_HOME when set, otherwise
// ~/.stockdeck.
func ResolveHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv(envHome)); home != "" {
		return filepath.Clean(home), nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user home: %w", err)
	}
	return filepath.Join(userHome, HomeDirName), nil
}

// InitHome creates the home directory structure and seeds a default
// config.yaml on first run.
func InitHome(home string) error {
	dirs := []string{
		home,
		filepath.Join(home, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: ensure %s: %w", dir, err)
		}
	}
	return ensureConfigFile(filepath.Join(home, "config.yaml"))
}

// New loads configuration for the given home directory: defaults, then
// config.yaml, then environment overrides (after a best-effort .env load).
func New(home string) (*Config, error) {
	cfg := &Config{
		Home:     home,
		Settings: defaultSettings(),
	}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	_ = godotenv.Load()
	cfg.applyEnvOverrides()
	if err := cfg.Settings.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ConfigPath returns the on-disk location of the settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Home, "config.yaml")
}

// LogPath returns the session log location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Home, "logs", "stockdeck.log")
}

// BaseURL returns the collaborator base address.
func (c *Config) BaseURL() string {
	return c.Settings.Server.BaseURL
}

// RequestTimeout returns the per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Settings.Server.TimeoutSeconds) * time.Second
}

func (c *Config) loadSettings() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var parsed Settings
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	parsed.normalize()
	c.Settings = parsed
	return nil
}

func (c *Config) applyEnvOverrides() {
	if base := strings.TrimSpace(os.Getenv(envBaseURL)); base != "" {
		c.Settings.Server.BaseURL = strings.TrimRight(base, "/")
	}
	if raw := strings.TrimSpace(os.Getenv(envTimeout)); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			c.Settings.Server.TimeoutSeconds = seconds
		}
	}
}

func defaultSettings() Settings {
	return Settings{
		Version: 1,
		Server: ServerSettings{
			BaseURL:        defaultBaseURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
	}
}

func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = 1
	}
	if strings.TrimSpace(s.Server.BaseURL) == "" {
		s.Server.BaseURL = defaultBaseURL
	}
	if s.Server.TimeoutSeconds == 0 {
		s.Server.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (s *Settings) normalize() {
	s.Server.BaseURL = strings.TrimRight(strings.TrimSpace(s.Server.BaseURL), "/")
}

func (s Settings) validate() error {
	if s.Version < 1 {
		return fmt.Errorf("version must be >= 1")
	}
	if !strings.HasPrefix(s.Server.BaseURL, "http://") && !strings.HasPrefix(s.Server.BaseURL, "https://") {
		return fmt.Errorf("server.base_url must be an http(s) address, got %q", s.Server.BaseURL)
	}
	if s.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("server.timeout_seconds must be positive")
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the panel settings from ~/.detpanel/config.yaml
type Config struct {
	ServerURL          string `yaml:"server_url"`
	TimeoutSeconds     int    `yaml:"timeout_seconds"`
	PollIntervalMillis int    `yaml:"poll_interval_ms"`
	DownloadDir        string `yaml:"download_dir"`

	// Derived
	Timeout      time.Duration `yaml:"-"`
	PollInterval time.Duration `yaml:"-"`
}

const defaultConfigYAML = `# detpanel settings
server_url: "http://127.0.0.1:5000"
timeout_seconds: 10
poll_interval_ms: 2000
download_dir: ""
`

// Dir palauttaa panelin konfiguraatiohakemiston (~/.detpanel)
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".detpanel"), nil
}

// Load reads the panel config, creating the default file on first run.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(dir, "config.yaml"))
}

// LoadFile reads and validates a config file at the given path
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0755); mkErr != nil {
			return nil, fmt.Errorf("create config dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultConfigYAML), 0644); wErr != nil {
			return nil, fmt.Errorf("write default config: %w", wErr)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML from %s: %w", path, err)
	}

	// Validate and derive values
	if strings.TrimSpace(cfg.ServerURL) == "" {
		cfg.ServerURL = "http://127.0.0.1:5000"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 10
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if cfg.PollIntervalMillis <= 0 {
		cfg.PollIntervalMillis = 2000
	}
	cfg.PollInterval = time.Duration(cfg.PollIntervalMillis) * time.Millisecond

	if cfg.DownloadDir == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		cfg.DownloadDir = filepath.Join(dir, "clips")
	}

	return &cfg, nil
}

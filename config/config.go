// CLAUDE:SUMMARY Defines scaffold config structs and parses YAML configuration files with defaults.
// Package config loads the scaffold configuration from a YAML file.
//
// The result is a plain struct handed to constructors by parameter.
// There is no ambient singleton and no dotted-path lookup: a component
// that needs the snapshot root receives the snapshot root.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/pageproof/snapstore"
)

// Config is the top-level scaffold configuration.
type Config struct {
	Browser       BrowserConfig       `yaml:"browser"`
	Snapshots     SnapshotsConfig     `yaml:"snapshots"`
	Server        ServerConfig        `yaml:"server"`
	Observability ObservabilityConfig `yaml:"observability"`
	TestData      TestDataConfig      `yaml:"test_data"`
}

// BrowserConfig controls the Chrome instance.
type BrowserConfig struct {
	Remote       string   `yaml:"remote"`
	Headful      bool     `yaml:"headful"`
	Stealth      bool     `yaml:"stealth"`
	WindowWidth  int      `yaml:"window_width"`
	WindowHeight int      `yaml:"window_height"`
	NavTimeout   Duration `yaml:"nav_timeout"`
}

// SnapshotsConfig controls the snapshot store.
type SnapshotsConfig struct {
	Root        string `yaml:"root"`
	KeepHistory int    `yaml:"keep_history"` // 0 disables archiving
	Digest      bool   `yaml:"digest"`
	Ext         string `yaml:"ext"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ObservabilityConfig controls the capture audit database.
type ObservabilityConfig struct {
	DBPath        string `yaml:"db_path"`
	RetentionDays int    `yaml:"retention_days"`
}

// TestDataConfig holds target-site parameters for the example suites.
type TestDataConfig struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Browser: BrowserConfig{
			WindowWidth:  1920,
			WindowHeight: 1080,
			NavTimeout:   Duration(30 * time.Second),
		},
		Snapshots: SnapshotsConfig{
			Root:        "page_snapshots",
			KeepHistory: snapstore.DefaultKeepHistory,
			Ext:         ".html",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
		Observability: ObservabilityConfig{
			DBPath:        "pageproof.db",
			RetentionDays: 30,
		},
	}
}

// LoadFile reads a YAML configuration file. Defaults are seeded before
// parsing, so an omitted key keeps its default while an explicit
// `keep_history: 0` genuinely disables archiving.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Snapshots.Root == "" {
		return fmt.Errorf("snapshots.root must not be empty")
	}
	if c.Snapshots.KeepHistory < 0 {
		return fmt.Errorf("snapshots.keep_history must be >= 0, got %d", c.Snapshots.KeepHistory)
	}
	if c.Observability.RetentionDays < 0 {
		return fmt.Errorf("observability.retention_days must be >= 0, got %d", c.Observability.RetentionDays)
	}
	return nil
}

// Package config resolves the effective client configuration once at startup.
// Precedence, highest first: the --server flag, the ARCHITECT_SERVER_URL
// environment variable, the config file, the built-in default.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ageborn-dev/architect-mcp-cli/pkg/logging"
)

const (
	// DefaultServerURL is used when nothing else specifies a server.
	DefaultServerURL = "http://localhost:3001"
	// ServerURLEnvVar overrides the config file and default when set.
	ServerURLEnvVar = "ARCHITECT_SERVER_URL"

	configFileName = "config.yaml"
)

// Config holds the resolved client configuration.
type Config struct {
	// ServerURL is the base URL of the Architect server.
	ServerURL string `yaml:"serverUrl"`
}

// Resolve builds the effective configuration. flagURL is the value of the
// global --server flag, empty when not given.
func Resolve(flagURL string) Config {
	cfg := Config{ServerURL: DefaultServerURL}

	if path, err := DefaultConfigPath(); err == nil {
		fileCfg, err := Load(path)
		switch {
		case err == nil && fileCfg.ServerURL != "":
			cfg.ServerURL = fileCfg.ServerURL
			logging.Info("Config", "Using server URL from %s", path)
		case err != nil && !os.IsNotExist(err):
			logging.Warn("Config", "Ignoring config file %s: %v", path, err)
		}
	}

	if env := os.Getenv(ServerURLEnvVar); env != "" {
		cfg.ServerURL = env
	}
	if flagURL != "" {
		cfg.ServerURL = flagURL
	}
	return cfg
}

// DefaultConfigPath returns the per-user config file location,
// e.g. ~/.config/architect/config.yaml on Linux.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "architect", configFileName), nil
}

// Load reads and parses a config file. A missing file is reported through the
// returned error so callers can fall back to defaults silently.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

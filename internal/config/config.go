// Package config handles loading bossy.toml configuration files and the
// optional bossy.env environment file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the bossy.toml configuration file.
type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Log      Log      `toml:"log"`
}

// Server contains HTTP server configuration.
type Server struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`

	// BaseURL is the externally visible URL, used by the web UI to
	// reach the RPC endpoints. Defaults to the request host.
	BaseURL string `toml:"base-url"`
}

// Database contains persistence configuration.
type Database struct {
	// Path is the SQLite database file path.
	Path string `toml:"path"`
}

// Log contains logging configuration.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Defaults applied when neither config file nor environment sets a value.
const (
	DefaultAddr     = ":8080"
	DefaultLogLevel = "info"
)

// DefaultDatabasePath returns the default SQLite path under the user's
// home directory.
func DefaultDatabasePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".bossy", "bossy.db")
}

// Load loads configuration from the working directory and the global
// config file, then overlays BOSSY_* environment variables. A bossy.env
// file in the working directory is loaded into the environment first.
// Returns a fully defaulted config if no config sources exist.
func Load(dir string) (*Config, error) {
	// Env file is optional; a missing file is not an error.
	_ = godotenv.Load(filepath.Join(dir, "bossy.env"))

	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, "bossy.toml"))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	applyEnv(merged)
	applyDefaults(merged)
	return merged, nil
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "bossy", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Server.Addr = mergeString(projectMeta.IsDefined("server", "addr"), projectCfg.Server.Addr, globalCfg.Server.Addr)
	merged.Server.BaseURL = mergeString(projectMeta.IsDefined("server", "base-url"), projectCfg.Server.BaseURL, globalCfg.Server.BaseURL)
	merged.Database.Path = mergeString(projectMeta.IsDefined("database", "path"), projectCfg.Database.Path, globalCfg.Database.Path)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)
	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func applyEnv(cfg *Config) {
	if value := os.Getenv("BOSSY_ADDR"); value != "" {
		cfg.Server.Addr = value
	}
	if value := os.Getenv("BOSSY_BASE_URL"); value != "" {
		cfg.Server.BaseURL = value
	}
	if value := os.Getenv("BOSSY_DB_PATH"); value != "" {
		cfg.Database.Path = value
	}
	if value := os.Getenv("BOSSY_LOG_LEVEL"); value != "" {
		cfg.Log.Level = value
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

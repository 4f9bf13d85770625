package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/example/todo/internal/db"
)

// Environment variables that override the config file.
const (
	EnvDBPath     = "TODO_DB_PATH"
	EnvLogLevel   = "TODO_LOG_LEVEL"
	EnvLogFormat  = "TODO_LOG_FORMAT"
	EnvAutoSave   = "TODO_AUTO_SAVE"
	configDirName = ".todo"
	configFile    = "config.yaml"
)

// Config represents the flat todo configuration
type Config struct {
	DBPath    string `yaml:"db_path"`
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text or json
	// AutoSaveOnExit saves a titled task when the detail screen is left
	// without an explicit save.
	AutoSaveOnExit bool `yaml:"auto_save_on_exit"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	path, err := db.DefaultPath()
	if err != nil {
		path = filepath.Join(configDirName, "todo.db")
	}
	return &Config{
		DBPath:         path,
		LogLevel:       "info",
		LogFormat:      "text",
		AutoSaveOnExit: true,
	}
}

// Load resolves configuration for dir: defaults, then .todo/config.yaml in
// dir if present, then environment (including a .env file in the working
// directory).
func Load(dir string) (*Config, error) {
	cfg := Default()

	fileCfg, err := LoadConfig(dir)
	switch {
	case err == nil:
		cfg.merge(fileCfg)
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadConfig reads .todo/config.yaml from the specified directory.
// Fields absent from the file keep their zero values except
// auto_save_on_exit, which defaults to true.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Config{AutoSaveOnExit: true}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Path returns the config file location for dir.
func Path(dir string) string {
	return filepath.Join(dir, configDirName, configFile)
}

// SaveConfig writes config.yaml to directory
func SaveConfig(dir string, cfg *Config) error {
	todoDir := filepath.Join(dir, configDirName)
	if err := os.MkdirAll(todoDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", configDirName, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) merge(other *Config) {
	if other.DBPath != "" {
		c.DBPath = other.DBPath
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	c.AutoSaveOnExit = other.AutoSaveOnExit
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAutoSave)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvAutoSave, v, err)
		}
		c.AutoSaveOnExit = b
	}
	return nil
}

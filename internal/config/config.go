// Package config loads passgen settings from defaults, an optional TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// EnvPrefix prefixes every environment override, e.g. PASSGEN_STORE_PATH.
const EnvPrefix = "PASSGEN"

// Config holds application configuration.
type Config struct {
	Store     StoreConfig     `mapstructure:"store"`
	Log       LogConfig       `mapstructure:"log"`
	Clipboard ClipboardConfig `mapstructure:"clipboard"`
	Generator GeneratorConfig `mapstructure:"generator"`
}

// StoreConfig selects and locates the database.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"` // sqlite file
	DSN    string `mapstructure:"dsn"`  // postgres connection string
}

// LogConfig controls the zap logger. An empty File logs to stderr.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ClipboardConfig selects the OSC 52 wrapping: osc52, tmux, screen or off.
type ClipboardConfig struct {
	Mode string `mapstructure:"mode"`
}

// GeneratorConfig tunes password generation.
type GeneratorConfig struct {
	Length int `mapstructure:"length"`
}

// DefaultPath is the config file used when neither a flag nor PASSGEN_CONFIG names one.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".config", "passgen", "config.toml")
}

// Load reads configuration. path, if non-empty, names a TOML file that must exist;
// otherwise $PASSGEN_CONFIG or DefaultPath is read when present.
func Load(path string) (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(homeDir(), ".local", "share", "passgen")
	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.path", filepath.Join(dataDir, "passgen.db"))
	v.SetDefault("store.dsn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dataDir, "passgen.log"))
	v.SetDefault("clipboard.mode", "osc52")
	v.SetDefault("generator.length", 16)

	v.SetConfigType("toml")
	required := path != ""
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
		required = path != ""
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if required || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			return errors.New("config: store.path is required for sqlite")
		}
	case DriverPostgres:
		if c.Store.DSN == "" {
			return errors.New("config: store.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("config: unknown store.driver %q", c.Store.Driver)
	}
	if c.Generator.Length <= 0 {
		return fmt.Errorf("config: generator.length must be positive, got %d", c.Generator.Length)
	}
	return nil
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

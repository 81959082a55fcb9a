// Package config handles application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the full process configuration: where the proxy listens, and
// how it reaches the analytic store it fronts.
type Config struct {
	Listen  ListenConfig  `mapstructure:"listen"`
	Backend BackendConfig `mapstructure:"backend"`
	Log     LogConfig     `mapstructure:"log"`
}

// ListenConfig controls the client-facing TCP listener.
type ListenConfig struct {
	Address string `mapstructure:"address"`
}

// BackendConfig carries the connection parameters for the analytic store.
type BackendConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Database  string `mapstructure:"database"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	Clustered bool   `mapstructure:"clustered"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when no file, flag, or environment
// variable overrides a setting.
func Default() *Config {
	return &Config{
		Listen: ListenConfig{
			Address: "localhost:5432",
		},
		Backend: BackendConfig{
			Host:     "localhost",
			Port:     5000,
			Database: "master",
			Username: "rhendricks",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from built-in defaults, file, and environment
// variables, in that order of increasing precedence; command-line flags are
// not read here and are applied by the caller. configPath may be empty, in
// which case "pgproxy.yaml" is searched for in the working directory and
// /etc/pgproxy.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("listen.address", defaults.Listen.Address)
	v.SetDefault("backend.host", defaults.Backend.Host)
	v.SetDefault("backend.port", defaults.Backend.Port)
	v.SetDefault("backend.database", defaults.Backend.Database)
	v.SetDefault("backend.username", defaults.Backend.Username)
	v.SetDefault("backend.clustered", defaults.Backend.Clustered)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("pgproxy")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/pgproxy")
	}

	v.SetEnvPrefix("pgproxy")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Dump renders the effective configuration as YAML, with the backend
// password masked, for display via "pgproxy config show".
func (c *Config) Dump() ([]byte, error) {
	redacted := *c
	if redacted.Backend.Password != "" {
		redacted.Backend.Password = "********"
	}
	return yaml.Marshal(&redacted)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Listen.Address == "" {
		return errors.New("listen.address is required")
	}
	if c.Backend.Host == "" {
		return errors.New("backend.host is required")
	}
	if c.Backend.Port == 0 {
		return errors.New("backend.port is required")
	}
	return nil
}

package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/arcboost/arcboost/internal/logger"
)

// FileConfig represents the top-level TOML structure.
type FileConfig struct {
	StatePath string         `toml:"state_path" mapstructure:"state_path"`
	Log       *logger.Config `toml:"log" mapstructure:"log"`
	History   HistoryConfig  `toml:"history" mapstructure:"history"`
	Metrics   MetricsConfig  `toml:"metrics" mapstructure:"metrics"`
	Server    ServerConfig   `toml:"server" mapstructure:"server"`
}

// HistoryConfig lists audit sink DSNs. Every completed batch is forwarded
// to all of them.
type HistoryConfig struct {
	Sinks []string `toml:"sinks" mapstructure:"sinks"`
}

// MetricsConfig controls Prometheus exposition. When Enabled, /metrics is
// served on the API listener; Listen additionally starts a dedicated
// metrics-only listener.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Listen  string `toml:"listen" mapstructure:"listen"`
}

type ServerConfig struct {
	Listen       string        `toml:"listen" mapstructure:"listen"`
	BasePath     string        `toml:"base_path" mapstructure:"base_path"`
	ReadTimeout  time.Duration `toml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout" mapstructure:"write_timeout"`
}

// Load parses a TOML config file. Defaults are filled for anything omitted;
// an empty path yields pure defaults.
func Load(path string) (FileConfig, error) {
	fc := Defaults()
	if path == "" {
		return fc, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return FileConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&fc); err != nil {
		return FileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := fc.validate(); err != nil {
		return FileConfig{}, err
	}
	return fc, nil
}

// Defaults returns the configuration used when no file is given.
func Defaults() FileConfig {
	return FileConfig{
		Server: ServerConfig{
			Listen:       "127.0.0.1:8115",
			BasePath:     "/api",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

func (fc FileConfig) validate() error {
	if fc.Server.Listen == "" {
		return fmt.Errorf("server.listen must not be empty")
	}
	if fc.Server.BasePath == "" || fc.Server.BasePath[0] != '/' {
		return fmt.Errorf("server.base_path must start with /")
	}
	return nil
}

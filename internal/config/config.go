// Package config loads the app configuration from file, environment and
// defaults, in that order of increasing priority for the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the app-level configuration.
type Config struct {
	DataDir    string   `mapstructure:"data_dir"`
	Backend    string   `mapstructure:"backend"`
	HostSocket string   `mapstructure:"host_socket"`
	LogLevel   string   `mapstructure:"log_level"`
	GC         GCConfig `mapstructure:"gc"`
}

// GCConfig controls the startup orphaned-asset scan.
type GCConfig struct {
	Delay    time.Duration `mapstructure:"delay"`
	Disabled bool          `mapstructure:"disabled"`
}

// Load reads the configuration. An explicit path must exist; an empty path
// falls back to <config dir>/inkpad/config.yaml if present, defaults
// otherwise. Environment variables use the INKPAD_ prefix
// (e.g. INKPAD_DATA_DIR, INKPAD_HOST_SOCKET).
func Load(path string) (*Config, error) {
	v := viper.New()

	// Every key needs a default so environment overrides bind during
	// Unmarshal even without a config file.
	v.SetDefault("data_dir", "")
	v.SetDefault("backend", "")
	v.SetDefault("host_socket", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("gc.delay", 5*time.Second)
	v.SetDefault("gc.disabled", false)

	v.SetEnvPrefix("INKPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if base, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(base, "inkpad", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			v.SetConfigFile(candidate)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", candidate, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

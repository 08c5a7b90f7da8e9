package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Backend BackendConfig
	UI      UIConfig
}

// BackendConfig holds the aggregation service settings.
type BackendConfig struct {
	URL             string
	HealthTimeout   time.Duration `mapstructure:"health_timeout"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DownloadDir  string `mapstructure:"download_dir"`
	MaxTableRows int    `mapstructure:"max_table_rows"`
}

// Load reads configuration from file and env. Env var overrides use
// prefix ECONDASH_; the backend URL also honors the plain
// BACKEND_API_URL variable the deployment sets.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("backend.url", "http://backend:8000")
	v.SetDefault("backend.health_timeout", "10s")
	v.SetDefault("backend.download_timeout", "30s")
	v.SetDefault("ui.download_dir", ".")
	v.SetDefault("ui.max_table_rows", 12)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ECONDASH_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "econdash"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ECONDASH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("backend.url", "ECONDASH_BACKEND_URL", "BACKEND_API_URL")

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

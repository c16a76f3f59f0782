package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type (
	app struct {
		Name     string `json:"name" mapstructure:"name"`
		Env      string `json:"env" mapstructure:"env"`
		Port     int    `json:"port" mapstructure:"port"`
		Timezone string `json:"timezone" mapstructure:"timezone"`
		Version  string `json:"version" mapstructure:"version"`
	}

	archive struct {
		BaseURL           string  `json:"base_url" mapstructure:"base_url"`
		Timeout           string  `json:"timeout" mapstructure:"timeout"`
		RequestsPerSecond float64 `json:"requests_per_second" mapstructure:"requests_per_second"`
		Burst             int     `json:"burst" mapstructure:"burst"`
	}

	Config struct {
		App     app     `json:"app" mapstructure:"app"`
		Archive archive `json:"archive" mapstructure:"archive"`
	}
)

var cfg *Config

// Init loads configuration from the .config file, falling back to defaults
// when the file is absent. PORT in the environment overrides app.port.
func Init() error {
	viper.SetConfigName(".config")
	viper.SetConfigType("json")
	viper.AddConfigPath("./")

	viper.SetDefault("app.name", "adlib-gateway")
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("app.port", 8080)
	viper.SetDefault("app.timezone", "UTC")
	viper.SetDefault("app.version", "dev")
	viper.SetDefault("archive.timeout", "60s")

	if err := viper.BindEnv("app.port", "PORT"); err != nil {
		return fmt.Errorf("failed to bind PORT: %w", err)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// Get returns the current configuration instance
func Get() *Config {
	return cfg
}

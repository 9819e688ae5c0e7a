// Package config provides configuration management for foremanctl
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/Mamut3D/foremanctl/internal/common/errors"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`

	// Foreman API connection
	ForemanHost string `mapstructure:"foreman_host"`
	ForemanPort int    `mapstructure:"foreman_port"`
	ForemanUser string `mapstructure:"foreman_user"`
	ForemanPass string `mapstructure:"foreman_pass"`
	ForemanSSL  bool   `mapstructure:"foreman_ssl"`

	// TLS certificate verification for the Foreman API endpoint
	SSLVerify bool `mapstructure:"ssl_verify"`

	// Request timeout in seconds for Foreman API calls
	RequestTimeout int `mapstructure:"request_timeout"`
}

// Load reads configuration from file and environment variables. An empty
// configFile searches the default locations; a non-empty one is required to
// exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Read from config file
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/foremanctl")

		// Config file is optional when not named explicitly
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read from environment variables
	v.SetEnvPrefix("FOREMANCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Also support non-prefixed env vars for common settings
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")

	// Foreman API defaults
	v.SetDefault("foreman_host", "127.0.0.1")
	v.SetDefault("foreman_port", 443)
	v.SetDefault("foreman_ssl", true)
	v.SetDefault("ssl_verify", true)
	v.SetDefault("request_timeout", 30)
}

func bindEnvVars(v *viper.Viper) {
	// Common environment variable mappings
	envMappings := map[string]string{
		"environment":     "APP_ENV",
		"log_level":       "LOG_LEVEL",
		"foreman_host":    "FOREMAN_HOST",
		"foreman_port":    "FOREMAN_PORT",
		"foreman_user":    "FOREMAN_USER",
		"foreman_pass":    "FOREMAN_PASS",
		"foreman_ssl":     "FOREMAN_SSL",
		"ssl_verify":      "FOREMAN_SSL_VERIFY",
		"request_timeout": "FOREMAN_REQUEST_TIMEOUT",
	}

	for key, env := range envMappings {
		v.BindEnv(key, env)
	}
}

func validate(cfg *Config) error {
	if cfg.ForemanUser == "" {
		return apperrors.Configuration("foreman_user is required")
	}
	if cfg.ForemanPass == "" {
		return apperrors.Configuration("foreman_pass is required")
	}
	if cfg.ForemanPort < 1 || cfg.ForemanPort > 65535 {
		return apperrors.Configuration("foreman_port must be between 1 and 65535")
	}
	if cfg.RequestTimeout < 1 {
		return apperrors.Configuration("request_timeout must be positive")
	}
	return nil
}

// BaseURL returns the Foreman API base URL derived from host, port and SSL settings
func (c *Config) BaseURL() string {
	scheme := "http"
	if c.ForemanSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.ForemanHost, c.ForemanPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

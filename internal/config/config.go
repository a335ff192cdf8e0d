package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds everything the API server needs at startup.
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Environment    string        `mapstructure:"environment"`
	DatabaseURL    string        `mapstructure:"database_url"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	JWTIssuer      string        `mapstructure:"jwt_issuer"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	EnableCORS     bool          `mapstructure:"enable_cors"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`

	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
	RateLimitBurst     int `mapstructure:"rate_limit_burst"`
}

// DefaultServerConfig returns the configuration used when nothing is provided.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:               "localhost",
		Port:               8080,
		Environment:        "development",
		JWTIssuer:          "remind",
		AccessTokenTTL:     15 * time.Minute,
		EnableCORS:         true,
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		RateLimitPerMinute: 300,
		RateLimitBurst:     60,
	}
}

// LoadServerConfig reads remind-config.json from $HOME or the working
// directory, then applies REMIND_* environment overrides on top of defaults.
func LoadServerConfig() (*ServerConfig, error) {
	v := viper.New()
	v.SetConfigName("remind-config")
	v.SetConfigType("json")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	defaults := DefaultServerConfig()
	v.SetDefault("host", defaults.Host)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("environment", defaults.Environment)
	v.SetDefault("jwt_issuer", defaults.JWTIssuer)
	v.SetDefault("access_token_ttl", defaults.AccessTokenTTL)
	v.SetDefault("enable_cors", defaults.EnableCORS)
	v.SetDefault("read_timeout", defaults.ReadTimeout)
	v.SetDefault("write_timeout", defaults.WriteTimeout)
	v.SetDefault("rate_limit_per_minute", defaults.RateLimitPerMinute)
	v.SetDefault("rate_limit_burst", defaults.RateLimitBurst)

	v.SetEnvPrefix("REMIND")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &ServerConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

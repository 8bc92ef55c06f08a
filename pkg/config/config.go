package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig              `mapstructure:"server"`
	Database     DatabaseConfig            `mapstructure:"database"`
	Redis        RedisConfig               `mapstructure:"redis"`
	Security     SecurityConfig            `mapstructure:"security"`
	Metrics      MetricsConfig             `mapstructure:"metrics"`
	RateLimits   map[string]map[string]any `mapstructure:"rate_limits"`
	Retention    RetentionConfig           `mapstructure:"retention"`
	CacheEnabled bool                      `mapstructure:"cache_enabled"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type SecurityConfig struct {
	CsrfSecret   string        `mapstructure:"csrf_secret"`
	CsrfTokenTTL time.Duration `mapstructure:"csrf_token_ttl"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type RetentionConfig struct {
	TrashDays int `mapstructure:"trash_days"`
}

// Load reads config.yaml from the given path, with environment variables
// overriding file values. The returned Config is injected into the
// components that need it; there is no package-level state.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// no file is fine, environment variables may carry everything
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Security.CsrfTokenTTL == 0 {
		cfg.Security.CsrfTokenTTL = 2 * time.Hour
	}
	if cfg.Retention.TrashDays == 0 {
		cfg.Retention.TrashDays = 30
	}
}

func validate(cfg *Config) error {
	if cfg.IsProduction() && cfg.Security.CsrfSecret == "" {
		return errors.New("security.csrf_secret is required in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rogerio-castellano/catalog-validator/internal/catalog"
	"github.com/rogerio-castellano/catalog-validator/internal/logging"
	"github.com/rogerio-castellano/catalog-validator/internal/report"
	"github.com/spf13/viper"
)

const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Source   string         `mapstructure:"source"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Report   ReportConfig   `mapstructure:"report"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

type CatalogConfig struct {
	URL     string        `mapstructure:"url"`
	Name    string        `mapstructure:"name"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type CacheConfig struct {
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type ReportConfig struct {
	Format  string `mapstructure:"format"`
	Summary bool   `mapstructure:"summary"`
}

type ServerConfig struct {
	Addr      string  `mapstructure:"addr"`
	JWTSecret string  `mapstructure:"jwt_secret"`
	Rate      float64 `mapstructure:"rate"`
	Burst     int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every key so env vars and flags can override it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("catalog.url", catalog.DefaultURL)
	v.SetDefault("catalog.name", report.DefaultTitle)
	v.SetDefault("catalog.timeout", time.Duration(0))
	v.SetDefault("source", SourceHTTP)
	v.SetDefault("database.url", "")
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("report.format", string(report.FormatText))
	v.SetDefault("report.summary", false)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.rate", 1.0)
	v.SetDefault("server.burst", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads defaults, an optional config file and CATALOG_* environment
// variables. DATABASE_URL is honoured for database.url.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database.url", "CATALOG_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Source {
	case SourceHTTP, SourcePostgres:
	default:
		errs = append(errs, fmt.Errorf("source must be %q or %q, got %q", SourceHTTP, SourcePostgres, c.Source))
	}
	if c.Source == SourceHTTP && strings.TrimSpace(c.Catalog.URL) == "" {
		errs = append(errs, errors.New("catalog.url is required"))
	}
	if c.Catalog.Timeout < 0 {
		errs = append(errs, errors.New("catalog.timeout cannot be negative"))
	}
	if _, err := report.ParseFormat(c.Report.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Cache.RedisAddr != "" && c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive when the cache is enabled"))
	}
	if c.Server.Rate <= 0 || c.Server.Burst <= 0 {
		errs = append(errs, errors.New("server.rate and server.burst must be positive"))
	}

	return errors.Join(errs...)
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the bridge configuration loaded from files and environment
// variables. It is established once at startup and read-only afterwards.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	// Analytics endpoint defaults; per-call parameters override these.
	PiwikURL  string `mapstructure:"piwik_url"`
	SiteID    string `mapstructure:"site_id"`
	TokenAuth string `mapstructure:"token_auth"`
	EmbedTag  bool   `mapstructure:"embed_tag"`

	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	CacheType            string        `mapstructure:"cache_type"`
	CachePath            string        `mapstructure:"cache_path"`
	CacheTTLSeconds      int64         `mapstructure:"cache_ttl_seconds"`
	CacheCleanupSeconds  int64         `mapstructure:"cache_cleanup_interval_seconds"`
	CacheTTL             time.Duration `mapstructure:"-"`
	CacheCleanupInterval time.Duration `mapstructure:"-"`

	ReportsFile           string        `mapstructure:"reports_file"`
	ExportersFile         string        `mapstructure:"exporters_file"`
	ReportIntervalSeconds int64         `mapstructure:"report_interval"`
	ReportInterval        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "piwik-bridge")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("piwik_url", "")
	v.SetDefault("site_id", "")
	v.SetDefault("token_auth", "")
	v.SetDefault("embed_tag", true)
	v.SetDefault("http_timeout_seconds", 15)
	v.SetDefault("cache_type", "none")
	v.SetDefault("cache_path", "./data/responses.db")
	v.SetDefault("cache_ttl_seconds", int64((15*time.Minute)/time.Second))
	v.SetDefault("cache_cleanup_interval_seconds", int64(time.Hour/time.Second))
	v.SetDefault("reports_file", "./configs/reports.yaml")
	v.SetDefault("exporters_file", "./configs/exporters.yaml")
	v.SetDefault("report_interval", 900) // seconds

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.PiwikURL = strings.TrimSpace(cfg.PiwikURL)

	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.ReportIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid report_interval (must be positive seconds)")
	}
	cfg.ReportInterval = time.Duration(cfg.ReportIntervalSeconds) * time.Second

	if cfg.CacheTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid cache_ttl_seconds (must be positive seconds)")
	}
	if cfg.CacheCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid cache_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.CacheTTL = time.Duration(cfg.CacheTTLSeconds) * time.Second
	cfg.CacheCleanupInterval = time.Duration(cfg.CacheCleanupSeconds) * time.Second

	return &cfg, nil
}

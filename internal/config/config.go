package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrAccessTokenMissing = errors.New("TMDB access token is not configured")
	ErrNoPlaybackProvider = errors.New("at least one playback provider is required")
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	TMDB     TMDBConfig     `mapstructure:"tmdb"`
	Search   SearchConfig   `mapstructure:"search"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Health   HealthConfig   `mapstructure:"health"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host      string  `mapstructure:"host"`
	Port      int     `mapstructure:"port"`
	RateLimit float64 `mapstructure:"rate_limit"` // requests per second per client IP
	RateBurst int     `mapstructure:"rate_burst"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	AccessToken   string  `mapstructure:"access_token"`
	BaseURL       string  `mapstructure:"base_url"`
	ImageBaseURL  string  `mapstructure:"image_base_url"`
	Language      string  `mapstructure:"language"`
	Timeout       int     `mapstructure:"timeout"` // seconds
	RateLimit     float64 `mapstructure:"rate_limit"`
	RateBurst     int     `mapstructure:"rate_burst"`
	RetryAttempts uint    `mapstructure:"retry_attempts"`
	IncludeAdult  bool    `mapstructure:"include_adult"`
	Mock          bool    `mapstructure:"mock"`
}

// RequestTimeout returns the per-request timeout as a duration.
func (c TMDBConfig) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// SearchConfig holds search-as-you-type configuration.
type SearchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms"`
	Timeout    int `mapstructure:"timeout"` // seconds
}

// Debounce returns the quiet window between keystrokes and the network call.
func (c SearchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// RequestTimeout returns the timeout for a single search request.
func (c SearchConfig) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// PlaybackConfig holds the ordered list of embed providers.
type PlaybackConfig struct {
	Providers []ProviderConfig `mapstructure:"providers"`
}

// ProviderConfig is a single embed provider. Template uses {id} as the movie ID placeholder.
type ProviderConfig struct {
	Name     string `mapstructure:"name"`
	Template string `mapstructure:"template"`
}

// HealthConfig holds provider health check configuration.
type HealthConfig struct {
	Cron string `mapstructure:"cron"`
}

// DefaultProviders returns the built-in embed providers in fallback order.
func DefaultProviders() []ProviderConfig {
	return []ProviderConfig{
		{Name: "vidsrc", Template: "https://vidsrc.cc/v2/embed/movie/{id}?autoplay=true"},
		{Name: "vidbinge", Template: "https://vidbinge.com/embed/{id}"},
	}
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			RateLimit: 10,
			RateBurst: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		TMDB: TMDBConfig{
			AccessToken:   EmbeddedTMDBKey,
			BaseURL:       "https://api.themoviedb.org/3",
			ImageBaseURL:  "https://image.tmdb.org/t/p",
			Language:      "en-US",
			Timeout:       10,
			RateLimit:     40,
			RateBurst:     10,
			RetryAttempts: 1,
		},
		Search: SearchConfig{
			DebounceMS: 250,
			Timeout:    10,
		},
		Playback: PlaybackConfig{
			Providers: DefaultProviders(),
		},
		Health: HealthConfig{
			Cron: "*/15 * * * *",
		},
	}
}

// Load reads configuration from .env, file and environment variables.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	// .env is optional; real environment variables always win over it
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.flickstream")
	}

	v.SetEnvPrefix("FLICKSTREAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("tmdb.access_token", "FLICKSTREAM_TMDB_ACCESS_TOKEN", "TMDB_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind TMDB token env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.TMDB.AccessToken == "" {
		cfg.TMDB.AccessToken = EmbeddedTMDBKey
	}
	if len(cfg.Playback.Providers) == 0 {
		cfg.Playback.Providers = DefaultProviders()
	}

	return cfg, nil
}

// Validate checks that the loaded configuration can drive the application.
func (c *Config) Validate() error {
	if c.TMDB.AccessToken == "" && !c.TMDB.Mock {
		return ErrAccessTokenMissing
	}
	if c.Search.DebounceMS <= 0 {
		return fmt.Errorf("search.debounce_ms must be positive, got %d", c.Search.DebounceMS)
	}
	if len(c.Playback.Providers) == 0 {
		return ErrNoPlaybackProvider
	}
	for i, p := range c.Playback.Providers {
		if p.Template == "" {
			return fmt.Errorf("playback.providers[%d] (%s) has an empty template", i, p.Name)
		}
	}
	return nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.rate_limit", d.Server.RateLimit)
	v.SetDefault("server.rate_burst", d.Server.RateBurst)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)
	v.SetDefault("logging.compress", true)

	v.SetDefault("tmdb.access_token", "")
	v.SetDefault("tmdb.base_url", d.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", d.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.language", d.TMDB.Language)
	v.SetDefault("tmdb.timeout", d.TMDB.Timeout)
	v.SetDefault("tmdb.rate_limit", d.TMDB.RateLimit)
	v.SetDefault("tmdb.rate_burst", d.TMDB.RateBurst)
	v.SetDefault("tmdb.retry_attempts", d.TMDB.RetryAttempts)
	v.SetDefault("tmdb.include_adult", false)
	v.SetDefault("tmdb.mock", false)

	v.SetDefault("search.debounce_ms", d.Search.DebounceMS)
	v.SetDefault("search.timeout", d.Search.Timeout)

	v.SetDefault("health.cron", d.Health.Cron)
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

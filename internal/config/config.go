package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logger    LoggerConfig    `yaml:"logger"`
	Gin       GinConfig       `yaml:"gin"`
	Site      SiteConfig      `yaml:"site"`
	Store     StoreConfig     `yaml:"store"`
	Reminders RemindersConfig `yaml:"reminders"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Admin     AdminConfig     `yaml:"admin"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"          env:"SERVER_ADDR"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env:"SERVER_IDLE_TIMEOUT"`
}

type LoggerConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

type GinConfig struct {
	Mode string `yaml:"mode" env:"GIN_MODE"`
}

type SiteConfig struct {
	// Timezone is the IANA zone all civil times are interpreted in.
	Timezone      string `yaml:"timezone"       env:"SITE_TIMEZONE"`
	DefaultLocale string `yaml:"default_locale" env:"SITE_DEFAULT_LOCALE"`
	EventsPath    string `yaml:"events_path"    env:"SITE_EVENTS_PATH"`
}

type StoreConfig struct {
	Path     string        `yaml:"path"      env:"STORE_PATH"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"STORE_CACHE_TTL"`
}

type RemindersConfig struct {
	// Cron is a standard 5-field cron expression for the reminder pass.
	Cron   string        `yaml:"cron"   env:"REMINDERS_CRON"`
	Window time.Duration `yaml:"window" env:"REMINDERS_WINDOW"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"   env:"RATE_LIMIT_RPS"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// AdminConfig guards the reservations export; the endpoint stays disabled
// while the credentials are unset.
type AdminConfig struct {
	Username string `yaml:"username" env:"ADMIN_USERNAME"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Logger: LoggerConfig{Level: "info"},
		Gin:    GinConfig{Mode: "release"},
		Site: SiteConfig{
			Timezone:      "America/New_York",
			DefaultLocale: "en",
			EventsPath:    "events.yaml",
		},
		Store: StoreConfig{
			Path:     "data/reservations.json",
			CacheTTL: 5 * time.Second,
		},
		Reminders: RemindersConfig{
			Cron:   "*/10 * * * *",
			Window: 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			RPS:   2,
			Burst: 5,
		},
	}
}

// Load reads the YAML config file (if present), then applies environment
// overrides on top, then validates. A missing file is not an error: the
// defaults plus environment are a complete configuration.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to env-only config
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load for main: configuration problems are unrecoverable.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	if _, err := time.LoadLocation(c.Site.Timezone); err != nil {
		return fmt.Errorf("invalid site timezone %q: %w", c.Site.Timezone, err)
	}
	switch c.Site.DefaultLocale {
	case "en", "es":
	default:
		return fmt.Errorf("unsupported default locale %q", c.Site.DefaultLocale)
	}
	if c.Store.Path == "" {
		return errors.New("store path must not be empty")
	}
	if c.Reminders.Window <= 0 {
		return errors.New("reminder window must be positive")
	}
	return nil
}

// Location resolves the configured site timezone. validate already proved
// it loads.
func (c *Config) Location() *time.Location {
	loc, _ := time.LoadLocation(c.Site.Timezone)
	return loc
}

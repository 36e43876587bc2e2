package config

import (
	"fmt"
	"time"
)

// DefaultSessionSecret is the development signing key LoadDefaults installs.
// Sessions signed with it can be forged by anyone with the source.
const DefaultSessionSecret = "pokekeeper-dev-secret"

// Config holds runtime settings for the pokekeeper CLI.
//
// The S3 fields are optional; when S3Endpoint is empty the asset cache only
// fetches http(s) URLs.
type Config struct {
	DatabasePath    string        `env:"DATABASE_PATH"`
	CatalogBaseURL  string        `env:"CATALOG_URL"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"`
	CacheMaxEntries int           `env:"CACHE_MAX_ENTRIES"`
	CacheMaxBytes   int64         `env:"CACHE_MAX_BYTES"`
	SessionSecret   string        `env:"SESSION_SECRET"`
	LogBackend      string        `env:"LOG_BACKEND"`
	LogLevel        string        `env:"LOG_LEVEL"`
	S3Endpoint      string        `env:"S3_ENDPOINT"`
	S3Region        string        `env:"S3_REGION"`
	S3AccessKey     string        `env:"S3_ACCESS_KEY"`
	S3SecretKey     string        `env:"S3_SECRET_KEY"`
}

// LoadDefaults populates c with sensible defaults.
// NOTE: SessionSecret is a development value and should be overridden;
// see UsesDefaultSessionSecret.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "pokekeeper.db"
	c.CatalogBaseURL = "https://pokeapi.co/api/v2"
	c.RequestTimeout = 10 * time.Second
	c.CacheMaxEntries = 100
	c.CacheMaxBytes = 50 * 1024 * 1024
	c.SessionSecret = DefaultSessionSecret
	c.LogBackend = "slog"
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// UsesDefaultSessionSecret reports whether the session signing key was left
// at DefaultSessionSecret or unset.
func (c *Config) UsesDefaultSessionSecret() bool {
	return c.SessionSecret == "" || c.SessionSecret == DefaultSessionSecret
}

// LoadConfig constructs a Config from defaults, then overlays the JSON file,
// the environment and finally the command-line flags in args (os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

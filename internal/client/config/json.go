package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pokekeeper/internal/flagx"
	"github.com/dmitrijs2005/pokekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values so a partial file only
// overrides what it names.
type JsonConfig struct {
	DatabasePath    *string         `json:"database_path"`
	CatalogBaseURL  *string         `json:"catalog_base_url"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	CacheMaxEntries *int            `json:"cache_max_entries"`
	CacheMaxBytes   *int64          `json:"cache_max_bytes"`
	SessionSecret   *string         `json:"session_secret"`
	LogBackend      *string         `json:"log_backend"`
	LogLevel        *string         `json:"log_level"`
	S3Endpoint      *string         `json:"s3_endpoint"`
	S3Region        *string         `json:"s3_region"`
	S3AccessKey     *string         `json:"s3_access_key"`
	S3SecretKey     *string         `json:"s3_secret_key"`
}

// parseJson overlays cfg with the file named by -c/-config in args.
// Without such a flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setIf(&cfg.DatabasePath, jc.DatabasePath)
	setIf(&cfg.CatalogBaseURL, jc.CatalogBaseURL)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setIf(&cfg.CacheMaxEntries, jc.CacheMaxEntries)
	setIf(&cfg.CacheMaxBytes, jc.CacheMaxBytes)
	setIf(&cfg.SessionSecret, jc.SessionSecret)
	setIf(&cfg.LogBackend, jc.LogBackend)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.S3Endpoint, jc.S3Endpoint)
	setIf(&cfg.S3Region, jc.S3Region)
	setIf(&cfg.S3AccessKey, jc.S3AccessKey)
	setIf(&cfg.S3SecretKey, jc.S3SecretKey)

	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Package config loads runtime configuration for the pokekeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with POKEKEEPER_.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string   path to the local SQLite database
//	-u string   base URL of the catalog API
//	-t int      catalog/asset request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations accept either strings like "10s" or integer nanoseconds:
//
//	{
//	  "database_path": "pokekeeper.db",
//	  "catalog_base_url": "https://pokeapi.co/api/v2",
//	  "request_timeout": "10s",
//	  "cache_max_entries": 100,
//	  "cache_max_bytes": 52428800,
//	  "session_secret": "change-me",
//	  "log_backend": "slog",
//	  "log_level": "info",
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "s3_region": "us-east-1",
//	  "s3_access_key": "admin",
//	  "s3_secret_key": "secretpassword"
//	}
package config

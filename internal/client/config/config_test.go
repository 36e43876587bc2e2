package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "pokekeeper.db", c.DatabasePath)
	assert.Equal(t, "https://pokeapi.co/api/v2", c.CatalogBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 100, c.CacheMaxEntries)
	assert.Equal(t, int64(50*1024*1024), c.CacheMaxBytes)
	assert.Equal(t, "slog", c.LogBackend)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, DefaultSessionSecret, c.SessionSecret)
}

func TestUsesDefaultSessionSecret(t *testing.T) {
	c := defaults()
	assert.True(t, c.UsesDefaultSessionSecret())

	c.SessionSecret = ""
	assert.True(t, c.UsesDefaultSessionSecret())

	t.Setenv("POKEKEEPER_SESSION_SECRET", "s3cr3t")
	got, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.False(t, got.UsesDefaultSessionSecret())
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    func(c *Config)
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{"-d", "/tmp/p.db", "-u", "http://localhost:8080", "-t", "3", "-l", "debug"},
			want: func(c *Config) {
				c.DatabasePath = "/tmp/p.db"
				c.CatalogBaseURL = "http://localhost:8080"
				c.RequestTimeout = 3 * time.Second
				c.LogLevel = "debug"
			},
		},
		{
			name: "unrelated flags are ignored",
			args: []string{"-c", "cfg.json", "-x", "1"},
			want: func(c *Config) {},
		},
		{
			name:    "bad timeout",
			args:    []string{"-t", "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaults()
			err := parseFlags(got, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := defaults()
			tt.want(want)
			assert.Empty(t, cmp.Diff(want, got))
		})
	}
}

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"database_path":     "/data/poke.db",
		"request_timeout":   "1500ms",
		"cache_max_entries": 10,
		"s3_endpoint":       "http://minio:9000",
	})

	t.Run("overlays only named fields", func(t *testing.T) {
		got := defaults()
		require.NoError(t, parseJson(got, []string{"-config", path}))

		want := defaults()
		want.DatabasePath = "/data/poke.db"
		want.RequestTimeout = 1500 * time.Millisecond
		want.CacheMaxEntries = 10
		want.S3Endpoint = "http://minio:9000"
		assert.Empty(t, cmp.Diff(want, got))
	})

	t.Run("no config flag leaves config untouched", func(t *testing.T) {
		got := defaults()
		require.NoError(t, parseJson(got, nil))
		assert.Empty(t, cmp.Diff(defaults(), got))
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJson(defaults(), []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJson(defaults(), []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}

func TestParseEnv(t *testing.T) {
	t.Setenv("POKEKEEPER_DATABASE_PATH", "/env/poke.db")
	t.Setenv("POKEKEEPER_REQUEST_TIMEOUT", "7s")
	t.Setenv("POKEKEEPER_CACHE_MAX_BYTES", "1024")

	got := defaults()
	require.NoError(t, parseEnv(got))

	want := defaults()
	want.DatabasePath = "/env/poke.db"
	want.RequestTimeout = 7 * time.Second
	want.CacheMaxBytes = 1024
	assert.Empty(t, cmp.Diff(want, got))
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"database_path":  "/json/poke.db",
		"log_level":      "warn",
		"session_secret": "from-json",
	})
	t.Setenv("POKEKEEPER_DATABASE_PATH", "/env/poke.db")
	t.Setenv("POKEKEEPER_LOG_LEVEL", "error")

	cfg, err := LoadConfig([]string{"-c", path, "-l", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "/env/poke.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from-json", cfg.SessionSecret)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_BadFlag(t *testing.T) {
	_, err := LoadConfig([]string{"-t", "soon"})
	require.Error(t, err)
}

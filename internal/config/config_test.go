package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearTokenEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("FLICKSTREAM_TMDB_ACCESS_TOKEN", "")
}

func TestLoad_Defaults(t *testing.T) {
	clearTokenEnv(t)

	cfg, err := Load(writeConfig(t, "server:\n  port: 8080\n"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, "https://image.tmdb.org/t/p", cfg.TMDB.ImageBaseURL)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Debounce())
	assert.Equal(t, uint(1), cfg.TMDB.RetryAttempts)
	assert.Equal(t, DefaultProviders(), cfg.Playback.Providers)
	assert.Equal(t, "*/15 * * * *", cfg.Health.Cron)
}

func TestLoad_FileOverrides(t *testing.T) {
	clearTokenEnv(t)

	path := writeConfig(t, `
server:
  port: 9090
tmdb:
  access_token: file-token
  language: fr-FR
search:
  debounce_ms: 400
playback:
  providers:
    - name: only
      template: https://example.test/embed/{id}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "file-token", cfg.TMDB.AccessToken)
	assert.Equal(t, "fr-FR", cfg.TMDB.Language)
	assert.Equal(t, 400*time.Millisecond, cfg.Search.Debounce())
	require.Len(t, cfg.Playback.Providers, 1)
	assert.Equal(t, "only", cfg.Playback.Providers[0].Name)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("FLICKSTREAM_SERVER_PORT", "7070")
	t.Setenv("TMDB_API_KEY", "env-token")

	cfg, err := Load(writeConfig(t, "tmdb:\n  access_token: file-token\n"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "env-token", cfg.TMDB.AccessToken)
}

func TestLoad_InvalidFile(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(c *Config) { c.TMDB.AccessToken = "token" }, nil},
		{"missing token", func(c *Config) { c.TMDB.AccessToken = "" }, ErrAccessTokenMissing},
		{"mock without token", func(c *Config) { c.TMDB.AccessToken = ""; c.TMDB.Mock = true }, nil},
		{"no providers", func(c *Config) {
			c.TMDB.AccessToken = "token"
			c.Playback.Providers = nil
		}, ErrNoPlaybackProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_NonPositiveDebounce(t *testing.T) {
	cfg := Default()
	cfg.TMDB.AccessToken = "token"
	cfg.Search.DebounceMS = 0
	assert.Error(t, cfg.Validate())
}

func TestServerConfig_Address(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 8080}
	assert.Equal(t, "127.0.0.1:8080", c.Address())
}

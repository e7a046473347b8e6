package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
spotify:
  client_id: test-client-id
  client_secret: test-client-secret
  refresh_token: test-refresh-token
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "US", cfg.Spotify.Market)
	assert.Equal(t, 20, cfg.Continuation.Limit)
	assert.False(t, cfg.Continuation.IncludeSeedTrack)
	assert.Equal(t, "related_artists", cfg.Continuation.Source.Type)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestLoad_ExplicitValues(t *testing.T) {
	path := writeConfig(t, `
spotify:
  client_id: test-client-id
  client_secret: test-client-secret
  refresh_token: test-refresh-token
  market: ES
  device_id: abc123
continuation:
  limit: 5
  include_seed_track: true
  source:
    type: recommendations
    settings:
      max_seed_artists: 3
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ES", cfg.Spotify.Market)
	assert.Equal(t, "abc123", cfg.Spotify.DeviceID)
	assert.Equal(t, 5, cfg.Continuation.Limit)
	assert.True(t, cfg.Continuation.IncludeSeedTrack)
	assert.Equal(t, "recommendations", cfg.Continuation.Source.Type)
	assert.Equal(t, 3, cfg.Continuation.Source.Settings["max_seed_artists"])
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "env-client-id")
	t.Setenv("SPOTIFY_REFRESH_TOKEN", "env-refresh-token")

	path := writeConfig(t, `
spotify:
  client_id: file-client-id
  client_secret: test-client-secret
  refresh_token: file-refresh-token
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-client-id", cfg.Spotify.ClientID)
	assert.Equal(t, "env-refresh-token", cfg.Spotify.RefreshToken)
	assert.Equal(t, "test-client-secret", cfg.Spotify.ClientSecret)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "spotify: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Spotify: SpotifyConfig{
					ClientID:     "test-client-id",
					ClientSecret: "test-client-secret",
					RefreshToken: "test-refresh-token",
					Market:       "US",
				},
				Continuation: ContinuationConfig{Limit: 20},
			},
			wantErr: false,
		},
		{
			name: "missing client id",
			config: Config{
				Spotify: SpotifyConfig{
					ClientSecret: "test-client-secret",
					RefreshToken: "test-refresh-token",
				},
				Continuation: ContinuationConfig{Limit: 20},
			},
			wantErr: true,
		},
		{
			name: "missing refresh token",
			config: Config{
				Spotify: SpotifyConfig{
					ClientID:     "test-client-id",
					ClientSecret: "test-client-secret",
				},
				Continuation: ContinuationConfig{Limit: 20},
			},
			wantErr: true,
		},
		{
			name: "bad market length",
			config: Config{
				Spotify: SpotifyConfig{
					ClientID:     "test-client-id",
					ClientSecret: "test-client-secret",
					RefreshToken: "test-refresh-token",
					Market:       "USA",
				},
				Continuation: ContinuationConfig{Limit: 20},
			},
			wantErr: true,
		},
		{
			name: "negative limit",
			config: Config{
				Spotify: SpotifyConfig{
					ClientID:     "test-client-id",
					ClientSecret: "test-client-secret",
					RefreshToken: "test-refresh-token",
				},
				Continuation: ContinuationConfig{Limit: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

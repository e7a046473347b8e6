package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"

	"github.com/insomniacwolves/spotify-manager/internal/domain/player"
)

func TestNew_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "missing client id",
			cfg:  Config{ClientSecret: "secret", RefreshToken: "token"},
		},
		{
			name: "missing client secret",
			cfg:  Config{ClientID: "id", RefreshToken: "token"},
		},
		{
			name: "missing refresh token",
			cfg:  Config{ClientID: "id", ClientSecret: "secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(context.Background(), Config{
		ClientID:     "id",
		ClientSecret: "secret",
		RefreshToken: "token",
	})
	require.NoError(t, err)

	assert.Equal(t, "US", c.market)
	assert.Nil(t, c.deviceID)
}

func TestConvertFullTrack(t *testing.T) {
	full := &spotify.FullTrack{
		SimpleTrack: spotify.SimpleTrack{
			ID:   "6rqhFgbbKwnb9MLmUQDhG6",
			URI:  "spotify:track:6rqhFgbbKwnb9MLmUQDhG6",
			Name: "Bohemian Rhapsody",
			Artists: []spotify.SimpleArtist{
				{ID: "1dfeR4HaWDbWqFHLkxsg1d", Name: "Queen"},
			},
		},
		Album:      spotify.SimpleAlbum{Name: "A Night at the Opera"},
		Popularity: 87,
	}

	got := convertFullTrack(full)

	assert.Equal(t, "spotify:track:6rqhFgbbKwnb9MLmUQDhG6", got.URI)
	assert.Equal(t, "6rqhFgbbKwnb9MLmUQDhG6", got.ID)
	assert.Equal(t, "Bohemian Rhapsody", got.Name)
	require.Len(t, got.Artists, 1)
	assert.Equal(t, "Queen", got.Artists[0].Name)
	assert.Equal(t, "A Night at the Opera", got.Album)
	assert.Equal(t, 87, got.Popularity)
}

func TestConvertSimpleTrack(t *testing.T) {
	simple := &spotify.SimpleTrack{
		ID:   "3z8h0TU7ReDPLIbEnYhWZb",
		URI:  "spotify:track:3z8h0TU7ReDPLIbEnYhWZb",
		Name: "Mockingbird",
		Artists: []spotify.SimpleArtist{
			{ID: "7dGJo4pcD2V6oG8kP0tJRR", Name: "Eminem"},
		},
	}

	got := convertSimpleTrack(simple)

	assert.Equal(t, "spotify:track:3z8h0TU7ReDPLIbEnYhWZb", got.URI)
	assert.Equal(t, "Mockingbird", got.Name)
	require.Len(t, got.Artists, 1)
	assert.Equal(t, "7dGJo4pcD2V6oG8kP0tJRR", got.Artists[0].ID)
}

func TestRecentlyPlayed_SendsLimit(t *testing.T) {
	// Mock server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/player/recently-played", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))

		response := `{
			"items": [
				{"track": {"id": "t1", "uri": "spotify:track:t1", "name": "First",
					"artists": [{"id": "a1", "name": "Artist"}]}},
				{"track": {"id": "t2", "uri": "spotify:track:t2", "name": "Second",
					"artists": [{"id": "a1", "name": "Artist"}]}}
			]
		}`
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, response)
	}))
	defer server.Close()

	c := &Client{
		client: spotify.New(server.Client(), spotify.WithBaseURL(server.URL+"/")),
		market: "US",
	}

	tracks, err := c.RecentlyPlayed(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "spotify:track:t1", tracks[0].URI)
	assert.Equal(t, "Second", tracks[1].Name)
}

func TestTrackURL(t *testing.T) {
	assert.Equal(t,
		"https://open.spotify.com/track/6rqhFgbbKwnb9MLmUQDhG6",
		TrackURL("6rqhFgbbKwnb9MLmUQDhG6"))
}

func TestUpstream_MarksAndKeepsCause(t *testing.T) {
	cause := errors.New("429 too many requests")
	err := upstream(cause, "failed to get related artists")

	assert.True(t, errors.Is(err, player.ErrUpstreamUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "failed to get related artists")
}

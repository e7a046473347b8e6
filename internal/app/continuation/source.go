// Package continuation resolves a bounded queue of tracks related to the
// currently playing one and issues it as a single playback request.
package continuation

import (
	"context"

	"github.com/insomniacwolves/spotify-manager/internal/domain/player"
	"github.com/insomniacwolves/spotify-manager/internal/domain/track"
)

// Source is the interface for continuation candidate sources. Different
// implementations derive candidates through different strategies
// (related-artist catalog walk, recommendation seeds, etc.).
type Source interface {
	// Candidates returns candidate tracks for the given seed track.
	// Ordering is significant and must follow the source's own relevance
	// ranking; deduplication and truncation are the caller's concern.
	// limit is a sizing hint, the result may be longer or shorter.
	Candidates(ctx context.Context, seed track.Track, limit int) ([]track.Track, error)

	// Name returns the source name (used in config).
	Name() string
}

// SpotifyClient defines the Spotify operations needed by the
// continuation service and its sources.
type SpotifyClient interface {
	CurrentPlayback(ctx context.Context) (*player.PlaybackState, error)
	RelatedArtists(ctx context.Context, artistID string) ([]track.Artist, error)
	TopTracks(ctx context.Context, artistID string) ([]track.Track, error)
	Recommendations(ctx context.Context, seedArtistIDs, seedTrackIDs []string, limit int) ([]track.Track, error)
	PlayTracks(ctx context.Context, uris []string) error
}

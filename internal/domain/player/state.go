// Package player provides playback state entities shared by the
// application layer.
package player

import (
	"time"

	"github.com/insomniacwolves/spotify-manager/internal/domain/track"
)

// PlaybackState is a snapshot of the user's current playback, fetched on
// demand and never cached. A nil Track means the playing item is not a
// track (e.g., a podcast episode).
type PlaybackState struct {
	Track       *track.Track  // Currently playing track, nil for non-track items
	Album       string        // Album name of the playing track
	AlbumID     string        // Album ID, empty for local files
	ReleaseDate string        // Album release date (YYYY, YYYY-MM or YYYY-MM-DD)
	Progress    time.Duration // Position within the playing item
	Playing     bool          // Whether playback is active (not paused)
}

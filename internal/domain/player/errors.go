package player

import "github.com/cockroachdb/errors"

// Terminal error classes for playback operations. Callers match them with
// errors.Is; infra and app code attach context by wrapping and marking
// (errors.Mark) so the underlying cause is preserved.
var (
	// ErrInvalidArgument indicates bad caller input. Raised before any
	// Spotify call is made.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoActivePlayback indicates nothing is currently playing.
	ErrNoActivePlayback = errors.New("no active playback")

	// ErrUnsupportedContent indicates the playing item has no artist
	// credit (e.g., a podcast episode) and cannot seed recommendations.
	ErrUnsupportedContent = errors.New("unsupported content type")

	// ErrNoRelatedContent indicates the seed artist has no related
	// content to continue with.
	ErrNoRelatedContent = errors.New("no related content found")

	// ErrUpstreamUnavailable wraps Spotify transport and auth failures.
	ErrUpstreamUnavailable = errors.New("spotify api unavailable")
)

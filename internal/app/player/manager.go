// Package player provides playback control operations on the user's
// active Spotify session.
package player

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	domain "github.com/insomniacwolves/spotify-manager/internal/domain/player"
	"github.com/insomniacwolves/spotify-manager/internal/domain/track"
)

// SpotifyClient defines the Spotify operations needed by the manager.
type SpotifyClient interface {
	CurrentPlayback(ctx context.Context) (*domain.PlaybackState, error)
	Resume(ctx context.Context) error
	Pause(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	SeekTo(ctx context.Context, position time.Duration) error
	PlayerOptions(ctx context.Context) (domain.RepeatState, bool, error)
	SetRepeat(ctx context.Context, state domain.RepeatState) error
	SetShuffle(ctx context.Context, shuffle bool) error
	RecentlyPlayed(ctx context.Context, limit int) ([]track.Track, error)
	UserTopTracks(ctx context.Context, limit int) ([]track.Track, error)
	UserTopArtists(ctx context.Context, limit int) ([]track.Artist, error)
	TopTracks(ctx context.Context, artistID string) ([]track.Track, error)
	PlayTracks(ctx context.Context, uris []string) error
	SaveTracks(ctx context.Context, trackIDs ...string) error
	RemoveSavedTracks(ctx context.Context, trackIDs ...string) error
	SaveAlbums(ctx context.Context, albumIDs ...string) error
	RemoveSavedAlbums(ctx context.Context, albumIDs ...string) error
}

// Manager exposes playback operations against the user's account.
// It holds no local state; every operation reads and mutates the remote
// session only.
type Manager struct {
	spotify SpotifyClient
}

// NewManager creates a playback manager.
func NewManager(spotify SpotifyClient) (*Manager, error) {
	if spotify == nil {
		return nil, errors.New("spotify client is required")
	}
	return &Manager{spotify: spotify}, nil
}

// NowPlaying returns the current playback snapshot.
// Fails with domain.ErrNoActivePlayback when nothing is playing.
func (m *Manager) NowPlaying(ctx context.Context) (*domain.PlaybackState, error) {
	state, err := m.spotify.CurrentPlayback(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, errors.Mark(
			errors.New("nothing is currently playing"), domain.ErrNoActivePlayback)
	}
	return state, nil
}

// Resume starts or resumes playback.
func (m *Manager) Resume(ctx context.Context) error {
	return m.spotify.Resume(ctx)
}

// Pause pauses playback.
func (m *Manager) Pause(ctx context.Context) error {
	return m.spotify.Pause(ctx)
}

// TogglePlayback pauses active playback and resumes paused playback.
func (m *Manager) TogglePlayback(ctx context.Context) error {
	state, err := m.spotify.CurrentPlayback(ctx)
	if err != nil {
		return err
	}
	if state != nil && state.Playing {
		return m.spotify.Pause(ctx)
	}
	return m.spotify.Resume(ctx)
}

// Next skips to the next track.
func (m *Manager) Next(ctx context.Context) error {
	return m.spotify.Next(ctx)
}

// Previous moves playback to the previous track. When restartAfter is
// non-zero and the current track has progressed past it, the track is
// restarted instead of skipped back.
func (m *Manager) Previous(ctx context.Context, restartAfter time.Duration) error {
	if restartAfter > 0 {
		state, err := m.spotify.CurrentPlayback(ctx)
		if err != nil {
			return err
		}
		if state != nil && state.Progress > restartAfter {
			return m.spotify.SeekTo(ctx, 0)
		}
	}
	return m.spotify.Previous(ctx)
}

// Restart restarts the current track.
func (m *Manager) Restart(ctx context.Context) error {
	return m.spotify.SeekTo(ctx, 0)
}

// SetRepeat sets the repeat mode.
func (m *Manager) SetRepeat(ctx context.Context, state domain.RepeatState) error {
	return m.spotify.SetRepeat(ctx, state)
}

// CycleRepeat advances the repeat mode (track -> context -> off -> track)
// and returns the new mode.
func (m *Manager) CycleRepeat(ctx context.Context) (domain.RepeatState, error) {
	repeat, _, err := m.spotify.PlayerOptions(ctx)
	if err != nil {
		return "", err
	}
	next := repeat.Next()
	if err := m.spotify.SetRepeat(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// SetShuffle sets the shuffle mode.
func (m *Manager) SetShuffle(ctx context.Context, shuffle bool) error {
	return m.spotify.SetShuffle(ctx, shuffle)
}

// ToggleShuffle flips the shuffle mode and returns the new value.
func (m *Manager) ToggleShuffle(ctx context.Context) (bool, error) {
	_, shuffle, err := m.spotify.PlayerOptions(ctx)
	if err != nil {
		return false, err
	}
	if err := m.spotify.SetShuffle(ctx, !shuffle); err != nil {
		return false, err
	}
	return !shuffle, nil
}

// PlayRecentlyPlayed replaces the queue with the user's recently played
// tracks, most recent first. Repeated listens collapse to one entry.
func (m *Manager) PlayRecentlyPlayed(ctx context.Context, limit int) ([]track.Track, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}

	recent, err := m.spotify.RecentlyPlayed(ctx, limit)
	if err != nil {
		return nil, err
	}
	return m.playAll(ctx, track.Dedupe(recent))
}

// PlayTopTracks replaces the queue with the user's most played tracks.
func (m *Manager) PlayTopTracks(ctx context.Context, limit int) ([]track.Track, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}

	top, err := m.spotify.UserTopTracks(ctx, limit)
	if err != nil {
		return nil, err
	}
	return m.playAll(ctx, top)
}

// PlayTopArtists replaces the queue with the top tracks of the user's
// most played artists and enables shuffle, limit bounding the number of
// artists considered.
func (m *Manager) PlayTopArtists(ctx context.Context, limit int) ([]track.Track, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}

	artists, err := m.spotify.UserTopArtists(ctx, limit)
	if err != nil {
		return nil, err
	}

	var tracks []track.Track
	for _, a := range artists {
		top, err := m.spotify.TopTracks(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, top...)
	}

	played, err := m.playAll(ctx, track.Dedupe(tracks))
	if err != nil {
		return nil, err
	}
	if err := m.spotify.SetShuffle(ctx, true); err != nil {
		return nil, err
	}
	return played, nil
}

// SaveCurrentTrack adds the playing track to the user's library.
func (m *Manager) SaveCurrentTrack(ctx context.Context) (*track.Track, error) {
	t, err := m.currentTrack(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.spotify.SaveTracks(ctx, t.ID); err != nil {
		return nil, err
	}
	zlog.Info().Msgf("saved track to library: name=%s uri=%s", t.Name, t.URI)
	return t, nil
}

// RemoveCurrentTrack removes the playing track from the user's library.
func (m *Manager) RemoveCurrentTrack(ctx context.Context) (*track.Track, error) {
	t, err := m.currentTrack(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.spotify.RemoveSavedTracks(ctx, t.ID); err != nil {
		return nil, err
	}
	zlog.Info().Msgf("removed track from library: name=%s uri=%s", t.Name, t.URI)
	return t, nil
}

// SaveCurrentAlbum adds the playing track's album to the user's library.
func (m *Manager) SaveCurrentAlbum(ctx context.Context) (string, error) {
	id, name, err := m.currentAlbum(ctx)
	if err != nil {
		return "", err
	}
	if err := m.spotify.SaveAlbums(ctx, id); err != nil {
		return "", err
	}
	zlog.Info().Msgf("saved album to library: name=%s id=%s", name, id)
	return name, nil
}

// RemoveCurrentAlbum removes the playing track's album from the user's
// library.
func (m *Manager) RemoveCurrentAlbum(ctx context.Context) (string, error) {
	id, name, err := m.currentAlbum(ctx)
	if err != nil {
		return "", err
	}
	if err := m.spotify.RemoveSavedAlbums(ctx, id); err != nil {
		return "", err
	}
	zlog.Info().Msgf("removed album from library: name=%s id=%s", name, id)
	return name, nil
}

// currentAlbum returns the ID and name of the playing track's album.
// Local files carry no album ID and are rejected.
func (m *Manager) currentAlbum(ctx context.Context) (string, string, error) {
	state, err := m.NowPlaying(ctx)
	if err != nil {
		return "", "", err
	}
	if state.Track == nil {
		return "", "", errors.Mark(
			errors.New("playing item is not a track"), domain.ErrUnsupportedContent)
	}
	if state.AlbumID == "" {
		return "", "", errors.Mark(
			errors.New("playing track has no album"), domain.ErrUnsupportedContent)
	}
	return state.AlbumID, state.Album, nil
}

// currentTrack returns the playing track, failing when nothing is
// playing or the playing item is not a track.
func (m *Manager) currentTrack(ctx context.Context) (*track.Track, error) {
	state, err := m.NowPlaying(ctx)
	if err != nil {
		return nil, err
	}
	if state.Track == nil {
		return nil, errors.Mark(
			errors.New("playing item is not a track"), domain.ErrUnsupportedContent)
	}
	return state.Track, nil
}

// playAll issues a single playback request for the given tracks.
func (m *Manager) playAll(ctx context.Context, tracks []track.Track) ([]track.Track, error) {
	if len(tracks) == 0 {
		return nil, errors.Mark(
			errors.New("no tracks to play"), domain.ErrNoRelatedContent)
	}
	if err := m.spotify.PlayTracks(ctx, track.URIs(tracks)); err != nil {
		return nil, err
	}
	return tracks, nil
}

func checkLimit(limit int) error {
	if limit <= 0 {
		return errors.Mark(
			errors.Newf("limit must be a positive integer, got %d", limit),
			domain.ErrInvalidArgument)
	}
	return nil
}

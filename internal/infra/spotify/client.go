// Package spotify wraps the Spotify Web API client and maps its wire
// structures onto the domain types at the boundary.
package spotify

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"github.com/insomniacwolves/spotify-manager/internal/domain/player"
	"github.com/insomniacwolves/spotify-manager/internal/domain/track"
)

// Client is a Spotify API client scoped to a single user account.
//
// Calls are not retried here: every failure is surfaced to the caller
// wrapped with its cause and marked player.ErrUpstreamUnavailable.
type Client struct {
	client   *spotify.Client
	market   string
	deviceID *spotify.ID
}

// Config represents Spotify client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	Market       string
	DeviceID     string // optional playback target, active device when empty
}

// New creates a new Spotify client from a refresh token.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, errors.New("spotify credentials are required")
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserReadPlaybackState,
			spotifyauth.ScopeUserModifyPlaybackState,
			spotifyauth.ScopeUserReadCurrentlyPlaying,
			spotifyauth.ScopeUserReadRecentlyPlayed,
			spotifyauth.ScopeUserTopRead,
			spotifyauth.ScopeUserLibraryRead,
			spotifyauth.ScopeUserLibraryModify,
		),
	)

	token := &oauth2.Token{
		RefreshToken: cfg.RefreshToken,
	}

	// HTTP client with automatic token refresh
	httpClient := auth.Client(ctx, token)
	client := spotify.New(httpClient)

	market := cfg.Market
	if market == "" {
		market = "US"
	}

	c := &Client{
		client: client,
		market: market,
	}
	if cfg.DeviceID != "" {
		id := spotify.ID(cfg.DeviceID)
		c.deviceID = &id
	}
	return c, nil
}

// CurrentPlayback returns a snapshot of the user's current playback.
// Returns nil when no playback session is active.
func (c *Client) CurrentPlayback(ctx context.Context) (*player.PlaybackState, error) {
	playing, err := c.client.PlayerCurrentlyPlaying(ctx)
	if err != nil {
		return nil, upstream(err, "failed to get current playback")
	}
	if playing == nil || (playing.Item == nil && !playing.Playing) {
		return nil, nil
	}

	state := &player.PlaybackState{
		Progress: time.Duration(playing.Progress) * time.Millisecond,
		Playing:  playing.Playing,
	}
	if playing.Item != nil {
		t := convertFullTrack(playing.Item)
		state.Track = &t
		state.Album = playing.Item.Album.Name
		state.AlbumID = string(playing.Item.Album.ID)
		state.ReleaseDate = playing.Item.Album.ReleaseDate
	}
	return state, nil
}

// RelatedArtists returns artists related to the given artist, in the
// API's own relevance order.
func (c *Client) RelatedArtists(ctx context.Context, artistID string) ([]track.Artist, error) {
	related, err := c.client.GetRelatedArtists(ctx, spotify.ID(artistID))
	if err != nil {
		return nil, upstream(err, "failed to get related artists")
	}

	artists := make([]track.Artist, len(related))
	for i, a := range related {
		artists[i] = track.Artist{ID: string(a.ID), Name: a.Name}
	}
	return artists, nil
}

// TopTracks returns an artist's top tracks in the API's popularity order.
func (c *Client) TopTracks(ctx context.Context, artistID string) ([]track.Track, error) {
	top, err := c.client.GetArtistsTopTracks(ctx, spotify.ID(artistID), c.market)
	if err != nil {
		return nil, upstream(err, "failed to get artist top tracks")
	}

	tracks := make([]track.Track, len(top))
	for i := range top {
		tracks[i] = convertFullTrack(&top[i])
	}
	return tracks, nil
}

// PlayTracks starts playback of the given track URIs, replacing the
// current queue. The list is sent as a single request.
func (c *Client) PlayTracks(ctx context.Context, uris []string) error {
	opts := c.playOpts()
	opts.URIs = make([]spotify.URI, len(uris))
	for i, u := range uris {
		opts.URIs[i] = spotify.URI(u)
	}

	if err := c.client.PlayOpt(ctx, opts); err != nil {
		return upstream(err, "failed to start playback")
	}
	return nil
}

// Recommendations returns recommended tracks for the given artist and
// track seeds, in the API's own order.
func (c *Client) Recommendations(ctx context.Context, seedArtistIDs, seedTrackIDs []string, limit int) ([]track.Track, error) {
	seeds := spotify.Seeds{}
	for _, id := range seedArtistIDs {
		seeds.Artists = append(seeds.Artists, spotify.ID(id))
	}
	for _, id := range seedTrackIDs {
		seeds.Tracks = append(seeds.Tracks, spotify.ID(id))
	}

	recs, err := c.client.GetRecommendations(ctx, seeds, nil,
		spotify.Limit(limit), spotify.Market(c.market))
	if err != nil {
		return nil, upstream(err, "failed to get recommendations")
	}

	tracks := make([]track.Track, len(recs.Tracks))
	for i := range recs.Tracks {
		tracks[i] = convertSimpleTrack(&recs.Tracks[i])
	}
	return tracks, nil
}

// Resume starts or resumes playback on the target device.
func (c *Client) Resume(ctx context.Context) error {
	if err := c.client.PlayOpt(ctx, c.playOpts()); err != nil {
		return upstream(err, "failed to resume playback")
	}
	return nil
}

// Pause pauses playback on the target device.
func (c *Client) Pause(ctx context.Context) error {
	if err := c.client.PauseOpt(ctx, c.playOpts()); err != nil {
		return upstream(err, "failed to pause playback")
	}
	return nil
}

// Next skips to the next track.
func (c *Client) Next(ctx context.Context) error {
	if err := c.client.NextOpt(ctx, c.playOpts()); err != nil {
		return upstream(err, "failed to skip to next track")
	}
	return nil
}

// Previous skips to the previous track.
func (c *Client) Previous(ctx context.Context) error {
	if err := c.client.PreviousOpt(ctx, c.playOpts()); err != nil {
		return upstream(err, "failed to skip to previous track")
	}
	return nil
}

// SeekTo moves playback within the current track.
func (c *Client) SeekTo(ctx context.Context, position time.Duration) error {
	if err := c.client.Seek(ctx, int(position.Milliseconds())); err != nil {
		return upstream(err, "failed to seek")
	}
	return nil
}

// PlayerOptions returns the player's current repeat and shuffle state.
func (c *Client) PlayerOptions(ctx context.Context) (player.RepeatState, bool, error) {
	state, err := c.client.PlayerState(ctx)
	if err != nil {
		return "", false, upstream(err, "failed to get player state")
	}
	if state == nil {
		return "", false, errors.Mark(
			errors.New("no player state available"), player.ErrNoActivePlayback)
	}
	return player.RepeatState(state.RepeatState), state.ShuffleState, nil
}

// SetRepeat sets the player's repeat mode.
func (c *Client) SetRepeat(ctx context.Context, state player.RepeatState) error {
	if err := c.client.Repeat(ctx, state.String()); err != nil {
		return upstream(err, "failed to set repeat state")
	}
	return nil
}

// SetShuffle sets the player's shuffle mode.
func (c *Client) SetShuffle(ctx context.Context, shuffle bool) error {
	if err := c.client.Shuffle(ctx, shuffle); err != nil {
		return upstream(err, "failed to set shuffle state")
	}
	return nil
}

// RecentlyPlayed returns the user's recently played tracks, most recent
// first.
func (c *Client) RecentlyPlayed(ctx context.Context, limit int) ([]track.Track, error) {
	items, err := c.client.PlayerRecentlyPlayedOpt(ctx, &spotify.RecentlyPlayedOptions{
		Limit: spotify.Numeric(limit),
	})
	if err != nil {
		return nil, upstream(err, "failed to get recently played tracks")
	}

	tracks := make([]track.Track, len(items))
	for i := range items {
		tracks[i] = convertSimpleTrack(&items[i].Track)
	}
	return tracks, nil
}

// UserTopTracks returns the user's most played tracks.
func (c *Client) UserTopTracks(ctx context.Context, limit int) ([]track.Track, error) {
	page, err := c.client.CurrentUsersTopTracks(ctx, spotify.Limit(limit))
	if err != nil {
		return nil, upstream(err, "failed to get user top tracks")
	}

	tracks := make([]track.Track, len(page.Tracks))
	for i := range page.Tracks {
		tracks[i] = convertFullTrack(&page.Tracks[i])
	}
	return tracks, nil
}

// UserTopArtists returns the user's most played artists.
func (c *Client) UserTopArtists(ctx context.Context, limit int) ([]track.Artist, error) {
	page, err := c.client.CurrentUsersTopArtists(ctx, spotify.Limit(limit))
	if err != nil {
		return nil, upstream(err, "failed to get user top artists")
	}

	artists := make([]track.Artist, len(page.Artists))
	for i, a := range page.Artists {
		artists[i] = track.Artist{ID: string(a.ID), Name: a.Name}
	}
	return artists, nil
}

// SaveTracks adds tracks to the user's library.
func (c *Client) SaveTracks(ctx context.Context, trackIDs ...string) error {
	if err := c.client.AddTracksToLibrary(ctx, toIDs(trackIDs)...); err != nil {
		return upstream(err, "failed to save tracks")
	}
	return nil
}

// RemoveSavedTracks removes tracks from the user's library.
func (c *Client) RemoveSavedTracks(ctx context.Context, trackIDs ...string) error {
	if err := c.client.RemoveTracksFromLibrary(ctx, toIDs(trackIDs)...); err != nil {
		return upstream(err, "failed to remove saved tracks")
	}
	return nil
}

// SaveAlbums adds albums to the user's library.
func (c *Client) SaveAlbums(ctx context.Context, albumIDs ...string) error {
	if err := c.client.AddAlbumsToLibrary(ctx, toIDs(albumIDs)...); err != nil {
		return upstream(err, "failed to save albums")
	}
	return nil
}

// RemoveSavedAlbums removes albums from the user's library.
func (c *Client) RemoveSavedAlbums(ctx context.Context, albumIDs ...string) error {
	if err := c.client.RemoveAlbumsFromLibrary(ctx, toIDs(albumIDs)...); err != nil {
		return upstream(err, "failed to remove saved albums")
	}
	return nil
}

// TrackURL returns the open.spotify.com URL for a track.
func TrackURL(trackID string) string {
	return fmt.Sprintf("https://open.spotify.com/track/%s", trackID)
}

// playOpts returns play options targeting the configured device, if any.
func (c *Client) playOpts() *spotify.PlayOptions {
	return &spotify.PlayOptions{DeviceID: c.deviceID}
}

func toIDs(ids []string) []spotify.ID {
	out := make([]spotify.ID, len(ids))
	for i, id := range ids {
		out[i] = spotify.ID(id)
	}
	return out
}

// convertFullTrack converts a Spotify FullTrack to a domain Track.
func convertFullTrack(t *spotify.FullTrack) track.Track {
	return track.Track{
		URI:        string(t.URI),
		ID:         string(t.ID),
		Name:       t.Name,
		Artists:    convertArtists(t.Artists),
		Album:      t.Album.Name,
		Popularity: int(t.Popularity),
	}
}

// convertSimpleTrack converts a Spotify SimpleTrack to a domain Track.
// SimpleTrack carries no album or popularity data.
func convertSimpleTrack(t *spotify.SimpleTrack) track.Track {
	return track.Track{
		URI:     string(t.URI),
		ID:      string(t.ID),
		Name:    t.Name,
		Artists: convertArtists(t.Artists),
	}
}

func convertArtists(artists []spotify.SimpleArtist) []track.Artist {
	out := make([]track.Artist, len(artists))
	for i, a := range artists {
		out[i] = track.Artist{ID: string(a.ID), Name: a.Name}
	}
	return out
}

// upstream wraps an API error with context and marks it as an upstream
// failure so callers can match with errors.Is.
func upstream(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), player.ErrUpstreamUnavailable)
}

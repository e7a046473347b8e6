package continuation

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/insomniacwolves/spotify-manager/internal/domain/player"
	"github.com/insomniacwolves/spotify-manager/internal/domain/track"
)

// Options controls a single continuation run.
type Options struct {
	// Limit bounds the number of tracks enqueued. Must be >= 1.
	Limit int

	// IncludeSeedTrack keeps the currently playing track's URI in the
	// result instead of filtering it out.
	IncludeSeedTrack bool
}

// Service resolves tracks related to the current playback and enqueues
// them as a single playback request. It holds no state between runs;
// every invocation reads a fresh playback snapshot.
type Service struct {
	spotify SpotifyClient
	source  Source
}

// NewService creates a continuation service backed by the given source.
func NewService(spotify SpotifyClient, source Source) (*Service, error) {
	if spotify == nil {
		return nil, errors.New("spotify client is required")
	}
	if source == nil {
		return nil, errors.New("candidate source is required")
	}
	return &Service{spotify: spotify, source: source}, nil
}

// Run resolves and enqueues the continuation, returning the ordered
// tracks actually enqueued.
//
// The result never exceeds opts.Limit, contains no duplicate URIs, and
// excludes the playing track's URI unless opts.IncludeSeedTrack. The
// playback request is issued once, only after the full list is resolved;
// failures leave the remote queue untouched and are never retried here.
func (s *Service) Run(ctx context.Context, opts Options) ([]track.Track, error) {
	if opts.Limit <= 0 {
		return nil, errors.Mark(
			errors.Newf("limit must be a positive integer, got %d", opts.Limit),
			player.ErrInvalidArgument)
	}

	logger := zlog.With().
		Str("run_id", uuid.NewString()).
		Str("source", s.source.Name()).
		Logger()

	state, err := s.spotify.CurrentPlayback(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, errors.Mark(
			errors.New("nothing is currently playing"), player.ErrNoActivePlayback)
	}
	if state.Track == nil {
		return nil, errors.Mark(
			errors.New("playing item is not a track"), player.ErrUnsupportedContent)
	}
	seed := *state.Track

	logger.Debug().Msgf("resolving continuation: seed_track=%s seed_uri=%s limit=%d",
		seed.Name, seed.URI, opts.Limit)

	candidates, err := s.source.Candidates(ctx, seed, opts.Limit)
	if err != nil {
		return nil, err
	}

	selected := s.selectTracks(candidates, seed.URI, opts)
	if len(selected) == 0 {
		return nil, errors.Mark(
			errors.Newf("no playable candidates for track %s", seed.Name),
			player.ErrNoRelatedContent)
	}

	if err := s.spotify.PlayTracks(ctx, track.URIs(selected)); err != nil {
		return nil, err
	}

	logger.Info().Msgf("continuation enqueued: seed_track=%s candidates=%d enqueued=%d",
		seed.Name, len(candidates), len(selected))

	return selected, nil
}

// selectTracks deduplicates candidates by URI (first occurrence wins),
// drops the seed URI unless requested, and truncates to the limit.
func (s *Service) selectTracks(candidates []track.Track, seedURI string, opts Options) []track.Track {
	deduped := track.Dedupe(candidates)

	selected := make([]track.Track, 0, opts.Limit)
	for _, t := range deduped {
		if !opts.IncludeSeedTrack && t.URI == seedURI {
			continue
		}
		selected = append(selected, t)
		if len(selected) == opts.Limit {
			break
		}
	}
	return selected
}

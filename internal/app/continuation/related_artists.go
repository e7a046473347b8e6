package continuation

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/insomniacwolves/spotify-manager/internal/domain/player"
	"github.com/insomniacwolves/spotify-manager/internal/domain/track"
)

// RelatedArtistsSourceConfig configures the related-artists source.
type RelatedArtistsSourceConfig struct {
	MaxArtists       int `yaml:"max_artists" mapstructure:"max_artists" default:"10" validate:"gte=1"`
	TracksPerArtist  int `yaml:"tracks_per_artist" mapstructure:"tracks_per_artist" default:"5" validate:"gte=1"`
	FetchConcurrency int `yaml:"fetch_concurrency" mapstructure:"fetch_concurrency" default:"4" validate:"gte=1"`
}

// RelatedArtistsSource derives candidates by walking the catalog: related
// artists of the seed track's primary artist, then each related artist's
// top tracks. Artists keep the API's relevance order and tracks keep the
// API's popularity order within each artist.
type RelatedArtistsSource struct {
	spotify SpotifyClient
	config  *RelatedArtistsSourceConfig
}

// NewRelatedArtistsSource creates a RelatedArtistsSource from a settings map.
func NewRelatedArtistsSource(spotify SpotifyClient, settings map[string]any) (*RelatedArtistsSource, error) {
	if spotify == nil {
		return nil, errors.New("spotify client is required")
	}

	var config RelatedArtistsSourceConfig
	if err := mapstructure.Decode(settings, &config); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}

	return &RelatedArtistsSource{spotify: spotify, config: &config}, nil
}

// Candidates resolves candidate tracks for the seed track.
// Fails with player.ErrNoRelatedContent when the seed artist has no
// related-artist data.
func (s *RelatedArtistsSource) Candidates(ctx context.Context, seed track.Track, limit int) ([]track.Track, error) {
	artist, ok := seed.PrimaryArtist()
	if !ok {
		return nil, errors.Mark(
			errors.New("seed track has no artist credit"), player.ErrUnsupportedContent)
	}

	related, err := s.spotify.RelatedArtists(ctx, artist.ID)
	if err != nil {
		return nil, err
	}
	if len(related) == 0 {
		return nil, errors.Mark(
			errors.Newf("artist %s has no related artists", artist.Name),
			player.ErrNoRelatedContent)
	}
	if len(related) > s.config.MaxArtists {
		related = related[:s.config.MaxArtists]
	}

	zlog.Debug().Msgf("resolving top tracks: seed_artist=%s related_artists=%d concurrency=%d",
		artist.Name, len(related), s.config.FetchConcurrency)

	// Per-artist fetches are independent, so they run concurrently with a
	// bounded group. Each result lands in its artist's slot so the merge
	// below restores relevance order regardless of completion order.
	perArtist := make([][]track.Track, len(related))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.FetchConcurrency)

	for i, ra := range related {
		i, ra := i, ra
		g.Go(func() error {
			top, err := s.spotify.TopTracks(gctx, ra.ID)
			if err != nil {
				return err
			}
			if len(top) > s.config.TracksPerArtist {
				top = top[:s.config.TracksPerArtist]
			}
			perArtist[i] = top
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var candidates []track.Track
	for _, tracks := range perArtist {
		candidates = append(candidates, tracks...)
	}
	return candidates, nil
}

// Name returns the source name.
func (s *RelatedArtistsSource) Name() string {
	return "related_artists"
}

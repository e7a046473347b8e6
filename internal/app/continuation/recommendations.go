package continuation

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/insomniacwolves/spotify-manager/internal/domain/player"
	"github.com/insomniacwolves/spotify-manager/internal/domain/track"
)

// RecommendationsSourceConfig configures the recommendations source.
// The Spotify recommendation endpoint accepts at most five seeds.
type RecommendationsSourceConfig struct {
	MaxSeedArtists int  `yaml:"max_seed_artists" mapstructure:"max_seed_artists" default:"5" validate:"gte=1,lte=5"`
	SeedWithTrack  bool `yaml:"seed_with_track" mapstructure:"seed_with_track"`
}

// RecommendationsSource derives candidates from the Spotify
// recommendation endpoint, seeded with the playing track's artists and
// optionally the track itself.
type RecommendationsSource struct {
	spotify SpotifyClient
	config  *RecommendationsSourceConfig
}

// NewRecommendationsSource creates a RecommendationsSource from a settings map.
func NewRecommendationsSource(spotify SpotifyClient, settings map[string]any) (*RecommendationsSource, error) {
	if spotify == nil {
		return nil, errors.New("spotify client is required")
	}

	var config RecommendationsSourceConfig
	if err := mapstructure.Decode(settings, &config); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}

	return &RecommendationsSource{spotify: spotify, config: &config}, nil
}

// Candidates resolves candidate tracks for the seed track.
func (s *RecommendationsSource) Candidates(ctx context.Context, seed track.Track, limit int) ([]track.Track, error) {
	if len(seed.Artists) == 0 {
		return nil, errors.Mark(
			errors.New("seed track has no artist credit"), player.ErrUnsupportedContent)
	}

	artistIDs := make([]string, 0, s.config.MaxSeedArtists)
	for _, a := range seed.Artists {
		if len(artistIDs) == s.config.MaxSeedArtists {
			break
		}
		artistIDs = append(artistIDs, a.ID)
	}

	var trackIDs []string
	if s.config.SeedWithTrack {
		// Track seed counts against the five-seed budget
		if len(artistIDs) == s.config.MaxSeedArtists {
			artistIDs = artistIDs[:len(artistIDs)-1]
		}
		trackIDs = []string{seed.ID}
	}

	candidates, err := s.spotify.Recommendations(ctx, artistIDs, trackIDs, limit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, errors.Mark(
			errors.Newf("no recommendations for track %s", seed.Name),
			player.ErrNoRelatedContent)
	}
	return candidates, nil
}

// Name returns the source name.
func (s *RecommendationsSource) Name() string {
	return "recommendations"
}

package continuation

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/insomniacwolves/spotify-manager/internal/infra/config"
)

// NewSourceFromConfig creates a candidate source from configuration.
func NewSourceFromConfig(cfg *config.Config, spotify SpotifyClient) (Source, error) {
	scfg := cfg.Continuation.Source

	var source Source
	var err error
	switch scfg.Type {
	case "related_artists":
		source, err = NewRelatedArtistsSource(spotify, scfg.Settings)

	case "recommendations":
		source, err = NewRecommendationsSource(spotify, scfg.Settings)

	default:
		return nil, errors.Newf("unsupported source type: %s", scfg.Type)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to create source (type %s)", scfg.Type)
	}

	zlog.Debug().Msgf("created continuation source: type=%s", source.Name())
	return source, nil
}

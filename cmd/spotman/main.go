// Package main provides the spotify-manager CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/insomniacwolves/spotify-manager/internal/app/continuation"
	appplayer "github.com/insomniacwolves/spotify-manager/internal/app/player"
	"github.com/insomniacwolves/spotify-manager/internal/domain/player"
	"github.com/insomniacwolves/spotify-manager/internal/domain/track"
	"github.com/insomniacwolves/spotify-manager/internal/infra/config"
	"github.com/insomniacwolves/spotify-manager/internal/infra/logger"
	"github.com/insomniacwolves/spotify-manager/internal/infra/spotify"
)

var (
	app        = kingpin.New("spotman", "Spotify playback manager")
	configPath = app.Flag("config", "Path to config file").Default("config.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()

	// play-related command
	playRelatedCmd   = app.Command("play-related", "Play tracks related to the current artist")
	playRelatedLimit = playRelatedCmd.Flag("limit", "Maximum number of tracks to enqueue (default from config)").Default("-1").Int()
	playRelatedSeed  = playRelatedCmd.Flag("include-seed", "Keep the currently playing track in the queue").Bool()

	// now-playing command
	nowPlayingCmd = app.Command("now-playing", "Show the current playback state")

	// transport commands
	playCmd    = app.Command("play", "Start or resume playback")
	pauseCmd   = app.Command("pause", "Pause playback")
	toggleCmd  = app.Command("toggle", "Switch between play and pause")
	nextCmd    = app.Command("next", "Skip to the next track")
	prevCmd    = app.Command("prev", "Skip to the previous track")
	prevAfter  = prevCmd.Flag("restart-after", "Restart instead of skipping back when this many seconds have played (0 disables)").Default("0").Int()
	restartCmd = app.Command("restart", "Restart the current track")

	// repeat / shuffle commands
	repeatCmd   = app.Command("repeat", "Set or cycle the repeat mode")
	repeatState = repeatCmd.Arg("state", "track, context, off or next").Required().String()
	shuffleCmd  = app.Command("shuffle", "Set or toggle shuffle")
	shuffleMode = shuffleCmd.Arg("mode", "on, off or toggle").Required().Enum("on", "off", "toggle")

	// history / taste commands
	playRecentCmd       = app.Command("play-recent", "Play recently played tracks")
	playRecentLimit     = playRecentCmd.Flag("limit", "Number of tracks").Default("50").Int()
	playTopTracksCmd    = app.Command("play-top-tracks", "Play the user's most played tracks")
	playTopTracksLimit  = playTopTracksCmd.Flag("limit", "Number of tracks").Default("20").Int()
	playTopArtistsCmd   = app.Command("play-top-artists", "Play top tracks of the user's most played artists")
	playTopArtistsLimit = playTopArtistsCmd.Flag("limit", "Number of artists").Default("5").Int()

	// library commands
	saveCmd        = app.Command("save", "Save the current track to the library")
	unsaveCmd      = app.Command("unsave", "Remove the current track from the library")
	saveAlbumCmd   = app.Command("save-album", "Save the current track's album to the library")
	unsaveAlbumCmd = app.Command("unsave-album", "Remove the current track's album from the library")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	loggerConfig := logger.Config{
		Level:  cfg.Logging.Level,
		Output: cfg.Logging.Output,
		File:   cfg.Logging.File,
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if err := logger.Init(loggerConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	client, err := spotify.New(ctx, spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RefreshToken: cfg.Spotify.RefreshToken,
		Market:       cfg.Spotify.Market,
		DeviceID:     cfg.Spotify.DeviceID,
	})
	if err != nil {
		fatal(err)
	}

	manager, err := appplayer.NewManager(client)
	if err != nil {
		fatal(err)
	}

	if err := run(ctx, command, cfg, client, manager); err != nil {
		fatal(err)
	}
}

func run(ctx context.Context, command string, cfg *config.Config, client *spotify.Client, manager *appplayer.Manager) error {
	switch command {
	case playRelatedCmd.FullCommand():
		return playRelated(ctx, cfg, client)

	case nowPlayingCmd.FullCommand():
		return nowPlaying(ctx, manager)

	case playCmd.FullCommand():
		return manager.Resume(ctx)
	case pauseCmd.FullCommand():
		return manager.Pause(ctx)
	case toggleCmd.FullCommand():
		return manager.TogglePlayback(ctx)
	case nextCmd.FullCommand():
		return manager.Next(ctx)
	case prevCmd.FullCommand():
		return manager.Previous(ctx, time.Duration(*prevAfter)*time.Second)
	case restartCmd.FullCommand():
		return manager.Restart(ctx)

	case repeatCmd.FullCommand():
		return repeat(ctx, manager)
	case shuffleCmd.FullCommand():
		return shuffle(ctx, manager)

	case playRecentCmd.FullCommand():
		return printTracks(manager.PlayRecentlyPlayed(ctx, *playRecentLimit))
	case playTopTracksCmd.FullCommand():
		return printTracks(manager.PlayTopTracks(ctx, *playTopTracksLimit))
	case playTopArtistsCmd.FullCommand():
		return printTracks(manager.PlayTopArtists(ctx, *playTopArtistsLimit))

	case saveCmd.FullCommand():
		t, err := manager.SaveCurrentTrack(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Saved: %s - %s\n", t.Name, t.ArtistNames())
		return nil
	case unsaveCmd.FullCommand():
		t, err := manager.RemoveCurrentTrack(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Removed: %s - %s\n", t.Name, t.ArtistNames())
		return nil
	case saveAlbumCmd.FullCommand():
		name, err := manager.SaveCurrentAlbum(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Saved album: %s\n", name)
		return nil
	case unsaveAlbumCmd.FullCommand():
		name, err := manager.RemoveCurrentAlbum(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Removed album: %s\n", name)
		return nil
	}
	return nil
}

func playRelated(ctx context.Context, cfg *config.Config, client *spotify.Client) error {
	source, err := continuation.NewSourceFromConfig(cfg, client)
	if err != nil {
		return err
	}
	svc, err := continuation.NewService(client, source)
	if err != nil {
		return err
	}

	opts := continuation.Options{
		Limit:            cfg.Continuation.Limit,
		IncludeSeedTrack: cfg.Continuation.IncludeSeedTrack,
	}
	if *playRelatedLimit != -1 {
		opts.Limit = *playRelatedLimit
	}
	if *playRelatedSeed {
		opts.IncludeSeedTrack = true
	}

	return printTracks(svc.Run(ctx, opts))
}

func nowPlaying(ctx context.Context, manager *appplayer.Manager) error {
	state, err := manager.NowPlaying(ctx)
	if err != nil {
		return err
	}

	if state.Track == nil {
		fmt.Println("Playing a non-track item (podcast episode?)")
		return nil
	}

	status := "Paused"
	if state.Playing {
		status = "Playing"
	}
	fmt.Printf("%s: %s - %s\n", status, state.Track.Name, state.Track.ArtistNames())
	fmt.Printf("Album:    %s (%s)\n", state.Album, state.ReleaseDate)
	fmt.Printf("Position: %s\n", state.Progress.Round(time.Second))
	fmt.Printf("URL:      %s\n", spotify.TrackURL(state.Track.ID))
	return nil
}

func repeat(ctx context.Context, manager *appplayer.Manager) error {
	if *repeatState == "next" {
		state, err := manager.CycleRepeat(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Repeat: %s\n", state)
		return nil
	}

	state, err := player.ParseRepeatState(*repeatState)
	if err != nil {
		return err
	}
	if err := manager.SetRepeat(ctx, state); err != nil {
		return err
	}
	fmt.Printf("Repeat: %s\n", state)
	return nil
}

func shuffle(ctx context.Context, manager *appplayer.Manager) error {
	switch *shuffleMode {
	case "toggle":
		on, err := manager.ToggleShuffle(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Shuffle: %v\n", on)
		return nil
	default:
		on := *shuffleMode == "on"
		if err := manager.SetShuffle(ctx, on); err != nil {
			return err
		}
		fmt.Printf("Shuffle: %v\n", on)
		return nil
	}
}

func printTracks(tracks []track.Track, err error) error {
	if err != nil {
		return err
	}
	fmt.Printf("Enqueued %d tracks:\n", len(tracks))
	for i, t := range tracks {
		fmt.Printf("%3d. %s - %s\n", i+1, t.Name, t.ArtistNames())
	}
	return nil
}

// fatal prints a user-facing message for known error classes and exits.
func fatal(err error) {
	switch {
	case errors.Is(err, player.ErrInvalidArgument):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	case errors.Is(err, player.ErrNoActivePlayback):
		fmt.Fprintln(os.Stderr, "Error: nothing is playing right now.")
	case errors.Is(err, player.ErrUnsupportedContent):
		fmt.Fprintln(os.Stderr, "Error: the playing item is not a track.")
	case errors.Is(err, player.ErrNoRelatedContent):
		fmt.Fprintln(os.Stderr, "Error: no related tracks found for the current artist.")
	case errors.Is(err, player.ErrUpstreamUnavailable):
		fmt.Fprintf(os.Stderr, "Error: Spotify API request failed: %v\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	zlog.Debug().Msgf("command failed: %+v", err)
	os.Exit(1)
}

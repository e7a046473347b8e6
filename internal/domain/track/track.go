// Package track provides the Track and Artist domain entities.
package track

import "strings"

// Artist represents a Spotify artist reference.
// Identity is the Spotify artist ID; the name is display-only.
type Artist struct {
	ID   string // Spotify Artist ID
	Name string // Display name
}

// Track represents a Spotify track entity.
// Identity is the Spotify URI, an opaque catalog key that is only ever
// passed through from the API, never generated locally.
type Track struct {
	URI        string   // Spotify URI (spotify:track:...)
	ID         string   // Spotify Track ID
	Name       string   // Track name
	Artists    []Artist // Credited artists, primary first
	Album      string   // Album name
	Popularity int      // Popularity score (0-100)
}

// PrimaryArtist returns the first credited artist.
// The second return value is false when the track has no artist credit.
func (t *Track) PrimaryArtist() (Artist, bool) {
	if len(t.Artists) == 0 {
		return Artist{}, false
	}
	return t.Artists[0], true
}

// ArtistNames returns the credited artist names joined by commas.
func (t *Track) ArtistNames() string {
	names := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// Dedupe removes duplicate tracks by URI, keeping the first occurrence.
// Input order is preserved.
func Dedupe(tracks []Track) []Track {
	seen := make(map[string]bool, len(tracks))
	result := make([]Track, 0, len(tracks))

	for _, t := range tracks {
		if !seen[t.URI] {
			seen[t.URI] = true
			result = append(result, t)
		}
	}

	return result
}

// URIs returns the Spotify URIs of the given tracks in order.
func URIs(tracks []Track) []string {
	uris := make([]string, len(tracks))
	for i, t := range tracks {
		uris[i] = t.URI
	}
	return uris
}

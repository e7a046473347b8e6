package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryArtist(t *testing.T) {
	tr := Track{
		Artists: []Artist{
			{ID: "A1", Name: "Eminem"},
			{ID: "A2", Name: "Skylar Grey"},
		},
	}

	artist, ok := tr.PrimaryArtist()
	assert.True(t, ok)
	assert.Equal(t, "A1", artist.ID)

	var empty Track
	_, ok = empty.PrimaryArtist()
	assert.False(t, ok)
}

func TestArtistNames(t *testing.T) {
	tests := []struct {
		name     string
		artists  []Artist
		expected string
	}{
		{
			name:     "single artist",
			artists:  []Artist{{Name: "Queen"}},
			expected: "Queen",
		},
		{
			name: "multiple artists",
			artists: []Artist{
				{Name: "Run-DMC"},
				{Name: "Aerosmith"},
			},
			expected: "Run-DMC, Aerosmith",
		},
		{
			name:     "no artists",
			artists:  nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Track{Artists: tt.artists}
			assert.Equal(t, tt.expected, tr.ArtistNames())
		})
	}
}

func TestDedupe(t *testing.T) {
	tracks := []Track{
		{URI: "spotify:track:a", Name: "A"},
		{URI: "spotify:track:b", Name: "B"},
		{URI: "spotify:track:a", Name: "A (duplicate)"},
		{URI: "spotify:track:c", Name: "C"},
	}

	result := Dedupe(tracks)

	assert.Len(t, result, 3)
	assert.Equal(t, "A", result[0].Name) // first occurrence wins
	assert.Equal(t, "B", result[1].Name)
	assert.Equal(t, "C", result[2].Name)
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}

func TestURIs(t *testing.T) {
	tracks := []Track{
		{URI: "spotify:track:a"},
		{URI: "spotify:track:b"},
	}
	assert.Equal(t, []string{"spotify:track:a", "spotify:track:b"}, URIs(tracks))
}

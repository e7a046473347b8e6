package player

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeatState_Next(t *testing.T) {
	assert.Equal(t, RepeatContext, RepeatTrack.Next())
	assert.Equal(t, RepeatOff, RepeatContext.Next())
	assert.Equal(t, RepeatTrack, RepeatOff.Next())
}

func TestParseRepeatState(t *testing.T) {
	tests := []struct {
		input   string
		want    RepeatState
		wantErr bool
	}{
		{input: "track", want: RepeatTrack},
		{input: "context", want: RepeatContext},
		{input: "off", want: RepeatOff},
		{input: "all", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			state, err := ParseRepeatState(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
		})
	}
}

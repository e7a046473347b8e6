package player

import "github.com/cockroachdb/errors"

// RepeatState represents the player's repeat mode.
type RepeatState string

const (
	RepeatTrack   RepeatState = "track"
	RepeatContext RepeatState = "context"
	RepeatOff     RepeatState = "off"
)

// Next returns the following repeat mode.
// Order is track -> context -> off -> track.
func (s RepeatState) Next() RepeatState {
	switch s {
	case RepeatTrack:
		return RepeatContext
	case RepeatContext:
		return RepeatOff
	default:
		return RepeatTrack
	}
}

// String returns the wire representation of the state.
func (s RepeatState) String() string {
	return string(s)
}

// ParseRepeatState parses a repeat mode string.
func ParseRepeatState(s string) (RepeatState, error) {
	switch RepeatState(s) {
	case RepeatTrack, RepeatContext, RepeatOff:
		return RepeatState(s), nil
	default:
		return "", errors.Mark(
			errors.Newf("repeat state must be 'track', 'context' or 'off', got %q", s),
			ErrInvalidArgument)
	}
}

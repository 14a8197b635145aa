package game

import (
	"errors"
	"fmt"
	"time"

	"petgame/internal/pet"
)

// ErrUnknownIntent is returned by Dispatch for intents it does not handle.
var ErrUnknownIntent = errors.New("unknown intent")

// Intent is a discrete player command produced by the UI layer.
type Intent int

const (
	IntentFeed Intent = iota
	IntentPlay
	IntentClean
	IntentStudy
)

// Intents lists the stat intents in menu order.
var Intents = []Intent{IntentFeed, IntentPlay, IntentClean, IntentStudy}

func (i Intent) String() string {
	switch i {
	case IntentFeed:
		return "Feed"
	case IntentPlay:
		return "Play"
	case IntentClean:
		return "Clean"
	case IntentStudy:
		return "Study"
	default:
		return fmt.Sprintf("Intent(%d)", int(i))
	}
}

// Stat returns the stat an intent raises.
func (i Intent) Stat() (pet.Stat, error) {
	switch i {
	case IntentFeed:
		return pet.Muscle, nil
	case IntentPlay:
		return pet.Fun, nil
	case IntentClean:
		return pet.Hygiene, nil
	case IntentStudy:
		return pet.Intelligence, nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownIntent, int(i))
}

// Amount returns the configured increment for intent.
func (s *Session) Amount(i Intent) int {
	if i == IntentClean {
		return s.cfg.Stats.CleanIncrement
	}
	return s.cfg.Stats.Increment
}

// Dispatch applies a player intent at now and returns the new stat value.
func (s *Session) Dispatch(i Intent, now time.Time) (int, error) {
	stat, err := i.Stat()
	if err != nil {
		return 0, err
	}
	return s.Increase(stat, s.Amount(i), now)
}

package game

import (
	"time"

	"petgame/internal/clutter"
	"petgame/internal/config"
	"petgame/internal/journal"
	"petgame/internal/pet"
	"petgame/internal/powerup"
)

// Snapshot is a read-only copy of the session for rendering and export.
type Snapshot struct {
	Time          time.Time           `json:"time"`
	Phase         string              `json:"phase"`
	Stats         pet.Stats           `json:"stats"`
	Mood          pet.Mood            `json:"mood"`
	Idle          bool                `json:"idle"`
	Rebirths      int                 `json:"rebirths"`
	Creature      pet.Descriptor      `json:"creature"`
	Clutter       []clutter.Item      `json:"clutter"`
	PowerUps      []powerup.PowerUp   `json:"powerups"`
	Care          journal.CareQuality `json:"care"`
	IdlePending   bool                `json:"idle_pending"`
	Spawning      bool                `json:"spawning"`
	Decaying      bool                `json:"decaying"`
	PendingTimers int                 `json:"pending_timers"`
}

// Snapshot returns the current state. It does not advance timers.
func (s *Session) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		Time:          now,
		Phase:         s.phase.String(),
		Stats:         s.stats,
		Mood:          s.mood,
		Idle:          s.idle,
		Rebirths:      s.rebirths,
		Creature:      s.creature.Clone(),
		Clutter:       s.clutter.Items(),
		PowerUps:      s.powerups.Active(),
		Care:          s.journal.Care(s.rebirths),
		IdlePending:   s.timers.IdlePending(),
		Spawning:      s.timers.Spawning(),
		Decaying:      s.sched.Active(s.decay),
		PendingTimers: s.sched.Pending(),
	}
}

// Stats returns the current stat values.
func (s *Session) Stats() pet.Stats {
	return s.stats
}

// Mood returns the mood computed by the last evaluation.
func (s *Session) Mood() pet.Mood {
	return s.mood
}

// Creature returns a copy of the current creature descriptor.
func (s *Session) Creature() pet.Descriptor {
	return s.creature.Clone()
}

// Rebirths returns the rebirth counter.
func (s *Session) Rebirths() int {
	return s.rebirths
}

// Phase returns the state machine phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Idle reports whether the idle animation is running.
func (s *Session) Idle() bool {
	return s.idle
}

// ClutterCount returns the number of live poo piles.
func (s *Session) ClutterCount() int {
	return s.clutter.Len()
}

// PowerUps returns the live power-ups ordered by id.
func (s *Session) PowerUps() []powerup.PowerUp {
	return s.powerups.Active()
}

// PendingTimers returns the number of scheduled timers.
func (s *Session) PendingTimers() int {
	return s.sched.Pending()
}

// Now returns the session clock.
func (s *Session) Now() time.Time {
	return s.sched.Now()
}

// Config returns the session configuration.
func (s *Session) Config() config.Config {
	return s.cfg
}

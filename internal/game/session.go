// Package game owns a play session: stats, creature, timers, clutter,
// power-ups and the rebirth state machine.
package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"petgame/internal/clutter"
	"petgame/internal/config"
	"petgame/internal/journal"
	"petgame/internal/pet"
	"petgame/internal/powerup"
	"petgame/internal/schedule"
)

// ErrNirvana is returned by mutators once the session has reached Nirvana.
var ErrNirvana = errors.New("session has reached nirvana")

// Phase is the rebirth state machine state.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseNirvana
)

func (p Phase) String() string {
	if p == PhaseNirvana {
		return "nirvana"
	}
	return "active"
}

// Session is the owned game state. It is single-threaded: every method must be
// called from the same goroutine.
type Session struct {
	cfg      config.Config
	tieBreak []pet.Stat

	stats    pet.Stats
	creature pet.Descriptor
	mood     pet.Mood
	rebirths int
	phase    Phase
	idle     bool

	generator *pet.Generator
	sched     *schedule.Scheduler
	timers    *schedule.Coordinator
	decay     schedule.Handle
	expiries  map[uint64]schedule.Handle

	world    *ecs.World
	clutter  *clutter.Pile
	powerups *powerup.Field
	journal  *journal.Journal

	// OnRebirth, when set, is called after every rebirth or Nirvana transition.
	OnRebirth func(RebirthEvent)
}

// RebirthEvent describes one rebirth transition.
type RebirthEvent struct {
	Time     time.Time
	Trigger  pet.Stat
	Rebirths int
	Nirvana  bool
	Previous string // name of the creature that was reborn
	Creature string // name of the new creature; empty on Nirvana
}

// New starts a session at start. rng drives every random draw of the session.
func New(cfg config.Config, rng *rand.Rand, start time.Time) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tieBreak, err := cfg.TieBreakOrder()
	if err != nil {
		return nil, err
	}
	table, err := powerup.ParseTable(cfg.PowerUps.Table)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	s := &Session{
		cfg:       cfg,
		tieBreak:  tieBreak,
		stats:     pet.NewStats(cfg.Stats.Initial),
		generator: pet.NewGenerator(cfg.GeneratorConfig(), pet.SyllableList(cfg.Names.Syllables), rng),
		sched:     schedule.NewScheduler(start),
		expiries:  make(map[uint64]schedule.Handle),
		world:     world,
		clutter:   clutter.NewPile(world, cfg.Clutter, rng),
		powerups:  powerup.NewField(world, table, cfg.PowerUps.Bounds, cfg.Timers.PowerUpLifetime, rng),
		journal:   journal.New(),
	}
	s.timers = schedule.NewCoordinator(s.sched, cfg.Timers.IdleDelay, cfg.Timers.PowerUpInterval, s.startIdle, s.spawnPowerUp)

	s.creature = s.generator.Generate()
	s.mood = pet.EvaluateMood(s.stats)
	s.record(start, journal.Entry{Kind: journal.KindBirth})
	s.journal.Checkpoint(s.rebirths, s.stats)
	s.clutter.Sync(s.stats.Hygiene)

	s.timers.ResetIdle()
	s.timers.StartSpawning()
	if cfg.Stats.Decay.Interval > 0 && cfg.Stats.Decay.Amount > 0 {
		s.decay = s.sched.Every(cfg.Stats.Decay.Interval, s.applyDecay)
	}

	log.Printf("Session started with %s (stats %d, baseline %d, nirvana at %d)",
		s.creature.Name, cfg.Stats.Initial, cfg.Rebirth.Baseline, cfg.Rebirth.NirvanaThreshold)
	return s, nil
}

// Increase adds amount to stat as a player action: the idle animation stops
// and the idle timer restarts. Raising hygiene also removes the oldest pile.
// An unknown stat is reported before ErrNirvana.
func (s *Session) Increase(stat pet.Stat, amount int, now time.Time) (int, error) {
	s.sched.Advance(now)
	if s.phase == PhaseNirvana {
		v, err := s.stats.Get(stat)
		if err != nil {
			return 0, err
		}
		return v, ErrNirvana
	}
	v, err := s.stats.Increase(stat, amount)
	if err != nil {
		return 0, err
	}

	s.idle = false
	s.timers.ResetIdle()
	if stat == pet.Hygiene && amount > 0 {
		s.clutter.RemoveFirst()
	}
	s.journal.Checkpoint(s.rebirths, s.stats)
	log.Printf("%s increased by %d to %d", stat, amount, v)
	return v, nil
}

// Tick advances timers to now and runs one evaluation.
func (s *Session) Tick(now time.Time) {
	s.sched.Advance(now)
	s.evaluate(s.sched.Now())
}

// evaluate reads one stat snapshot: mood, then at most one rebirth, then
// clutter reconciliation.
func (s *Session) evaluate(now time.Time) {
	if s.phase == PhaseNirvana {
		return
	}
	snapshot := s.stats
	s.mood = pet.EvaluateMood(snapshot)

	if trigger, ok := snapshot.Saturated(s.tieBreak); ok {
		s.rebirth(trigger, now)
		if s.phase == PhaseNirvana {
			return
		}
	}
	s.clutter.Sync(s.stats.Hygiene)
}

func (s *Session) rebirth(trigger pet.Stat, now time.Time) {
	s.rebirths++
	ev := RebirthEvent{
		Time:     now,
		Trigger:  trigger,
		Rebirths: s.rebirths,
		Previous: s.creature.Name,
	}

	if s.rebirths >= s.cfg.Rebirth.NirvanaThreshold {
		s.enterNirvana(now)
		ev.Nirvana = true
		s.record(now, journal.Entry{Kind: journal.KindNirvana, Stat: trigger})
		log.Printf("%s reached Nirvana after %d rebirths", s.creature.Name, s.rebirths)
	} else {
		s.stats.Reset(s.cfg.Rebirth.Baseline)
		s.creature = s.generator.Generate()
		s.idle = false
		ev.Creature = s.creature.Name
		s.record(now, journal.Entry{Kind: journal.KindRebirth, Stat: trigger, Detail: "from " + ev.Previous})
		s.journal.Checkpoint(s.rebirths, s.stats)
		log.Printf("Rebirth %d: %s saturated, %s reborn as %s (creature #%d)", s.rebirths, trigger, ev.Previous, s.creature.Name, s.generator.Generated())
	}

	if s.OnRebirth != nil {
		s.OnRebirth(ev)
	}
}

// enterNirvana freezes the session. No timer survives it. The final stats are
// the only care sample of the last life.
func (s *Session) enterNirvana(now time.Time) {
	s.phase = PhaseNirvana
	s.journal.Checkpoint(s.rebirths, s.stats)
	s.idle = false
	s.timers.Stop()
	s.sched.CancelAll()
	s.decay = 0
	clear(s.expiries)
	s.clutter.Clear()
	for _, id := range s.powerups.Clear() {
		s.record(now, journal.Entry{Kind: journal.KindPowerUpExpired, Detail: fmt.Sprintf("power-up %d cleared", id)})
	}
}

func (s *Session) startIdle(now time.Time) {
	if s.phase == PhaseNirvana {
		return
	}
	s.idle = true
	log.Printf("%s is idle", s.creature.Name)
}

func (s *Session) applyDecay(now time.Time) {
	if s.phase == PhaseNirvana {
		return
	}
	amount := s.cfg.Stats.Decay.Amount
	for _, stat := range pet.AllStats {
		s.stats.Increase(stat, -amount)
	}
	s.journal.Checkpoint(s.rebirths, s.stats)
}

func (s *Session) spawnPowerUp(now time.Time) {
	if s.phase == PhaseNirvana {
		return
	}
	p := s.powerups.Spawn(now)
	s.expiries[p.ID] = s.sched.After(s.cfg.Timers.PowerUpLifetime, func(at time.Time) {
		delete(s.expiries, p.ID)
		if s.powerups.Expire(p.ID) {
			s.record(at, journal.Entry{Kind: journal.KindPowerUpExpired, Stat: p.Effect.Stat, Value: p.Effect.Magnitude, Detail: fmt.Sprintf("power-up %d", p.ID)})
		}
	})
	s.record(now, journal.Entry{Kind: journal.KindPowerUpSpawned, Stat: p.Effect.Stat, Value: p.Effect.Magnitude, Detail: fmt.Sprintf("power-up %d", p.ID)})
}

// CollectPowerUp claims power-up id at now and applies its effect. It reports
// false, without error, when the power-up has already expired or been collected.
func (s *Session) CollectPowerUp(id uint64, now time.Time) (powerup.Effect, bool, error) {
	s.sched.Advance(now)
	if s.phase == PhaseNirvana {
		return powerup.Effect{}, false, ErrNirvana
	}
	effect, ok := s.powerups.Collect(id, now)
	s.sched.Cancel(s.expiries[id])
	delete(s.expiries, id)
	if !ok {
		return powerup.Effect{}, false, nil
	}

	if _, err := s.Increase(effect.Stat, effect.Magnitude, now); err != nil {
		return powerup.Effect{}, false, err
	}
	s.record(now, journal.Entry{Kind: journal.KindPowerUpCollected, Stat: effect.Stat, Value: effect.Magnitude, Detail: fmt.Sprintf("power-up %d", id)})
	return effect, true, nil
}

func (s *Session) record(now time.Time, e journal.Entry) {
	e.Time = now
	e.Life = s.rebirths
	if e.Creature == "" {
		e.Creature = s.creature.Name
	}
	s.journal.Record(e)
}

// Journal returns the session journal.
func (s *Session) Journal() *journal.Journal {
	return s.journal
}

// Export writes the journal and a snapshot to dir. Failures leave the session untouched.
func (s *Session) Export(dir string, now time.Time) (journal.Files, error) {
	s.record(now, journal.Entry{Kind: journal.KindExport, Detail: dir})
	files, err := journal.Export(dir, now, s.journal, s.Snapshot(now))
	if err != nil {
		log.Printf("Export failed: %v", err)
		return journal.Files{}, err
	}
	log.Printf("Exported session to %s", dir)
	return files, nil
}

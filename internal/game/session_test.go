package game

import (
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petgame/internal/config"
	"petgame/internal/journal"
	"petgame/internal/pet"
)

var epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func newTestSession(t *testing.T, mutate func(*config.Config)) *Session {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := New(cfg, rand.New(rand.NewSource(42)), epoch)
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, nil)

	assert.Equal(t, pet.NewStats(50), s.Stats())
	assert.Equal(t, 0, s.Rebirths())
	assert.Equal(t, PhaseActive, s.Phase())
	assert.Equal(t, pet.MoodNormal, s.Mood())
	assert.NotEmpty(t, s.Creature().Name)
	assert.Equal(t, 2, s.ClutterCount(), "hygiene 50 starts with two piles")
	assert.Equal(t, 3, s.PendingTimers(), "idle, spawn and decay timers")
	assert.Equal(t, 1, s.Journal().Count(journal.KindBirth))
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Rebirth.TieBreak = []string{"fun"}
	_, err := New(cfg, rand.New(rand.NewSource(1)), epoch)
	assert.Error(t, err)
}

func TestIncreaseClampsAndReports(t *testing.T) {
	s := newTestSession(t, nil)

	v, err := s.Increase(pet.Fun, 30, at(100))
	require.NoError(t, err)
	assert.Equal(t, 80, v)

	v, err = s.Increase(pet.Fun, 30, at(200))
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	_, err = s.Increase(pet.Stat("luck"), 10, at(300))
	assert.ErrorIs(t, err, pet.ErrUnknownStat)
}

func TestRebirthOnSaturation(t *testing.T) {
	s := newTestSession(t, nil)
	before := s.Creature()
	require.Equal(t, 1, s.generator.Generated())

	_, err := s.Increase(pet.Muscle, 50, at(100))
	require.NoError(t, err)
	assert.Equal(t, pet.Stats{Hygiene: 50, Fun: 50, Muscle: 100, Intelligence: 50}, s.Stats())

	s.Tick(at(200))
	assert.Equal(t, 1, s.Rebirths())
	assert.Equal(t, pet.NewStats(50), s.Stats())
	assert.NotEqual(t, before, s.Creature())
	assert.Equal(t, 2, s.generator.Generated(), "one rebirth draws exactly one creature")
	assert.Equal(t, 1, s.Journal().Count(journal.KindRebirth))

	after := s.Creature()
	s.Tick(at(300))
	assert.Equal(t, 1, s.Rebirths(), "a reset creature does not rebirth again")
	assert.Equal(t, after, s.Creature())
	assert.Equal(t, 2, s.generator.Generated())
}

func TestRebirthUsesConfiguredBaseline(t *testing.T) {
	s := newTestSession(t, func(c *config.Config) { c.Rebirth.Baseline = 1 })

	s.Increase(pet.Intelligence, 50, at(100))
	s.Tick(at(200))
	assert.Equal(t, pet.NewStats(1), s.Stats())
}

func TestOneRebirthPerTick(t *testing.T) {
	s := newTestSession(t, nil)
	var events []RebirthEvent
	s.OnRebirth = func(ev RebirthEvent) { events = append(events, ev) }

	s.Increase(pet.Fun, 50, at(100))
	s.Increase(pet.Muscle, 50, at(100))
	s.Tick(at(200))

	require.Len(t, events, 1)
	assert.Equal(t, pet.Fun, events[0].Trigger, "fun comes before muscle in the default order")
	assert.Equal(t, 1, events[0].Rebirths)
	assert.False(t, events[0].Nirvana)
	assert.Equal(t, s.Creature().Name, events[0].Creature)
}

func TestTieBreakOrderIsConfigurable(t *testing.T) {
	s := newTestSession(t, func(c *config.Config) {
		c.Rebirth.TieBreak = []string{"intelligence", "muscle", "fun", "hygiene"}
	})
	var trigger pet.Stat
	s.OnRebirth = func(ev RebirthEvent) { trigger = ev.Trigger }

	s.Increase(pet.Fun, 50, at(100))
	s.Increase(pet.Muscle, 50, at(100))
	s.Tick(at(200))

	assert.Equal(t, pet.Muscle, trigger)
}

func TestNirvana(t *testing.T) {
	s := newTestSession(t, nil)

	s.Tick(at(7000)) // first power-up spawns
	require.Len(t, s.PowerUps(), 1)
	require.Greater(t, s.ClutterCount(), 0)

	s.rebirths = 99
	var ev RebirthEvent
	s.OnRebirth = func(e RebirthEvent) { ev = e }

	_, err := s.Increase(pet.Fun, 50, at(7100))
	require.NoError(t, err)
	stats := s.Stats()
	s.Tick(at(7200))

	assert.Equal(t, PhaseNirvana, s.Phase())
	assert.Equal(t, 100, s.Rebirths())
	assert.True(t, ev.Nirvana)
	assert.Empty(t, ev.Creature)
	assert.Equal(t, stats, s.Stats(), "stats are not reset on nirvana")
	assert.Equal(t, 0, s.PendingTimers())
	assert.Equal(t, 0, s.ClutterCount())
	assert.Empty(t, s.PowerUps())
	assert.False(t, s.Idle())
	assert.Equal(t, 1, s.Journal().Count(journal.KindNirvana))
	assert.Equal(t, 1, s.generator.Generated(), "nirvana draws no new creature")
}

func TestNirvanaKeepsCareSummary(t *testing.T) {
	s := newTestSession(t, nil)
	s.rebirths = 99

	_, err := s.Increase(pet.Fun, 50, at(100))
	require.NoError(t, err)
	s.Tick(at(200))
	require.Equal(t, PhaseNirvana, s.Phase())

	care := s.Snapshot(at(300)).Care
	assert.Equal(t, 100, care.Life)
	assert.Greater(t, care.Samples, 0)
	assert.InDelta(t, 62.5, care.OverallAverage(), 0.001)
}

func TestNirvanaReportsUnknownStatFirst(t *testing.T) {
	s := newTestSession(t, nil)
	s.rebirths = 99
	s.Increase(pet.Hygiene, 50, at(100))
	s.Tick(at(200))
	require.Equal(t, PhaseNirvana, s.Phase())

	_, err := s.Increase(pet.Stat("luck"), 10, at(300))
	assert.ErrorIs(t, err, pet.ErrUnknownStat)
	assert.NotErrorIs(t, err, ErrNirvana)

	v, err := s.Increase(pet.Fun, 10, at(400))
	assert.ErrorIs(t, err, ErrNirvana)
	assert.Equal(t, 50, v)
}

func TestCreatureIsACopy(t *testing.T) {
	s := newTestSession(t, nil)
	want := s.Creature()
	require.NotEmpty(t, want.Limbs)
	require.NotEmpty(t, want.Eyes)

	got := s.Creature()
	got.Limbs[0].Angle = 999
	got.Eyes[0].Style = "mutated"
	snap := s.Snapshot(at(0))
	snap.Creature.Limbs[0].Rotation = 999

	assert.Equal(t, want, s.Creature())
}

func TestNirvanaIsTerminal(t *testing.T) {
	s := newTestSession(t, nil)
	s.rebirths = 99
	s.Increase(pet.Hygiene, 50, at(100))
	s.Tick(at(200))
	require.Equal(t, PhaseNirvana, s.Phase())
	stats := s.Stats()

	v, err := s.Dispatch(IntentPlay, at(300))
	assert.ErrorIs(t, err, ErrNirvana)
	assert.Equal(t, stats.Fun, v)

	_, ok, err := s.CollectPowerUp(1, at(400))
	assert.ErrorIs(t, err, ErrNirvana)
	assert.False(t, ok)

	s.Tick(at(60000))
	assert.Equal(t, stats, s.Stats(), "no timer fires after nirvana")
	assert.Equal(t, 100, s.Rebirths())
	assert.Equal(t, 0, s.PendingTimers())
	assert.Equal(t, 0, s.ClutterCount())
}

func TestMoodUsesStatsAtTickStart(t *testing.T) {
	s := newTestSession(t, nil)

	s.Increase(pet.Muscle, -30, at(100))
	assert.Equal(t, pet.MoodNormal, s.Mood(), "mood only changes on evaluation")
	s.Tick(at(200))
	assert.Equal(t, pet.MoodSad, s.Mood())

	s.Increase(pet.Hygiene, 50, at(300))
	s.Tick(at(400))
	assert.Equal(t, 1, s.Rebirths())
	assert.Equal(t, pet.MoodSad, s.Mood(), "mood comes from the pre-rebirth snapshot")

	s.Tick(at(500))
	assert.Equal(t, pet.MoodNormal, s.Mood())
}

func TestIdleDebounce(t *testing.T) {
	s := newTestSession(t, nil)

	_, err := s.Dispatch(IntentFeed, at(0))
	require.NoError(t, err)
	_, err = s.Dispatch(IntentFeed, at(1000))
	require.NoError(t, err)

	s.Tick(at(5999))
	assert.False(t, s.Idle())

	s.Tick(at(6000))
	assert.True(t, s.Idle())

	s.Dispatch(IntentStudy, at(6500))
	assert.False(t, s.Idle())
	s.Tick(at(11499))
	assert.False(t, s.Idle())
	s.Tick(at(11500))
	assert.True(t, s.Idle())
}

func TestPowerUpCollectBeforeExpiry(t *testing.T) {
	s := newTestSession(t, func(c *config.Config) { c.Stats.Decay.Interval = 0 })
	s.Tick(at(7000))
	require.Len(t, s.PowerUps(), 1)
	p := s.PowerUps()[0]
	before, _ := s.Stats().Get(p.Effect.Stat)
	pending := s.PendingTimers()

	effect, ok, err := s.CollectPowerUp(p.ID, at(11999))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p.Effect, effect)

	after, _ := s.Stats().Get(p.Effect.Stat)
	assert.Equal(t, min(before+p.Effect.Magnitude, pet.MaxStat), after)
	assert.Empty(t, s.PowerUps())
	assert.Empty(t, s.expiries, "the expiry timer is cancelled")
	assert.Equal(t, pending, s.PendingTimers(), "expiry cancelled, idle timer re-armed")
	assert.Equal(t, 1, s.Journal().Count(journal.KindPowerUpCollected))
}

func TestPowerUpCollectAfterExpiry(t *testing.T) {
	for _, ms := range []int{12000, 12001} {
		s := newTestSession(t, func(c *config.Config) { c.Stats.Decay.Interval = 0 })
		s.Tick(at(7000))
		require.Len(t, s.PowerUps(), 1)
		p := s.PowerUps()[0]
		stats := s.Stats()

		_, ok, err := s.CollectPowerUp(p.ID, at(ms))
		require.NoError(t, err)
		assert.False(t, ok, "collect at %dms", ms)
		assert.Equal(t, stats, s.Stats())
		assert.Equal(t, 1, s.Journal().Count(journal.KindPowerUpExpired))
	}
}

func TestPowerUpCollectTwice(t *testing.T) {
	s := newTestSession(t, nil)
	s.Tick(at(7000))
	p := s.PowerUps()[0]

	_, ok, err := s.CollectPowerUp(p.ID, at(8000))
	require.NoError(t, err)
	require.True(t, ok)
	stats := s.Stats()

	_, ok, err = s.CollectPowerUp(p.ID, at(8100))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, stats, s.Stats())
}

func TestPowerUpExpiresOnItsOwn(t *testing.T) {
	s := newTestSession(t, nil)
	s.Tick(at(7000))
	require.Len(t, s.PowerUps(), 1)

	s.Tick(at(11999))
	assert.Len(t, s.PowerUps(), 1)
	s.Tick(at(12000))
	assert.Empty(t, s.PowerUps())

	s.Tick(at(14000))
	assert.Len(t, s.PowerUps(), 1, "spawning repeats")
}

func TestCleanRemovesOldestPile(t *testing.T) {
	s := newTestSession(t, nil)
	require.Equal(t, 2, s.ClutterCount())
	survivor := s.Snapshot(at(0)).Clutter[1]

	v, err := s.Dispatch(IntentClean, at(100))
	require.NoError(t, err)
	assert.Equal(t, 65, v)
	assert.Equal(t, 1, s.ClutterCount())
	assert.Equal(t, survivor, s.Snapshot(at(100)).Clutter[0])

	s.Tick(at(200))
	assert.Equal(t, 1, s.ClutterCount(), "hygiene 65 calls for one pile")
}

func TestClutterFollowsFallingHygiene(t *testing.T) {
	s := newTestSession(t, nil)
	s.Increase(pet.Hygiene, -50, at(100))
	assert.Equal(t, 2, s.ClutterCount(), "piles appear on evaluation")

	s.Tick(at(200))
	assert.Equal(t, 5, s.ClutterCount())
}

func TestDecay(t *testing.T) {
	s := newTestSession(t, nil)
	s.Tick(at(5000))
	require.True(t, s.Idle())

	s.Tick(at(15000))
	s.Stats().Each(func(stat pet.Stat, v int) {
		assert.Equal(t, 48, v, stat)
	})
	assert.True(t, s.Idle(), "decay is not a player action")
}

func TestDecayDisabled(t *testing.T) {
	s := newTestSession(t, func(c *config.Config) { c.Stats.Decay.Interval = 0 })
	assert.Equal(t, 2, s.PendingTimers())

	s.Tick(at(60000))
	assert.Equal(t, 50, s.Stats().Fun)
}

func TestSameSeedSameSession(t *testing.T) {
	run := func() Snapshot {
		s := newTestSession(t, nil)
		s.Dispatch(IntentPlay, at(500))
		s.Tick(at(7000))
		s.Dispatch(IntentFeed, at(8000))
		s.Tick(at(20000))
		return s.Snapshot(at(20000))
	}
	assert.Equal(t, run(), run())
}

func TestExport(t *testing.T) {
	s := newTestSession(t, nil)
	s.Dispatch(IntentStudy, at(100))
	s.Tick(at(7000))

	files, err := s.Export(t.TempDir(), at(8000))
	require.NoError(t, err)
	for _, path := range []string{files.Journal, files.Care, files.Snapshot} {
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, s.Journal().Count(journal.KindExport))
}

func TestExportFailureLeavesSessionRunning(t *testing.T) {
	s := newTestSession(t, nil)
	_, err := s.Export("/nonexistent/petgame/exports", at(100))
	assert.Error(t, err)

	_, err = s.Dispatch(IntentPlay, at(200))
	assert.NoError(t, err)
}

func TestIntentStats(t *testing.T) {
	s := newTestSession(t, nil)
	tests := []struct {
		intent Intent
		stat   pet.Stat
		amount int
	}{
		{IntentFeed, pet.Muscle, 10},
		{IntentPlay, pet.Fun, 10},
		{IntentClean, pet.Hygiene, 15},
		{IntentStudy, pet.Intelligence, 10},
	}

	for _, tt := range tests {
		t.Run(tt.intent.String(), func(t *testing.T) {
			stat, err := tt.intent.Stat()
			require.NoError(t, err)
			assert.Equal(t, tt.stat, stat)
			assert.Equal(t, tt.amount, s.Amount(tt.intent))
		})
	}

	_, err := s.Dispatch(Intent(42), at(100))
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

package powerup

import (
	"math/rand"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petgame/internal/config"
	"petgame/internal/pet"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

var testBounds = config.Bounds{MinX: 100, MaxX: 1180, MinY: 150, MaxY: 570}

func newTestField(t *testing.T, table []Effect) *Field {
	t.Helper()
	return NewField(ecs.NewWorld(), table, testBounds, 5*time.Second, rand.New(rand.NewSource(1)))
}

func TestParseTable(t *testing.T) {
	table, err := ParseTable([]config.PowerUpEntry{
		{Stat: "muscle", Magnitude: 25},
		{Stat: "fun", Magnitude: 50},
	})
	require.NoError(t, err)
	assert.Equal(t, []Effect{{pet.Muscle, 25}, {pet.Fun, 50}}, table)

	_, err = ParseTable([]config.PowerUpEntry{{Stat: "luck", Magnitude: 1}})
	assert.ErrorIs(t, err, pet.ErrUnknownStat)
}

func TestSpawn(t *testing.T) {
	table := []Effect{{pet.Muscle, 25}, {pet.Hygiene, 25}}
	f := newTestField(t, table)

	for i := 1; i <= 20; i++ {
		p := f.Spawn(at(0))
		assert.Equal(t, uint64(i), p.ID, "ids increase and are never reused")
		assert.Contains(t, table, p.Effect)
		assert.True(t, p.X >= testBounds.MinX && p.X <= testBounds.MaxX)
		assert.True(t, p.Y >= testBounds.MinY && p.Y <= testBounds.MaxY)
		assert.Equal(t, at(5000), p.ExpiresAt)
	}
	assert.Equal(t, 20, f.Len())
}

func TestCollectBeforeExpiry(t *testing.T) {
	f := newTestField(t, []Effect{{pet.Fun, 25}})
	p := f.Spawn(at(0))

	effect, ok := f.Collect(p.ID, at(4999))
	assert.True(t, ok)
	assert.Equal(t, Effect{pet.Fun, 25}, effect)
	assert.False(t, live(f, p.ID))
}

func TestCollectAtOrAfterExpiry(t *testing.T) {
	tests := []struct {
		name string
		when time.Time
	}{
		{"exactly at expiry", at(5000)},
		{"after expiry", at(5001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(t, []Effect{{pet.Fun, 25}})
			p := f.Spawn(at(0))

			_, ok := f.Collect(p.ID, tt.when)
			assert.False(t, ok)
			assert.False(t, live(f, p.ID), "a late collect still removes the power-up")
		})
	}
}

func TestCollectTwice(t *testing.T) {
	f := newTestField(t, []Effect{{pet.Fun, 25}})
	p := f.Spawn(at(0))

	_, ok := f.Collect(p.ID, at(100))
	require.True(t, ok)
	_, ok = f.Collect(p.ID, at(200))
	assert.False(t, ok)
}

func TestExpire(t *testing.T) {
	f := newTestField(t, []Effect{{pet.Fun, 25}})
	a := f.Spawn(at(0))
	b := f.Spawn(at(0))

	assert.True(t, f.Expire(a.ID))
	assert.False(t, f.Expire(a.ID), "expiring twice is a no-op")
	assert.True(t, live(f, b.ID), "expiry touches only its own power-up")
	assert.Equal(t, 1, f.Len())

	_, ok := f.Collect(a.ID, at(100))
	assert.False(t, ok)
}

func TestActiveAndClear(t *testing.T) {
	f := newTestField(t, []Effect{{pet.Fun, 25}})
	for i := 0; i < 3; i++ {
		f.Spawn(at(i * 1000))
	}
	f.Collect(2, at(2500))

	active := f.Active()
	require.Len(t, active, 2)
	assert.Equal(t, uint64(1), active[0].ID)
	assert.Equal(t, uint64(3), active[1].ID)
	assert.Equal(t, 2*time.Second, active[1].Remaining(at(5000)))
	assert.Equal(t, time.Duration(0), active[0].Remaining(at(9000)))

	assert.Equal(t, []uint64{1, 3}, f.Clear())
	assert.Equal(t, 0, f.Len())
	assert.Empty(t, f.Active())
}

func live(f *Field, id uint64) bool {
	for _, p := range f.Active() {
		if p.ID == id {
			return true
		}
	}
	return false
}

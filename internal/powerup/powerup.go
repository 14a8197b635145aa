// Package powerup spawns timed collectible stat bonuses.
package powerup

import (
	"fmt"
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/mlange-42/ark/ecs"

	"petgame/internal/config"
	"petgame/internal/pet"
)

// Effect is the stat bonus a power-up grants.
type Effect struct {
	Stat      pet.Stat `json:"stat"`
	Magnitude int      `json:"magnitude"`
}

// ParseTable converts the configured spawn table.
func ParseTable(entries []config.PowerUpEntry) ([]Effect, error) {
	table := make([]Effect, 0, len(entries))
	for i, e := range entries {
		stat, err := pet.ParseStat(e.Stat)
		if err != nil {
			return nil, fmt.Errorf("power-up table entry %d: %w", i, err)
		}
		table = append(table, Effect{Stat: stat, Magnitude: e.Magnitude})
	}
	return table, nil
}

// Position is a power-up's location in scene pixels.
type Position struct {
	X, Y int
}

// Bonus is the power-up component.
type Bonus struct {
	ID        uint64
	Effect    Effect
	SpawnedAt time.Time
	ExpiresAt time.Time
}

// PowerUp is a read-only view of a live power-up.
type PowerUp struct {
	ID        uint64    `json:"id"`
	Effect    Effect    `json:"effect"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	SpawnedAt time.Time `json:"spawned_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Remaining returns the time left before expiry at now.
func (p PowerUp) Remaining(now time.Time) time.Duration {
	return max(0, p.ExpiresAt.Sub(now))
}

// Field is the registry of live power-ups, keyed by stable id.
type Field struct {
	world    *ecs.World
	mapper   *ecs.Map2[Position, Bonus]
	filter   *ecs.Filter2[Position, Bonus]
	index    map[uint64]ecs.Entity
	table    []Effect
	bounds   config.Bounds
	lifetime time.Duration
	rng      *rand.Rand
	nextID   uint64
}

// NewField registers the power-up components on world. table must not be empty.
func NewField(world *ecs.World, table []Effect, bounds config.Bounds, lifetime time.Duration, rng *rand.Rand) *Field {
	return &Field{
		world:    world,
		mapper:   ecs.NewMap2[Position, Bonus](world),
		filter:   ecs.NewFilter2[Position, Bonus](world),
		index:    make(map[uint64]ecs.Entity),
		table:    table,
		bounds:   bounds,
		lifetime: lifetime,
		rng:      rng,
	}
}

// Spawn creates a power-up with a uniformly chosen effect and position.
func (f *Field) Spawn(now time.Time) PowerUp {
	f.nextID++
	pos := Position{
		X: between(f.rng, f.bounds.MinX, f.bounds.MaxX),
		Y: between(f.rng, f.bounds.MinY, f.bounds.MaxY),
	}
	bonus := Bonus{
		ID:        f.nextID,
		Effect:    f.table[f.rng.Intn(len(f.table))],
		SpawnedAt: now,
		ExpiresAt: now.Add(f.lifetime),
	}
	f.index[bonus.ID] = f.mapper.NewEntity(&pos, &bonus)
	log.Printf("Power-up %d spawned: +%d %s", bonus.ID, bonus.Effect.Magnitude, bonus.Effect.Stat)
	return view(&pos, &bonus)
}

// Collect claims power-up id at now. It succeeds only while the power-up is
// live and unexpired; either way the power-up is gone afterwards.
func (f *Field) Collect(id uint64, now time.Time) (Effect, bool) {
	e, ok := f.index[id]
	if !ok {
		return Effect{}, false
	}
	_, bonus := f.mapper.Get(e)
	effect, expiresAt := bonus.Effect, bonus.ExpiresAt
	f.remove(id)

	if !now.Before(expiresAt) {
		log.Printf("Power-up %d collected after expiry, ignoring", id)
		return Effect{}, false
	}
	return effect, true
}

// Expire removes power-up id. It reports false if it was already gone.
func (f *Field) Expire(id uint64) bool {
	if _, ok := f.index[id]; !ok {
		return false
	}
	f.remove(id)
	log.Printf("Power-up %d expired", id)
	return true
}

func (f *Field) remove(id uint64) {
	e := f.index[id]
	delete(f.index, id)
	if f.world.Alive(e) {
		f.world.RemoveEntity(e)
	}
}

// Len returns the number of live power-ups.
func (f *Field) Len() int {
	return len(f.index)
}

// Clear removes every power-up and returns their ids.
func (f *Field) Clear() []uint64 {
	ids := make([]uint64, 0, len(f.index))
	for id := range f.index {
		ids = append(ids, id)
	}
	for _, id := range ids {
		f.remove(id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Active returns the live power-ups ordered by id.
func (f *Field) Active() []PowerUp {
	var out []PowerUp
	query := f.filter.Query()
	for query.Next() {
		pos, bonus := query.Get()
		out = append(out, view(pos, bonus))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func view(pos *Position, bonus *Bonus) PowerUp {
	return PowerUp{
		ID:        bonus.ID,
		Effect:    bonus.Effect,
		X:         pos.X,
		Y:         pos.Y,
		SpawnedAt: bonus.SpawnedAt,
		ExpiresAt: bonus.ExpiresAt,
	}
}

func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Package clutter derives poo piles from the hygiene stat.
package clutter

import (
	"log"
	"math/rand"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"petgame/internal/config"
	"petgame/internal/pet"
)

// Step is the hygiene deficit that adds one pile.
const Step = 20

// Target returns the number of piles a hygiene value calls for.
func Target(hygiene int) int {
	return max(0, (pet.MaxStat-hygiene)/Step)
}

// Reconcile returns how many piles must be created so that current reaches
// the target for hygiene. It never asks for removals.
func Reconcile(current, hygiene int) int {
	return max(0, Target(hygiene)-current)
}

// Position is a pile's location in scene pixels.
type Position struct {
	X, Y int
}

// Poo is the pile component. Seq orders piles by creation.
type Poo struct {
	Seq   uint64
	Scale int
}

// Item is a read-only view of one pile.
type Item struct {
	Seq   uint64 `json:"seq"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Scale int    `json:"scale"`
}

// Pile is the registry of live piles.
type Pile struct {
	world    *ecs.World
	mapper   *ecs.Map2[Position, Poo]
	filter   *ecs.Filter2[Position, Poo]
	bounds   config.Bounds
	minScale int
	maxScale int
	rng      *rand.Rand
	seq      uint64
}

// NewPile registers the pile components on world.
func NewPile(world *ecs.World, cfg config.ClutterConfig, rng *rand.Rand) *Pile {
	return &Pile{
		world:    world,
		mapper:   ecs.NewMap2[Position, Poo](world),
		filter:   ecs.NewFilter2[Position, Poo](world),
		bounds:   cfg.Bounds,
		minScale: cfg.MinScale,
		maxScale: cfg.MaxScale,
		rng:      rng,
	}
}

// Len returns the number of live piles.
func (p *Pile) Len() int {
	n := 0
	query := p.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Sync creates the piles hygiene calls for and returns how many were added.
func (p *Pile) Sync(hygiene int) int {
	n := Reconcile(p.Len(), hygiene)
	for i := 0; i < n; i++ {
		p.add()
	}
	if n > 0 {
		log.Printf("Added %d poo piles (hygiene %d)", n, hygiene)
	}
	return n
}

func (p *Pile) add() {
	p.seq++
	pos := Position{
		X: between(p.rng, p.bounds.MinX, p.bounds.MaxX),
		Y: between(p.rng, p.bounds.MinY, p.bounds.MaxY),
	}
	poo := Poo{Seq: p.seq, Scale: between(p.rng, p.minScale, p.maxScale)}
	p.mapper.NewEntity(&pos, &poo)
}

// RemoveFirst removes the oldest pile. It reports false when there is none.
func (p *Pile) RemoveFirst() bool {
	var (
		first ecs.Entity
		seq   uint64
		found bool
	)
	query := p.filter.Query()
	for query.Next() {
		_, poo := query.Get()
		if !found || poo.Seq < seq {
			first, seq, found = query.Entity(), poo.Seq, true
		}
	}
	if !found {
		return false
	}
	p.world.RemoveEntity(first)
	return true
}

// Clear removes every pile.
func (p *Pile) Clear() {
	var doomed []ecs.Entity
	query := p.filter.Query()
	for query.Next() {
		doomed = append(doomed, query.Entity())
	}
	for _, e := range doomed {
		p.world.RemoveEntity(e)
	}
}

// Items returns the live piles in creation order.
func (p *Pile) Items() []Item {
	var items []Item
	query := p.filter.Query()
	for query.Next() {
		pos, poo := query.Get()
		items = append(items, Item{Seq: poo.Seq, X: pos.X, Y: pos.Y, Scale: poo.Scale})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Seq < items[j].Seq })
	return items
}

func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Package journal keeps the session's event history and per-life care record.
package journal

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"petgame/internal/pet"
)

// Kind classifies a journal entry.
type Kind string

// Entry kinds
const (
	KindBirth            Kind = "birth"
	KindRebirth          Kind = "rebirth"
	KindNirvana          Kind = "nirvana"
	KindPowerUpSpawned   Kind = "powerup_spawned"
	KindPowerUpCollected Kind = "powerup_collected"
	KindPowerUpExpired   Kind = "powerup_expired"
	KindExport           Kind = "export"
)

// MaxCheckpointsPerLife bounds the care samples kept for one life.
const MaxCheckpointsPerLife = 500

// Entry is one recorded event.
type Entry struct {
	Time     time.Time `json:"time"`
	Kind     Kind      `json:"kind"`
	Life     int       `json:"life"` // rebirth count when the event happened
	Creature string    `json:"creature"`
	Stat     pet.Stat  `json:"stat,omitempty"`
	Value    int       `json:"value,omitempty"`
	Detail   string    `json:"detail,omitempty"`
}

// CareQuality holds the average stats over one life.
type CareQuality struct {
	Life         int     `json:"life"`
	Samples      int     `json:"samples"`
	Hygiene      float64 `json:"hygiene"`
	Fun          float64 `json:"fun"`
	Muscle       float64 `json:"muscle"`
	Intelligence float64 `json:"intelligence"`
}

// OverallAverage returns the mean of the four stat averages.
func (cq CareQuality) OverallAverage() float64 {
	return stat.Mean([]float64{cq.Hygiene, cq.Fun, cq.Muscle, cq.Intelligence}, nil)
}

// Journal is the in-memory session history. It is discarded with the session.
type Journal struct {
	entries     []Entry
	checkpoints map[int][]pet.Stats
}

// New returns an empty journal.
func New() *Journal {
	return &Journal{checkpoints: make(map[int][]pet.Stats)}
}

// Record appends an entry.
func (j *Journal) Record(e Entry) {
	j.entries = append(j.entries, e)
}

// Entries returns a copy of every entry in recording order.
func (j *Journal) Entries() []Entry {
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Count returns how many entries of kind were recorded.
func (j *Journal) Count(kind Kind) int {
	n := 0
	for _, e := range j.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Checkpoint records a stat sample for life.
func (j *Journal) Checkpoint(life int, s pet.Stats) {
	samples := append(j.checkpoints[life], s)
	if len(samples) > MaxCheckpointsPerLife {
		samples = samples[len(samples)-MaxCheckpointsPerLife:]
	}
	j.checkpoints[life] = samples
}

// Care returns the average stats recorded for life.
func (j *Journal) Care(life int) CareQuality {
	samples := j.checkpoints[life]
	cq := CareQuality{Life: life, Samples: len(samples)}
	if len(samples) == 0 {
		return cq
	}

	series := make(map[pet.Stat][]float64, len(pet.AllStats))
	for _, s := range samples {
		s.Each(func(st pet.Stat, v int) {
			series[st] = append(series[st], float64(v))
		})
	}
	cq.Hygiene = stat.Mean(series[pet.Hygiene], nil)
	cq.Fun = stat.Mean(series[pet.Fun], nil)
	cq.Muscle = stat.Mean(series[pet.Muscle], nil)
	cq.Intelligence = stat.Mean(series[pet.Intelligence], nil)
	return cq
}

// CareHistory returns the care record of every life with samples, oldest first.
func (j *Journal) CareHistory() []CareQuality {
	lives := make([]int, 0, len(j.checkpoints))
	for life := range j.checkpoints {
		lives = append(lives, life)
	}
	sort.Ints(lives)

	out := make([]CareQuality, 0, len(lives))
	for _, life := range lives {
		out = append(out, j.Care(life))
	}
	return out
}

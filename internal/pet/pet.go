package pet

import (
	"errors"
	"fmt"
)

// ErrUnknownStat is returned for stat names outside AllStats.
var ErrUnknownStat = errors.New("unknown stat")

// Stat names one of the creature's tracked stats.
type Stat string

// ParseStat validates a stat name.
func ParseStat(name string) (Stat, error) {
	s := Stat(name)
	for _, known := range AllStats {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStat, name)
}

// Stats holds the creature's stat values. Every value stays in [MinStat, MaxStat].
// The zero value is a valid all-zero set.
type Stats struct {
	Hygiene      int `json:"hygiene"`
	Fun          int `json:"fun"`
	Muscle       int `json:"muscle"`
	Intelligence int `json:"intelligence"`
}

// NewStats returns a set with every stat at value (clamped).
func NewStats(value int) Stats {
	var s Stats
	s.Reset(value)
	return s
}

func (s *Stats) field(stat Stat) (*int, error) {
	switch stat {
	case Hygiene:
		return &s.Hygiene, nil
	case Fun:
		return &s.Fun, nil
	case Muscle:
		return &s.Muscle, nil
	case Intelligence:
		return &s.Intelligence, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStat, stat)
}

// Get returns the value of stat.
func (s Stats) Get(stat Stat) (int, error) {
	p, err := s.field(stat)
	if err != nil {
		return 0, err
	}
	return *p, nil
}

// Increase adds amount to stat and clamps the result. Amount may be negative.
func (s *Stats) Increase(stat Stat, amount int) (int, error) {
	p, err := s.field(stat)
	if err != nil {
		return 0, err
	}
	*p = clamp(*p + amount)
	return *p, nil
}

// Reset sets every stat to value (clamped).
func (s *Stats) Reset(value int) {
	v := clamp(value)
	s.Hygiene = v
	s.Fun = v
	s.Muscle = v
	s.Intelligence = v
}

// Saturated returns the first stat in order that has reached MaxStat.
// Stats missing from order are never reported.
func (s Stats) Saturated(order []Stat) (Stat, bool) {
	for _, stat := range order {
		if v, err := s.Get(stat); err == nil && v >= MaxStat {
			return stat, true
		}
	}
	return "", false
}

// Each calls fn for every stat in AllStats order.
func (s Stats) Each(fn func(Stat, int)) {
	for _, stat := range AllStats {
		v, _ := s.Get(stat)
		fn(stat, v)
	}
}

func clamp(v int) int {
	return max(MinStat, min(v, MaxStat))
}

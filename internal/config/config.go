// Package config loads game balance from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"petgame/internal/pet"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of a game session.
type Config struct {
	Stats    StatsConfig    `yaml:"stats"`
	Rebirth  RebirthConfig  `yaml:"rebirth"`
	Timers   TimersConfig   `yaml:"timers"`
	Scene    SceneConfig    `yaml:"scene"`
	Creature CreatureConfig `yaml:"creature"`
	Names    NamesConfig    `yaml:"names"`
	Clutter  ClutterConfig  `yaml:"clutter"`
	PowerUps PowerUpsConfig `yaml:"powerups"`
}

// StatsConfig holds stat starting values and increments.
type StatsConfig struct {
	Initial        int         `yaml:"initial"`
	Increment      int         `yaml:"increment"`       // feed, play, study
	CleanIncrement int         `yaml:"clean_increment"` // clean only
	Decay          DecayConfig `yaml:"decay"`
}

// DecayConfig drains every stat periodically. Interval 0 disables it.
type DecayConfig struct {
	Interval time.Duration `yaml:"interval"`
	Amount   int           `yaml:"amount"`
}

// RebirthConfig controls the rebirth state machine.
type RebirthConfig struct {
	Baseline         int      `yaml:"baseline"`          // stats after a rebirth (older builds used 1)
	NirvanaThreshold int      `yaml:"nirvana_threshold"` // rebirths before the session ends
	TieBreak         []string `yaml:"tie_break"`         // order used when several stats saturate at once
}

// TimersConfig holds the coordinator delays.
type TimersConfig struct {
	IdleDelay       time.Duration `yaml:"idle_delay"`
	PowerUpInterval time.Duration `yaml:"powerup_interval"`
	PowerUpLifetime time.Duration `yaml:"powerup_lifetime"`
	Tick            time.Duration `yaml:"tick"`
}

// SceneConfig is the logical play area in pixels.
type SceneConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Range is an inclusive integer range.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Bounds is an inclusive rectangle.
type Bounds struct {
	MinX int `yaml:"min_x"`
	MaxX int `yaml:"max_x"`
	MinY int `yaml:"min_y"`
	MaxY int `yaml:"max_y"`
}

// CreatureConfig drives the descriptor generator.
type CreatureConfig struct {
	BodyOptions     []string `yaml:"body_options"`
	EyeOptions      []string `yaml:"eye_options"`
	MouthOptions    []string `yaml:"mouth_options"`
	SadMouth        string   `yaml:"sad_mouth"`
	BodyRadius      float64  `yaml:"body_radius"`
	RotationJitter  float64  `yaml:"rotation_jitter"`   // degrees
	LimbMouthChance float64  `yaml:"limb_mouth_chance"` // probability per limb
	Limbs           Range    `yaml:"limbs"`
	Eyes            Range    `yaml:"eyes"`
	Mouths          Range    `yaml:"mouths"`
	EyeBounds       Bounds   `yaml:"eye_bounds"`
	MouthBounds     Bounds   `yaml:"mouth_bounds"`
}

// NamesConfig drives syllable name generation.
type NamesConfig struct {
	Default      string   `yaml:"default"`
	MinSyllables int      `yaml:"min_syllables"`
	MaxSyllables int      `yaml:"max_syllables"`
	SpaceChance  float64  `yaml:"space_chance"`
	Syllables    []string `yaml:"syllables"`
}

// ClutterConfig places poo piles.
type ClutterConfig struct {
	Bounds   Bounds `yaml:"bounds"`
	MinScale int    `yaml:"min_scale"`
	MaxScale int    `yaml:"max_scale"`
}

// PowerUpsConfig holds the spawn table.
type PowerUpsConfig struct {
	Bounds Bounds         `yaml:"bounds"`
	Table  []PowerUpEntry `yaml:"table"`
}

// PowerUpEntry is one row of the spawn table.
type PowerUpEntry struct {
	Stat      string `yaml:"stat"`
	Magnitude int    `yaml:"magnitude"`
}

// Default returns the embedded defaults.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		// The embedded file is part of the binary; a parse failure is a build defect.
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(inStatRange(c.Stats.Initial), "stats.initial %d out of range", c.Stats.Initial)
	check(c.Stats.Increment > 0, "stats.increment must be positive")
	check(c.Stats.CleanIncrement > 0, "stats.clean_increment must be positive")
	check(c.Stats.Decay.Interval >= 0, "stats.decay.interval must not be negative")
	check(c.Stats.Decay.Amount >= 0, "stats.decay.amount must not be negative")

	check(inStatRange(c.Rebirth.Baseline), "rebirth.baseline %d out of range", c.Rebirth.Baseline)
	check(c.Rebirth.Baseline < pet.MaxStat, "rebirth.baseline must be below %d", pet.MaxStat)
	check(c.Rebirth.NirvanaThreshold > 0, "rebirth.nirvana_threshold must be positive")
	if _, err := c.TieBreakOrder(); err != nil {
		errs = append(errs, err)
	}

	check(c.Timers.IdleDelay > 0, "timers.idle_delay must be positive")
	check(c.Timers.PowerUpInterval > 0, "timers.powerup_interval must be positive")
	check(c.Timers.PowerUpLifetime > 0, "timers.powerup_lifetime must be positive")
	check(c.Timers.Tick > 0, "timers.tick must be positive")

	cr := c.Creature
	check(len(cr.BodyOptions) > 0, "creature.body_options is empty")
	check(len(cr.EyeOptions) > 0, "creature.eye_options is empty")
	check(len(cr.MouthOptions) > 0, "creature.mouth_options is empty")
	check(validRange(cr.Limbs) && cr.Limbs.Min >= 1, "creature.limbs %+v invalid", cr.Limbs)
	check(validRange(cr.Eyes), "creature.eyes %+v invalid", cr.Eyes)
	check(validRange(cr.Mouths), "creature.mouths %+v invalid", cr.Mouths)
	check(validBounds(cr.EyeBounds), "creature.eye_bounds %+v invalid", cr.EyeBounds)
	check(validBounds(cr.MouthBounds), "creature.mouth_bounds %+v invalid", cr.MouthBounds)
	check(cr.BodyRadius > 0, "creature.body_radius must be positive")
	check(probability(cr.LimbMouthChance), "creature.limb_mouth_chance must be in [0,1]")

	n := c.Names
	check(n.MinSyllables >= 1 && n.MinSyllables <= n.MaxSyllables, "names syllable range [%d,%d] invalid", n.MinSyllables, n.MaxSyllables)
	check(probability(n.SpaceChance), "names.space_chance must be in [0,1]")

	check(validBounds(c.Clutter.Bounds), "clutter.bounds %+v invalid", c.Clutter.Bounds)
	check(c.Clutter.MinScale >= 1 && c.Clutter.MinScale <= c.Clutter.MaxScale, "clutter scale range invalid")

	check(validBounds(c.PowerUps.Bounds), "powerups.bounds %+v invalid", c.PowerUps.Bounds)
	check(len(c.PowerUps.Table) > 0, "powerups.table is empty")
	for i, e := range c.PowerUps.Table {
		if _, err := pet.ParseStat(e.Stat); err != nil {
			errs = append(errs, fmt.Errorf("powerups.table[%d]: %w", i, err))
		}
		check(e.Magnitude > 0, "powerups.table[%d].magnitude must be positive", i)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// TieBreakOrder parses rebirth.tie_break. It must name every stat exactly once.
func (c Config) TieBreakOrder() ([]pet.Stat, error) {
	if len(c.Rebirth.TieBreak) != len(pet.AllStats) {
		return nil, fmt.Errorf("rebirth.tie_break must list all %d stats", len(pet.AllStats))
	}
	seen := make(map[pet.Stat]bool, len(pet.AllStats))
	order := make([]pet.Stat, 0, len(pet.AllStats))
	for _, name := range c.Rebirth.TieBreak {
		s, err := pet.ParseStat(name)
		if err != nil {
			return nil, fmt.Errorf("rebirth.tie_break: %w", err)
		}
		if seen[s] {
			return nil, fmt.Errorf("rebirth.tie_break: %s listed twice", s)
		}
		seen[s] = true
		order = append(order, s)
	}
	return order, nil
}

// GeneratorConfig converts the creature and name sections for pet.NewGenerator.
func (c Config) GeneratorConfig() pet.GeneratorConfig {
	cr := c.Creature
	return pet.GeneratorConfig{
		BodyOptions:     cr.BodyOptions,
		EyeOptions:      cr.EyeOptions,
		MouthOptions:    cr.MouthOptions,
		SadMouth:        cr.SadMouth,
		BodyRadius:      cr.BodyRadius,
		RotationJitter:  cr.RotationJitter,
		LimbMouthChance: cr.LimbMouthChance,
		Limbs:           pet.Span{Min: cr.Limbs.Min, Max: cr.Limbs.Max},
		Eyes:            pet.Span{Min: cr.Eyes.Min, Max: cr.Eyes.Max},
		Mouths:          pet.Span{Min: cr.Mouths.Min, Max: cr.Mouths.Max},
		EyeArea:         pet.Area{MinX: cr.EyeBounds.MinX, MaxX: cr.EyeBounds.MaxX, MinY: cr.EyeBounds.MinY, MaxY: cr.EyeBounds.MaxY},
		MouthArea:       pet.Area{MinX: cr.MouthBounds.MinX, MaxX: cr.MouthBounds.MaxX, MinY: cr.MouthBounds.MinY, MaxY: cr.MouthBounds.MaxY},
		DefaultName:     c.Names.Default,
		Syllables:       pet.Span{Min: c.Names.MinSyllables, Max: c.Names.MaxSyllables},
		SpaceChance:     c.Names.SpaceChance,
	}
}

func inStatRange(v int) bool {
	return v >= pet.MinStat && v <= pet.MaxStat
}

func validRange(r Range) bool {
	return r.Min >= 0 && r.Min <= r.Max
}

func validBounds(b Bounds) bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

func probability(p float64) bool {
	return p >= 0 && p <= 1
}

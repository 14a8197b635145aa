package pet

import (
	"log"
	"math"
	"math/rand"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is an inclusive count range.
type Span struct {
	Min, Max int
}

// Area is an inclusive pixel-offset rectangle relative to the body centre.
type Area struct {
	MinX, MaxX, MinY, MaxY int
}

// Limb is one appendage placed around the body radius.
type Limb struct {
	Index    int     `json:"index"`
	Angle    float64 `json:"angle"`    // degrees around the body
	X        float64 `json:"x"`        // offset from body centre
	Y        float64 `json:"y"`        // offset from body centre
	Rotation float64 `json:"rotation"` // degrees, Angle plus a random offset
	Mouth    string  `json:"mouth,omitempty"`
}

// Part is an eye or mouth mounted on the body.
type Part struct {
	Style string `json:"style"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// Descriptor describes a creature's visual parts. It is immutable once generated.
type Descriptor struct {
	Name     string `json:"name"`
	Body     string `json:"body"`
	BodySeed int64  `json:"body_seed"`
	Limbs    []Limb `json:"limbs"`
	Eyes     []Part `json:"eyes"`
	Mouths   []Part `json:"mouths"`

	sadMouth string
}

// MouthStyle returns the style to draw for a mouth given the current mood.
// A sad creature draws every mouth with the sad style.
func (d Descriptor) MouthStyle(style string, mood Mood) string {
	if mood == MoodSad && d.sadMouth != "" {
		return d.sadMouth
	}
	return style
}

// Clone returns a copy that shares no slices with d.
func (d Descriptor) Clone() Descriptor {
	d.Limbs = slices.Clone(d.Limbs)
	d.Eyes = slices.Clone(d.Eyes)
	d.Mouths = slices.Clone(d.Mouths)
	return d
}

// SyllableSource supplies the syllables used for names.
type SyllableSource interface {
	Syllables() []string
}

// SyllableList is a fixed SyllableSource.
type SyllableList []string

// Syllables implements SyllableSource.
func (l SyllableList) Syllables() []string {
	return l
}

// GeneratorConfig bounds every random draw of the generator.
type GeneratorConfig struct {
	BodyOptions     []string
	EyeOptions      []string
	MouthOptions    []string
	SadMouth        string
	BodyRadius      float64
	RotationJitter  float64
	LimbMouthChance float64
	Limbs           Span
	Eyes            Span
	Mouths          Span
	EyeArea         Area
	MouthArea       Area
	DefaultName     string
	Syllables       Span
	SpaceChance     float64
}

// Generator produces creature descriptors from an injected random source.
type Generator struct {
	cfg       GeneratorConfig
	syllables SyllableSource
	rng       *rand.Rand
	generated int
}

// NewGenerator creates a generator. rng must not be shared with other goroutines.
func NewGenerator(cfg GeneratorConfig, syllables SyllableSource, rng *rand.Rand) *Generator {
	if syllables == nil {
		syllables = SyllableList(nil)
	}
	return &Generator{cfg: cfg, syllables: syllables, rng: rng}
}

// Generate draws a new descriptor from the generator's random source.
func (g *Generator) Generate() Descriptor {
	g.generated++
	return g.generate(g.rng)
}

// Generated returns how many descriptors Generate has drawn.
func (g *Generator) Generated() int {
	return g.generated
}

// GenerateSeeded draws a descriptor from a fresh source seeded with seed.
// The same seed and configuration always yield the same descriptor.
func (g *Generator) GenerateSeeded(seed int64) Descriptor {
	return g.generate(rand.New(rand.NewSource(seed)))
}

func (g *Generator) generate(rng *rand.Rand) Descriptor {
	cfg := g.cfg
	d := Descriptor{
		Body:     pick(rng, cfg.BodyOptions),
		BodySeed: rng.Int63(),
		sadMouth: cfg.SadMouth,
	}

	limbCount := between(rng, cfg.Limbs.Min, cfg.Limbs.Max)
	if limbCount > 0 {
		step := 360.0 / float64(limbCount)
		d.Limbs = make([]Limb, 0, limbCount)
		for i := 0; i < limbCount; i++ {
			angle := float64(i) * step
			rad := angle * math.Pi / 180
			limb := Limb{
				Index:    i,
				Angle:    angle,
				X:        math.Cos(rad) * cfg.BodyRadius,
				Y:        math.Sin(rad) * cfg.BodyRadius,
				Rotation: angle + (rng.Float64()*2-1)*cfg.RotationJitter,
			}
			if rng.Float64() < cfg.LimbMouthChance {
				limb.Mouth = pick(rng, cfg.MouthOptions)
			}
			d.Limbs = append(d.Limbs, limb)
		}
	}

	d.Eyes = parts(rng, between(rng, cfg.Eyes.Min, cfg.Eyes.Max), cfg.EyeOptions, cfg.EyeArea)
	d.Mouths = parts(rng, between(rng, cfg.Mouths.Min, cfg.Mouths.Max), cfg.MouthOptions, cfg.MouthArea)
	d.Name = g.name(rng)

	log.Printf("Generated creature %s: %d limbs, %d eyes, %d mouths", d.Name, len(d.Limbs), len(d.Eyes), len(d.Mouths))
	return d
}

func (g *Generator) name(rng *rand.Rand) string {
	syllables := g.syllables.Syllables()
	if len(syllables) == 0 {
		return g.cfg.DefaultName
	}

	count := between(rng, g.cfg.Syllables.Min, g.cfg.Syllables.Max)
	var b strings.Builder
	for i := 0; i < count; i++ {
		if i > 0 && rng.Float64() < g.cfg.SpaceChance {
			b.WriteByte(' ')
		}
		b.WriteString(pick(rng, syllables))
	}

	name := strings.TrimSpace(b.String())
	if name == "" {
		return g.cfg.DefaultName
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

func parts(rng *rand.Rand, count int, styles []string, area Area) []Part {
	out := make([]Part, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, Part{
			Style: pick(rng, styles),
			X:     between(rng, area.MinX, area.MaxX),
			Y:     between(rng, area.MinY, area.MaxY),
		})
	}
	return out
}

// between returns a uniform integer in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func pick(rng *rand.Rand, options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[rng.Intn(len(options))]
}

package ui

import (
	"math"
	"strings"

	"petgame/internal/pet"
)

const (
	creatureCols = 35
	creatureRows = 15
	bodyCols     = 8 // body radius in columns
	bodyRows     = 4 // body radius in rows; cells are about twice as tall as wide
)

var eyeGlyphs = map[string]rune{
	"dot":  'o',
	"slit": '-',
}

var mouthGlyphs = map[string]rune{
	"smile": 'u',
	"flat":  '=',
	"frown": 'n',
}

// creatureCanvas maps descriptor pixel offsets onto a character grid.
type creatureCanvas struct {
	grid   [][]rune
	radius float64
	tilt   float64 // degrees
}

func newCreatureCanvas(radius, tilt float64) *creatureCanvas {
	grid := make([][]rune, creatureRows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", creatureCols))
	}
	if radius <= 0 {
		radius = 1
	}
	return &creatureCanvas{grid: grid, radius: radius, tilt: tilt}
}

// put draws r at pixel offset (x, y) from the body centre, rotated by the tilt.
func (c *creatureCanvas) put(x, y float64, r rune) {
	if c.tilt != 0 {
		rad := c.tilt * math.Pi / 180
		x, y = x*math.Cos(rad)-y*math.Sin(rad), x*math.Sin(rad)+y*math.Cos(rad)
	}
	col := creatureCols/2 + int(math.Round(x/c.radius*bodyCols))
	row := creatureRows/2 + int(math.Round(y/c.radius*bodyRows))
	if row < 0 || row >= creatureRows || col < 0 || col >= creatureCols {
		return
	}
	c.grid[row][col] = r
}

func (c *creatureCanvas) String() string {
	lines := make([]string, len(c.grid))
	for i, row := range c.grid {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

// RenderCreature draws a descriptor as ASCII. Limbs sit around the body
// radius at their own angles; eyes and mouths at their pixel offsets.
func RenderCreature(d pet.Descriptor, mood pet.Mood, radius, tilt float64) string {
	c := newCreatureCanvas(radius, tilt)

	// Body outline
	for deg := 0.0; deg < 360; deg += 5 {
		rad := deg * math.Pi / 180
		c.put(math.Cos(rad)*radius, math.Sin(rad)*radius, lineGlyph(deg+90))
	}

	for _, limb := range d.Limbs {
		rad := limb.Angle * math.Pi / 180
		reach := 1.3 * radius
		c.put(math.Cos(rad)*reach, math.Sin(rad)*reach, lineGlyph(limb.Rotation))
		if limb.Mouth != "" {
			tip := 1.65 * radius
			c.put(math.Cos(rad)*tip, math.Sin(rad)*tip, glyph(mouthGlyphs, d.MouthStyle(limb.Mouth, mood)))
		}
	}

	for _, eye := range d.Eyes {
		c.put(float64(eye.X), float64(eye.Y), glyph(eyeGlyphs, eye.Style))
	}
	for _, mouth := range d.Mouths {
		c.put(float64(mouth.X), float64(mouth.Y), glyph(mouthGlyphs, d.MouthStyle(mouth.Style, mood)))
	}

	return c.String()
}

// lineGlyph picks the character closest to a line drawn at deg degrees
// (screen coordinates, y down).
func lineGlyph(deg float64) rune {
	d := math.Mod(deg, 180)
	if d < 0 {
		d += 180
	}
	switch {
	case d < 22.5 || d >= 157.5:
		return '-'
	case d < 67.5:
		return '\\'
	case d < 112.5:
		return '|'
	default:
		return '/'
	}
}

func glyph(table map[string]rune, style string) rune {
	if r, ok := table[style]; ok {
		return r
	}
	return '?'
}

package ui

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petgame/internal/config"
	"petgame/internal/pet"
)

func testDescriptor(t *testing.T) pet.Descriptor {
	t.Helper()
	cfg := config.Default()
	g := pet.NewGenerator(cfg.GeneratorConfig(), pet.SyllableList(cfg.Names.Syllables), rand.New(rand.NewSource(1)))
	d := g.Generate()
	d.Limbs = nil
	d.Eyes = []pet.Part{{Style: "dot", X: 0, Y: 0}}
	d.Mouths = []pet.Part{{Style: "smile", X: 0, Y: 25}}
	return d
}

func cell(art string, row, col int) rune {
	lines := strings.Split(art, "\n")
	if row >= len(lines) {
		return ' '
	}
	runes := []rune(lines[row])
	if col >= len(runes) {
		return ' '
	}
	return runes[col]
}

func TestRenderCreatureParts(t *testing.T) {
	d := testDescriptor(t)
	art := RenderCreature(d, pet.MoodNormal, 50, 0)

	require.Len(t, strings.Split(art, "\n"), creatureRows)
	assert.Equal(t, 'o', cell(art, creatureRows/2, creatureCols/2), "eye at the centre")
	assert.Equal(t, 'u', cell(art, creatureRows/2+2, creatureCols/2), "mouth below it")
	assert.Equal(t, '|', cell(art, creatureRows/2, creatureCols/2+bodyCols), "body outline at the radius")
}

func TestRenderCreatureSadMouth(t *testing.T) {
	d := testDescriptor(t)
	art := RenderCreature(d, pet.MoodSad, 50, 0)
	assert.Equal(t, 'n', cell(art, creatureRows/2+2, creatureCols/2))
}

func TestRenderCreatureUnknownStyle(t *testing.T) {
	d := testDescriptor(t)
	d.Eyes[0].Style = "laser"
	art := RenderCreature(d, pet.MoodNormal, 50, 0)
	assert.Equal(t, '?', cell(art, creatureRows/2, creatureCols/2))
}

func TestRenderCreatureLimbs(t *testing.T) {
	d := testDescriptor(t)
	d.Limbs = []pet.Limb{{Index: 0, Angle: 0, Rotation: 90, Mouth: "flat"}}
	art := RenderCreature(d, pet.MoodNormal, 50, 0)

	assert.Equal(t, '|', cell(art, creatureRows/2, creatureCols/2+10), "limb drawn past the body")
	assert.Equal(t, '=', cell(art, creatureRows/2, creatureCols/2+13), "limb mouth at the tip")
}

func TestRenderCreatureTiltStaysInGrid(t *testing.T) {
	cfg := config.Default()
	g := pet.NewGenerator(cfg.GeneratorConfig(), pet.SyllableList(cfg.Names.Syllables), rand.New(rand.NewSource(2)))
	for i := 0; i < 20; i++ {
		art := RenderCreature(g.Generate(), pet.MoodNormal, cfg.Creature.BodyRadius, 5)
		lines := strings.Split(art, "\n")
		require.Len(t, lines, creatureRows)
		for _, line := range lines {
			assert.LessOrEqual(t, len([]rune(line)), creatureCols)
		}
	}
}

func TestLineGlyph(t *testing.T) {
	tests := []struct {
		deg  float64
		want rune
	}{
		{0, '-'},
		{45, '\\'},
		{90, '|'},
		{135, '/'},
		{180, '-'},
		{-45, '/'},
		{270, '|'},
	}

	for _, tt := range tests {
		if got := lineGlyph(tt.deg); got != tt.want {
			t.Errorf("lineGlyph(%v) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}

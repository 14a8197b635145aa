package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"petgame/internal/pet"
)

func TestRenderCard(t *testing.T) {
	m := newTestModel(t)
	snap := m.Session.Snapshot(at(100))
	card := RenderCard(snap, 100)

	assert.True(t, strings.HasPrefix(card, "╔"))
	assert.Contains(t, card, snap.Creature.Name)
	assert.Contains(t, card, "Life:    0/100")
	assert.Contains(t, card, "Clutter:   2")
	assert.Contains(t, card, pet.StatusEmojiNormal+" Happy")
	assert.Contains(t, card, "[██░░░]  50%")
}

func TestCardModelQuitsOnKey(t *testing.T) {
	m := CardModel{}
	assert.Nil(t, m.Init())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotNil(t, cmd)
}

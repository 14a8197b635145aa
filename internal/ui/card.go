package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"petgame/internal/game"
	"petgame/internal/pet"
)

const cardWidth = 36

// CardModel is a simple Bubble Tea model for displaying a creature card
type CardModel struct {
	Snapshot  game.Snapshot
	Threshold int
}

// Init implements tea.Model
func (m CardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m CardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m CardModel) View() string {
	return RenderCard(m.Snapshot, m.Threshold) + "\nPress ESC, click, or any key to close..."
}

// RenderCard draws a boxed summary of a snapshot.
func RenderCard(snap game.Snapshot, threshold int) string {
	nirvana := snap.Phase == game.PhaseNirvana.String()
	emoji := pet.GetStatus(snap.Mood, snap.Idle, nirvana)
	row := func(s string) string {
		pad := cardWidth - 2 - lipgloss.Width(s)
		return "║  " + s + strings.Repeat(" ", max(0, pad)) + "║\n"
	}

	var s strings.Builder
	s.WriteString("╔" + strings.Repeat("═", cardWidth) + "╗\n")
	s.WriteString(row(fmt.Sprintf("%s %s %s", emoji, snap.Creature.Name, emoji)))
	s.WriteString("╠" + strings.Repeat("═", cardWidth) + "╣\n")
	s.WriteString(row(fmt.Sprintf("Life:    %d/%d", snap.Rebirths, threshold)))
	s.WriteString(row(fmt.Sprintf("Status:  %s", pet.GetStatusWithLabel(snap.Mood, snap.Idle, nirvana))))
	s.WriteString(row(fmt.Sprintf("Body:    %s, %d limbs", snap.Creature.Body, len(snap.Creature.Limbs))))
	s.WriteString(row(fmt.Sprintf("Face:    %d eyes, %d mouths", len(snap.Creature.Eyes), len(snap.Creature.Mouths))))
	s.WriteString(row(""))
	snap.Stats.Each(func(stat pet.Stat, v int) {
		s.WriteString(row(fmt.Sprintf("%-13s [%s] %3d%%", statLabel(stat)+":", makeBar(v, 5), v)))
	})
	s.WriteString(row(""))
	s.WriteString(row(fmt.Sprintf("Clutter:   %d", len(snap.Clutter))))
	s.WriteString(row(fmt.Sprintf("Power-ups: %d", len(snap.PowerUps))))
	if snap.Care.Samples > 0 {
		s.WriteString(row(fmt.Sprintf("Care:      %.0f%% (%d samples)", snap.Care.OverallAverage(), snap.Care.Samples)))
	}
	s.WriteString("╚" + strings.Repeat("═", cardWidth) + "╝\n")
	return s.String()
}

// DisplayCard shows the card until a key is pressed.
func DisplayCard(snap game.Snapshot, threshold int) error {
	program := tea.NewProgram(CardModel{Snapshot: snap, Threshold: threshold}, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running card display: %w", err)
	}
	return nil
}

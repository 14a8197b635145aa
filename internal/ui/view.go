package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"petgame/internal/game"
	"petgame/internal/pet"
)

const (
	yardCols = 48
	yardRows = 8
)

var gameStyles = struct {
	title   lipgloss.Style
	status  lipgloss.Style
	menu    lipgloss.Style
	menuBox lipgloss.Style
	stats   lipgloss.Style
	sad     lipgloss.Style
	yard    lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(50),

	stats: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(40),

	menu: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	menuBox: lipgloss.NewStyle().
		Padding(0, 2),

	sad: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7B9EFF")),

	yard: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#8B5A2B")),
}

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return "Thanks for playing!\n"
	}
	now := TimeNow()
	snap := m.Session.Snapshot(now)

	if m.Animation.Type != AnimNone {
		return m.renderAnimation(snap, now)
	}
	if snap.Phase == game.PhaseNirvana.String() {
		return m.nirvanaView(snap, now)
	}
	if m.ShowCard {
		return RenderCard(snap, m.Session.Config().Rebirth.NirvanaThreshold) + "\nPress i or Esc to close"
	}

	sections := []string{
		m.renderTitle(snap),
		"",
		m.renderStats(snap),
		"",
		m.renderCreature(snap, now),
		"",
		m.renderYard(snap),
	}
	if pu := m.renderPowerUps(snap, now); pu != "" {
		sections = append(sections, pu)
	}
	if msg := m.renderMessage(now); msg != "" {
		sections = append(sections, "", msg)
	}
	sections = append(sections,
		"",
		m.renderMenu(),
		"",
		gameStyles.status.Render("arrows/enter • f p c s • 1-9 grab power-up • x export • i card • q quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitle(snap game.Snapshot) string {
	emoji := pet.GetStatus(snap.Mood, snap.Idle, snap.Phase == game.PhaseNirvana.String())
	return gameStyles.title.Render(emoji + " " + snap.Creature.Name + " " + emoji)
}

func (m Model) renderStats(snap game.Snapshot) string {
	threshold := m.Session.Config().Rebirth.NirvanaThreshold
	lines := []string{
		fmt.Sprintf("%-13s %d/%d", "Rebirths:", snap.Rebirths, threshold),
		fmt.Sprintf("%-13s %s", "Status:", pet.GetStatusWithLabel(snap.Mood, snap.Idle, false)),
	}
	snap.Stats.Each(func(stat pet.Stat, v int) {
		lines = append(lines, fmt.Sprintf("%-13s [%s] %3d", statLabel(stat)+":", makeBar(v, 10), v))
	})
	return gameStyles.stats.Render(strings.Join(lines, "\n"))
}

func (m Model) renderCreature(snap game.Snapshot, now time.Time) string {
	var offset int
	var tilt float64
	if snap.Idle && !m.IdleSince.IsZero() {
		elapsed := now.Sub(m.IdleSince)
		offset = IdleOffset(elapsed)
		tilt = IdleTilt(elapsed)
	}
	art := RenderCreature(snap.Creature, snap.Mood, m.Session.Config().Creature.BodyRadius, tilt)
	// The bob lifts the creature by moving its blank line below it.
	if offset > 0 {
		art += "\n"
	} else {
		art = "\n" + art
	}
	if snap.Mood == pet.MoodSad {
		return gameStyles.sad.Render(art)
	}
	return gameStyles.menu.Render(art)
}

// renderYard scales clutter and power-up positions from scene pixels onto a
// small character grid.
func (m Model) renderYard(snap game.Snapshot) string {
	scene := m.Session.Config().Scene
	grid := make([][]rune, yardRows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", yardCols))
	}
	plot := func(x, y int, r rune) {
		col := min(yardCols-1, max(0, x*yardCols/max(1, scene.Width)))
		row := min(yardRows-1, max(0, y*yardRows/max(1, scene.Height)))
		grid[row][col] = r
	}

	for _, item := range snap.Clutter {
		r := '.'
		if item.Scale > 1 {
			r = '@'
		}
		plot(item.X, item.Y, r)
	}
	for i, p := range snap.PowerUps {
		r := '*'
		if i < 9 {
			r = rune('1' + i)
		}
		plot(p.X, p.Y, r)
	}

	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return gameStyles.yard.Render(strings.Join(lines, "\n"))
}

func (m Model) renderPowerUps(snap game.Snapshot, now time.Time) string {
	if len(snap.PowerUps) == 0 {
		return ""
	}
	var lines []string
	for i, p := range snap.PowerUps {
		if i >= 9 {
			break
		}
		lines = append(lines, fmt.Sprintf("[%d] ⭐ +%d %s (%.1fs)", i+1, p.Effect.Magnitude, p.Effect.Stat, p.Remaining(now).Seconds()))
	}
	return gameStyles.status.Render(strings.Join(lines, "\n"))
}

func (m Model) renderMessage(now time.Time) string {
	if m.Message == "" || !now.Before(m.MessageExpires) {
		return ""
	}
	return gameStyles.status.Render(m.Message)
}

func (m Model) renderMenu() string {
	var menuItems []string
	for i, choice := range menuChoices {
		cursor := " "
		if m.Choice == i {
			cursor = ">"
		}
		menuItems = append(menuItems, fmt.Sprintf("%s %s", cursor, choice))
	}
	return gameStyles.menuBox.Render(strings.Join(menuItems, "\n"))
}

func (m Model) renderAnimation(snap game.Snapshot, now time.Time) string {
	animStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700")).
		Bold(true).
		Padding(1, 2)

	sections := []string{
		m.renderTitle(snap),
		"",
		animStyle.Render(GetAnimationFrame(m.Animation)),
	}
	if msg := m.renderMessage(now); msg != "" {
		sections = append(sections, "", msg)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) nirvanaView(snap game.Snapshot, now time.Time) string {
	sections := []string{
		gameStyles.title.Render(pet.StatusEmojiNirvana + " " + snap.Creature.Name + " " + pet.StatusEmojiNirvana),
		"",
		gameStyles.status.Render(fmt.Sprintf("After %d lives, the cycle is complete.", snap.Rebirths)),
		gameStyles.status.Render(fmt.Sprintf("Overall care: %.0f%%", snap.Care.OverallAverage())),
		"",
		gameStyles.menu.Render(RenderCreature(snap.Creature, pet.MoodNormal, m.Session.Config().Creature.BodyRadius, 0)),
	}
	if msg := m.renderMessage(now); msg != "" {
		sections = append(sections, "", msg)
	}
	sections = append(sections, "", gameStyles.status.Render("x export journal • q quit"))
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

func makeBar(value, width int) string {
	filled := value * width / pet.MaxStat
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func statLabel(s pet.Stat) string {
	name := string(s)
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

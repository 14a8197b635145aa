// Package chase is a full-terminal view of the yard. The creature chases the
// nearest power-up and the player clicks power-ups to collect them.
package chase

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"petgame/internal/game"
	"petgame/internal/pet"
	"petgame/internal/powerup"
)

const (
	tickInterval   = 70 * time.Millisecond
	minVisibleRows = 6
	hitRadius      = 1 // cells around a power-up that count as a click on it
)

const (
	pooEmoji     = "💩"
	bigPooEmoji  = "🟤"
	powerUpEmoji = "⭐"
)

// getChaseEmoji returns the creature's emoji for its state and distance to its target
func getChaseEmoji(s game.Snapshot, distX, distY int, hasTarget bool) string {
	if s.Phase == game.PhaseNirvana.String() {
		return pet.StatusEmojiNirvana
	}
	if hasTarget && absInt(distX) <= 3 && absInt(distY) <= 1 {
		return "😻" // about to catch
	}
	return pet.GetStatus(s.Mood, s.Idle, false)
}

// Model is the Bubble Tea model for the yard
type Model struct {
	Session    *game.Session
	TermWidth  int
	TermHeight int
	PetPosX    int
	PetPosY    int
	Frame      int
	Message    string
}

type animTickMsg time.Time

// TimeNow is the clock used for clicks. Tests override it.
var TimeNow = time.Now

// Run shows the yard for s until a quit key is pressed
func Run(s *game.Session) error {
	program := tea.NewProgram(Model{Session: s}, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		log.Printf("Chase view error: %v", err)
		return fmt.Errorf("running chase view: %w", err)
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tick(),
		tea.EnterAltScreen,
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var intent game.Intent
		switch msg.String() {
		case "f":
			intent = game.IntentFeed
		case "p":
			intent = game.IntentPlay
		case "c":
			intent = game.IntentClean
		case "s":
			intent = game.IntentStudy
		default:
			return m, tea.Quit
		}
		if _, err := m.Session.Dispatch(intent, TimeNow()); err != nil {
			m.Message = err.Error()
		} else {
			m.Message = intent.String() + "!"
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.TermWidth = msg.Width
		m.TermHeight = msg.Height
		m.clampPositions()
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.click(msg.X, msg.Y)
		}
		return m, nil

	case animTickMsg:
		m.Frame++
		m.Session.Tick(time.Time(msg))

		if m.TermWidth == 0 || m.TermHeight == 0 {
			return m, tick()
		}

		// Move creature towards the nearest power-up every other frame
		if m.Frame%2 == 0 {
			targetX, targetY := m.home()
			if p, ok := m.nearestPowerUp(); ok {
				targetX, targetY = m.cellFor(p.X, p.Y)
			}
			distX := targetX - m.PetPosX
			distY := targetY - m.PetPosY

			if distX > 1 {
				m.PetPosX++
			} else if distX < -1 {
				m.PetPosX--
			}
			if distY > 0 {
				m.PetPosY++
			} else if distY < 0 {
				m.PetPosY--
			}
			m.clampPositions()
		}

		return m, tick()
	}

	return m, nil
}

// click collects the power-up under terminal cell (x, y), if any.
func (m *Model) click(x, y int) {
	now := TimeNow()
	for _, p := range m.Session.PowerUps() {
		col, row := m.cellFor(p.X, p.Y)
		if absInt(col-x) > hitRadius || absInt(row-y) > hitRadius {
			continue
		}
		effect, ok, err := m.Session.CollectPowerUp(p.ID, now)
		switch {
		case errors.Is(err, game.ErrNirvana):
			m.Message = "Nirvana has been reached"
		case err != nil:
			m.Message = err.Error()
		case !ok:
			m.Message = "Too late!"
		default:
			m.Message = fmt.Sprintf("+%d %s", effect.Magnitude, effect.Stat)
		}
		return
	}
}

// cellFor maps scene pixels onto the visible grid.
func (m Model) cellFor(x, y int) (int, int) {
	scene := m.Session.Config().Scene
	rows := m.visibleRows() - 1
	col := x * m.maxX() / max(1, scene.Width)
	row := y * rows / max(1, scene.Height)
	return min(max(col, 0), m.maxX()), min(max(row, 0), max(rows-1, 0))
}

func (m Model) home() (int, int) {
	return m.maxX() / 2, (m.visibleRows() - 1) / 2
}

func (m Model) nearestPowerUp() (powerup.PowerUp, bool) {
	var best powerup.PowerUp
	found := false
	bestDist := 0
	for _, p := range m.Session.PowerUps() {
		col, row := m.cellFor(p.X, p.Y)
		d := absInt(col-m.PetPosX) + absInt(row-m.PetPosY)
		if !found || d < bestDist {
			best, bestDist, found = p, d, true
		}
	}
	return best, found
}

// View implements tea.Model
func (m Model) View() string {
	if m.TermWidth == 0 || m.TermHeight == 0 {
		return "Initializing..."
	}

	rows := m.visibleRows()
	snap := m.Session.Snapshot(m.Session.Now())

	// Each cell holds one glyph; a wide emoji blanks the cell to its right.
	grid := make([][]string, rows-1)
	for y := range grid {
		grid[y] = make([]string, m.TermWidth)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	place := func(x, y int, glyph string) {
		if y < 0 || y >= len(grid) || x < 0 || x >= m.TermWidth-1 {
			return
		}
		grid[y][x] = glyph
		grid[y][x+1] = ""
	}

	for _, item := range snap.Clutter {
		glyph := pooEmoji
		if item.Scale > 1 {
			glyph = bigPooEmoji
		}
		x, y := m.cellFor(item.X, item.Y)
		place(x, y, glyph)
	}
	for _, p := range snap.PowerUps {
		x, y := m.cellFor(p.X, p.Y)
		place(x, y, powerUpEmoji)
	}

	target, hasTarget := m.nearestPowerUp()
	tx, ty := m.cellFor(target.X, target.Y)
	place(m.PetPosX, m.PetPosY, getChaseEmoji(snap, tx-m.PetPosX, ty-m.PetPosY, hasTarget))

	var result strings.Builder
	for _, row := range grid {
		result.WriteString(strings.Join(row, ""))
		result.WriteRune('\n')
	}

	status := fmt.Sprintf("%s  H%d F%d M%d I%d  life %d", snap.Creature.Name,
		snap.Stats.Hygiene, snap.Stats.Fun, snap.Stats.Muscle, snap.Stats.Intelligence, snap.Rebirths)
	if m.Message != "" {
		status += "  " + m.Message
	}
	result.WriteString(status)
	result.WriteString("\nClick a ⭐ to collect it • f p c s to care • any other key to exit")

	return result.String()
}

func (m *Model) clampPositions() {
	rows := m.visibleRows()
	if rows < 1 {
		return
	}

	if m.PetPosX < 0 {
		m.PetPosX = 0
	}
	if m.PetPosX >= m.maxX() {
		m.PetPosX = m.maxX()
	}

	if m.PetPosY < 0 {
		m.PetPosY = 0
	}
	if m.PetPosY >= rows-1 {
		m.PetPosY = rows - 2
	}
}

func (m Model) visibleRows() int {
	if m.TermHeight <= 0 {
		return 0
	}
	rows := m.TermHeight - 2 // leave space for the status lines
	if rows < minVisibleRows {
		rows = minVisibleRows
	}
	return rows
}

func (m Model) maxX() int {
	if m.TermWidth <= 2 {
		return 0
	}
	return m.TermWidth - 2
}

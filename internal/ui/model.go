package ui

import (
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"petgame/internal/game"
	"petgame/internal/journal"
)

// TimeNow is the clock used for player actions. Tests override it.
var TimeNow = time.Now

// MessageDuration is how long a notification stays on screen.
const MessageDuration = 3 * time.Second

// choiceExport is the menu index after the intents.
const choiceExport = 4

var menuChoices = []string{"Feed", "Play", "Clean", "Study", "Export", "Quit"}

// Model is the terminal front end of a session.
type Model struct {
	Session        *game.Session
	ExportDir      string // empty means journal.ExportDir()
	Choice         int
	Quitting       bool
	ShowCard       bool
	Message        string
	MessageExpires time.Time
	Animation      Animation
	IdleSince      time.Time
}

type tickMsg time.Time
type animTickMsg struct {
	started time.Time
}

// NewModel wraps a running session.
func NewModel(s *game.Session, exportDir string) Model {
	return Model{
		Session:   s,
		ExportDir: exportDir,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.Session.Config().Timers.Tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func animTick(start time.Time) tea.Cmd {
	return tea.Tick(AnimationFrameDuration, func(t time.Time) tea.Msg {
		return animTickMsg{started: start}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While an animation is playing, ignore inputs except quit keys
		if m.Animation.Type != AnimNone {
			switch msg.String() {
			case "ctrl+c", "q":
				m.Quitting = true
				return m, tea.Quit
			default:
				return m, nil
			}
		}

		switch key := msg.String(); key {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case "i":
			m.ShowCard = !m.ShowCard
		case "esc":
			m.ShowCard = false
		case "up", "k":
			if m.Choice > 0 {
				m.Choice--
			}
		case "down", "j":
			if m.Choice < len(menuChoices)-1 {
				m.Choice++
			}
		case "f":
			m.dispatch(game.IntentFeed)
		case "p":
			m.dispatch(game.IntentPlay)
		case "c":
			m.dispatch(game.IntentClean)
		case "s":
			m.dispatch(game.IntentStudy)
		case "x":
			m.export()
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.collect(int(key[0] - '1'))
		case "enter", " ":
			switch {
			case m.Choice < choiceExport:
				m.dispatch(game.Intents[m.Choice])
			case m.Choice == choiceExport:
				m.export()
			default:
				m.Quitting = true
				return m, tea.Quit
			}
		}

	case tickMsg:
		return m, m.advance(time.Time(msg))

	case animTickMsg:
		// Drop ticks that belong to an older animation
		if m.Animation.Type == AnimNone || !m.Animation.StartTime.Equal(msg.started) {
			return m, nil
		}

		m.Animation.Frame++
		if IsAnimationComplete(m.Animation) {
			m.Animation = Animation{}
			return m, nil
		}

		return m, animTick(m.Animation.StartTime)
	}

	return m, nil
}

// advance runs one session evaluation and starts the rebirth animations.
func (m *Model) advance(now time.Time) tea.Cmd {
	s := m.Session
	var events []game.RebirthEvent
	s.OnRebirth = func(ev game.RebirthEvent) { events = append(events, ev) }
	s.Tick(now)
	s.OnRebirth = nil

	if s.Idle() {
		if m.IdleSince.IsZero() {
			m.IdleSince = now
		}
	} else {
		m.IdleSince = time.Time{}
	}

	cmds := []tea.Cmd{m.tick()}
	for _, ev := range events {
		if ev.Nirvana {
			m.setMessage(fmt.Sprintf("🪷 %s has reached Nirvana", ev.Previous))
			m.startAnimation(AnimNirvana, now)
		} else {
			m.setMessage(fmt.Sprintf("✨ %s was reborn as %s", ev.Previous, ev.Creature))
			m.startAnimation(AnimRebirth, now)
		}
	}
	if len(events) > 0 {
		cmds = append(cmds, animTick(m.Animation.StartTime))
	}
	return tea.Batch(cmds...)
}

func (m *Model) dispatch(intent game.Intent) {
	v, err := m.Session.Dispatch(intent, TimeNow())
	switch {
	case errors.Is(err, game.ErrNirvana):
		m.setMessage("🪷 Nothing left to do. Nirvana has been reached.")
	case err != nil:
		log.Printf("%s failed: %v", intent, err)
		m.setMessage(fmt.Sprintf("⚠️ %s failed", intent))
	default:
		m.IdleSince = time.Time{}
		m.setMessage(fmt.Sprintf("%s %s! (%d)", intentEmoji(intent), intent, v))
	}
}

func (m *Model) collect(index int) {
	now := TimeNow()
	active := m.Session.PowerUps()
	if index < 0 || index >= len(active) {
		return
	}
	p := active[index]
	effect, ok, err := m.Session.CollectPowerUp(p.ID, now)
	switch {
	case errors.Is(err, game.ErrNirvana):
		m.setMessage("🪷 Nothing left to do. Nirvana has been reached.")
	case err != nil:
		log.Printf("Collecting power-up %d failed: %v", p.ID, err)
		m.setMessage("⚠️ Could not collect that")
	case !ok:
		m.setMessage("💨 Too late, it vanished")
	default:
		m.IdleSince = time.Time{}
		m.setMessage(fmt.Sprintf("⭐ +%d %s", effect.Magnitude, effect.Stat))
	}
}

// export writes the journal. A failure is shown to the player and play goes on.
func (m *Model) export() {
	dir := m.ExportDir
	if dir == "" {
		d, err := journal.ExportDir()
		if err != nil {
			log.Printf("Export failed: %v", err)
			m.setMessage("⚠️ Export failed: " + err.Error())
			return
		}
		dir = d
	}
	files, err := m.Session.Export(dir, TimeNow())
	if err != nil {
		m.setMessage("⚠️ Export failed: " + err.Error())
		return
	}
	m.setMessage("📜 Journal saved to " + files.Journal)
}

func (m *Model) setMessage(msg string) {
	m.Message = msg
	m.MessageExpires = TimeNow().Add(MessageDuration)
}

func (m *Model) startAnimation(animType AnimationType, now time.Time) {
	m.Animation = Animation{
		Type:      animType,
		Frame:     0,
		StartTime: now,
	}
}

func intentEmoji(i game.Intent) string {
	switch i {
	case game.IntentFeed:
		return "🍖"
	case game.IntentPlay:
		return "🎾"
	case game.IntentClean:
		return "🧽"
	case game.IntentStudy:
		return "📚"
	}
	return "•"
}

package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const pomodoroLength = 25 * time.Minute

// pomodoro is a countdown timer. It is purely presentational and never
// mutates task state when it elapses.
type pomodoro struct {
	start    time.Time
	duration time.Duration
}

func newPomodoro(now time.Time) *pomodoro {
	return &pomodoro{start: now, duration: pomodoroLength}
}

func (p *pomodoro) remaining(now time.Time) time.Duration {
	left := p.duration - now.Sub(p.start)
	if left < 0 {
		return 0
	}
	return left
}

func (p *pomodoro) done(now time.Time) bool {
	return p.remaining(now) == 0
}

func (p *pomodoro) format(now time.Time) string {
	left := p.remaining(now).Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(left.Minutes()), int(left.Seconds())%60)
}

func (m *Model) enterZen() {
	m.screen = screenZen
	if m.pomodoro == nil {
		m.pomodoro = newPomodoro(m.now())
	}
}

func (m *Model) updateZen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc || keyIs(msg, m.keys.Focus):
		m.screen = screenFocus

	case keyIs(msg, m.keys.Toggle) || msg.String() == " ":
		m.toggleSelected()
		if len(m.visibleTasks()) == 0 {
			m.screen = screenFocus
		}

	case keyIs(msg, m.keys.Skip):
		m.moveDown()

	case keyIs(msg, m.keys.Drop):
		m.dropSelected()
		if len(m.visibleTasks()) == 0 {
			m.screen = screenFocus
		}

	case keyIs(msg, m.keys.Reset):
		m.pomodoro = newPomodoro(m.now())
	}
	return m, nil
}

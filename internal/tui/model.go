// Package tui is the interactive Eisenhower matrix. A single Bubbletea
// model owns the store, the selection state, and the chat transcript;
// a periodic tick drains assistant replies so the event loop never
// blocks on the network.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eisenq/eq/internal/assist"
	"github.com/eisenq/eq/internal/notation"
	"github.com/eisenq/eq/internal/store"
	"github.com/eisenq/eq/internal/task"
)

const (
	tickInterval = 200 * time.Millisecond
	pageJump     = 5
)

// screen identifies which view owns the keyboard.
type screen int

const (
	screenMain screen = iota
	screenEditing
	screenChat
	screenFocus
	screenZen
)

// Model is the Bubbletea model for the matrix TUI.
type Model struct {
	// Dimensions
	width, height int

	// Data
	store    *store.Store
	client   *assist.Client // nil when no API key is configured
	viewDate time.Time
	now      func() time.Time

	// Selection
	screen   screen
	quadrant task.Quadrant
	selected int

	// Editing
	input     textinput.Model
	editingID string // empty while adding

	// Chat
	chatInput    textinput.Model
	chatView     viewport.Model
	history      []store.ChatMessage
	pending      []assist.Command
	loading      bool
	pinned       bool // follow newest transcript line
	showChatHelp bool

	// Zen
	pomodoro *pomodoro

	// UI state
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	status  string
}

// New builds the model over an opened store. client may be nil; chat
// then reports the missing credential instead of sending.
func New(st *store.Store, client *assist.Client) *Model {
	in := textinput.New()
	in.Placeholder = "Task title u2i3 or !!$$..."
	in.CharLimit = 256

	chat := textinput.New()
	chat.Placeholder = "Ask about your tasks..."
	chat.CharLimit = 512

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	h := help.New()
	h.ShowAll = false

	return &Model{
		store:    st,
		client:   client,
		viewDate: midnight(time.Now()),
		now:      time.Now,
		quadrant: task.DoFirst,
		input:    in,
		chatInput: chat,
		chatView: viewport.New(0, 0),
		history:  st.LoadChat(),
		pinned:   true,
		keys:     DefaultKeyMap(),
		help:     h,
		spinner:  sp,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.tick(),
		tea.SetWindowTitle("eq"),
	)
}

// tickMsg drives the spinner, the chat poll, and the zen countdown.
type tickMsg time.Time

func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chatView.Width = msg.Width - 4
		m.chatView.Height = msg.Height - 7
		m.input.Width = msg.Width - 14
		m.chatInput.Width = msg.Width - 8
		m.refreshChatView()
		return m, nil

	case tickMsg:
		m.pollReply()
		return m, m.tick()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		m.status = ""
		switch m.screen {
		case screenMain:
			return m.updateMain(msg)
		case screenEditing:
			return m.updateEditing(msg)
		case screenChat:
			return m.updateChat(msg)
		case screenFocus:
			return m.updateFocus(msg)
		case screenZen:
			return m.updateZen(msg)
		}
	}
	return m, nil
}

// visibleTasks is the score-ordered list the selection index runs over.
func (m *Model) visibleTasks() []*task.Task {
	return m.store.QuadrantTasks(m.viewDate, m.quadrant)
}

func (m *Model) selectedTask() *task.Task {
	tasks := m.visibleTasks()
	if m.selected < len(tasks) {
		return tasks[m.selected]
	}
	return nil
}

// clampSelection keeps the index inside the current list after any
// count-changing mutation, quadrant switch, or date toggle.
func (m *Model) clampSelection() {
	n := len(m.visibleTasks())
	if n == 0 {
		m.selected = 0
	} else if m.selected >= n {
		m.selected = n - 1
	}
}

func (m *Model) moveDown() {
	if n := len(m.visibleTasks()); n > 0 {
		m.selected = (m.selected + 1) % n
	}
}

func (m *Model) moveUp() {
	if n := len(m.visibleTasks()); n > 0 {
		m.selected = (m.selected + n - 1) % n
	}
}

func (m *Model) pageDown() {
	if n := len(m.visibleTasks()); n > 0 {
		m.selected = min(m.selected+pageJump, n-1)
	}
}

func (m *Model) pageUp() {
	m.selected = max(m.selected-pageJump, 0)
}

func (m *Model) setQuadrant(q task.Quadrant) {
	m.quadrant = q
	m.selected = 0
	m.clampSelection()
}

func (m *Model) toggleViewDate() {
	today := midnight(m.now())
	if m.viewDate.Equal(today) {
		m.viewDate = today.AddDate(0, 0, 1)
	} else {
		m.viewDate = today
	}
	m.clampSelection()
}

// fail routes a store error to the transient status line. State is
// otherwise untouched.
func (m *Model) fail(err error) {
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
	}
}

func (m *Model) toggleSelected() {
	if t := m.selectedTask(); t != nil {
		m.fail(m.store.ToggleComplete(t.ID))
		m.clampSelection()
	}
}

func (m *Model) dropSelected() {
	if t := m.selectedTask(); t != nil {
		m.fail(m.store.DropTask(t.ID))
		m.clampSelection()
	}
}

func (m *Model) pushSelected() {
	if t := m.selectedTask(); t != nil {
		m.fail(m.store.MoveTo(t.ID, m.viewDate.AddDate(0, 0, 1)))
		m.clampSelection()
	}
}

func (m *Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyIs(msg, m.keys.Quit):
		m.saveChat()
		return m, tea.Quit
	case keyIs(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case keyIs(msg, m.keys.Add):
		m.openEditor(nil)
	case keyIs(msg, m.keys.Edit):
		if t := m.selectedTask(); t != nil {
			m.openEditor(t)
		}
	case keyIs(msg, m.keys.Toggle):
		m.toggleSelected()
	case keyIs(msg, m.keys.Drop):
		m.dropSelected()
	case keyIs(msg, m.keys.Push):
		m.pushSelected()
	case keyIs(msg, m.keys.ToggleDate):
		m.toggleViewDate()
	case keyIs(msg, m.keys.NextQuadrant):
		m.setQuadrant(nextQuadrant(m.quadrant))
	case keyIs(msg, m.keys.Left):
		m.setQuadrant(leftQuadrant(m.quadrant))
	case keyIs(msg, m.keys.Right):
		m.setQuadrant(rightQuadrant(m.quadrant))
	case keyIs(msg, m.keys.Down):
		m.moveDown()
	case keyIs(msg, m.keys.Up):
		m.moveUp()
	case keyIs(msg, m.keys.PageDown):
		m.pageDown()
	case keyIs(msg, m.keys.PageUp):
		m.pageUp()
	case keyIs(msg, m.keys.Chat):
		m.screen = screenChat
		m.chatInput.Focus()
		m.refreshChatView()
	case keyIs(msg, m.keys.Focus):
		m.screen = screenFocus
	}
	return m, nil
}

// openEditor seeds the edit buffer. For edits the buffer round-trips
// the current title and priority in shorthand notation.
func (m *Model) openEditor(t *task.Task) {
	if t == nil {
		m.editingID = ""
		m.input.SetValue("")
	} else {
		m.editingID = t.ID
		m.input.SetValue(fmt.Sprintf("%s u%di%d", t.Title, t.Urgency, t.Importance))
		m.input.CursorEnd()
	}
	m.screen = screenEditing
	m.input.Focus()
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeEditor()
		return m, nil

	case tea.KeyEnter:
		raw := strings.TrimSpace(m.input.Value())
		if raw != "" {
			title, urgency, importance := notation.Parse(raw)
			if m.editingID != "" {
				m.fail(m.store.UpdateTask(m.editingID, title, urgency, importance))
			} else {
				_, err := m.store.Add(title, urgency, importance, m.viewDate)
				m.fail(err)
			}
		}
		m.closeEditor()
		m.clampSelection()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeEditor() {
	m.input.SetValue("")
	m.input.Blur()
	m.editingID = ""
	m.screen = screenMain
}

func (m *Model) updateFocus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.screen = screenMain
	case keyIs(msg, m.keys.Quit):
		m.saveChat()
		return m, tea.Quit
	case keyIs(msg, m.keys.Focus):
		m.enterZen()
	case keyIs(msg, m.keys.Toggle):
		m.toggleSelected()
	case keyIs(msg, m.keys.Drop):
		m.dropSelected()
	case keyIs(msg, m.keys.Down):
		m.moveDown()
	case keyIs(msg, m.keys.Up):
		m.moveUp()
	case keyIs(msg, m.keys.PageDown):
		m.pageDown()
	case keyIs(msg, m.keys.PageUp):
		m.pageUp()
	}
	return m, nil
}

func nextQuadrant(q task.Quadrant) task.Quadrant {
	switch q {
	case task.DoFirst:
		return task.Schedule
	case task.Schedule:
		return task.Delegate
	case task.Delegate:
		return task.Drop
	default:
		return task.DoFirst
	}
}

// leftQuadrant moves one cell left in the 2x2 grid; edge cells stay put.
func leftQuadrant(q task.Quadrant) task.Quadrant {
	switch q {
	case task.Schedule:
		return task.DoFirst
	case task.Drop:
		return task.Delegate
	default:
		return q
	}
}

func rightQuadrant(q task.Quadrant) task.Quadrant {
	switch q {
	case task.DoFirst:
		return task.Schedule
	case task.Delegate:
		return task.Drop
	default:
		return q
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// View renders the TUI.
func (m *Model) View() string {
	return m.renderView()
}

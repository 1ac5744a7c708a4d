package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/eisenq/eq/internal/assist"
	"github.com/eisenq/eq/internal/store"
	"github.com/eisenq/eq/internal/task"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	m := New(st, nil)
	m.width, m.height = 80, 24
	return m
}

func press(m *Model, r rune) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func pressKey(m *Model, k tea.KeyType) {
	m.Update(tea.KeyMsg{Type: k})
}

func addTask(t *testing.T, m *Model, title string, u, i int) *task.Task {
	t.Helper()
	tk, err := m.store.Add(title, u, i, m.viewDate)
	require.NoError(t, err)
	return tk
}

func TestSelectionClampAfterDrop(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "one", 3, 3)
	addTask(t, m, "two", 3, 3)
	addTask(t, m, "three", 3, 3)

	m.selected = 2
	press(m, 'x')
	if m.selected != 1 {
		t.Errorf("selected = %d after dropping last of 3, want 1", m.selected)
	}

	press(m, 'x')
	press(m, 'x')
	if m.selected != 0 {
		t.Errorf("selected = %d on empty quadrant, want 0", m.selected)
	}
	if got := len(m.visibleTasks()); got != 0 {
		t.Fatalf("expected empty quadrant, have %d tasks", got)
	}
}

func TestSelectionNeverJumpsWhenListShrinksAbove(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "alpha", 3, 3)
	addTask(t, m, "beta", 3, 3)
	addTask(t, m, "gamma", 3, 3)

	// Drop the first task; a selection in the middle keeps its index,
	// which still lands inside the shorter list.
	m.selected = 0
	press(m, 'x')
	if m.selected != 0 {
		t.Errorf("selected = %d, want 0", m.selected)
	}
	if n := len(m.visibleTasks()); n != 2 {
		t.Fatalf("have %d tasks, want 2", n)
	}
}

func TestNavigationWraps(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "one", 3, 3)
	addTask(t, m, "two", 3, 3)
	addTask(t, m, "three", 3, 3)

	press(m, 'k')
	if m.selected != 2 {
		t.Errorf("up from 0 should wrap to 2, got %d", m.selected)
	}
	press(m, 'j')
	if m.selected != 0 {
		t.Errorf("down from last should wrap to 0, got %d", m.selected)
	}
}

func TestPageJumpClamps(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 3; i++ {
		addTask(t, m, "t", 3, 3)
	}

	pressKey(m, tea.KeyPgDown)
	if m.selected != 2 {
		t.Errorf("page down on 3 tasks should land on 2, got %d", m.selected)
	}
	pressKey(m, tea.KeyPgUp)
	if m.selected != 0 {
		t.Errorf("page up should land on 0, got %d", m.selected)
	}
}

func TestQuadrantCycleResetsSelection(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "a", 3, 3)
	addTask(t, m, "b", 3, 3)
	m.selected = 1

	order := []task.Quadrant{task.Schedule, task.Delegate, task.Drop, task.DoFirst}
	for _, want := range order {
		pressKey(m, tea.KeyTab)
		if m.quadrant != want {
			t.Fatalf("quadrant = %v, want %v", m.quadrant, want)
		}
		if m.selected != 0 {
			t.Errorf("selection not reset on quadrant switch: %d", m.selected)
		}
	}
}

func TestGridNavigation(t *testing.T) {
	m := newTestModel(t)

	press(m, 'l')
	require.Equal(t, task.Schedule, m.quadrant)
	press(m, 'l') // right edge stays
	require.Equal(t, task.Schedule, m.quadrant)
	press(m, 'h')
	require.Equal(t, task.DoFirst, m.quadrant)
	press(m, 'h') // left edge stays
	require.Equal(t, task.DoFirst, m.quadrant)
}

func TestToggleViewDate(t *testing.T) {
	m := newTestModel(t)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	m.viewDate = midnight(now)

	press(m, 't')
	require.Equal(t, midnight(now).AddDate(0, 0, 1), m.viewDate)
	press(m, 't')
	require.Equal(t, midnight(now), m.viewDate)
}

func TestEditSeedsBuffer(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "Fix crash", 3, 2)

	press(m, 'e')
	require.Equal(t, screenEditing, m.screen)
	require.Equal(t, "Fix crash u3i2", m.input.Value())

	// Esc cancels with no mutation.
	pressKey(m, tea.KeyEsc)
	require.Equal(t, screenMain, m.screen)
	tasks := m.visibleTasks()
	require.Len(t, tasks, 1)
	require.Equal(t, "Fix crash", tasks[0].Title)
	require.Equal(t, 3, tasks[0].Urgency)
}

func TestEditingAddsTask(t *testing.T) {
	m := newTestModel(t)

	press(m, 'a')
	require.Equal(t, screenEditing, m.screen)

	m.input.SetValue("Ship release u2i3")
	pressKey(m, tea.KeyEnter)

	require.Equal(t, screenMain, m.screen)
	tasks := m.store.PendingFor(m.viewDate)
	require.Len(t, tasks, 1)
	require.Equal(t, "Ship release", tasks[0].Title)
	require.Equal(t, 2, tasks[0].Urgency)
	require.Equal(t, 3, tasks[0].Importance)
}

func TestEditingUpdatesTask(t *testing.T) {
	m := newTestModel(t)
	tk := addTask(t, m, "Draft email", 1, 1)
	m.quadrant = tk.Quadrant()

	press(m, 'e')
	m.input.SetValue("Send email !!$$$")
	pressKey(m, tea.KeyEnter)

	got, ok := m.store.Get(tk.ID)
	require.True(t, ok)
	require.Equal(t, "Send email", got.Title)
	require.Equal(t, 2, got.Urgency)
	require.Equal(t, 3, got.Importance)
}

func TestPendingCommandsConfirm(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat

	m.pending = assist.ParseCommands("[ADD] Write report u2i3")
	require.Len(t, m.pending, 1)

	press(m, 'y')
	require.Empty(t, m.pending)
	tasks := m.store.PendingFor(m.viewDate)
	require.Len(t, tasks, 1)
	require.Equal(t, "Write report", tasks[0].Title)

	last := m.history[len(m.history)-1]
	require.Contains(t, last.Text, "Executed")
}

func TestPendingCommandsCancel(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat

	m.pending = assist.ParseCommands("[ADD] Write report u2i3")
	press(m, 'n')

	require.Empty(t, m.pending)
	require.Empty(t, m.store.PendingFor(m.viewDate))
	last := m.history[len(m.history)-1]
	require.Contains(t, last.Text, "Cancelled 1 command(s)")
}

func TestPendingConfirmIgnoredWhileTyping(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.chatInput.Focus()
	m.chatInput.SetValue("ma")

	m.pending = assist.ParseCommands("[DROP] #1")
	press(m, 'y')

	// 'y' went into the input, not the confirmation flow.
	require.Len(t, m.pending, 1)
	require.Equal(t, "may", m.chatInput.Value())
}

func TestResolveTargetByIndexAndTitle(t *testing.T) {
	m := newTestModel(t)
	a := addTask(t, m, "Pay rent", 3, 3)
	b := addTask(t, m, "Call landlord", 2, 3)

	id, err := m.resolveTarget(assist.TargetRef{Index: 1})
	require.NoError(t, err)
	require.Equal(t, a.ID, id) // higher score sorts first

	id, err = m.resolveTarget(assist.TargetRef{Title: "landlord"})
	require.NoError(t, err)
	require.Equal(t, b.ID, id)

	_, err = m.resolveTarget(assist.TargetRef{Index: 9})
	require.Error(t, err)
	_, err = m.resolveTarget(assist.TargetRef{Title: "nothing here"})
	require.Error(t, err)
}

func TestChatScrollPinning(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	require.True(t, m.pinned)

	pressKey(m, tea.KeyPgUp)
	require.False(t, m.pinned)

	pressKey(m, tea.KeyEnd)
	require.True(t, m.pinned)

	pressKey(m, tea.KeyHome)
	require.False(t, m.pinned)
}

func TestChatClearHistory(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.appendMessage(roleUser, "hello")
	m.appendMessage(roleAssistant, "hi")
	m.saveChat()

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	require.Empty(t, m.history)
	require.Empty(t, m.store.LoadChat())
}

func TestZenDropExitsWhenQuadrantEmpties(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "only one", 3, 3)
	m.screen = screenFocus

	press(m, 'z')
	require.Equal(t, screenZen, m.screen)
	require.NotNil(t, m.pomodoro)

	press(m, 'x')
	require.Equal(t, screenFocus, m.screen)
	require.Empty(t, m.visibleTasks())
}

func TestZenResetRestartsPomodoro(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "deep work", 3, 3)
	base := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }

	m.screen = screenFocus
	press(m, 'z')
	require.Equal(t, "25:00", m.pomodoro.format(base))

	later := base.Add(10 * time.Minute)
	require.Equal(t, "15:00", m.pomodoro.format(later))

	m.now = func() time.Time { return later }
	press(m, 'r')
	require.Equal(t, "25:00", m.pomodoro.format(later))
}

func TestPomodoroNeverMutatesTasks(t *testing.T) {
	m := newTestModel(t)
	tk := addTask(t, m, "deep work", 3, 3)
	base := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base.Add(time.Hour) }
	m.pomodoro = newPomodoro(base)
	m.screen = screenZen

	require.True(t, m.pomodoro.done(m.now()))
	m.Update(tickMsg(m.now()))

	got, ok := m.store.Get(tk.ID)
	require.True(t, ok)
	require.Equal(t, task.StatusPending, got.Status)
}

func TestViewRendersAllScreens(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "render me", 3, 3)

	for _, s := range []screen{screenMain, screenEditing, screenChat, screenFocus, screenZen} {
		m.screen = s
		if out := m.View(); out == "" {
			t.Errorf("screen %d rendered empty view", s)
		}
	}
}

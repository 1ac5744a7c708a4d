package tui

import (
	"fmt"
	"strings"

	glamour "charm.land/glamour/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/eisenq/eq/internal/task"
)

func (m *Model) renderView() string {
	switch m.screen {
	case screenChat:
		return m.viewChat()
	case screenFocus:
		return m.viewFocus()
	case screenZen:
		return m.viewZen()
	default:
		return m.viewMatrix()
	}
}

func (m *Model) dims() (w, h int) {
	w, h = m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return w, h
}

func (m *Model) viewMatrix() string {
	w, h := m.dims()

	header := m.renderHeader(w)
	footer := m.renderFooter(w)

	cellW := w/2 - 2
	bodyH := h - lipgloss.Height(header) - lipgloss.Height(footer)
	cellH := bodyH/2 - 2
	if cellH < 1 {
		cellH = 1
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderQuadrant(task.DoFirst, cellW, cellH),
		m.renderQuadrant(task.Schedule, cellW, cellH),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderQuadrant(task.Delegate, cellW, cellH),
		m.renderQuadrant(task.Drop, cellW, cellH),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, top, bottom, footer)
}

func (m *Model) renderHeader(w int) string {
	title := headerStyle.Render("Eisenhower Quadrants")
	date := dateStyle.Render(m.dateLabel())
	line := title + "   " + date
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, line) + "\n"
}

func (m *Model) dateLabel() string {
	today := midnight(m.now())
	switch {
	case m.viewDate.Equal(today):
		return "Today · " + m.viewDate.Format("Mon Jan 02")
	case m.viewDate.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow · " + m.viewDate.Format("Mon Jan 02")
	default:
		return m.viewDate.Format("Mon Jan 02")
	}
}

func (m *Model) renderFooter(w int) string {
	if m.screen == screenEditing {
		label := "Add Task"
		if m.editingID != "" {
			label = "Edit Task"
		}
		box := inputBoxStyle.Width(w - 2).Render(label + ": " + m.input.View())
		return box
	}

	var lines []string
	if m.status != "" {
		style := statusStyle
		if strings.HasPrefix(m.status, "Error:") {
			style = errorStyle
		}
		lines = append(lines, style.Render(m.status))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

// renderQuadrant draws one bordered matrix cell with its score-ordered
// task list. The active cell carries its quadrant color on the border.
func (m *Model) renderQuadrant(q task.Quadrant, w, h int) string {
	tasks := m.store.QuadrantTasks(m.viewDate, q)
	active := q == m.quadrant && m.screen != screenEditing

	title := cellTitleStyle.Foreground(quadrantColor(q)).
		Render(fmt.Sprintf("%s (%d)", q, len(tasks)))

	lines := []string{title}
	lines = append(lines, m.renderTaskLines(tasks, w-2, h-1, active)...)

	border := colorMuted
	if active {
		border = quadrantColor(q)
	}
	return cellStyle.BorderForeground(border).
		Width(w).Height(h).
		Render(strings.Join(lines, "\n"))
}

// renderTaskLines formats at most h task rows, keeping the selection in
// view by windowing from the selected index.
func (m *Model) renderTaskLines(tasks []*task.Task, w, h int, active bool) []string {
	if h < 1 {
		h = 1
	}
	start := 0
	if active && m.selected >= h {
		start = m.selected - h + 1
	}

	var lines []string
	for i := start; i < len(tasks) && len(lines) < h; i++ {
		t := tasks[i]
		row := normalItemStyle.Render(truncate(fmt.Sprintf("%d. %s", i+1, t.Title), w-5)) +
			notationStyle.Render(fmt.Sprintf(" u%di%d", t.Urgency, t.Importance))

		switch {
		case active && i == m.selected:
			row = selectedItemStyle.Render(truncate(fmt.Sprintf("%d. %s u%di%d", i+1, t.Title, t.Urgency, t.Importance), w))
		case t.Status == task.StatusCompleted:
			row = completedItemStyle.Render(truncate(fmt.Sprintf("%d. %s", i+1, t.Title), w))
		}
		lines = append(lines, row)
	}
	return lines
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}

func (m *Model) viewFocus() string {
	w, h := m.dims()

	tasks := m.store.QuadrantTasks(m.viewDate, m.quadrant)
	title := cellTitleStyle.Foreground(quadrantColor(m.quadrant)).
		Render(fmt.Sprintf("%s · %s (%d)", m.quadrant, m.dateLabel(), len(tasks)))

	lines := []string{title, ""}
	lines = append(lines, m.renderTaskLines(tasks, w-4, h-6, true)...)

	hint := chatHintStyle.Render("[d]one  [x]drop  [j/k]navigate  [z]en  [esc]back")
	body := cellStyle.BorderForeground(quadrantColor(m.quadrant)).
		Width(w - 2).Height(h - 3).
		Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, body, hint)
}

func (m *Model) viewZen() string {
	w, h := m.dims()

	t := m.selectedTask()
	title := "All clear"
	if t != nil {
		title = t.Title
	}

	timer := ""
	if m.pomodoro != nil {
		timer = m.pomodoro.format(m.now())
		if m.pomodoro.done(m.now()) {
			timer += " · take a break"
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		zenMutedStyle.Render(m.quadrant.String()),
		"",
		zenTitleStyle.Render(title),
		"",
		zenTimerStyle.Render(timer),
		"",
		zenMutedStyle.Render("[d/space]done  [s]kip  [x]drop  [r]eset  [esc]back"),
	)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewChat() string {
	w, h := m.dims()

	title := headerStyle.Render(" Assistant Chat ") +
		chatHintStyle.Render("(esc: close · ?: help)")

	if m.showChatHelp {
		return lipgloss.JoinVertical(lipgloss.Left, title, m.renderChatHelp(w, h-1))
	}

	status := ""
	if m.loading {
		status = statusStyle.Render(m.spinner.View() + " Thinking...")
	} else if !m.pinned {
		status = statusStyle.Render(fmt.Sprintf("%3.0f%% · End to follow", m.chatView.ScrollPercent()*100))
	}

	input := inputBoxStyle.Width(w - 2).Render(m.chatInput.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.chatView.View(),
		status,
		input,
	)
}

func (m *Model) renderChatHelp(w, h int) string {
	text := strings.Join([]string{
		"Chat Keyboard Shortcuts",
		"",
		"PgUp/PgDn    Scroll history",
		"Ctrl+K/J     Scroll one line",
		"Home         Jump to top",
		"End          Resume auto-scroll",
		"Ctrl+L       Clear chat history",
		"Ctrl+W       Delete word",
		"Ctrl+U       Clear input",
		"y / n        Confirm or cancel pending commands",
		"Esc          Close chat",
		"",
		chatHintStyle.Render("Press ? to close"),
	}, "\n")
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
		cellStyle.Render(text))
}

// refreshChatView rebuilds the transcript content. Assistant messages
// render as markdown; user messages stay verbatim.
func (m *Model) refreshChatView() {
	var b strings.Builder
	for _, msg := range m.history {
		if msg.Role == roleUser {
			b.WriteString(chatUserStyle.Render("You:"))
			b.WriteString("\n  " + strings.ReplaceAll(msg.Text, "\n", "\n  "))
		} else {
			b.WriteString(chatAssistantStyle.Render("Assistant:"))
			b.WriteString("\n" + m.renderMarkdown(msg.Text))
		}
		b.WriteString("\n")
	}
	m.chatView.SetContent(b.String())
	if m.pinned {
		m.chatView.GotoBottom()
	}
}

func (m *Model) renderMarkdown(text string) string {
	width := m.chatView.Width
	if width <= 0 {
		width = 76
	}
	if width > 100 {
		width = 100
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithEnvironmentConfig(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

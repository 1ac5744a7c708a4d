package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eisenq/eq/internal/assist"
	"github.com/eisenq/eq/internal/store"
	"github.com/eisenq/eq/internal/task"
)

const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

func (m *Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.screen = screenMain
		m.showChatHelp = false
		m.saveChat()
		return m, nil

	case msg.String() == "?" && m.chatInput.Value() == "":
		m.showChatHelp = !m.showChatHelp
		return m, nil

	case msg.String() == "y" && len(m.pending) > 0 && m.chatInput.Value() == "":
		m.applyPending()
		return m, nil

	case msg.String() == "n" && len(m.pending) > 0 && m.chatInput.Value() == "":
		m.cancelPending()
		return m, nil

	case msg.Type == tea.KeyPgUp:
		m.pinned = false
		m.chatView.HalfViewUp()
		return m, nil

	case msg.Type == tea.KeyPgDown:
		m.chatView.HalfViewDown()
		if m.chatView.AtBottom() {
			m.pinned = true
		}
		return m, nil

	case msg.String() == "ctrl+k":
		m.pinned = false
		m.chatView.LineUp(1)
		return m, nil

	case msg.String() == "ctrl+j":
		m.chatView.LineDown(1)
		if m.chatView.AtBottom() {
			m.pinned = true
		}
		return m, nil

	case msg.Type == tea.KeyEnd:
		m.pinned = true
		m.chatView.GotoBottom()
		return m, nil

	case msg.Type == tea.KeyHome:
		m.pinned = false
		m.chatView.GotoTop()
		return m, nil

	case msg.String() == "ctrl+l":
		m.history = nil
		m.pending = nil
		m.fail(m.store.ClearChat())
		m.pinned = true
		m.refreshChatView()
		return m, nil

	case msg.Type == tea.KeyEnter:
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" {
			return m, nil
		}
		m.chatInput.SetValue("")
		return m, m.sendChat(text)
	}

	// Ctrl+W and Ctrl+U line editing are native to textinput.
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// sendChat appends the user message, persists the transcript, and fires
// the request. The returned cmd only animates the spinner; the reply
// itself arrives through Poll on a later tick.
func (m *Model) sendChat(text string) tea.Cmd {
	m.appendMessage(roleUser, text)
	m.saveChat()

	if m.client == nil {
		m.appendMessage(roleAssistant, "No API key configured. Set ANTHROPIC_API_KEY to enable chat.")
		return nil
	}

	m.loading = true
	m.pinned = true
	m.client.Send(context.Background(), m.history, m.taskContext())
	return m.spinner.Tick
}

// pollReply drains at most one assistant reply per tick. Replies are
// merged into the transcript whichever screen is current.
func (m *Model) pollReply() {
	if m.client == nil {
		return
	}
	resp, ok := m.client.Poll()
	if !ok {
		return
	}
	m.loading = false

	if resp.Err != nil {
		m.appendMessage(roleAssistant, fmt.Sprintf("Error: %v", resp.Err))
		return
	}

	text := resp.Text
	if cmds := assist.ParseCommands(text); len(cmds) > 0 {
		m.pending = cmds
		text += assist.Summary(cmds)
	}
	m.appendMessage(roleAssistant, text)
	m.saveChat()
}

func (m *Model) appendMessage(role, text string) {
	m.history = append(m.history, store.ChatMessage{
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	})
	m.refreshChatView()
}

func (m *Model) saveChat() {
	m.fail(m.store.SaveChat(m.history))
}

// applyPending executes confirmed directives in order and reports the
// outcome into the transcript.
func (m *Model) applyPending() {
	cmds := m.pending
	m.pending = nil

	var done, failed []string
	for _, c := range cmds {
		if err := m.applyCommand(c); err != nil {
			failed = append(failed, err.Error())
		} else {
			done = append(done, describeCommand(c))
		}
	}

	var b strings.Builder
	b.WriteString("━━━ Executed ━━━")
	for _, d := range done {
		b.WriteString("\n  ✓ " + d)
	}
	for _, f := range failed {
		b.WriteString("\n  ✗ " + f)
	}
	m.appendMessage(roleAssistant, b.String())
	m.saveChat()
	m.clampSelection()
}

func (m *Model) cancelPending() {
	n := len(m.pending)
	m.pending = nil
	m.appendMessage(roleAssistant, fmt.Sprintf("━━━ Cancelled %d command(s) ━━━", n))
}

func (m *Model) applyCommand(c assist.Command) error {
	switch c.Kind {
	case assist.CmdAdd:
		_, err := m.store.Add(c.Title, c.Urgency, c.Importance, m.viewDate)
		return err

	case assist.CmdDone:
		id, err := m.resolveTarget(c.Target)
		if err != nil {
			return err
		}
		return m.store.ToggleComplete(id)

	case assist.CmdDrop:
		id, err := m.resolveTarget(c.Target)
		if err != nil {
			return err
		}
		return m.store.DropTask(id)

	case assist.CmdEdit:
		id, err := m.resolveTarget(c.Target)
		if err != nil {
			return err
		}
		t, ok := m.store.Get(id)
		if !ok {
			return fmt.Errorf("could not find task: %s", c.Target)
		}
		title, urgency, importance := t.Title, t.Urgency, t.Importance
		if c.NewTitle != "" {
			title = c.NewTitle
		}
		if c.NewUrgency > 0 {
			urgency = c.NewUrgency
		}
		if c.NewImport > 0 {
			importance = c.NewImport
		}
		return m.store.UpdateTask(id, title, urgency, importance)
	}
	return fmt.Errorf("unknown command")
}

// resolveTarget maps a directive reference onto a task ID. Indexes are
// 1-based into the current quadrant's pending listing; title fragments
// match case-insensitively over the day's pending tasks.
func (m *Model) resolveTarget(ref assist.TargetRef) (string, error) {
	if ref.ByIndex() {
		var pending []*task.Task
		for _, t := range m.visibleTasks() {
			if t.Status == task.StatusPending {
				pending = append(pending, t)
			}
		}
		if ref.Index <= len(pending) {
			return pending[ref.Index-1].ID, nil
		}
		return "", fmt.Errorf("could not find task: %s", ref)
	}

	fragment := strings.ToLower(ref.Title)
	for _, t := range m.store.PendingFor(m.viewDate) {
		if strings.Contains(strings.ToLower(t.Title), fragment) {
			return t.ID, nil
		}
	}
	return "", fmt.Errorf("could not find task: %s", ref)
}

func describeCommand(c assist.Command) string {
	switch c.Kind {
	case assist.CmdAdd:
		return fmt.Sprintf("ADD: %s (u%di%d)", c.Title, c.Urgency, c.Importance)
	case assist.CmdDone:
		return fmt.Sprintf("DONE: %s", c.Target)
	case assist.CmdDrop:
		return fmt.Sprintf("DROP: %s", c.Target)
	default:
		return fmt.Sprintf("EDIT: %s", c.Target)
	}
}

// taskContext serializes the day's board for the system prompt.
func (m *Model) taskContext() string {
	data, err := json.MarshalIndent(m.store.Tasks(), "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}

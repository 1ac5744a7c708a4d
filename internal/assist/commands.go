package assist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eisenq/eq/internal/notation"
)

// CommandKind discriminates the directives an assistant reply can carry.
type CommandKind int

const (
	CmdAdd CommandKind = iota
	CmdDone
	CmdDrop
	CmdEdit
)

// TargetRef identifies a task in a directive: a 1-based index into the
// current quadrant listing, or a case-insensitive title fragment.
type TargetRef struct {
	Index int    // 1-based; 0 when targeting by title
	Title string // title fragment; empty when targeting by index
}

// ByIndex reports whether the reference is positional.
func (r TargetRef) ByIndex() bool { return r.Index > 0 }

func (r TargetRef) String() string {
	if r.ByIndex() {
		return fmt.Sprintf("#%d", r.Index)
	}
	return fmt.Sprintf("%q", r.Title)
}

// Command is one structured directive parsed from a reply.
type Command struct {
	Kind       CommandKind
	Title      string // CmdAdd: task title
	Urgency    int    // CmdAdd
	Importance int    // CmdAdd
	Target     TargetRef
	NewTitle   string // CmdEdit: replacement title, empty to keep
	NewUrgency int    // CmdEdit: 0 to keep
	NewImport  int    // CmdEdit: 0 to keep
}

// ParseCommands scans a reply for [ADD]/[DONE]/[DROP]/[EDIT] directive
// lines, in order. Lines that fail to parse are skipped; the reply text
// itself is never rejected.
func ParseCommands(reply string) []Command {
	var cmds []Command
	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "[ADD]"):
			if c, ok := parseAdd(strings.TrimSpace(trimmed[len("[ADD]"):])); ok {
				cmds = append(cmds, c)
			}
		case strings.HasPrefix(trimmed, "[DONE]"):
			if ref, ok := parseTarget(strings.TrimSpace(trimmed[len("[DONE]"):])); ok {
				cmds = append(cmds, Command{Kind: CmdDone, Target: ref})
			}
		case strings.HasPrefix(trimmed, "[DROP]"):
			if ref, ok := parseTarget(strings.TrimSpace(trimmed[len("[DROP]"):])); ok {
				cmds = append(cmds, Command{Kind: CmdDrop, Target: ref})
			}
		case strings.HasPrefix(trimmed, "[EDIT]"):
			if c, ok := parseEdit(strings.TrimSpace(trimmed[len("[EDIT]"):])); ok {
				cmds = append(cmds, c)
			}
		}
	}
	return cmds
}

func parseAdd(input string) (Command, bool) {
	title, u, i := notation.Parse(input)
	if title == "" {
		return Command{}, false
	}
	return Command{Kind: CmdAdd, Title: title, Urgency: u, Importance: i}, true
}

func parseTarget(input string) (TargetRef, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return TargetRef{}, false
	}

	numeric := strings.TrimPrefix(input, "#")
	if idx, err := strconv.Atoi(strings.TrimSpace(numeric)); err == nil && idx > 0 {
		return TargetRef{Index: idx}, true
	}
	return TargetRef{Title: input}, true
}

// parseEdit handles "old title -> new title u2i3" and the arrow-less
// "task title u2i3" form that only changes priority.
func parseEdit(input string) (Command, bool) {
	if input == "" {
		return Command{}, false
	}

	if left, right, found := strings.Cut(input, "->"); found {
		target, ok := parseTarget(strings.TrimSpace(left))
		if !ok {
			return Command{}, false
		}
		cmd := Command{Kind: CmdEdit, Target: target}
		cmd.NewTitle, cmd.NewUrgency, cmd.NewImport = splitEditPayload(strings.TrimSpace(right))
		return cmd, true
	}

	title, u, i := splitEditPayload(input)
	if title == "" {
		return Command{}, false
	}
	return Command{Kind: CmdEdit, Target: TargetRef{Title: title}, NewUrgency: u, NewImport: i}, true
}

// splitEditPayload separates a trailing notation token from title words.
// Unlike notation.Parse it reports absence as 0 so edits can keep the
// existing priority.
func splitEditPayload(input string) (title string, urgency, importance int) {
	var words []string
	for _, tok := range strings.Fields(input) {
		if u, i, ok := notation.ParseToken(tok); ok {
			urgency, importance = u, i
		} else {
			words = append(words, tok)
		}
	}
	return strings.Join(words, " "), urgency, importance
}

// Summary renders the pending-command confirmation block shown before
// the user approves execution.
func Summary(cmds []Command) string {
	if len(cmds) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\n━━━ Pending Commands ━━━\n")
	for i, c := range cmds {
		switch c.Kind {
		case CmdAdd:
			fmt.Fprintf(&b, "  %d. ADD: %s (u%di%d)\n", i+1, c.Title, c.Urgency, c.Importance)
		case CmdDone:
			fmt.Fprintf(&b, "  %d. DONE: %s\n", i+1, c.Target)
		case CmdDrop:
			fmt.Fprintf(&b, "  %d. DROP: %s\n", i+1, c.Target)
		case CmdEdit:
			var changes []string
			if c.NewTitle != "" {
				changes = append(changes, fmt.Sprintf("title=%q", c.NewTitle))
			}
			if c.NewUrgency > 0 {
				changes = append(changes, fmt.Sprintf("urgency=%d", c.NewUrgency))
			}
			if c.NewImport > 0 {
				changes = append(changes, fmt.Sprintf("importance=%d", c.NewImport))
			}
			fmt.Fprintf(&b, "  %d. EDIT: %s → %s\n", i+1, c.Target, strings.Join(changes, ", "))
		}
	}
	b.WriteString("\nPress [y] to execute, [n] to cancel")
	return b.String()
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/eisenq/eq/internal/store"
	"github.com/eisenq/eq/internal/task"
)

var (
	matrixHeaderStyle = lipgloss.NewStyle().Bold(true)
	matrixMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

	doFirstStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	scheduleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	delegateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	dropStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func init() {
	// Honor redirected output and dumb terminals for the fatih/color
	// paths; lipgloss detects its profile on its own.
	if termenv.EnvColorProfile() == termenv.Ascii {
		color.NoColor = true
	}
}

func quadrantStyle(q task.Quadrant) lipgloss.Style {
	switch q {
	case task.DoFirst:
		return doFirstStyle
	case task.Schedule:
		return scheduleStyle
	case task.Delegate:
		return delegateStyle
	default:
		return dropStyle
	}
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// renderMatrix prints the day's pending tasks in score order. The
// printed indexes are the positional references accepted by done, drop,
// and edit.
func renderMatrix(st *store.Store, day time.Time) {
	fmt.Println(matrixHeaderStyle.Render(fmt.Sprintf("Eisenhower Matrix for %s", day.Format("Mon Jan 02 2006"))))

	pending := st.PendingFor(day)
	if len(pending) == 0 {
		fmt.Println("No pending tasks.")
		return
	}

	width := terminalWidth()
	for i, t := range pending {
		q := t.Quadrant()
		label := quadrantStyle(q).Render(fmt.Sprintf("[%s]", q))
		line := fmt.Sprintf("%2d. %s %s %s", i+1, label, clip(t.Title, width-28),
			matrixMutedStyle.Render(fmt.Sprintf("(u%di%d · score %d)", t.Urgency, t.Importance, t.Score())))
		fmt.Println(line)
	}
}

func clip(s string, w int) string {
	if w < 8 {
		w = 8
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	return string(r[:w-1]) + "…"
}

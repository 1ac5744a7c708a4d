package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eisenq/eq/internal/task"
)

const weekTopTasks = 3

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show weekly overview",
	Long:  `Show the current week, Monday through Sunday, with each day's top pending tasks and completion counts.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		renderWeek()
	},
}

func renderWeek() {
	now := today()

	// Back up to Monday.
	offset := (int(now.Weekday()) + 6) % 7
	weekStart := now.AddDate(0, 0, -offset)
	weekEnd := weekStart.AddDate(0, 0, 6)

	fmt.Println(matrixHeaderStyle.Render(fmt.Sprintf("Week Overview (%s - %s)",
		weekStart.Format("Jan 02"), weekEnd.Format("Jan 02"))))
	fmt.Println()

	width := terminalWidth()
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		pending := taskStore.PendingFor(day)

		var completed int
		for _, t := range taskStore.Tasks() {
			if t.Status == task.StatusCompleted && t.ScheduledOn(day) {
				completed++
			}
		}

		marker := " "
		if day.Equal(now) {
			marker = ">"
		}
		fmt.Printf("%s %s (%d pending, %d done)\n",
			marker, day.Format("Mon Jan 02"), len(pending), completed)

		for j := 0; j < len(pending) && j < weekTopTasks; j++ {
			t := pending[j]
			dot := quadrantStyle(t.Quadrant()).Render("●")
			fmt.Printf("    %s %s\n", dot, clip(t.Title, width-8))
		}
		if len(pending) > weekTopTasks {
			fmt.Println(matrixMutedStyle.Render(fmt.Sprintf("    ... and %d more", len(pending)-weekTopTasks)))
		}
		fmt.Println()
	}
}

func init() {
	rootCmd.AddCommand(weekCmd)
}

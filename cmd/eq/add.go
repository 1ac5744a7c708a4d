package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eisenq/eq/internal/notation"
	"github.com/eisenq/eq/internal/timeparse"
)

var (
	addTomorrow bool
	addWhen     string
)

var addCmd = &cobra.Command{
	Use:   "add [words...]",
	Short: "Add a new task",
	Long: `Add a task. Priority notation can appear anywhere in the words:
symbols (! urgency, $ importance, repeated up to 3) or shorthand (u2i3).

  eq add Fix login crash !!!$$
  eq add Buy milk u1i2 --tomorrow
  eq add Quarterly review u2i3 --when friday`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title, urgency, importance := notation.Parse(strings.Join(args, " "))
		if title == "" {
			FatalErrorWithHint("task title is empty", "Put the title before or after the notation, e.g. 'eq add Buy milk u1i2'")
		}

		day := today()
		switch {
		case addWhen != "":
			parsed, err := timeparse.ParseDay(addWhen, time.Now())
			if err != nil {
				FatalError("%v", err)
			}
			day = parsed
		case addTomorrow:
			day = day.AddDate(0, 0, 1)
		}

		t, err := taskStore.Add(title, urgency, importance, day)
		if err != nil {
			FatalError("%v", err)
		}
		fmt.Printf("Added task: %s (U=%d, I=%d) -> %s\n", t.Title, t.Urgency, t.Importance, t.Quadrant())
	},
}

func init() {
	addCmd.Flags().BoolVarP(&addTomorrow, "tomorrow", "t", false, "Schedule for tomorrow")
	addCmd.Flags().StringVar(&addWhen, "when", "", `Schedule by date expression ("friday", "next tuesday", "+3d", "2026-09-01")`)
	rootCmd.AddCommand(addCmd)
}

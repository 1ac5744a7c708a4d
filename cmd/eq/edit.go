package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eisenq/eq/internal/notation"
)

var editCmd = &cobra.Command{
	Use:   "edit <ref> [words...]",
	Short: "Edit a task's title or priority",
	Long: `Edit a task. Notation tokens update the priority; any remaining
words replace the title. Omitted parts keep their current value.

  eq edit 2 u3i3
  eq edit 2 Rewrite the deploy script u2i3`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := taskStore.FindTaskID(args[0], today())
		if err != nil {
			FatalError("%v", err)
		}
		t, _ := taskStore.Get(id)

		title, urgency, importance := t.Title, t.Urgency, t.Importance
		var words []string
		for _, tok := range args[1:] {
			if u, i, ok := notation.ParseToken(tok); ok {
				urgency, importance = u, i
			} else {
				words = append(words, tok)
			}
		}
		if len(words) > 0 {
			title = strings.Join(words, " ")
		}

		if err := taskStore.UpdateTask(id, title, urgency, importance); err != nil {
			FatalError("%v", err)
		}
		fmt.Printf("Updated task: %s (U=%d, I=%d)\n", title, urgency, importance)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}

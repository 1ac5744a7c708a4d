package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <ref>",
	Short: "Mark a task as done",
	Long: `Mark a task completed. The reference is a 1-based index into
today's listing (as printed by 'eq today') or a unique task ID prefix.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := taskStore.FindTaskID(args[0], today())
		if err != nil {
			FatalError("%v", err)
		}
		if err := taskStore.Complete(id); err != nil {
			FatalError("%v", err)
		}
		t, _ := taskStore.Get(id)
		fmt.Printf("Marked task as done: %s\n", t.Title)
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

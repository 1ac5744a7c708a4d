package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dropCmd = &cobra.Command{
	Use:   "drop <ref>",
	Short: "Drop a task",
	Long: `Drop a task from the matrix. Dropped tasks disappear from every
view but stay in the data file and the event log.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := taskStore.FindTaskID(args[0], today())
		if err != nil {
			FatalError("%v", err)
		}
		t, _ := taskStore.Get(id)
		if err := taskStore.DropTask(id); err != nil {
			FatalError("%v", err)
		}
		fmt.Printf("Dropped task: %s\n", t.Title)
	},
}

func init() {
	rootCmd.AddCommand(dropCmd)
}

package main

import (
	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's matrix (default)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		renderMatrix(taskStore, today())
	},
}

var tomorrowCmd = &cobra.Command{
	Use:   "tomorrow",
	Short: "Show tomorrow's matrix",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		renderMatrix(taskStore, today().AddDate(0, 0, 1))
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(tomorrowCmd)
}

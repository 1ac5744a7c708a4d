package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/eisenq/eq/internal/assist"
	"github.com/eisenq/eq/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive matrix",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := assist.NewClient(cfg)
		if err != nil {
			if !errors.Is(err, assist.ErrNoAPIKey) {
				FatalError("%v", err)
			}
			// Chat stays disabled; everything else works.
			client = nil
		}

		p := tea.NewProgram(tui.New(taskStore, client), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			FatalError("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eisenq/eq/internal/config"
	"github.com/eisenq/eq/internal/debug"
	"github.com/eisenq/eq/internal/store"
	"github.com/eisenq/eq/internal/telemetry"
)

// Version information, set at build time via ldflags.
var (
	Version = "0.3.0"
	Build   = "dev"
)

var (
	cfg       *config.Config
	taskStore *store.Store

	verboseFlag bool
	quietFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "eq",
	Short: "eq - Eisenhower quadrants task manager",
	Long: `A terminal task manager built on the Eisenhower matrix.
Tasks carry urgency and importance (1-3) and sort themselves into
Do First, Schedule, Delegate, and Drop quadrants.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("eq version %s (%s)\n", Version, Build)
			return
		}
		// No subcommand: show today's matrix.
		renderMatrix(taskStore, today())
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; ANTHROPIC_API_KEY commonly lives there.
		_ = godotenv.Load()

		debug.SetVerbose(verboseFlag)
		debug.SetQuiet(quietFlag)

		if err := telemetry.Init(cmd.Context(), "eq", Version); err != nil {
			WarnError("telemetry init failed: %v", err)
		}

		openStore()
	},
}

// openStore resolves the data directory, loads config, and opens the
// task store. Fatal on any failure: every command needs the store.
func openStore() {
	dir, err := config.DataDir()
	if err != nil {
		FatalError("%v", err)
	}
	if err := config.WriteDefault(dir); err != nil {
		WarnError("could not write default config: %v", err)
	}
	cfg, err = config.Load(dir)
	if err != nil {
		FatalError("%v", err)
	}
	taskStore, err = store.Open(dir)
	if err != nil {
		FatalError("%v", err)
	}
}

// today returns the current day at midnight, the scheduling resolution
// for every task.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")
	rootCmd.Flags().BoolP("version", "V", false, "Print version information")
}

func main() {
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		telemetry.Shutdown(ctx)
	}()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

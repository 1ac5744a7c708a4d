package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eisenq/eq/internal/task"
)

const statsBarWidth = 20

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show productivity statistics",
	Long:  `Show completed-task counts and average completion latency per quadrant.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		renderStats()
	},
}

func renderStats() {
	counts := map[task.Quadrant]int{}
	latency := map[task.Quadrant]time.Duration{}

	for _, t := range taskStore.Tasks() {
		if t.Status != task.StatusCompleted {
			continue
		}
		q := t.Quadrant()
		counts[q]++
		if t.CompletedAt != nil {
			latency[q] += t.CompletedAt.Sub(t.CreatedAt)
		}
	}

	bold := color.New(color.Bold)
	bold.Println("\nProductivity Stats (Completed Tasks)")

	fmt.Println("\nTask Counts:")
	var maxCount int
	for _, q := range task.Quadrants {
		if counts[q] > maxCount {
			maxCount = counts[q]
		}
	}
	for _, q := range task.Quadrants {
		fmt.Printf("%-10s | %-3d %s\n", q, counts[q], bar(counts[q], maxCount))
	}

	fmt.Println("\nAvg Time to Complete:")
	avgs := map[task.Quadrant]time.Duration{}
	var maxAvg time.Duration
	for _, q := range task.Quadrants {
		if counts[q] > 0 {
			avgs[q] = latency[q] / time.Duration(counts[q])
		}
		if avgs[q] > maxAvg {
			maxAvg = avgs[q]
		}
	}
	for _, q := range task.Quadrants {
		fmt.Printf("%-10s | %-8s %s\n", q, formatLatency(avgs[q]), bar(int(avgs[q]), int(maxAvg)))
	}
	fmt.Println()
}

func bar(value, maxValue int) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := value * statsBarWidth / maxValue
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func formatLatency(d time.Duration) string {
	switch {
	case d == 0:
		return "-"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%.1fh", d.Hours())
	default:
		return fmt.Sprintf("%.1fd", d.Hours()/24)
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

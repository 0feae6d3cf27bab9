package main

import (
	"fmt"

	"github.com/cwbudde/hyperknapsack/internal/knap"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <instance-file>",
	Short: "Print instance statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	inst, err := knap.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load instance: %w", err)
	}

	stats := inst.Statistics()

	fmt.Printf("Instance: %s\n", stats.Name)
	fmt.Printf("  Items: %d\n", stats.N)
	fmt.Printf("  Capacity: %d (%.1f%% of total weight)\n", stats.Capacity, stats.CapacityRatio*100)
	fmt.Printf("  Total value: %d  Total weight: %d\n", stats.TotalValue, stats.TotalWeight)
	fmt.Printf("  Avg value: %.2f  Avg weight: %.2f\n", stats.AvgValue, stats.AvgWeight)
	fmt.Printf("  Value/weight ratio: avg %.3f  min %.3f  max %.3f\n", stats.AvgRatio, stats.MinRatio, stats.MaxRatio)
	if stats.Optimal != nil {
		fmt.Printf("  Known optimal: %d\n", *stats.Optimal)
	}

	return nil
}

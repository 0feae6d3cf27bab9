package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/hyperknapsack/internal/experiment"
	"github.com/cwbudde/hyperknapsack/internal/knap"
	"github.com/cwbudde/hyperknapsack/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	instancePath string
	algorithm    string
	iters        int
	alpha        float64
	seed         int64
	operators    []string
	saveRun      bool
	saveHistory  bool
	runDataDir   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve a single knapsack instance",
	Long: `Runs one algorithm on one instance with an explicit seed and prints the
resulting solution. Hyperheuristic algorithms additionally report their
per-operator statistics, and can persist the full operator history.`,
	RunE: runSolve,
}

func init() {
	runCmd.Flags().StringVar(&instancePath, "instance", "", "Instance file path (required)")
	runCmd.Flags().StringVar(&algorithm, "algorithm", "hh_adaptive", "Algorithm name (see 'hyperknapsack run --help')")
	runCmd.Flags().IntVar(&iters, "iters", 0, "Iteration budget (0 = algorithm default)")
	runCmd.Flags().Float64Var(&alpha, "alpha", 0, "RCL greediness for semi-greedy construction (0 = default)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	runCmd.Flags().StringSliceVar(&operators, "operators", nil, "Operator subset for hyperheuristics (default: full registry)")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "Persist the run result to the data directory")
	runCmd.Flags().BoolVar(&saveHistory, "history", false, "Persist the operator history (implies --save, hyperheuristics only)")
	runCmd.Flags().StringVar(&runDataDir, "data-dir", "./data", "Base directory for run storage")

	runCmd.MarkFlagRequired("instance")
	rootCmd.AddCommand(runCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	inst, err := knap.Load(instancePath)
	if err != nil {
		return fmt.Errorf("failed to load instance: %w", err)
	}

	slog.Info("Loaded instance", "instance", inst.Name, "n", inst.N(), "capacity", inst.Capacity)

	algo, err := experiment.Resolve(algorithm, experiment.Options{
		Iterations: iters,
		Alpha:      alpha,
		Operators:  operators,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	solution, stats, history, err := algo.Solve(inst, seed)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("algorithm %s failed: %w", algorithm, err)
	}

	slog.Info("Solve complete",
		"algorithm", algorithm,
		"elapsed", elapsed,
		"value", solution.Value,
		"weight", solution.Weight,
		"feasible", solution.IsFeasible(),
	)

	fmt.Printf("Instance: %s (n=%d, capacity=%d)\n", inst.Name, inst.N(), inst.Capacity)
	fmt.Printf("Algorithm: %s (seed %d)\n", algorithm, seed)
	fmt.Printf("Value: %d  Weight: %d/%d  Items: %v\n",
		solution.Value, solution.Weight, inst.Capacity, solution.Selected())
	if gap, ok := solution.Gap(); ok {
		fmt.Printf("Gap to optimal (%d): %.2f%%\n", *inst.Optimal, gap)
	}

	if len(stats) > 0 {
		fmt.Println("\nOperator statistics:")
		for _, st := range stats {
			fmt.Printf("  %-22s uses=%-5d avg_improvement=%-8.3f score=%-8.3f q=%.3f\n",
				st.Operator, st.Uses, st.AvgImprovement, st.Score, st.QValue)
		}
	}

	if saveRun || saveHistory {
		result := experiment.Result{
			Algorithm:        algorithm,
			Instance:         inst.Name,
			InstanceSize:     inst.N(),
			InstanceCapacity: inst.Capacity,
			Seed:             seed,
			Value:            solution.Value,
			Weight:           solution.Weight,
			Feasible:         solution.IsFeasible(),
			ItemsSelected:    len(solution.Selected()),
			ExecutionMS:      float64(elapsed.Microseconds()) / 1000,
			Optimal:          inst.Optimal,
			Timestamp:        time.Now(),
			OperatorStats:    stats,
		}
		if gap, ok := solution.Gap(); ok {
			result.GapPercent = &gap
		}

		runStore, err := store.NewFSStore(runDataDir)
		if err != nil {
			return fmt.Errorf("failed to create run store: %w", err)
		}

		runID := uuid.New().String()
		if err := runStore.SaveRun(runID, store.NewRunRecord(runID, result)); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Printf("\nSaved run %s\n", runID)

		if saveHistory && len(history) == 0 {
			slog.Warn("No operator history to save", "algorithm", algorithm)
		}
		if saveHistory && len(history) > 0 {
			writer, err := store.NewHistoryWriter(runDataDir, runID)
			if err != nil {
				return fmt.Errorf("failed to create history writer: %w", err)
			}
			if err := writer.WriteAll(history); err != nil {
				writer.Close()
				return fmt.Errorf("failed to write history: %w", err)
			}
			if err := writer.Close(); err != nil {
				return fmt.Errorf("failed to close history writer: %w", err)
			}
			fmt.Printf("Saved %d history entries to %s\n", len(history), writer.Path())
		}
	}

	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/hyperknapsack/internal/experiment"
	"github.com/cwbudde/hyperknapsack/internal/store"
	"github.com/spf13/cobra"
)

var (
	resultsDataDir string
	olderThanDays  int
	forceClean     bool
	exportCSVPath  string
	exportJSONPath string
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage persisted run results",
	Long: `Manage run results persisted in the data directory, including listing,
showing, exporting and cleaning old runs.`,
}

var listResultsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all persisted runs",
	RunE:  runListResults,
}

var showResultsCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the full record of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowResults,
}

var exportResultsCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all persisted runs as CSV and/or JSON",
	RunE:  runExportResults,
}

var cleanResultsCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete old runs",
	Long:  `Delete persisted runs older than N days.`,
	RunE:  runCleanResults,
}

func init() {
	// Add results command to root
	rootCmd.AddCommand(resultsCmd)

	// Add subcommands
	resultsCmd.AddCommand(listResultsCmd)
	resultsCmd.AddCommand(showResultsCmd)
	resultsCmd.AddCommand(exportResultsCmd)
	resultsCmd.AddCommand(cleanResultsCmd)

	// Global flags for results command
	resultsCmd.PersistentFlags().StringVar(&resultsDataDir, "data-dir", "./data", "Base directory for run storage")

	// Export command flags
	exportResultsCmd.Flags().StringVar(&exportCSVPath, "csv", "", "CSV output path")
	exportResultsCmd.Flags().StringVar(&exportJSONPath, "json", "", "JSON output path")

	// Clean command flags
	cleanResultsCmd.Flags().IntVar(&olderThanDays, "older-than", 0, "Delete runs older than N days (required)")
	cleanResultsCmd.Flags().BoolVarP(&forceClean, "force", "f", false, "Skip confirmation prompt")
}

func runListResults(cmd *cobra.Command, args []string) error {
	runStore, err := store.NewFSStore(resultsDataDir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	infos, err := runStore.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(infos) == 0 {
		fmt.Println("No runs found.")
		return nil
	}

	// Display runs in a table
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tCREATED\tALGORITHM\tINSTANCE\tVALUE\tWEIGHT\tSEED")
	fmt.Fprintln(w, "------\t-------\t---------\t--------\t-----\t------\t----")

	for _, info := range infos {
		// Truncate run ID for display
		displayID := info.RunID
		if len(displayID) > 12 {
			displayID = displayID[:12] + "..."
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			displayID,
			info.CreatedAt.Format("2006-01-02 15:04:05"),
			info.Algorithm,
			info.Instance,
			info.Value,
			info.Weight,
			info.Seed,
		)
	}

	w.Flush()

	fmt.Printf("\nTotal runs: %d\n", len(infos))
	return nil
}

func runShowResults(cmd *cobra.Command, args []string) error {
	runStore, err := store.NewFSStore(resultsDataDir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	record, err := runStore.LoadRun(args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runExportResults(cmd *cobra.Command, args []string) error {
	if exportCSVPath == "" && exportJSONPath == "" {
		return fmt.Errorf("must specify --csv and/or --json")
	}

	runStore, err := store.NewFSStore(resultsDataDir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	infos, err := runStore.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(infos) == 0 {
		fmt.Println("No runs to export.")
		return nil
	}

	results := make([]experiment.Result, 0, len(infos))
	for _, info := range infos {
		record, err := runStore.LoadRun(info.RunID)
		if err != nil {
			return fmt.Errorf("failed to load run %s: %w", info.RunID, err)
		}
		results = append(results, record.Result)
	}

	if exportCSVPath != "" {
		if err := store.ExportCSV(exportCSVPath, results); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d runs)\n", exportCSVPath, len(results))
	}
	if exportJSONPath != "" {
		if err := store.ExportJSON(exportJSONPath, results); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d runs)\n", exportJSONPath, len(results))
	}

	return nil
}

func runCleanResults(cmd *cobra.Command, args []string) error {
	if olderThanDays <= 0 {
		return fmt.Errorf("must specify --older-than")
	}

	runStore, err := store.NewFSStore(resultsDataDir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	infos, err := runStore.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(infos) == 0 {
		fmt.Println("No runs to clean.")
		return nil
	}

	// Determine which runs to delete
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	var toDelete []store.RunInfo
	for _, info := range infos {
		if info.CreatedAt.Before(cutoff) {
			toDelete = append(toDelete, info)
		}
	}

	if len(toDelete) == 0 {
		fmt.Println("No runs match deletion criteria.")
		return nil
	}

	// Show what will be deleted
	fmt.Printf("Found %d run(s) to delete:\n", len(toDelete))
	for _, info := range toDelete {
		displayID := info.RunID
		if len(displayID) > 12 {
			displayID = displayID[:12] + "..."
		}
		fmt.Printf("  - %s (%s on %s, %s)\n",
			displayID,
			info.Algorithm,
			info.Instance,
			info.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}

	// Ask for confirmation unless --force is set
	if !forceClean {
		fmt.Print("\nProceed with deletion? [y/N]: ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	// Delete runs
	deleted := 0
	failed := 0
	for _, info := range toDelete {
		err := runStore.DeleteRun(info.RunID)
		if err != nil {
			slog.Error("Failed to delete run", "run_id", info.RunID, "error", err)
			failed++
		} else {
			slog.Info("Deleted run", "run_id", info.RunID)
			deleted++
		}
	}

	fmt.Printf("\nDeleted %d run(s), %d failed.\n", deleted, failed)
	return nil
}

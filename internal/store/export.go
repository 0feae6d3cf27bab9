package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cwbudde/hyperknapsack/internal/experiment"
)

// csvHeader is the column layout for exported result batches.
var csvHeader = []string{
	"algorithm", "instance", "n", "capacity", "seed", "run",
	"value", "weight", "feasible", "items_selected", "execution_ms",
	"optimal", "gap_percent",
}

// ExportCSV writes a batch of results as a CSV file. The file is written
// atomically via a temp file and rename.
func ExportCSV(path string, results []experiment.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		optimal := ""
		if result.Optimal != nil {
			optimal = strconv.Itoa(*result.Optimal)
		}
		gap := ""
		if result.GapPercent != nil {
			gap = strconv.FormatFloat(*result.GapPercent, 'f', 4, 64)
		}
		row := []string{
			result.Algorithm,
			result.Instance,
			strconv.Itoa(result.InstanceSize),
			strconv.Itoa(result.InstanceCapacity),
			strconv.FormatInt(result.Seed, 10),
			strconv.Itoa(result.Run),
			strconv.Itoa(result.Value),
			strconv.Itoa(result.Weight),
			strconv.FormatBool(result.Feasible),
			strconv.Itoa(result.ItemsSelected),
			strconv.FormatFloat(result.ExecutionMS, 'f', 3, 64),
			optimal,
			gap,
		}
		if err := writer.Write(row); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close export file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize export file: %w", err)
	}
	return nil
}

// ExportJSON writes a batch of results as a single indented JSON array,
// atomically via a temp file and rename.
func ExportJSON(path string, results []experiment.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize export file: %w", err)
	}
	return nil
}

package store

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/cwbudde/hyperknapsack/internal/hyper"
)

func testOutcomes() []hyper.Outcome {
	return []hyper.Outcome{
		{Operator: "local_search_1flip", OldValue: 25, NewValue: 28, Improvement: 3, Reward: 2.2, Score: 2.2},
		{Operator: "local_search_2swap", OldValue: 28, NewValue: 28, Improvement: 0, Reward: 0.5, Score: 1.1},
		{Operator: "fill_remaining", OldValue: 28, NewValue: 30, Improvement: 2, Reward: 1.7, Score: 1.9},
	}
}

func TestHistory_WriteReadRoundTrip(t *testing.T) {
	baseDir := t.TempDir()

	writer, err := NewHistoryWriter(baseDir, "run-1")
	if err != nil {
		t.Fatalf("NewHistoryWriter failed: %v", err)
	}

	if err := writer.WriteAll(testOutcomes()); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reader, err := NewHistoryReader(baseDir, "run-1")
	if err != nil {
		t.Fatalf("NewHistoryReader failed: %v", err)
	}
	defer reader.Close()

	entries, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i, entry := range entries {
		if entry.Step != i {
			t.Errorf("Entry %d: expected step %d, got %d", i, i, entry.Step)
		}
		if entry.Timestamp.IsZero() {
			t.Errorf("Entry %d: timestamp should be set", i)
		}
	}
	if entries[0].Operator != "local_search_1flip" || entries[0].Improvement != 3 {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[2].NewValue != 30 || entries[2].Reward != 1.7 {
		t.Errorf("Unexpected last entry: %+v", entries[2])
	}
}

func TestHistory_ReadSequential(t *testing.T) {
	baseDir := t.TempDir()

	writer, err := NewHistoryWriter(baseDir, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if err := writer.WriteAll(testOutcomes()[:2]); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	reader, err := NewHistoryReader(baseDir, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	first, err := reader.Read()
	if err != nil {
		t.Fatalf("First read failed: %v", err)
	}
	if first.Operator != "local_search_1flip" {
		t.Errorf("Unexpected first entry: %+v", first)
	}

	if _, err := reader.Read(); err != nil {
		t.Fatalf("Second read failed: %v", err)
	}

	if _, err := reader.Read(); err != io.EOF {
		t.Errorf("Expected io.EOF after last entry, got %v", err)
	}
}

func TestHistory_FlushMakesEntriesVisible(t *testing.T) {
	baseDir := t.TempDir()

	writer, err := NewHistoryWriter(baseDir, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	defer writer.Close()

	if err := writer.Write(EntryFromOutcome(0, testOutcomes()[0])); err != nil {
		t.Fatal(err)
	}
	if err := writer.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	data, err := os.ReadFile(writer.Path())
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("Flushed entry should be on disk")
	}
}

func TestHistory_ReaderNotFound(t *testing.T) {
	_, err := NewHistoryReader(t.TempDir(), "missing")
	if err == nil {
		t.Fatal("Expected error for missing history")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestHistory_DeletedWithRun(t *testing.T) {
	baseDir := t.TempDir()
	store, err := NewFSStore(baseDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveRun("run-1", NewRunRecord("run-1", testResult())); err != nil {
		t.Fatal(err)
	}

	writer, err := NewHistoryWriter(baseDir, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	writer.WriteAll(testOutcomes())
	writer.Close()

	if err := store.DeleteRun("run-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(writer.Path()); !os.IsNotExist(err) {
		t.Error("History file should be removed with its run directory")
	}
}

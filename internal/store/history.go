package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cwbudde/hyperknapsack/internal/hyper"
)

// HistoryEntry is one hyperheuristic application event, serialized as a JSON
// line in history.jsonl.
type HistoryEntry struct {
	Step        int       `json:"step"`
	Operator    string    `json:"operator"`
	OldValue    int       `json:"oldValue"`
	NewValue    int       `json:"newValue"`
	Improvement int       `json:"improvement"`
	Reward      float64   `json:"reward"`
	Score       float64   `json:"score"`
	Timestamp   time.Time `json:"timestamp"`
}

// EntryFromOutcome converts an engine outcome into a history entry.
func EntryFromOutcome(step int, outcome hyper.Outcome) HistoryEntry {
	return HistoryEntry{
		Step:        step,
		Operator:    outcome.Operator,
		OldValue:    outcome.OldValue,
		NewValue:    outcome.NewValue,
		Improvement: outcome.Improvement,
		Reward:      outcome.Reward,
		Score:       outcome.Score,
		Timestamp:   time.Now(),
	}
}

// HistoryWriter writes history entries to a JSONL file.
// It uses buffered I/O for performance and is safe for concurrent use.
type HistoryWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
	path   string
}

// NewHistoryWriter creates a history writer for the given run. The file is
// created at <baseDir>/runs/<runID>/history.jsonl.
func NewHistoryWriter(baseDir, runID string) (*HistoryWriter, error) {
	runDir := filepath.Join(baseDir, "runs", runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	path := filepath.Join(runDir, "history.jsonl")
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}

	return &HistoryWriter{
		file:   file,
		writer: bufio.NewWriterSize(file, 64*1024),
		path:   path,
	}, nil
}

// Write appends an entry to the file. The entry is buffered and will be
// written on Flush() or Close().
func (hw *HistoryWriter) Write(entry HistoryEntry) error {
	hw.mu.Lock()
	defer hw.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}
	if _, err := hw.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write history entry: %w", err)
	}
	if err := hw.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	return nil
}

// WriteAll writes an engine's full history in order.
func (hw *HistoryWriter) WriteAll(outcomes []hyper.Outcome) error {
	for step, outcome := range outcomes {
		if err := hw.Write(EntryFromOutcome(step, outcome)); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered data to the file and syncs it to disk.
func (hw *HistoryWriter) Flush() error {
	hw.mu.Lock()
	defer hw.mu.Unlock()

	if err := hw.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush history writer: %w", err)
	}
	if err := hw.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync history file: %w", err)
	}
	return nil
}

// Close flushes buffered data and closes the history file.
func (hw *HistoryWriter) Close() error {
	hw.mu.Lock()
	defer hw.mu.Unlock()

	if err := hw.writer.Flush(); err != nil {
		hw.file.Close()
		return fmt.Errorf("failed to flush on close: %w", err)
	}
	if err := hw.file.Close(); err != nil {
		return fmt.Errorf("failed to close history file: %w", err)
	}
	return nil
}

// Path returns the filesystem path to the history file.
func (hw *HistoryWriter) Path() string {
	return hw.path
}

// HistoryReader reads history entries from a JSONL file.
type HistoryReader struct {
	file    *os.File
	scanner *bufio.Scanner
}

// NewHistoryReader opens the history file for the given run.
func NewHistoryReader(baseDir, runID string) (*HistoryReader, error) {
	path := filepath.Join(baseDir, "runs", runID, "history.jsonl")

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{RunID: runID}
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	return &HistoryReader{file: file, scanner: scanner}, nil
}

// Read returns the next entry, or io.EOF when exhausted.
func (hr *HistoryReader) Read() (*HistoryEntry, error) {
	if !hr.scanner.Scan() {
		if err := hr.scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to scan history line: %w", err)
		}
		return nil, io.EOF
	}

	var entry HistoryEntry
	if err := json.Unmarshal(hr.scanner.Bytes(), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
	}
	return &entry, nil
}

// ReadAll reads every remaining entry.
func (hr *HistoryReader) ReadAll() ([]HistoryEntry, error) {
	var entries []HistoryEntry
	for {
		entry, err := hr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// Close closes the history reader.
func (hr *HistoryReader) Close() error {
	if err := hr.file.Close(); err != nil {
		return fmt.Errorf("failed to close history file: %w", err)
	}
	return nil
}

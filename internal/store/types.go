package store

import (
	"time"

	"github.com/cwbudde/hyperknapsack/internal/experiment"
)

// RunRecord is the persisted form of one completed solver run: the metrics
// row plus enough identity to list and resume reporting later.
type RunRecord struct {
	RunID     string            `json:"runId"`
	CreatedAt time.Time         `json:"createdAt"`
	Result    experiment.Result `json:"result"`
}

// RunInfo is the listing view of a stored run, without operator statistics.
type RunInfo struct {
	RunID     string    `json:"runId"`
	Algorithm string    `json:"algorithm"`
	Instance  string    `json:"instance"`
	Value     int       `json:"value"`
	Weight    int       `json:"weight"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewRunRecord builds a record from a run result.
func NewRunRecord(runID string, result experiment.Result) *RunRecord {
	return &RunRecord{
		RunID:     runID,
		CreatedAt: time.Now(),
		Result:    result,
	}
}

// ToInfo converts a full record to its listing view.
func (r *RunRecord) ToInfo() RunInfo {
	return RunInfo{
		RunID:     r.RunID,
		Algorithm: r.Result.Algorithm,
		Instance:  r.Result.Instance,
		Value:     r.Result.Value,
		Weight:    r.Result.Weight,
		Seed:      r.Result.Seed,
		CreatedAt: r.CreatedAt,
	}
}

// Validate checks that the record has the fields persistence relies on.
func (r *RunRecord) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if r.Result.Algorithm == "" {
		return &ValidationError{Field: "Result.Algorithm", Reason: "cannot be empty"}
	}
	if r.Result.InstanceSize <= 0 {
		return &ValidationError{Field: "Result.InstanceSize", Reason: "must be positive"}
	}
	if r.Result.InstanceCapacity <= 0 {
		return &ValidationError{Field: "Result.InstanceCapacity", Reason: "must be positive"}
	}
	if r.Result.Value < 0 {
		return &ValidationError{Field: "Result.Value", Reason: "cannot be negative"}
	}
	if r.Result.Weight < 0 {
		return &ValidationError{Field: "Result.Weight", Reason: "cannot be negative"}
	}
	if r.CreatedAt.IsZero() {
		return &ValidationError{Field: "CreatedAt", Reason: "cannot be zero"}
	}
	return nil
}

// ValidationError represents a run record validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}

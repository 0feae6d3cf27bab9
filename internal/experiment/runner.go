package experiment

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/hyperknapsack/internal/hyper"
	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// Result holds the metrics collected from one seeded run of one algorithm on
// one instance. It is the row format for CSV/JSON result exports.
type Result struct {
	Algorithm        string                     `json:"algorithm"`
	Instance         string                     `json:"instance"`
	InstanceSize     int                        `json:"instanceSize"`
	InstanceCapacity int                        `json:"instanceCapacity"`
	Seed             int64                      `json:"seed"`
	Run              int                        `json:"run,omitempty"`
	Value            int                        `json:"value"`
	Weight           int                        `json:"weight"`
	Feasible         bool                       `json:"feasible"`
	ItemsSelected    int                        `json:"itemsSelected"`
	ExecutionMS      float64                    `json:"executionMs"`
	Optimal          *int                       `json:"optimal,omitempty"`
	GapPercent       *float64                   `json:"gapPercent,omitempty"`
	Timestamp        time.Time                  `json:"timestamp"`
	OperatorStats    []hyper.OperatorStatistics `json:"operatorStats,omitempty"`
}

// Runner executes seeded algorithm runs and accumulates their results.
type Runner struct {
	results []Result
}

// NewRunner creates an empty runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Results returns every result collected so far.
func (r *Runner) Results() []Result {
	return r.results
}

// RunSingle executes one seeded run and records its result. The run's
// history (for hyperheuristic algorithms) is not stored in the result row;
// callers that want it should invoke the algorithm directly.
func (r *Runner) RunSingle(algo Algorithm, inst *knap.Instance, seed int64) (Result, error) {
	start := time.Now()
	solution, stats, _, err := algo.Solve(inst, seed)
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, fmt.Errorf("algorithm %s failed: %w", algo.Name, err)
	}
	if !solution.IsFeasible() {
		return Result{}, fmt.Errorf("algorithm %s returned infeasible solution (weight %d > capacity %d)",
			algo.Name, solution.Weight, inst.Capacity)
	}

	result := Result{
		Algorithm:        algo.Name,
		Instance:         inst.Name,
		InstanceSize:     inst.N(),
		InstanceCapacity: inst.Capacity,
		Seed:             seed,
		Value:            solution.Value,
		Weight:           solution.Weight,
		Feasible:         true,
		ItemsSelected:    len(solution.Selected()),
		ExecutionMS:      float64(elapsed.Microseconds()) / 1000,
		Timestamp:        time.Now(),
		OperatorStats:    stats,
	}

	if inst.Optimal != nil {
		result.Optimal = inst.Optimal
		if solution.Value > *inst.Optimal {
			slog.Warn("Solution exceeds recorded optimal; instance metadata is inconsistent",
				"algorithm", algo.Name, "instance", inst.Name,
				"value", solution.Value, "optimal", *inst.Optimal)
		}
		if gap, ok := solution.Gap(); ok {
			result.GapPercent = &gap
		}
	}

	r.results = append(r.results, result)
	return result, nil
}

// RunMultiple executes numRuns seeded runs, with seeds baseSeed, baseSeed+1,
// and so on, so randomized algorithms can be summarized statistically.
func (r *Runner) RunMultiple(algo Algorithm, inst *knap.Instance, numRuns int, baseSeed int64) ([]Result, error) {
	if numRuns <= 0 {
		return nil, &knap.ValidationError{Field: "NumRuns", Reason: "must be positive"}
	}

	results := make([]Result, 0, numRuns)
	for run := 0; run < numRuns; run++ {
		result, err := r.RunSingle(algo, inst, baseSeed+int64(run))
		if err != nil {
			return nil, err
		}
		result.Run = run + 1
		r.results[len(r.results)-1].Run = run + 1
		results = append(results, result)
	}
	return results, nil
}

// RunComparison runs every algorithm numRuns times on the same instance.
func (r *Runner) RunComparison(inst *knap.Instance, algorithms []Algorithm, numRuns int, baseSeed int64) ([]Result, error) {
	var all []Result
	for _, algo := range algorithms {
		slog.Info("Running algorithm", "algorithm", algo.Name, "instance", inst.Name, "runs", numRuns)
		results, err := r.RunMultiple(algo, inst, numRuns, baseSeed)
		if err != nil {
			return nil, err
		}
		all = append(all, results...)
	}
	return all, nil
}

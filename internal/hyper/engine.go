package hyper

import (
	"math/rand"

	"github.com/cwbudde/hyperknapsack/internal/heuristics"
	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// OperatorStats is the per-operator learning record shared by every policy.
// Score feeds the roulette-style selection and reporting, QValue the
// reinforcement-learning policies, Uses the usage statistics. Each policy
// reads and writes only the fields its algorithm needs.
type OperatorStats struct {
	Score  float64
	QValue float64
	Uses   int
}

// Outcome is one entry of the append-only application history. Reward and
// Score record the roulette-style bookkeeping, which every policy maintains
// for reporting even when its own update rule differs.
type Outcome struct {
	Operator    string  `json:"operator"`
	OldValue    int     `json:"oldValue"`
	NewValue    int     `json:"newValue"`
	Improvement int     `json:"improvement"`
	Reward      float64 `json:"reward"`
	Score       float64 `json:"score"`
}

// OperatorStatistics is the aggregated per-operator view exported to result
// sinks after a solve.
type OperatorStatistics struct {
	Operator         string  `json:"operator"`
	Uses             int     `json:"uses"`
	AvgImprovement   float64 `json:"avgImprovement"`
	TotalImprovement int     `json:"totalImprovement"`
	BestImprovement  int     `json:"bestImprovement"`
	Score            float64 `json:"score"`
	QValue           float64 `json:"qValue"`
}

// scoreFloor keeps every operator selectable by the roulette: scores are
// clamped here so no operator's probability mass ever reaches zero.
const scoreFloor = 0.1

// engine is the state shared by all selection policies: the fixed operator
// set, the per-operator stats, the event history and the run's RNG. It is
// exclusively owned by one policy instance; nothing here is safe for
// concurrent use across solves.
type engine struct {
	operators []heuristics.Operator
	stats     map[string]*OperatorStats
	history   []Outcome
	rng       *rand.Rand
}

func newEngine(operators []heuristics.Operator, initialQ float64, rng *rand.Rand) engine {
	stats := make(map[string]*OperatorStats, len(operators))
	for _, op := range operators {
		stats[op.Name] = &OperatorStats{Score: 1.0, QValue: initialQ}
	}
	return engine{
		operators: operators,
		stats:     stats,
		rng:       rng,
	}
}

// recordOutcome applies the multiplicative score update shared by all
// policies and appends the history record. Called once per feasible
// application; infeasible candidates never reach it.
func (e *engine) recordOutcome(name string, oldValue, newValue int) {
	improvement := newValue - oldValue

	var reward float64
	switch {
	case improvement > 0:
		reward = 1 + float64(improvement)/float64(max(oldValue, 1))*10
	case improvement == 0:
		reward = 0.5
	default:
		reward = 0.1
	}

	st := e.stats[name]
	st.Score *= reward
	if st.Score < scoreFloor {
		st.Score = scoreFloor
	}
	st.Uses++

	e.history = append(e.history, Outcome{
		Operator:    name,
		OldValue:    oldValue,
		NewValue:    newValue,
		Improvement: improvement,
		Reward:      reward,
		Score:       st.Score,
	})
}

// selectRoulette draws an operator with probability proportional to its
// current score. The floor on scores guarantees positive mass for every
// operator even after a long streak of failures.
func (e *engine) selectRoulette() heuristics.Operator {
	total := 0.0
	for _, op := range e.operators {
		total += e.stats[op.Name].Score
	}

	r := e.rng.Float64() * total
	accumulated := 0.0
	for _, op := range e.operators {
		accumulated += e.stats[op.Name].Score
		if accumulated >= r {
			return op
		}
	}
	return e.operators[len(e.operators)-1]
}

// History returns the raw application history for downstream reporting.
func (e *engine) History() []Outcome {
	return e.history
}

// Statistics aggregates the history per operator, in operator-set order.
func (e *engine) Statistics() []OperatorStatistics {
	out := make([]OperatorStatistics, 0, len(e.operators))
	for _, op := range e.operators {
		st := e.stats[op.Name]
		agg := OperatorStatistics{
			Operator: op.Name,
			Uses:     st.Uses,
			Score:    st.Score,
			QValue:   st.QValue,
		}
		for _, outcome := range e.history {
			if outcome.Operator != op.Name {
				continue
			}
			agg.TotalImprovement += outcome.Improvement
			if outcome.Improvement > agg.BestImprovement {
				agg.BestImprovement = outcome.Improvement
			}
		}
		if st.Uses > 0 {
			agg.AvgImprovement = float64(agg.TotalImprovement) / float64(st.Uses)
		}
		out = append(out, agg)
	}
	return out
}

// validateIterations guards the iteration budget before a solve begins.
func validateIterations(iterations int) error {
	if iterations <= 0 {
		return &knap.ValidationError{Field: "Iterations", Reason: "must be positive"}
	}
	return nil
}

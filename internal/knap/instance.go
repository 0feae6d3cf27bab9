package knap

import (
	"math"
)

// Instance is an immutable description of a 0/1 knapsack problem:
// n items with positive weights and non-negative values, and a capacity bound.
// Construct via NewInstance so the invariants are checked once; treat all
// fields as read-only afterwards.
type Instance struct {
	Name     string
	Capacity int
	Weights  []int
	Values   []int

	// Optimal is the known optimal value, if any. Used only for gap
	// reporting, never by the solvers themselves.
	Optimal *int
}

// ValidationError reports a malformed instance field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}

// NewInstance validates and builds an instance. The weight and value slices
// are copied, so the caller may reuse its buffers.
func NewInstance(capacity int, weights, values []int) (*Instance, error) {
	if capacity <= 0 {
		return nil, &ValidationError{Field: "Capacity", Reason: "must be positive"}
	}
	if len(weights) != len(values) {
		return nil, &ValidationError{Field: "Weights", Reason: "length must match Values"}
	}
	for _, w := range weights {
		if w <= 0 {
			return nil, &ValidationError{Field: "Weights", Reason: "must all be positive"}
		}
	}
	for _, v := range values {
		if v < 0 {
			return nil, &ValidationError{Field: "Values", Reason: "cannot be negative"}
		}
	}

	inst := &Instance{
		Name:     "unnamed",
		Capacity: capacity,
		Weights:  append([]int(nil), weights...),
		Values:   append([]int(nil), values...),
	}
	return inst, nil
}

// N returns the number of items.
func (inst *Instance) N() int {
	return len(inst.Weights)
}

// Ratio returns the value/weight ratio of item i, the "bang per buck" used by
// the greedy and RCL constructions. A zero weight maps to +Inf rather than
// dividing by zero.
func (inst *Instance) Ratio(i int) float64 {
	if inst.Weights[i] == 0 {
		return math.Inf(1)
	}
	return float64(inst.Values[i]) / float64(inst.Weights[i])
}

// Statistics summarizes an instance for reporting.
type Statistics struct {
	Name          string  `json:"name"`
	N             int     `json:"n"`
	Capacity      int     `json:"capacity"`
	Optimal       *int    `json:"optimal,omitempty"`
	TotalValue    int     `json:"totalValue"`
	TotalWeight   int     `json:"totalWeight"`
	AvgValue      float64 `json:"avgValue"`
	AvgWeight     float64 `json:"avgWeight"`
	AvgRatio      float64 `json:"avgRatio"`
	MaxRatio      float64 `json:"maxRatio"`
	MinRatio      float64 `json:"minRatio"`
	CapacityRatio float64 `json:"capacityRatio"`
}

// Statistics computes summary statistics for the instance.
func (inst *Instance) Statistics() Statistics {
	n := inst.N()
	stats := Statistics{
		Name:     inst.Name,
		N:        n,
		Capacity: inst.Capacity,
		Optimal:  inst.Optimal,
	}
	if n == 0 {
		return stats
	}

	stats.MinRatio = math.Inf(1)
	stats.MaxRatio = math.Inf(-1)
	ratioSum := 0.0
	for i := 0; i < n; i++ {
		stats.TotalValue += inst.Values[i]
		stats.TotalWeight += inst.Weights[i]
		r := inst.Ratio(i)
		ratioSum += r
		if r > stats.MaxRatio {
			stats.MaxRatio = r
		}
		if r < stats.MinRatio {
			stats.MinRatio = r
		}
	}

	stats.AvgValue = float64(stats.TotalValue) / float64(n)
	stats.AvgWeight = float64(stats.TotalWeight) / float64(n)
	stats.AvgRatio = ratioSum / float64(n)
	if stats.TotalWeight > 0 {
		stats.CapacityRatio = float64(inst.Capacity) / float64(stats.TotalWeight)
	}
	return stats
}

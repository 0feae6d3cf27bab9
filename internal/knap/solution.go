package knap

import (
	"fmt"
	"math/rand"
	"strings"
)

// Solution is a mutable binary selection over an instance's items. Value and
// Weight are caches over Items and are refreshed by Evaluate after every
// mutation; the mutating methods below do this themselves.
//
// Infeasible solutions (Weight > capacity) may exist transiently during a
// search, but callers must never report one as a final or best solution.
type Solution struct {
	Instance *Instance
	Items    []int
	Value    int
	Weight   int
}

// NewSolution creates an empty solution (no items selected) for the instance.
func NewSolution(inst *Instance) *Solution {
	return &Solution{
		Instance: inst,
		Items:    make([]int, inst.N()),
	}
}

// Evaluate recomputes the cached value and weight from the items vector.
func (s *Solution) Evaluate() {
	value, weight := 0, 0
	for i, sel := range s.Items {
		if sel == 1 {
			value += s.Instance.Values[i]
			weight += s.Instance.Weights[i]
		}
	}
	s.Value = value
	s.Weight = weight
}

// IsFeasible reports whether the selection fits within capacity.
func (s *Solution) IsFeasible() bool {
	return s.Weight <= s.Instance.Capacity
}

// Copy returns an independent deep copy sharing only the (read-only) instance.
func (s *Solution) Copy() *Solution {
	out := &Solution{
		Instance: s.Instance,
		Items:    append([]int(nil), s.Items...),
		Value:    s.Value,
		Weight:   s.Weight,
	}
	return out
}

// Add selects item i if the result stays feasible. Returns true if the item
// is in the knapsack afterwards.
func (s *Solution) Add(i int) bool {
	if s.Items[i] == 1 {
		return true
	}
	s.Items[i] = 1
	s.Evaluate()
	if !s.IsFeasible() {
		s.Items[i] = 0
		s.Evaluate()
		return false
	}
	return true
}

// Remove deselects item i.
func (s *Solution) Remove(i int) {
	s.Items[i] = 0
	s.Evaluate()
}

// Flip toggles item i. Unlike Add this may leave the solution infeasible;
// callers are expected to check IsFeasible.
func (s *Solution) Flip(i int) {
	s.Items[i] = 1 - s.Items[i]
	s.Evaluate()
}

// Selected returns the indices of items currently in the knapsack.
func (s *Solution) Selected() []int {
	out := make([]int, 0, len(s.Items))
	for i, sel := range s.Items {
		if sel == 1 {
			out = append(out, i)
		}
	}
	return out
}

// Unselected returns the indices of items currently outside the knapsack.
func (s *Solution) Unselected() []int {
	out := make([]int, 0, len(s.Items))
	for i, sel := range s.Items {
		if sel == 0 {
			out = append(out, i)
		}
	}
	return out
}

// RemainingCapacity returns the unused weight budget.
func (s *Solution) RemainingCapacity() int {
	return s.Instance.Capacity - s.Weight
}

// Gap returns the percentage gap to the known optimal value, or false when no
// optimal is recorded. A solution exceeding a supposed optimal indicates an
// inconsistent instance; the gap is clamped at zero in that case so reports
// never show a negative gap.
func (s *Solution) Gap() (float64, bool) {
	if s.Instance.Optimal == nil {
		return 0, false
	}
	opt := *s.Instance.Optimal
	if opt == 0 {
		return 0, true
	}
	gap := float64(opt-s.Value) / float64(opt) * 100
	if gap < 0 {
		gap = 0
	}
	return gap, true
}

// String renders the solution for logs and CLI output.
func (s *Solution) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Solution(value=%d, weight=%d/%d, items=%v)",
		s.Value, s.Weight, s.Instance.Capacity, s.Selected())
	return b.String()
}

// RandomSolution builds a feasible solution by trying items in a shuffled
// order and keeping those that fit. Used to seed restarts.
func RandomSolution(inst *Instance, rng *rand.Rand) *Solution {
	sol := NewSolution(inst)
	order := rng.Perm(inst.N())
	for _, i := range order {
		sol.Add(i)
	}
	return sol
}

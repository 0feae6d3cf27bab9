package heuristics

import (
	"math/rand"

	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// Kind tags an operator's calling convention. The tag is fixed when the
// operator set is assembled, so dispatch never needs to probe signatures at
// call time.
type Kind int

const (
	// Constructive operators build a solution from an instance.
	Constructive Kind = iota
	// Improvement operators transform an existing solution.
	Improvement
)

func (k Kind) String() string {
	switch k {
	case Constructive:
		return "constructive"
	case Improvement:
		return "improvement"
	default:
		return "unknown"
	}
}

// Operator is a named heuristic with exactly one of the two callables set,
// according to Kind. Names are the stable keys used by selection policies for
// scores, Q-values and history.
type Operator struct {
	Name      string
	Kind      Kind
	Construct func(*knap.Instance, *rand.Rand) *knap.Solution
	Improve   func(*knap.Solution, *rand.Rand) *knap.Solution
}

// Apply dispatches on the operator's kind: improvement operators receive the
// current solution, constructive operators the instance.
func (op Operator) Apply(inst *knap.Instance, current *knap.Solution, rng *rand.Rand) *knap.Solution {
	if op.Kind == Improvement {
		return op.Improve(current, rng)
	}
	return op.Construct(inst, rng)
}

// UnknownOperatorError is returned when a configuration names an operator
// that the registry does not know.
type UnknownOperatorError struct {
	Name string
}

func (e *UnknownOperatorError) Error() string {
	return "unknown operator: " + e.Name
}

// DefaultAlpha is the RCL randomness used by the registry's greedy_random
// entry. GRASP parameterizes alpha itself and does not go through the
// registry.
const DefaultAlpha = 0.3

// registry is the fixed ordered collection of operators. Order matters: the
// roulette and softmax selections iterate it deterministically.
var registry = []Operator{
	{Name: "greedy_value", Kind: Constructive, Construct: GreedyValue},
	{Name: "greedy_weight", Kind: Constructive, Construct: GreedyWeight},
	{Name: "greedy_ratio", Kind: Constructive, Construct: GreedyRatio},
	{Name: "greedy_random", Kind: Constructive, Construct: func(inst *knap.Instance, rng *rand.Rand) *knap.Solution {
		return GreedyRandom(inst, DefaultAlpha, rng)
	}},
	{Name: "local_search_1flip", Kind: Improvement, Improve: LocalSearch1Flip},
	{Name: "local_search_1flip_best", Kind: Improvement, Improve: LocalSearch1FlipBest},
	{Name: "local_search_2swap", Kind: Improvement, Improve: LocalSearch2Swap},
	{Name: "remove_worst", Kind: Improvement, Improve: RemoveWorst},
	{Name: "fill_remaining", Kind: Improvement, Improve: FillRemaining},
}

// All returns the full ordered operator set.
func All() []Operator {
	return append([]Operator(nil), registry...)
}

// ByName resolves operator names against the registry, preserving the given
// order. An unknown name fails the whole lookup so configuration errors
// surface before any solve begins.
func ByName(names ...string) ([]Operator, error) {
	ops := make([]Operator, 0, len(names))
	for _, name := range names {
		found := false
		for _, op := range registry {
			if op.Name == name {
				ops = append(ops, op)
				found = true
				break
			}
		}
		if !found {
			return nil, &UnknownOperatorError{Name: name}
		}
	}
	return ops, nil
}

// DefaultSet is the operator subset the hyperheuristic engine works with
// unless configured otherwise: two local searches plus the capacity filler.
func DefaultSet() []Operator {
	ops, _ := ByName("local_search_1flip", "local_search_2swap", "fill_remaining")
	return ops
}

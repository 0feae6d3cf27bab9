// Package hyper implements the hyperheuristic selection-and-learning engine:
// policies that pick a low-level operator each iteration, observe the value
// delta, and update their internal model of which operators pay off.
package hyper

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/hyperknapsack/internal/heuristics"
	"github.com/cwbudde/hyperknapsack/internal/knap"
)

// Policy names a selection-and-learning strategy.
type Policy string

const (
	PolicyRoulette      Policy = "roulette"
	PolicyEpsilonGreedy Policy = "epsilon_greedy"
	PolicyRL            Policy = "rl"
	PolicyAdaptive      Policy = "adaptive"
)

// Policies lists the supported policy names in a stable order.
func Policies() []Policy {
	return []Policy{PolicyRoulette, PolicyEpsilonGreedy, PolicyRL, PolicyAdaptive}
}

// HyperHeuristic is a configured engine, ready to solve. A single instance
// owns its mutable score/Q-value/history state and must not be shared across
// concurrent solves; independent runs take independent engines.
type HyperHeuristic interface {
	Solve(inst *knap.Instance, iterations int) (*knap.Solution, error)
	Statistics() []OperatorStatistics
	History() []Outcome
}

// Config assembles an engine. Zero values select the canonical parameters
// for the chosen policy; Operators nil selects the default operator set.
type Config struct {
	Policy    Policy
	Operators []string
	Seed      int64

	Epsilon         float64
	EpsilonDecay    float64
	MinEpsilon      float64
	LearningRate    float64
	DiscountFactor  float64
	StagnationLimit int
}

// New builds the engine for the configured policy. Unknown operator names or
// policies fail here, before any solve begins.
func New(cfg Config) (HyperHeuristic, error) {
	operators := heuristics.DefaultSet()
	if len(cfg.Operators) > 0 {
		var err error
		operators, err = heuristics.ByName(cfg.Operators...)
		if err != nil {
			return nil, err
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	switch cfg.Policy {
	case PolicyRoulette:
		return NewRoulette(operators, rng), nil

	case PolicyEpsilonGreedy:
		epsilon := defaultFloat(cfg.Epsilon, 0.3)
		decay := defaultFloat(cfg.EpsilonDecay, 0.99)
		minEpsilon := defaultFloat(cfg.MinEpsilon, 0.05)
		return NewEpsilonGreedy(operators, epsilon, decay, minEpsilon, rng), nil

	case PolicyRL:
		learningRate := defaultFloat(cfg.LearningRate, 0.1)
		discount := defaultFloat(cfg.DiscountFactor, 0.9)
		return NewReinforcementLearning(operators, learningRate, discount, rng), nil

	case PolicyAdaptive:
		epsilon := defaultFloat(cfg.Epsilon, 0.4)
		decay := defaultFloat(cfg.EpsilonDecay, 0.995)
		learningRate := defaultFloat(cfg.LearningRate, 0.15)
		limit := cfg.StagnationLimit
		if limit == 0 {
			limit = 20
		}
		return NewAdaptive(operators, epsilon, decay, learningRate, limit, rng), nil

	default:
		return nil, fmt.Errorf("unknown hyperheuristic policy: %q", cfg.Policy)
	}
}

func defaultFloat(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

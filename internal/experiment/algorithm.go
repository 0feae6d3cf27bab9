package experiment

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/hyperknapsack/internal/heuristics"
	"github.com/cwbudde/hyperknapsack/internal/hyper"
	"github.com/cwbudde/hyperknapsack/internal/knap"
	"github.com/cwbudde/hyperknapsack/internal/meta"
	"github.com/cwbudde/hyperknapsack/internal/opt"
)

// Algorithm is a named solver ready to run against an instance with an
// explicit seed. Hyperheuristic algorithms additionally report per-operator
// statistics and raw history from the run.
type Algorithm struct {
	Name  string
	Solve func(inst *knap.Instance, seed int64) (*knap.Solution, []hyper.OperatorStatistics, []hyper.Outcome, error)
}

// Options carries the tunable parameters shared by the algorithm catalog.
// Zero values select each algorithm's canonical defaults.
type Options struct {
	Iterations int
	Alpha      float64

	Annealing meta.AnnealingConfig
	HillClimb meta.HillClimbConfig

	Operators       []string
	Epsilon         float64
	EpsilonDecay    float64
	LearningRate    float64
	StagnationLimit int

	PopSize int
}

// AlgorithmNames lists the resolvable algorithm names in a stable order.
func AlgorithmNames() []string {
	return []string{
		"greedy_value", "greedy_weight", "greedy_ratio", "greedy_random",
		"sa", "grasp", "hc_restart",
		"hh_roulette", "hh_epsilon_greedy", "hh_rl", "hh_adaptive",
		"mayfly",
	}
}

// Resolve maps an algorithm name to a runnable Algorithm. Unknown names and
// invalid parameters fail here, before any run starts.
func Resolve(name string, opts Options) (Algorithm, error) {
	plain := func(f func(*knap.Instance, *rand.Rand) *knap.Solution) Algorithm {
		return Algorithm{
			Name: name,
			Solve: func(inst *knap.Instance, seed int64) (*knap.Solution, []hyper.OperatorStatistics, []hyper.Outcome, error) {
				rng := rand.New(rand.NewSource(seed))
				return f(inst, rng), nil, nil, nil
			},
		}
	}

	switch name {
	case "greedy_value":
		return plain(heuristics.GreedyValue), nil
	case "greedy_weight":
		return plain(heuristics.GreedyWeight), nil
	case "greedy_ratio":
		return plain(heuristics.GreedyRatio), nil

	case "greedy_random":
		alpha := opts.Alpha
		if alpha == 0 {
			alpha = heuristics.DefaultAlpha
		}
		return Algorithm{
			Name: name,
			Solve: func(inst *knap.Instance, seed int64) (*knap.Solution, []hyper.OperatorStatistics, []hyper.Outcome, error) {
				rng := rand.New(rand.NewSource(seed))
				return heuristics.GreedyRandom(inst, alpha, rng), nil, nil, nil
			},
		}, nil

	case "sa", "simulated_annealing":
		cfg := opts.Annealing
		if cfg == (meta.AnnealingConfig{}) {
			cfg = meta.DefaultAnnealingConfig()
		}
		if err := cfg.Validate(); err != nil {
			return Algorithm{}, err
		}
		return Algorithm{
			Name: name,
			Solve: func(inst *knap.Instance, seed int64) (*knap.Solution, []hyper.OperatorStatistics, []hyper.Outcome, error) {
				rng := rand.New(rand.NewSource(seed))
				sol, err := meta.SimulatedAnnealing(inst, cfg, rng)
				return sol, nil, nil, err
			},
		}, nil

	case "grasp":
		cfg := meta.DefaultGRASPConfig()
		if opts.Iterations > 0 {
			cfg.MaxIterations = opts.Iterations
		}
		if opts.Alpha != 0 {
			cfg.Alpha = opts.Alpha
		}
		if err := cfg.Validate(); err != nil {
			return Algorithm{}, err
		}
		return Algorithm{
			Name: name,
			Solve: func(inst *knap.Instance, seed int64) (*knap.Solution, []hyper.OperatorStatistics, []hyper.Outcome, error) {
				rng := rand.New(rand.NewSource(seed))
				sol, err := meta.GRASP(inst, cfg, rng)
				return sol, nil, nil, err
			},
		}, nil

	case "hc_restart", "hill_climbing_restart":
		cfg := opts.HillClimb
		if cfg == (meta.HillClimbConfig{}) {
			cfg = meta.DefaultHillClimbConfig()
		}
		if err := cfg.Validate(); err != nil {
			return Algorithm{}, err
		}
		return Algorithm{
			Name: name,
			Solve: func(inst *knap.Instance, seed int64) (*knap.Solution, []hyper.OperatorStatistics, []hyper.Outcome, error) {
				rng := rand.New(rand.NewSource(seed))
				sol, err := meta.HillClimbRestart(inst, cfg, rng)
				return sol, nil, nil, err
			},
		}, nil

	case "hh_roulette", "hh_epsilon_greedy", "hh_rl", "hh_adaptive":
		policy := hyper.Policy(name[len("hh_"):])
		iterations := opts.Iterations
		if iterations == 0 {
			iterations = 200
		}
		// Configuration errors (unknown operators) surface immediately.
		if _, err := hyper.New(hyper.Config{Policy: policy, Operators: opts.Operators}); err != nil {
			return Algorithm{}, err
		}
		return Algorithm{
			Name: name,
			Solve: func(inst *knap.Instance, seed int64) (*knap.Solution, []hyper.OperatorStatistics, []hyper.Outcome, error) {
				engine, err := hyper.New(hyper.Config{
					Policy:          policy,
					Operators:       opts.Operators,
					Seed:            seed,
					Epsilon:         opts.Epsilon,
					EpsilonDecay:    opts.EpsilonDecay,
					LearningRate:    opts.LearningRate,
					StagnationLimit: opts.StagnationLimit,
				})
				if err != nil {
					return nil, nil, nil, err
				}
				sol, err := engine.Solve(inst, iterations)
				if err != nil {
					return nil, nil, nil, err
				}
				return sol, engine.Statistics(), engine.History(), nil
			},
		}, nil

	case "mayfly":
		iterations := opts.Iterations
		if iterations == 0 {
			iterations = 100
		}
		popSize := opts.PopSize
		if popSize == 0 {
			popSize = 30
		}
		return Algorithm{
			Name: name,
			Solve: func(inst *knap.Instance, seed int64) (*knap.Solution, []hyper.OperatorStatistics, []hyper.Outcome, error) {
				optimizer := opt.NewMayfly(iterations, popSize, seed)
				return opt.RelaxedConstruct(inst, optimizer), nil, nil, nil
			},
		}, nil

	default:
		return Algorithm{}, fmt.Errorf("unknown algorithm: %q", name)
	}
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/hyperknapsack/internal/experiment"
	"github.com/cwbudde/hyperknapsack/internal/knap"
	"github.com/cwbudde/hyperknapsack/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// suiteConfig is the YAML layout of an experiment suite definition.
type suiteConfig struct {
	Name       string           `yaml:"name"`
	Instances  []string         `yaml:"instances"`
	Algorithms []suiteAlgorithm `yaml:"algorithms"`
	Runs       int              `yaml:"runs"`
	Seed       int64            `yaml:"seed"`
	Output     suiteOutput      `yaml:"output"`
}

type suiteAlgorithm struct {
	Name            string   `yaml:"name"`
	Iterations      int      `yaml:"iterations"`
	Alpha           float64  `yaml:"alpha"`
	Operators       []string `yaml:"operators"`
	Epsilon         float64  `yaml:"epsilon"`
	EpsilonDecay    float64  `yaml:"epsilonDecay"`
	LearningRate    float64  `yaml:"learningRate"`
	StagnationLimit int      `yaml:"stagnationLimit"`
	PopSize         int      `yaml:"popSize"`
}

type suiteOutput struct {
	CSV  string `yaml:"csv"`
	JSON string `yaml:"json"`
}

var experimentConfigPath string

var experimentCmd = &cobra.Command{
	Use:   "experiment",
	Short: "Run an experiment suite from a YAML definition",
	Long: `Runs every algorithm in the suite against every instance, multiple seeded
runs each, then prints a per-algorithm summary and exports the raw results
as CSV and/or JSON.`,
	RunE: runExperiment,
}

func init() {
	experimentCmd.Flags().StringVar(&experimentConfigPath, "config", "", "Suite definition file (required)")

	experimentCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(experimentCmd)
}

func loadSuiteConfig(path string) (*suiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite config: %w", err)
	}

	var cfg suiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse suite config: %w", err)
	}

	if len(cfg.Instances) == 0 {
		return nil, fmt.Errorf("suite config has no instances")
	}
	if len(cfg.Algorithms) == 0 {
		return nil, fmt.Errorf("suite config has no algorithms")
	}
	if cfg.Runs <= 0 {
		cfg.Runs = 1
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	return &cfg, nil
}

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, err := loadSuiteConfig(experimentConfigPath)
	if err != nil {
		return err
	}

	// Resolve all algorithms up front so a typo fails before any run starts.
	algorithms := make([]experiment.Algorithm, 0, len(cfg.Algorithms))
	for _, sa := range cfg.Algorithms {
		algo, err := experiment.Resolve(sa.Name, experiment.Options{
			Iterations:      sa.Iterations,
			Alpha:           sa.Alpha,
			Operators:       sa.Operators,
			Epsilon:         sa.Epsilon,
			EpsilonDecay:    sa.EpsilonDecay,
			LearningRate:    sa.LearningRate,
			StagnationLimit: sa.StagnationLimit,
			PopSize:         sa.PopSize,
		})
		if err != nil {
			return err
		}
		algorithms = append(algorithms, algo)
	}

	runner := experiment.NewRunner()
	for _, path := range cfg.Instances {
		inst, err := knap.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load instance %s: %w", path, err)
		}
		if _, err := runner.RunComparison(inst, algorithms, cfg.Runs, cfg.Seed); err != nil {
			return err
		}
	}

	results := runner.Results()
	printSummaries(experiment.Summarize(results))

	if cfg.Output.CSV != "" {
		if err := store.ExportCSV(cfg.Output.CSV, results); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", cfg.Output.CSV)
	}
	if cfg.Output.JSON != "" {
		if err := store.ExportJSON(cfg.Output.JSON, results); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", cfg.Output.JSON)
	}

	return nil
}

func printSummaries(summaries []experiment.Summary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tINSTANCE\tRUNS\tBEST\tMEAN\tSTDDEV\tMEAN MS")
	fmt.Fprintln(w, "---------\t--------\t----\t----\t----\t------\t-------")

	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.1f\t%.1f\t%.2f\n",
			s.Algorithm, s.Instance, s.Runs, s.BestValue, s.MeanValue, s.StdValue, s.MeanTimeMS)
	}

	w.Flush()
}

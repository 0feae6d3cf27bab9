package server

import (
	"github.com/cwbudde/hyperknapsack/internal/experiment"
)

// experimentResolve maps a job config onto the algorithm catalog.
func experimentResolve(config JobConfig) (experiment.Algorithm, error) {
	return experiment.Resolve(config.Algorithm, experiment.Options{
		Iterations: config.Iterations,
		Alpha:      config.Alpha,
		Operators:  config.Operators,
	})
}

// algorithmCatalog lists the algorithm names accepted by the jobs API.
func algorithmCatalog() []string {
	return experiment.AlgorithmNames()
}

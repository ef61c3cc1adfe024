package config

// SearchTuning defines settings for the two search strategies beyond
// the command-surface knobs. Loaded from the "tuning" section of the
// config file; zero values defer to each optimizer's own defaults.
type SearchTuning struct {
	Genetic     GeneticTuning     `mapstructure:"genetic"`
	BranchBound BranchBoundTuning `mapstructure:"branch_bound"`
}

type GeneticTuning struct {
	// CrossoverProbability is the per-pair likelihood of applying
	// single-point crossover.
	CrossoverProbability float64 `mapstructure:"crossover_probability"`
	// MutationProbability is the per-gene reassignment chance.
	MutationProbability float64 `mapstructure:"mutation_probability"`
	// TournamentSize is the selection pressure.
	TournamentSize int `mapstructure:"tournament_size"`
}

type BranchBoundTuning struct {
	// MaxNodes is the node budget before the exact search unwinds.
	MaxNodes int `mapstructure:"max_nodes"`
	// ScopeLimit is the order count above which the exact search is
	// skipped entirely.
	ScopeLimit int `mapstructure:"scope_limit"`
}

// DefaultSearchTuning returns a configuration with the documented
// default values.
func DefaultSearchTuning() SearchTuning {
	return SearchTuning{
		Genetic: GeneticTuning{
			CrossoverProbability: 0.8,
			MutationProbability:  0.1,
			TournamentSize:       3,
		},
		BranchBound: BranchBoundTuning{
			MaxNodes:   10000,
			ScopeLimit: 20,
		},
	}
}

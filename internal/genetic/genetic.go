// Package genetic implements the population-based optimizer: a vector
// of (order, machine) genes positionally aligned to task.Orders, scored
// by decoding+evaluating the schedule it implies. There is no global
// registry of individual/fitness types — an Individual is a plain slice
// and the operators below are ordinary functions passed a
// *rand.Rand, never a package-level random source.
package genetic

import (
	"math/rand"

	"github.com/atlantispak/packplan/internal/compat"
	"github.com/atlantispak/packplan/internal/domain"
	"github.com/atlantispak/packplan/internal/evaluator"
	"github.com/atlantispak/packplan/internal/scheduler"
)

// Config controls population shape and operator rates. Zero-value
// fields are replaced with DefaultConfig values by NewOptimizer.
type Config struct {
	PopulationSize       int
	Generations          int
	CrossoverProbability float64
	MutationProbability  float64
	TournamentSize       int
	Seed                 int64
}

// DefaultConfig returns the standard search parameters.
func DefaultConfig() Config {
	return Config{
		PopulationSize:       100,
		Generations:          50,
		CrossoverProbability: 0.8,
		MutationProbability:  0.1,
		TournamentSize:       3,
		Seed:                 1,
	}
}

// Individual is a vector of assignments, one per task.Orders entry, in
// the same order. It carries no sequence information: the decoder
// re-sorts by priority/delivery date before simulating, so position
// only ever encodes machine choice.
type Individual []domain.Assignment

// Optimizer runs the generational search.
type Optimizer struct {
	cfg  Config
	rand *rand.Rand
}

// NewOptimizer builds an Optimizer with cfg, filling in any zero-valued
// fields from DefaultConfig and seeding its own PRNG — never the
// package-level math/rand source — so a run is reproducible from Seed
// alone.
func NewOptimizer(cfg Config) *Optimizer {
	def := DefaultConfig()
	if cfg.PopulationSize <= 0 {
		cfg.PopulationSize = def.PopulationSize
	}
	if cfg.Generations <= 0 {
		cfg.Generations = def.Generations
	}
	if cfg.CrossoverProbability == 0 {
		cfg.CrossoverProbability = def.CrossoverProbability
	}
	if cfg.MutationProbability == 0 {
		cfg.MutationProbability = def.MutationProbability
	}
	if cfg.TournamentSize <= 0 {
		cfg.TournamentSize = def.TournamentSize
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	return &Optimizer{cfg: cfg, rand: rand.New(rand.NewSource(cfg.Seed))}
}

// Optimize runs the generational loop and returns the best individual
// across the final population, decoded and scored.
func (o *Optimizer) Optimize(task domain.Task, compatible compat.Func) (domain.OptimizationResult, error) {
	if compatible == nil {
		compatible = compat.Default(task)
	}
	available := compat.AvailableMachines(task)

	population := o.initialize(task, compatible, available)

	scores, err := o.scoreAll(population, task)
	if err != nil {
		return domain.OptimizationResult{}, err
	}

	for gen := 0; gen < o.cfg.Generations; gen++ {
		next := make([]Individual, 0, len(population))
		for len(next) < len(population) {
			parent1 := o.tournamentSelect(population, scores)
			parent2 := o.tournamentSelect(population, scores)

			child1, child2 := parent1, parent2
			if o.rand.Float64() < o.cfg.CrossoverProbability && len(parent1) > 1 {
				child1, child2 = o.crossover(parent1, parent2)
			}

			child1 = o.mutate(child1, task, compatible)
			next = append(next, child1)
			if len(next) < len(population) {
				child2 = o.mutate(child2, task, compatible)
				next = append(next, child2)
			}
		}
		population = next
		scores, err = o.scoreAll(population, task)
		if err != nil {
			return domain.OptimizationResult{}, err
		}
	}

	best := bestOf(population, scores)
	schedule, err := scheduler.Decode(best, task)
	if err != nil {
		return domain.OptimizationResult{}, err
	}
	m := evaluator.Evaluate(schedule, task)

	return domain.OptimizationResult{
		Schedule:                 schedule,
		TotalWasteKg:             m.TotalWasteKg,
		TotalProcessingHours:     m.TotalProcessingHours,
		EquipmentUtilization:     m.EquipmentUtilization,
		MakespanHours:            m.MakespanHours,
		WasteReductionPercentage: 0,
		Algorithm:                "genetic",
	}, nil
}

func (o *Optimizer) initialize(task domain.Task, compatible compat.Func, availableMachines []domain.Machine) []Individual {
	population := make([]Individual, o.cfg.PopulationSize)
	for p := range population {
		individual := make(Individual, len(task.Orders))
		for i, order := range task.Orders {
			candidates := compatible(order)
			var machineID int
			if len(candidates) > 0 {
				machineID = candidates[o.rand.Intn(len(candidates))].ID
			} else if len(availableMachines) > 0 {
				machineID = availableMachines[0].ID
			}
			individual[i] = domain.Assignment{OrderID: order.ID, MachineID: machineID}
		}
		population[p] = individual
	}
	return population
}

func (o *Optimizer) scoreAll(population []Individual, task domain.Task) ([]evaluator.Fitness, error) {
	scores := make([]evaluator.Fitness, len(population))
	for i, ind := range population {
		schedule, err := scheduler.Decode(ind, task)
		if err != nil {
			return nil, err
		}
		scores[i] = evaluator.FitnessOf(evaluator.Evaluate(schedule, task))
	}
	return scores, nil
}

// tournamentSelect draws tournamentSize distinct candidates without
// replacement and returns the dominant one.
func (o *Optimizer) tournamentSelect(population []Individual, scores []evaluator.Fitness) Individual {
	size := o.cfg.TournamentSize
	if size > len(population) {
		size = len(population)
	}
	indices := o.rand.Perm(len(population))[:size]

	winner := indices[0]
	for _, idx := range indices[1:] {
		if scores[idx].Dominates(scores[winner]) {
			winner = idx
		}
	}
	return population[winner]
}

// crossover performs single-point crossover at a uniformly chosen cut.
func (o *Optimizer) crossover(parent1, parent2 Individual) (Individual, Individual) {
	n := len(parent1)
	cx := 1 + o.rand.Intn(n-1)

	child1 := make(Individual, n)
	child2 := make(Individual, n)
	copy(child1[:cx], parent1[:cx])
	copy(child1[cx:], parent2[cx:])
	copy(child2[:cx], parent2[:cx])
	copy(child2[cx:], parent1[cx:])
	return child1, child2
}

// mutate reassigns each gene independently with MutationProbability to
// a uniformly random other compatible machine; genes with no other
// compatible option are left unchanged.
func (o *Optimizer) mutate(individual Individual, task domain.Task, compatible compat.Func) Individual {
	orderByID := make(map[int]domain.Order, len(task.Orders))
	for _, ord := range task.Orders {
		orderByID[ord.ID] = ord
	}

	mutated := make(Individual, len(individual))
	copy(mutated, individual)

	for i, gene := range mutated {
		if o.rand.Float64() >= o.cfg.MutationProbability {
			continue
		}
		order, ok := orderByID[gene.OrderID]
		if !ok {
			continue
		}
		candidates := compatible(order)
		others := make([]domain.Machine, 0, len(candidates))
		for _, m := range candidates {
			if m.ID != gene.MachineID {
				others = append(others, m)
			}
		}
		if len(others) == 0 {
			continue
		}
		mutated[i].MachineID = others[o.rand.Intn(len(others))].ID
	}
	return mutated
}

func bestOf(population []Individual, scores []evaluator.Fitness) Individual {
	best := 0
	for i := 1; i < len(population); i++ {
		if scores[i].Dominates(scores[best]) {
			best = i
		}
	}
	return population[best]
}

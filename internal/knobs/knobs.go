// Package knobs validates the request-level parameters of the command
// surface before an optimization run is ever started, returning one
// descriptive error per violated constraint rather than a single
// generic rejection.
package knobs

import "fmt"

// Algorithm is the closed set of routing choices the command surface
// accepts.
type Algorithm string

const (
	AlgorithmGenetic     Algorithm = "genetic"
	AlgorithmBranchBound Algorithm = "branch_bound"
	AlgorithmHybrid      Algorithm = "hybrid"
)

// Request is the raw, caller-supplied command-surface input.
type Request struct {
	Algorithm           Algorithm
	PlanningHorizonDays int
	PopulationSize      int
	Generations         int
}

// DefaultRequest returns the documented command-surface defaults.
func DefaultRequest() Request {
	return Request{
		Algorithm:           AlgorithmHybrid,
		PlanningHorizonDays: 30,
		PopulationSize:      100,
		Generations:         50,
	}
}

// Validate checks req against the accepted ranges, filling in any
// zero-valued fields with their defaults first (a caller who only
// wants to override one knob need not know the others' defaults). It
// returns every violation found, not just the first.
func Validate(req Request) (Request, error) {
	def := DefaultRequest()
	if req.Algorithm == "" {
		req.Algorithm = def.Algorithm
	}
	if req.PlanningHorizonDays == 0 {
		req.PlanningHorizonDays = def.PlanningHorizonDays
	}
	if req.PopulationSize == 0 {
		req.PopulationSize = def.PopulationSize
	}
	if req.Generations == 0 {
		req.Generations = def.Generations
	}

	var errs []error
	switch req.Algorithm {
	case AlgorithmGenetic, AlgorithmBranchBound, AlgorithmHybrid:
	default:
		errs = append(errs, fmt.Errorf("algorithm %q must be one of genetic, branch_bound, hybrid", req.Algorithm))
	}
	if req.PlanningHorizonDays < 1 || req.PlanningHorizonDays > 90 {
		errs = append(errs, fmt.Errorf("planning_horizon_days %d out of range [1, 90]", req.PlanningHorizonDays))
	}
	if req.PopulationSize < 20 || req.PopulationSize > 500 {
		errs = append(errs, fmt.Errorf("population_size %d out of range [20, 500]", req.PopulationSize))
	}
	if req.Generations < 10 || req.Generations > 200 {
		errs = append(errs, fmt.Errorf("generations %d out of range [10, 200]", req.Generations))
	}

	if len(errs) > 0 {
		return Request{}, joinErrors(errs)
	}
	return req, nil
}

// joinErrors concatenates violations into one message; kept local
// rather than pulling in errors.Join's multi-error formatting so the
// message reads as a flat, numbered list for CLI output.
func joinErrors(errs []error) error {
	msg := fmt.Sprintf("%d knob validation error(s):", len(errs))
	for i, e := range errs {
		msg += fmt.Sprintf("\n  %d. %s", i+1, e.Error())
	}
	return fmt.Errorf("%s", msg)
}

// PlanningHorizonHours converts the validated day count to hours, as
// the command surface contract requires.
func (r Request) PlanningHorizonHours() float64 {
	return float64(r.PlanningHorizonDays) * 24.0
}

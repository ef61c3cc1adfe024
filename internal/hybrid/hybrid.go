// Package hybrid is the thin router the rest of the system calls:
// small instances go to exact branch-and-bound, large ones to the
// genetic search, and the wall-clock time around the routing decision
// itself becomes the result's reported optimization time. The driver
// never compares strategies against each other; the order count alone
// decides.
package hybrid

import (
	"time"

	"github.com/atlantispak/packplan/internal/branchbound"
	"github.com/atlantispak/packplan/internal/compat"
	"github.com/atlantispak/packplan/internal/domain"
	"github.com/atlantispak/packplan/internal/genetic"
)

// ScopeLimit is the order count at or below which the driver routes to
// branch-and-bound instead of the genetic search.
const ScopeLimit = 15

// Driver wires a genetic optimizer and a branch-and-bound optimizer
// behind one Optimize call.
type Driver struct {
	Genetic     *genetic.Optimizer
	BranchBound *branchbound.Optimizer
	ScopeLimit  int
}

// NewDriver builds a Driver from the given sub-optimizers. A zero
// ScopeLimit falls back to the default of 15.
func NewDriver(ga *genetic.Optimizer, bnb *branchbound.Optimizer) *Driver {
	return &Driver{Genetic: ga, BranchBound: bnb, ScopeLimit: ScopeLimit}
}

// Optimize routes task to the appropriate strategy and stamps the
// elapsed wall-clock time onto the result.
func (d *Driver) Optimize(task domain.Task, compatible compat.Func) (domain.OptimizationResult, error) {
	started := time.Now()

	limit := d.ScopeLimit
	if limit <= 0 {
		limit = ScopeLimit
	}

	var (
		result domain.OptimizationResult
		err    error
	)
	if len(task.Orders) <= limit {
		result, err = d.BranchBound.Optimize(task, compatible)
	} else {
		result, err = d.Genetic.Optimize(task, compatible)
	}
	if err != nil {
		return domain.OptimizationResult{}, err
	}

	result.OptimizationTimeSeconds = time.Since(started).Seconds()
	result.Algorithm = "hybrid"
	return result, nil
}

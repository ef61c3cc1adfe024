// Package compat defines the shared "which machines can take this
// order" contract used by every search strategy (genetic, branch and
// bound, greedy) and by the optional rules engine that narrows it.
package compat

import "github.com/atlantispak/packplan/internal/domain"

// Func returns the machines eligible for order. Implementations are
// expected to have already filtered to available machines.
type Func func(order domain.Order) []domain.Machine

// Default returns the strict family-match compatibility function used
// whenever no eligibility rules are configured: every available
// machine whose process family equals the order's.
func Default(task domain.Task) Func {
	byFamily := make(map[domain.ProcessFamily][]domain.Machine)
	for _, m := range task.Machines {
		if m.IsAvailable {
			byFamily[m.ProcessFamily] = append(byFamily[m.ProcessFamily], m)
		}
	}
	return func(order domain.Order) []domain.Machine {
		return byFamily[order.ProcessFamily]
	}
}

// AvailableMachines filters task.Machines down to the available ones.
func AvailableMachines(task domain.Task) []domain.Machine {
	out := make([]domain.Machine, 0, len(task.Machines))
	for _, m := range task.Machines {
		if m.IsAvailable {
			out = append(out, m)
		}
	}
	return out
}

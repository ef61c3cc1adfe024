package branchbound

import (
	"sort"

	"github.com/atlantispak/packplan/internal/compat"
	"github.com/atlantispak/packplan/internal/costmodel"
	"github.com/atlantispak/packplan/internal/domain"
	"github.com/atlantispak/packplan/internal/evaluator"
)

// Greedy is the shared fallback/large-instance path: sort orders by
// (priority, delivery date, id), then for each pick the compatible
// available machine with the earliest cursor (ties: lowest machine
// id). It is always feasible and, run twice on the same task, always
// produces identical results since it consults no randomness.
func Greedy(task domain.Task, compatible compat.Func) (domain.OptimizationResult, error) {
	if compatible == nil {
		compatible = compat.Default(task)
	}

	sorted := make([]domain.Order, len(task.Orders))
	copy(sorted, task.Orders)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		if !sorted[i].DeliveryDate.Equal(sorted[j].DeliveryDate) {
			return sorted[i].DeliveryDate.Before(sorted[j].DeliveryDate)
		}
		return sorted[i].ID < sorted[j].ID
	})

	cursor := make(map[int]int64)
	lastOnMachine := make(map[int]*domain.Order)
	jobs := make([]job, 0, len(sorted))

	for _, order := range sorted {
		candidates := compatible(order)
		if len(candidates) == 0 {
			continue
		}

		best := candidates[0]
		for _, m := range candidates[1:] {
			if cursor[m.ID] < cursor[best.ID] || (cursor[m.ID] == cursor[best.ID] && m.ID < best.ID) {
				best = m
			}
		}

		prev := lastOnMachine[best.ID]
		setup := costmodel.SetupMinutes(order, best, prev)
		processing := processingMinutes(order.QuantityKg, best.EffectiveCapacity())
		start := cursor[best.ID] + int64(setup)
		end := start + int64(processing)

		jobs = append(jobs, job{
			orderID:           order.ID,
			machineID:         best.ID,
			start:             start,
			end:               end,
			setupMinutes:      setup,
			processingMinutes: processing,
		})

		cursor[best.ID] = end
		ordCopy := order
		lastOnMachine[best.ID] = &ordCopy
	}

	schedule, err := decodeFromJobs(jobs, task)
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
		Algorithm:                "greedy",
	}, nil
}

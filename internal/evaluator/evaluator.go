// Package evaluator scores a decoded schedule: total transition waste,
// total processing time, per-machine utilization, and makespan. It
// never re-simulates timing — it only reads the ScheduleItems the
// decoder already produced.
package evaluator

import (
	"sort"

	"github.com/atlantispak/packplan/internal/costmodel"
	"github.com/atlantispak/packplan/internal/domain"
)

// Metrics is the aggregate scoring of one schedule, everything
// domain.OptimizationResult needs besides the schedule itself and the
// wall-clock timing the driver stamps on afterward.
type Metrics struct {
	TotalWasteKg         float64
	TotalProcessingHours float64
	EquipmentUtilization map[int]float64
	MakespanHours        float64
}

// Evaluate computes Metrics for schedule against task. Machines with no
// items get utilization 0; an empty schedule has a zero makespan.
func Evaluate(schedule []domain.ScheduleItem, task domain.Task) Metrics {
	orderByID := make(map[int]domain.Order, len(task.Orders))
	for _, o := range task.Orders {
		orderByID[o.ID] = o
	}

	byMachine := make(map[int][]domain.ScheduleItem)
	for _, item := range schedule {
		byMachine[item.MachineID] = append(byMachine[item.MachineID], item)
	}

	var totalWasteKg float64
	var totalProcessingHours float64
	utilization := make(map[int]float64, len(task.Machines))

	for _, machine := range task.Machines {
		items := byMachine[machine.ID]
		sort.Slice(items, func(i, j int) bool {
			return items[i].ScheduledStart.Before(items[j].ScheduledStart)
		})

		var workingHours float64
		for i, item := range items {
			workingHours += item.ScheduledEnd.Sub(item.ScheduledStart).Hours()
			totalProcessingHours += item.ScheduledEnd.Sub(item.ScheduledStart).Hours()

			if i == 0 {
				continue
			}
			prevOrder, prevOK := orderByID[items[i-1].OrderID]
			nextOrder, nextOK := orderByID[item.OrderID]
			if prevOK && nextOK {
				totalWasteKg += nextOrder.QuantityKg * costmodel.Waste(prevOrder, nextOrder)
			}
		}

		if task.PlanningHorizonHours > 0 {
			u := workingHours / task.PlanningHorizonHours
			if u > 1.0 {
				u = 1.0
			}
			utilization[machine.ID] = u
		} else {
			utilization[machine.ID] = 0
		}
	}

	var makespanHours float64
	var latestEnd *domain.ScheduleItem
	for i := range schedule {
		if latestEnd == nil || schedule[i].ScheduledEnd.After(latestEnd.ScheduledEnd) {
			latestEnd = &schedule[i]
		}
	}
	if latestEnd != nil {
		makespanHours = latestEnd.ScheduledEnd.Sub(task.StartTime).Hours()
	}

	return Metrics{
		TotalWasteKg:         totalWasteKg,
		TotalProcessingHours: totalProcessingHours,
		EquipmentUtilization: utilization,
		MakespanHours:        makespanHours,
	}
}

// Fitness is the GA's two-objective score, minimized and compared by
// Pareto dominance (see Dominates).
type Fitness struct {
	WasteKg         float64
	ProcessingHours float64
}

// Dominates reports whether f is at least as good as other on both
// objectives and strictly better on at least one — standard Pareto
// dominance for a two-objective minimization.
func (f Fitness) Dominates(other Fitness) bool {
	betterOrEqual := f.WasteKg <= other.WasteKg && f.ProcessingHours <= other.ProcessingHours
	strictlyBetter := f.WasteKg < other.WasteKg || f.ProcessingHours < other.ProcessingHours
	return betterOrEqual && strictlyBetter
}

// FitnessOf reduces Metrics to the pair the GA selects on.
func FitnessOf(m Metrics) Fitness {
	return Fitness{WasteKg: m.TotalWasteKg, ProcessingHours: m.TotalProcessingHours}
}

// Package scheduler turns an order→machine assignment vector into a
// concrete, timed schedule by simulating each machine's queue in
// priority/deadline order. It is the one place per-machine state
// (last job, last end time) is tracked; the cost model it calls stays
// stateless.
package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/atlantispak/packplan/internal/costmodel"
	"github.com/atlantispak/packplan/internal/domain"
)

func minutesDuration(minutes int64) time.Duration {
	return time.Duration(minutes) * time.Minute
}

// machineState is the running cursor for one machine: when it's next
// free, and what it last ran (nil before the first job).
type machineState struct {
	lastEnd int64 // minutes since task.StartTime
	lastJob *domain.Order
}

// Decode simulates assignments against task and returns the resulting
// schedule items. It builds id→entity maps once, keeping decode linear
// in the assignment count, and never mutates the task.
//
// An assignment referencing an order or machine id the task does not
// contain is an internal consistency violation and returns
// domain.ErrUnknownReference; the decoder does not otherwise reject an
// assignment, even one pairing an order with an incompatible or
// unavailable machine — the evaluator is what penalizes that.
func Decode(assignments []domain.Assignment, task domain.Task) ([]domain.ScheduleItem, error) {
	orderByID := make(map[int]domain.Order, len(task.Orders))
	for _, o := range task.Orders {
		orderByID[o.ID] = o
	}
	machineByID := make(map[int]domain.Machine, len(task.Machines))
	for _, m := range task.Machines {
		machineByID[m.ID] = m
	}

	ordered := make([]domain.Assignment, len(assignments))
	copy(ordered, assignments)

	sort.SliceStable(ordered, func(i, j int) bool {
		oi, oiOK := orderByID[ordered[i].OrderID]
		oj, ojOK := orderByID[ordered[j].OrderID]
		if !oiOK || !ojOK {
			return false // unknown ids sort stably; validated below.
		}
		if oi.Priority != oj.Priority {
			return oi.Priority < oj.Priority
		}
		return oi.DeliveryDate.Before(oj.DeliveryDate)
	})

	states := make(map[int]*machineState, len(task.Machines))
	items := make([]domain.ScheduleItem, 0, len(ordered))

	for _, a := range ordered {
		order, ok := orderByID[a.OrderID]
		if !ok {
			return nil, fmt.Errorf("%w: order %d", domain.ErrUnknownReference, a.OrderID)
		}
		machine, ok := machineByID[a.MachineID]
		if !ok {
			return nil, fmt.Errorf("%w: machine %d", domain.ErrUnknownReference, a.MachineID)
		}

		state, ok := states[machine.ID]
		if !ok {
			state = &machineState{lastEnd: 0, lastJob: nil}
			states[machine.ID] = state
		}

		setup := costmodel.SetupMinutes(order, machine, state.lastJob)
		processing := processingMinutes(order.QuantityKg, machine.EffectiveCapacity())

		start := state.lastEnd + int64(setup)
		end := start + int64(processing)

		items = append(items, domain.ScheduleItem{
			OrderID:           order.ID,
			MachineID:         machine.ID,
			ScheduledStart:    task.StartTime.Add(minutesDuration(start)),
			ScheduledEnd:      task.StartTime.Add(minutesDuration(end)),
			SetupMinutes:      setup,
			ProcessingMinutes: processing,
		})

		state.lastEnd = end
		job := order
		state.lastJob = &job
	}

	return items, nil
}

// processingMinutes truncates toward zero, with a floor of one minute
// so a tiny order still occupies the machine briefly rather than
// stacking instantaneously with its neighbors.
func processingMinutes(quantityKg, capacityKgPerHour float64) int {
	minutes := int(quantityKg / capacityKgPerHour * 60)
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Package branchbound implements the exact branch-and-bound search for
// small instances, with a node budget and a greedy fallback it shares
// with the large-instance path: a depth-first walk over partial
// assignments pruned by a waste lower bound, deterministic because
// branches are always visited in machine-id order.
package branchbound

import (
	"sort"
	"time"

	"github.com/atlantispak/packplan/internal/compat"
	"github.com/atlantispak/packplan/internal/costmodel"
	"github.com/atlantispak/packplan/internal/domain"
	"github.com/atlantispak/packplan/internal/evaluator"
)

// Config bounds the exhaustiveness of the exact search.
type Config struct {
	// ScopeLimit: instances with more orders than this skip straight to
	// Greedy.
	ScopeLimit int
	// MaxNodes is the node budget; exceeding it unwinds the search
	// immediately and falls back to Greedy.
	MaxNodes int
}

// DefaultConfig returns the standard search bounds.
func DefaultConfig() Config {
	return Config{ScopeLimit: 20, MaxNodes: 10000}
}

// Optimizer runs the bounded exact search.
type Optimizer struct {
	cfg Config
}

func NewOptimizer(cfg Config) *Optimizer {
	def := DefaultConfig()
	if cfg.ScopeLimit <= 0 {
		cfg.ScopeLimit = def.ScopeLimit
	}
	if cfg.MaxNodes <= 0 {
		cfg.MaxNodes = def.MaxNodes
	}
	return &Optimizer{cfg: cfg}
}

// job is one placed order: the concrete timing the decoder would also
// produce, tracked directly during the search so the bound function
// never has to re-decode.
type job struct {
	orderID           int
	machineID         int
	start             int64
	end               int64
	setupMinutes      int
	processingMinutes int
}

// searcher holds the per-call mutable state the recursive descent
// shares: the node counter, the best incumbent found so far, and the
// lookups built once per call so no step of the descent re-scans
// task.Orders.
type searcher struct {
	task        domain.Task
	orderByID   map[int]domain.Order
	machineByID map[int]domain.Machine
	compatible  compat.Func
	maxNodes    int
	nodes       int

	bestWaste     float64
	bestAssigned  []job
	foundComplete bool
}

// Optimize runs the scoped exact search (or Greedy above the scope
// limit / on budget exhaustion) and returns the better of the
// incumbent and the Greedy result.
func (o *Optimizer) Optimize(task domain.Task, compatible compat.Func) (domain.OptimizationResult, error) {
	if compatible == nil {
		compatible = compat.Default(task)
	}

	greedyResult, err := Greedy(task, compatible)
	if err != nil {
		return domain.OptimizationResult{}, err
	}

	if len(task.Orders) > o.cfg.ScopeLimit {
		greedyResult.Algorithm = "branch_bound"
		return greedyResult, nil
	}

	s := &searcher{
		task:        task,
		orderByID:   indexOrders(task.Orders),
		machineByID: indexMachines(task.Machines),
		compatible:  compatible,
		maxNodes:    o.cfg.MaxNodes,
		bestWaste:   greedyEvaluatedWaste(greedyResult),
	}

	remaining := make([]domain.Order, len(task.Orders))
	copy(remaining, task.Orders)

	s.search(nil, remaining, make(map[int]int64), make(map[int]*domain.Order), 0)

	if !s.foundComplete {
		greedyResult.Algorithm = "branch_bound"
		return greedyResult, nil
	}

	assignments := make([]domain.Assignment, len(s.bestAssigned))
	for i, j := range s.bestAssigned {
		assignments[i] = domain.Assignment{OrderID: j.orderID, MachineID: j.machineID}
	}

	schedule, err := decodeFromJobs(s.bestAssigned, task)
	if err != nil {
		return domain.OptimizationResult{}, err
	}
	m := evaluator.Evaluate(schedule, task)
	result := domain.OptimizationResult{
		Schedule:                 schedule,
		TotalWasteKg:             m.TotalWasteKg,
		TotalProcessingHours:     m.TotalProcessingHours,
		EquipmentUtilization:     m.EquipmentUtilization,
		MakespanHours:            m.MakespanHours,
		WasteReductionPercentage: 0,
		Algorithm:                "branch_bound",
	}

	if m.TotalWasteKg <= greedyResult.TotalWasteKg {
		return result, nil
	}
	greedyResult.Algorithm = "branch_bound"
	return greedyResult, nil
}

// search descends depth-first. runningWaste is the actual waste
// incurred by `assigned` so far; it is threaded down rather than
// recomputed so the bound stays O(1) per node.
func (s *searcher) search(assigned []job, remaining []domain.Order, cursor map[int]int64, lastOnMachine map[int]*domain.Order, runningWaste float64) {
	s.nodes++
	if s.nodes > s.maxNodes {
		return
	}

	if len(remaining) == 0 {
		if runningWaste < s.bestWaste {
			s.foundComplete = true
			s.bestWaste = runningWaste
			s.bestAssigned = append([]job(nil), assigned...)
		}
		return
	}

	lowerBound := runningWaste
	for _, ord := range remaining {
		lowerBound += 0.01 * ord.QuantityKg
	}
	if lowerBound >= s.bestWaste {
		return
	}

	next, rest := pickNext(remaining)
	candidates := s.compatible(next)
	if len(candidates) == 0 {
		s.search(assigned, rest, cursor, lastOnMachine, runningWaste)
		return
	}

	sorted := make([]domain.Machine, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, machine := range sorted {
		prev := lastOnMachine[machine.ID]
		setup := costmodel.SetupMinutes(next, machine, prev)
		processing := processingMinutes(next.QuantityKg, machine.EffectiveCapacity())

		start := cursor[machine.ID] + int64(setup)
		end := start + int64(processing)

		var waste float64
		if prev != nil {
			waste = next.QuantityKg * costmodel.Waste(*prev, next)
		}

		childAssigned := append(assigned, job{
			orderID:           next.ID,
			machineID:         machine.ID,
			start:             start,
			end:               end,
			setupMinutes:      setup,
			processingMinutes: processing,
		})
		childCursor := cloneCursor(cursor)
		childCursor[machine.ID] = end
		childLast := cloneLast(lastOnMachine)
		nextCopy := next
		childLast[machine.ID] = &nextCopy

		s.search(childAssigned, rest, childCursor, childLast, runningWaste+waste)

		if s.nodes > s.maxNodes {
			return
		}
	}
}

// pickNext selects the remaining order with the earliest delivery
// date, ties broken by lowest id, and returns it along with the rest.
func pickNext(remaining []domain.Order) (domain.Order, []domain.Order) {
	best := 0
	for i := 1; i < len(remaining); i++ {
		if remaining[i].DeliveryDate.Before(remaining[best].DeliveryDate) {
			best = i
		} else if remaining[i].DeliveryDate.Equal(remaining[best].DeliveryDate) && remaining[i].ID < remaining[best].ID {
			best = i
		}
	}
	rest := make([]domain.Order, 0, len(remaining)-1)
	rest = append(rest, remaining[:best]...)
	rest = append(rest, remaining[best+1:]...)
	return remaining[best], rest
}

func cloneCursor(m map[int]int64) map[int]int64 {
	out := make(map[int]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneLast(m map[int]*domain.Order) map[int]*domain.Order {
	out := make(map[int]*domain.Order, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func indexOrders(orders []domain.Order) map[int]domain.Order {
	out := make(map[int]domain.Order, len(orders))
	for _, o := range orders {
		out[o.ID] = o
	}
	return out
}

func indexMachines(machines []domain.Machine) map[int]domain.Machine {
	out := make(map[int]domain.Machine, len(machines))
	for _, m := range machines {
		out[m.ID] = m
	}
	return out
}

func processingMinutes(quantityKg, capacityKgPerHour float64) int {
	minutes := int(quantityKg / capacityKgPerHour * 60)
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// decodeFromJobs turns the search's own timing records into schedule
// items directly, without re-running the decoder (the DFS already
// simulated machine cursors exactly as the decoder would).
func decodeFromJobs(jobs []job, task domain.Task) ([]domain.ScheduleItem, error) {
	orderByID := indexOrders(task.Orders)
	machineByID := indexMachines(task.Machines)
	items := make([]domain.ScheduleItem, 0, len(jobs))
	for _, j := range jobs {
		if _, ok := orderByID[j.orderID]; !ok {
			return nil, domain.ErrUnknownReference
		}
		if _, ok := machineByID[j.machineID]; !ok {
			return nil, domain.ErrUnknownReference
		}
		items = append(items, domain.ScheduleItem{
			OrderID:           j.orderID,
			MachineID:         j.machineID,
			ScheduledStart:    task.StartTime.Add(time.Duration(j.start) * time.Minute),
			ScheduledEnd:      task.StartTime.Add(time.Duration(j.end) * time.Minute),
			SetupMinutes:      j.setupMinutes,
			ProcessingMinutes: j.processingMinutes,
		})
	}
	return items, nil
}

func greedyEvaluatedWaste(result domain.OptimizationResult) float64 {
	return result.TotalWasteKg
}

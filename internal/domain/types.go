// Package domain defines the data model shared by every layer of the
// scheduling engine: process families, orders, machines, the task bundle
// an optimization run consumes, and the schedule/result it produces.
package domain

import "time"

// ProcessFamily is the closed set of production stages a machine and an
// order belong to. Two machines with different families are strictly
// incompatible.
type ProcessFamily string

const (
	Extrusion       ProcessFamily = "EXTRUSION"
	Ringing         ProcessFamily = "RINGING"
	CorrugationSoft ProcessFamily = "CORRUGATION_SOFT"
	CorrugationHard ProcessFamily = "CORRUGATION_HARD"
)

// ProductType is a descriptive classification carried on Order for
// reporting. It never affects cost-model or search semantics.
type ProductType string

const (
	ProductShell ProductType = "SHELL"
	ProductFilm  ProductType = "FILM"
	ProductLabel ProductType = "LABEL"
)

// OrderStatus is a descriptive lifecycle marker on the input Order.
// Filtering by status is the caller's concern; the engine schedules
// every order it is given regardless of status.
type OrderStatus string

const (
	StatusPlanned    OrderStatus = "PLANNED"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// Order is one unit of demand. ID is the stable integer identity; the
// remaining fields are the attributes the cost model and decoder read.
type Order struct {
	ID            int
	OrderNumber   string
	ProcessFamily ProcessFamily
	MaterialID    int
	Color         string
	Caliber       string
	ThicknessMM   *float64
	QuantityKg    float64
	Priority      int
	DeliveryDate  time.Time

	// Descriptive only — never consulted by the cost model or search.
	ProductType ProductType
	WidthMM     *int
	Status      OrderStatus
}

// Machine is one unit of production capacity. A nil BaseSetupMinutes or
// a zero CapacityKgPerHour both mean "use the default";
// the two are distinguished because capacity's zero value IS the
// missing sentinel while setup time needs a pointer to tell "absent"
// from "explicitly zero".
type Machine struct {
	ID                int
	ProcessFamily     ProcessFamily
	CapacityKgPerHour float64
	BaseSetupMinutes  *int
	IsAvailable       bool
}

const (
	DefaultCapacityKgPerHour = 60.0
	DefaultBaseSetupMinutes  = 30
)

// EffectiveCapacity returns the machine's throughput, substituting the
// default when capacity is missing or zero.
func (m Machine) EffectiveCapacity() float64 {
	if m.CapacityKgPerHour <= 0 {
		return DefaultCapacityKgPerHour
	}
	return m.CapacityKgPerHour
}

// EffectiveSetupMinutes returns the machine's base setup time,
// substituting the default when it was never set.
func (m Machine) EffectiveSetupMinutes() int {
	if m.BaseSetupMinutes == nil {
		return DefaultBaseSetupMinutes
	}
	return *m.BaseSetupMinutes
}

// Task bundles everything one optimization call needs: the open orders,
// the machine fleet, and the planning window. Tasks are immutable once
// handed to the engine.
type Task struct {
	Orders               []Order
	Machines             []Machine
	StartTime            time.Time
	PlanningHorizonHours float64
}

// Assignment is one (order, machine) pairing, the unit the decoder
// consumes and the genetic/branch-and-bound search operators produce.
type Assignment struct {
	OrderID   int
	MachineID int
}

// ScheduleItem is one concretely timed job on one machine.
type ScheduleItem struct {
	OrderID           int
	MachineID         int
	ScheduledStart    time.Time
	ScheduledEnd      time.Time
	SetupMinutes      int
	ProcessingMinutes int
}

// OptimizationResult is the schedule plus the aggregate metrics the
// evaluator computed for it.
type OptimizationResult struct {
	Schedule                 []ScheduleItem
	TotalWasteKg             float64
	TotalProcessingHours     float64
	EquipmentUtilization     map[int]float64
	MakespanHours            float64
	OptimizationTimeSeconds  float64
	WasteReductionPercentage float64
	Algorithm                string
}

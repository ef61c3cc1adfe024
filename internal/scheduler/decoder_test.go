package scheduler

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/atlantispak/packplan/internal/domain"
)

var t0 = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func setup(minutes int) *int { return &minutes }

// Scenario: one 100 kg extrusion order on a 100 kg/h machine with a
// 30 minute base setup. The single item starts after setup and runs
// for exactly one hour.
func TestDecodeSingleOrder(t *testing.T) {
	task := domain.Task{
		Orders: []domain.Order{
			{ID: 1, ProcessFamily: domain.Extrusion, MaterialID: 1, Color: "red", QuantityKg: 100, Priority: 1, DeliveryDate: t0.AddDate(0, 0, 7)},
		},
		Machines: []domain.Machine{
			{ID: 1, ProcessFamily: domain.Extrusion, CapacityKgPerHour: 100, BaseSetupMinutes: setup(30), IsAvailable: true},
		},
		StartTime:            t0,
		PlanningHorizonHours: 720,
	}

	items, err := Decode([]domain.Assignment{{OrderID: 1, MachineID: 1}}, task)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if !item.ScheduledStart.Equal(t0.Add(30 * time.Minute)) {
		t.Errorf("start = %v, want %v", item.ScheduledStart, t0.Add(30*time.Minute))
	}
	if !item.ScheduledEnd.Equal(t0.Add(90 * time.Minute)) {
		t.Errorf("end = %v, want %v", item.ScheduledEnd, t0.Add(90*time.Minute))
	}
	if item.SetupMinutes != 30 {
		t.Errorf("setup = %d, want 30", item.SetupMinutes)
	}
	if item.ProcessingMinutes != 60 {
		t.Errorf("processing = %d, want 60", item.ProcessingMinutes)
	}
}

// Scenario: two same-material same-color extrusion orders back to back
// on one machine. The second changeover costs 30 + floor(30*0.02) = 30
// minutes of setup.
func TestDecodeBackToBackSameColor(t *testing.T) {
	task := domain.Task{
		Orders: []domain.Order{
			{ID: 1, ProcessFamily: domain.Extrusion, MaterialID: 1, Color: "red", QuantityKg: 100, Priority: 1, DeliveryDate: t0.AddDate(0, 0, 1)},
			{ID: 2, ProcessFamily: domain.Extrusion, MaterialID: 1, Color: "red", QuantityKg: 100, Priority: 1, DeliveryDate: t0.AddDate(0, 0, 2)},
		},
		Machines: []domain.Machine{
			{ID: 1, ProcessFamily: domain.Extrusion, CapacityKgPerHour: 100, BaseSetupMinutes: setup(30), IsAvailable: true},
		},
		StartTime:            t0,
		PlanningHorizonHours: 720,
	}

	items, err := Decode([]domain.Assignment{
		{OrderID: 1, MachineID: 1},
		{OrderID: 2, MachineID: 1},
	}, task)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	if items[0].SetupMinutes != 30 {
		t.Errorf("first setup = %d, want 30", items[0].SetupMinutes)
	}
	if items[1].SetupMinutes != 30 {
		t.Errorf("second setup = %d, want 30 (30 + floor(30*0.02))", items[1].SetupMinutes)
	}
	// 30 setup + 60 run + 30 setup -> second item starts at minute 120.
	if !items[1].ScheduledStart.Equal(t0.Add(120 * time.Minute)) {
		t.Errorf("second start = %v, want %v", items[1].ScheduledStart, t0.Add(120*time.Minute))
	}
}

// The decoder orders jobs by (priority, delivery date), not by
// assignment position: a later-position urgent order runs first.
func TestDecodePriorityOrdering(t *testing.T) {
	task := domain.Task{
		Orders: []domain.Order{
			{ID: 1, ProcessFamily: domain.Extrusion, MaterialID: 1, QuantityKg: 100, Priority: 5, DeliveryDate: t0.AddDate(0, 0, 1)},
			{ID: 2, ProcessFamily: domain.Extrusion, MaterialID: 1, QuantityKg: 100, Priority: 1, DeliveryDate: t0.AddDate(0, 0, 9)},
		},
		Machines: []domain.Machine{
			{ID: 1, ProcessFamily: domain.Extrusion, CapacityKgPerHour: 100, BaseSetupMinutes: setup(30), IsAvailable: true},
		},
		StartTime: t0,
	}

	items, err := Decode([]domain.Assignment{
		{OrderID: 1, MachineID: 1},
		{OrderID: 2, MachineID: 1},
	}, task)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if items[0].OrderID != 2 {
		t.Errorf("first scheduled order = %d, want the priority-1 order 2", items[0].OrderID)
	}
}

// Missing capacity falls back to 60 kg/h; a tiny order still occupies
// at least one minute.
func TestDecodeDegenerateMachine(t *testing.T) {
	task := domain.Task{
		Orders: []domain.Order{
			{ID: 1, ProcessFamily: domain.Extrusion, MaterialID: 1, QuantityKg: 60, Priority: 1, DeliveryDate: t0},
			{ID: 2, ProcessFamily: domain.Extrusion, MaterialID: 1, QuantityKg: 0.1, Priority: 2, DeliveryDate: t0},
		},
		Machines: []domain.Machine{
			{ID: 1, ProcessFamily: domain.Extrusion, IsAvailable: true},
		},
		StartTime: t0,
	}

	items, err := Decode([]domain.Assignment{
		{OrderID: 1, MachineID: 1},
		{OrderID: 2, MachineID: 1},
	}, task)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	// 60 kg at the default 60 kg/h is one hour.
	if items[0].ProcessingMinutes != 60 {
		t.Errorf("defaulted processing = %d, want 60", items[0].ProcessingMinutes)
	}
	if items[1].ProcessingMinutes != 1 {
		t.Errorf("minimum processing = %d, want 1", items[1].ProcessingMinutes)
	}
	// Default setup is 30 when BaseSetupMinutes was never set.
	if items[0].SetupMinutes != 30 {
		t.Errorf("defaulted setup = %d, want 30", items[0].SetupMinutes)
	}
}

func TestDecodeUnknownReference(t *testing.T) {
	task := domain.Task{
		Orders: []domain.Order{
			{ID: 1, ProcessFamily: domain.Extrusion, QuantityKg: 10, DeliveryDate: t0},
		},
		Machines: []domain.Machine{
			{ID: 1, ProcessFamily: domain.Extrusion, IsAvailable: true},
		},
		StartTime: t0,
	}

	if _, err := Decode([]domain.Assignment{{OrderID: 99, MachineID: 1}}, task); !errors.Is(err, domain.ErrUnknownReference) {
		t.Errorf("unknown order: err = %v, want ErrUnknownReference", err)
	}
	if _, err := Decode([]domain.Assignment{{OrderID: 1, MachineID: 99}}, task); !errors.Is(err, domain.ErrUnknownReference) {
		t.Errorf("unknown machine: err = %v, want ErrUnknownReference", err)
	}
}

// Re-decoding the same assignment vector yields bit-identical items.
func TestDecodeDeterministic(t *testing.T) {
	task := domain.Task{
		Orders: []domain.Order{
			{ID: 1, ProcessFamily: domain.Ringing, Caliber: "D100", QuantityKg: 100, Priority: 2, DeliveryDate: t0.AddDate(0, 0, 3)},
			{ID: 2, ProcessFamily: domain.Ringing, Caliber: "D140", QuantityKg: 80, Priority: 1, DeliveryDate: t0.AddDate(0, 0, 2)},
			{ID: 3, ProcessFamily: domain.Ringing, Caliber: "D300", QuantityKg: 120, Priority: 1, DeliveryDate: t0.AddDate(0, 0, 5)},
		},
		Machines: []domain.Machine{
			{ID: 1, ProcessFamily: domain.Ringing, CapacityKgPerHour: 90, BaseSetupMinutes: setup(20), IsAvailable: true},
			{ID: 2, ProcessFamily: domain.Ringing, CapacityKgPerHour: 110, BaseSetupMinutes: setup(25), IsAvailable: true},
		},
		StartTime: t0,
	}
	assignments := []domain.Assignment{
		{OrderID: 1, MachineID: 2},
		{OrderID: 2, MachineID: 1},
		{OrderID: 3, MachineID: 2},
	}

	first, err := Decode(assignments, task)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	second, err := Decode(assignments, task)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-decode diverged:\n%v\nvs\n%v", first, second)
	}
}

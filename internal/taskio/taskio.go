// Package taskio reads the JSON task file the CLI accepts on behalf of
// the order/machine provider: already-loaded orders and machines plus
// the planning window. The format is a CLI convenience, not a
// persistence contract.
package taskio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atlantispak/packplan/internal/domain"
)

type orderJSON struct {
	ID            int      `json:"id"`
	OrderNumber   string   `json:"order_number"`
	ProcessFamily string   `json:"process_family"`
	MaterialID    int      `json:"material_id"`
	Color         string   `json:"color"`
	Caliber       string   `json:"caliber"`
	ThicknessMM   *float64 `json:"thickness_mm"`
	QuantityKg    float64  `json:"quantity_kg"`
	Priority      int      `json:"priority"`
	DeliveryDate  string   `json:"delivery_date"`
	ProductType   string   `json:"product_type"`
	WidthMM       *int     `json:"width_mm"`
	Status        string   `json:"status"`
}

type machineJSON struct {
	ID                int     `json:"id"`
	ProcessFamily     string  `json:"process_family"`
	CapacityKgPerHour float64 `json:"capacity_kg_per_hour"`
	BaseSetupMinutes  *int    `json:"base_setup_minutes"`
	IsAvailable       bool    `json:"is_available"`
}

type taskJSON struct {
	Orders               []orderJSON   `json:"orders"`
	Machines             []machineJSON `json:"machines"`
	StartTime            string        `json:"start_time"`
	PlanningHorizonHours float64       `json:"planning_horizon_hours"`
}

// deliveryDateLayout is a calendar date; start_time is an absolute
// instant in the caller's timezone.
const deliveryDateLayout = "2006-01-02"

var validFamilies = map[string]domain.ProcessFamily{
	string(domain.Extrusion):       domain.Extrusion,
	string(domain.Ringing):         domain.Ringing,
	string(domain.CorrugationSoft): domain.CorrugationSoft,
	string(domain.CorrugationHard): domain.CorrugationHard,
}

// Load parses a task from r.
func Load(r io.Reader) (domain.Task, error) {
	var raw taskJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return domain.Task{}, fmt.Errorf("taskio: failed to parse task: %w", err)
	}

	start, err := time.Parse(time.RFC3339, raw.StartTime)
	if err != nil {
		return domain.Task{}, fmt.Errorf("taskio: invalid start_time %q (want RFC 3339): %w", raw.StartTime, err)
	}

	task := domain.Task{
		StartTime:            start,
		PlanningHorizonHours: raw.PlanningHorizonHours,
		Orders:               make([]domain.Order, 0, len(raw.Orders)),
		Machines:             make([]domain.Machine, 0, len(raw.Machines)),
	}

	for _, o := range raw.Orders {
		family, ok := validFamilies[o.ProcessFamily]
		if !ok {
			return domain.Task{}, fmt.Errorf("taskio: order %d has unknown process family %q", o.ID, o.ProcessFamily)
		}
		delivery, err := time.Parse(deliveryDateLayout, o.DeliveryDate)
		if err != nil {
			return domain.Task{}, fmt.Errorf("taskio: order %d has invalid delivery_date %q: %w", o.ID, o.DeliveryDate, err)
		}
		if o.QuantityKg <= 0 {
			return domain.Task{}, fmt.Errorf("taskio: order %d has non-positive quantity %f", o.ID, o.QuantityKg)
		}
		task.Orders = append(task.Orders, domain.Order{
			ID:            o.ID,
			OrderNumber:   o.OrderNumber,
			ProcessFamily: family,
			MaterialID:    o.MaterialID,
			Color:         o.Color,
			Caliber:       o.Caliber,
			ThicknessMM:   o.ThicknessMM,
			QuantityKg:    o.QuantityKg,
			Priority:      o.Priority,
			DeliveryDate:  delivery,
			ProductType:   domain.ProductType(o.ProductType),
			WidthMM:       o.WidthMM,
			Status:        domain.OrderStatus(o.Status),
		})
	}

	for _, m := range raw.Machines {
		family, ok := validFamilies[m.ProcessFamily]
		if !ok {
			return domain.Task{}, fmt.Errorf("taskio: machine %d has unknown process family %q", m.ID, m.ProcessFamily)
		}
		task.Machines = append(task.Machines, domain.Machine{
			ID:                m.ID,
			ProcessFamily:     family,
			CapacityKgPerHour: m.CapacityKgPerHour,
			BaseSetupMinutes:  m.BaseSetupMinutes,
			IsAvailable:       m.IsAvailable,
		})
	}

	return task, nil
}

// LoadFile reads a task from path, or from stdin when path is "-".
func LoadFile(path string) (domain.Task, error) {
	if path == "-" {
		return Load(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.Task{}, fmt.Errorf("taskio: failed to open task file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

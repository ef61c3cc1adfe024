package taskio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlantispak/packplan/internal/domain"
)

const sampleTask = `{
  "orders": [
    {
      "id": 1,
      "order_number": "ORD-2025-0001",
      "process_family": "EXTRUSION",
      "material_id": 3,
      "color": "red",
      "quantity_kg": 250.5,
      "priority": 1,
      "delivery_date": "2025-03-10",
      "product_type": "FILM",
      "status": "PLANNED"
    },
    {
      "id": 2,
      "process_family": "RINGING",
      "caliber": "D140",
      "quantity_kg": 80,
      "priority": 2,
      "delivery_date": "2025-03-12"
    }
  ],
  "machines": [
    {
      "id": 10,
      "process_family": "EXTRUSION",
      "capacity_kg_per_hour": 120,
      "base_setup_minutes": 25,
      "is_available": true
    },
    {
      "id": 11,
      "process_family": "RINGING",
      "is_available": false
    }
  ],
  "start_time": "2025-03-01T08:00:00Z",
  "planning_horizon_hours": 720
}`

func TestLoad(t *testing.T) {
	task, err := Load(strings.NewReader(sampleTask))
	require.NoError(t, err)

	require.Len(t, task.Orders, 2)
	require.Len(t, task.Machines, 2)

	first := task.Orders[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "ORD-2025-0001", first.OrderNumber)
	assert.Equal(t, domain.Extrusion, first.ProcessFamily)
	assert.Equal(t, 3, first.MaterialID)
	assert.Equal(t, "red", first.Color)
	assert.Equal(t, 250.5, first.QuantityKg)
	assert.Equal(t, domain.ProductFilm, first.ProductType)
	assert.Equal(t, domain.StatusPlanned, first.Status)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), first.DeliveryDate)

	second := task.Orders[1]
	assert.Equal(t, domain.Ringing, second.ProcessFamily)
	assert.Equal(t, "D140", second.Caliber)
	assert.Nil(t, second.ThicknessMM)

	extruder := task.Machines[0]
	assert.Equal(t, 120.0, extruder.CapacityKgPerHour)
	require.NotNil(t, extruder.BaseSetupMinutes)
	assert.Equal(t, 25, *extruder.BaseSetupMinutes)
	assert.True(t, extruder.IsAvailable)

	ringer := task.Machines[1]
	assert.Nil(t, ringer.BaseSetupMinutes)
	assert.False(t, ringer.IsAvailable)

	assert.Equal(t, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), task.StartTime)
	assert.Equal(t, 720.0, task.PlanningHorizonHours)
}

func TestLoadRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"not json", `{"orders": [`},
		{"missing start time", `{"orders": [], "machines": []}`},
		{"unknown family", `{"orders": [{"id": 1, "process_family": "WELDING", "quantity_kg": 1, "delivery_date": "2025-03-10"}], "machines": [], "start_time": "2025-03-01T08:00:00Z"}`},
		{"bad delivery date", `{"orders": [{"id": 1, "process_family": "RINGING", "quantity_kg": 1, "delivery_date": "10/03/2025"}], "machines": [], "start_time": "2025-03-01T08:00:00Z"}`},
		{"non-positive quantity", `{"orders": [{"id": 1, "process_family": "RINGING", "quantity_kg": 0, "delivery_date": "2025-03-10"}], "machines": [], "start_time": "2025-03-01T08:00:00Z"}`},
	}
	for _, c := range cases {
		if _, err := Load(strings.NewReader(c.json)); err == nil {
			t.Errorf("%s: expected an error", c.name)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleTask), 0644))

	task, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, task.Orders, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	rulesYAML := `rules:
  - id: no-rush-on-slow
    condition: "order.priority <= 1 && machine.id == 2"
    priority: 10
  - id: heavy-needs-capacity
    condition: "order.quantity_kg > 500.0 && machine.capacity < 80.0"
    priority: 5
`
	require.NoError(t, os.WriteFile(path, []byte(rulesYAML), 0644))

	loaded, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "no-rush-on-slow", loaded[0].ID)
	assert.Equal(t, 10, loaded[0].Priority)
	assert.Contains(t, loaded[1].Condition, "quantity_kg")
}

func TestLoadRulesRejectsIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - id: empty-condition\n"), 0644))

	_, err := LoadRules(path)
	assert.Error(t, err)
}

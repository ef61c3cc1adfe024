package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlantispak/packplan/internal/domain"
	"github.com/atlantispak/packplan/internal/knobs"
)

var t0 = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func quietEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(context.Background(),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithConfig(Config{SkipTelemetry: true}),
	)
	require.NoError(t, err)
	return eng
}

func engineTask(orderCount int) domain.Task {
	task := domain.Task{
		Machines: []domain.Machine{
			{ID: 1, ProcessFamily: domain.Extrusion, CapacityKgPerHour: 100, IsAvailable: true},
			{ID: 2, ProcessFamily: domain.Extrusion, CapacityKgPerHour: 100, IsAvailable: true},
		},
		StartTime:            t0,
		PlanningHorizonHours: 720,
	}
	for i := 0; i < orderCount; i++ {
		task.Orders = append(task.Orders, domain.Order{
			ID:            i + 1,
			ProcessFamily: domain.Extrusion,
			MaterialID:    1,
			Color:         "red",
			QuantityKg:    100,
			Priority:      1,
			DeliveryDate:  t0.AddDate(0, 0, i+1),
		})
	}
	return task
}

func TestOptimizeRejectsEmptyTask(t *testing.T) {
	eng := quietEngine(t)

	_, err := eng.Optimize(context.Background(), domain.Task{}, knobs.Request{})
	assert.True(t, errors.Is(err, domain.ErrEmptyTask))

	// Machines present but none available is still empty.
	task := engineTask(2)
	for i := range task.Machines {
		task.Machines[i].IsAvailable = false
	}
	_, err = eng.Optimize(context.Background(), task, knobs.Request{})
	assert.True(t, errors.Is(err, domain.ErrEmptyTask))
}

func TestOptimizeRejectsInvalidKnobs(t *testing.T) {
	eng := quietEngine(t)
	_, err := eng.Optimize(context.Background(), engineTask(2), knobs.Request{PopulationSize: 5})
	assert.Error(t, err)
}

func TestOptimizeHybridDefault(t *testing.T) {
	eng := quietEngine(t)
	result, err := eng.Optimize(context.Background(), engineTask(4), knobs.Request{})
	require.NoError(t, err)

	assert.Equal(t, "hybrid", result.Algorithm)
	assert.Len(t, result.Schedule, 4)
	assert.GreaterOrEqual(t, result.OptimizationTimeSeconds, 0.0)
	assert.Zero(t, result.WasteReductionPercentage)
}

func TestOptimizeExplicitAlgorithms(t *testing.T) {
	eng := quietEngine(t)
	task := engineTask(4)

	ga, err := eng.Optimize(context.Background(), task, knobs.Request{Algorithm: knobs.AlgorithmGenetic})
	require.NoError(t, err)
	assert.Equal(t, "genetic", ga.Algorithm)

	bnb, err := eng.Optimize(context.Background(), task, knobs.Request{Algorithm: knobs.AlgorithmBranchBound})
	require.NoError(t, err)
	assert.Equal(t, "branch_bound", bnb.Algorithm)
}

// The knob-derived horizon only fills in when the task itself carries
// none.
func TestOptimizeHorizonFallback(t *testing.T) {
	eng := quietEngine(t)

	task := engineTask(2)
	task.PlanningHorizonHours = 0
	result, err := eng.Optimize(context.Background(), task, knobs.Request{PlanningHorizonDays: 10})
	require.NoError(t, err)

	// 2 working hours against a 240 hour horizon.
	for _, u := range result.EquipmentUtilization {
		assert.LessOrEqual(t, u, 1.0)
		assert.GreaterOrEqual(t, u, 0.0)
	}
}

package sink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atlantispak/packplan/internal/domain"
)

func sampleResult(wasteKg float64) domain.OptimizationResult {
	t0 := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return domain.OptimizationResult{
		Schedule: []domain.ScheduleItem{
			{
				OrderID:           1,
				MachineID:         1,
				ScheduledStart:    t0.Add(30 * time.Minute),
				ScheduledEnd:      t0.Add(90 * time.Minute),
				SetupMinutes:      30,
				ProcessingMinutes: 60,
			},
		},
		TotalWasteKg:         wasteKg,
		TotalProcessingHours: 1,
		EquipmentUtilization: map[int]float64{1: 0.5},
		MakespanHours:        1.5,
		Algorithm:            "hybrid",
	}
}

func TestJSONFileSinkReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "schedule.json")
	s := NewJSONFileSink(path)

	if err := s.Replace(context.Background(), sampleResult(2.0)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	// A second write fully replaces the first.
	if err := s.Replace(context.Background(), sampleResult(9.0)); err != nil {
		t.Fatalf("second Replace failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading sink output: %v", err)
	}
	var got domain.OptimizationResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("sink output is not valid JSON: %v", err)
	}
	if got.TotalWasteKg != 9.0 {
		t.Errorf("waste after replace = %f, want 9.0 (the second write)", got.TotalWasteKg)
	}
	if len(got.Schedule) != 1 {
		t.Errorf("schedule length = %d, want 1", len(got.Schedule))
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("sink directory has %d entries, want only the schedule file", len(entries))
	}
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := ParseS3URL("s3://plant-schedules/line-a/schedule.json")
	if err != nil {
		t.Fatalf("ParseS3URL failed: %v", err)
	}
	if bucket != "plant-schedules" || key != "line-a/schedule.json" {
		t.Errorf("parsed (%s, %s), want (plant-schedules, line-a/schedule.json)", bucket, key)
	}

	for _, bad := range []string{"http://bucket/key", "s3://bucket", "s3://", "s3:///key"} {
		if _, _, err := ParseS3URL(bad); err == nil {
			t.Errorf("ParseS3URL(%q): expected an error", bad)
		}
	}
}

// Package report turns a completed OptimizationResult into
// operator-facing artifacts: CSV/JSON exports and an HTML dashboard.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/atlantispak/packplan/internal/domain"
)

// ScheduleExportItem is the flattened, human-readable row the CSV
// exporter emits for one scheduled job. GenerateJSON does not use it;
// it marshals the whole OptimizationResult.
type ScheduleExportItem struct {
	OrderID           int    `json:"order_id"`
	MachineID         int    `json:"machine_id"`
	ScheduledStart    string `json:"scheduled_start"`
	ScheduledEnd      string `json:"scheduled_end"`
	SetupMinutes      int    `json:"setup_minutes"`
	ProcessingMinutes int    `json:"processing_minutes"`
}

// GenerateCSV writes the schedule to a CSV file, ordered by start time.
func GenerateCSV(result domain.OptimizationResult, path string) error {
	items := exportItems(result)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: failed to create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"OrderID", "MachineID", "ScheduledStart", "ScheduledEnd", "SetupMinutes", "ProcessingMinutes"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, item := range items {
		record := []string{
			fmt.Sprintf("%d", item.OrderID),
			fmt.Sprintf("%d", item.MachineID),
			item.ScheduledStart,
			item.ScheduledEnd,
			fmt.Sprintf("%d", item.SetupMinutes),
			fmt.Sprintf("%d", item.ProcessingMinutes),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// GenerateJSON writes the schedule and its aggregate metrics to a JSON
// file.
func GenerateJSON(result domain.OptimizationResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("report: failed to marshal result: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func exportItems(result domain.OptimizationResult) []ScheduleExportItem {
	items := make([]ScheduleExportItem, 0, len(result.Schedule))
	for _, s := range result.Schedule {
		items = append(items, ScheduleExportItem{
			OrderID:           s.OrderID,
			MachineID:         s.MachineID,
			ScheduledStart:    s.ScheduledStart.Format("2006-01-02T15:04:05Z07:00"),
			ScheduledEnd:      s.ScheduledEnd.Format("2006-01-02T15:04:05Z07:00"),
			SetupMinutes:      s.SetupMinutes,
			ProcessingMinutes: s.ProcessingMinutes,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ScheduledStart < items[j].ScheduledStart
	})
	return items
}

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/atlantispak/packplan/internal/domain"
	"github.com/atlantispak/packplan/pkg/version"
)

// ganttBar is one row Chart.js's horizontal bar renderer draws: a
// [start, end] pair in hours since the earliest scheduled start plus
// the label text.
type ganttBar struct {
	Machine int     `json:"machine"`
	OrderID int     `json:"order_id"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Label   string  `json:"label"`
}

// GenerateDashboard writes a self-contained HTML dashboard visualizing
// result as a per-machine Gantt chart plus aggregate metric cards.
func GenerateDashboard(result domain.OptimizationResult, path string) error {
	bars := buildGanttBars(result)

	barsJSON, err := json.Marshal(bars)
	if err != nil {
		return fmt.Errorf("report: failed to marshal gantt data: %w", err)
	}

	utilizationJSON, err := json.Marshal(result.EquipmentUtilization)
	if err != nil {
		return fmt.Errorf("report: failed to marshal utilization data: %w", err)
	}

	html := fmt.Sprintf(dashboardTemplate,
		version.AppName,
		version.AppName,
		version.Current,
		len(result.Schedule),
		result.TotalWasteKg,
		result.MakespanHours,
		result.Algorithm,
		string(barsJSON),
		string(utilizationJSON),
	)

	return os.WriteFile(path, []byte(html), 0644)
}

func buildGanttBars(result domain.OptimizationResult) []ganttBar {
	bars := make([]ganttBar, 0, len(result.Schedule))
	var earliest *domain.ScheduleItem
	for i := range result.Schedule {
		if earliest == nil || result.Schedule[i].ScheduledStart.Before(earliest.ScheduledStart) {
			earliest = &result.Schedule[i]
		}
	}
	if earliest == nil {
		return bars
	}
	origin := earliest.ScheduledStart

	for _, item := range result.Schedule {
		bars = append(bars, ganttBar{
			Machine: item.MachineID,
			OrderID: item.OrderID,
			Start:   item.ScheduledStart.Sub(origin).Hours(),
			End:     item.ScheduledEnd.Sub(origin).Hours(),
			Label:   fmt.Sprintf("Order %d", item.OrderID),
		})
	}
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Machine != bars[j].Machine {
			return bars[i].Machine < bars[j].Machine
		}
		return bars[i].Start < bars[j].Start
	})
	return bars
}

const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s Schedule Dashboard</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        :root {
            --bg: #050505;
            --surface: rgba(255, 255, 255, 0.03);
            --border: rgba(255, 255, 255, 0.1);
            --primary: #00CCFF;
            --secondary: #00FF99;
            --text: #F8FAFC;
            --text-dim: #94A3B8;
        }
        * { box-sizing: border-box; }
        body {
            background: var(--bg);
            color: var(--text);
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
            margin: 0;
            padding: 2rem;
        }
        h1 { font-weight: 600; margin-bottom: 0.25rem; }
        .sub { color: var(--text-dim); margin-bottom: 2rem; }
        .cards { display: flex; gap: 1rem; flex-wrap: wrap; margin-bottom: 2rem; }
        .card {
            background: var(--surface);
            border: 1px solid var(--border);
            border-radius: 10px;
            padding: 1rem 1.5rem;
            min-width: 160px;
        }
        .card .value { font-size: 1.75rem; font-weight: 700; color: var(--primary); }
        .card .label { color: var(--text-dim); font-size: 0.85rem; }
        canvas { background: var(--surface); border: 1px solid var(--border); border-radius: 10px; padding: 1rem; }
    </style>
</head>
<body>
    <h1>%s Schedule Dashboard</h1>
    <div class="sub">version %s</div>

    <div class="cards">
        <div class="card"><div class="value">%d</div><div class="label">Jobs Scheduled</div></div>
        <div class="card"><div class="value">%.2f kg</div><div class="label">Total Waste</div></div>
        <div class="card"><div class="value">%.2f h</div><div class="label">Makespan</div></div>
        <div class="card"><div class="value">%s</div><div class="label">Algorithm</div></div>
    </div>

    <canvas id="gantt" height="120"></canvas>

    <script>
        const bars = %s;
        const utilization = %s;

        const machines = [...new Set(bars.map(b => b.machine))].sort((a, b) => a - b);
        const datasets = machines.map((m, idx) => ({
            label: "Machine " + m,
            data: bars.filter(b => b.machine === m).map(b => ({ x: [b.start, b.end], y: "Machine " + m, label: b.label })),
            backgroundColor: "hsl(" + (idx * 57 %% 360) + ", 70%%, 55%%)",
        }));

        new Chart(document.getElementById("gantt"), {
            type: "bar",
            data: { labels: machines.map(m => "Machine " + m), datasets },
            options: {
                indexAxis: "y",
                scales: { x: { title: { display: true, text: "Hours since schedule start" } } },
                plugins: {
                    tooltip: {
                        callbacks: {
                            label: (ctx) => ctx.raw.label + ": " + ctx.raw.x[0].toFixed(1) + "h - " + ctx.raw.x[1].toFixed(1) + "h",
                        },
                    },
                },
            },
        });
    </script>
</body>
</html>
`

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atlantispak/packplan/internal/domain"
	"github.com/atlantispak/packplan/internal/engine"
	"github.com/atlantispak/packplan/internal/knobs"
	"github.com/atlantispak/packplan/internal/rules"
	"github.com/atlantispak/packplan/internal/taskio"
	appconfig "github.com/atlantispak/packplan/pkg/config"
	"github.com/atlantispak/packplan/pkg/notifier"
	"github.com/atlantispak/packplan/pkg/sink"
	ui "github.com/atlantispak/packplan/pkg/tui"
)

var (
	taskPath       string
	algorithmFlag  string
	horizonDays    int
	populationSize int
	generations    int
	headless       bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Run the schedule optimizer over a task file",
	Long: `Reads a JSON task file (orders, machines, planning window), runs the
optimization engine, persists the schedule, and opens the interactive
schedule viewer.

Use --headless for CI/CD mode.

Example:
  packplan optimize --task orders.json
  packplan optimize --task - --headless < orders.json`,
	Run: func(cmd *cobra.Command, args []string) {
		if h, _ := cmd.Flags().GetBool("headless"); h {
			app.Headless = true
		}

		result, task, err := runOptimization(cmd.Context())
		if err != nil {
			fmt.Printf("\n[ERROR] Optimization Failed: %v\n", err)
			os.Exit(1)
		}

		if err := persistSchedule(cmd.Context(), result); err != nil {
			fmt.Printf("\n[ERROR] Failed to persist schedule: %v\n", err)
			os.Exit(1)
		}

		if app.SlackWebhook != "" {
			slack := notifier.NewSlackClient(app.SlackWebhook, app.SlackChannel)
			if err := slack.SendScheduleSummary(result); err != nil {
				fmt.Printf("[WARN] Slack notification failed: %v\n", err)
			}
		}

		if app.Headless {
			printExitSummary(result, task)
			return
		}

		model := ui.NewModel(result)
		p := tea.NewProgram(model)
		if _, err := p.Run(); err != nil {
			fmt.Printf("[ERROR] TUI failed: %v\n", err)
			os.Exit(1)
		}
		printExitSummary(result, task)
	},
}

func init() {
	optimizeCmd.Flags().StringVar(&taskPath, "task", "task.json", "Path to the JSON task file ('-' for stdin)")
	optimizeCmd.Flags().StringVar(&algorithmFlag, "algorithm", "hybrid", "Search strategy: genetic, branch_bound, hybrid")
	optimizeCmd.Flags().IntVar(&horizonDays, "horizon-days", 30, "Planning horizon in days [1, 90]")
	optimizeCmd.Flags().IntVar(&populationSize, "population-size", 100, "GA population size [20, 500]")
	optimizeCmd.Flags().IntVar(&generations, "generations", 50, "GA generation count [10, 200]")
	optimizeCmd.Flags().BoolVar(&headless, "headless", false, "Skip the TUI, print a summary instead")

	rootCmd.AddCommand(optimizeCmd)
}

// runOptimization wires logging, eligibility rules, and tuning around
// one Engine.Optimize call. Shared by optimize and export.
func runOptimization(ctx context.Context) (domain.OptimizationResult, domain.Task, error) {
	// Configure logging.
	var handler slog.Handler
	if app.JsonLogs {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else if app.Verbose {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewTextHandler(io.Discard, nil)
	}
	logger := slog.New(handler)

	task, err := taskio.LoadFile(taskPath)
	if err != nil {
		return domain.OptimizationResult{}, domain.Task{}, err
	}

	tuning := appconfig.DefaultSearchTuning()
	if viper.IsSet("tuning") {
		if err := viper.UnmarshalKey("tuning", &tuning); err != nil {
			return domain.OptimizationResult{}, domain.Task{}, fmt.Errorf("invalid tuning config: %w", err)
		}
	}

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithConfig(engine.Config{
			JsonLogs:     app.JsonLogs,
			Seed:         app.Seed,
			OtelEndpoint: app.OtelEndpoint,
			Tuning:       tuning,
		}),
	}

	if app.RulesFile != "" {
		loaded, err := taskio.LoadRules(app.RulesFile)
		if err != nil {
			return domain.OptimizationResult{}, domain.Task{}, err
		}
		ruleEngine, err := rules.NewEngine()
		if err != nil {
			return domain.OptimizationResult{}, domain.Task{}, err
		}
		if err := ruleEngine.Compile(loaded); err != nil {
			return domain.OptimizationResult{}, domain.Task{}, err
		}
		opts = append(opts, engine.WithRules(ruleEngine))
		logger.Info("eligibility rules loaded", "count", len(loaded), "file", app.RulesFile)
	}

	eng, err := engine.New(ctx, opts...)
	if err != nil {
		return domain.OptimizationResult{}, domain.Task{}, err
	}

	req := knobs.Request{
		Algorithm:           knobs.Algorithm(algorithmFlag),
		PlanningHorizonDays: horizonDays,
		PopulationSize:      populationSize,
		Generations:         generations,
	}

	result, err := eng.Optimize(ctx, task, req)
	if err != nil {
		return domain.OptimizationResult{}, domain.Task{}, err
	}
	return result, task, nil
}

// persistSchedule routes the result to the configured sink: an S3
// object when a schedule URL is set, otherwise a local JSON file under
// the output directory.
func persistSchedule(ctx context.Context, result domain.OptimizationResult) error {
	var target sink.Sink
	if strings.HasPrefix(app.ScheduleURL, "s3://") {
		s3sink, err := sink.NewS3Sink(ctx, app.ScheduleURL)
		if err != nil {
			return err
		}
		target = s3sink
	} else {
		target = sink.NewJSONFileSink(filepath.Join(app.OutputDir, "schedule.json"))
	}
	return target.Replace(ctx, result)
}

func printExitSummary(result domain.OptimizationResult, task domain.Task) {
	fmt.Println("\n── Schedule Summary ──")
	fmt.Printf("   Algorithm:    %s\n", result.Algorithm)
	fmt.Printf("   Jobs:         %d of %d orders scheduled\n", len(result.Schedule), len(task.Orders))
	fmt.Printf("   Total Waste:  %.6f kg\n", result.TotalWasteKg)
	fmt.Printf("   Processing:   %.6f h\n", result.TotalProcessingHours)
	fmt.Printf("   Makespan:     %.6f h\n", result.MakespanHours)
	fmt.Printf("   Elapsed:      %.3fs\n", result.OptimizationTimeSeconds)

	if dropped := unscheduledOrders(result, task); len(dropped) > 0 {
		fmt.Printf("   Unscheduled:  %v (no compatible machine)\n", dropped)
	}
}

// unscheduledOrders lists input order ids absent from the schedule —
// the contract's way of surfacing orders with no compatible machine.
func unscheduledOrders(result domain.OptimizationResult, task domain.Task) []int {
	scheduled := make(map[int]bool, len(result.Schedule))
	for _, item := range result.Schedule {
		scheduled[item.OrderID] = true
	}
	var dropped []int
	for _, o := range task.Orders {
		if !scheduled[o.ID] {
			dropped = append(dropped, o.ID)
		}
	}
	sort.Ints(dropped)
	return dropped
}

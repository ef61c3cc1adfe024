package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/atlantispak/packplan/pkg/report"
)

var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Optimize and export the schedule (CSV, JSON, HTML)",
	Long: `Run the optimizer and export the resulting schedule to every
supported format.

Default output directory: ./packplan-out/`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Initializing Schedule Export...")
		app.Headless = true

		result, _, err := runOptimization(cmd.Context())
		if err != nil {
			fmt.Printf("\n[ERROR] Export Failed: %v\n", err)
			return
		}

		if err := os.MkdirAll(app.OutputDir, 0755); err != nil {
			fmt.Printf("\n[ERROR] Export Failed: %v\n", err)
			return
		}

		csvPath := filepath.Join(app.OutputDir, "schedule.csv")
		jsonPath := filepath.Join(app.OutputDir, "schedule.json")
		htmlPath := filepath.Join(app.OutputDir, "dashboard.html")

		if err := report.GenerateCSV(result, csvPath); err != nil {
			fmt.Printf("\n[ERROR] CSV Export Failed: %v\n", err)
			return
		}
		if err := report.GenerateJSON(result, jsonPath); err != nil {
			fmt.Printf("\n[ERROR] JSON Export Failed: %v\n", err)
			return
		}
		if err := report.GenerateDashboard(result, htmlPath); err != nil {
			fmt.Printf("\n[ERROR] Dashboard Export Failed: %v\n", err)
			return
		}

		fmt.Println("\n[SUCCESS] Export Complete.")
		fmt.Printf("   CSV:  %s\n", csvPath)
		fmt.Printf("   JSON: %s\n", jsonPath)
		fmt.Printf("   HTML: %s\n", htmlPath)
	},
}

func init() {
	ExportCmd.Flags().StringVar(&taskPath, "task", "task.json", "Path to the JSON task file ('-' for stdin)")
	ExportCmd.Flags().StringVar(&algorithmFlag, "algorithm", "hybrid", "Search strategy: genetic, branch_bound, hybrid")
	ExportCmd.Flags().IntVar(&horizonDays, "horizon-days", 30, "Planning horizon in days [1, 90]")
	ExportCmd.Flags().IntVar(&populationSize, "population-size", 100, "GA population size [20, 500]")
	ExportCmd.Flags().IntVar(&generations, "generations", 50, "GA generation count [10, 200]")
}

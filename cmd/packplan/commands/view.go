package commands

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/atlantispak/packplan/internal/domain"
	ui "github.com/atlantispak/packplan/pkg/tui"
)

var viewInput string

var ViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse a previously saved schedule (TUI)",
	Long: `Opens the interactive schedule viewer over a schedule JSON file
written by a prior optimize or export run.`,
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(viewInput)
		if err != nil {
			fmt.Printf("[ERROR] Cannot read schedule file: %v\n", err)
			os.Exit(1)
		}

		var result domain.OptimizationResult
		if err := json.Unmarshal(data, &result); err != nil {
			fmt.Printf("[ERROR] Cannot parse schedule file: %v\n", err)
			os.Exit(1)
		}

		model := ui.NewModel(result)
		p := tea.NewProgram(model)
		if _, err := p.Run(); err != nil {
			fmt.Printf("[ERROR] TUI failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	ViewCmd.Flags().StringVar(&viewInput, "input", "./packplan-out/schedule.json", "Path to a saved schedule JSON file")
}

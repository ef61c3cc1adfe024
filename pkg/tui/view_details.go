package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) viewDetails() string {
	if m.cursor < 0 || m.cursor >= len(m.schedule) {
		return "No job selected"
	}
	item := m.schedule[m.cursor]

	header := detailsHeaderStyle.Render(fmt.Sprintf("Order %d on Machine %d", item.OrderID, item.MachineID))

	fields := []string{
		fmt.Sprintf("%-18s : %s", "Scheduled Start", item.ScheduledStart.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("%-18s : %s", "Scheduled End", item.ScheduledEnd.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("%-18s : %d min", "Setup Time", item.SetupMinutes),
		fmt.Sprintf("%-18s : %d min", "Processing Time", item.ProcessingMinutes),
	}

	util := m.Result.EquipmentUtilization[item.MachineID]
	intel := lipgloss.JoinVertical(lipgloss.Left,
		special.Render(fmt.Sprintf("MACHINE UTILIZATION: %.1f%%", util*100)),
		highlight.Render(fmt.Sprintf("ALGORITHM:           %s", m.Result.Algorithm)),
	)

	actions := []string{"[B]/[Q] Back to List", "[Ctrl+C] Quit"}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		intel,
		"",
		dimStyle.Render(strings.Join(fields, "\n")),
		"",
		strings.Repeat("─", 50),
		highlight.Render("ACTIONS:"),
		strings.Join(actions, "  "),
	)

	return detailsBoxStyle.Render(content)
}

func (m Model) viewHelp() string {
	lines := []string{
		highlight.Render("Keybindings"),
		"",
		"  up/k, down/j   move cursor",
		"  enter/space    view job detail",
		"  b / esc        back to list",
		"  ?              toggle this help",
		"  q              back to list (quit from the list)",
		"  ctrl+c         quit",
	}
	return detailsBoxStyle.Render(strings.Join(lines, "\n"))
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) viewList() string {
	s := strings.Builder{}

	if len(m.schedule) == 0 {
		return "\n\n   " + subtle.Render("No jobs scheduled.")
	}

	start, end := m.calculateWindow(len(m.schedule))

	headerTxt := fmt.Sprintf("  %-8s | %-8s | %-20s | %-20s | %s", "ORDER", "MACHINE", "START", "END", "SETUP/PROC (min)")
	s.WriteString(dimStyle.Render(headerTxt) + "\n")
	s.WriteString(dimStyle.Render("  "+strings.Repeat("─", 70)) + "\n")

	for i := start; i < end; i++ {
		item := m.schedule[i]
		isSelected := i == m.cursor

		cursor := "  "
		if isSelected {
			cursor = "> "
		}

		line := fmt.Sprintf("%-8d | %-8d | %-20s | %-20s | %d/%d",
			item.OrderID,
			item.MachineID,
			item.ScheduledStart.Format("2006-01-02 15:04"),
			item.ScheduledEnd.Format("2006-01-02 15:04"),
			item.SetupMinutes,
			item.ProcessingMinutes,
		)
		if item.SetupMinutes > item.ProcessingMinutes {
			line = lipgloss.NewStyle().Foreground(colorWarning).Render(line)
		}

		line = cursor + line
		if isSelected {
			s.WriteString(listSelectedStyle.Render(line) + "\n")
		} else {
			s.WriteString(listNormalStyle.Render(line) + "\n")
		}
	}

	return s.String()
}

func (m Model) calculateWindow(total int) (int, int) {
	windowSize := m.height - 10
	if windowSize < 5 {
		windowSize = 5
	}

	start := m.cursor - windowSize/2
	if start < 0 {
		start = 0
	}

	end := start + windowSize
	if end > total {
		end = total
		start = end - windowSize
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

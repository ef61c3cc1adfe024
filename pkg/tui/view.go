package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return "\n  Exiting packplan.\n"
	}

	hud := m.renderHUD()

	var body string
	switch m.state {
	case ViewStateDetail:
		body = m.viewDetails()
	case ViewStateHelp:
		body = m.viewHelp()
	default:
		body = m.viewList()
	}

	footer := footerStyle.Render("↑/↓ navigate · enter view detail · ? help · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, hud, body, footer)
}

func (m Model) renderHUD() string {
	fields := lipgloss.JoinHorizontal(lipgloss.Top,
		hudLabelStyle.Render("ALGORITHM"), hudValueStyle.Render(m.Result.Algorithm),
		hudLabelStyle.Render("  WASTE"), hudValueStyle.Render(fmt.Sprintf("%.2f kg", m.Result.TotalWasteKg)),
		hudLabelStyle.Render("  MAKESPAN"), hudValueStyle.Render(fmt.Sprintf("%.2f h", m.Result.MakespanHours)),
		hudLabelStyle.Render("  JOBS"), hudValueStyle.Render(fmt.Sprintf("%d", len(m.schedule))),
	)
	return hudStyle.Render(m.spinner.View() + " " + fields)
}

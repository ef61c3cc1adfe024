package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			if m.state == ViewStateDetail || m.state == ViewStateHelp {
				m.state = ViewStateList
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case "?":
			if m.state == ViewStateHelp {
				m.state = ViewStateList
			} else {
				m.state = ViewStateHelp
			}
			return m, nil
		}

		if m.state == ViewStateList {
			switch msg.String() {
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(m.schedule)-1 {
					m.cursor++
				}
			case "enter", " ":
				if len(m.schedule) > 0 {
					m.state = ViewStateDetail
					m.detailsScroll = 0
				}
			}
		} else if m.state == ViewStateDetail {
			switch msg.String() {
			case "b", "esc":
				m.state = ViewStateList
			case "up", "k":
				if m.detailsScroll > 0 {
					m.detailsScroll--
				}
			case "down", "j":
				m.detailsScroll++
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		m.tickCount++
		next := tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})
		if len(m.schedule) == 0 {
			return m, next
		}
		pct := float64(m.cursor+1) / float64(len(m.schedule))
		return m, tea.Batch(m.progress.SetPercent(pct), next)
	}
	return m, nil
}

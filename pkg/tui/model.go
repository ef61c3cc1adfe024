// Package tui renders a completed OptimizationResult as an interactive
// terminal schedule viewer: a scrollable per-job list and a detail pane
// breaking down setup/processing minutes for the selected job.
package tui

import (
	"sort"
	"time"

	"github.com/atlantispak/packplan/internal/domain"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type ViewState int

const (
	ViewStateList ViewState = iota
	ViewStateDetail
	ViewStateHelp
)

type Model struct {
	spinner  spinner.Model
	progress progress.Model

	Result domain.OptimizationResult

	state    ViewState
	quitting bool
	width    int
	height   int

	schedule []domain.ScheduleItem

	cursor        int
	detailsScroll int

	statusMsg  string
	statusTime time.Time

	startTime time.Time
	tickCount int
}

type tickMsg time.Time

// NewModel builds a Model over result, ready to hand to
// tea.NewProgram.
func NewModel(result domain.OptimizationResult) Model {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = special

	prog := progress.New(progress.WithGradient("#00FF99", "#00CCFF"))

	schedule := make([]domain.ScheduleItem, len(result.Schedule))
	copy(schedule, result.Schedule)
	sort.Slice(schedule, func(i, j int) bool {
		if schedule[i].MachineID != schedule[j].MachineID {
			return schedule[i].MachineID < schedule[j].MachineID
		}
		return schedule[i].ScheduledStart.Before(schedule[j].ScheduledStart)
	})

	return Model{
		spinner:   s,
		progress:  prog,
		Result:    result,
		schedule:  schedule,
		state:     ViewStateList,
		startTime: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
			return tickMsg(t)
		}),
	)
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTime = time.Now()
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskmate-app/taskmate/internal/engine"
	"github.com/taskmate-app/taskmate/internal/models"
)

// SessionRecorder persists a completed countdown. It is called from
// the TUI update loop when the engine emits a record.
type SessionRecorder func(engine.Completed) (*models.PomodoroSession, error)

// TimerModel is the TUI model for the pomodoro countdown
type TimerModel struct {
	width  int
	height int

	eng      *engine.Engine
	record   SessionRecorder
	pending  []models.Task
	bound    *models.Task
	lastTick time.Time

	// Task picker overlay
	picking bool
	picker  list.Model

	// Status line under the clock
	status string

	sessionsSaved int
	recordErr     error
}

// timerTickMsg is sent every second while the countdown runs
type timerTickMsg struct{}

type taskItem struct {
	task models.Task
}

func (i taskItem) Title() string { return i.task.Title }
func (i taskItem) Description() string {
	if i.task.EstimatedTime > 0 {
		return fmt.Sprintf("%s priority · %d min estimated", i.task.Urgency, i.task.EstimatedTime)
	}
	return fmt.Sprintf("%s priority", i.task.Urgency)
}
func (i taskItem) FilterValue() string { return i.task.Title }

// NewTimerModel builds the timer view. pending is the set of tasks the
// countdown may be bound to; bound may be nil for a free session.
func NewTimerModel(eng *engine.Engine, pending []models.Task, bound *models.Task, record SessionRecorder) TimerModel {
	items := make([]list.Item, len(pending))
	for i, t := range pending {
		items[i] = taskItem{task: t}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color(ColorAccentBright)).
		BorderForeground(lipgloss.Color(ColorAccentMain))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color(ColorSecondaryText)).
		BorderForeground(lipgloss.Color(ColorAccentMain))

	picker := list.New(items, delegate, 0, 0)
	picker.Title = "Bind a task to this session"
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(true)

	if bound != nil {
		eng.BindTask(bound.ID)
	}

	return TimerModel{
		eng:     eng,
		record:  record,
		pending: pending,
		bound:   bound,
		picker:  picker,
	}
}

// Init is a no-op; ticking starts with the countdown.
func (m TimerModel) Init() tea.Cmd {
	return nil
}

func tickOnce() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if m.eng.State() != engine.StateRunning {
			// pause/reset raced the scheduled tick; drop it
			return m, nil
		}

		// Resynchronize against the wall clock so a delayed tick does
		// not stretch the countdown.
		now := time.Now()
		steps := int(now.Sub(m.lastTick) / time.Second)
		if steps < 1 {
			steps = 1
		}
		m.lastTick = m.lastTick.Add(time.Duration(steps) * time.Second)

		if done := m.eng.Advance(steps); done != nil {
			if _, err := m.record(*done); err != nil {
				m.recordErr = err
				m.status = fmt.Sprintf("failed to save session: %v", err)
			} else {
				m.sessionsSaved++
				m.recordErr = nil
				m.status = fmt.Sprintf("%d-minute %s session saved", done.Duration, done.Phase)
			}
			// Engine is idle again; next phase waits for start.
			return m, nil
		}
		return m, tickOnce()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}

		switch msg.String() {
		case " ", "s":
			if m.eng.State() == engine.StateRunning {
				_ = m.eng.Pause()
				m.status = "paused"
				return m, nil
			}
			if err := m.eng.Start(); err == nil {
				m.status = ""
				m.lastTick = time.Now()
				return m, tickOnce()
			}
			return m, nil
		case "r":
			m.eng.Reset()
			m.status = "countdown reset, nothing recorded"
			return m, nil
		case "t":
			if m.eng.State() != engine.StateRunning && len(m.pending) > 0 {
				m.picking = true
			}
			return m, nil
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m TimerModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if item, ok := m.picker.SelectedItem().(taskItem); ok {
			task := item.task
			m.bound = &task
			m.eng.BindTask(task.ID)
		}
		m.picking = false
		return m, nil
	case "esc":
		m.picking = false
		return m, nil
	case "backspace":
		if m.picker.FilterState() == list.Unfiltered {
			m.bound = nil
			m.eng.ClearTask()
			m.picking = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// View renders the timer TUI
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.picking {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.picker.View())
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	var components []string

	phaseColor := ColorWork
	header := "WORK SESSION"
	if m.eng.Phase() == engine.PhaseBreak {
		phaseColor = ColorBreak
		header = "BREAK TIME"
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(phaseColor)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, headerStyle.Render(header))

	components = append(components, m.renderBigClock(phaseColor))

	stateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, stateStyle.Render(m.stateLine()))

	taskStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Align(lipgloss.Center).
		Width(m.width)
	if m.bound != nil {
		components = append(components, taskStyle.Render("Focus: "+m.bound.Title))
	} else {
		components = append(components, lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Align(lipgloss.Center).
			Width(m.width).
			Render("No task bound"))
	}

	if m.status != "" {
		statusColor := ColorSuccess
		if m.recordErr != nil {
			statusColor = ColorError
		}
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(statusColor)).
			Align(lipgloss.Center).
			Width(m.width)
		components = append(components, statusStyle.Render(m.status))
	}

	content := strings.Join(components, "\n\n")
	panel := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, panel, helpBar)
}

func (m TimerModel) stateLine() string {
	switch m.eng.State() {
	case engine.StateRunning:
		return "counting down"
	case engine.StatePaused:
		return "paused"
	default:
		if m.sessionsSaved > 0 {
			return "done, press space for the next phase"
		}
		return "press space to start"
	}
}

// renderBigClock renders the remaining time as ASCII art digits
func (m TimerModel) renderBigClock(color string) string {
	remaining := m.eng.Remaining()
	timeStr := fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)

	var lines [5]strings.Builder
	for _, char := range timeStr {
		art, ok := clockDigits[char]
		if !ok {
			continue
		}
		for i := 0; i < 5; i++ {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true)

	var rows []string
	for i := 0; i < 5; i++ {
		rows = append(rows, lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(m.width).
			Render(clockStyle.Render(lines[i].String())))
	}
	return strings.Join(rows, "\n")
}

func (m TimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	return helpStyle.Render("space start/pause · r reset · t bind task · q quit")
}

// clockDigits is 3x5 ASCII art for the clock display
var clockDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

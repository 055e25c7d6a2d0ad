package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskmate-app/taskmate/internal/gateway"
	"github.com/taskmate-app/taskmate/internal/models"
	"github.com/taskmate-app/taskmate/internal/parser"
)

// TaskSaver persists a validated draft and returns the stored task.
type TaskSaver func(gateway.TaskDraft) (*models.Task, error)

const (
	fieldTitle = iota
	fieldDescription
	fieldDueDate
	fieldUrgency
	fieldEstimate
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title",
	"Description (optional)",
	"Due date (yyyy-mm-dd, \"3 days\", ...)",
	"Urgency (high/medium/low)",
	"Estimate (minutes or \"1h30m\")",
}

// AddTaskModel is the interactive add/edit form
type AddTaskModel struct {
	width  int
	height int

	inputs  []textinput.Model
	focused int
	save    TaskSaver

	editing bool // edit form instead of add

	validationErr string
	err           error
	cancelled     bool
	created       *models.Task
}

// NewAddTaskModel builds the form, optionally pre-filled (edit mode).
func NewAddTaskModel(prefilled map[string]string, editing bool, save TaskSaver) AddTaskModel {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Prompt = "> "
		in.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain))
		in.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		in.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
		in.CharLimit = 200
		inputs[i] = in
	}
	inputs[fieldTitle].Placeholder = "What needs doing?"
	inputs[fieldUrgency].Placeholder = "medium"

	inputs[fieldTitle].SetValue(prefilled["title"])
	inputs[fieldDescription].SetValue(prefilled["description"])
	inputs[fieldDueDate].SetValue(prefilled["due_date"])
	inputs[fieldUrgency].SetValue(prefilled["urgency"])
	inputs[fieldEstimate].SetValue(prefilled["estimate"])

	inputs[fieldTitle].Focus()

	return AddTaskModel{
		inputs:  inputs,
		save:    save,
		editing: editing,
	}
}

func (m AddTaskModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m AddTaskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "tab", "down":
			return m.focusField((m.focused + 1) % fieldCount), nil
		case "shift+tab", "up":
			return m.focusField((m.focused + fieldCount - 1) % fieldCount), nil
		case "enter":
			if m.focused < fieldCount-1 {
				return m.focusField(m.focused + 1), nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m AddTaskModel) focusField(i int) AddTaskModel {
	m.inputs[m.focused].Blur()
	m.focused = i
	m.inputs[i].Focus()
	return m
}

func (m AddTaskModel) submit() (tea.Model, tea.Cmd) {
	draft, errMsg := m.draft()
	if errMsg != "" {
		m.validationErr = errMsg
		return m, nil
	}

	task, err := m.save(draft)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}

	m.created = task
	return m, tea.Quit
}

// draft validates the form and builds the task draft.
func (m AddTaskModel) draft() (gateway.TaskDraft, string) {
	var draft gateway.TaskDraft

	draft.Title = strings.TrimSpace(m.inputs[fieldTitle].Value())
	if draft.Title == "" {
		return draft, "title is required"
	}
	draft.Description = strings.TrimSpace(m.inputs[fieldDescription].Value())

	due, err := parser.ParseDueDate(m.inputs[fieldDueDate].Value())
	if err != nil {
		return draft, err.Error()
	}
	draft.DueDate = due

	urgency := models.Urgency(strings.ToLower(strings.TrimSpace(m.inputs[fieldUrgency].Value())))
	if urgency == "" {
		urgency = models.UrgencyMedium
	}
	if !urgency.Valid() {
		return draft, "urgency must be high, medium or low"
	}
	draft.Urgency = urgency

	estimate, err := parser.ParseEstimate(m.inputs[fieldEstimate].Value())
	if err != nil {
		return draft, err.Error()
	}
	draft.EstimatedTime = estimate

	return draft, ""
}

func (m AddTaskModel) View() string {
	title := "Add a task"
	if m.editing {
		title = "Edit task"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText))
	activeLabelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	for i, in := range m.inputs {
		style := labelStyle
		if i == m.focused {
			style = activeLabelStyle
		}
		b.WriteString(style.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	if m.validationErr != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Render("✗ " + m.validationErr))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render("tab/enter next field · enter on last field saves · esc cancels"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

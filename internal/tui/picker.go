package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emberworks/kiln-ctl/internal/config"
	"github.com/emberworks/kiln-ctl/internal/driver"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionLogin
	ActionDestroy
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action   Action
	Instance *config.InstanceMetadata
}

// instanceItem implements list.Item for instance display
type instanceItem struct {
	metadata *config.InstanceMetadata
	status   driver.InstanceStatus
}

func (i instanceItem) Title() string {
	return i.metadata.Name
}

func (i instanceItem) Description() string {
	scenario := i.metadata.Scenario
	if scenario == "" {
		scenario = "default"
	}

	statusIcon := "●"
	switch i.status {
	case driver.StatusRunning:
		statusIcon = "✓"
	case driver.StatusStopped:
		statusIcon = "●"
	case driver.StatusNotFound:
		statusIcon = "✗"
	case driver.StatusUnknown:
		statusIcon = "○"
	}

	return fmt.Sprintf("%s %s | %s | %s",
		statusIcon,
		i.metadata.Driver,
		scenario,
		truncateImage(i.metadata.Image, 30),
	)
}

func (i instanceItem) FilterValue() string {
	return i.metadata.Name
}

func truncateImage(image string, maxLen int) string {
	if len(image) <= maxLen {
		return image
	}
	return "..." + image[len(image)-maxLen+3:]
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// StatusFunc reports the current container status for an instance.
type StatusFunc func(name string) driver.InstanceStatus

// Model is the bubbletea model for the instance picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new instance picker
func NewPicker(instances []*config.InstanceMetadata, status StatusFunc) Model {
	items := make([]list.Item, len(instances))
	for i, inst := range instances {
		st := driver.StatusUnknown
		if status != nil {
			st = status(inst.Name)
		}
		items[i] = instanceItem{
			metadata: inst,
			status:   st,
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "Kiln - Select Instance"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{
		list: l,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(instanceItem); ok {
				m.result = PickerResult{
					Action:   ActionLogin,
					Instance: item.metadata,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "d":
			if item, ok := m.list.SelectedItem().(instanceItem); ok {
				m.result = PickerResult{
					Action:   ActionDestroy,
					Instance: item.metadata,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Login  [d] Destroy  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive instance picker
func RunPicker(instances []*config.InstanceMetadata, status StatusFunc) (PickerResult, error) {
	if len(instances) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	m := NewPicker(instances, status)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive picker that just lists instances
func SimplePicker(instances []*config.InstanceMetadata, status StatusFunc) string {
	var sb strings.Builder

	sb.WriteString("Kiln - Instances\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(instances) == 0 {
		sb.WriteString("No instances found.\n")
		sb.WriteString("Create some with: kiln-ctl create\n")
		return sb.String()
	}

	for i, inst := range instances {
		st := driver.StatusUnknown
		if status != nil {
			st = status(inst.Name)
		}
		statusIcon := "●"
		switch st {
		case driver.StatusRunning:
			statusIcon = "✓"
		case driver.StatusNotFound:
			statusIcon = "✗"
		case driver.StatusUnknown:
			statusIcon = "○"
		}

		sb.WriteString(fmt.Sprintf("%d. %s %s (%s)\n",
			i+1, statusIcon, inst.Name, inst.Driver))
		sb.WriteString(fmt.Sprintf("   Scenario: %s | Image: %s\n\n",
			inst.Scenario, truncateImage(inst.Image, 40)))
	}

	return sb.String()
}

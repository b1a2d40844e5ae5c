package ui

import (
	"github.com/Nomadcxx/animename/internal/release"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InspectModel re-parses the typed name on every change and shows the
// result below the input.
type InspectModel struct {
	input   textinput.Model
	element *release.Element
	width   int
}

// NewInspectModel starts the model with initial already typed.
func NewInspectModel(initial string) InspectModel {
	ti := textinput.New()
	ti.Placeholder = "e.g., [Group] Show Name - 05 [1080p].mkv"
	ti.Prompt = "› "
	ti.CharLimit = 1000
	ti.Width = 70
	ti.PromptStyle = infoStyle
	ti.SetValue(initial)
	ti.Focus()

	return InspectModel{
		input:   ti,
		element: release.Parse(initial),
	}
}

func (m InspectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "ctrl+u":
			m.input.SetValue("")
			m.element = release.Parse("")
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.element = release.Parse(m.input.Value())
	}
	return m, cmd
}

func (m InspectModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("animename inspect"),
		"",
		m.input.View(),
		"",
		RenderElement(m.element),
		"",
		Dim("enter/esc quit • ctrl+u clear"),
	)
}

// Element returns the result for the current input.
func (m InspectModel) Element() *release.Element {
	return m.element
}

// Value returns the current input.
func (m InspectModel) Value() string {
	return m.input.Value()
}

// RunInspect runs the inspect TUI and returns the last parsed element.
func RunInspect(initial string) (*release.Element, error) {
	final, err := tea.NewProgram(NewInspectModel(initial)).Run()
	if err != nil {
		return nil, err
	}
	return final.(InspectModel).Element(), nil
}

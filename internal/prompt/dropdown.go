package prompt

import (
	"errors"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
)

// ErrNoOptions indicates a dropdown was requested with nothing to select.
var ErrNoOptions = errors.New("dropdown requires at least one option")

var (
	dropdownLabelStyle    = lipgloss.NewStyle().Bold(true)
	dropdownSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")).Bold(true)
	dropdownHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")).Italic(true)
)

// dropdownKeys are the key bindings of the widget.
type dropdownKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultDropdownKeys() dropdownKeys {
	return dropdownKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "q"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Dropdown is a bubbletea model for picking one of a fixed set of options.
// The committed value starts as the first option; the change handler fires
// whenever the operator commits a different one.
type Dropdown struct {
	label    string
	options  []string
	onChange func(string)
	keys     dropdownKeys

	cursor   int
	value    string
	quitting bool
}

// NewDropdown builds a dropdown over options, committed to options[0].
// onChange may be nil.
func NewDropdown(options []string, label string, onChange func(string)) (Dropdown, error) {
	if len(options) == 0 {
		return Dropdown{}, ErrNoOptions
	}

	return Dropdown{
		label:    label,
		options:  options,
		onChange: onChange,
		keys:     defaultDropdownKeys(),
		value:    options[0],
	}, nil
}

// Value returns the committed selection.
func (d Dropdown) Value() string {
	return d.value
}

// Init implements tea.Model.
func (d Dropdown) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (d Dropdown) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, d.keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}

		case key.Matches(msg, d.keys.Down):
			if d.cursor < len(d.options)-1 {
				d.cursor++
			}

		case key.Matches(msg, d.keys.Select):
			if selected := d.options[d.cursor]; selected != d.value {
				d.value = selected
				if d.onChange != nil {
					d.onChange(selected)
				}
			}
			return d, tea.Quit

		case key.Matches(msg, d.keys.Quit):
			d.quitting = true
			return d, tea.Quit
		}
	}

	return d, nil
}

// View implements tea.Model.
func (d Dropdown) View() tea.View {
	return tea.NewView(d.renderContent())
}

func (d Dropdown) renderContent() string {
	if d.quitting {
		return ""
	}

	out := dropdownLabelStyle.Render(d.label) + "\n\n"
	for i, option := range d.options {
		if i == d.cursor {
			out += dropdownSelectedStyle.Render("> "+option) + "\n"
			continue
		}
		out += "  " + option + "\n"
	}
	out += "\n" + dropdownHintStyle.Render("↑/↓ move · enter select · esc cancel") + "\n"
	return out
}

// Run drives the dropdown to completion and returns the committed value.
// Cancelling keeps the previously committed value.
func (d Dropdown) Run() (string, error) {
	final, err := tea.NewProgram(d).Run()
	if err != nil {
		return "", fmt.Errorf("dropdown UI error: %w", err)
	}

	if m, ok := final.(Dropdown); ok {
		return m.value, nil
	}
	return d.value, nil
}

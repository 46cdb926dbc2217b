package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// PickerModel is the bubbletea model for choosing one of a list of options.
// Keys 1-9 select an option directly.
type PickerModel struct {
	Title    string
	Options  []string
	Hints    map[string]string // shown dimmed after an option
	Cursor   int
	Selected string
	Aborted  bool
}

// NewPickerModel creates a picker with the cursor on def, or the first
// option when def is not listed.
func NewPickerModel(title string, options []string, def string) PickerModel {
	m := PickerModel{Title: title, Options: options}
	for i, o := range options {
		if strings.EqualFold(o, def) {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Options)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Options) > 0 {
				m.Selected = m.Options[m.Cursor]
			}
			return m, tea.Quit
		default:
			if k := msg.String(); len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
				if i := int(k[0] - '1'); i < len(m.Options) {
					m.Cursor = i
					m.Selected = m.Options[i]
					return m, tea.Quit
				}
			}
		}
	}
	return m, nil
}

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ or 1-9 select  q quit"))
	b.WriteString("\n\n")

	for i, o := range m.Options {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + o))
		} else {
			b.WriteString(listNormalStyle.Render("  " + o))
		}
		if hint := m.Hints[o]; hint != "" {
			b.WriteString("  " + listDimStyle.Render(hint))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Options))))
	b.WriteString("\n")
	return b.String()
}

// pick runs a picker and returns the chosen option. ok is false when the
// user quit without choosing.
func pick(title string, options []string, def string, hints map[string]string, opts ...tea.ProgramOption) (choice string, ok bool, err error) {
	m := NewPickerModel(title, options, def)
	m.Hints = hints
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return "", false, err
	}
	m = final.(PickerModel)
	if m.Aborted || m.Selected == "" {
		return "", false, nil
	}
	return m.Selected, true, nil
}

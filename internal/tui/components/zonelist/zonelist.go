package zonelist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// OpenZoneMsg asks the parent to show a zone's rules.
type OpenZoneMsg struct {
	Zone string
}

type NewZoneMsg struct{}

type Item struct {
	Zone  string
	Rules int
}

func (i Item) Title() string       { return i.Zone }
func (i Item) Description() string { return fmt.Sprintf("%d rule(s)", i.Rules) }
func (i Item) FilterValue() string { return i.Zone }

type Model struct {
	list list.Model
	open key.Binding
	add  key.Binding
}

func New(zones []Item, width, height int) Model {
	items := make([]list.Item, len(zones))
	for i, z := range zones {
		items[i] = z
	}
	open := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open zone"))
	add := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add rule"))

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Zones"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{open, add} }

	return Model{list: l, open: open, add: add}
}

func (m *Model) SetZones(zones []Item) {
	items := make([]list.Item, len(zones))
	for i, z := range zones {
		items[i] = z
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.open):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return OpenZoneMsg{Zone: i.Zone} }
			}
		case key.Matches(msg, m.add):
			return m, func() tea.Msg { return NewZoneMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No zones yet.\n  Press 'a' to add a rule to a new zone."
	}
	return m.list.View()
}

// Filtering reports whether the filter input has focus, so the parent
// should not treat keystrokes as shortcuts.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

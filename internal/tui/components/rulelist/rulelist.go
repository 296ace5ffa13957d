package rulelist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/utils"
)

type AddRuleMsg struct{}

type DeleteRuleMsg struct {
	ID int64
}

type ToggleRuleMsg struct {
	Rule models.AlarmRule
}

type Item struct {
	Rule models.AlarmRule
	Now  time.Time
}

func (i Item) Title() string {
	title := fmt.Sprintf("#%d %s", i.Rule.ID, i.Rule.Summary())
	if !i.Rule.Enabled {
		title += " (disabled)"
	}
	return title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %s", i.Rule.Status(i.Now).Label(), utils.DurationLabel(i.Rule.Candidate))
	if i.Rule.IsRecurring() {
		desc += " | " + utils.Describe(*i.Rule.Recurring)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Rule.Summary() }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "enable/disable"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func items(rules []models.AlarmRule, now time.Time) []list.Item {
	out := make([]list.Item, len(rules))
	for i, r := range rules {
		out[i] = Item{Rule: r, Now: now}
	}
	return out
}

func New(rules []models.AlarmRule, now time.Time, width, height int) Model {
	l := list.New(items(rules, now), list.NewDefaultDelegate(), width, height)
	l.Title = "Rules"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Toggle}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func (m *Model) SetRules(rules []models.AlarmRule, now time.Time) {
	m.list.SetItems(items(rules, now))
}

// Selected returns the highlighted rule.
func (m Model) Selected() (models.AlarmRule, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Rule, ok
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddRuleMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteRuleMsg{ID: r.ID} }
			}
		case key.Matches(msg, m.keys.Toggle):
			if r, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleRuleMsg{Rule: r} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No rules in this zone.\n  Press 'a' to add one."
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

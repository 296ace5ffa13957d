package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/cli/rules"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/constants"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/scheduler"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/tui/components/preview"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/tui/components/rulelist"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/tui/components/zonelist"
)

type sessionState int

const (
	stateZones sessionState = iota
	stateRules
	statePreview
	stateForm
	stateConfirmSupersede
	stateConfirmDelete
)

type ruleFormModel struct {
	Zone      string
	Type      models.RuleType
	Days      string
	Start     string
	End       string
	Mode      string
	OnceStart string
	OnceEnd   string
}

func (fm ruleFormModel) Candidate() (models.Candidate, error) {
	if fm.Type == models.RuleTypeOneTime {
		return rules.OnceFlags{Zone: fm.Zone, Start: fm.OnceStart, End: fm.OnceEnd}.Candidate()
	}
	return rules.RecurringFlags{Zone: fm.Zone, Days: fm.Days, Start: fm.Start, End: fm.End, Mode: fm.Mode}.Candidate()
}

type Model struct {
	scheduler    *scheduler.Scheduler
	state        sessionState
	keys         KeyMap
	help         help.Model
	zones        zonelist.Model
	rules        rulelist.Model
	preview      preview.Model
	zone         string
	form         *huh.Form
	ruleForm     *ruleFormModel
	confirm      *bool
	pending      *scheduler.Decision
	ruleToDelete int64
	status       string
	formError    string
	warning      string
	width        int
	height       int
	quitting     bool
}

func NewModel(sched *scheduler.Scheduler) Model {
	m := Model{
		scheduler: sched,
		state:     stateZones,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		zones:     zonelist.New(nil, 0, 0),
		rules:     rulelist.New(nil, sched.Now(), 0, 0),
		preview:   preview.New(0, 0),
	}
	m.reloadZones()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case stateZones:
		return []key.Binding{m.keys.Enter, m.keys.Refresh, m.keys.Quit, m.keys.Help}
	case stateRules, statePreview:
		return []key.Binding{m.keys.Tab, m.keys.Back, m.keys.Refresh, m.keys.Quit, m.keys.Help}
	default:
		return []key.Binding{m.keys.Back}
	}
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m *Model) reloadZones() {
	ids, err := m.scheduler.Zones()
	if err != nil {
		m.formError = fmt.Sprintf("Failed to load zones: %v", err)
		return
	}
	items := make([]zonelist.Item, 0, len(ids))
	for _, id := range ids {
		zoneRules, err := m.scheduler.Rules(id)
		if err != nil {
			m.formError = fmt.Sprintf("Failed to load zone %s: %v", id, err)
			continue
		}
		items = append(items, zonelist.Item{Zone: id, Rules: len(zoneRules)})
	}
	m.zones.SetZones(items)
}

// openZone loads a zone into the rule list and the preview pane and
// re-audits it.
func (m *Model) openZone(zone string) {
	m.zone = zone
	now := m.scheduler.Now()

	zoneRules, err := m.scheduler.Rules(zone)
	if err != nil {
		m.formError = fmt.Sprintf("Failed to load zone %s: %v", zone, err)
		return
	}
	m.rules.SetRules(zoneRules, now)

	armed, err := scheduler.ArmedAt(zoneRules, now)
	if err != nil {
		m.formError = fmt.Sprintf("Failed to expand rules: %v", err)
	}
	occurrences, err := scheduler.Upcoming(zoneRules, now, now.Add(constants.DefaultUpcomingDays*24*time.Hour))
	if err != nil {
		m.formError = fmt.Sprintf("Failed to expand rules: %v", err)
	}
	m.preview.SetZone(zone, now, armed, occurrences)

	m.warning = ""
	result, err := m.scheduler.Audit(zone)
	switch {
	case err != nil:
		m.warning = "⚠ Validation unavailable"
	case result.HasConflicts():
		m.warning = fmt.Sprintf("⚠ %d problem(s) in stored rules, run validate for details", len(result.Conflicts))
	}
}

func (m *Model) reload() {
	m.reloadZones()
	if m.zone != "" {
		m.openZone(m.zone)
	}
}

// listState is where a finished form or prompt returns to.
func (m Model) listState() sessionState {
	if m.zone == "" {
		return stateZones
	}
	return stateRules
}

func (m Model) filtering() bool {
	switch m.state {
	case stateZones:
		return m.zones.Filtering()
	case stateRules:
		return m.rules.Filtering()
	}
	return false
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	h, v := docStyle.GetFrameSize()
	listHeight := height - v - 6
	if listHeight < 0 {
		listHeight = 0
	}
	m.zones.SetSize(width-h, listHeight)
	m.rules.SetSize(width-h, listHeight)
	m.preview.SetSize(width-h, listHeight)
}

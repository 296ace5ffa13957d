package preview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/scheduler"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(36)

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	armedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	disarmedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

const spanLayout = "Mon 01-02 15:04"

// Model shows whether a zone is armed now and its next armed windows.
type Model struct {
	viewport    viewport.Model
	zone        string
	now         time.Time
	armed       []models.AlarmRule
	occurrences []scheduler.Occurrence
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetZone(zone string, now time.Time, armed []models.AlarmRule, occurrences []scheduler.Occurrence) {
	m.zone = zone
	m.now = now
	m.armed = armed
	m.occurrences = occurrences
	m.Render()
}

func (m *Model) Render() {
	if m.zone == "" {
		m.viewport.SetContent("No zone selected.")
		return
	}

	var b strings.Builder
	if len(m.armed) > 0 {
		ids := make([]string, len(m.armed))
		for i, r := range m.armed {
			ids[i] = fmt.Sprintf("#%d", r.ID)
		}
		b.WriteString(armedStyle.Render("ARMED now by "+strings.Join(ids, ", ")) + "\n\n")
	} else {
		b.WriteString(disarmedStyle.Render("Disarmed now") + "\n\n")
	}

	if len(m.occurrences) == 0 {
		b.WriteString("No armed windows in the preview range.\n")
	}
	for _, o := range m.occurrences {
		span := fmt.Sprintf("%s → %s", o.Start.Format(spanLayout), o.End.Format(spanLayout))
		b.WriteString(fmt.Sprintf("%s %s\n",
			timeStyle.Render(span),
			ruleStyle.Render(fmt.Sprintf("#%d %s", o.Rule.ID, o.Rule.Summary())),
		))
	}
	m.viewport.SetContent(b.String())
}

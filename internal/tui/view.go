package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case stateZones:
		content = docStyle.Render(m.zones.View())
	case stateRules:
		content = docStyle.Render(m.rules.View())
	case statePreview:
		content = docStyle.Render(m.preview.View())
	case stateForm, stateConfirmSupersede:
		content = docStyle.Render(m.form.View())
	case stateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewBanner(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Zones", "Rules", "Preview"} {
		if m.state == sessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	if m.zone != "" {
		tabs = append(tabs, inactiveTabStyle.Render("zone: "+m.zone))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewBanner() string {
	var lines []string
	if m.warning != "" {
		lines = append(lines, warningStyle.Render(m.warning))
	}
	if m.formError != "" {
		lines = append(lines, dangerStyle.Render(m.formError))
	}
	if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Remove rule #%d from zone %s?", m.ruleToDelete, m.zone)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

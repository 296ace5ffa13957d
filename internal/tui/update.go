package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/constants"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/scheduler"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/tui/components/rulelist"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/tui/components/zonelist"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.setSize(msg.Width, msg.Height)
		return m, nil
	}

	switch m.state {
	case stateForm:
		return m.updateForm(msg)
	case stateConfirmSupersede:
		return m.updateConfirmSupersede(msg)
	case stateConfirmDelete:
		return m.updateConfirmDelete(msg), nil
	}

	switch msg := msg.(type) {
	case zonelist.OpenZoneMsg:
		m.status, m.formError = "", ""
		m.openZone(msg.Zone)
		m.state = stateRules
		return m, nil

	case zonelist.NewZoneMsg:
		return m.startForm("")

	case rulelist.AddRuleMsg:
		return m.startForm(m.zone)

	case rulelist.DeleteRuleMsg:
		m.ruleToDelete = msg.ID
		m.state = stateConfirmDelete
		return m, nil

	case rulelist.ToggleRuleMsg:
		m.toggle(msg.Rule)
		return m, nil

	case tea.KeyMsg:
		if !m.filtering() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			case key.Matches(msg, m.keys.Refresh):
				m.reload()
				return m, nil
			case key.Matches(msg, m.keys.Back):
				if m.state != stateZones {
					m.zone, m.warning = "", ""
					m.state = stateZones
					m.reloadZones()
				}
				return m, nil
			case key.Matches(msg, m.keys.Tab):
				switch m.state {
				case stateRules:
					m.state = statePreview
				case statePreview:
					m.state = stateRules
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case stateZones:
		m.zones, cmd = m.zones.Update(msg)
	case stateRules:
		m.rules, cmd = m.rules.Update(msg)
	case statePreview:
		m.preview, cmd = m.preview.Update(msg)
	}
	return m, cmd
}

func (m Model) startForm(zone string) (tea.Model, tea.Cmd) {
	m.ruleForm = &ruleFormModel{
		Zone:  zone,
		Type:  models.RuleTypeRecurring,
		Start: constants.DefaultStartTime,
		End:   constants.DefaultEndTime,
		Mode:  constants.DefaultAlarmMode,
	}
	m.form = newRuleForm(m.ruleForm)
	m.formError, m.status = "", ""
	m.state = stateForm
	return m, m.form.Init()
}

func newRuleForm(fm *ruleFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Zone").
				Value(&fm.Zone).
				Validate(validation.ValidateZone),
			huh.NewSelect[models.RuleType]().
				Title("Type").
				Options(
					huh.NewOption("Recurring", models.RuleTypeRecurring),
					huh.NewOption("One-time", models.RuleTypeOneTime),
				).
				Value(&fm.Type),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Days").
				Description("e.g. mon,tue or weekdays").
				Value(&fm.Days).
				Validate(func(s string) error {
					_, err := models.ParseWeekdays(s)
					return err
				}),
			huh.NewInput().
				Title("Start (HH:MM)").
				Value(&fm.Start).
				Validate(func(s string) error {
					_, err := models.ParseTimeOfDay(s)
					return err
				}),
			huh.NewInput().
				Title("End (HH:MM)").
				Description("At or before the start continues into the next day").
				Value(&fm.End).
				Validate(func(s string) error {
					_, err := models.ParseTimeOfDay(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Mode").
				Options(
					huh.NewOption("Daily", string(models.AlarmModeDaily)),
					huh.NewOption("Continuous", string(models.AlarmModeContinuous)),
				).
				Value(&fm.Mode),
		).WithHideFunc(func() bool { return fm.Type != models.RuleTypeRecurring }),
		huh.NewGroup(
			huh.NewInput().
				Title("Start").
				Description(constants.DateTimeFormat).
				Value(&fm.OnceStart).
				Validate(func(s string) error {
					_, err := models.ParseLocalDateTime(s)
					return err
				}),
			huh.NewInput().
				Title("End").
				Description(constants.DateTimeFormat).
				Value(&fm.OnceEnd).
				Validate(func(s string) error {
					_, err := models.ParseLocalDateTime(s)
					return err
				}),
		).WithHideFunc(func() bool { return fm.Type != models.RuleTypeOneTime }),
	)
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = m.listState()
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		c, err := m.ruleForm.Candidate()
		if err != nil {
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		next, cmd := m.submit(strings.TrimSpace(m.ruleForm.Zone), c)
		return next, tea.Batch(append(cmds, cmd)...)
	case huh.StateAborted:
		m.state = m.listState()
	}
	return m, tea.Batch(cmds...)
}

// submit runs a candidate through the scheduler. Supersession is asked
// about with a confirm form; other rejections keep the rule form open.
func (m Model) submit(zone string, c models.Candidate) (Model, tea.Cmd) {
	d, err := m.scheduler.Submit(zone, c)
	if err != nil {
		m.formError = fmt.Sprintf("Failed to add rule: %v", err)
		m.state = m.listState()
		return m, nil
	}

	switch d.State {
	case scheduler.StateCommitted:
		m.formError = ""
		m.status = fmt.Sprintf("Added rule #%d", d.Rule.ID)
		m.reloadZones()
		m.openZone(zone)
		m.state = stateRules
		return m, nil

	case scheduler.StateAwaitingConfirm:
		m.pending = d
		confirmed := false
		m.confirm = &confirmed
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Replace the covered rules?").
					Description(d.Classification.Message()).
					Affirmative("Replace").
					Negative("Keep existing").
					Value(m.confirm),
			),
		)
		m.formError = ""
		m.state = stateConfirmSupersede
		return m, m.form.Init()

	default:
		m.formError = fmt.Sprintf("%s: %s", strings.ToUpper(string(d.Classification.Outcome)), d.Classification.Message())
		if m.form != nil && m.state == stateForm {
			m.form.State = huh.StateNormal
		}
		return m, nil
	}
}

func (m Model) updateConfirmSupersede(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return m.resolvePending(false), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.resolvePending(*m.confirm), cmd
	case huh.StateAborted:
		return m.resolvePending(false), cmd
	}
	return m, cmd
}

// resolvePending confirms or aborts the decision awaiting confirmation.
func (m Model) resolvePending(replace bool) Model {
	d := m.pending
	m.pending = nil
	if d == nil {
		m.state = m.listState()
		return m
	}

	if replace {
		rule, err := m.scheduler.Confirm(d)
		switch {
		case errors.Is(err, scheduler.ErrStaleDecision):
			m.formError = "The zone changed before confirmation; nothing was written. Try again."
		case err != nil:
			m.formError = fmt.Sprintf("Failed to replace rules: %v", err)
		default:
			m.status = fmt.Sprintf("Added rule #%d, replacing %d rule(s)", rule.ID, len(d.Classification.Rules))
		}
	} else {
		if err := m.scheduler.Abort(d); err != nil {
			m.formError = err.Error()
		}
		m.status = "Kept existing rules"
	}

	m.reloadZones()
	m.openZone(d.Zone)
	m.state = stateRules
	return m
}

func (m Model) updateConfirmDelete(msg tea.Msg) Model {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m
	}
	switch msgKey.String() {
	case "y", "Y":
		if err := m.scheduler.Remove(m.zone, m.ruleToDelete); err != nil {
			m.formError = fmt.Sprintf("Failed to remove rule #%d: %v", m.ruleToDelete, err)
		} else {
			m.status = fmt.Sprintf("Removed rule #%d", m.ruleToDelete)
		}
		m.ruleToDelete = 0
		m.reloadZones()
		m.openZone(m.zone)
		m.state = stateRules
	case "n", "N", "esc":
		m.ruleToDelete = 0
		m.state = stateRules
	}
	return m
}

func (m *Model) toggle(r models.AlarmRule) {
	classification, err := m.scheduler.SetEnabled(m.zone, r.ID, !r.Enabled)
	switch {
	case err != nil:
		m.formError = fmt.Sprintf("Failed to update rule #%d: %v", r.ID, err)
	case classification.Outcome != validation.OutcomeAccepted:
		m.formError = fmt.Sprintf("Cannot enable rule #%d: %s", r.ID, classification.Message())
	case r.Enabled:
		m.formError = ""
		m.status = fmt.Sprintf("Disabled rule #%d", r.ID)
	default:
		m.formError = ""
		m.status = fmt.Sprintf("Enabled rule #%d", r.ID)
	}
	m.openZone(m.zone)
}

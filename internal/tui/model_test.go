package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/scheduler"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/tui/components/rulelist"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/tui/components/zonelist"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.Local)

func setupModel(t *testing.T) (Model, *storage.JSONStore) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "zones.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	sched := scheduler.New(store, scheduler.WithClock(func() time.Time { return testNow }))

	lobby := models.NewRecurring([]models.Weekday{models.Monday}, models.NewTimeOfDay(22, 0), models.NewTimeOfDay(23, 0), models.AlarmModeDaily)
	if d, err := sched.Submit("lobby", lobby); err != nil || d.State != scheduler.StateCommitted {
		t.Fatalf("failed to seed lobby: %v", err)
	}

	m := NewModel(sched)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), store
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel_ListsZones(t *testing.T) {
	m, _ := setupModel(t)
	if m.state != stateZones {
		t.Errorf("expected zones view, got %v", m.state)
	}
	if !strings.Contains(m.View(), "lobby") {
		t.Errorf("expected lobby in view, got:\n%s", m.View())
	}
}

func TestOpenZoneAndNavigate(t *testing.T) {
	m, _ := setupModel(t)

	m = send(t, m, zonelist.OpenZoneMsg{Zone: "lobby"})
	if m.state != stateRules || m.zone != "lobby" {
		t.Fatalf("expected rules view of lobby, got state %v zone %q", m.state, m.zone)
	}
	if m.rules.Len() != 1 {
		t.Errorf("expected 1 rule, got %d", m.rules.Len())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != statePreview {
		t.Errorf("expected tab to switch to preview, got %v", m.state)
	}
	if !strings.Contains(m.View(), "Disarmed now") {
		t.Errorf("expected preview to show a disarmed zone at noon, got:\n%s", m.View())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateZones || m.zone != "" {
		t.Errorf("expected esc to return to zones, got state %v zone %q", m.state, m.zone)
	}
}

func TestQuit(t *testing.T) {
	m, _ := setupModel(t)
	next, cmd := m.Update(runeKey("q"))
	if !next.(Model).quitting || cmd == nil {
		t.Fatal("expected q to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected a quit message")
	}
}

func TestDeleteRule(t *testing.T) {
	m, store := setupModel(t)
	m = send(t, m, zonelist.OpenZoneMsg{Zone: "lobby"})
	rule, ok := m.rules.Selected()
	if !ok {
		t.Fatal("expected a selected rule")
	}

	m = send(t, m, rulelist.DeleteRuleMsg{ID: rule.ID})
	if m.state != stateConfirmDelete {
		t.Fatalf("expected delete confirmation, got %v", m.state)
	}

	m = send(t, m, runeKey("n"))
	if rules, _ := store.LoadZone("lobby"); len(rules) != 1 {
		t.Fatal("expected 'n' to keep the rule")
	}

	m = send(t, m, rulelist.DeleteRuleMsg{ID: rule.ID})
	m = send(t, m, runeKey("y"))
	if m.state != stateRules {
		t.Errorf("expected rules view after delete, got %v", m.state)
	}
	if rules, _ := store.LoadZone("lobby"); len(rules) != 0 {
		t.Errorf("expected rule to be removed, got %d", len(rules))
	}
}

func TestToggleRule(t *testing.T) {
	m, store := setupModel(t)
	m = send(t, m, zonelist.OpenZoneMsg{Zone: "lobby"})
	rule, _ := m.rules.Selected()

	m = send(t, m, rulelist.ToggleRuleMsg{Rule: rule})
	rules, _ := store.LoadZone("lobby")
	if rules[0].Enabled {
		t.Fatal("expected rule to be disabled")
	}
	if !strings.Contains(m.status, "Disabled") {
		t.Errorf("expected disabled status, got %q", m.status)
	}

	overlap := models.NewRecurring([]models.Weekday{models.Monday}, models.NewTimeOfDay(22, 30), models.NewTimeOfDay(23, 30), models.AlarmModeDaily)
	m, _ = m.submit("lobby", overlap)
	if !strings.Contains(m.status, "Added rule") {
		t.Fatalf("expected overlapping rule to be accepted next to a disabled one, got error %q", m.formError)
	}

	m = send(t, m, rulelist.ToggleRuleMsg{Rule: rules[0]})
	if !strings.Contains(m.formError, "Cannot enable") {
		t.Errorf("expected enable to be refused, got %q", m.formError)
	}
}

func TestSubmit_RejectsConflict(t *testing.T) {
	m, store := setupModel(t)
	m = send(t, m, zonelist.OpenZoneMsg{Zone: "lobby"})

	overlap := models.NewRecurring([]models.Weekday{models.Monday}, models.NewTimeOfDay(22, 30), models.NewTimeOfDay(23, 30), models.AlarmModeDaily)
	m, _ = m.submit("lobby", overlap)
	if !strings.HasPrefix(m.formError, "CONFLICTING") {
		t.Errorf("expected conflicting error, got %q", m.formError)
	}
	if rules, _ := store.LoadZone("lobby"); len(rules) != 1 {
		t.Errorf("expected zone to be unchanged, got %d rules", len(rules))
	}
}

func TestSubmit_Supersede(t *testing.T) {
	wide := models.NewRecurring([]models.Weekday{models.Monday}, models.NewTimeOfDay(21, 0), models.NewTimeOfDay(23, 30), models.AlarmModeDaily)

	t.Run("keep", func(t *testing.T) {
		m, store := setupModel(t)
		m, cmd := m.submit("lobby", wide)
		if m.state != stateConfirmSupersede || m.pending == nil || cmd == nil {
			t.Fatalf("expected supersede confirmation, got state %v", m.state)
		}
		m = m.resolvePending(false)
		if m.pending != nil || m.status != "Kept existing rules" {
			t.Errorf("expected decision to be aborted, got status %q", m.status)
		}
		rules, _ := store.LoadZone("lobby")
		if len(rules) != 1 || rules[0].Recurring.Start != models.NewTimeOfDay(22, 0) {
			t.Errorf("expected original rule to remain, got %+v", rules)
		}
	})

	t.Run("replace", func(t *testing.T) {
		m, store := setupModel(t)
		m, _ = m.submit("lobby", wide)
		m = m.resolvePending(true)
		if m.state != stateRules || !strings.Contains(m.status, "replacing 1 rule") {
			t.Errorf("expected replacement status, got %q (error %q)", m.status, m.formError)
		}
		rules, _ := store.LoadZone("lobby")
		if len(rules) != 1 || !rules[0].Equal(wide) {
			t.Errorf("expected only the wider rule to remain, got %+v", rules)
		}
	})

	t.Run("stale", func(t *testing.T) {
		m, store := setupModel(t)
		m, _ = m.submit("lobby", wide)
		if err := store.SaveZone("lobby", nil); err != nil {
			t.Fatalf("SaveZone failed: %v", err)
		}
		m = m.resolvePending(true)
		if !strings.Contains(m.formError, "changed before confirmation") {
			t.Errorf("expected stale decision error, got %q", m.formError)
		}
	})
}

func TestStartForm(t *testing.T) {
	m, _ := setupModel(t)
	m = send(t, m, zonelist.OpenZoneMsg{Zone: "lobby"})
	m = send(t, m, rulelist.AddRuleMsg{})
	if m.state != stateForm || m.ruleForm == nil || m.ruleForm.Zone != "lobby" {
		t.Fatalf("expected rule form prefilled with the zone, got state %v", m.state)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateRules {
		t.Errorf("expected esc to leave the form, got %v", m.state)
	}
}

func TestRuleFormModel_Candidate(t *testing.T) {
	fm := ruleFormModel{Zone: "lobby", Type: models.RuleTypeOneTime, OnceStart: "2026-10-20T22:00", OnceEnd: "2026-10-21T06:00"}
	c, err := fm.Candidate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Type != models.RuleTypeOneTime || c.OneTime.End.Sub(c.OneTime.Start) != 8*time.Hour {
		t.Errorf("unexpected candidate %+v", c)
	}

	fm = ruleFormModel{Zone: "lobby", Type: models.RuleTypeRecurring, Days: "mon", Start: "25:00", End: "07:00", Mode: "daily"}
	if _, err := fm.Candidate(); err == nil {
		t.Error("expected an invalid start time to fail")
	}
}

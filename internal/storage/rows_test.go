package storage

import (
	"testing"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

func TestRow_RoundTrip(t *testing.T) {
	rule := models.AlarmRule{
		ID:      42,
		Enabled: true,
		Candidate: models.NewRecurring(
			[]models.Weekday{models.Friday, models.Monday},
			models.NewTimeOfDay(22, 0), models.NewTimeOfDay(6, 0), models.AlarmModeDaily),
	}

	row, err := NewRow("lobby", rule)
	if err != nil {
		t.Fatalf("failed to build row: %v", err)
	}
	if row.Days.String != "Mon,Fri" {
		t.Errorf("expected days %q, got %q", "Mon,Fri", row.Days.String)
	}
	if row.StartDateTime.Valid {
		t.Error("expected no datetime columns for a recurring rule")
	}
	if len(row.Values()) != len(row.ScanTargets()) {
		t.Error("values and scan targets disagree on column count")
	}

	got, err := row.Rule()
	if err != nil {
		t.Fatalf("failed to decode row: %v", err)
	}
	if got.ID != rule.ID || !got.Equal(rule.Candidate) {
		t.Errorf("expected %s, got %s", rule.Summary(), got.Summary())
	}
}

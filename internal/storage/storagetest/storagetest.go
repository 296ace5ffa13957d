// Package storagetest holds behaviour checks shared by every storage.Provider.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage"
)

// SampleRules returns one recurring and one one-time rule.
func SampleRules() []models.AlarmRule {
	start := time.Date(2030, 10, 20, 22, 0, 0, 0, time.Local)
	return []models.AlarmRule{
		{
			ID:      1760000000001,
			Enabled: true,
			Candidate: models.NewRecurring(
				[]models.Weekday{models.Tuesday, models.Monday},
				models.NewTimeOfDay(22, 0), models.NewTimeOfDay(7, 0), models.AlarmModeDaily),
		},
		{
			ID:        1760000000002,
			Enabled:   false,
			Candidate: models.NewOneTime(start, start.Add(9*time.Hour)),
		},
		{
			ID:      1760000000003,
			Enabled: true,
			Candidate: models.NewRecurring(
				[]models.Weekday{models.Saturday, models.Sunday},
				models.NewTimeOfDay(9, 30), models.NewTimeOfDay(17, 0), models.AlarmModeContinuous),
		},
	}
}

// SameRules compares two rule sets field by field, ignoring order.
func SameRules(t *testing.T, want, got []models.AlarmRule) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("expected %d rules, got %d", len(want), len(got))
	}
	byID := make(map[int64]models.AlarmRule, len(got))
	for _, r := range got {
		byID[r.ID] = r
	}
	for _, w := range want {
		g, ok := byID[w.ID]
		if !ok {
			t.Errorf("rule %d missing", w.ID)
			continue
		}
		if g.Enabled != w.Enabled || !g.Candidate.Equal(w.Candidate) {
			t.Errorf("rule %d: expected %s (enabled=%v), got %s (enabled=%v)", w.ID, w.Summary(), w.Enabled, g.Summary(), g.Enabled)
		}
	}
}

// Run exercises an initialized, loaded provider. zone should be unused.
func Run(t *testing.T, store storage.Provider, zone string) {
	t.Run("EmptyZone", func(t *testing.T) {
		rules, err := store.LoadZone(zone)
		if err != nil {
			t.Fatalf("failed to load empty zone: %v", err)
		}
		if len(rules) != 0 {
			t.Errorf("expected no rules, got %d", len(rules))
		}
	})

	t.Run("SaveLoadRoundTrip", func(t *testing.T) {
		want := SampleRules()
		if err := store.SaveZone(zone, want); err != nil {
			t.Fatalf("failed to save zone: %v", err)
		}
		got, err := store.LoadZone(zone)
		if err != nil {
			t.Fatalf("failed to load zone: %v", err)
		}
		SameRules(t, want, got)

		// Saving what was loaded must reproduce it.
		if err := store.SaveZone(zone, got); err != nil {
			t.Fatalf("failed to re-save zone: %v", err)
		}
		again, err := store.LoadZone(zone)
		if err != nil {
			t.Fatalf("failed to reload zone: %v", err)
		}
		SameRules(t, want, again)
	})

	t.Run("ListZones", func(t *testing.T) {
		zones, err := store.ListZones()
		if err != nil {
			t.Fatalf("failed to list zones: %v", err)
		}
		found := false
		for _, z := range zones {
			if z == zone {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %q in %v", zone, zones)
		}
	})

	t.Run("RemoveRule", func(t *testing.T) {
		sample := SampleRules()
		if err := store.RemoveRule(zone, sample[1].ID); err != nil {
			t.Fatalf("failed to remove rule: %v", err)
		}
		got, err := store.LoadZone(zone)
		if err != nil {
			t.Fatalf("failed to load zone: %v", err)
		}
		SameRules(t, []models.AlarmRule{sample[0], sample[2]}, got)

		err = store.RemoveRule(zone, sample[1].ID)
		if !errors.Is(err, storage.ErrRuleNotFound) {
			t.Errorf("expected ErrRuleNotFound, got %v", err)
		}
	})

	t.Run("WholeListReplace", func(t *testing.T) {
		sample := SampleRules()
		if err := store.SaveZone(zone, sample[:1]); err != nil {
			t.Fatalf("failed to save zone: %v", err)
		}
		got, err := store.LoadZone(zone)
		if err != nil {
			t.Fatalf("failed to load zone: %v", err)
		}
		SameRules(t, sample[:1], got)
	})

	t.Run("EmptySaveDropsZone", func(t *testing.T) {
		if err := store.SaveZone(zone, nil); err != nil {
			t.Fatalf("failed to clear zone: %v", err)
		}
		zones, err := store.ListZones()
		if err != nil {
			t.Fatalf("failed to list zones: %v", err)
		}
		for _, z := range zones {
			if z == zone {
				t.Errorf("expected %q to be gone after saving no rules", zone)
			}
		}
	})

	t.Run("ZoneRequired", func(t *testing.T) {
		if err := store.SaveZone("", SampleRules()); !errors.Is(err, storage.ErrZoneRequired) {
			t.Errorf("expected ErrZoneRequired, got %v", err)
		}
	})
}

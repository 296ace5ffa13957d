package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

// JSONStore keeps every zone in one JSON document mapping zone id to its
// rule records.
type JSONStore struct {
	path  string
	zones models.ZoneSchedules
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// An existing document is kept.
	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.zones = make(models.ZoneSchedules)
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	zones := make(models.ZoneSchedules)
	if err := json.Unmarshal(data, &zones); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	s.zones = zones
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a temporary file and renames it over the document so a
// failed write never leaves a truncated store behind.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.zones, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) LoadZone(zoneID string) ([]models.AlarmRule, error) {
	if s.zones == nil {
		return nil, ErrNotLoaded
	}
	return models.CloneRules(s.zones[zoneID]), nil
}

func (s *JSONStore) SaveZone(zoneID string, rules []models.AlarmRule) error {
	if s.zones == nil {
		return ErrNotLoaded
	}
	if zoneID == "" {
		return ErrZoneRequired
	}

	previous, existed := s.zones[zoneID]
	if len(rules) == 0 {
		delete(s.zones, zoneID)
	} else {
		s.zones[zoneID] = models.CloneRules(rules)
	}

	if err := s.save(); err != nil {
		// Keep memory consistent with what is on disk.
		if existed {
			s.zones[zoneID] = previous
		} else {
			delete(s.zones, zoneID)
		}
		return err
	}
	return nil
}

func (s *JSONStore) RemoveRule(zoneID string, ruleID int64) error {
	rules, err := s.LoadZone(zoneID)
	if err != nil {
		return err
	}

	kept := rules[:0]
	found := false
	for _, r := range rules {
		if r.ID == ruleID {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return fmt.Errorf("%w: %d in zone %s", ErrRuleNotFound, ruleID, zoneID)
	}
	return s.SaveZone(zoneID, kept)
}

func (s *JSONStore) ListZones() ([]string, error) {
	if s.zones == nil {
		return nil, ErrNotLoaded
	}
	zones := make([]string, 0, len(s.zones))
	for id := range s.zones {
		zones = append(zones, id)
	}
	sort.Strings(zones)
	return zones, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

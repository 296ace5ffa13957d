package sqlite

import (
	"fmt"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage"
)

func (s *Store) LoadZone(zoneID string) ([]models.AlarmRule, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	rows, err := s.db.Query("SELECT "+storage.RuleColumns+" FROM alarm_rules WHERE zone_id = ? ORDER BY id", zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to query zone %s: %w", zoneID, err)
	}
	return storage.ScanRules(rows)
}

// SaveZone replaces the zone's rules inside one transaction.
func (s *Store) SaveZone(zoneID string, rules []models.AlarmRule) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	if zoneID == "" {
		return storage.ErrZoneRequired
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM alarm_rules WHERE zone_id = ?", zoneID); err != nil {
		return fmt.Errorf("failed to clear zone %s: %w", zoneID, err)
	}

	stmt, err := tx.Prepare("INSERT INTO alarm_rules (" + storage.RuleColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rule := range rules {
		row, err := storage.NewRow(zoneID, rule)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(row.Values()...); err != nil {
			return fmt.Errorf("failed to insert rule %d: %w", rule.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit zone %s: %w", zoneID, err)
	}
	return nil
}

func (s *Store) RemoveRule(zoneID string, ruleID int64) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	res, err := s.db.Exec("DELETE FROM alarm_rules WHERE zone_id = ? AND id = ?", zoneID, ruleID)
	if err != nil {
		return fmt.Errorf("failed to delete rule %d: %w", ruleID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d in zone %s", storage.ErrRuleNotFound, ruleID, zoneID)
	}
	return nil
}

func (s *Store) ListZones() ([]string, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	rows, err := s.db.Query("SELECT DISTINCT zone_id FROM alarm_rules ORDER BY zone_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	defer rows.Close()

	var zones []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		zones = append(zones, id)
	}
	return zones, rows.Err()
}

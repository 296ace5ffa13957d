package postgres

import (
	"fmt"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage"
)

const insertRule = "INSERT INTO alarm_rules (" + storage.RuleColumns + ") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)"

func (s *Store) LoadZone(zoneID string) ([]models.AlarmRule, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	rows, err := s.db.Query("SELECT "+storage.RuleColumns+" FROM alarm_rules WHERE zone_id = $1 ORDER BY id", zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to query zone %s: %w", zoneID, err)
	}
	return storage.ScanRules(rows)
}

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

	if _, err := tx.Exec("DELETE FROM alarm_rules WHERE zone_id = $1", zoneID); err != nil {
		return fmt.Errorf("failed to clear zone %s: %w", zoneID, err)
	}
	for _, rule := range rules {
		row, err := storage.NewRow(zoneID, rule)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(insertRule, row.Values()...); err != nil {
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

	res, err := s.db.Exec("DELETE FROM alarm_rules WHERE zone_id = $1 AND id = $2", zoneID, ruleID)
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

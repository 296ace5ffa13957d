package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

// RuleColumns is the column order used by Row.Values and Row.ScanTargets.
const RuleColumns = "zone_id, id, type, days, start_time, end_time, alarm_mode, start_datetime, end_datetime, enabled"

// Row is the column form of a rule shared by the SQL backends.
type Row struct {
	ZoneID        string
	ID            int64
	Type          string
	Days          sql.NullString
	StartTime     sql.NullString
	EndTime       sql.NullString
	AlarmMode     sql.NullString
	StartDateTime sql.NullString
	EndDateTime   sql.NullString
	Enabled       bool
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func NewRow(zoneID string, rule models.AlarmRule) (Row, error) {
	rec, err := models.NewRuleRecord(rule)
	if err != nil {
		return Row{}, err
	}

	days := make([]string, len(rec.Days))
	for i, d := range rec.Days {
		days[i] = d.String()
	}

	return Row{
		ZoneID:        zoneID,
		ID:            rec.ID,
		Type:          string(rec.Type),
		Days:          nullString(strings.Join(days, ",")),
		StartTime:     nullString(rec.Start),
		EndTime:       nullString(rec.End),
		AlarmMode:     nullString(string(rec.AlarmMode)),
		StartDateTime: nullString(rec.StartDateTime),
		EndDateTime:   nullString(rec.EndDateTime),
		Enabled:       rec.Enabled,
	}, nil
}

func (r Row) Rule() (models.AlarmRule, error) {
	days, err := models.ParseWeekdays(r.Days.String)
	if err != nil {
		return models.AlarmRule{}, fmt.Errorf("rule %d: days: %w", r.ID, err)
	}

	rec := models.RuleRecord{
		ID:            r.ID,
		Type:          models.RuleType(r.Type),
		Days:          days,
		Start:         r.StartTime.String,
		End:           r.EndTime.String,
		AlarmMode:     models.AlarmMode(r.AlarmMode.String),
		StartDateTime: r.StartDateTime.String,
		EndDateTime:   r.EndDateTime.String,
		Enabled:       r.Enabled,
	}
	return rec.Rule()
}

func (r Row) Values() []any {
	return []any{r.ZoneID, r.ID, r.Type, r.Days, r.StartTime, r.EndTime, r.AlarmMode, r.StartDateTime, r.EndDateTime, r.Enabled}
}

func (r *Row) ScanTargets() []any {
	return []any{&r.ZoneID, &r.ID, &r.Type, &r.Days, &r.StartTime, &r.EndTime, &r.AlarmMode, &r.StartDateTime, &r.EndDateTime, &r.Enabled}
}

// ScanRules reads every row of a query selecting RuleColumns.
func ScanRules(rows *sql.Rows) ([]models.AlarmRule, error) {
	defer rows.Close()

	var rules []models.AlarmRule
	for rows.Next() {
		var row Row
		if err := rows.Scan(row.ScanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rule, err := row.Rule()
		if err != nil {
			return nil, fmt.Errorf("failed to decode rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	return rules, nil
}

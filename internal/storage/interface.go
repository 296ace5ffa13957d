package storage

import (
	"errors"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

var (
	ErrNotInitialized = errors.New("storage not initialized, run 'zonealarm init' first")
	ErrNotLoaded      = errors.New("storage not loaded")
	ErrRuleNotFound   = errors.New("rule not found")
	ErrZoneRequired   = errors.New("zone id is required")
)

// Provider persists zone schedules. SaveZone replaces a zone's whole rule
// list in one write; a zone saved with no rules disappears from ListZones.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Zones
	LoadZone(zoneID string) ([]models.AlarmRule, error)
	SaveZone(zoneID string, rules []models.AlarmRule) error
	RemoveRule(zoneID string, ruleID int64) error
	ListZones() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by stores with a versioned SQL schema.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
}

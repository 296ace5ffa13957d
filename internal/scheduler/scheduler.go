package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/logger"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/notify"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/validation"
)

var (
	ErrNotAwaitingConfirm = errors.New("decision is not awaiting confirmation")
	ErrStaleDecision      = errors.New("zone changed since the decision was made")
)

// State tracks a submission through the commit protocol.
type State string

const (
	StateValidating      State = "validating"
	StateClassifying     State = "classifying"
	StateRejected        State = "rejected"
	StateCommitted       State = "committed"
	StateAwaitingConfirm State = "awaiting_confirm"
)

// Decision is the result of Submit. When State is StateAwaitingConfirm the
// caller must follow up with Confirm or Abort.
type Decision struct {
	ID             uuid.UUID
	Zone           string
	Candidate      models.Candidate
	Classification validation.Classification
	State          State
	// Rule is the committed rule once State is StateCommitted.
	Rule *models.AlarmRule
}

type Scheduler struct {
	store     storage.Provider
	publisher notify.Publisher
	now       func() time.Time
}

type Option func(*Scheduler)

// WithPublisher sends change events to p after every commit.
func WithPublisher(p notify.Publisher) Option {
	return func(s *Scheduler) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

func New(store storage.Provider, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:     store,
		publisher: notify.Nop{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Store() storage.Provider {
	return s.store
}

// Now is the scheduler's clock.
func (s *Scheduler) Now() time.Time {
	return s.now()
}

// Check classifies candidate against the zone without changing anything.
func (s *Scheduler) Check(zoneID string, candidate models.Candidate) (validation.Classification, error) {
	if err := validation.ValidateZone(zoneID); err != nil {
		return validation.Invalid(err), nil
	}
	existing, err := s.store.LoadZone(zoneID)
	if err != nil {
		return validation.Classification{}, fmt.Errorf("failed to load zone %s: %w", zoneID, err)
	}
	return validation.Classify(existing, candidate, s.now()), nil
}

// Submit classifies candidate and commits it straight away when it is
// accepted. Superseding candidates are left awaiting confirmation; every
// other outcome is rejected without touching the store.
func (s *Scheduler) Submit(zoneID string, candidate models.Candidate) (*Decision, error) {
	d := &Decision{
		ID:        uuid.New(),
		Zone:      zoneID,
		Candidate: candidate.Clone(),
		State:     StateValidating,
	}

	if err := validation.ValidateZone(zoneID); err != nil {
		d.Classification = validation.Invalid(err)
		return s.reject(d), nil
	}

	existing, err := s.store.LoadZone(zoneID)
	if err != nil {
		logger.Error("Failed to load zone", "zone", zoneID, "error", err)
		return nil, fmt.Errorf("failed to load zone %s: %w", zoneID, err)
	}

	d.State = StateClassifying
	d.Classification = validation.Classify(existing, d.Candidate, s.now())
	logger.Info("Classified rule", "zone", zoneID, "decision", d.ID, "outcome", d.Classification.Outcome, "rules", d.Classification.RuleIDs())

	switch d.Classification.Outcome {
	case validation.OutcomeAccepted:
		rule := s.newRule(existing, d.Candidate)
		if err := s.save(zoneID, append(models.CloneRules(existing), rule)); err != nil {
			return nil, err
		}
		d.Rule = &rule
		d.State = StateCommitted
		s.publish(zoneID, notify.ActionAdded, []int64{rule.ID})
		return d, nil
	case validation.OutcomeSuperseded:
		d.State = StateAwaitingConfirm
		return d, nil
	default:
		return s.reject(d), nil
	}
}

// Confirm commits a superseding decision: the superseded rules are removed
// and the candidate added in a single save. The candidate is classified
// again first; unless it still supersedes exactly the same rules, nothing is
// written and ErrStaleDecision is returned.
func (s *Scheduler) Confirm(d *Decision) (models.AlarmRule, error) {
	if d == nil || d.State != StateAwaitingConfirm {
		return models.AlarmRule{}, ErrNotAwaitingConfirm
	}

	existing, err := s.store.LoadZone(d.Zone)
	if err != nil {
		return models.AlarmRule{}, fmt.Errorf("failed to load zone %s: %w", d.Zone, err)
	}

	remove := make(map[int64]bool, len(d.Classification.Rules))
	for _, r := range d.Classification.Rules {
		remove[r.ID] = true
	}

	after := make([]models.AlarmRule, 0, len(existing)+1)
	found := 0
	for _, r := range existing {
		if remove[r.ID] {
			found++
			continue
		}
		after = append(after, r.Clone())
	}
	if found != len(remove) {
		logger.Warn("Superseded rules vanished before confirmation", "zone", d.Zone, "decision", d.ID)
		return models.AlarmRule{}, ErrStaleDecision
	}

	// Rules added since Submit may now conflict with the candidate.
	again := validation.Classify(existing, d.Candidate, s.now())
	if again.Outcome != validation.OutcomeSuperseded || !sameIDs(again.RuleIDs(), d.Classification.RuleIDs()) {
		logger.Warn("Zone changed before confirmation", "zone", d.Zone, "decision", d.ID, "outcome", again.Outcome, "rules", again.RuleIDs())
		return models.AlarmRule{}, ErrStaleDecision
	}

	rule := s.newRule(existing, d.Candidate)
	after = append(after, rule)
	if err := s.save(d.Zone, after); err != nil {
		return models.AlarmRule{}, err
	}

	d.Rule = &rule
	d.State = StateCommitted
	s.publish(d.Zone, notify.ActionSuperseded, append([]int64{rule.ID}, d.Classification.RuleIDs()...))
	return rule, nil
}

// Abort rejects a decision that is awaiting confirmation.
func (s *Scheduler) Abort(d *Decision) error {
	if d == nil || d.State != StateAwaitingConfirm {
		return ErrNotAwaitingConfirm
	}
	s.reject(d)
	return nil
}

// Remove deletes one rule from a zone.
func (s *Scheduler) Remove(zoneID string, ruleID int64) error {
	if err := validation.ValidateZone(zoneID); err != nil {
		return err
	}
	if err := s.store.RemoveRule(zoneID, ruleID); err != nil {
		return err
	}
	logger.Info("Removed rule", "zone", zoneID, "rule", ruleID)
	s.publish(zoneID, notify.ActionRemoved, []int64{ruleID})
	return nil
}

// SetEnabled enables or disables one rule. Enabling re-classifies the rule
// against the rest of the zone and is refused unless it would be accepted;
// the returned classification explains a refusal.
func (s *Scheduler) SetEnabled(zoneID string, ruleID int64, enabled bool) (validation.Classification, error) {
	rules, err := s.store.LoadZone(zoneID)
	if err != nil {
		return validation.Classification{}, fmt.Errorf("failed to load zone %s: %w", zoneID, err)
	}

	idx := -1
	var others []models.AlarmRule
	for i, r := range rules {
		if r.ID == ruleID {
			idx = i
			continue
		}
		others = append(others, r)
	}
	if idx < 0 {
		return validation.Classification{}, storage.ErrRuleNotFound
	}
	if rules[idx].Enabled == enabled {
		return validation.Classification{Outcome: validation.OutcomeAccepted}, nil
	}

	if enabled {
		c := validation.Classify(others, rules[idx].Candidate, s.now())
		if c.Outcome != validation.OutcomeAccepted {
			logger.Info("Refused to enable rule", "zone", zoneID, "rule", ruleID, "outcome", c.Outcome)
			return c, nil
		}
	}

	rules[idx].Enabled = enabled
	if err := s.save(zoneID, rules); err != nil {
		return validation.Classification{}, err
	}
	action := notify.ActionDisabled
	if enabled {
		action = notify.ActionEnabled
	}
	s.publish(zoneID, action, []int64{ruleID})
	return validation.Classification{Outcome: validation.OutcomeAccepted}, nil
}

// Rules returns a zone's rules in display order.
func (s *Scheduler) Rules(zoneID string) ([]models.AlarmRule, error) {
	rules, err := s.store.LoadZone(zoneID)
	if err != nil {
		return nil, err
	}
	models.SortRules(rules)
	return rules, nil
}

func (s *Scheduler) Zones() ([]string, error) {
	return s.store.ListZones()
}

// Audit re-checks every rule of a zone against the others.
func (s *Scheduler) Audit(zoneID string) (validation.ValidationResult, error) {
	rules, err := s.store.LoadZone(zoneID)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	return validation.Audit(zoneID, rules), nil
}

func (s *Scheduler) reject(d *Decision) *Decision {
	d.State = StateRejected
	logger.Debug("Rejected rule", "zone", d.Zone, "decision", d.ID, "outcome", d.Classification.Outcome)
	return d
}

func (s *Scheduler) save(zoneID string, rules []models.AlarmRule) error {
	if err := s.store.SaveZone(zoneID, rules); err != nil {
		logger.Error("Failed to save zone", "zone", zoneID, "error", err)
		return fmt.Errorf("failed to save zone %s: %w", zoneID, err)
	}
	return nil
}

// publish never fails a commit; the change is already stored.
func (s *Scheduler) publish(zoneID string, action notify.Action, ids []int64) {
	e := notify.Event{Zone: zoneID, Action: action, RuleIDs: ids, At: s.now()}
	if err := s.publisher.Publish(e); err != nil {
		logger.Warn("Failed to publish schedule change", "zone", zoneID, "action", action, "error", err)
	}
}

func (s *Scheduler) newRule(existing []models.AlarmRule, c models.Candidate) models.AlarmRule {
	return models.AlarmRule{
		ID:        NextID(existing, s.now()),
		Enabled:   true,
		Candidate: c.Clone(),
	}
}

// NextID derives a rule id from the clock in milliseconds, bumped past the
// largest id already in the zone.
func NextID(existing []models.AlarmRule, now time.Time) int64 {
	id := now.UnixMilli()
	for _, r := range existing {
		if r.ID >= id {
			id = r.ID + 1
		}
	}
	return id
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int64]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}

package engine

import (
	"errors"
	"log/slog"
	"sort"
	"strconv"

	"github.com/rulekit/rulekit/internal/config"
	"github.com/rulekit/rulekit/internal/step"
)

// Binder translates declarative automation configuration into executable
// Rules using the step registry. Individual bad entries never abort the
// whole batch: a rule without a resolvable trigger is skipped, and an
// unresolvable condition or action name is dropped from its rule.
type Binder struct {
	registry *step.Registry
	logger   *slog.Logger
}

// NewBinder creates a binder. The registry is consulted fresh on every Bind
// so implementations registered after construction are still picked up.
func NewBinder(registry *step.Registry, logger *slog.Logger) (*Binder, error) {
	if registry == nil {
		return nil, errors.New("registry cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Binder{registry: registry, logger: logger}, nil
}

// Bind builds one Rule per valid configured automation, in ascending rule-id
// order. Ids that are not positive integers are ignored, and processing stops
// once ids exceed the declared automation count.
func (b *Binder) Bind(cfg *config.Automations) []*Rule {
	if cfg == nil || cfg.Count <= 0 {
		return nil
	}

	ids := b.sortedRuleIDs(cfg)

	var rules []*Rule
	for _, id := range ids {
		if id.ordinal > cfg.Count {
			break
		}
		if rule := b.bindRule(id.raw, cfg.Rules[id.raw]); rule != nil {
			rules = append(rules, rule)
		}
	}
	return rules
}

type ruleID struct {
	raw     string
	ordinal int
}

func (b *Binder) sortedRuleIDs(cfg *config.Automations) []ruleID {
	ids := make([]ruleID, 0, len(cfg.Rules))
	for raw := range cfg.Rules {
		ordinal, err := strconv.Atoi(raw)
		if err != nil || ordinal < 1 {
			b.logger.Error("ignoring automation with invalid id", "id", raw)
			continue
		}
		ids = append(ids, ruleID{raw: raw, ordinal: ordinal})
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].ordinal < ids[j].ordinal })
	return ids
}

// bindRule materializes one rule, or returns nil when its trigger cannot be
// resolved and configured.
func (b *Binder) bindRule(id string, rc config.Rule) *Rule {
	if rc.TriggerEvent == "" {
		b.logger.Error("skipping automation without a trigger", "id", id)
		return nil
	}

	trigger := b.buildStep(id, step.KindTrigger, rc.TriggerEvent, rc)
	if trigger == nil {
		return nil
	}

	rule := &Rule{
		ID:         id,
		Trigger:    trigger.(step.Trigger),
		Conditions: []step.Condition{},
		Actions:    []step.Action{},
	}

	for _, name := range rc.Conditions {
		if s := b.buildStep(id, step.KindCondition, name, rc); s != nil {
			rule.Conditions = append(rule.Conditions, s.(step.Condition))
		}
	}
	for _, name := range rc.Actions {
		if s := b.buildStep(id, step.KindAction, name, rc); s != nil {
			rule.Actions = append(rule.Actions, s.(step.Action))
		}
	}

	return rule
}

// buildStep instantiates and configures one step, or returns nil when the
// name is unknown or configuration fails. The failure is logged either way;
// the trigger caller treats nil as fatal for its rule, condition and action
// callers just drop the entry.
func (b *Binder) buildStep(ruleID string, kind step.Kind, name string, rc config.Rule) step.Step {
	descriptor, ok := b.registry.Lookup(kind, name)
	if !ok {
		b.logger.Error("automation step not found (ignored)",
			"id", ruleID, "kind", string(kind), "step", name)
		return nil
	}

	instance := descriptor.New()
	if err := instance.Configure(rc.StepConfig(name)); err != nil {
		b.logger.Error("automation step configuration failed (ignored)",
			"id", ruleID, "kind", string(kind), "step", name, "error", err)
		return nil
	}
	return instance
}

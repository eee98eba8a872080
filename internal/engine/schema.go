package engine

import (
	"fmt"

	"github.com/rulekit/rulekit/internal/config"
	rkerrors "github.com/rulekit/rulekit/internal/errors"
	"github.com/rulekit/rulekit/internal/step"
)

// RuleSchema is the self-describing configuration form for one declared rule:
// the selectable trigger, condition and action names, plus one nested schema
// per currently selected step.
type RuleSchema struct {
	// ID is the ordinal rule id ("1", "2", ...).
	ID     string       `json:"id" yaml:"id"`
	Fields []step.Field `json:"fields" yaml:"fields"`
	// Steps maps each selected step name to that step's own field schema.
	Steps map[string]step.Schema `json:"steps" yaml:"steps"`
}

// Schemas loads the stored configuration and emits one RuleSchema per declared
// rule, covering ids 1..automations_count whether or not the rule has an entry
// yet. A selected step name with no registered implementation is logged and
// omitted from the nested schemas rather than failing the whole emission.
func (a *Automation) Schemas() ([]RuleSchema, error) {
	cfg, err := a.store.Load()
	if err != nil {
		return nil, rkerrors.Wrap(err, "CONFIG_LOAD", "could not load automation config")
	}

	schemas := make([]RuleSchema, 0, cfg.Count)
	for index := 1; index <= cfg.Count; index++ {
		id := fmt.Sprintf("%d", index)
		schemas = append(schemas, a.ruleSchema(id, cfg.Rules[id]))
	}
	return schemas, nil
}

func (a *Automation) ruleSchema(id string, rc config.Rule) RuleSchema {
	schema := RuleSchema{
		ID: id,
		Fields: []step.Field{
			{
				Name:    "trigger_event",
				Title:   "The trigger for this automation",
				Type:    step.FieldTypeOptions,
				Default: rc.TriggerEvent,
				Options: a.registry.Names(step.KindTrigger),
			},
			{
				Name:    "conditions",
				Title:   "Conditions for this automation",
				Type:    step.FieldTypeMultipleOptions,
				Default: rc.Conditions,
				Options: a.registry.Names(step.KindCondition),
			},
			{
				Name:    "actions",
				Title:   "Actions for this automation",
				Type:    step.FieldTypeMultipleOptions,
				Default: rc.Actions,
				Options: a.registry.Names(step.KindAction),
			},
		},
		Steps: map[string]step.Schema{},
	}

	if rc.TriggerEvent != "" {
		a.addStepSchema(&schema, step.KindTrigger, rc.TriggerEvent)
	}
	for _, name := range rc.Conditions {
		a.addStepSchema(&schema, step.KindCondition, name)
	}
	for _, name := range rc.Actions {
		a.addStepSchema(&schema, step.KindAction, name)
	}

	return schema
}

// addStepSchema resolves a selected step name and attaches the schema of a
// fresh, unconfigured instance.
func (a *Automation) addStepSchema(schema *RuleSchema, kind step.Kind, name string) {
	descriptor, ok := a.registry.Lookup(kind, name)
	if !ok {
		a.logger.Error("impossible to find step configuration", "rule", schema.ID,
			"kind", string(kind), "step", name)
		return
	}
	schema.Steps[name] = descriptor.New().Schema()
}

// Package engine materializes automation rules from declarative configuration
// and runs one concurrent loop per rule.
package engine

import (
	"fmt"
	"strings"

	"github.com/rulekit/rulekit/internal/step"
)

// Rule is the runtime-executable form of one automation: a configured trigger,
// an ordered list of configured conditions, and an ordered list of configured
// actions. A Rule is never mutated after construction; restart always builds a
// fresh set and discards the old one.
type Rule struct {
	// ID is the ordinal rule id from configuration ("1", "2", ...).
	ID         string
	Trigger    step.Trigger
	Conditions []step.Condition
	Actions    []step.Action
}

func (r *Rule) String() string {
	conditions := make([]string, len(r.Conditions))
	for i, c := range r.Conditions {
		conditions[i] = c.Name()
	}
	actions := make([]string, len(r.Actions))
	for i, a := range r.Actions {
		actions[i] = a.Name()
	}
	return fmt.Sprintf("automation %s with %s trigger, [%s] conditions and [%s] actions",
		r.ID, r.Trigger.Name(), strings.Join(conditions, ", "), strings.Join(actions, ", "))
}

package builtin

import (
	"context"

	"github.com/rulekit/rulekit/internal/step"
)

// NoCondition is the always-satisfied condition, the default for rules that
// should run on every trigger firing.
type NoCondition struct{}

// NewNoCondition creates a NoCondition condition.
func NewNoCondition() *NoCondition {
	return &NoCondition{}
}

func (n *NoCondition) Name() string {
	return "NoCondition"
}

func (n *NoCondition) Configure(_ step.Config) error {
	return nil
}

func (n *NoCondition) Schema() step.Schema {
	return step.Schema{Fields: []step.Field{}}
}

func (n *NoCondition) Evaluate(_ context.Context) (bool, error) {
	return true, nil
}

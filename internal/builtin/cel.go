package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"

	"github.com/rulekit/rulekit/internal/step"
)

// CELExpression is a condition that evaluates a CEL expression on every
// firing. The expression has access to the evaluation time:
//
//	now     timestamp of the evaluation
//	hour    local hour of day (0-23)
//	weekday local day of week (0=Sunday .. 6=Saturday)
//
// The expression is compiled once at configuration time and must produce a
// boolean.
type CELExpression struct {
	expression string
	program    cel.Program
}

// NewCELExpression creates an unconfigured CELExpression condition.
func NewCELExpression() *CELExpression {
	return &CELExpression{}
}

func (c *CELExpression) Name() string {
	return "CELExpression"
}

func (c *CELExpression) Configure(cfg step.Config) error {
	c.expression = step.GetString(cfg, "expression", "")
	if c.expression == "" {
		return fmt.Errorf("cel expression cannot be empty")
	}

	env, err := cel.NewEnv(
		cel.Variable("now", cel.TimestampType),
		cel.Variable("hour", cel.IntType),
		cel.Variable("weekday", cel.IntType),
	)
	if err != nil {
		return fmt.Errorf("could not create CEL environment: %w", err)
	}

	ast, issues := env.Compile(c.expression)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("could not compile expression '%s': %w", c.expression, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return fmt.Errorf("expression '%s' must evaluate to a boolean, got %s",
			c.expression, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return fmt.Errorf("could not create program for expression '%s': %w", c.expression, err)
	}

	c.program = program
	return nil
}

func (c *CELExpression) Schema() step.Schema {
	return step.Schema{Fields: []step.Field{
		{
			Name:  "expression",
			Title: "CEL expression (variables: now, hour, weekday)",
			Type:  step.FieldTypeString,
		},
	}}
}

func (c *CELExpression) Evaluate(_ context.Context) (bool, error) {
	now := time.Now()
	result, _, err := c.program.Eval(map[string]any{
		"now":     now,
		"hour":    now.Hour(),
		"weekday": int(now.Weekday()),
	})
	if err != nil {
		return false, fmt.Errorf("could not evaluate expression '%s': %w", c.expression, err)
	}

	if result.Type() != types.BoolType {
		return false, fmt.Errorf("expression '%s' must return boolean, got %v", c.expression, result.Type())
	}
	return result.Value().(bool), nil
}

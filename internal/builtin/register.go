// Package builtin provides the step implementations shipped with rulekit:
// triggers (PeriodicCheck, Webhook, NATSSubject), conditions (NoCondition,
// CELExpression, TimeWindow) and actions (SendNotification, RunCommand,
// PublishNATS, CreateGitHubIssue).
package builtin

import (
	"fmt"

	"github.com/rulekit/rulekit/internal/step"
)

// Register adds every builtin step implementation to the registry.
func Register(registry *step.Registry) error {
	descriptors := []step.Descriptor{
		{
			Name:        "PeriodicCheck",
			Kind:        step.KindTrigger,
			Description: "Fires at a fixed interval",
			New:         func() step.Step { return NewPeriodicCheck() },
		},
		{
			Name:        "Webhook",
			Kind:        step.KindTrigger,
			Description: "Fires on each HTTP POST to a local webhook endpoint",
			New:         func() step.Step { return NewWebhook() },
		},
		{
			Name:        "NATSSubject",
			Kind:        step.KindTrigger,
			Description: "Fires on each message received on a NATS subject",
			New:         func() step.Step { return NewNATSSubject() },
		},
		{
			Name:        "NoCondition",
			Kind:        step.KindCondition,
			Description: "Always satisfied",
			New:         func() step.Step { return NewNoCondition() },
		},
		{
			Name:        "CELExpression",
			Kind:        step.KindCondition,
			Description: "Satisfied when a CEL expression evaluates to true",
			New:         func() step.Step { return NewCELExpression() },
		},
		{
			Name:        "TimeWindow",
			Kind:        step.KindCondition,
			Description: "Satisfied inside a daily HH:MM time window",
			New:         func() step.Step { return NewTimeWindow() },
		},
		{
			Name:        "SendNotification",
			Kind:        step.KindAction,
			Description: "Logs a notification and optionally posts it to a webhook",
			New:         func() step.Step { return NewSendNotification() },
		},
		{
			Name:        "RunCommand",
			Kind:        step.KindAction,
			Description: "Runs a shell command",
			New:         func() step.Step { return NewRunCommand() },
		},
		{
			Name:        "PublishNATS",
			Kind:        step.KindAction,
			Description: "Publishes a message to a NATS subject",
			New:         func() step.Step { return NewPublishNATS() },
		},
		{
			Name:        "CreateGitHubIssue",
			Kind:        step.KindAction,
			Description: "Opens an issue on a GitHub repository",
			New:         func() step.Step { return NewCreateGitHubIssue() },
		},
	}

	for _, d := range descriptors {
		if err := registry.Register(d); err != nil {
			return fmt.Errorf("could not register builtin step '%s': %w", d.Name, err)
		}
	}
	return nil
}

package builtin

import (
	"context"
	"time"

	"github.com/rulekit/rulekit/internal/step"
)

const defaultCheckInterval = time.Hour

// PeriodicCheck is a trigger that fires immediately and then at a fixed
// interval until cancelled.
type PeriodicCheck struct {
	interval time.Duration
}

// NewPeriodicCheck creates an unconfigured PeriodicCheck trigger.
func NewPeriodicCheck() *PeriodicCheck {
	return &PeriodicCheck{interval: defaultCheckInterval}
}

func (p *PeriodicCheck) Name() string {
	return "PeriodicCheck"
}

func (p *PeriodicCheck) Configure(cfg step.Config) error {
	interval := step.GetDuration(cfg, "interval", defaultCheckInterval)
	if interval <= 0 {
		interval = defaultCheckInterval
	}
	p.interval = interval
	return nil
}

func (p *PeriodicCheck) Schema() step.Schema {
	return step.Schema{Fields: []step.Field{
		{
			Name:    "interval",
			Title:   "Check interval (duration, e.g. 30s or 1h)",
			Type:    step.FieldTypeString,
			Default: defaultCheckInterval.String(),
		},
	}}
}

// Events fires once right away and then on every interval tick. Each call
// starts a fresh ticker, so the trigger is restartable.
func (p *PeriodicCheck) Events(ctx context.Context) (<-chan step.Firing, error) {
	events := make(chan step.Firing)

	go func() {
		defer close(events)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case events <- step.Firing{At: time.Now()}:
			case <-ctx.Done():
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

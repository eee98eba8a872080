package engine

import (
	"context"
	"log/slog"
	"sync"
)

// State is the dispatcher lifecycle state.
type State string

const (
	StateStopped  State = "stopped"
	StateStarting State = "starting"
	StateRunning  State = "running"
	StateStopping State = "stopping"
)

// runningLoop pairs a rule with its cancellable backing goroutine.
type runningLoop struct {
	rule   *Rule
	cancel context.CancelFunc
	done   chan struct{}
}

func (l *runningLoop) finished() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Dispatcher owns the set of active rules and runs one concurrent loop per
// rule. Start, Stop and State are safe for concurrent use, but the facade
// serializes lifecycle operations so at most one is in flight.
type Dispatcher struct {
	logger  *slog.Logger
	metrics *Metrics

	mu    sync.Mutex
	state State
	loops []*runningLoop
}

// NewDispatcher creates a stopped dispatcher. metrics may be nil.
func NewDispatcher(logger *slog.Logger, metrics *Metrics) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		logger:  logger,
		metrics: metrics,
		state:   StateStopped,
	}
}

// State returns the current lifecycle state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// ActiveLoops returns the number of rule loops that have not yet exited.
func (d *Dispatcher) ActiveLoops() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	active := 0
	for _, loop := range d.loops {
		if !loop.finished() {
			active++
		}
	}
	return active
}

// Start spawns one independent loop per rule and transitions to Running.
// Starting with no rules is valid: the dispatcher is Running with zero loops.
func (d *Dispatcher) Start(rules []*Rule) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = StateStarting
	d.loops = make([]*runningLoop, 0, len(rules))

	for _, rule := range rules {
		ctx, cancel := context.WithCancel(context.Background())
		loop := &runningLoop{rule: rule, cancel: cancel, done: make(chan struct{})}
		d.loops = append(d.loops, loop)
		go d.runRule(ctx, rule, loop.done)
	}

	if len(rules) == 0 {
		d.logger.Debug("no automation to start")
	}
	d.metrics.setActiveRules(len(rules))
	d.state = StateRunning
}

// Stop cancels every loop that has not already finished. It does not wait for
// the loops to observe cancellation; each loop exits at its next suspension
// point. Calling Stop on a stopped dispatcher is a no-op.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.loops) > 0 {
		d.logger.Debug("stopping automation loops", "count", len(d.loops))
		d.state = StateStopping
		for _, loop := range d.loops {
			if !loop.finished() {
				loop.cancel()
			}
		}
		d.loops = nil
	}
	d.metrics.setActiveRules(0)
	d.state = StateStopped
}

// runRule is the per-rule loop: one iteration per trigger firing, until the
// trigger sequence ends or the loop is cancelled. Firings are processed
// strictly one at a time; a firing's full condition+action cycle completes
// before the next firing is read.
func (d *Dispatcher) runRule(ctx context.Context, rule *Rule, done chan struct{}) {
	defer close(done)

	d.logger.Info("starting automation", "rule", rule.String())

	events, err := rule.Trigger.Events(ctx)
	if err != nil {
		d.logger.Error("automation trigger failed to start",
			"id", rule.ID, "trigger", rule.Trigger.Name(), "error", err)
		return
	}

	for range events {
		d.logger.Debug("trigger event fired", "id", rule.ID, "trigger", rule.Trigger.Name())
		d.metrics.recordFiring(rule.ID)

		if !d.checkConditions(ctx, rule) {
			d.metrics.recordSkip(rule.ID)
			continue
		}
		d.runActions(ctx, rule)
	}

	d.logger.Debug("automation loop finished", "id", rule.ID, "trigger", rule.Trigger.Name())
}

// checkConditions evaluates the rule's conditions in declared order and
// short-circuits on the first failure. An evaluation error is isolated the
// same way an action failure is: logged and treated as "not satisfied" for
// this firing, so one transient error cannot kill the loop.
func (d *Dispatcher) checkConditions(ctx context.Context, rule *Rule) bool {
	for _, condition := range rule.Conditions {
		ok, err := condition.Evaluate(ctx)
		if err != nil {
			d.logger.Error("condition evaluation failed, skipping event",
				"id", rule.ID, "condition", condition.Name(),
				"trigger", rule.Trigger.Name(), "error", err)
			d.metrics.recordConditionFailure(rule.ID, condition.Name())
			return false
		}
		if !ok {
			d.logger.Debug("condition not satisfied, skipping event",
				"id", rule.ID, "condition", condition.Name(), "trigger", rule.Trigger.Name())
			return false
		}
	}
	return true
}

// runActions runs every action in declared order. A failing action is logged
// and does not prevent subsequent actions from running, nor does it abort the
// rule's loop. Actions are never retried.
func (d *Dispatcher) runActions(ctx context.Context, rule *Rule) {
	for _, action := range rule.Actions {
		d.logger.Debug("running action",
			"id", rule.ID, "action", action.Name(), "trigger", rule.Trigger.Name())
		if err := action.Run(ctx); err != nil {
			d.logger.Error("action failed",
				"id", rule.ID, "action", action.Name(),
				"trigger", rule.Trigger.Name(), "error", err)
			d.metrics.recordActionFailure(rule.ID, action.Name())
		}
	}
}

package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rulekit/rulekit/internal/config"
	rkerrors "github.com/rulekit/rulekit/internal/errors"
	"github.com/rulekit/rulekit/internal/step"
)

// Options configures the Automation facade.
type Options struct {
	// Enabled is the global automation flag. When false, Initialize is a
	// log-only no-op and Restart fails with the disabled error kind.
	Enabled  bool
	Store    *config.Store
	Registry *step.Registry
	Logger   *slog.Logger
	// Metrics may be nil to disable metric recording.
	Metrics *Metrics
	// Defaults, when non-nil, is the rule configuration persisted for
	// declared rule ids that have no entry yet (derived user-input defaults).
	Defaults *config.Rule
}

// Automation composes the config store, binder and dispatcher into the
// automation lifecycle: reload configuration, rebuild rules, restart loops.
type Automation struct {
	enabled  bool
	store    *config.Store
	registry *step.Registry
	logger   *slog.Logger
	metrics  *Metrics
	defaults *config.Rule

	binder     *Binder
	dispatcher *Dispatcher

	// lifecycleMu serializes Initialize/Restart/Stop so at most one lifecycle
	// operation is in flight.
	lifecycleMu sync.Mutex
	rules       []*Rule
}

// NewAutomation creates the facade. It does not start anything; call
// Initialize or Restart.
func NewAutomation(opts Options) (*Automation, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("config store cannot be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	binder, err := NewBinder(opts.Registry, logger)
	if err != nil {
		return nil, fmt.Errorf("could not create binder: %w", err)
	}

	return &Automation{
		enabled:    opts.Enabled,
		store:      opts.Store,
		registry:   opts.Registry,
		logger:     logger,
		metrics:    opts.Metrics,
		defaults:   opts.Defaults,
		binder:     binder,
		dispatcher: NewDispatcher(logger, opts.Metrics),
	}, nil
}

// Initialize starts the automation loops, or logs and does nothing when
// automations are globally disabled.
func (a *Automation) Initialize() error {
	if !a.enabled {
		a.logger.Info("automations are disabled")
		return nil
	}
	return a.Restart()
}

// Restart stops all running loops, reloads configuration from the store,
// persists derived user-input defaults, rebuilds the rule set and starts a
// fresh loop per rule. Rules from the previous generation are never reused.
//
// When automations are globally disabled, Restart fails before touching any
// running loop; the error satisfies errors.Is with ErrAutomationsDisabled.
func (a *Automation) Restart() error {
	a.lifecycleMu.Lock()
	defer a.lifecycleMu.Unlock()

	if !a.enabled {
		return rkerrors.Wrap(rkerrors.ErrAutomationsDisabled, "AUTOMATIONS_DISABLED", "cannot restart")
	}

	a.dispatcher.Stop()

	cfg, err := a.store.Load()
	if err != nil {
		return rkerrors.Wrap(err, "CONFIG_LOAD", "could not reload automation config")
	}

	if err := a.persistDefaults(cfg); err != nil {
		// Non-fatal: defaults are a convenience for the configuration UI.
		a.logger.Warn("could not persist automation defaults", "error", err)
	}

	a.rules = a.binder.Bind(cfg)
	a.dispatcher.Start(a.rules)
	a.metrics.recordRestart()

	a.logger.Info("automations restarted", "configured", cfg.Count, "bound", len(a.rules))
	return nil
}

// Stop cancels all running loops.
func (a *Automation) Stop() {
	a.lifecycleMu.Lock()
	defer a.lifecycleMu.Unlock()
	a.dispatcher.Stop()
}

// ResetConfig clears the persisted rule count and rule table. Running loops
// are untouched; the reset takes effect on the next restart.
func (a *Automation) ResetConfig() error {
	return a.store.Reset()
}

// Rules returns the rules of the current generation.
func (a *Automation) Rules() []*Rule {
	a.lifecycleMu.Lock()
	defer a.lifecycleMu.Unlock()

	rules := make([]*Rule, len(a.rules))
	copy(rules, a.rules)
	return rules
}

// State returns the dispatcher's lifecycle state.
func (a *Automation) State() State {
	return a.dispatcher.State()
}

// ActiveLoops returns the number of rule loops that have not yet exited.
func (a *Automation) ActiveLoops() int {
	return a.dispatcher.ActiveLoops()
}

// persistDefaults fills missing rule entries with the configured defaults and
// writes the configuration back, so a configuration UI sees a complete table.
func (a *Automation) persistDefaults(cfg *config.Automations) error {
	if a.defaults == nil {
		return nil
	}

	changed := false
	for index := 1; index <= cfg.Count; index++ {
		id := fmt.Sprintf("%d", index)
		if _, exists := cfg.Rules[id]; !exists {
			cfg.Rules[id] = *a.defaults
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return a.store.Save(cfg)
}

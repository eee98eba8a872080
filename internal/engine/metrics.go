package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for the automation engine. A nil *Metrics
// is valid and disables recording, so callers never need nil checks.
type Metrics struct {
	firings           *prometheus.CounterVec // by rule id
	skips             *prometheus.CounterVec // by rule id
	actionFailures    *prometheus.CounterVec // by rule id and action
	conditionFailures *prometheus.CounterVec // by rule id and condition
	restarts          prometheus.Counter
	activeRules       prometheus.Gauge
}

// NewMetrics creates and registers engine metrics. A nil registerer disables
// metrics and returns nil.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	if registerer == nil {
		return nil, nil
	}

	m := &Metrics{
		firings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rulekit",
			Subsystem: "automation",
			Name:      "firings_total",
			Help:      "Total number of trigger firings processed",
		}, []string{"rule"}),

		skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rulekit",
			Subsystem: "automation",
			Name:      "skips_total",
			Help:      "Total number of firings skipped by unsatisfied or failing conditions",
		}, []string{"rule"}),

		actionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rulekit",
			Subsystem: "automation",
			Name:      "action_failures_total",
			Help:      "Total number of action executions that returned an error",
		}, []string{"rule", "action"}),

		conditionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rulekit",
			Subsystem: "automation",
			Name:      "condition_failures_total",
			Help:      "Total number of condition evaluations that returned an error",
		}, []string{"rule", "condition"}),

		restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rulekit",
			Subsystem: "automation",
			Name:      "restarts_total",
			Help:      "Total number of automation restarts",
		}),

		activeRules: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rulekit",
			Subsystem: "automation",
			Name:      "active_rules",
			Help:      "Current number of running automation loops",
		}),
	}

	collectors := []prometheus.Collector{
		m.firings, m.skips, m.actionFailures, m.conditionFailures, m.restarts, m.activeRules,
	}
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) recordFiring(ruleID string) {
	if m == nil {
		return
	}
	m.firings.WithLabelValues(ruleID).Inc()
}

func (m *Metrics) recordSkip(ruleID string) {
	if m == nil {
		return
	}
	m.skips.WithLabelValues(ruleID).Inc()
}

func (m *Metrics) recordActionFailure(ruleID, action string) {
	if m == nil {
		return
	}
	m.actionFailures.WithLabelValues(ruleID, action).Inc()
}

func (m *Metrics) recordConditionFailure(ruleID, condition string) {
	if m == nil {
		return
	}
	m.conditionFailures.WithLabelValues(ruleID, condition).Inc()
}

func (m *Metrics) recordRestart() {
	if m == nil {
		return
	}
	m.restarts.Inc()
}

func (m *Metrics) setActiveRules(count int) {
	if m == nil {
		return
	}
	m.activeRules.Set(float64(count))
}

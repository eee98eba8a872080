// Package step defines the capability contracts for automation steps and the
// registry that maps step names to factories.
//
// An automation rule is assembled from three kinds of steps: exactly one
// Trigger (the event source), zero or more Conditions (boolean gates), and
// zero or more Actions (side effects). Implementations register themselves by
// name, and the engine materializes configured instances from declarative
// configuration.
package step

import (
	"context"
	"math"
	"time"
)

// Kind identifies a step capability category.
type Kind string

const (
	KindTrigger   Kind = "trigger"
	KindCondition Kind = "condition"
	KindAction    Kind = "action"
)

// Config is the opaque per-step configuration blob, keyed by field name.
type Config map[string]any

// Firing is a single trigger event. It carries no payload; each firing just
// signals "fire now".
type Firing struct {
	At time.Time
}

// Step is the contract shared by all step kinds.
type Step interface {
	// Name returns the unique implementation name within the step's kind.
	Name() string

	// Configure applies the step's configuration blob. It is called exactly
	// once, before the step is used, and must not perform I/O.
	Configure(cfg Config) error

	// Schema describes the step's user-configurable fields for configuration UIs.
	Schema() Schema
}

// Trigger produces a lazy, restartable sequence of firings.
type Trigger interface {
	Step

	// Events starts a fresh firing sequence. The returned channel is closed
	// when the sequence ends or ctx is cancelled. Each call starts a new,
	// independent sequence; restarting after a previous consumption finished
	// or was cancelled must be safe. Exactly one consumer reads the channel:
	// the owning rule's loop.
	Events(ctx context.Context) (<-chan Firing, error)
}

// Condition is a boolean gate evaluated on every firing. Evaluate must not
// mutate shared rule state.
type Condition interface {
	Step
	Evaluate(ctx context.Context) (bool, error)
}

// Action performs a side effect after all of a rule's conditions pass.
type Action interface {
	Step
	Run(ctx context.Context) error
}

// GetString extracts a string value from cfg, falling back to defaultValue
// when the key is absent or not a string.
func GetString(cfg Config, key, defaultValue string) string {
	if value, exists := cfg[key]; exists {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return defaultValue
}

// GetInt extracts an integer value from cfg, falling back to defaultValue.
// YAML and JSON decoders produce int, int64 or float64 depending on source;
// all three are accepted.
func GetInt(cfg Config, key string, defaultValue int) int {
	if value, exists := cfg[key]; exists {
		switch v := value.(type) {
		case int:
			return v
		case int64:
			if v > math.MaxInt32 || v < math.MinInt32 {
				return defaultValue
			}
			return int(v)
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
				return defaultValue
			}
			return int(v)
		}
	}
	return defaultValue
}

// GetBool extracts a boolean value from cfg, falling back to defaultValue.
func GetBool(cfg Config, key string, defaultValue bool) bool {
	if value, exists := cfg[key]; exists {
		if b, ok := value.(bool); ok {
			return b
		}
	}
	return defaultValue
}

// GetDuration extracts a duration from cfg. Accepts Go duration strings
// ("30s", "5m") or a number of seconds.
func GetDuration(cfg Config, key string, defaultValue time.Duration) time.Duration {
	if value, exists := cfg[key]; exists {
		switch v := value.(type) {
		case string:
			if d, err := time.ParseDuration(v); err == nil {
				return d
			}
		case int:
			return time.Duration(v) * time.Second
		case int64:
			return time.Duration(v) * time.Second
		case float64:
			return time.Duration(v * float64(time.Second))
		}
	}
	return defaultValue
}

// GetStringSlice extracts a list of strings from cfg. YAML decodes sequences
// as []any, so both []string and []any are accepted.
func GetStringSlice(cfg Config, key string) []string {
	value, exists := cfg[key]
	if !exists {
		return nil
	}
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	}
	return nil
}

// Package config reads and writes the persisted automation configuration.
//
// The configuration is a YAML document declaring how many automations exist
// and, per automation id, the chosen trigger name, condition names, action
// names, and one nested sub-object per chosen step holding that step's own
// fields:
//
//	automations_count: 2
//	automations:
//	  "1":
//	    trigger_event: PeriodicCheck
//	    conditions: [NoCondition]
//	    actions: [SendNotification]
//	    PeriodicCheck:
//	      interval: 30s
//	    SendNotification:
//	      message: "checked"
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Automations is the full declarative automation configuration.
type Automations struct {
	// Count declares how many automations are active. Rule ids greater than
	// Count are ignored by the binder even if present in Rules.
	Count int `yaml:"automations_count"`
	// Rules maps ordinal rule ids ("1", "2", ...) to their configuration.
	Rules map[string]Rule `yaml:"automations"`
}

// Rule is the declarative form of one automation.
type Rule struct {
	TriggerEvent string   `yaml:"trigger_event,omitempty"`
	Conditions   []string `yaml:"conditions,omitempty"`
	Actions      []string `yaml:"actions,omitempty"`
	// Steps holds one opaque configuration blob per chosen step name.
	// It is inlined in YAML, so step blobs sit next to the selection fields.
	Steps map[string]map[string]any `yaml:",inline"`
}

// StepConfig returns the configuration blob for a step name, defaulting to
// an empty blob when none is present.
func (r Rule) StepConfig(name string) map[string]any {
	if cfg, ok := r.Steps[name]; ok && cfg != nil {
		return cfg
	}
	return map[string]any{}
}

// Store reads and writes the automation configuration file.
type Store struct {
	path string
}

// NewStore creates a store backed by the YAML file at path.
// The file does not need to exist yet; Load returns an empty configuration
// for a missing file.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the current configuration. A missing file yields an empty
// configuration rather than an error, matching get-with-default semantics.
func (s *Store) Load() (*Automations, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Automations{Rules: map[string]Rule{}}, nil
		}
		return nil, fmt.Errorf("could not read automation config: %w", err)
	}

	var cfg Automations
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal automation config: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]Rule{}
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration, creating parent directories as needed.
func (s *Store) Save(cfg *Automations) error {
	if err := validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not marshal automation config: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create config directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("could not write automation config: %w", err)
	}

	return nil
}

// Reset clears the persisted rule count and rule table. It only rewrites the
// file; currently running automations are untouched until the next restart.
func (s *Store) Reset() error {
	return s.Save(&Automations{Count: 0, Rules: map[string]Rule{}})
}

func validate(cfg *Automations) error {
	if cfg == nil {
		return fmt.Errorf("automation config cannot be nil")
	}
	if cfg.Count < 0 {
		return fmt.Errorf("automations_count must be >= 0, got %d", cfg.Count)
	}
	return nil
}

package step

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rulekit/rulekit/internal/errors"
)

// Descriptor holds the factory and metadata for a registered step implementation.
type Descriptor struct {
	// Name is the implementation name, unique within its kind.
	Name string
	// Kind is the capability category the implementation belongs to.
	Kind Kind
	// Description is a human-readable summary for discovery and CLIs.
	Description string
	// New creates a fresh, unconfigured instance.
	New func() Step
}

// Registry maps step names to factories, one namespace per kind.
// It is safe for concurrent use; registration is append-only, so readers see
// every implementation registered before their call (late registration is
// picked up by the next List).
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind]map[string]Descriptor
}

// NewRegistry creates an empty step registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: map[Kind]map[string]Descriptor{
			KindTrigger:   {},
			KindCondition: {},
			KindAction:    {},
		},
	}
}

// Register adds a step implementation to the registry.
// Returns an error for an unknown kind, a missing factory, or a duplicate name.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return errors.New("INVALID_DESCRIPTOR", "step name cannot be empty")
	}
	if d.New == nil {
		return errors.New("INVALID_DESCRIPTOR", fmt.Sprintf("step '%s' has no factory", d.Name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kindEntries, ok := r.entries[d.Kind]
	if !ok {
		return errors.New("INVALID_DESCRIPTOR", fmt.Sprintf("unknown step kind '%s'", d.Kind))
	}
	if _, exists := kindEntries[d.Name]; exists {
		return errors.New("DUPLICATE_STEP", fmt.Sprintf("%s '%s' is already registered", d.Kind, d.Name))
	}

	kindEntries[d.Name] = d
	return nil
}

// List returns the current name → descriptor mapping for a kind.
// The returned map is a copy; callers may treat it as a point-in-time snapshot.
func (r *Registry) List(kind Kind) map[string]Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]Descriptor, len(r.entries[kind]))
	for name, d := range r.entries[kind] {
		result[name] = d
	}
	return result
}

// Lookup returns the descriptor registered under kind and name.
func (r *Registry) Lookup(kind Kind, name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.entries[kind][name]
	return d, ok
}

// Names returns the sorted implementation names for a kind.
func (r *Registry) Names(kind Kind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries[kind]))
	for name := range r.entries[kind] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

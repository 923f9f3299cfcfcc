package validator

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry maps policy names to policies. It always contains the built-in
// policies, which cannot be replaced. Custom policies are expected to be
// registered once at startup; lookups are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	policies map[string]Policy
}

// NewRegistry returns a registry holding the built-in policies.
func NewRegistry() *Registry {
	r := &Registry{policies: make(map[string]Policy, len(builtins))}
	for _, p := range builtins {
		r.policies[p.name] = p
	}
	return r
}

// Register adds a policy. Names are unique within a registry.
func (r *Registry) Register(p Policy) error {
	if p.IsZero() {
		return fmt.Errorf("%w: zero policy", ErrInvalidPolicyReference)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.policies[p.name]; exists {
		return fmt.Errorf("%w: %q", ErrPolicyExists, p.name)
	}
	r.policies[p.name] = p
	return nil
}

// Lookup returns the policy registered under name. Names are case-sensitive.
func (r *Registry) Lookup(name string) (Policy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.policies[name]
	return p, ok
}

// MustLookup panics with ErrInvalidPolicyReference for undefined names.
func (r *Registry) MustLookup(name string) Policy {
	p, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrInvalidPolicyReference, name))
	}
	return p
}

// Names returns registered policy names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Policies returns registered policies ordered by name.
func (r *Registry) Policies() []Policy {
	names := r.Names()
	out := make([]Policy, 0, len(names))

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range names {
		out = append(out, r.policies[name])
	}
	return out
}

type policyFile struct {
	Policies []policyEntry `yaml:"policies"`
}

type policyEntry struct {
	Name  string `yaml:"name"`
	Allow string `yaml:"allow"`
}

// LoadFile reads custom policy definitions from a YAML file.
// See LoadYAML for the format.
func (r *Registry) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Join(ErrFailedToReadPolicies, err)
	}
	return r.LoadYAML(data)
}

// LoadYAML registers custom policies from YAML content:
//
//	policies:
//	  - name: InvoiceNumber
//	    allow: "A-Z0-9-"
//
// Either all policies in the document are registered or none are.
// It returns the number of registered policies.
func (r *Registry) LoadYAML(data []byte) (int, error) {
	var doc policyFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, errors.Join(ErrFailedToParsePolicies, err)
	}

	compiled := make([]Policy, 0, len(doc.Policies))
	seen := make(map[string]bool, len(doc.Policies))
	for _, entry := range doc.Policies {
		p, err := NewPolicy(entry.Name, entry.Allow)
		if err != nil {
			return 0, err
		}
		if seen[p.name] {
			return 0, fmt.Errorf("%w: %q defined twice", ErrPolicyExists, p.name)
		}
		seen[p.name] = true
		compiled = append(compiled, p)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range compiled {
		if _, exists := r.policies[p.name]; exists {
			return 0, fmt.Errorf("%w: %q", ErrPolicyExists, p.name)
		}
	}
	for _, p := range compiled {
		r.policies[p.name] = p
	}

	return len(compiled), nil
}

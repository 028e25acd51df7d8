// Package symbols manages the registry of label addresses and their
// canonical symbolic names.
package symbols

import "fmt"

// LabelName returns the canonical name for an address. Names derive
// purely from the address value so repeated runs produce identical
// output.
func LabelName(address uint16) string {
	return fmt.Sprintf("L%04X", address)
}

// Registry maps control flow target addresses to their canonical names.
// It is populated during the decode pass and only read afterwards.
type Registry struct {
	names map[uint16]string
}

// NewRegistry creates an empty label registry.
func NewRegistry() *Registry {
	return &Registry{
		names: map[uint16]string{},
	}
}

// Register records an address as a control flow target and returns its
// canonical name. Registering the same address twice is a no-op.
func (r *Registry) Register(address uint16) string {
	name, ok := r.names[address]
	if ok {
		return name
	}
	name = LabelName(address)
	r.names[address] = name
	return name
}

// Name returns the canonical name for a registered address.
func (r *Registry) Name(address uint16) (string, bool) {
	name, ok := r.names[address]
	return name, ok
}

// Has returns whether the address is a registered target.
func (r *Registry) Has(address uint16) bool {
	_, ok := r.names[address]
	return ok
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	return len(r.names)
}

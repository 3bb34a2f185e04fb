package reconcile

import (
	"fmt"
	"sort"
)

// Registry resolves object types by name.
type Registry struct {
	listers map[string]Lister
}

// NewRegistry creates a registry holding the given object types.
// Later registrations replace earlier ones of the same name.
func NewRegistry(listers ...Lister) *Registry {
	r := &Registry{listers: make(map[string]Lister, len(listers))}
	for _, l := range listers {
		r.listers[l.Name()] = l
	}
	return r
}

// Lister returns the object type registered under name.
func (r *Registry) Lister(name string) (Lister, error) {
	l, ok := r.listers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObjectType, name)
	}
	return l, nil
}

// Adapter returns the reconcilable object type registered under name.
func (r *Registry) Adapter(name string) (Adapter, error) {
	l, err := r.Lister(name)
	if err != nil {
		return nil, err
	}
	a, ok := l.(Adapter)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotReconcilable, name)
	}
	return a, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.listers))
	for name := range r.listers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

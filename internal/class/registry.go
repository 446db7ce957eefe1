package class

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a class name does not resolve in the registry.
var ErrNotFound = errors.New("class not found")

// Registry is an ordered collection of classes keyed by unique name.
// Insertion order is preserved and used for enumeration. Lookups are linear;
// registries stay small (tens of classes). Access is single-actor, UI-driven;
// hosts with more than one mutating goroutine must serialize externally.
type Registry struct {
	classes []*Class
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of classes.
func (r *Registry) Len() int {
	return len(r.classes)
}

// Get returns the class at the given position, or nil if out of range.
func (r *Registry) Get(i int) *Class {
	if i < 0 || i >= len(r.classes) {
		return nil
	}
	return r.classes[i]
}

// Find returns the position of the class with the given name.
// The second result is false when the name is absent.
func (r *Registry) Find(name string) (int, bool) {
	for i, c := range r.classes {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Lookup returns the class with the given name, or a wrapped ErrNotFound.
func (r *Registry) Lookup(name string) (*Class, error) {
	if i, ok := r.Find(name); ok {
		return r.classes[i], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Names returns the class names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.classes))
	for i, c := range r.classes {
		names[i] = c.Name
	}
	return names
}

// Add appends a class, rejecting duplicate names.
func (r *Registry) Add(c *Class) error {
	if c.Name == "" {
		return errors.New("class name must not be empty")
	}
	if _, ok := r.Find(c.Name); ok {
		return fmt.Errorf("class %q already exists", c.Name)
	}
	r.classes = append(r.classes, c)
	return nil
}

// Remove deletes the class with the given name, preserving the order of the rest.
func (r *Registry) Remove(name string) error {
	i, ok := r.Find(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	r.classes = append(r.classes[:i], r.classes[i+1:]...)
	return nil
}

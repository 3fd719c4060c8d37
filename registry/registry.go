package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Module is implemented by packages that contribute constructors to a
// registry. It is the discovery hook for externally provided entries: an
// application lists the modules it wants and installs them during startup.
type Module interface {
	Register(r *Registry) error
}

// Registry is a collection of named categories, each mapping a constructor
// name to a Constructor. The zero value is not usable; use New.
//
// Registration mutates shared state and is guarded by a mutex, so concurrent
// registration is defined (first writer wins, later duplicates fail). Lookups
// are read-only and safe to run concurrently with each other.
type Registry struct {
	mu         sync.RWMutex
	categories map[string]map[string]*Constructor
}

// New creates a registry with the given categories pre-created.
func New(categories ...string) *Registry {
	r := &Registry{categories: make(map[string]map[string]*Constructor, len(categories))}
	for _, name := range categories {
		r.categories[name] = make(map[string]*Constructor)
	}
	return r
}

// CreateCategory adds a new empty category. It fails with
// *DuplicateCategoryError if the category already exists.
func (r *Registry) CreateCategory(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[name]; ok {
		return &DuplicateCategoryError{Category: name}
	}
	r.categories[name] = make(map[string]*Constructor)
	return nil
}

// HasCategory reports whether a category exists.
func (r *Registry) HasCategory(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.categories[name]
	return ok
}

// Register adds c under name within category. The constructor's signature is
// introspected here, once, so that malformed registrations fail at startup
// rather than at first resolution. Duplicate names are a hard failure.
func (r *Registry) Register(category, name string, c *Constructor) error {
	if c == nil {
		return &SignatureIntrospectionError{Reason: "constructor is nil"}
	}
	if _, err := c.Signature(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	entries, ok := r.categories[category]
	if !ok {
		return &UnknownCategoryError{Category: category}
	}
	if _, exists := entries[name]; exists {
		return &DuplicateEntryError{Category: category, Name: name}
	}
	entries[name] = c
	return nil
}

// MustRegister is Register for init-time wiring; it panics on failure.
func (r *Registry) MustRegister(category, name string, c *Constructor) {
	if err := r.Register(category, name, c); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
}

// Lookup returns the constructor registered under name within category.
func (r *Registry) Lookup(category, name string) (*Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries, ok := r.categories[category]
	if !ok {
		return nil, &UnknownCategoryError{Category: category}
	}
	c, ok := entries[name]
	if !ok {
		return nil, &UnknownEntryError{Category: category, Name: name}
	}
	return c, nil
}

// Names returns the sorted constructor names of a category.
func (r *Registry) Names(category string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries, ok := r.categories[category]
	if !ok {
		return nil, &UnknownCategoryError{Category: category}
	}
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Install asks each module to register its constructors, stopping at the
// first failure.
func (r *Registry) Install(mods ...Module) error {
	for _, mod := range mods {
		if err := mod.Register(r); err != nil {
			return err
		}
	}
	return nil
}

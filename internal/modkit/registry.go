package modkit

import (
	"fmt"
	"reflect"
	"sync"

	"crimestats/internal/modkit/httpkit"
)

// Registry keeps modules in mount order and indexes their ports by name
type Registry struct {
	mu     sync.RWMutex
	order  []Module
	byName map[string]Module
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry { return &Registry{byName: map[string]Module{}} }

// Add registers modules in order; a repeated name is an error
func (r *Registry) Add(mods ...Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range mods {
		if _, dup := r.byName[m.Name()]; dup {
			return fmt.Errorf("modkit: module %q registered twice", m.Name())
		}
		r.byName[m.Name()] = m
		r.order = append(r.order, m)
	}
	return nil
}

// MustAdd is Add that panics
func (r *Registry) MustAdd(mods ...Module) *Registry {
	if err := r.Add(mods...); err != nil {
		panic(err)
	}
	return r
}

// Names lists registered module names in mount order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.order))
	for _, m := range r.order {
		out = append(out, m.Name())
	}
	return out
}

// Mount mounts every module on router in registration order
func (r *Registry) Mount(router httpkit.Router) {
	r.mu.RLock()
	mods := append([]Module(nil), r.order...)
	r.mu.RUnlock()
	for _, m := range mods {
		m.MountRoutes(router)
	}
}

// Lookup returns the module registered as name
func (r *Registry) Lookup(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byName[name]
	return m, ok
}

// Port finds a T in the ports of the module registered as name
func Port[T any](r *Registry, name string) (T, bool) {
	m, ok := r.Lookup(name)
	if !ok {
		var zero T
		return zero, false
	}
	return PortOf[T](m)
}

// PortOf pulls a T out of m's ports, either the bundle itself or one of its
// exported struct fields
func PortOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

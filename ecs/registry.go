package ecs

import (
	"reflect"
	"slices"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
	byName    map[string]reflect.Type
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
		byName:    make(map[string]reflect.Type),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
// Registering the same type twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
	r.byName[TypeName(t)] = t
}

// IsRegistered reports whether t can be stored.
func (r *ComponentRegistry) IsRegistered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// TypeByName looks a registered type up by its TypeName.
func (r *ComponentRegistry) TypeByName(name string) (reflect.Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Types returns all registered types sorted by name.
func (r *ComponentRegistry) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		switch {
		case TypeName(a) < TypeName(b):
			return -1
		case TypeName(a) > TypeName(b):
			return 1
		}
		return 0
	})
	return types
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

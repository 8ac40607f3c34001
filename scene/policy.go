package scene

import (
	"reflect"

	"github.com/plus3/sandbox/ecs"
)

// EditorOnly marks entities that belong to the editor rather than the scene:
// gizmo helpers, editor cameras, preview entities. They are never captured,
// cleared or restored.
type EditorOnly struct{}

// Policy selects which entities make up the scene. An entity is included
// when it has every Require type and none of the Exclude types. Require also
// narrows what Restore clears, so entities that gain or lose a required type
// between capture and restore escape the rollback.
type Policy struct {
	Exclude []reflect.Type
	Require []reflect.Type
}

// Includes reports whether id is part of the scene.
func (p Policy) Includes(storage *ecs.Storage, id ecs.EntityId) bool {
	if storage.HasComponent(id, reflect.TypeFor[EditorOnly]()) {
		return false
	}
	for _, t := range p.Exclude {
		if storage.HasComponent(id, t) {
			return false
		}
	}
	for _, t := range p.Require {
		if !storage.HasComponent(id, t) {
			return false
		}
	}
	return true
}

// Entities returns the included entities in ascending id order.
func (p Policy) Entities(storage *ecs.Storage) []ecs.EntityId {
	all := storage.Entities()
	out := all[:0]
	for _, id := range all {
		if p.Includes(storage, id) {
			out = append(out, id)
		}
	}
	return out
}

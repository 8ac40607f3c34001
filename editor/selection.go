package editor

import "github.com/plus3/sandbox/ecs"

// Selection tracks the entity being edited through an EntityRef, so it
// follows the entity across component changes and play sessions.
type Selection struct {
	ref *ecs.EntityRef
}

func (s *Selection) Select(storage *ecs.Storage, id ecs.EntityId) {
	s.ref = storage.CreateEntityRef(id)
}

func (s *Selection) Clear() {
	s.ref = nil
}

// Entity returns the selected entity if it is still alive.
func (s *Selection) Entity(storage *ecs.Storage) (ecs.EntityId, bool) {
	id, ok := storage.ResolveEntityRef(s.ref)
	if !ok || !storage.Exists(id) {
		return 0, false
	}
	return id, true
}

func (s *Selection) Is(storage *ecs.Storage, id ecs.EntityId) bool {
	sel, ok := s.Entity(storage)
	return ok && sel == id
}

package engine

import (
	"errors"
	"reflect"
	"slices"

	"github.com/plus3/sandbox/ecs"
)

var ErrHierarchyCycle = errors.New("entity cannot be parented to itself or a descendant")

// ParentOf returns id's live parent.
func ParentOf(storage *ecs.Storage, id ecs.EntityId) (ecs.EntityId, bool) {
	parent := ecs.ReadComponent[Parent](storage, id)
	if parent == nil {
		return 0, false
	}
	pid, ok := storage.ResolveEntityRef(parent.Ref)
	if !ok || !storage.Exists(pid) {
		return 0, false
	}
	return pid, true
}

// Hierarchy is the parent/child forest over a set of entities.
type Hierarchy struct {
	Roots    []ecs.EntityId
	children map[ecs.EntityId][]ecs.EntityId
}

// BuildHierarchy groups ids by parent. Entities whose parent is missing or
// outside ids are roots.
func BuildHierarchy(storage *ecs.Storage, ids []ecs.EntityId) *Hierarchy {
	h := &Hierarchy{children: make(map[ecs.EntityId][]ecs.EntityId)}
	members := make(map[ecs.EntityId]bool, len(ids))
	for _, id := range ids {
		members[id] = true
	}
	for _, id := range ids {
		if pid, ok := ParentOf(storage, id); ok && members[pid] {
			h.children[pid] = append(h.children[pid], id)
			continue
		}
		h.Roots = append(h.Roots, id)
	}
	slices.Sort(h.Roots)
	for _, c := range h.children {
		slices.Sort(c)
	}
	return h
}

func (h *Hierarchy) Children(id ecs.EntityId) []ecs.EntityId {
	return h.children[id]
}

// Descendants returns id's subtree, depth first, excluding id.
func (h *Hierarchy) Descendants(id ecs.EntityId) []ecs.EntityId {
	var out []ecs.EntityId
	var walk func(ecs.EntityId)
	walk = func(n ecs.EntityId) {
		for _, c := range h.children[n] {
			out = append(out, c)
			walk(c)
		}
	}
	walk(id)
	return out
}

// SetParent makes parent the parent of child and returns child's new id.
func SetParent(storage *ecs.Storage, child, parent ecs.EntityId) (ecs.EntityId, error) {
	for cur, ok := parent, true; ok; cur, ok = ParentOf(storage, cur) {
		if cur == child {
			return child, ErrHierarchyCycle
		}
	}
	return storage.AddComponent(child, Parent{Ref: storage.CreateEntityRef(parent)}), nil
}

// ClearParent detaches child from its parent and returns its new id.
func ClearParent(storage *ecs.Storage, child ecs.EntityId) ecs.EntityId {
	return storage.RemoveComponent(child, reflect.TypeFor[Parent]())
}

// DespawnRecursive deletes id and every entity parented under it. Returns the
// number of entities deleted.
func DespawnRecursive(storage *ecs.Storage, id ecs.EntityId) int {
	h := BuildHierarchy(storage, storage.Entities())
	doomed := append(h.Descendants(id), id)
	for _, d := range doomed {
		storage.Delete(d)
	}
	return len(doomed)
}

// Children returns id's direct children among all live entities.
func Children(storage *ecs.Storage, id ecs.EntityId) []ecs.EntityId {
	return BuildHierarchy(storage, storage.Entities()).Children(id)
}

// Roots returns every live entity without a live parent.
func Roots(storage *ecs.Storage) []ecs.EntityId {
	return BuildHierarchy(storage, storage.Entities()).Roots
}

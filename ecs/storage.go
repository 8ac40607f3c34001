package ecs

import (
	"reflect"
	"slices"
	"sort"
	"weak"

	"github.com/cespare/xxhash/v2"
)

// Storage is the main ECS storage interface
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil {
		return nil
	}

	// Check if we already have a ref for this entity
	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		// Weak pointer is dead, remove it
		archetype.refs.Del(id)
	}

	ref := &EntityRef{
		Id:        id,
		Archetype: archetype,
	}

	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// LookupEntityRef returns the live ref already tracking id, or nil. Unlike
// CreateEntityRef it never allocates or registers a ref.
func (s *Storage) LookupEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil {
		return nil
	}
	weakPtr, ok := archetype.refs.Get(id)
	if !ok {
		return nil
	}
	return weakPtr.Value()
}

// BindEntityRef points ref at the live entity id. A ref still bound to
// another entity is detached from it first. Returns false if id is not alive
// or is already tracked by a different ref.
func (s *Storage) BindEntityRef(ref *EntityRef, id EntityId) bool {
	if ref == nil || !s.Exists(id) {
		return false
	}

	archetype := s.archetypes[id.ArchetypeId()]
	if existing, ok := archetype.refs.Get(id); ok {
		if other := existing.Value(); other != nil && other != ref {
			return false
		}
	}

	if ref.Id != 0 && ref.Id != id {
		if old := s.archetypes[ref.Id.ArchetypeId()]; old != nil {
			if weakPtr, ok := old.refs.Get(ref.Id); ok && weakPtr.Value() == ref {
				old.refs.Del(ref.Id)
			}
		}
	}

	ref.Id = id
	ref.Archetype = archetype
	archetype.refs.Put(id, weak.Make(ref))
	return true
}

func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil {
		return 0, false
	}
	// Check if the ref has been invalidated (Id == 0 means deleted)
	if ref.Id == 0 {
		return 0, false
	}
	return ref.Id, true
}

func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if ref == nil || ref.Id == 0 {
		return false
	}

	archetype := s.archetypes[ref.Id.ArchetypeId()]
	if archetype != nil {
		archetype.refs.Del(ref.Id)
	}

	ref.Id = 0
	ref.Archetype = nil
	return true
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := slices.Clone(types)
	sort.Sort(byTypeName(sorted))
	return s.archetypes[hashTypesToUint32(sorted)]
}

// GetArchetypeById returns the archetype with the given id, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// GetArchetypes returns every archetype ordered by id.
func (s *Storage) GetArchetypes() []*Archetype {
	out := make([]*Archetype, 0, len(s.archetypes))
	for _, archetype := range s.archetypes {
		out = append(out, archetype)
	}
	slices.SortFunc(out, func(a, b *Archetype) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return out
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetypeId := hashTypesToUint32(types)
	archetype, exists := s.archetypes[archetypeId]
	if !exists {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes[archetypeId] = archetype
	}
	return archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	entityIndex := archetype.Spawn(components)
	return NewEntityId(archetype.id, entityIndex)
}

// Delete removes all data related to the entity ID
func (s *Storage) Delete(id EntityId) {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return
	}

	archetype.Delete(id.Index())
}

// Exists reports whether id names a live entity.
func (s *Storage) Exists(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.Has(id.Index())
}

// Entities returns every live entity in ascending id order.
func (s *Storage) Entities() []EntityId {
	var ids []EntityId
	for _, archetype := range s.archetypes {
		for id := range archetype.Iter() {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Types returns the component types attached to id in archetype order.
func (s *Storage) Types(id EntityId) []reflect.Type {
	if !s.Exists(id) {
		return nil
	}
	return slices.Clone(s.archetypes[id.ArchetypeId()].types)
}

// Components returns pointers to every component attached to id, in the same
// order as Types.
func (s *Storage) Components(id EntityId) []any {
	if !s.Exists(id) {
		return nil
	}
	archetype := s.archetypes[id.ArchetypeId()]
	out := make([]any, len(archetype.storages))
	for i, storage := range archetype.storages {
		out[i] = storage.Get(int(id.Index()))
	}
	return out
}

func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]

	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Replacing an existing component keeps the entity in place
	if oldArchetype.HasComponent(compType) {
		dst := reflect.ValueOf(oldArchetype.GetComponent(id.Index(), compType)).Elem()
		src := reflect.ValueOf(component)
		if src.Kind() == reflect.Ptr {
			src = src.Elem()
		}
		dst.Set(src)
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	newArchetype := s.archetypeFor(newTypes)

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, oldArchetype.GetComponent(id.Index(), typ))
		}
	}

	return s.move(id, oldArchetype, newArchetype, components)
}

func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]
	if !oldArchetype.HasComponent(compType) {
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		// Entity has no components left, delete it
		oldArchetype.Delete(id.Index())
		return 0
	}

	newArchetype := s.archetypeFor(newTypes)

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		components = append(components, oldArchetype.GetComponent(id.Index(), typ))
	}

	return s.move(id, oldArchetype, newArchetype, components)
}

// move respawns id's data in newArchetype and carries its ref across.
func (s *Storage) move(id EntityId, oldArchetype, newArchetype *Archetype, components []any) EntityId {
	weakPtr, hasRef := oldArchetype.refs.Get(id)

	newId := NewEntityId(newArchetype.id, newArchetype.Spawn(components))

	if hasRef {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = newArchetype
			newArchetype.refs.Put(newId, weakPtr)
		}
		oldArchetype.refs.Del(id)
	}

	oldArchetype.Delete(id.Index())
	return newId
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}

	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)

		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		// Components can be structs or primitives (int, string, etc.)
		// But not pointers, maps, channels, or functions (those aren't value types)
		if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
			compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// TypeName returns the stable name of a component type: its package path
// plus type name for named types, the type literal otherwise.
func TypeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// hashTypesToUint32 derives an archetype id from a sorted slice of types.
// Ids depend only on type names, so they are identical across runs.
func hashTypesToUint32(types []reflect.Type) uint32 {
	d := xxhash.New()
	for _, t := range types {
		_, _ = d.WriteString(TypeName(t))
		_, _ = d.Write([]byte{0})
	}
	sum := d.Sum64()
	id := uint32(sum) ^ uint32(sum>>32)
	if id == 0 {
		// Id 0 would make the first entity of the archetype look like a dead ref
		id = 1
	}
	return id
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	component, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return component
}

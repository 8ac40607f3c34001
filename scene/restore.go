package scene

import (
	"reflect"

	"github.com/plus3/sandbox/ecs"
)

type stagedEntity struct {
	index      int
	token      Token
	components []any
}

// plan is a fully decoded snapshot. Committing a plan cannot fail.
type plan struct {
	entities []stagedEntity
	links    *restoreLinks
}

// stage decodes and validates every record without touching storage.
func (s *Serializer) stage(storage *ecs.Storage, snap *Snapshot, reuse bool) (*plan, error) {
	p := &plan{
		entities: make([]stagedEntity, 0, len(snap.Records)),
		links:    newRestoreLinks(snap, reuse),
	}

	seen := make(map[Token]bool, len(snap.Records))
	for i, record := range snap.Records {
		if record.Token == 0 || seen[record.Token] {
			return nil, &RestoreError{Token: record.Token, Err: ErrDuplicateToken}
		}
		seen[record.Token] = true

		if len(record.Components) == 0 {
			return nil, &RestoreError{Token: record.Token, Err: ErrEmptyRecord}
		}

		staged := stagedEntity{index: i, token: record.Token, components: make([]any, 0, len(record.Components))}
		types := make(map[reflect.Type]bool, len(record.Components))
		for _, component := range record.Components {
			codec, ok := s.Codecs.ByName(component.Type)
			if !ok {
				return nil, &RestoreError{Token: record.Token, Type: component.Type, Err: ErrUnknownType}
			}
			if !storage.Registry().IsRegistered(codec.Type()) {
				return nil, &RestoreError{Token: record.Token, Type: component.Type, Err: ErrUnregistered}
			}
			if types[codec.Type()] {
				return nil, &RestoreError{Token: record.Token, Type: component.Type, Err: ErrDuplicateComponent}
			}
			types[codec.Type()] = true

			value, err := codec.Decode(component.Data, p.links)
			if err != nil {
				return nil, &RestoreError{Token: record.Token, Type: component.Type, Err: err}
			}
			staged.components = append(staged.components, value)
		}
		p.entities = append(p.entities, staged)
	}

	return p, nil
}

// commit spawns the staged entities and binds every ref handed out while
// decoding, plus the capture-time refs that are still held elsewhere.
func (p *plan) commit(storage *ecs.Storage) []ecs.EntityId {
	ids := make([]ecs.EntityId, len(p.entities))
	for i, staged := range p.entities {
		ids[i] = storage.Spawn(staged.components...)
	}

	for i, staged := range p.entities {
		if p.links.original(staged.index) {
			p.links.canonical(staged.token, staged.index)
		}
		if ref, ok := p.links.refs.Get(staged.token); ok {
			storage.BindEntityRef(ref, ids[i])
		}
	}

	return ids
}

// Restore replaces the scene in storage with snap. Every record is decoded
// and validated first; on error the world is unchanged. Refs that tracked
// captured entities are re-pointed at their rebuilt counterparts.
func (s *Serializer) Restore(storage *ecs.Storage, snap *Snapshot) error {
	p, err := s.stage(storage, snap, true)
	if err != nil {
		return err
	}
	s.Clear(storage)
	p.commit(storage)
	return nil
}

// Instantiate spawns a copy of snap next to the existing scene, for prefabs.
// Returns the new entities in record order.
func (s *Serializer) Instantiate(storage *ecs.Storage, snap *Snapshot) ([]ecs.EntityId, error) {
	p, err := s.stage(storage, snap, false)
	if err != nil {
		return nil, err
	}
	return p.commit(storage), nil
}

// Clear deletes every scene entity and returns how many were removed.
func (s *Serializer) Clear(storage *ecs.Storage) int {
	ids := s.Policy.Entities(storage)
	for _, id := range ids {
		storage.Delete(id)
	}
	return len(ids)
}

package scene

import (
	"weak"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
	"github.com/plus3/sandbox/ecs"
)

// Snapshot is a detached copy of every scene entity. It shares no memory with
// the world it came from.
type Snapshot struct {
	ID      uuid.UUID
	Records []EntityRecord

	// refs[i] is the ref that tracked Records[i] at capture, if any
	refs []weak.Pointer[ecs.EntityRef]
}

// EntityRecord is one captured entity.
type EntityRecord struct {
	Token      Token
	Components []ComponentRecord
}

// ComponentRecord is one encoded component. Type is the codec name.
type ComponentRecord struct {
	Type string
	Data []byte
}

// Len returns the number of captured entities.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// Size returns the total encoded size in bytes.
func (s *Snapshot) Size() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, record := range s.Records {
		for _, component := range record.Components {
			n += len(component.Data)
		}
	}
	return n
}

// Serializer captures and rebuilds the scene portion of a world.
type Serializer struct {
	Codecs *Codecs
	Policy Policy
}

func NewSerializer(codecs *Codecs, policy Policy) *Serializer {
	return &Serializer{Codecs: codecs, Policy: policy}
}

// Capture encodes every included entity. It only reads from storage. The
// first component that cannot be encoded aborts the capture with a
// *CaptureError.
func (s *Serializer) Capture(storage *ecs.Storage) (*Snapshot, error) {
	ids := s.Policy.Entities(storage)

	tokens := intmap.New[ecs.EntityId, Token](len(ids))
	for i, id := range ids {
		tokens.Put(id, Token(i+1))
	}
	links := &captureLinks{storage: storage, tokens: tokens}

	snap := &Snapshot{
		ID:      uuid.New(),
		Records: make([]EntityRecord, 0, len(ids)),
		refs:    make([]weak.Pointer[ecs.EntityRef], len(ids)),
	}

	for i, id := range ids {
		record := EntityRecord{Token: Token(i + 1)}
		components := storage.Components(id)
		for j, t := range storage.Types(id) {
			if s.Codecs.IsTransient(t) {
				continue
			}
			codec, ok := s.Codecs.Lookup(t)
			if !ok {
				return nil, &CaptureError{Entity: id, Type: ecs.TypeName(t), Err: ErrNoCodec}
			}
			data, err := codec.Encode(components[j], links)
			if err != nil {
				return nil, &CaptureError{Entity: id, Type: codec.Name(), Err: err}
			}
			record.Components = append(record.Components, ComponentRecord{Type: codec.Name(), Data: data})
		}
		if len(record.Components) == 0 {
			return nil, &CaptureError{Entity: id, Err: ErrEmptyRecord}
		}
		snap.Records = append(snap.Records, record)

		if ref := storage.LookupEntityRef(id); ref != nil {
			snap.refs[i] = weak.Make(ref)
		}
	}

	return snap, nil
}

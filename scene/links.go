package scene

import (
	"weak"

	"github.com/kamstrup/intmap"
	"github.com/plus3/sandbox/ecs"
)

// Token identifies an entity inside one snapshot or scene document. Tokens
// start at 1; 0 means "no entity".
type Token uint32

// LinkWriter turns live entity references into tokens during capture.
type LinkWriter interface {
	Token(ref *ecs.EntityRef) (Token, error)
}

// LinkReader turns tokens back into entity references during restore. The
// returned refs are bound to the rebuilt entities once the restore commits.
type LinkReader interface {
	Ref(token Token) (*ecs.EntityRef, error)
}

type captureLinks struct {
	storage *ecs.Storage
	tokens  *intmap.Map[ecs.EntityId, Token]
}

func (l *captureLinks) Token(ref *ecs.EntityRef) (Token, error) {
	id, ok := l.storage.ResolveEntityRef(ref)
	if !ok {
		// Dead or nil references carry no link
		return 0, nil
	}
	token, ok := l.tokens.Get(id)
	if !ok {
		return 0, ErrDanglingLink
	}
	return token, nil
}

type restoreLinks struct {
	known     *intmap.Map[Token, int]
	originals []weak.Pointer[ecs.EntityRef]
	refs      *intmap.Map[Token, *ecs.EntityRef]
}

func newRestoreLinks(snap *Snapshot, reuse bool) *restoreLinks {
	l := &restoreLinks{
		known: intmap.New[Token, int](len(snap.Records)),
		refs:  intmap.New[Token, *ecs.EntityRef](len(snap.Records)),
	}
	if reuse {
		l.originals = snap.refs
	}
	for i, record := range snap.Records {
		if _, ok := l.known.Get(record.Token); !ok {
			l.known.Put(record.Token, i)
		}
	}
	return l
}

func (l *restoreLinks) Ref(token Token) (*ecs.EntityRef, error) {
	if token == 0 {
		return nil, nil
	}
	index, ok := l.known.Get(token)
	if !ok {
		return nil, ErrDanglingLink
	}
	return l.canonical(token, index), nil
}

// canonical returns the single ref every link to token shares. The ref that
// tracked the entity at capture is reused when it is still reachable.
func (l *restoreLinks) canonical(token Token, index int) *ecs.EntityRef {
	if ref, ok := l.refs.Get(token); ok {
		return ref
	}
	var ref *ecs.EntityRef
	if index < len(l.originals) {
		ref = l.originals[index].Value()
	}
	if ref == nil {
		ref = &ecs.EntityRef{}
	}
	l.refs.Put(token, ref)
	return ref
}

// original reports whether the capture-time ref of record index is still
// reachable.
func (l *restoreLinks) original(index int) bool {
	return index < len(l.originals) && l.originals[index].Value() != nil
}

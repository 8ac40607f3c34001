package scene_test

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/scene"
)

type Position struct {
	X, Y float32
}

type Velocity struct {
	X, Y float32
}

type Label string

type Parent struct {
	Ref *ecs.EntityRef
}

type parentDoc struct {
	Parent scene.Token `yaml:"parent"`
}

// Camera is excluded by the test policy.
type Camera struct {
	Zoom float32
}

// Secret is registered with the world but has no codec.
type Secret struct {
	Value string
}

type Cache struct {
	Hits int
}

type world struct {
	storage    *ecs.Storage
	serializer *scene.Serializer
}

func parentCodec() scene.Codec {
	return scene.NewLinkedCodec("test.Parent",
		func(p *Parent, links scene.LinkWriter) (parentDoc, error) {
			token, err := links.Token(p.Ref)
			return parentDoc{Parent: token}, err
		},
		func(d parentDoc, links scene.LinkReader) (Parent, error) {
			ref, err := links.Ref(d.Parent)
			return Parent{Ref: ref}, err
		},
	)
}

func newCodecs() *scene.Codecs {
	codecs := scene.NewCodecs()
	codecs.MustRegister(scene.NewCodec[Position]("test.Position"))
	codecs.MustRegister(scene.NewCodec[Velocity]("test.Velocity"))
	codecs.MustRegister(scene.NewCodec[Label]("test.Label"))
	codecs.MustRegister(scene.NewCodec[Camera]("test.Camera"))
	codecs.MustRegister(parentCodec())
	codecs.MarkTransient(reflect.TypeFor[Cache]())
	return codecs
}

func newRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Parent](registry)
	ecs.RegisterComponent[Camera](registry)
	ecs.RegisterComponent[Secret](registry)
	ecs.RegisterComponent[Cache](registry)
	ecs.RegisterComponent[scene.EditorOnly](registry)
	return registry
}

func newWorld() *world {
	return &world{
		storage: ecs.NewStorage(newRegistry()),
		serializer: scene.NewSerializer(newCodecs(), scene.Policy{
			Exclude: []reflect.Type{reflect.TypeFor[Camera]()},
		}),
	}
}

func (w *world) find(label Label) (ecs.EntityId, bool) {
	for _, id := range w.storage.Entities() {
		if l := ecs.ReadComponent[Label](w.storage, id); l != nil && *l == label {
			return id, true
		}
	}
	return 0, false
}

// describe renders every scene entity as a sorted line of its component
// values, with parent links shown by the parent's label.
func (w *world) describe() []string {
	var lines []string
	for _, id := range w.serializer.Policy.Entities(w.storage) {
		var parts []string
		for _, component := range w.storage.Components(id) {
			switch c := component.(type) {
			case *Parent:
				target := "<none>"
				if pid, ok := w.storage.ResolveEntityRef(c.Ref); ok {
					if l := ecs.ReadComponent[Label](w.storage, pid); l != nil {
						target = string(*l)
					}
				}
				parts = append(parts, "parent="+target)
			case *Cache:
			default:
				parts = append(parts, fmt.Sprintf("%T(%+v)", c, reflect.ValueOf(c).Elem().Interface()))
			}
		}
		slices.Sort(parts)
		lines = append(lines, strings.Join(parts, " "))
	}
	slices.Sort(lines)
	return lines
}

package engine

import (
	"reflect"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/scene"
)

type parentDoc struct {
	Parent scene.Token `yaml:"parent"`
}

// ParentCodec stores Parent as a token of the linked entity.
func ParentCodec() scene.Codec {
	return scene.NewLinkedCodec("engine.Parent",
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

// RegisterComponents registers the engine's components with the world and
// their codecs with the scene format.
func RegisterComponents(registry *ecs.ComponentRegistry, codecs *scene.Codecs) {
	scene.Register[Transform](registry, codecs, "engine.Transform")
	scene.Register[Sprite](registry, codecs, "engine.Sprite")
	scene.Register[Camera](registry, codecs, "engine.Camera")
	scene.Register[Name](registry, codecs, "engine.Name")
	scene.Register[AssetPath](registry, codecs, "engine.AssetPath")
	scene.Register[SpriteAnimation](registry, codecs, "engine.SpriteAnimation")

	ecs.RegisterComponent[Parent](registry)
	codecs.MustRegister(ParentCodec())

	ecs.RegisterComponent[scene.EditorOnly](registry)
}

// DefaultPolicy selects every entity except cameras and editor-only ones,
// so a play session rolls back entities with or without a Transform.
func DefaultPolicy() scene.Policy {
	return scene.Policy{
		Exclude: []reflect.Type{reflect.TypeFor[Camera]()},
	}
}

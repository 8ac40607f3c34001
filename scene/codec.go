package scene

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/plus3/sandbox/ecs"
	"gopkg.in/yaml.v3"
)

// Codec converts one component type to and from its stored text form.
// Components that hold entity references go through links, never raw ids.
type Codec interface {
	Name() string
	Type() reflect.Type
	Encode(component any, links LinkWriter) ([]byte, error)
	Decode(data []byte, links LinkReader) (any, error)
}

type valueCodec[T any] struct {
	name string
}

// NewCodec stores T as YAML. T must not contain entity references.
func NewCodec[T any](name string) Codec {
	return &valueCodec[T]{name: name}
}

func (c *valueCodec[T]) Name() string       { return c.name }
func (c *valueCodec[T]) Type() reflect.Type { return reflect.TypeFor[T]() }

func (c *valueCodec[T]) Encode(component any, _ LinkWriter) ([]byte, error) {
	value, err := componentValue[T](component)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(value)
}

func (c *valueCodec[T]) Decode(data []byte, _ LinkReader) (any, error) {
	var value T
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}

type linkedCodec[T, D any] struct {
	name   string
	encode func(*T, LinkWriter) (D, error)
	decode func(D, LinkReader) (T, error)
}

// NewLinkedCodec stores T through an intermediate document type D. encode
// turns entity references into tokens and decode turns them back.
func NewLinkedCodec[T, D any](
	name string,
	encode func(*T, LinkWriter) (D, error),
	decode func(D, LinkReader) (T, error),
) Codec {
	return &linkedCodec[T, D]{name: name, encode: encode, decode: decode}
}

func (c *linkedCodec[T, D]) Name() string       { return c.name }
func (c *linkedCodec[T, D]) Type() reflect.Type { return reflect.TypeFor[T]() }

func (c *linkedCodec[T, D]) Encode(component any, links LinkWriter) ([]byte, error) {
	value, err := componentValue[T](component)
	if err != nil {
		return nil, err
	}
	doc, err := c.encode(&value, links)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

func (c *linkedCodec[T, D]) Decode(data []byte, links LinkReader) (any, error) {
	var doc D
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return c.decode(doc, links)
}

func componentValue[T any](component any) (T, error) {
	switch v := component.(type) {
	case *T:
		return *v, nil
	case T:
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("expected %v, got %T", reflect.TypeFor[T](), component)
}

// Codecs is the registry of serializable component types. Types without a
// codec cannot be captured unless they are marked transient.
type Codecs struct {
	byType    map[reflect.Type]Codec
	byName    map[string]Codec
	transient map[reflect.Type]bool
}

func NewCodecs() *Codecs {
	return &Codecs{
		byType:    make(map[reflect.Type]Codec),
		byName:    make(map[string]Codec),
		transient: make(map[reflect.Type]bool),
	}
}

// Register adds codec. Names and types must both be unique.
func (c *Codecs) Register(codec Codec) error {
	if _, ok := c.byName[codec.Name()]; ok {
		return fmt.Errorf("%w: name %q", ErrCodecConflict, codec.Name())
	}
	if _, ok := c.byType[codec.Type()]; ok {
		return fmt.Errorf("%w: type %v", ErrCodecConflict, codec.Type())
	}
	c.byType[codec.Type()] = codec
	c.byName[codec.Name()] = codec
	return nil
}

// MustRegister is Register for init-time wiring.
func (c *Codecs) MustRegister(codec Codec) {
	if err := c.Register(codec); err != nil {
		panic(err)
	}
}

// MarkTransient makes capture skip t. Transient components hold derived
// runtime state and are rebuilt by systems after a restore.
func (c *Codecs) MarkTransient(t reflect.Type) {
	c.transient[t] = true
}

func (c *Codecs) IsTransient(t reflect.Type) bool {
	return c.transient[t]
}

func (c *Codecs) Lookup(t reflect.Type) (Codec, bool) {
	codec, ok := c.byType[t]
	return codec, ok
}

func (c *Codecs) ByName(name string) (Codec, bool) {
	codec, ok := c.byName[name]
	return codec, ok
}

// Names returns every registered codec name in sorted order.
func (c *Codecs) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Register registers T with both the world registry and codecs under name.
func Register[T any](registry *ecs.ComponentRegistry, codecs *Codecs, name string) {
	ecs.RegisterComponent[T](registry)
	codecs.MustRegister(NewCodec[T](name))
}

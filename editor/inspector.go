package editor

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/pkg/errors"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/engine"
	"github.com/plus3/sandbox/scene"
)

var ErrNoSelection = errors.New("no entity selected")

var entityRefType = reflect.TypeFor[ecs.EntityRef]()

// Inspector shows and edits the components of the selected entity.
type Inspector struct {
	Storage   *ecs.Storage
	Selection *Selection

	// Defaults builds the initial value for components added from the
	// inspector. Types without an entry start zeroed.
	Defaults map[reflect.Type]func() any

	OnEdit  func()
	OnError func(error)

	adding int32
}

// DefaultComponents returns constructors for engine components whose zero
// value is not useful.
func DefaultComponents() map[reflect.Type]func() any {
	return map[reflect.Type]func() any{
		reflect.TypeFor[engine.Transform]():       func() any { return engine.NewTransform(0, 0) },
		reflect.TypeFor[engine.Sprite]():          func() any { return engine.Sprite{Color: engine.Gray, Width: 32, Height: 32} },
		reflect.TypeFor[engine.Camera]():          func() any { return engine.Camera{Zoom: 1} },
		reflect.TypeFor[engine.SpriteAnimation](): func() any { return engine.NewSpriteAnimation() },
	}
}

// Addable returns the registered component types the selected entity does
// not have yet, in registry order.
func (in *Inspector) Addable() []reflect.Type {
	id, ok := in.Selection.Entity(in.Storage)
	if !ok {
		return nil
	}
	var out []reflect.Type
	for _, t := range in.Storage.Registry().Types() {
		if t == reflect.TypeFor[Panel]() || t == reflect.TypeFor[scene.EditorOnly]() {
			continue
		}
		if !in.Storage.HasComponent(id, t) {
			out = append(out, t)
		}
	}
	return out
}

// AddComponent attaches a new t to the selected entity.
func (in *Inspector) AddComponent(t reflect.Type) error {
	id, ok := in.Selection.Entity(in.Storage)
	if !ok {
		return ErrNoSelection
	}
	if !in.Storage.Registry().IsRegistered(t) {
		return errors.Errorf("component %s is not registered", t)
	}
	if in.Storage.HasComponent(id, t) {
		return nil
	}

	var value any
	if build, ok := in.Defaults[t]; ok {
		value = build()
	} else {
		value = reflect.New(t).Elem().Interface()
	}
	in.Storage.AddComponent(id, value)
	in.edited()
	return nil
}

// RemoveComponent detaches t from the selected entity. Removing the last
// component deletes the entity.
func (in *Inspector) RemoveComponent(t reflect.Type) error {
	id, ok := in.Selection.Entity(in.Storage)
	if !ok {
		return ErrNoSelection
	}
	if in.Storage.RemoveComponent(id, t) == 0 {
		in.Selection.Clear()
	}
	in.edited()
	return nil
}

// Set assigns value to a field of the selected entity's t component.
func (in *Inspector) Set(t reflect.Type, path string, value any) error {
	id, ok := in.Selection.Entity(in.Storage)
	if !ok {
		return ErrNoSelection
	}
	component := in.Storage.GetComponent(id, t)
	if component == nil {
		return errors.Errorf("entity has no %s", t)
	}
	if err := SetField(component, path, value); err != nil {
		return err
	}
	in.edited()
	return nil
}

func (in *Inspector) edited() {
	if in.OnEdit != nil {
		in.OnEdit()
	}
}

func (in *Inspector) report(err error) {
	if err != nil && in.OnError != nil {
		in.OnError(err)
	}
}

func (in *Inspector) Render() {
	window("Inspector", nil, func() {
		id, ok := in.Selection.Entity(in.Storage)
		if !ok {
			imgui.Text("No entity selected")
			return
		}

		imgui.Text(fmt.Sprintf("Entity: %s", DisplayName(in.Storage, id)))
		imgui.Text(fmt.Sprintf("ID: %d  Archetype: 0x%X", id, id.ArchetypeId()))
		imgui.Separator()

		var remove reflect.Type
		types := in.Storage.Types(id)
		for i, component := range in.Storage.Components(id) {
			t := types[i]
			if t == reflect.TypeFor[Panel]() {
				continue
			}
			if imgui.TreeNodeStr(t.String()) {
				in.renderValue("", reflect.ValueOf(component).Elem(), t)
				if imgui.Button("Remove##" + t.String()) {
					remove = t
				}
				imgui.TreePop()
			}
		}
		if remove != nil {
			in.report(in.RemoveComponent(remove))
			return
		}

		addable := in.Addable()
		if len(addable) == 0 {
			return
		}
		imgui.Separator()
		if in.adding >= int32(len(addable)) {
			in.adding = 0
		}
		imgui.SetNextItemWidth(200)
		imgui.InputInt("##add", &in.adding)
		in.adding = max(0, min(in.adding, int32(len(addable)-1)))
		imgui.SameLine()
		if imgui.Button("Add " + addable[in.adding].String()) {
			in.report(in.AddComponent(addable[in.adding]))
		}
	})
}

func (in *Inspector) renderValue(path string, val reflect.Value, component reflect.Type) {
	if val.Kind() == reflect.Struct && val.Type() != entityRefType {
		for _, f := range fields.Fields(val.Type()) {
			fv := val.Field(f.Index)
			if f.IsPointer {
				if fv.IsNil() {
					imgui.Text(fmt.Sprintf("%s: nil", f.Name))
					continue
				}
				fv = fv.Elem()
			}
			in.renderField(join(path, f.Name), f.Name, fv, component)
		}
		return
	}
	in.renderField(path, component.Name(), val, component)
}

func (in *Inspector) renderField(path, label string, val reflect.Value, component reflect.Type) {
	id := "##" + component.String() + "." + path
	set := func(v any) { in.report(in.Set(component, path, v)) }

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		fieldLabel(label, 150)
		if imgui.InputInt(id, &v) {
			set(v)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		fieldLabel(label, 150)
		if imgui.InputInt(id, &v) && v >= 0 {
			set(v)
		}
	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		fieldLabel(label, 150)
		if imgui.InputFloat(id, &v) {
			set(v)
		}
	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(label+id, &v) {
			set(v)
		}
	case reflect.String:
		v := val.String()
		fieldLabel(label, 200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			set(v)
		}
	case reflect.Struct:
		if val.Type() == entityRefType {
			ref := val.Addr().Interface().(*ecs.EntityRef)
			if target, ok := in.Storage.ResolveEntityRef(ref); ok {
				imgui.Text(fmt.Sprintf("%s: %s", label, DisplayName(in.Storage, target)))
			} else {
				imgui.Text(fmt.Sprintf("%s: <dead>", label))
			}
			return
		}
		if imgui.TreeNodeStr(label + id) {
			in.renderValue(path, val, component)
			imgui.TreePop()
		}
	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", label, val.Len()))
	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", label, val.Len()))
	default:
		imgui.Text(fmt.Sprintf("%s: %v", label, val.Interface()))
	}
}

func fieldLabel(label string, width float32) {
	imgui.Text(label + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(width)
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

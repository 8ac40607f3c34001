package editor

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrNoField       = errors.New("no such field")
	ErrFieldReadOnly = errors.New("field cannot be set")
	ErrFieldType     = errors.New("value does not fit field")
)

// FieldInfo describes one exported field of a component struct.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	IsStruct  bool
	IsSlice   bool
	IsMap     bool
}

type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

var fields = &fieldCache{fields: make(map[reflect.Type][]FieldInfo)}

// Fields returns the exported fields of t, or nil if t is not a struct.
func (c *fieldCache) Fields(t reflect.Type) []FieldInfo {
	c.mu.RLock()
	cached, ok := c.fields[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.fields[t]; ok {
		return cached
	}

	var out []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			field := t.Field(i)
			if !field.IsExported() || field.Anonymous {
				continue
			}
			ft := field.Type
			isPointer := ft.Kind() == reflect.Pointer
			if isPointer {
				ft = ft.Elem()
			}
			out = append(out, FieldInfo{
				Name:      field.Name,
				Type:      ft,
				Index:     i,
				IsPointer: isPointer,
				IsStruct:  ft.Kind() == reflect.Struct,
				IsSlice:   ft.Kind() == reflect.Slice,
				IsMap:     ft.Kind() == reflect.Map,
			})
		}
	}
	c.fields[t] = out
	return out
}

// SetField assigns value to the field of component named by path, a dotted
// list of field names such as "Color.R". An empty path assigns the component
// itself. component must be a pointer. Numeric values convert to the field's
// kind; other values must be assignable.
func SetField(component any, path string, value any) error {
	target := reflect.ValueOf(component)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return errors.Wrapf(ErrFieldReadOnly, "component %T", component)
	}
	target = target.Elem()

	if path != "" {
		for _, name := range strings.Split(path, ".") {
			if target.Kind() == reflect.Pointer {
				if target.IsNil() {
					return errors.Wrapf(ErrNoField, "%s: nil pointer", path)
				}
				target = target.Elem()
			}
			if target.Kind() != reflect.Struct {
				return errors.Wrapf(ErrNoField, "%s", path)
			}
			f, ok := target.Type().FieldByName(name)
			if !ok || !f.IsExported() {
				return errors.Wrapf(ErrNoField, "%s", path)
			}
			target = target.FieldByIndex(f.Index)
		}
	}
	if !target.CanSet() {
		return errors.Wrapf(ErrFieldReadOnly, "%s", path)
	}

	v, err := convertValue(reflect.ValueOf(value), target.Type())
	if err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	target.Set(v)
	return nil
}

func convertValue(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Value{}, ErrFieldType
	}
	if v.Type().AssignableTo(to) {
		return v, nil
	}
	if numeric(v.Kind()) && numeric(to.Kind()) {
		if unsigned(to.Kind()) && signedNegative(v) {
			return reflect.Value{}, fmt.Errorf("%w: %v is negative", ErrFieldType, v.Interface())
		}
		return v.Convert(to), nil
	}
	if v.Kind() == to.Kind() && v.Type().ConvertibleTo(to) {
		return v.Convert(to), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s into %s", ErrFieldType, v.Type(), to)
}

func numeric(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Uint64) || k == reflect.Float32 || k == reflect.Float64
}

func unsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uint64
}

func signedNegative(v reflect.Value) bool {
	switch {
	case v.Kind() >= reflect.Int && v.Kind() <= reflect.Int64:
		return v.Int() < 0
	case v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64:
		return v.Float() < 0
	}
	return false
}

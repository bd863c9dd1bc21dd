package ecs

import (
	"fmt"
)

// Accessor intercepts reads and writes of a public field. Fields without an
// accessor read and write their own storage.
type Accessor interface {
	Get() any
	Set(value any)
}

// AccessorFuncs adapts a getter/setter pair to the Accessor interface.
// A nil GetFunc falls back to the field's storage, as does a nil SetFunc.
type AccessorFuncs struct {
	GetFunc func() any
	SetFunc func(any)
}

func (a AccessorFuncs) Get() any {
	return a.GetFunc()
}

func (a AccessorFuncs) Set(value any) {
	a.SetFunc(value)
}

// Field is a single public attribute of a component.
type Field struct {
	Name        string
	Type        string
	Description string

	value  any
	getter func() any
	setter func(any)
}

// Get returns the field's value, going through the getter when one is set.
func (f *Field) Get() any {
	if f.getter != nil {
		return f.getter()
	}
	return f.value
}

// Set writes the field's value, going through the setter when one is set.
func (f *Field) Set(value any) {
	if f.setter != nil {
		f.setter(value)
		return
	}
	f.value = value
}

// Load returns the stored value without invoking the getter.
func (f *Field) Load() any {
	return f.value
}

// Store writes the stored value without invoking the setter.
func (f *Field) Store(value any) {
	f.value = value
}

// Intercepted reports whether reads or writes of the field are overridden.
func (f *Field) Intercepted() bool {
	return f.getter != nil || f.setter != nil
}

// FieldOption configures a field at registration.
type FieldOption func(*Field)

// WithType records the semantic type of a field (for example "v3").
func WithType(typ string) FieldOption {
	return func(f *Field) {
		f.Type = typ
	}
}

// WithDescription attaches a human readable description, shown by inspectors.
func WithDescription(desc string) FieldOption {
	return func(f *Field) {
		f.Description = desc
	}
}

// WithGetter overrides reads of the field.
func WithGetter(get func() any) FieldOption {
	return func(f *Field) {
		f.getter = get
	}
}

// WithSetter overrides writes of the field.
func WithSetter(set func(any)) FieldOption {
	return func(f *Field) {
		f.setter = set
	}
}

// WithAccessor overrides both reads and writes of the field.
func WithAccessor(a Accessor) FieldOption {
	return func(f *Field) {
		f.getter = a.Get
		f.setter = a.Set
		if funcs, ok := a.(AccessorFuncs); ok {
			if funcs.GetFunc == nil {
				f.getter = nil
			}
			if funcs.SetFunc == nil {
				f.setter = nil
			}
		}
	}
}

// Fields is an ordered set of public fields. The zero value is ready to use.
type Fields struct {
	order  []*Field
	byName map[string]*Field
}

// AddPublic registers a field. Registering a name twice replaces the earlier
// field but keeps its position.
func (fs *Fields) AddPublic(name string, initial any, opts ...FieldOption) *Field {
	f := &Field{Name: name, value: initial}
	for _, opt := range opts {
		opt(f)
	}

	if fs.byName == nil {
		fs.byName = make(map[string]*Field)
	}

	if old, ok := fs.byName[name]; ok {
		for i, existing := range fs.order {
			if existing == old {
				fs.order[i] = f
				break
			}
		}
	} else {
		fs.order = append(fs.order, f)
	}
	fs.byName[name] = f
	return f
}

// Field returns the named field.
func (fs *Fields) Field(name string) (*Field, error) {
	f, ok := fs.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return f, nil
}

// Get reads a field through its accessor.
func (fs *Fields) Get(name string) (any, error) {
	f, err := fs.Field(name)
	if err != nil {
		return nil, err
	}
	return f.Get(), nil
}

// Set writes a field through its accessor.
func (fs *Fields) Set(name string, value any) error {
	f, err := fs.Field(name)
	if err != nil {
		return err
	}
	f.Set(value)
	return nil
}

// Load reads a field's storage directly.
func (fs *Fields) Load(name string) (any, error) {
	f, err := fs.Field(name)
	if err != nil {
		return nil, err
	}
	return f.Load(), nil
}

// Store writes a field's storage directly.
func (fs *Fields) Store(name string, value any) error {
	f, err := fs.Field(name)
	if err != nil {
		return err
	}
	f.Store(value)
	return nil
}

// Has reports whether the field is registered.
func (fs *Fields) Has(name string) bool {
	_, ok := fs.byName[name]
	return ok
}

// List returns the fields in registration order. The slice MUST NOT be mutated.
func (fs *Fields) List() []*Field {
	return fs.order
}

// Len returns the number of registered fields.
func (fs *Fields) Len() int {
	return len(fs.order)
}

// FieldAs reads a field through its accessor and asserts its type.
func FieldAs[T any](fs *Fields, name string) (T, error) {
	var zero T
	v, err := fs.Get(name)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %T, want %T", ErrFieldType, name, v, zero)
	}
	return typed, nil
}

// LoadAs reads a field's storage and asserts its type.
func LoadAs[T any](fs *Fields, name string) (T, error) {
	var zero T
	v, err := fs.Load(name)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %T, want %T", ErrFieldType, name, v, zero)
	}
	return typed, nil
}

package ecs

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Key identifies a component slot on an entity: a kind ("Transform",
// "Renderer", "GUIElement", ...) and an optional subtype naming the variant.
type Key struct {
	Kind    string
	Subtype string
}

func (k Key) String() string {
	if k.Subtype == "" {
		return k.Kind
	}
	return k.Kind + "/" + k.Subtype
}

func (k Key) hash() uint64 {
	return xxhash.Sum64String(k.Kind + "\x00" + k.Subtype)
}

func kindHash(kind string) uint64 {
	return xxhash.Sum64String(kind)
}

// Component is a typed bag of public fields owned by exactly one entity.
// Implementations embed Base.
type Component interface {
	Key() Key
	Fields() *Fields
	Entity() *Entity

	bind(e *Entity) error
	unbind()
}

// Updater is implemented by components that advance every frame.
type Updater interface {
	Update(dt float64)
}

// Base carries the key, public fields and owner shared by every component.
type Base struct {
	key    Key
	fields Fields
	entity *Entity
}

// NewBase returns a Base for the given kind and subtype. Subtype may be empty.
func NewBase(kind, subtype string) Base {
	return Base{key: Key{Kind: kind, Subtype: subtype}}
}

func (b *Base) Key() Key {
	return b.key
}

func (b *Base) Fields() *Fields {
	return &b.fields
}

// Entity returns the owning entity, or nil while the component is detached.
func (b *Base) Entity() *Entity {
	return b.entity
}

func (b *Base) bind(e *Entity) error {
	if b.entity != nil && b.entity != e {
		return fmt.Errorf("%w: %s owned by entity %d", ErrComponentOwned, b.key, b.entity.id)
	}
	b.entity = e
	return nil
}

func (b *Base) unbind() {
	b.entity = nil
}

// MarshalJSON renders {"type": kind, "subtype"?: subtype, <field>: value...}
// with fields read through their accessors in registration order.
func (b *Base) MarshalJSON() ([]byte, error) {
	return marshalFields(b.key, &b.fields, nil)
}

// MarshalComponent serializes any component the way Base.MarshalJSON does.
func MarshalComponent(c Component) ([]byte, error) {
	return marshalFields(c.Key(), c.Fields(), nil)
}

// MarshalComponentWith serializes a component, letting override replace the
// value written for individual fields. override returns false to keep the
// field's own value.
func MarshalComponentWith(c Component, override func(f *Field) (any, bool)) ([]byte, error) {
	return marshalFields(c.Key(), c.Fields(), override)
}

func marshalFields(key Key, fs *Fields, override func(f *Field) (any, bool)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	if err := writeJSON(&buf, key.Kind); err != nil {
		return nil, err
	}
	if key.Subtype != "" {
		buf.WriteString(`,"subtype":`)
		if err := writeJSON(&buf, key.Subtype); err != nil {
			return nil, err
		}
	}

	for _, f := range fs.List() {
		value := f.Get()
		if override != nil {
			if v, ok := override(f); ok {
				value = v
			}
		}
		buf.WriteByte(',')
		if err := writeJSON(&buf, f.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, value); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

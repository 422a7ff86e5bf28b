package ecs

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// componentMeta binds a component's reflect.Type to the stable name used
// when serializing snapshots and blueprint recipes.
type componentMeta struct {
	typ  reflect.Type
	name string
}

// registry tracks the association between component Go types and their
// stable, fully-qualified serialization names. Registration happens either
// explicitly (RegisterComponent) or implicitly on first Attach.
type registry struct {
	byType map[reflect.Type]componentMeta
	byName map[string]componentMeta
}

func newRegistry() *registry {
	return &registry{
		byType: make(map[reflect.Type]componentMeta),
		byName: make(map[string]componentMeta),
	}
}

func qualifiedName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// register associates t with its stable name, if not already known. It is
// safe to call repeatedly with the same type.
func (r *registry) register(t reflect.Type) componentMeta {
	if meta, ok := r.byType[t]; ok {
		return meta
	}
	name := qualifiedName(t)
	meta := componentMeta{typ: t, name: name}
	r.byType[t] = meta
	r.byName[name] = meta
	return meta
}

// registerNamed associates t with an explicit override name, used when the
// caller wants a shorter or more stable wire name than the Go package path.
func (r *registry) registerNamed(t reflect.Type, name string) componentMeta {
	meta := componentMeta{typ: t, name: name}
	r.byType[t] = meta
	r.byName[name] = meta
	return meta
}

func (r *registry) lookupType(t reflect.Type) (componentMeta, bool) {
	meta, ok := r.byType[t]
	return meta, ok
}

func (r *registry) lookupName(name string) (componentMeta, bool) {
	meta, ok := r.byName[name]
	return meta, ok
}

// decodeFields rehydrates a component of the named type from a JSON-compatible
// field map, used by snapshot restore and blueprint instantiation.
func (r *registry) decodeFields(name string, fields map[string]any) (any, error) {
	meta, ok := r.byName[name]
	if !ok {
		return nil, &UnknownComponentError{Name: name}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("ecs: encode fields for %q: %w", name, err)
	}
	ptr := reflect.New(meta.typ)
	if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("ecs: decode fields for %q: %w", name, err)
	}
	return ptr.Interface(), nil
}

// encodeFields flattens a component value into a JSON-compatible field map
// for snapshotting.
func encodeFields(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

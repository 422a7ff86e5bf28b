// Package blueprint implements named component-composition recipes used to
// spawn entities: a recipe maps a component type name to a field-override
// dictionary, and spawning merges caller-supplied overrides into a deep
// copy of the recipe before constructing each component by name.
package blueprint

import (
	"sort"

	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/kernelerr"
)

// Recipe maps a registered component type name to its default field
// values. Both the recipe and any override map passed to Spawn must be
// JSON-compatible.
type Recipe map[string]map[string]any

// Registry owns every defined blueprint. It is owned by the embedder and
// may outlive any single engine instance; definitions added mid-run take
// effect from the next call to Spawn, there is no per-tick caching.
type Registry struct {
	order   []string
	recipes map[string]Recipe
	meta    map[string]map[string]any
}

// New constructs an empty blueprint registry.
func New() *Registry {
	return &Registry{
		recipes: make(map[string]Recipe),
		meta:    make(map[string]map[string]any),
	}
}

// Define stores recipe under name along with optional metadata (used by
// embedders for things like footprint or terrain requirements; the core
// treats it as opaque). Redefining a name replaces the prior recipe.
func (r *Registry) Define(name string, recipe Recipe, meta map[string]any) {
	if _, exists := r.recipes[name]; !exists {
		r.order = append(r.order, name)
	}
	r.recipes[name] = deepCopyRecipe(recipe)
	if meta != nil {
		r.meta[name] = meta
	}
}

// Meta returns the metadata dictionary registered alongside name, if any.
func (r *Registry) Meta(name string) (map[string]any, bool) {
	m, ok := r.meta[name]
	return m, ok
}

// Names returns every defined blueprint name in definition order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Spawn deep-copies the named recipe, merges overrides into the matching
// per-type field dicts, spawns a fresh entity, and constructs each
// component by looking up its type name in world's registry. An unknown
// component name fails with kernelerr.UnknownNameError{Registry:
// "component"}; an unknown blueprint name fails with
// kernelerr.UnknownNameError{Registry: "blueprint"}.
func (r *Registry) Spawn(w *ecs.World, name string, overrides Recipe) (ecs.Entity, error) {
	recipe, ok := r.recipes[name]
	if !ok {
		return 0, &kernelerr.UnknownNameError{Registry: "blueprint", Name: name}
	}
	merged := deepCopyRecipe(recipe)
	for typeName, fields := range overrides {
		dst, ok := merged[typeName]
		if !ok {
			dst = make(map[string]any)
		}
		for field, value := range fields {
			dst[field] = value
		}
		merged[typeName] = dst
	}

	typeNames := make([]string, 0, len(merged))
	for typeName := range merged {
		typeNames = append(typeNames, typeName)
	}
	sort.Strings(typeNames)

	e := w.Spawn()
	for _, typeName := range typeNames {
		if err := w.SetComponentByName(e, typeName, merged[typeName]); err != nil {
			w.Despawn(e)
			if _, ok := err.(*ecs.UnknownComponentError); ok {
				return 0, &kernelerr.UnknownNameError{Registry: "component", Name: typeName}
			}
			return 0, err
		}
	}
	return e, nil
}

func deepCopyRecipe(r Recipe) Recipe {
	out := make(Recipe, len(r))
	for typeName, fields := range r {
		cp := make(map[string]any, len(fields))
		for k, v := range fields {
			cp[k] = v
		}
		out[typeName] = cp
	}
	return out
}

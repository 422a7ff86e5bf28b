package ecs

import "reflect"

type filterKind int

const (
	filterNot filterKind = iota
	filterAnyOf
)

// Filter narrows a query beyond the bare component types it requests.
type Filter struct {
	kind  filterKind
	types []reflect.Type
}

// Not excludes entities holding a component of type t.
func Not(t reflect.Type) Filter {
	return Filter{kind: filterNot, types: []reflect.Type{t}}
}

// AnyOf includes entities holding at least one of the listed types. It does
// not bind any component for the query result; callers probe with Has/Get.
func AnyOf(types ...reflect.Type) Filter {
	return Filter{kind: filterAnyOf, types: types}
}

func (w *World) passesFilters(e Entity, filters []Filter) bool {
	for _, f := range filters {
		switch f.kind {
		case filterNot:
			if w.hasRaw(f.types[0], e) {
				return false
			}
		case filterAnyOf:
			matched := false
			for _, t := range f.types {
				if w.hasRaw(t, e) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
	}
	return true
}

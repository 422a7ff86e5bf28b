package ecs

import "iter"

// Row2 is the result of a two-component query.
type Row2[A, B any] struct {
	Entity Entity
	A      *A
	B      *B
}

// Row3 is the result of a three-component query.
type Row3[A, B, C any] struct {
	Entity Entity
	A      *A
	B      *B
	C      *C
}

// Query1 yields every alive entity holding T, in insertion order of T.
func Query1[A any](w *World, filters ...Filter) iter.Seq2[Entity, *A] {
	return func(yield func(Entity, *A) bool) {
		store, ok := w.stores[TypeOf[A]()]
		if !ok {
			return
		}
		for _, e := range store.order {
			if !w.Alive(e) {
				continue
			}
			v, ok := store.get(e)
			if !ok {
				continue
			}
			if !w.passesFilters(e, filters) {
				continue
			}
			if !yield(e, v.(*A)) {
				return
			}
		}
	}
}

// Query2 yields every alive entity holding both A and B, in insertion
// order of A. An entity missing B is skipped, not an error.
func Query2[A, B any](w *World, filters ...Filter) iter.Seq[Row2[A, B]] {
	return func(yield func(Row2[A, B]) bool) {
		storeA, ok := w.stores[TypeOf[A]()]
		if !ok {
			return
		}
		tb := TypeOf[B]()
		for _, e := range storeA.order {
			if !w.Alive(e) {
				continue
			}
			va, ok := storeA.get(e)
			if !ok {
				continue
			}
			storeB, ok := w.stores[tb]
			if !ok {
				continue
			}
			vb, ok := storeB.get(e)
			if !ok {
				continue
			}
			if !w.passesFilters(e, filters) {
				continue
			}
			row := Row2[A, B]{Entity: e, A: va.(*A), B: vb.(*B)}
			if !yield(row) {
				return
			}
		}
	}
}

// Query3 yields every alive entity holding A, B, and C, in insertion order
// of A.
func Query3[A, B, C any](w *World, filters ...Filter) iter.Seq[Row3[A, B, C]] {
	return func(yield func(Row3[A, B, C]) bool) {
		storeA, ok := w.stores[TypeOf[A]()]
		if !ok {
			return
		}
		tb, tc := TypeOf[B](), TypeOf[C]()
		for _, e := range storeA.order {
			if !w.Alive(e) {
				continue
			}
			va, ok := storeA.get(e)
			if !ok {
				continue
			}
			storeB, ok := w.stores[tb]
			if !ok {
				continue
			}
			vb, ok := storeB.get(e)
			if !ok {
				continue
			}
			storeC, ok := w.stores[tc]
			if !ok {
				continue
			}
			vc, ok := storeC.get(e)
			if !ok {
				continue
			}
			if !w.passesFilters(e, filters) {
				continue
			}
			row := Row3[A, B, C]{Entity: e, A: va.(*A), B: vb.(*B), C: vc.(*C)}
			if !yield(row) {
				return
			}
		}
	}
}

package ecs

import (
	"fmt"
	"sort"
	"strconv"
)

// Snapshot is the JSON-compatible value tree for a world's state: every
// alive entity, the allocator cursor, and every registered component type's
// field maps keyed by entity id. Map keys are emitted in sorted order so
// that two runs with identical state produce byte-identical JSON.
type Snapshot struct {
	Entities   []uint64                             `json:"entities"`
	NextID     uint64                                `json:"next_id"`
	Components map[string]map[string]map[string]any `json:"components"`
}

// Snapshot captures every alive entity and registered component into a
// JSON-compatible value tree.
func (w *World) Snapshot() (Snapshot, error) {
	entities := w.AliveEntities()
	ids := make([]uint64, len(entities))
	for i, e := range entities {
		ids[i] = uint64(e)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	components := make(map[string]map[string]map[string]any)
	for t, store := range w.stores {
		meta, ok := w.reg.lookupType(t)
		if !ok {
			continue
		}
		perEntity := make(map[string]map[string]any)
		for e := range store.data {
			if !w.Alive(e) {
				continue
			}
			v, _ := store.get(e)
			fields, err := encodeFields(v)
			if err != nil {
				return Snapshot{}, fmt.Errorf("ecs: snapshot %s on %s: %w", meta.name, e, err)
			}
			perEntity[strconv.FormatUint(uint64(e), 10)] = fields
		}
		if len(perEntity) > 0 {
			components[meta.name] = perEntity
		}
	}

	return Snapshot{Entities: ids, NextID: uint64(w.nextID), Components: components}, nil
}

// Restore replaces the world's entire state with the contents of snap. Any
// referenced component type name that is not registered in this world
// fails the whole restore; the world is left empty in that case, per the
// kernel's no-partial-rollback contract for snapshot errors.
func (w *World) Restore(snap Snapshot) error {
	w.Clear()
	fresh := New()
	fresh.reg = w.reg // keep registrations; they are owned by the embedder across restores

	aliveSet := make(map[Entity]struct{}, len(snap.Entities))
	for _, id := range snap.Entities {
		aliveSet[Entity(id)] = struct{}{}
	}

	for name, perEntity := range snap.Components {
		meta, ok := w.reg.lookupName(name)
		if !ok {
			return &UnknownComponentError{Name: name}
		}
		store := fresh.storeFor(meta.typ)
		// Attach in ascending entity order so query order after a restore
		// does not depend on map iteration.
		type entry struct {
			id  uint64
			key string
		}
		entries := make([]entry, 0, len(perEntity))
		for idStr := range perEntity {
			raw, err := strconv.ParseUint(idStr, 10, 64)
			if err != nil {
				return fmt.Errorf("ecs: malformed entity id %q in snapshot: %w", idStr, err)
			}
			entries = append(entries, entry{id: raw, key: idStr})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })
		for _, en := range entries {
			e := Entity(en.id)
			if _, ok := aliveSet[e]; !ok {
				continue
			}
			v, err := w.reg.decodeFields(name, perEntity[en.key])
			if err != nil {
				return err
			}
			store.set(e, v)
		}
	}

	fresh.alive = make(map[Entity]struct{}, len(snap.Entities))
	fresh.order = make([]Entity, 0, len(snap.Entities))
	sortedIDs := append([]uint64(nil), snap.Entities...)
	sort.Slice(sortedIDs, func(i, j int) bool { return sortedIDs[i] < sortedIDs[j] })
	for _, id := range sortedIDs {
		e := Entity(id)
		fresh.alive[e] = struct{}{}
		fresh.order = append(fresh.order, e)
	}
	fresh.nextID = Entity(snap.NextID)

	*w = *fresh
	return nil
}

// ComponentByName returns the field map for e's component of the named
// type, used by blueprint instantiation and tween field writes.
func (w *World) ComponentByName(e Entity, name string) (map[string]any, bool, error) {
	meta, ok := w.reg.lookupName(name)
	if !ok {
		return nil, false, &UnknownComponentError{Name: name}
	}
	v, err := w.getRaw(meta.typ, e)
	if err != nil {
		if _, ok := err.(*MissingComponentError); ok {
			return nil, false, nil
		}
		return nil, false, err
	}
	fields, err := encodeFields(v)
	if err != nil {
		return nil, false, err
	}
	return fields, true, nil
}

// SetComponentByName decodes fields into a fresh value of the named
// component type and attaches it to e, replacing any existing value.
func (w *World) SetComponentByName(e Entity, name string, fields map[string]any) error {
	meta, ok := w.reg.lookupName(name)
	if !ok {
		return &UnknownComponentError{Name: name}
	}
	v, err := w.reg.decodeFields(name, fields)
	if err != nil {
		return err
	}
	return w.attachRaw(meta.typ, e, v)
}

// RegisteredName returns the stable serialization name for T, if known.
func RegisteredName[T any](w *World) (string, bool) {
	meta, ok := w.reg.lookupType(TypeOf[T]())
	return meta.name, ok
}

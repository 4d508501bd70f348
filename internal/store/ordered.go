package store

import (
	"slices"

	"github.com/google/uuid"
)

// ordered is a map keyed by ID that remembers the display order of its entries.
// It is not safe for concurrent use; callers hold their own lock.
type ordered[V any] struct {
	ids   []uuid.UUID
	items map[uuid.UUID]V
}

func newOrdered[V any]() *ordered[V] {
	return &ordered[V]{items: make(map[uuid.UUID]V)}
}

func (o *ordered[V]) get(id uuid.UUID) (V, bool) {
	v, ok := o.items[id]
	return v, ok
}

func (o *ordered[V]) append(id uuid.UUID, v V) {
	o.ids = append(o.ids, id)
	o.items[id] = v
}

func (o *ordered[V]) prepend(id uuid.UUID, v V) {
	o.ids = slices.Insert(o.ids, 0, id)
	o.items[id] = v
}

// replace overwrites an existing entry in place and reports whether it existed.
func (o *ordered[V]) replace(id uuid.UUID, v V) bool {
	if _, ok := o.items[id]; !ok {
		return false
	}
	o.items[id] = v
	return true
}

func (o *ordered[V]) values() []V {
	list := make([]V, 0, len(o.ids))
	for _, id := range o.ids {
		list = append(list, o.items[id])
	}
	return list
}

package ordmap

import (
	"cmp"
	"errors"
	"slices"
)

var (
	// ErrKeyExists is returned when a key already exists in the map.
	ErrKeyExists = errors.New("key already exists")
)

// Map is a map that remembers the order in which keys were added.
type Map[K cmp.Ordered, V any] struct {
	m     map[K]int
	order []Pair[K, V]
}

// Pair is a key-value pair.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// New creates a new Map with room for n pairs.
func New[K cmp.Ordered, V any](n int) *Map[K, V] {
	return &Map[K, V]{
		m:     make(map[K]int, n),
		order: make([]Pair[K, V], 0, n),
	}
}

// Add adds a key-value pair to the map. it returns error if the key already exists.
func (m *Map[K, V]) Add(key K, value V) error {
	if _, ok := m.m[key]; ok {
		return ErrKeyExists
	}

	m.m[key] = len(m.order)
	m.order = append(m.order, Pair[K, V]{Key: key, Value: value})
	return nil
}

// Has reports whether the key was added.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.m[key]
	return ok
}

// Len returns the number of key-value pairs in the map.
func (m *Map[K, V]) Len() int {
	return len(m.order)
}

// Sorted returns the pairs ordered ascending by key.
func (m *Map[K, V]) Sorted() []Pair[K, V] {
	ps := slices.Clone(m.order)
	slices.SortFunc(ps, func(a, b Pair[K, V]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return ps
}

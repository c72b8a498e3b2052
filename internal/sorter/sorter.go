// Package sorter keeps a collection ordered by a user-selected key.
package sorter

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrUnknownKey is returned when a sort key has no accessor.
var ErrUnknownKey = errors.New("unknown sort key")

// Key names a sortable attribute.
type Key string

// Fields maps every sortable key to its accessor.
type Fields[T any] map[Key]func(T) Value

// Sorter wraps a slice and keeps it sorted by (key, ascending). Sorting
// is stable, so items comparing equal keep their relative order.
type Sorter[T any] struct {
	fields     Fields[T]
	items      []T
	key        Key
	defaultKey Key
	ascending  bool
	collator   *collate.Collator
}

// New creates a sorter ordered by defaultKey ascending. Items are copied.
func New[T any](fields Fields[T], defaultKey Key, items []T) (*Sorter[T], error) {
	if _, ok := fields[defaultKey]; !ok {
		return nil, fmt.Errorf("default key %q: %w", defaultKey, ErrUnknownKey)
	}
	s := &Sorter[T]{
		fields:     fields,
		items:      slices.Clone(items),
		key:        defaultKey,
		defaultKey: defaultKey,
		ascending:  true,
		collator:   collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics),
	}
	s.sort()
	return s, nil
}

// MustNew is like New but panics on an unknown default key. It is meant
// for package-level field tables known at compile time.
func MustNew[T any](fields Fields[T], defaultKey Key, items []T) *Sorter[T] {
	s, err := New(fields, defaultKey, items)
	if err != nil {
		panic(err)
	}
	return s
}

// Get returns the sorted items. The slice is owned by the sorter.
func (s *Sorter[T]) Get() []T {
	return s.items
}

// At returns the item at index i.
func (s *Sorter[T]) At(i int) T {
	return s.items[i]
}

// Len returns the number of items.
func (s *Sorter[T]) Len() int {
	return len(s.items)
}

// Key returns the current sort key.
func (s *Sorter[T]) Key() Key {
	return s.key
}

// DefaultKey returns the key a reset returns to.
func (s *Sorter[T]) DefaultKey() Key {
	return s.defaultKey
}

// Ascending reports the current direction.
func (s *Sorter[T]) Ascending() bool {
	return s.ascending
}

// Has reports whether key can be sorted by.
func (s *Sorter[T]) Has(key Key) bool {
	_, ok := s.fields[key]
	return ok
}

// Set replaces the items with a sorted copy of items.
func (s *Sorter[T]) Set(items []T) {
	s.items = slices.Clone(items)
	s.sort()
}

// Push appends an item and re-sorts.
func (s *Sorter[T]) Push(item T) {
	s.items = append(s.items, item)
	s.sort()
}

// SortBy sets the sort state explicitly.
func (s *Sorter[T]) SortBy(key Key, ascending bool) error {
	if !s.Has(key) {
		return fmt.Errorf("sort by %q: %w", key, ErrUnknownKey)
	}
	s.key = key
	s.ascending = ascending
	s.sort()
	return nil
}

// ToggleSort cycles the sort state for key: a new key sorts ascending,
// the same key flips to descending, and flipping back to ascending resets
// to the default key.
func (s *Sorter[T]) ToggleSort(key Key) error {
	if !s.Has(key) {
		return fmt.Errorf("toggle sort %q: %w", key, ErrUnknownKey)
	}
	if s.key == key {
		s.ascending = !s.ascending
		if s.ascending {
			s.key = s.defaultKey
		}
	} else {
		s.key = key
		s.ascending = true
	}
	s.sort()
	return nil
}

func (s *Sorter[T]) sort() {
	get := s.fields[s.key]
	slices.SortStableFunc(s.items, func(a, b T) int {
		res := s.compare(get(a), get(b))
		if !s.ascending {
			return -res
		}
		return res
	})
}

func (s *Sorter[T]) compare(a, b Value) int {
	if a.kind != b.kind {
		return sign(int64(a.kind) - int64(b.kind))
	}
	switch a.kind {
	case KindString:
		return s.collator.CompareString(a.str, b.str)
	case KindDuration:
		return a.dur.Cmp(b.dur)
	default:
		return compareNumbers(a.num, b.num)
	}
}

func compareNumbers(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func sign(v int64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

package domain

import (
	"encoding/json"
	"sort"
)

// Set is a set of strings that serializes as a sorted JSON array.
// Package version sets and service dependency sets use it so that duplicate
// entries collapse and serialized output stays deterministic.
type Set map[string]struct{}

// NewSet builds a Set from the given items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Add inserts an item. Adding an existing item is a no-op.
func (s Set) Add(item string) {
	s[item] = struct{}{}
}

// Has reports whether the item is present.
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Remove deletes an item if present.
func (s Set) Remove(item string) {
	delete(s, item)
}

// Sorted returns the items in ascending order.
func (s Set) Sorted() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for item := range s {
		c[item] = struct{}{}
	}
	return c
}

// Equal reports whether both sets contain exactly the same items.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for item := range s {
		if !other.Has(item) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a sorted array.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes a JSON array into the set, collapsing duplicates.
func (s *Set) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewSet(items...)
	return nil
}

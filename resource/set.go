// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package resource

import (
	"fmt"
	"iter"
)

// Set is a collection of items keyed by name that remembers first-insertion order.
//
// The zero value is ready to use.
type Set struct {
	items map[string]Item
	order []string
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{items: make(map[string]Item)}
}

// Add stores item.
//
// An item with an empty name is not stored and Add returns [ErrEmptyKey].
// An item whose name is already present replaces the earlier one in place and
// Add returns [ErrDuplicateKey]. Callers treat both as warnings.
func (s *Set) Add(item Item) error {
	if item.Name == "" {
		return ErrEmptyKey
	}

	if s.items == nil {
		s.items = make(map[string]Item)
	}

	if _, ok := s.items[item.Name]; ok {
		s.items[item.Name] = item

		return fmt.Errorf("%w: %q", ErrDuplicateKey, item.Name)
	}

	s.items[item.Name] = item
	s.order = append(s.order, item.Name)

	return nil
}

// Get returns the item stored under name.
func (s *Set) Get(name string) (Item, bool) {
	item, ok := s.items[name]

	return item, ok
}

// Len returns the number of stored items.
func (s *Set) Len() int {
	return len(s.order)
}

// All iterates over the items in first-insertion order.
func (s *Set) All() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, name := range s.order {
			if !yield(s.items[name]) {
				return
			}
		}
	}
}

// Names returns the item names in first-insertion order.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)

	return out
}

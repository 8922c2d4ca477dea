// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package prototype

import "sort"

// Named is implemented by every element stored in a Collection.
type Named interface {
	Name() string
}

// Collection is an ordered sequence of named elements, unique by name.
// Insertion order is preserved; when two elements share a name the first
// one wins.
type Collection[T Named] struct {
	items []T
}

// NewCollection builds a collection from items, dropping later duplicates.
func NewCollection[T Named](items ...T) Collection[T] {
	c := Collection[T]{}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.Name()] {
			continue
		}
		seen[item.Name()] = true
		c.items = append(c.items, item)
	}
	return c
}

// Len returns the number of elements.
func (c Collection[T]) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the collection holds no elements.
func (c Collection[T]) IsEmpty() bool {
	return len(c.items) == 0
}

// First returns the first element, or the zero value when empty.
func (c Collection[T]) First() T {
	var zero T
	if len(c.items) == 0 {
		return zero
	}
	return c.items[0]
}

// Last returns the last element, or the zero value when empty.
func (c Collection[T]) Last() T {
	var zero T
	if len(c.items) == 0 {
		return zero
	}
	return c.items[len(c.items)-1]
}

// Get looks an element up by name.
func (c Collection[T]) Get(name string) (T, bool) {
	for _, item := range c.items {
		if item.Name() == name {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Has reports whether an element with the given name exists.
func (c Collection[T]) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// All returns a copy of the elements in insertion order.
func (c Collection[T]) All() []T {
	result := make([]T, len(c.items))
	copy(result, c.items)
	return result
}

// Names returns element names in insertion order.
func (c Collection[T]) Names() []string {
	names := make([]string, len(c.items))
	for i, item := range c.items {
		names[i] = item.Name()
	}
	return names
}

// Sorted returns a copy ordered by name.
func (c Collection[T]) Sorted() Collection[T] {
	items := c.All()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Name() < items[j].Name()
	})
	return Collection[T]{items: items}
}

// Names is an ordered set of type names, such as implemented interfaces.
type Names struct {
	items []string
}

// NewNames builds a name set, dropping blanks and later duplicates (compared
// after type normalization).
func NewNames(names ...string) Names {
	n := Names{}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		key := normalizeTypeName(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		n.items = append(n.items, name)
	}
	return n
}

// Len returns the number of names.
func (n Names) Len() int {
	return len(n.items)
}

// First returns the first name, or "" when empty.
func (n Names) First() string {
	if len(n.items) == 0 {
		return ""
	}
	return n.items[0]
}

// Last returns the last name, or "" when empty.
func (n Names) Last() string {
	if len(n.items) == 0 {
		return ""
	}
	return n.items[len(n.items)-1]
}

// Contains reports whether name is in the set, comparing normalized names.
func (n Names) Contains(name string) bool {
	key := normalizeTypeName(name)
	for _, item := range n.items {
		if normalizeTypeName(item) == key {
			return true
		}
	}
	return false
}

// All returns a copy of the names in insertion order.
func (n Names) All() []string {
	result := make([]string, len(n.items))
	copy(result, n.items)
	return result
}

// Sorted returns a copy in lexical order.
func (n Names) Sorted() Names {
	items := n.All()
	sort.Strings(items)
	return Names{items: items}
}

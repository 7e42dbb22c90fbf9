// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package resource

import "fmt"

// Item is one translatable unit.
type Item struct {
	// Name is the key. PO uses the msgid, ISL the left-hand side of an entry.
	Name string
	// Value is the (possibly translated) text and may be empty.
	Value string
	// Comment is a free-text, possibly multi-line annotation.
	Comment string

	// OriginalSourceFile references the file this item was converted from.
	OriginalSourceFile string
	// OriginalValue is the value before translation, used to regenerate templates.
	OriginalValue string
	// OriginalSourceLine is the line the item was read from. Diagnostics only.
	OriginalSourceLine int

	// Section is the ISL section the item was read from, if any.
	Section string

	// Po is set for items read from a PO or POT file.
	Po *PoMetadata
}

// PoMetadata carries what only a PO reader can know about an item.
type PoMetadata struct {
	// RawComments is the comment block exactly as read, markers and blank lines included.
	// Every line, including the last, ends in "\n".
	RawComments string
	// Fuzzy is set when a "#," flags line contained "fuzzy".
	Fuzzy bool
}

// IsPo reports whether the item was read from a PO or POT file.
func (i Item) IsPo() bool {
	return i.Po != nil
}

// Fuzzy reports whether the item was flagged fuzzy in its PO source.
func (i Item) Fuzzy() bool {
	return i.Po != nil && i.Po.Fuzzy
}

// Node is the unit a keyed resource [Store] reads and writes.
//
// Value is either a string or an opaque payload such as []byte.
type Node struct {
	Name    string
	Value   any
	Comment string
}

// FromNode converts a store node into an Item.
//
// Only text payloads can be carried by the item model; anything else reports
// [ErrUnsupportedValueType].
func FromNode(n Node) (Item, error) {
	switch v := n.Value.(type) {
	case string:
		return Item{Name: n.Name, Value: v, Comment: n.Comment}, nil
	case []byte:
		return Item{}, fmt.Errorf("%w: binary data in %q not handled for resource conversion", ErrUnsupportedValueType, n.Name)
	case nil:
		return Item{}, fmt.Errorf("%w: %q has no value", ErrUnsupportedValueType, n.Name)
	default:
		return Item{}, fmt.Errorf("%w: %T in %q not handled for resource conversion", ErrUnsupportedValueType, v, n.Name)
	}
}

// Node returns the store node for the item.
func (i Item) Node() Node {
	return Node{Name: i.Name, Value: i.Value, Comment: i.Comment}
}

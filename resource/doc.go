// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package resource holds the in-memory model shared by every reader and writer:
the translatable [Item], the ordered [Set] a reader produces, the [Node] a
keyed resource [Store] exchanges, and the [Options] that control how much
comment metadata a writer emits.

# Items

An Item is created by a reader while it scans one input file and is handed to
exactly one writer. Writers only read items; nothing mutates an item after it
has been added to a Set.

Items read from a PO file carry [PoMetadata]. Its RawComments field holds the
comment block exactly as it appeared in the source so a PO writer can echo it
byte for byte.

# Sets

A Set maps item names to items and remembers the order in which names were
first seen, so writers produce deterministic output. Adding an item with an
empty name, or a name that is already present, reports [ErrEmptyKey] or
[ErrDuplicateKey]. Both are recoverable: readers log them and carry on.
*/
package resource

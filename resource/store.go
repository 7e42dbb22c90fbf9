// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package resource

import "io"

// Store is a keyed resource serializer supplied from outside the PO and ISL
// engines, such as a resx or YAML file.
type Store interface {
	// ReadAll returns every node in source order.
	ReadAll() ([]Node, error)
	// Write adds one node to the output.
	Write(node Node) error
}

// Reader parses one complete input stream into a Set.
type Reader interface {
	Read(r io.Reader) (*Set, error)
}

// Writer receives items one at a time. Close flushes any buffered output but
// does not close the underlying stream.
type Writer interface {
	AddResource(item Item) error
	Close() error
}

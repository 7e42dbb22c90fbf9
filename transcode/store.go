// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package transcode

import (
	"errors"
	"io"

	"github.com/rs/zerolog/log"

	"codeberg.org/resgenex/resgenex/resource"
)

// storeReader reads a keyed resource store into a Set.
type storeReader struct {
	sys  string
	open func(io.Reader) resource.Store
}

func (s storeReader) Read(r io.Reader) (*resource.Set, error) {
	logger := log.With().Str("sys", s.sys).Logger()

	nodes, err := s.open(r).ReadAll()
	if err != nil {
		return nil, err
	}

	set := resource.NewSet()

	for _, node := range nodes {
		item, err := resource.FromNode(node)
		if err != nil {
			return nil, err
		}

		err = set.Add(item)

		switch {
		case err == nil:
		case errors.Is(err, resource.ErrEmptyKey):
			logger.Warn().Msg("Dropping resource with empty name")
		case errors.Is(err, resource.ErrDuplicateKey):
			logger.Warn().Str("name", item.Name).Msg("Duplicate name, keeping the later resource")
		default:
			return nil, err
		}
	}

	return set, nil
}

// closingStore is a store that writes its output on Close.
type closingStore interface {
	resource.Store
	io.Closer
}

// storeWriter feeds items into a keyed resource store.
type storeWriter struct {
	store closingStore
	opts  resource.Options
}

func (s storeWriter) AddResource(item resource.Item) error {
	node := item.Node()
	if !s.opts.OwnComments() {
		node.Comment = ""
	}

	return s.store.Write(node)
}

func (s storeWriter) Close() error {
	return s.store.Close()
}

// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package yamlres stores resources as an ordered YAML mapping.
//
// Each key maps either to its value or to a mapping with value and comment:
//
//	Greeting: Hello
//	Farewell:
//	  value: Goodbye
//	  comment: Shown on exit
package yamlres

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"codeberg.org/resgenex/resgenex/resource"
)

var errNotReadable = errors.New("yaml store opened for writing")

// entry is one value in its long form.
type entry struct {
	Value   string `yaml:"value"`
	Comment string `yaml:"comment,omitempty"`
}

// UnmarshalYAML accepts both a bare scalar and the long form.
func (e *entry) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
	case string:
		e.Value = v
	case map[string]any:
		e.Value = scalar(v["value"])
		e.Comment = scalar(v["comment"])
	case yaml.MapSlice:
		m := v.ToMap()
		e.Value = scalar(m["value"])
		e.Comment = scalar(m["comment"])
	case []any:
		return fmt.Errorf("%w: sequence values are not supported", resource.ErrUnsupportedValueType)
	default:
		e.Value = scalar(v)
	}

	return nil
}

func scalar(v any) string {
	if v == nil {
		return ""
	}

	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}

// Store is a YAML resource file opened either for reading or for writing.
type Store struct {
	r     io.Reader
	w     io.Writer
	items yaml.MapSlice
}

// NewReader returns a Store reading from r.
func NewReader(r io.Reader) *Store {
	return &Store{r: r}
}

// NewWriter returns a Store writing to w. The document is written on Close.
func NewWriter(w io.Writer) *Store {
	return &Store{w: w}
}

// ReadAll decodes the mapping in document order.
func (s *Store) ReadAll() ([]resource.Node, error) {
	if s.r == nil {
		return nil, errNotReadable
	}

	data, err := io.ReadAll(s.r)
	if err != nil {
		return nil, err
	}

	var order yaml.MapSlice
	if err := yaml.Unmarshal(data, &order); err != nil {
		return nil, resource.NewFormatError(0, "invalid YAML resource file: %v", err)
	}

	var entries map[string]entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, resource.NewFormatError(0, "invalid YAML resource file: %v", err)
	}

	nodes := make([]resource.Node, 0, len(order))

	for _, item := range order {
		name := fmt.Sprint(item.Key)
		e := entries[name]

		nodes = append(nodes, resource.Node{Name: name, Value: e.Value, Comment: e.Comment})
	}

	return nodes, nil
}

// Write queues a node. Only string values are supported.
func (s *Store) Write(node resource.Node) error {
	value, ok := node.Value.(string)
	if !ok {
		return fmt.Errorf("%w: %T in %q", resource.ErrUnsupportedValueType, node.Value, node.Name)
	}

	item := yaml.MapItem{Key: node.Name, Value: value}
	if node.Comment != "" {
		item.Value = entry{Value: value, Comment: node.Comment}
	}

	s.items = append(s.items, item)

	return nil
}

// Close writes the queued mapping. The underlying writer is left open.
func (s *Store) Close() error {
	if s.w == nil || len(s.items) == 0 {
		return nil
	}

	out, err := yaml.MarshalWithOptions(s.items, yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return err
	}

	_, err = s.w.Write(out)

	return err
}

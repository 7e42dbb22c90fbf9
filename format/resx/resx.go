// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package resx reads and writes .NET XML resource files.
package resx

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"codeberg.org/resgenex/resgenex/resource"
)

const (
	byteArrayType = "System.Byte[]"
	fileRefType   = "System.Resources.ResXFileRef"
	stringType    = "System.String"
)

var errNotReadable = errors.New("resx store opened for writing")

// Opaque is a serialized .NET object the store cannot interpret. It is kept
// so that it can be written back unchanged.
type Opaque struct {
	Type     string
	MimeType string
	Value    string
}

type document struct {
	XMLName xml.Name `xml:"root"`
	Headers []header `xml:"resheader"`
	Data    []data   `xml:"data"`
}

type header struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type data struct {
	Name     string `xml:"name,attr"`
	Type     string `xml:"type,attr,omitempty"`
	MimeType string `xml:"mimetype,attr,omitempty"`
	Space    string `xml:"http://www.w3.org/XML/1998/namespace space,attr,omitempty"`
	Value    string `xml:"value"`
	Comment  string `xml:"comment,omitempty"`
}

var defaultHeaders = []header{
	{Name: "resmimetype", Value: "text/microsoft-resx"},
	{Name: "version", Value: "2.0"},
	{Name: "reader", Value: "System.Resources.ResXResourceReader, System.Windows.Forms, Version=4.0.0.0, Culture=neutral, PublicKeyToken=b77a5c561934e089"},
	{Name: "writer", Value: "System.Resources.ResXResourceWriter, System.Windows.Forms, Version=4.0.0.0, Culture=neutral, PublicKeyToken=b77a5c561934e089"},
}

// Store is a resx file opened either for reading or for writing.
type Store struct {
	r        io.Reader
	w        io.Writer
	basePath string
	data     []data
}

// NewReader returns a Store reading from r. Relative file references are
// resolved against basePath, or the working directory when it is empty.
func NewReader(r io.Reader, basePath string) *Store {
	return &Store{r: r, basePath: basePath}
}

// NewWriter returns a Store writing to w. The document is written on Close.
func NewWriter(w io.Writer) *Store {
	return &Store{w: w}
}

// ReadAll decodes every data element in document order.
func (s *Store) ReadAll() ([]resource.Node, error) {
	if s.r == nil {
		return nil, errNotReadable
	}

	var doc document

	if err := xml.NewDecoder(s.r).Decode(&doc); err != nil {
		return nil, resource.NewFormatError(0, "invalid resx document: %v", err)
	}

	logger := log.With().Str("sys", "resx").Logger()
	nodes := make([]resource.Node, 0, len(doc.Data))

	for _, d := range doc.Data {
		value, err := s.decode(d)
		if err != nil {
			return nil, fmt.Errorf("resource %q: %w", d.Name, err)
		}

		nodes = append(nodes, resource.Node{Name: d.Name, Value: value, Comment: d.Comment})
	}

	logger.Debug().Int("count", len(nodes)).Msg("Read resx data elements")

	return nodes, nil
}

func (s *Store) decode(d data) (any, error) {
	switch {
	case strings.HasPrefix(d.Type, byteArrayType):
		return decodeBase64(d.Value)
	case strings.HasPrefix(d.Type, fileRefType):
		return s.resolveFileRef(d.Value)
	case d.Type == "" && d.MimeType == "", strings.HasPrefix(d.Type, stringType):
		return d.Value, nil
	default:
		return Opaque{Type: d.Type, MimeType: d.MimeType, Value: d.Value}, nil
	}
}

// resolveFileRef loads the file named by a "path;type[;encoding]" reference.
// Text files become strings, everything else a byte slice.
func (s *Store) resolveFileRef(ref string) (any, error) {
	parts := strings.Split(ref, ";")
	if len(parts) < 2 {
		return nil, resource.NewFormatError(0, "invalid file reference %q", ref)
	}

	path := filepath.FromSlash(strings.ReplaceAll(strings.TrimSpace(parts[0]), `\`, "/"))
	if !filepath.IsAbs(path) && s.basePath != "" {
		path = filepath.Join(s.basePath, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(strings.TrimSpace(parts[1]), stringType) {
		return content, nil
	}

	text, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), content)
	if err != nil {
		return nil, err
	}

	return string(text), nil
}

// Write queues a node. Strings, byte slices and Opaque values are supported.
func (s *Store) Write(node resource.Node) error {
	d := data{Name: node.Name, Comment: node.Comment}

	switch v := node.Value.(type) {
	case string:
		d.Space = "preserve"
		d.Value = v
	case []byte:
		d.Type = byteArrayType + ", mscorlib"
		d.Value = base64.StdEncoding.EncodeToString(v)
	case Opaque:
		d.Type = v.Type
		d.MimeType = v.MimeType
		d.Value = v.Value
	default:
		return fmt.Errorf("%w: %T in %q", resource.ErrUnsupportedValueType, node.Value, node.Name)
	}

	s.data = append(s.data, d)

	return nil
}

// Close writes the queued document. The underlying writer is left open.
func (s *Store) Close() error {
	if s.w == nil {
		return nil
	}

	if _, err := io.WriteString(s.w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(s.w)
	enc.Indent("", "  ")

	if err := enc.Encode(document{Headers: defaultHeaders, Data: s.data}); err != nil {
		return err
	}

	if err := enc.Close(); err != nil {
		return err
	}

	_, err := io.WriteString(s.w, "\n")

	return err
}

func decodeBase64(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			return -1
		}

		return r
	}, s)

	b, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, resource.NewFormatError(0, "invalid base64 payload: %v", err)
	}

	return b, nil
}

// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package isl

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"codeberg.org/resgenex/resgenex/resource"
)

const maxLineLength = 1 << 20

// Reader parses InnoSetup message files.
type Reader struct {
	enc encoding.Encoding
}

// NewReader returns a Reader decoding input from enc. A UTF-8 byte order
// mark in the input takes precedence. A nil enc means Windows-1252.
func NewReader(enc encoding.Encoding) *Reader {
	if enc == nil {
		enc = charmap.Windows1252
	}

	return &Reader{enc: enc}
}

// Read parses a complete message file.
func (r *Reader) Read(in io.Reader) (*resource.Set, error) {
	scanner := bufio.NewScanner(transform.NewReader(in, unicode.BOMOverride(r.enc.NewDecoder())))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	p := newParser()

	for scanner.Scan() {
		p.feed(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return p.set, nil
}

type parser struct {
	comment strings.Builder
	section string
	line    int

	set    *resource.Set
	logger zerolog.Logger
}

func newParser() *parser {
	return &parser{
		set:    resource.NewSet(),
		logger: log.With().Str("sys", "isl").Logger(),
	}
}

func (p *parser) feed(raw string) {
	p.line++

	line := strings.TrimSpace(raw)

	switch {
	case line == "":
		if p.comment.Len() > 0 {
			p.comment.WriteString("\n")
		}

	case line[0] == ';':
		p.comment.WriteString(strings.TrimPrefix(line[1:], " "))
		p.comment.WriteString("\n")

	case line[0] == '[':
		p.comment.Reset()

		name := line[1:]
		if end := strings.IndexByte(name, ']'); end >= 0 {
			name = name[:end]
		}

		p.section = strings.TrimSpace(name)

	default:
		key, value, found := strings.Cut(line, "=")
		if !found {
			p.logger.Debug().Int("line", p.line).Msg("Ignoring line without '='")

			return
		}

		p.commit(strings.TrimSpace(key), Unescape(value))
		p.comment.Reset()
	}
}

func (p *parser) commit(name, value string) {
	err := p.set.Add(resource.Item{
		Name:               name,
		Value:              value,
		Comment:            strings.TrimRight(p.comment.String(), "\n"),
		Section:            p.section,
		OriginalSourceLine: p.line,
	})

	switch {
	case err == nil:
	case errors.Is(err, resource.ErrEmptyKey):
		p.logger.Warn().Int("line", p.line).Msg("Dropping entry with empty name")
	case errors.Is(err, resource.ErrDuplicateKey):
		p.logger.Warn().Int("line", p.line).Str("name", name).Msg("Duplicate name, keeping the later entry")
	default:
		p.logger.Warn().Err(err).Int("line", p.line).Msg("Dropping entry")
	}
}

// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"codeberg.org/resgenex/resgenex/resource"
)

// maxLineLength bounds a single physical line.
const maxLineLength = 4 << 20

const originalMessagePrefix = "#. Original message text:"

// originalContinuation starts every line after the first of a multi-line original message.
const originalContinuation = "#.    "

type state int

const (
	stateIdle state = iota
	stateMsgID
	stateMsgStr
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateMsgID:
		return "msgid"
	case stateMsgStr:
		return "msgstr"
	default:
		return "unknown"
	}
}

// entry is the msgid/msgstr pair being assembled.
type entry struct {
	msgid    string
	msgstr   string
	comments string
	fuzzy    bool
	line     int
}

// Reader parses PO and POT files.
type Reader struct{}

// NewReader returns a PO reader. The same reader handles POT templates.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses a complete PO file. A leading UTF-8 BOM is skipped.
func (*Reader) Read(r io.Reader) (*resource.Set, error) {
	scanner := bufio.NewScanner(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	p := newParser()

	for scanner.Scan() {
		if err := p.feed(scanner.Text()); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if err := p.finish(); err != nil {
		return nil, err
	}

	return p.set, nil
}

// parser is the line-driven state machine behind Reader.
type parser struct {
	state    state
	pending  entry
	comments strings.Builder
	fuzzy    bool
	line     int

	set    *resource.Set
	logger zerolog.Logger
}

func newParser() *parser {
	return &parser{
		set:    resource.NewSet(),
		logger: log.With().Str("sys", "po").Logger(),
	}
}

// feed advances the state machine by one physical line.
func (p *parser) feed(raw string) error {
	p.line++

	line := strings.TrimSpace(raw)

	switch {
	case line == "":
		if p.comments.Len() > 0 {
			p.comments.WriteString("\n")
		}

	case line[0] == '#':
		p.comments.WriteString(line)
		p.comments.WriteString("\n")

		if strings.HasPrefix(line, "#,") && strings.Contains(line, "fuzzy") {
			p.fuzzy = true
		}

	case strings.HasPrefix(line, "msgid "):
		switch p.state {
		case stateMsgID:
			return resource.NewFormatError(p.line, "two consecutive msgid lines")
		case stateMsgStr:
			p.commit()
		}

		text, err := p.quoted(line[len("msgid "):])
		if err != nil {
			return err
		}

		p.pending = entry{
			msgid:    text,
			comments: p.comments.String(),
			fuzzy:    p.fuzzy,
			line:     p.line,
		}
		p.comments.Reset()
		p.fuzzy = false
		p.state = stateMsgID

	case strings.HasPrefix(line, "msgstr "):
		switch p.state {
		case stateIdle:
			return resource.NewFormatError(p.line, "msgstr without msgid")
		case stateMsgStr:
			p.logger.Warn().Int("line", p.line).Str("msgid", p.pending.msgid).Msg("Repeated msgstr, keeping the later one")
		}

		text, err := p.quoted(line[len("msgstr "):])
		if err != nil {
			return err
		}

		p.pending.msgstr = text
		p.state = stateMsgStr

	case line[0] == '"':
		text, err := p.quoted(line)
		if err != nil {
			return err
		}

		switch p.state {
		case stateMsgID:
			p.pending.msgid += text
		case stateMsgStr:
			p.pending.msgstr += text
		default:
			return resource.NewFormatError(p.line, "string continuation without msgid or msgstr")
		}

	default:
		return resource.NewFormatError(p.line, "unexpected data %q", line)
	}

	return nil
}

// finish handles end of input.
func (p *parser) finish() error {
	switch p.state {
	case stateMsgID:
		return resource.NewFormatError(p.line, "end of file while expecting msgstr")
	case stateMsgStr:
		p.commit()
	}

	p.state = stateIdle

	return nil
}

// quoted returns the unescaped text between the first and the last double quote.
func (p *parser) quoted(s string) (string, error) {
	first := strings.IndexByte(s, '"')
	last := strings.LastIndexByte(s, '"')

	if first < 0 || first == last {
		return "", resource.NewFormatError(p.line, "unterminated string literal")
	}

	return Unescape(s[first+1 : last]), nil
}

func (p *parser) commit() {
	e := p.pending
	p.pending = entry{}
	p.state = stateIdle

	item := resource.Item{
		Name:               e.msgid,
		Value:              e.msgstr,
		OriginalSourceLine: e.line,
		Po: &resource.PoMetadata{
			RawComments: e.comments,
			Fuzzy:       e.fuzzy,
		},
	}
	item.Comment, item.OriginalValue, item.OriginalSourceFile = splitComments(e.comments)

	err := p.set.Add(item)

	switch {
	case err == nil:
	case errors.Is(err, resource.ErrEmptyKey):
		if isHeader(e.msgstr) {
			p.logger.Debug().Int("line", e.line).Msg("Skipping PO header entry")
		} else {
			p.logger.Warn().Int("line", e.line).Msg("Dropping entry with empty msgid")
		}
	case errors.Is(err, resource.ErrDuplicateKey):
		p.logger.Warn().Int("line", e.line).Str("msgid", e.msgid).Msg("Duplicate msgid, keeping the later entry")
	default:
		p.logger.Warn().Err(err).Int("line", e.line).Msg("Dropping entry")
	}
}

func isHeader(msgstr string) bool {
	return strings.Contains(msgstr, "Content-Type:") || strings.Contains(msgstr, "MIME-Version:")
}

// splitComments derives the format-agnostic comment, the original message and
// the first source reference from a raw PO comment block.
func splitComments(raw string) (comment, original, reference string) {
	if raw == "" {
		return "", "", ""
	}

	var (
		commentLines  []string
		originalLines []string
		inOriginal    bool
	)

	for line := range strings.SplitSeq(strings.TrimSuffix(raw, "\n"), "\n") {
		if rest, ok := strings.CutPrefix(line, originalMessagePrefix); ok {
			inOriginal = true

			if rest = strings.TrimPrefix(rest, " "); rest != "" {
				originalLines = append(originalLines, rest)
			}

			continue
		}

		if inOriginal {
			if rest, ok := strings.CutPrefix(line, originalContinuation); ok {
				originalLines = append(originalLines, rest)

				continue
			}

			if line == "#." {
				originalLines = append(originalLines, "")

				continue
			}

			inOriginal = false
		}

		switch {
		case strings.HasPrefix(line, "#:"):
			if reference == "" {
				reference = strings.TrimSpace(line[2:])
			}
		case strings.HasPrefix(line, "#,"), strings.HasPrefix(line, "#|"), strings.HasPrefix(line, "#~"):
		case strings.HasPrefix(line, "#."):
			commentLines = append(commentLines, strings.TrimPrefix(line[2:], " "))
		case strings.HasPrefix(line, "#"):
			commentLines = append(commentLines, strings.TrimPrefix(line[1:], " "))
		default:
			commentLines = append(commentLines, line)
		}
	}

	comment = strings.TrimRight(strings.Join(commentLines, "\n"), "\n")
	original = strings.Join(originalLines, "\n")

	return comment, original, reference
}

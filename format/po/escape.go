// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import "strings"

// crlf is the line terminator PO files are written with unless configured otherwise.
const crlf = "\r\n"

// Escape encodes s as the payload of a quoted PO string.
//
// Every LF ends the current quoted line with `\n"` and opens a new quoted
// line, so a value containing LF becomes several consecutive "..." lines,
// preceded by an empty one. Lines are terminated with CRLF.
func Escape(s string) string {
	return escape(s, crlf)
}

func escape(s, newline string) string {
	var b strings.Builder

	b.Grow(len(s) + len(s)/8)

	if strings.Contains(s, "\n") {
		b.WriteString(`"` + newline + `"`)
	}

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\a':
			b.WriteString(`\a`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n"` + newline + `"`)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// Unescape decodes the payload of one quoted PO line.
//
// Unknown sequences such as `\q` are kept as the two literal characters and a
// trailing lone backslash is kept as is.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)

			continue
		}

		i++

		switch next := s[i]; next {
		case '\\', '"':
			b.WriteByte(next)
		case 'a':
			b.WriteByte('\a')
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte('\\')
			b.WriteByte(next)
		}
	}

	return b.String()
}

// EscapeComment prefixes every line after the first with '#', the marker and
// indent spaces, so that a multi-line text can follow a comment marker.
//
// A zero marker yields plain translator comments. Lines are joined with CRLF.
func EscapeComment(s string, marker byte, indent int) string {
	return escapeComment(s, marker, indent, crlf)
}

func escapeComment(s string, marker byte, indent int, newline string) string {
	prefix := newline + "#"
	if marker != 0 {
		prefix += string(marker)
	}

	prefix += strings.Repeat(" ", indent)

	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.ReplaceAll(s, "\n", prefix)
}

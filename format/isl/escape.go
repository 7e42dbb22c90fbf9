// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package isl

import "strings"

// Escape encodes s as an InnoSetup message value.
//
// LF becomes %n. A literal '%' is doubled unless a digit follows it, which
// keeps %1-style placeholders intact.
func Escape(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\n':
			b.WriteString("%n")
		case c == '%' && (i+1 == len(s) || !isDigit(s[i+1])):
			b.WriteString("%%")
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// Unescape decodes an InnoSetup message value.
//
// %% and %n are decoded; %1-style placeholders, unknown %X sequences and a
// trailing '%' are copied unchanged.
func Unescape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' || i == len(s)-1 {
			b.WriteByte(c)

			continue
		}

		switch s[i+1] {
		case '%':
			b.WriteByte('%')
			i++
		case 'n':
			b.WriteByte('\n')
			i++
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// EscapeComment continues a multi-line text on further ';' comment lines,
// each indented by indent spaces.
func EscapeComment(s string, indent int) string {
	return escapeComment(s, indent, crlf)
}

func escapeComment(s string, indent int, newline string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.ReplaceAll(s, "\n", newline+";"+strings.Repeat(" ", indent))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

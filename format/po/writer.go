// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import (
	"bufio"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"codeberg.org/resgenex/resgenex/resource"
)

// DefaultGenerator names the program in headers when WriterConfig.Generator is empty.
const DefaultGenerator = "resgenex"

var (
	csharpPlaceholderRegexp    = regexp.MustCompile(`\{[0-9]+\}`)
	innoSetupPlaceholderRegexp = regexp.MustCompile(`%[0-9]`)
)

// WriterConfig configures a Writer.
type WriterConfig struct {
	Options resource.Options

	// SourceFile is referenced in the header and, under the full comment
	// policy, used as the source reference of items that carry none.
	SourceFile string

	// BlankValues writes a POT template: every msgstr is empty.
	BlankValues bool

	// Language is written as the Language header when set.
	Language string

	// Newline terminates every line. Defaults to CRLF.
	Newline string

	// Generator names the program and version in the header.
	Generator string
}

// Writer emits PO or POT files.
type Writer struct {
	w   *bufio.Writer
	cfg WriterConfig

	headerWritten bool
	err           error
}

// NewWriter returns a Writer that writes to w. Nothing is written until the
// first item is added.
func NewWriter(w io.Writer, cfg WriterConfig) *Writer {
	if cfg.Newline == "" {
		cfg.Newline = crlf
	}

	if cfg.Generator == "" {
		cfg.Generator = DefaultGenerator
	}

	return &Writer{
		w:   bufio.NewWriter(w),
		cfg: cfg,
	}
}

// AddResource writes one entry, preceded by the file header for the first one.
func (w *Writer) AddResource(item resource.Item) error {
	if !w.headerWritten {
		w.writeHeader()
		w.headerWritten = true
	}

	if w.cfg.Options.FormatFlags && !item.IsPo() {
		if flags := formatFlags(item); flags != "" {
			w.line("#, " + flags)
		}
	}

	if w.cfg.Options.OwnComments() {
		if item.IsPo() {
			w.writeRaw(item.Po.RawComments)
		} else {
			w.writeComments(item)
		}
	}

	value := item.Value
	if w.cfg.BlankValues {
		value = ""
	}

	w.line(`msgid "` + escape(item.Name, w.cfg.Newline) + `"`)
	w.line(`msgstr "` + escape(value, w.cfg.Newline) + `"`)
	w.line("")

	return w.err
}

// Close flushes buffered output. The underlying writer is left open.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}

	return w.w.Flush()
}

func (w *Writer) writeHeader() {
	w.line("# This file was generated by " + w.cfg.Generator)
	w.line("#")

	if w.cfg.SourceFile != "" {
		w.line("# Converted to PO from:")
		w.line("#   " + sourceReference(w.cfg.SourceFile))
		w.line("#")
	}

	w.line("#, fuzzy")
	w.line(`msgid ""`)
	w.line(`msgstr ""`)
	w.line(`"MIME-Version: 1.0\n"`)
	w.line(`"Content-Type: text/plain; charset=UTF-8\n"`)
	w.line(`"Content-Transfer-Encoding: 8bit\n"`)

	if w.cfg.Language != "" {
		w.line(`"Language: ` + escape(w.cfg.Language, w.cfg.Newline) + `\n"`)
	}

	w.line(`"X-Generator: ` + escape(w.cfg.Generator, w.cfg.Newline) + `\n"`)
	w.line("")
}

// writeRaw echoes a comment block read from a PO file.
func (w *Writer) writeRaw(raw string) {
	if raw == "" {
		return
	}

	w.write(strings.ReplaceAll(raw, "\n", w.cfg.Newline))
}

func (w *Writer) writeComments(item resource.Item) {
	var original, reference string

	if w.cfg.Options.GeneratedComments() {
		original = item.OriginalValue
		if original == "" {
			original = item.Value
		}

		reference = item.OriginalSourceFile
		if reference == "" && w.cfg.SourceFile != "" {
			reference = sourceReference(w.cfg.SourceFile)
		}
	}

	if item.Comment != "" {
		w.line("#. " + escapeComment(item.Comment, '.', 1, w.cfg.Newline))
	}

	if reference != "" {
		w.line("#: " + escapeComment(reference, ':', 1, w.cfg.Newline))
	}

	if original == "" {
		return
	}

	if item.Comment != "" {
		w.line("#. ")
	}

	if strings.ContainsAny(original, "\r\n") {
		w.line(originalMessagePrefix + " ")
		w.line(originalContinuation + escapeComment(original, '.', 4, w.cfg.Newline))
	} else {
		w.line(originalMessagePrefix + " " + original)
	}
}

func (w *Writer) line(s string) {
	w.write(s + w.cfg.Newline)
}

func (w *Writer) write(s string) {
	if w.err != nil {
		return
	}

	_, w.err = w.w.WriteString(s)
}

// formatFlags returns the gettext flags matching the placeholders in item.
func formatFlags(item resource.Item) string {
	var flags []string

	text := item.Name + "\n" + item.Value

	if csharpPlaceholderRegexp.MatchString(text) {
		flags = append(flags, "csharp-format")
	}

	if innoSetupPlaceholderRegexp.MatchString(text) {
		flags = append(flags, "innosetup-format")
	}

	return strings.Join(flags, ", ")
}

// sourceReference turns a file path into a portable "#:" reference.
func sourceReference(path string) string {
	return filepath.ToSlash(strings.TrimPrefix(path, filepath.VolumeName(path)))
}

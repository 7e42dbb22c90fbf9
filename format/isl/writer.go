// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package isl

import (
	"bufio"
	"io"
	"os/user"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"codeberg.org/resgenex/resgenex/resource"
)

const crlf = "\r\n"

// DefaultGenerator names the program in headers when WriterConfig.Generator is empty.
const DefaultGenerator = "resgenex"

// WriterConfig configures a Writer.
type WriterConfig struct {
	Options resource.Options

	// SourceFile is referenced in the header when set.
	SourceFile string

	// Author replaces the detected user name on the "By:" line.
	Author string

	// DefaultSection is written for items that carry no section of their own.
	DefaultSection string

	// Encoding of the output. Defaults to Windows-1252.
	Encoding encoding.Encoding

	// Newline terminates every line. Defaults to CRLF.
	Newline string

	// Generator names the program and version in the header.
	Generator string
}

// Writer emits InnoSetup message files.
type Writer struct {
	enc *transform.Writer
	w   *bufio.Writer
	cfg WriterConfig

	headerWritten bool
	section       string
	err           error
}

// NewWriter returns a Writer that encodes its output to w. Runes the code
// page cannot represent are replaced.
func NewWriter(w io.Writer, cfg WriterConfig) *Writer {
	if cfg.Encoding == nil {
		cfg.Encoding = charmap.Windows1252
	}

	if cfg.Newline == "" {
		cfg.Newline = crlf
	}

	if cfg.Generator == "" {
		cfg.Generator = DefaultGenerator
	}

	enc := transform.NewWriter(w, encoding.ReplaceUnsupported(cfg.Encoding.NewEncoder()))

	return &Writer{
		enc: enc,
		w:   bufio.NewWriter(enc),
		cfg: cfg,
	}
}

// AddResource writes one entry, preceded by the file header for the first one.
func (w *Writer) AddResource(item resource.Item) error {
	if !w.headerWritten {
		w.writeHeader()
		w.headerWritten = true
	}

	section := item.Section
	if section == "" {
		section = w.cfg.DefaultSection
	}

	if section != "" && section != w.section {
		if w.section != "" {
			w.line("")
		}

		w.line("[" + section + "]")
		w.section = section
	}

	if item.Comment != "" && w.cfg.Options.OwnComments() {
		w.line("; " + escapeComment(item.Comment, 1, w.cfg.Newline))
	}

	w.line(item.Name + "=" + Escape(item.Value))

	return w.err
}

// Close flushes buffered and encoder output. The underlying writer is left open.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}

	if err := w.w.Flush(); err != nil {
		return err
	}

	return w.enc.Close()
}

func (w *Writer) writeHeader() {
	w.line("; This file was generated by " + w.cfg.Generator)
	w.line(";")

	if w.cfg.SourceFile != "" {
		w.line("; Converted to .isl from:")
		w.line(";   " + filepath.ToSlash(w.cfg.SourceFile))
		w.line(";")
	}

	author := w.cfg.Author
	if author == "" {
		author = currentUser() + " <EMAIL@ADDRESS>"
	}

	w.line("; By:")
	w.line(";    " + author)
	w.line("; =======")
	w.line("")
	w.line("")
}

func (w *Writer) line(s string) {
	if w.err != nil {
		return
	}

	_, w.err = w.w.WriteString(s + w.cfg.Newline)
}

// currentUser returns the login name without a Windows domain prefix.
func currentUser() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "NAME"
	}

	name := u.Username
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		name = name[i+1:]
	}

	return name
}

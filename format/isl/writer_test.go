// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package isl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"codeberg.org/resgenex/resgenex/resource"
)

func write(t *testing.T, cfg WriterConfig, items ...resource.Item) []byte {
	t.Helper()

	var buf bytes.Buffer

	w := NewWriter(&buf, cfg)
	for _, item := range items {
		require.NoError(t, w.AddResource(item))
	}

	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestWriter_Header(t *testing.T) {
	t.Parallel()

	out := write(t, WriterConfig{SourceFile: "po/de.po", Author: "Jane Doe <jane@example.com>", Newline: "\n"},
		resource.Item{Name: "A", Value: "b"})

	expected := `; This file was generated by resgenex
;
; Converted to .isl from:
;   po/de.po
;
; By:
;    Jane Doe <jane@example.com>
; =======


A=b
`
	assert.Equal(t, expected, string(out))
}

func TestWriter_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, write(t, WriterConfig{}))
}

func TestWriter_DetectedUser(t *testing.T) {
	t.Parallel()

	out := string(write(t, WriterConfig{}, resource.Item{Name: "A", Value: "b"}))
	assert.Contains(t, out, "; By:\r\n;    ")
	assert.Contains(t, out, " <EMAIL@ADDRESS>\r\n; =======\r\n")
}

func TestWriter_Items(t *testing.T) {
	t.Parallel()

	items := []resource.Item{
		{Name: "LanguageName", Value: "Deutsch", Section: "LangOptions"},
		{Name: "Title", Value: "Setup %1\n50%", Comment: "window\ntitle", Section: "Messages"},
		{Name: "Extra", Value: "x"},
	}

	cfg := WriterConfig{Author: "me", Newline: "\n", DefaultSection: "CustomMessages"}
	out := string(write(t, cfg, items...))

	_, entries, found := strings.Cut(out, "; =======\n\n\n")
	require.True(t, found)

	expected := `[LangOptions]
LanguageName=Deutsch

[Messages]
; window
; title
Title=Setup %1%n50%%

[CustomMessages]
Extra=x
`
	assert.Equal(t, expected, entries)

	cfg.Options.Comments = resource.CommentsNone
	out = string(write(t, cfg, items...))
	assert.NotContains(t, out, "; window")
}

func TestWriter_CodePage(t *testing.T) {
	t.Parallel()

	out := write(t, WriterConfig{Author: "me", Encoding: charmap.Windows1252, Newline: "\n"},
		resource.Item{Name: "Size", Value: "Größe"},
		resource.Item{Name: "Kanji", Value: "日本"},
	)

	assert.Contains(t, string(out), "Size=Gr\xf6\xdfe\n")
	assert.Contains(t, string(out), "Kanji=\x1a\x1a\n")

	out = write(t, WriterConfig{Author: "me", Encoding: unicode.UTF8BOM}, resource.Item{Name: "Kanji", Value: "日本"})
	assert.True(t, bytes.HasPrefix(out, []byte("\xEF\xBB\xBF; This file")))
}

func TestWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	items := []resource.Item{
		{Name: "One", Value: "first %1\nsecond", Comment: "note", Section: "Messages"},
		{Name: "Two", Value: "100%", Section: "Messages"},
		{Name: "Three", Value: "", Comment: "multi\nline", Section: "CustomMessages"},
	}

	out := write(t, WriterConfig{SourceFile: "de.po"}, items...)

	set, err := NewReader(nil).Read(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 3, set.Len())

	for _, want := range items {
		got, ok := set.Get(want.Name)
		require.True(t, ok)
		assert.Equal(t, want.Value, got.Value)
		assert.Equal(t, want.Comment, got.Comment)
		assert.Equal(t, want.Section, got.Section)
	}
}

// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/resgenex/resgenex/resource"
)

func read(t *testing.T, input string) (*resource.Set, error) {
	t.Helper()

	return NewReader().Read(strings.NewReader(input))
}

func TestReader_Basic(t *testing.T) {
	t.Parallel()

	input := `# Header comment
#, fuzzy
msgid ""
msgstr ""
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"

# translator note
#. extracted note
#: src/app.cs:12
msgid "Hello"
msgstr "Hallo"

msgid ""
"multi\n"
"line"
msgstr ""
"mehr\n"
"zeilig"
`

	set, err := read(t, input)
	require.NoError(t, err)
	require.Equal(t, []string{"Hello", "multi\nline"}, set.Names())

	hello, _ := set.Get("Hello")
	assert.Equal(t, "Hallo", hello.Value)
	assert.Equal(t, "translator note\nextracted note", hello.Comment)
	assert.Equal(t, "src/app.cs:12", hello.OriginalSourceFile)
	assert.Equal(t, 11, hello.OriginalSourceLine)
	require.True(t, hello.IsPo())
	assert.Equal(t, "# translator note\n#. extracted note\n#: src/app.cs:12\n", hello.Po.RawComments)
	assert.False(t, hello.Fuzzy())

	multi, _ := set.Get("multi\nline")
	assert.Equal(t, "mehr\nzeilig", multi.Value)
	assert.Empty(t, multi.Po.RawComments)
}

func TestReader_BOMAndCRLF(t *testing.T) {
	t.Parallel()

	set, err := read(t, "\uFEFFmsgid \"a\"\r\nmsgstr \"b\"\r\n")
	require.NoError(t, err)

	item, ok := set.Get("a")
	require.True(t, ok)
	assert.Equal(t, "b", item.Value)
}

func TestReader_Duplicate(t *testing.T) {
	t.Parallel()

	set, err := read(t, "msgid \"x\"\nmsgstr \"first\"\n\nmsgid \"y\"\nmsgstr \"y\"\n\nmsgid \"x\"\nmsgstr \"second\"\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, set.Names())

	item, _ := set.Get("x")
	assert.Equal(t, "second", item.Value)
}

func TestParser_DuplicateIsLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	p := newParser()
	p.logger = zerolog.New(&buf)

	for _, line := range []string{`msgid "x"`, `msgstr "first"`, ``, `msgid "x"`, `msgstr "second"`} {
		require.NoError(t, p.feed(line))
	}

	require.NoError(t, p.finish())

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "Duplicate msgid")
	assert.Contains(t, buf.String(), `"line":4`)

	item, _ := p.set.Get("x")
	assert.Equal(t, "second", item.Value)
}

func TestParser_RepeatedMsgstr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	p := newParser()
	p.logger = zerolog.New(&buf)

	for _, line := range []string{`msgid "x"`, `msgstr "first"`, `msgstr "second"`} {
		require.NoError(t, p.feed(line))
	}

	require.NoError(t, p.finish())
	assert.Contains(t, buf.String(), "Repeated msgstr")

	item, ok := p.set.Get("x")
	require.True(t, ok)
	assert.Equal(t, "second", item.Value)
}

func TestReader_EmptyMsgid(t *testing.T) {
	t.Parallel()

	set, err := read(t, "msgid \"\"\nmsgstr \"orphan\"\n")
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestReader_Fuzzy(t *testing.T) {
	t.Parallel()

	set, err := read(t, "#, fuzzy, csharp-format\nmsgid \"a {0}\"\nmsgstr \"b {0}\"\n\nmsgid \"c\"\nmsgstr \"d\"\n")
	require.NoError(t, err)

	a, _ := set.Get("a {0}")
	assert.True(t, a.Fuzzy())
	assert.Empty(t, a.Comment)

	c, _ := set.Get("c")
	assert.False(t, c.Fuzzy())
}

func TestReader_OriginalMessage(t *testing.T) {
	t.Parallel()

	input := `#. Note
#: setup.isl
#.
#. Original message text:
#.    first
#.
#.    third
msgid "key"
msgstr "translated"

#. Original message text: Hello
msgid "Hello"
msgstr ""
`

	set, err := read(t, input)
	require.NoError(t, err)

	key, _ := set.Get("key")
	assert.Equal(t, "Note", key.Comment)
	assert.Equal(t, "setup.isl", key.OriginalSourceFile)
	assert.Equal(t, "first\n\nthird", key.OriginalValue)

	hello, _ := set.Get("Hello")
	assert.Equal(t, "Hello", hello.OriginalValue)
	assert.Empty(t, hello.Comment)
}

func TestReader_FormatErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		line  int
	}{
		{name: "two consecutive msgid", input: "msgid \"a\"\nmsgid \"b\"\n", line: 2},
		{name: "msgstr without msgid", input: "msgstr \"a\"\n", line: 1},
		{name: "continuation without entry", input: "\"dangling\"\n", line: 1},
		{name: "unterminated literal", input: "msgid \"abc\n", line: 1},
		{name: "end of file after msgid", input: "msgid \"a\"\n", line: 1},
		{name: "msgctxt unsupported", input: "msgctxt \"menu\"\nmsgid \"a\"\nmsgstr \"b\"\n", line: 1},
		{name: "plural forms unsupported", input: "msgid \"a\"\nmsgid_plural \"as\"\n", line: 2},
		{name: "garbage", input: "msgid \"a\"\nmsgstr \"b\"\nwhat is this\n", line: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := read(t, tt.input)
			require.ErrorIs(t, err, resource.ErrFormat)

			var formatErr *resource.FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tt.line, formatErr.Line)
		})
	}
}

func TestParser_States(t *testing.T) {
	t.Parallel()

	p := newParser()
	assert.Equal(t, stateIdle, p.state)

	require.NoError(t, p.feed(`msgid "a"`))
	assert.Equal(t, stateMsgID, p.state)

	require.NoError(t, p.feed(`"b"`))
	assert.Equal(t, "ab", p.pending.msgid)

	require.NoError(t, p.feed(`msgstr "x"`))
	assert.Equal(t, stateMsgStr, p.state)

	require.NoError(t, p.feed(`# next`))
	require.NoError(t, p.feed(`msgid "c"`))
	assert.Equal(t, stateMsgID, p.state)
	assert.Equal(t, "# next\n", p.pending.comments)
	assert.Equal(t, 1, p.set.Len())

	require.NoError(t, p.feed(`msgstr ""`))
	require.NoError(t, p.finish())
	assert.Equal(t, stateIdle, p.state)
	assert.Equal(t, []string{"ab", "c"}, p.set.Names())
}

func TestSplitComments(t *testing.T) {
	t.Parallel()

	comment, original, reference := splitComments("#  indented\n#, fuzzy\n#| msgid \"old\"\n#: a.resx\n#: b.resx\n\n")
	assert.Equal(t, " indented", comment)
	assert.Empty(t, original)
	assert.Equal(t, "a.resx", reference)
}

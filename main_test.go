// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/resgenex/resgenex/config"
	"codeberg.org/resgenex/resgenex/resource"
)

/*
These tests install the global logger through the configuration and so do
not run in parallel.
*/

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv(config.ConfigFileEnv, "")

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	return cmd.Execute()
}

func TestRootCmd_DefaultDestination(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "German.isl")
	require.NoError(t, os.WriteFile(source, []byte("[Messages]\r\n; note\r\nTitle=Setup\r\n"), 0o600))

	require.NoError(t, execute(t, "--no-comments", "--log-level", "error", source))

	out, err := os.ReadFile(filepath.Join(dir, "German.po"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "msgid \"Title\"\r\nmsgstr \"Setup\"\r\n")
	assert.NotContains(t, string(out), "note")
}

func TestRootCmd_Flags(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "de.po")
	dest := filepath.Join(dir, "de.pot")
	require.NoError(t, os.WriteFile(source, []byte("msgid \"Files\"\nmsgstr \"{0} Dateien\"\n"), 0o600))

	require.NoError(t, execute(t, "--language", "de", "--log-level", "error", source, dest))

	out, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\"Language: de\\n\"")
	assert.Contains(t, string(out), "msgid \"Files\"\r\nmsgstr \"\"\r\n")
}

func TestRootCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "de.po")
	require.NoError(t, os.WriteFile(source, []byte("msgid \"a\"\nmsgstr \"b\"\n"), 0o600))

	tests := []struct {
		name string
		args []string
		err  error
	}{
		{name: "no arguments", args: nil},
		{name: "too many arguments", args: []string{source, "a.isl", "b.isl"}},
		{name: "exclusive comment flags", args: []string{"--no-comments", "--source-comments-only", source}},
		{name: "unsupported destination", args: []string{source, filepath.Join(dir, "de.txt")}, err: resource.ErrUnsupportedFormat},
		{name: "missing source", args: []string{filepath.Join(dir, "missing.po"), filepath.Join(dir, "x.isl")}, err: os.ErrNotExist},
		{name: "invalid code page", args: []string{"--code-page", "1", source}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			require.Error(t, err)

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
			}
		})
	}
}

// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"codeberg.org/resgenex/resgenex/resource"
)

/*
The loading tests set environment variables and so cannot run in parallel.
*/

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "resgenex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")

	var cfg Config
	require.NoError(t, cfg.LoadConfig(""))
	require.NoError(t, cfg.validateAndSet())

	opts := cfg.TranscodeOptions()
	assert.Equal(t, resource.CommentsFull, opts.Resource.Comments)
	assert.False(t, opts.Resource.FormatFlags)
	assert.Equal(t, "\r\n", opts.PONewline)
	assert.Equal(t, "\r\n", opts.ISLNewline)
	assert.Equal(t, charmap.Windows1252, opts.ISLEncoding)
	assert.Equal(t, "CustomMessages", opts.ISLSection)
	assert.Equal(t, "resgenex "+BuildVersion, opts.Generator)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, `
comments:
  policy: source-only
  formatFlags: true
po:
  language: de-de
  lineEnding: lf
isl:
  codePage: 1251
  author: Translator
`)

	t.Setenv(ConfigFileEnv, path)
	t.Setenv("RESGENEX_ISL_AUTHOR", "From Env")
	t.Setenv("RESGENEX_LOG_OUTPUTS", "stdout, ,stderr")

	var cfg Config
	require.NoError(t, cfg.LoadConfig(""))
	require.NoError(t, cfg.validateAndSet())

	assert.Equal(t, resource.CommentsSourceOnly, cfg.Options().Comments)
	assert.True(t, cfg.Options().FormatFlags)
	assert.Equal(t, "de-DE", cfg.PO.Language)
	assert.Equal(t, "From Env", cfg.ISL.Author)
	assert.Equal(t, []string{"stdout", "stderr"}, cfg.Log.Outputs)

	opts := cfg.TranscodeOptions()
	assert.Equal(t, "\n", opts.PONewline)
	assert.Equal(t, charmap.Windows1251, opts.ISLEncoding)
}

func TestLoadConfig_FlagBeatsEnvFile(t *testing.T) {
	envPath := writeConfig(t, "paths:\n  useSourcePath: false\n")
	flagPath := writeConfig(t, "paths:\n  useSourcePath: true\n")

	t.Setenv(ConfigFileEnv, envPath)

	var cfg Config
	require.NoError(t, cfg.LoadConfig(flagPath))
	assert.True(t, cfg.Paths.UseSourcePath)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		loadErr bool
	}{
		{name: "unknown key", yaml: "comments:\n  nonsense: true\n", loadErr: true},
		{name: "bad bool in env", env: map[string]string{"RESGENEX_VERIFY": "maybe"}, loadErr: true},
		{name: "bad policy", yaml: "comments:\n  policy: some\n"},
		{name: "bad code page", env: map[string]string{"RESGENEX_ISL_CODEPAGE": "12345"}},
		{name: "bad line ending", yaml: "po:\n  lineEnding: cr\n"},
		{name: "bad language", yaml: "po:\n  language: \"!!\"\n"},
		{name: "bad section", yaml: "isl:\n  defaultSection: \"[x]\"\n"},
		{name: "bad log level", env: map[string]string{"RESGENEX_LOG_LEVEL": "verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigFileEnv, writeConfig(t, tt.yaml))

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var cfg Config

			err := cfg.LoadConfig("")
			if tt.loadErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.Error(t, cfg.validateAndSet())
		})
	}
}

func TestReadEnv_NotAStruct(t *testing.T) {
	t.Parallel()

	value := 3
	require.ErrorIs(t, readEnv(&value), errExpectedPointerToStruct)
	require.ErrorIs(t, readEnv(Config{}), errExpectedPointerToStruct)
}

func TestBuildInfo_Revision(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", (&buildInfo{}).Revision())
	assert.Equal(t, "2025-01-02-0123abcd+dirty",
		(&buildInfo{VcsRevision: "0123abcdef", VcsTime: "2025-01-02T03:04:05Z", VcsModified: true}).Revision())
}

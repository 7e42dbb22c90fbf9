// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "codeberg.org/resgenex/resgenex/format/isl"

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Comments.Policy = "full"
	cfg.Comments.FormatFlags = false

	cfg.Paths.UseSourcePath = false

	cfg.PO.Language = ""
	cfg.PO.LineEnding = "crlf"

	cfg.ISL.CodePage = isl.DefaultCodePage
	cfg.ISL.Author = ""
	cfg.ISL.DefaultSection = "CustomMessages"
	cfg.ISL.LineEnding = "crlf"

	cfg.Transcode.Verify = false

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}

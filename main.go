// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
resgenex converts translation resources between gettext PO/POT, InnoSetup
ISL, .NET resx and YAML files, keeping comments where the target format can
carry them.
*/
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/resgenex/resgenex/config"
	"codeberg.org/resgenex/resgenex/core/audit"
	"codeberg.org/resgenex/resgenex/resource"
	"codeberg.org/resgenex/resgenex/transcode"
)

// rootOptions holds the command-line flags.
type rootOptions struct {
	configFile         string
	noComments         bool
	sourceCommentsOnly bool
	formatFlags        bool
	useSourcePath      bool
	verify             bool
	logLevel           string
	language           string
	codePage           int
}

func main() {
	audit.SetDefaultLogger()

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Conversion failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "resgenex [flags] source [dest]",
		Short: "Convert translation resources between PO, POT, ISL, resx and YAML",
		Long: `resgenex converts a translation resource file into another format.

Formats are picked from the file extensions: .po, .pot, .isl, .resx, .yaml
and .yml. A trailing .gz or .zst compresses or decompresses the file.

Without dest, .po and .pot files become .resx files and everything else
becomes a .po file next to the source.`,
		Example: `  resgenex Strings.resx Strings.pot
  resgenex de.po German.isl
  resgenex --no-comments German.isl`,
		Version:       config.Version(),
		Args:          cobra.RangeArgs(1, 2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "path to a configuration file in YAML format (default ./resgenex.yaml)")
	flags.BoolVar(&opts.noComments, "no-comments", false, "do not write any per-item comments")
	flags.BoolVar(&opts.sourceCommentsOnly, "source-comments-only", false, "only write comments that exist in the source")
	flags.BoolVar(&opts.formatFlags, "add-format-flags", false, "flag PO entries containing {0} or %1 placeholders")
	flags.BoolVar(&opts.useSourcePath, "use-source-path", false, "resolve resx file references against the source directory")
	flags.BoolVar(&opts.verify, "verify", false, "re-read written PO/POT files with gettext and report mismatches")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.language, "language", "", "Language header written to PO files, e.g. de or pt-BR")
	flags.IntVar(&opts.codePage, "code-page", 0, "Windows code page of .isl files, e.g. 1252 or 65001")

	cmd.MarkFlagsMutuallyExclusive("no-comments", "source-comments-only")

	return cmd
}

func (opts *rootOptions) run(cmd *cobra.Command, args []string) error {
	var cfg config.Config

	if err := cfg.LoadConfig(opts.configFile); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	opts.apply(cmd, &cfg)

	if err := cfg.Setup(); err != nil {
		return err
	}

	source := args[0]

	var dest string

	if len(args) > 1 {
		dest = args[1]
	} else {
		var err error
		if dest, err = transcode.DefaultDestination(source); err != nil {
			return err
		}
	}

	return transcode.File(source, dest, cfg.TranscodeOptions())
}

// apply copies the flags the user set over the loaded configuration.
func (opts *rootOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if opts.noComments {
		cfg.Comments.Policy = resource.CommentsNone.String()
	}

	if opts.sourceCommentsOnly {
		cfg.Comments.Policy = resource.CommentsSourceOnly.String()
	}

	if flags.Changed("add-format-flags") {
		cfg.Comments.FormatFlags = opts.formatFlags
	}

	if flags.Changed("use-source-path") {
		cfg.Paths.UseSourcePath = opts.useSourcePath
	}

	if flags.Changed("verify") {
		cfg.Transcode.Verify = opts.verify
	}

	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}

	if flags.Changed("language") {
		cfg.PO.Language = opts.language
	}

	if flags.Changed("code-page") {
		cfg.ISL.CodePage = opts.codePage
	}
}

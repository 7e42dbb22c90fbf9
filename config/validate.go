// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"codeberg.org/resgenex/resgenex/format/isl"
	"codeberg.org/resgenex/resgenex/resource"
)

// validation errors.
var (
	errInvalidLineEnding = errors.New("line ending must be crlf or lf")
	errInvalidLanguage   = errors.New("po.language is not a valid language tag")
	errInvalidLogLevel   = errors.New("invalid log.logLevel value")
	errInvalidLogFormat  = errors.New("invalid log.logFormat value")
	errInvalidSection    = errors.New("isl.defaultSection must not contain brackets")
)

var newlines = map[string]string{
	"crlf": "\r\n",
	"lf":   "\n",
}

// validateAndSet validates the configuration and populates the derived fields.
func (cfg *Config) validateAndSet() error {
	policy, err := resource.ParseCommentPolicy(cfg.Comments.Policy)
	if err != nil {
		return err
	}

	cfg.Comments.policy = policy

	if cfg.PO.newline, err = parseLineEnding(cfg.PO.LineEnding); err != nil {
		return fmt.Errorf("po.lineEnding: %w", err)
	}

	if cfg.PO.Language != "" {
		tag, err := language.Parse(cfg.PO.Language)
		if err != nil {
			return fmt.Errorf("%w: %q", errInvalidLanguage, cfg.PO.Language)
		}

		cfg.PO.Language = tag.String()
	}

	if cfg.ISL.encoding, err = isl.Encoding(cfg.ISL.CodePage); err != nil {
		return fmt.Errorf("isl.codePage: %w", err)
	}

	if cfg.ISL.newline, err = parseLineEnding(cfg.ISL.LineEnding); err != nil {
		return fmt.Errorf("isl.lineEnding: %w", err)
	}

	if strings.ContainsAny(cfg.ISL.DefaultSection, "[]") {
		return errInvalidSection
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	return nil
}

func parseLineEnding(s string) (string, error) {
	newline, ok := newlines[strings.ToLower(s)]
	if !ok {
		return "", fmt.Errorf("%w, got %q", errInvalidLineEnding, s)
	}

	return newline, nil
}

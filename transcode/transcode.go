// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package transcode converts a resource file from one format to another.
package transcode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding"

	"codeberg.org/resgenex/resgenex/format/isl"
	"codeberg.org/resgenex/resgenex/format/po"
	"codeberg.org/resgenex/resgenex/format/resx"
	"codeberg.org/resgenex/resgenex/format/yamlres"
	"codeberg.org/resgenex/resgenex/resource"
)

const destinationPermissions = 0o644

// Options configures a transcode.
type Options struct {
	Resource resource.Options

	// UseSourcePath resolves resx file references against the source
	// file's directory instead of the working directory.
	UseSourcePath bool

	// Verify re-parses written PO and POT files and logs entries that do not
	// resolve to their value.
	Verify bool

	// Generator names the program and version in file headers.
	Generator string

	// POLanguage is written as the Language header of PO files. When empty,
	// it is guessed from the destination file name.
	POLanguage string
	PONewline  string

	ISLEncoding encoding.Encoding
	ISLAuthor   string
	ISLSection  string
	ISLNewline  string
}

// File converts source into dest, picking both formats from the file
// extensions. The source is read completely before dest is created. If
// writing fails, dest is removed.
func File(source, dest string, opts Options) error {
	logger := log.With().Str("sys", "transcode").Logger()

	srcFormat, srcCompression, err := Detect(source)
	if err != nil {
		return err
	}

	dstFormat, dstCompression, err := Detect(dest)
	if err != nil {
		return err
	}

	timing := &servertiming.Header{}

	var set *resource.Set

	err = timed(timing, "read", func() (err error) {
		set, err = readFile(source, srcFormat, srcCompression, opts)

		return err
	})
	if err != nil {
		return fmt.Errorf("reading %s: %w", source, err)
	}

	logger.Info().
		Str("source", source).
		Str("format", string(srcFormat)).
		Int("count", set.Len()).
		Msg("Read resources")

	err = timed(timing, "write", func() error {
		return writeFile(dest, source, dstFormat, dstCompression, set, opts)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}

	logger.Info().
		Str("dest", dest).
		Str("format", string(dstFormat)).
		Msg("Wrote resources")

	if opts.Verify && (dstFormat == FormatPO || dstFormat == FormatPOT) {
		_ = timed(timing, "verify", func() error {
			verifyFile(logger, dest, dstFormat, dstCompression, set)

			return nil
		})
	}

	logger.Debug().Str("timing", timing.String()).Msg("Transcode finished")

	return nil
}

// timed runs fn as the named phase of timing.
func timed(timing *servertiming.Header, name string, fn func() error) error {
	metric := timing.NewMetric(name).Start()
	defer metric.Stop()

	return fn()
}

func readFile(name string, format Format, compression Compression, opts Options) (*resource.Set, error) {
	f, err := os.Open(name) // #nosec G304 -- reading the file the user asked to convert
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := decompress(f, compression)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	reader, err := newReader(format, name, opts)
	if err != nil {
		return nil, err
	}

	return reader.Read(r)
}

func writeFile(name, source string, format Format, compression Compression, set *resource.Set, opts Options) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, destinationPermissions) // #nosec G302,G304
	if err != nil {
		return err
	}

	w, err := compress(f, compression)
	if err != nil {
		return discard(f, err)
	}

	writer := newWriter(format, w, source, name, opts)

	for item := range set.All() {
		if err := writer.AddResource(item); err != nil {
			_ = closeAll(writer, w)

			return discard(f, err)
		}
	}

	if err := closeAll(writer, w); err != nil {
		return discard(f, err)
	}

	return f.Close()
}

// discard closes and removes a partially written file and returns cause.
func discard(f *os.File, cause error) error {
	f.Close()

	if err := os.Remove(f.Name()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Str("sys", "transcode").Str("dest", f.Name()).Msg("Could not remove partial output")
	}

	return cause
}

func newReader(format Format, source string, opts Options) (resource.Reader, error) {
	switch format {
	case FormatPO, FormatPOT:
		return po.NewReader(), nil
	case FormatISL:
		return isl.NewReader(opts.ISLEncoding), nil
	case FormatResx:
		basePath := ""
		if opts.UseSourcePath {
			basePath = filepath.Dir(source)
		}

		return storeReader{
			sys: "resx",
			open: func(r io.Reader) resource.Store {
				return resx.NewReader(r, basePath)
			},
		}, nil
	case FormatYAML:
		return storeReader{
			sys: "yamlres",
			open: func(r io.Reader) resource.Store {
				return yamlres.NewReader(r)
			},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", resource.ErrUnsupportedFormat, format)
	}
}

func newWriter(format Format, w io.Writer, source, dest string, opts Options) resource.Writer {
	switch format {
	case FormatPO, FormatPOT:
		lang := opts.POLanguage
		if lang == "" && format == FormatPO {
			lang = LanguageFromFileName(dest)
		}

		return po.NewWriter(w, po.WriterConfig{
			Options:     opts.Resource,
			SourceFile:  source,
			BlankValues: format == FormatPOT,
			Language:    lang,
			Newline:     opts.PONewline,
			Generator:   opts.Generator,
		})
	case FormatISL:
		return isl.NewWriter(w, isl.WriterConfig{
			Options:        opts.Resource,
			SourceFile:     source,
			Author:         opts.ISLAuthor,
			DefaultSection: opts.ISLSection,
			Encoding:       opts.ISLEncoding,
			Newline:        opts.ISLNewline,
			Generator:      opts.Generator,
		})
	case FormatResx:
		return storeWriter{store: resx.NewWriter(w), opts: opts.Resource}
	default:
		return storeWriter{store: yamlres.NewWriter(w), opts: opts.Resource}
	}
}

// verifyFile reads back a written PO or POT file and logs every entry gotext
// resolves differently. It never fails the transcode.
func verifyFile(logger zerolog.Logger, name string, format Format, compression Compression, set *resource.Set) {
	f, err := os.Open(name) // #nosec G304 -- the file we just wrote
	if err != nil {
		logger.Warn().Err(err).Str("dest", name).Msg("Could not verify output")

		return
	}
	defer f.Close()

	r, err := decompress(f, compression)
	if err != nil {
		logger.Warn().Err(err).Str("dest", name).Msg("Could not verify output")

		return
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		logger.Warn().Err(err).Str("dest", name).Msg("Could not verify output")

		return
	}

	mismatched := po.Verify(buf.Bytes(), set, format == FormatPOT)
	for _, msgid := range mismatched {
		logger.Warn().Str("msgid", msgid).Msg("Entry does not resolve to its value after writing")
	}

	logger.Debug().Int("mismatched", len(mismatched)).Msg("Verified output")
}

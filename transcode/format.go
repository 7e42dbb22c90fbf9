// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package transcode

import (
	"fmt"
	"path/filepath"
	"strings"

	"codeberg.org/resgenex/resgenex/resource"
)

// Format identifies a resource file format.
type Format string

const (
	FormatPO   Format = "po"
	FormatPOT  Format = "pot"
	FormatISL  Format = "isl"
	FormatResx Format = "resx"
	FormatYAML Format = "yaml"
)

// Compression identifies a stream codec wrapped around a resource file.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

var formatsByExtension = map[string]Format{
	".po":   FormatPO,
	".pot":  FormatPOT,
	".isl":  FormatISL,
	".resx": FormatResx,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

var compressionsByExtension = map[string]Compression{
	".gz":   CompressionGzip,
	".zst":  CompressionZstd,
	".zstd": CompressionZstd,
}

// Detect returns the format and compression of a file from its extension.
// Extensions are case-insensitive.
func Detect(name string) (Format, Compression, error) {
	base := name
	ext := strings.ToLower(filepath.Ext(base))

	compression, compressed := compressionsByExtension[ext]
	if compressed {
		base = strings.TrimSuffix(base, filepath.Ext(base))
		ext = strings.ToLower(filepath.Ext(base))
	}

	format, ok := formatsByExtension[ext]
	if !ok {
		return "", CompressionNone, fmt.Errorf("%w: %s", resource.ErrUnsupportedFormat, name)
	}

	return format, compression, nil
}

// DefaultDestination derives the output name when none is given: PO and POT
// files become resx files, everything else becomes a PO file. A compression
// extension on the source is dropped.
func DefaultDestination(source string) (string, error) {
	format, compression, err := Detect(source)
	if err != nil {
		return "", err
	}

	base := source
	if compression != CompressionNone {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	base = strings.TrimSuffix(base, filepath.Ext(base))

	switch format {
	case FormatPO, FormatPOT:
		return base + ".resx", nil
	default:
		return base + ".po", nil
	}
}

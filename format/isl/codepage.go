// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package isl

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// DefaultCodePage is used when no code page is configured.
const DefaultCodePage = 1252

// UTF8CodePage selects UTF-8 with a byte order mark, as InnoSetup expects for Unicode message files.
const UTF8CodePage = 65001

var ErrUnsupportedCodePage = errors.New("unsupported code page")

var codePages = map[int]encoding.Encoding{
	437:  charmap.CodePage437,
	850:  charmap.CodePage850,
	852:  charmap.CodePage852,
	866:  charmap.CodePage866,
	874:  charmap.Windows874,
	932:  japanese.ShiftJIS,
	936:  simplifiedchinese.GBK,
	949:  korean.EUCKR,
	950:  traditionalchinese.Big5,
	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
	1253: charmap.Windows1253,
	1254: charmap.Windows1254,
	1255: charmap.Windows1255,
	1256: charmap.Windows1256,
	1257: charmap.Windows1257,
	1258: charmap.Windows1258,

	UTF8CodePage: unicode.UTF8BOM,
}

// Encoding returns the text encoding for a Windows code page number.
// Zero selects DefaultCodePage.
func Encoding(codePage int) (encoding.Encoding, error) {
	if codePage == 0 {
		codePage = DefaultCodePage
	}

	enc, ok := codePages[codePage]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedCodePage, codePage)
	}

	return enc, nil
}

// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package transcode

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// localeNameRegexp matches locale-like file name parts such as "de", "pt_BR" or "zh-Hant-TW".
var localeNameRegexp = regexp.MustCompile(`^[A-Za-z]{2}(?:[_-][A-Za-z0-9]{2,8})*$`)

// localeDirectories hold one catalogue per language, named after the language
// alone, as in "po/de.po".
var localeDirectories = map[string]struct{}{
	"i18n":         {},
	"locale":       {},
	"locales":      {},
	"po":           {},
	"translations": {},
}

// LanguageFromFileName guesses a BCP 47 tag from a file name like
// "po/de.po", "pt_BR.po.gz" or "Strings.fr-CA.po". It returns "" when the
// name carries no locale.
//
// A bare language code such as "to.po" is too easily an ordinary word, so it
// only counts when it follows a dotted prefix or sits in a locale directory.
func LanguageFromFileName(name string) string {
	base := filepath.Base(name)

	if _, compressed := compressionsByExtension[strings.ToLower(filepath.Ext(base))]; compressed {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	base = strings.TrimSuffix(base, filepath.Ext(base))

	candidate := base
	dotted := false

	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		candidate = base[i+1:]
		dotted = true
	}

	if !localeNameRegexp.MatchString(candidate) {
		return ""
	}

	// Accept both underscore and hyphen.
	tag, err := language.Parse(strings.ReplaceAll(candidate, "_", "-"))
	if err != nil {
		return ""
	}

	if !dotted && !strings.ContainsAny(candidate, "_-") {
		if _, ok := localeDirectories[strings.ToLower(filepath.Base(filepath.Dir(name)))]; !ok {
			return ""
		}
	}

	return tag.String()
}

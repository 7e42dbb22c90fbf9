// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import (
	"github.com/leonelquinteros/gotext"

	"codeberg.org/resgenex/resgenex/resource"
)

// Verify parses written PO data with gotext and returns the names of items
// whose translation does not resolve to the value that was written.
//
// Fuzzy items and empty values are skipped, as is everything in a template
// written with blankValues.
func Verify(data []byte, items *resource.Set, blankValues bool) []string {
	if blankValues {
		return nil
	}

	catalog := gotext.NewPo()
	catalog.Parse(data)

	translations := catalog.GetDomain().GetTranslations()

	var mismatched []string

	for item := range items.All() {
		if item.Fuzzy() || item.Value == "" {
			continue
		}

		// Po.Get formats its argument, so entries are looked up directly.
		translation, ok := translations[item.Name]
		if !ok || !catalog.IsTranslated(item.Name) || translation.Get() != item.Value {
			mismatched = append(mismatched, item.Name)
		}
	}

	return mismatched
}

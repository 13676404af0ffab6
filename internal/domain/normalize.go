package domain

import (
	"strings"
)

// xSystem maps the ASCII x-system spelling of the Esperanto letters to the
// letters themselves, so "cxokolado" finds "ĉokolado".
var xSystem = strings.NewReplacer(
	"cx", "ĉ", "gx", "ĝ", "hx", "ĥ", "jx", "ĵ", "sx", "ŝ", "ux", "ŭ",
)

// NormalizeHeadword prepares a headword for lookup:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses runs of whitespace into one space
//   - rewrites x-system digraphs to the accented letters
//
// Slashes, hyphens and apostrophes are preserved.
func NormalizeHeadword(text string) string {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return ""
	}
	return xSystem.Replace(strings.Join(fields, " "))
}

package reconstruct

import (
	"regexp"
	"strings"

	"github.com/XekriRedmane/retavortaro/internal/vortaro"
)

var trailingSeparator = regexp.MustCompile(`[,;]\s*$`)

// Headword rebuilds the written forms of a kap: the base form first, then
// one entry per embedded var in document order when includeVariants is
// set. Variant forms do not expand further variants. Whitespace-only text
// runs are skipped and a trailing comma or semicolon is dropped.
func Headword(kap *vortaro.Node, roots Roots, includeVariants bool) []string {
	if kap == nil {
		return nil
	}

	var base strings.Builder
	var variants []string
	for _, c := range kap.Children() {
		switch c.Kind() {
		case vortaro.KindText:
			if strings.TrimSpace(c.Text()) != "" {
				base.WriteString(c.Text())
			}
		case vortaro.KindRad:
			base.WriteString(c.Text())
		case vortaro.KindTld:
			base.WriteString(roots.Tilde(c))
		case vortaro.KindVar:
			if includeVariants {
				variants = append(variants, Headword(c.Headword(), roots, false)...)
			}
		}
	}

	text := strings.TrimSpace(base.String())
	text = strings.TrimSpace(trailingSeparator.ReplaceAllString(text, ""))

	var out []string
	if text != "" {
		out = append(out, text)
	}
	return append(out, variants...)
}

// BaseHeadword returns the base form of a kap without its variants, or "".
func BaseHeadword(kap *vortaro.Node, roots Roots) string {
	forms := Headword(kap, roots, false)
	if len(forms) == 0 {
		return ""
	}
	return forms[0]
}

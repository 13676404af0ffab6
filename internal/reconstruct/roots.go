// Package reconstruct recovers display strings from vortaro trees:
// headwords with their tilde placeholders resolved, definition texts, and
// hierarchically numbered senses. All functions are read-only.
package reconstruct

import (
	"unicode/utf8"

	"github.com/XekriRedmane/retavortaro/internal/vortaro"
)

// Roots is the tilde substitution context of one article.
type Roots struct {
	// Base is the article root. HasBase is false when the article
	// headword carries no rad, which disables tilde resolution.
	Base    string
	HasBase bool
	// Variants maps a variant id to its root text.
	Variants map[string]string
}

// ArticleRoots builds the substitution context of art.
func ArticleRoots(art *vortaro.Node) Roots {
	base, ok := BaseRoot(art)
	return Roots{Base: base, HasBase: ok, Variants: VariantRoots(art)}
}

// BaseRoot returns the text of the first rad reachable from the article
// headword, looking into variant sub-headwords but nowhere else.
func BaseRoot(art *vortaro.Node) (string, bool) {
	if art == nil {
		return "", false
	}
	return firstRoot(art.Headword())
}

func firstRoot(kap *vortaro.Node) (string, bool) {
	if kap == nil {
		return "", false
	}
	for _, c := range kap.Children() {
		switch c.Kind() {
		case vortaro.KindRad:
			return c.Text(), true
		case vortaro.KindVar:
			if text, ok := firstRoot(c.Headword()); ok {
				return text, true
			}
		}
	}
	return "", false
}

// VariantRoots maps the var attribute of every rad in the article headword
// and its variant sub-headwords to the rad text. A later rad with the same
// id overwrites an earlier one.
func VariantRoots(art *vortaro.Node) map[string]string {
	out := make(map[string]string)
	if art != nil {
		collectVariantRoots(art.Headword(), out)
	}
	return out
}

func collectVariantRoots(kap *vortaro.Node, out map[string]string) {
	if kap == nil {
		return
	}
	for _, c := range kap.Children() {
		switch c.Kind() {
		case vortaro.KindRad:
			if id := c.Attr("var"); id != "" && c.Text() != "" {
				out[id] = c.Text()
			}
		case vortaro.KindVar:
			collectVariantRoots(c.Headword(), out)
		}
	}
}

// Tilde resolves a tld placeholder. The variant root named by its var
// attribute wins over the base root; a lit attribute replaces the first
// character of the root. Without a base root the result is empty.
func (r Roots) Tilde(tld *vortaro.Node) string {
	if !r.HasBase {
		return ""
	}
	root := r.Base
	if id := tld.Attr("var"); id != "" {
		if v, ok := r.Variants[id]; ok {
			root = v
		}
	}
	if lit := tld.Attr("lit"); lit != "" {
		_, size := utf8.DecodeRuneInString(root)
		return lit + root[size:]
	}
	return root
}

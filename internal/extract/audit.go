package extract

import (
	"strings"

	"github.com/XekriRedmane/retavortaro/internal/reconstruct"
	"github.com/XekriRedmane/retavortaro/internal/vortaro"
)

// Usage is one uzo with the headword of its nearest enclosing node that
// has a headword slot, if any.
type Usage struct {
	Uzo      *vortaro.Node
	Headword *vortaro.Node
}

// Usages lists every uzo under n, headword slots included, in document order.
func Usages(n *vortaro.Node) []Usage {
	var out []Usage
	var visit func(n, kap *vortaro.Node)
	visit = func(n, kap *vortaro.Node) {
		if hw := n.Headword(); hw != nil {
			kap = hw
			visit(hw, kap)
		}
		if n.Is(vortaro.KindUzo) {
			out = append(out, Usage{Uzo: n, Headword: kap})
		}
		for _, c := range n.Children() {
			visit(c, kap)
		}
	}
	visit(n, nil)
	return out
}

// FieldUsages keeps the usages typed tip="fak" whose own text is exactly field.
func FieldUsages(usages []Usage, field string) []Usage {
	var out []Usage
	for _, u := range usages {
		if u.Uzo.Attr("tip") == "fak" && strings.TrimSpace(OwnText(u.Uzo)) == field {
			out = append(out, u)
		}
	}
	return out
}

// OwnText concatenates the text runs directly under n.
func OwnText(n *vortaro.Node) string {
	var b strings.Builder
	for _, c := range n.Children() {
		if c.Is(vortaro.KindText) {
			b.WriteString(c.Text())
		}
	}
	return b.String()
}

// NoHeadword stands in for a derivation without a kap in audit reports.
const NoHeadword = "(no kap)"

// MissingTranslations returns the base headwords of the derivations in u
// that are tagged with the subject field (a tip="fak" uzo whose text
// contains field) but have no trd or trdgrp in language lang.
func MissingTranslations(u Unit, field, lang string) []string {
	var out []string
	for _, art := range Articles(u.Root) {
		roots := reconstruct.ArticleRoots(art)
		for _, drv := range Derivations(art) {
			if !hasField(drv, field) || hasTranslation(drv, lang) {
				continue
			}
			hw := reconstruct.BaseHeadword(drv.Headword(), roots)
			if hw == "" {
				hw = NoHeadword
			}
			out = append(out, hw)
		}
	}
	return out
}

func hasField(drv *vortaro.Node, field string) bool {
	for _, u := range Usages(drv) {
		if u.Uzo.Attr("tip") == "fak" && strings.Contains(OwnText(u.Uzo), field) {
			return true
		}
	}
	return false
}

func hasTranslation(n *vortaro.Node, lang string) bool {
	if (n.Is(vortaro.KindTrd) || n.Is(vortaro.KindTrdgrp)) && n.Attr("lng") == lang {
		return true
	}
	if hw := n.Headword(); hw != nil && hasTranslation(hw, lang) {
		return true
	}
	for _, c := range n.Children() {
		if hasTranslation(c, lang) {
			return true
		}
	}
	return false
}

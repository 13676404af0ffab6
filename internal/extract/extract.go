// Package extract derives the per-file indexes of the Revo corpus from
// parsed trees. Each function takes one source unit and returns fresh
// maps; callers merge units themselves.
package extract

import (
	"github.com/XekriRedmane/retavortaro/internal/reconstruct"
	"github.com/XekriRedmane/retavortaro/internal/vortaro"
)

// Unit is one parsed source file, named by its file stem.
type Unit struct {
	Name string
	Root *vortaro.Node
}

// Articles returns the art nodes of a document root, which is either a
// vortaro or a bare art.
func Articles(root *vortaro.Node) []*vortaro.Node {
	switch {
	case root.Is(vortaro.KindArt):
		return []*vortaro.Node{root}
	case root.Is(vortaro.KindVortaro):
		return root.ChildrenOf(vortaro.KindArt)
	}
	return nil
}

// Derivations returns the drv nodes of an article, directly under it or
// under one of its subart children, in document order.
func Derivations(art *vortaro.Node) []*vortaro.Node {
	var out []*vortaro.Node
	for _, c := range art.Children() {
		switch c.Kind() {
		case vortaro.KindDrv:
			out = append(out, c)
		case vortaro.KindSubart:
			out = append(out, c.ChildrenOf(vortaro.KindDrv)...)
		}
	}
	return out
}

// Headwords maps every headword form of every derivation in u, variants
// included, to the unit name.
func Headwords(u Unit) map[string]string {
	out := make(map[string]string)
	for _, art := range Articles(u.Root) {
		roots := reconstruct.ArticleRoots(art)
		for _, drv := range Derivations(art) {
			for _, form := range reconstruct.Headword(drv.Headword(), roots, true) {
				out[form] = u.Name
			}
		}
	}
	return out
}

// Senses maps every headword form of every derivation in u to the
// derivation's numbered senses. Derivations without senses are skipped.
func Senses(u Unit) map[string][]reconstruct.Sense {
	out := make(map[string][]reconstruct.Sense)
	for _, art := range Articles(u.Root) {
		roots := reconstruct.ArticleRoots(art)
		for _, drv := range Derivations(art) {
			senses := DerivationSenses(drv, roots)
			if len(senses) == 0 {
				continue
			}
			for _, form := range reconstruct.Headword(drv.Headword(), roots, true) {
				out[form] = senses
			}
		}
	}
	return out
}

// DerivationSenses returns the senses of drv followed by those of its
// subdrv children. The k-th subdrv prefixes its numbers with the k-th
// capital letter, so its first sense is "A.1".
func DerivationSenses(drv *vortaro.Node, roots reconstruct.Roots) []reconstruct.Sense {
	senses := reconstruct.Senses(drv, roots)
	for i, sub := range drv.ChildrenOf(vortaro.KindSubdrv) {
		letter := subdrvLetter(i)
		for _, s := range reconstruct.Senses(sub, roots) {
			s.Number = letter + "." + s.Number
			senses = append(senses, s)
		}
	}
	return senses
}

// subdrvLetter numbers subdrv children A, B, ..., Z, AA, AB, ...
func subdrvLetter(i int) string {
	var s string
	for ; i >= 0; i = i/26 - 1 {
		s = string(rune('A'+i%26)) + s
	}
	return s
}

// Roots maps the roots declared by the article headwords of u to the
// unit name: rads without a var attribute directly in the headword, and
// every rad of a variant sub-headword.
func Roots(u Unit) map[string]string {
	out := make(map[string]string)
	for _, art := range Articles(u.Root) {
		kap := art.Headword()
		if kap == nil {
			continue
		}
		for _, c := range kap.Children() {
			switch c.Kind() {
			case vortaro.KindRad:
				if c.Attr("var") == "" && c.Text() != "" {
					out[c.Text()] = u.Name
				}
			case vortaro.KindVar:
				if vk := c.Headword(); vk != nil {
					for _, r := range vk.ChildrenOf(vortaro.KindRad) {
						if r.Text() != "" {
							out[r.Text()] = u.Name
						}
					}
				}
			}
		}
	}
	return out
}

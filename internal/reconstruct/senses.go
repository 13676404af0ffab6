package reconstruct

import (
	"strconv"

	"github.com/XekriRedmane/retavortaro/internal/vortaro"
)

// Sense is one numbered definition of a derivation.
type Sense struct {
	Number     string
	Definition string
}

// Senses numbers the snc children of a drv or subdrv in document order
// ("1", "2", ...) and their nested snc/subsnc children with a dotted
// prefix ("1.1", "1.1.1", ...). A sense whose definition is empty is
// numbered but left out of the result.
func Senses(n *vortaro.Node, roots Roots) []Sense {
	if n == nil {
		return nil
	}
	var out []Sense
	collectSenses(&out, n.ChildrenOf(vortaro.KindSnc), roots, "")
	return out
}

func collectSenses(out *[]Sense, senses []*vortaro.Node, roots Roots, prefix string) {
	for i, snc := range senses {
		num := strconv.Itoa(i + 1)
		if prefix != "" {
			num = prefix + "." + num
		}
		if def := SenseDefinition(snc, roots); def != "" {
			*out = append(*out, Sense{Number: num, Definition: def})
		}
		collectSenses(out, nestedSenses(snc), roots, num)
	}
}

func nestedSenses(snc *vortaro.Node) []*vortaro.Node {
	var out []*vortaro.Node
	for _, c := range snc.Children() {
		if c.Is(vortaro.KindSnc) || c.Is(vortaro.KindSubsnc) {
			out = append(out, c)
		}
	}
	return out
}

// SenseDefinition returns the definition of one sense: the text of its
// first dif, or of its first ref or refgrp typed tip="dif", whichever
// comes first.
func SenseDefinition(snc *vortaro.Node, roots Roots) string {
	for _, c := range snc.Children() {
		switch c.Kind() {
		case vortaro.KindDif:
			return Definition(c, roots)
		case vortaro.KindRef, vortaro.KindRefgrp:
			if c.Attr("tip") == "dif" {
				return definitionText([]*vortaro.Node{c}, roots)
			}
		}
	}
	return ""
}

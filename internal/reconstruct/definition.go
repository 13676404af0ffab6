package reconstruct

import (
	"strings"

	"github.com/XekriRedmane/retavortaro/internal/vortaro"
)

// Definition rebuilds the text of a dif. Text, rad and tld children are
// kept, ref and refgrp children contribute their own text and tildes, and
// every other child (klr, ekz, snc, ...) is left out. Whitespace is
// collapsed, a trailing colon becomes a period, and a period is added when
// the text does not already end in one of . ! ? ;
func Definition(dif *vortaro.Node, roots Roots) string {
	if dif == nil {
		return ""
	}
	return definitionText(dif.Children(), roots)
}

func definitionText(children []*vortaro.Node, roots Roots) string {
	var b strings.Builder
	for _, c := range children {
		switch c.Kind() {
		case vortaro.KindText, vortaro.KindRad:
			b.WriteString(c.Text())
		case vortaro.KindTld:
			b.WriteString(roots.Tilde(c))
		case vortaro.KindRef:
			writeRef(&b, c, roots)
		case vortaro.KindRefgrp:
			for _, gc := range c.Children() {
				switch gc.Kind() {
				case vortaro.KindText:
					b.WriteString(gc.Text())
				case vortaro.KindRef:
					writeRef(&b, gc, roots)
				}
			}
		}
	}
	return punctuate(strings.Join(strings.Fields(b.String()), " "))
}

func writeRef(b *strings.Builder, ref *vortaro.Node, roots Roots) {
	for _, c := range ref.Children() {
		switch c.Kind() {
		case vortaro.KindText:
			b.WriteString(c.Text())
		case vortaro.KindTld:
			b.WriteString(roots.Tilde(c))
		}
	}
}

func punctuate(s string) string {
	if s == "" {
		return s
	}
	if rest, ok := strings.CutSuffix(s, ":"); ok {
		return rest + "."
	}
	switch s[len(s)-1] {
	case '.', '!', '?', ';':
		return s
	}
	return s + "."
}

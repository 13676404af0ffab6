package vortaro

import "slices"

// Without returns a copy of n with every descendant of the given kinds
// removed, headword slots included. n itself is always kept.
func Without(n *Node, drop ...Kind) *Node {
	out := &Node{kind: n.kind, attrs: slices.Clone(n.attrs), text: n.text}
	for _, c := range n.children {
		if slices.Contains(drop, c.kind) {
			continue
		}
		out.appendChild(Without(c, drop...))
	}
	if n.headword != nil && !slices.Contains(drop, KindKap) {
		out.headword = Without(n.headword, drop...)
	}
	return out
}

// WithoutTranslations returns a copy of n with all trd and trdgrp removed.
func WithoutTranslations(n *Node) *Node {
	return Without(n, KindTrd, KindTrdgrp)
}

package vortaro

import "testing"

func countKind(n *Node, k Kind) int {
	c := 0
	if n.Kind() == k {
		c++
	}
	if n.Headword() != nil {
		c += countKind(n.Headword(), k)
	}
	for _, ch := range n.Children() {
		c += countKind(ch, k)
	}
	return c
}

func TestWithoutTranslations(t *testing.T) {
	t.Parallel()

	root, err := build(
		start("drv"),
		start("kap"), start("tld"), end("tld"), txt("o"), end("kap"),
		start("snc"),
		start("dif"), txt("Io."), end("dif"),
		start("trd", "lng", "en"), txt("thing"), end("trd"),
		start("trdgrp", "lng", "de"), start("trd"), txt("Ding"), end("trd"), end("trdgrp"),
		end("snc"),
		end("drv"),
	)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	pruned := WithoutTranslations(root)

	if got := countKind(pruned, KindTrd) + countKind(pruned, KindTrdgrp); got != 0 {
		t.Errorf("pruned tree still has %d translations", got)
	}
	if got := countKind(root, KindTrd); got != 2 {
		t.Errorf("input was modified: %d trd left, want 2", got)
	}
	if pruned.Headword() == nil {
		t.Error("headword slot lost")
	}
	snc := pruned.Children()[0]
	if len(snc.Children()) != 1 || snc.Children()[0].Kind() != KindDif {
		t.Errorf("snc content = %v, want only dif", snc.Children())
	}
}

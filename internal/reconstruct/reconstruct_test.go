package reconstruct

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XekriRedmane/retavortaro/internal/revoxml"
	"github.com/XekriRedmane/retavortaro/internal/vortaro"
)

func parse(t *testing.T, markup string) *vortaro.Node {
	t.Helper()
	root, err := revoxml.NewParser(nil).Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return root
}

func base(root string) Roots {
	return Roots{Base: root, HasBase: true, Variants: map[string]string{}}
}

func TestBaseRoot(t *testing.T) {
	t.Parallel()

	art := parse(t, `<art><kap><ofc>*</ofc><rad>abel</rad>/o</kap><drv><kap><rad>ne</rad></kap></drv></art>`)
	got, ok := BaseRoot(art)
	assert.True(t, ok)
	assert.Equal(t, "abel", got)

	art = parse(t, `<art><kap><var><kap><rad var="v">kolbas</rad>/o</kap></var></kap></art>`)
	got, ok = BaseRoot(art)
	assert.True(t, ok, "a rad inside a variant sub-headword is reachable")
	assert.Equal(t, "kolbas", got)

	// A rad deeper in the article body is not the article root.
	art = parse(t, `<art><kap>abc</kap><drv><kap><rad>ne</rad></kap></drv></art>`)
	_, ok = BaseRoot(art)
	assert.False(t, ok)

	_, ok = BaseRoot(nil)
	assert.False(t, ok)
}

func TestVariantRoots(t *testing.T) {
	t.Parallel()

	art := parse(t, `<art><kap>
		<rad>ĉokolad</rad>/o,
		<var><kap><rad var="1">ŝokolad</rad>/o</kap></var>
		<rad var="2"></rad>
		<var><kap><rad var="1">ĉokolat</rad>/o</kap></var>
	</kap></art>`)

	assert.Equal(t, map[string]string{"1": "ĉokolat"}, VariantRoots(art),
		"later duplicate ids overwrite, empty texts are skipped")
	assert.Empty(t, VariantRoots(nil))
}

func TestTilde(t *testing.T) {
	t.Parallel()

	roots := Roots{Base: "ĉokolad", HasBase: true, Variants: map[string]string{"1": "ŝokolad"}}
	tests := []struct {
		name   string
		markup string
		roots  Roots
		want   string
	}{
		{"plain", `<tld/>`, roots, "ĉokolad"},
		{"literal drops one rune", `<tld lit="Ĉ"/>`, roots, "Ĉokolad"},
		{"variant", `<tld var="1"/>`, roots, "ŝokolad"},
		{"variant with literal", `<tld var="1" lit="Ŝ"/>`, roots, "Ŝokolad"},
		{"unknown variant falls back to base", `<tld var="9"/>`, roots, "ĉokolad"},
		{"no base root", `<tld var="1"/>`, Roots{Variants: roots.Variants}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.roots.Tilde(parse(t, tt.markup)))
		})
	}
}

func TestHeadword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		roots  Roots
		want   []string
	}{
		{"tilde and text", `<kap><tld/>a</kap>`, base("absolut"), []string{"absoluta"}},
		{"whitespace-only runs", "<kap>\n    <tld/>e\n  </kap>", base("abrupt"), []string{"abrupte"}},
		{"inner spacing kept", "<kap><tld/> volvita\n    </kap>", base("a"), []string{"a volvita"}},
		{"trailing comma", `<kap>manĝo,</kap>`, base("manĝ"), []string{"manĝo"}},
		{"trailing semicolon and space", `<kap><tld/>o; </kap>`, base("manĝ"), []string{"manĝo"}},
		{"rad text verbatim", `<kap><rad>abel</rad>/o</kap>`, base("abel"), []string{"abel/o"}},
		{"no base root", `<kap><tld/>o</kap>`, Roots{}, []string{"o"}},
		{"nothing", "<kap>\n </kap>", base("x"), nil},
		{
			"variants in document order",
			"<kap><tld/>o, <var><kap><tld var=\"2\"/>o</kap></var>\n<var><kap><tld lit=\"K\"/>o</kap></var></kap>",
			Roots{Base: "ĉokolad", HasBase: true, Variants: map[string]string{"2": "ŝokolad"}},
			[]string{"ĉokolado", "ŝokolado", "Kokolado"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Headword(parse(t, tt.markup), tt.roots, true))
		})
	}
}

func TestHeadwordVariantsExcluded(t *testing.T) {
	t.Parallel()

	kap := parse(t, `<kap><tld/>o <var><kap><tld/>eto</kap></var></kap>`)
	assert.Equal(t, []string{"domo"}, Headword(kap, base("dom"), false))
	assert.Equal(t, "domo", BaseHeadword(kap, base("dom")))
	assert.Nil(t, Headword(nil, base("dom"), true))
}

func TestDefinition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		roots  Roots
		want   string
	}{
		{"collapse whitespace", "<dif>  This is a definition    with multiple\n parts.  </dif>", Roots{}, "This is a definition with multiple parts."},
		{"tilde", `<dif>A member of the <tld/> people</dif>`, base("aleut"), "A member of the aleut people."},
		{"tilde with literal", `<dif>The <tld lit="A"/> islands</dif>`, base("aleut"), "The Aleut islands."},
		{"empty", `<dif/>`, Roots{}, ""},
		{"colon becomes period", `<dif>Okazanta subite:</dif>`, Roots{}, "Okazanta subite."},
		{"question mark kept", `<dif>Ĉu?</dif>`, Roots{}, "Ĉu?"},
		{"semicolon kept", `<dif>unu;</dif>`, Roots{}, "unu;"},
		{"comma not stripped", `<dif>unu,</dif>`, Roots{}, "unu,."},
		{
			"ref and refgrp text inline",
			`<dif>Vidu <ref cel="x"><tld/>on</ref> kaj <refgrp><ke><ref>ne</ref></ke> <ref cel="y"><tld lit="B"/>ojn</ref></refgrp></dif>`,
			base("bild"),
			"Vidu bildon kaj Bildojn.",
		},
		{
			"clarifications and examples excluded",
			`<dif>Arbo <klr>(granda)</klr> kun <ekz>ekzemplo</ekz> folioj <em>verdaj</em></dif>`,
			Roots{},
			"Arbo kun folioj.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Definition(parse(t, tt.markup), tt.roots))
		})
	}
}

func TestSenses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   []Sense
	}{
		{
			"single",
			`<drv><snc><dif>First sense</dif></snc></drv>`,
			[]Sense{{"1", "First sense."}},
		},
		{
			"multiple",
			`<drv><snc><dif>First sense</dif></snc><snc><dif>Second sense</dif></snc></drv>`,
			[]Sense{{"1", "First sense."}, {"2", "Second sense."}},
		},
		{
			"nested",
			`<drv><snc><dif>First sense</dif><snc><dif>First subsense</dif></snc><snc><dif>Second subsense</dif></snc></snc></drv>`,
			[]Sense{{"1", "First sense."}, {"1.1", "First subsense."}, {"1.2", "Second subsense."}},
		},
		{
			"deeply nested",
			`<drv><snc><dif>Unu</dif><snc><dif>Du</dif><subsnc><dif>Tri</dif></subsnc></snc></snc></drv>`,
			[]Sense{{"1", "Unu."}, {"1.1", "Du."}, {"1.1.1", "Tri."}},
		},
		{
			"subsenses without parent definition",
			`<drv><snc><subsnc><dif>a</dif></subsnc><subsnc><dif>b</dif></subsnc></snc></drv>`,
			[]Sense{{"1.1", "a."}, {"1.2", "b."}},
		},
		{
			"first definition only",
			`<drv><snc><dif>Unua</dif><refgrp tip="dif"><ref>dua</ref></refgrp></snc></drv>`,
			[]Sense{{"1", "Unua."}},
		},
		{
			"typed ref stands in for a definition",
			`<drv><snc><ref tip="vid">ne</ref><ref tip="dif">sama kiel <tld/>o</ref><dif>poste</dif></snc></drv>`,
			[]Sense{{"1", "sama kiel domo."}},
		},
		{
			"typed refgrp stands in for a definition",
			`<drv><snc><refgrp tip="dif">vd <ref>dom<tld/></ref></refgrp></snc></drv>`,
			[]Sense{{"1", "vd domdom."}},
		},
		{
			"empty definition gives no entry but keeps numbering",
			`<drv><snc><dif> </dif></snc><snc><dif>Dua</dif></snc></drv>`,
			[]Sense{{"2", "Dua."}},
		},
		{
			"only snc children at the top",
			`<drv><subdrv><snc><dif>ne</dif></snc></subdrv><snc><dif>jes</dif></snc></drv>`,
			[]Sense{{"1", "jes."}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Senses(parse(t, tt.markup), base("dom")))
		})
	}
}

func TestArticleRoots(t *testing.T) {
	t.Parallel()

	art := parse(t, `<art><kap><rad>ĉokolad</rad>/o, <var><kap><rad var="s">ŝokolad</rad>/o</kap></var></kap>
		<drv><kap><tld/>o, <var><kap><tld var="s"/>o</kap></var></kap>
		<snc><dif>Nutraĵo el <tld var="s"/>o:</dif></snc></drv></art>`)

	roots := ArticleRoots(art)
	drv := art.ChildrenOf(vortaro.KindDrv)[0]
	assert.Equal(t, []string{"ĉokolado", "ŝokolado"}, Headword(drv.Headword(), roots, true))
	assert.Equal(t, []Sense{{"1", "Nutraĵo el ŝokolado."}}, Senses(drv, roots))
}

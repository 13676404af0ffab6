package vortaro

import (
	"fmt"
	"slices"
)

// Kind names one element of the Revo document schema.
type Kind string

const (
	KindAdm     Kind = "adm"
	KindArt     Kind = "art"
	KindAut     Kind = "aut"
	KindBaz     Kind = "baz"
	KindBib     Kind = "bib"
	KindBld     Kind = "bld"
	KindCtl     Kind = "ctl"
	KindDif     Kind = "dif"
	KindDrv     Kind = "drv"
	KindEkz     Kind = "ekz"
	KindEm      Kind = "em"
	KindEsc     Kind = "esc"
	KindFnt     Kind = "fnt"
	KindFrm     Kind = "frm"
	KindG       Kind = "g"
	KindGra     Kind = "gra"
	KindInd     Kind = "ind"
	KindK       Kind = "k"
	KindKap     Kind = "kap"
	KindKe      Kind = "ke"
	KindKlr     Kind = "klr"
	KindLok     Kind = "lok"
	KindLstref  Kind = "lstref"
	KindMis     Kind = "mis"
	KindMlg     Kind = "mlg"
	KindMll     Kind = "mll"
	KindMrk     Kind = "mrk"
	KindNac     Kind = "nac"
	KindNom     Kind = "nom"
	KindOfc     Kind = "ofc"
	KindPr      Kind = "pr"
	KindRad     Kind = "rad"
	KindRef     Kind = "ref"
	KindRefgrp  Kind = "refgrp"
	KindRim     Kind = "rim"
	KindSnc     Kind = "snc"
	KindSncref  Kind = "sncref"
	KindSub     Kind = "sub"
	KindSubart  Kind = "subart"
	KindSubdrv  Kind = "subdrv"
	KindSubsnc  Kind = "subsnc"
	KindSup     Kind = "sup"
	KindTezrad  Kind = "tezrad"
	KindTld     Kind = "tld"
	KindTrd     Kind = "trd"
	KindTrdgrp  Kind = "trdgrp"
	KindTs      Kind = "ts"
	KindUrl     Kind = "url"
	KindUzo     Kind = "uzo"
	KindVar     Kind = "var"
	KindVortaro Kind = "vortaro"
	KindVrk     Kind = "vrk"
	KindVspec   Kind = "vspec"

	// KindText is the anonymous text run interleaved with the children of
	// a text-in-content element. It is not an element name.
	KindText Kind = "text"
)

func (k Kind) String() string { return string(k) }

// IsValid reports whether k is an element kind of the schema.
// KindText is not.
func (k Kind) IsValid() bool {
	_, ok := schema[k]
	return ok
}

// Shape is the payload a node of a given kind carries.
type Shape int

const (
	// ShapeText nodes hold a text buffer and no children.
	ShapeText Shape = iota + 1
	// ShapeContent nodes hold ordered children and, for some kinds, a headword slot.
	ShapeContent
	// ShapeLeaf nodes hold attributes only.
	ShapeLeaf
)

func (s Shape) String() string {
	switch s {
	case ShapeText:
		return "text"
	case ShapeContent:
		return "content"
	case ShapeLeaf:
		return "leaf"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Attribute is a declared attribute name with its value. In the schema
// table Value holds the default.
type Attribute struct {
	Name  string
	Value string
}

type kindSpec struct {
	shape    Shape
	mixed    bool
	headword bool
	attrs    []Attribute
	children []Kind
}

var (
	// %tekst-stiloj;
	textStyles = []Kind{
		KindTld, KindSncref, KindKlr, KindEm, KindTs, KindSup, KindSub,
		KindCtl, KindMis, KindFrm, KindNom, KindNac, KindEsc,
	}
	// %priskribaj-elementoj;
	descriptive = []Kind{
		KindFnt, KindGra, KindUzo, KindDif, KindEkz, KindRim, KindRef, KindRefgrp,
		KindTrd, KindTrdgrp, KindBld, KindAdm, KindUrl, KindMlg, KindLstref, KindTezrad,
	}
	inlineMarks = []Kind{KindTld, KindEm, KindTs, KindFrm, KindNom, KindNac, KindEsc}
)

func attrs(names ...string) []Attribute {
	out := make([]Attribute, len(names))
	for i, n := range names {
		out[i] = Attribute{Name: n}
	}
	return out
}

func kinds(groups ...[]Kind) []Kind {
	var out []Kind
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func text(names ...string) kindSpec {
	return kindSpec{shape: ShapeText, attrs: attrs(names...)}
}

func leaf(names ...string) kindSpec {
	return kindSpec{shape: ShapeLeaf, attrs: attrs(names...)}
}

func mixed(children []Kind, attributes ...Attribute) kindSpec {
	return kindSpec{shape: ShapeContent, mixed: true, attrs: attributes, children: children}
}

func content(children []Kind, attributes ...Attribute) kindSpec {
	return kindSpec{shape: ShapeContent, attrs: attributes, children: children}
}

func withHeadword(s kindSpec) kindSpec {
	s.headword = true
	return s
}

func a(name string) Attribute { return Attribute{Name: name} }

// schema mirrors vokoxml.dtd.
var schema = map[Kind]kindSpec{
	KindRad:    text("var"),
	KindOfc:    text(),
	KindBib:    text(),
	KindAut:    text(),
	KindUrl:    text("ref"),
	KindG:      text(),
	KindK:      text(),
	KindMlg:    text("kod"),
	KindNom:    text(),
	KindNac:    text(),
	KindEsc:    text(),
	KindVspec:  text(),
	KindPr:     text(),
	KindBaz:    text(),
	KindTld:    leaf("lit", "var"),
	KindTezrad: leaf("fak"),
	KindSncref: leaf("ref"),

	KindLok:    mixed([]Kind{KindUrl}, a("url")),
	KindVrk:    mixed([]Kind{KindUrl}, a("url")),
	KindFnt:    mixed([]Kind{KindBib, KindAut, KindVrk, KindLok, KindUrl}),
	KindEm:     mixed([]Kind{KindTld}),
	KindTs:     mixed([]Kind{KindTld}),
	KindSup:    mixed([]Kind{KindG, KindK}),
	KindSub:    mixed([]Kind{KindG, KindK}),
	KindFrm:    mixed([]Kind{KindSup, KindSub, KindG, KindK}, a("am")),
	KindUzo:    mixed([]Kind{KindTld}, a("tip")),
	KindMll:    mixed([]Kind{KindTld, KindKlr, KindInd}, a("tip")),
	KindInd:    mixed([]Kind{KindTld, KindKlr, KindMll}),
	KindTrdgrp: mixed([]Kind{KindTrd}, a("lng")),
	KindTrd:    mixed([]Kind{KindKlr, KindInd, KindPr, KindMll, KindOfc, KindBaz}, a("lng"), a("fnt"), a("kod")),
	KindKlr:    mixed(kinds([]Kind{KindTrd, KindTrdgrp, KindEkz, KindRef, KindRefgrp}, textStyles), a("tip")),
	KindRef:    mixed([]Kind{KindTld, KindKlr, KindSncref}, a("tip"), a("cel"), a("lst"), a("val")),
	KindKe:     mixed([]Kind{KindRef}),
	KindRefgrp: mixed([]Kind{KindKe, KindRef}, Attribute{Name: "tip", Value: "vid"}),
	KindEkz: mixed(kinds([]Kind{KindFnt, KindUzo, KindRef, KindRefgrp, KindInd, KindTrd, KindTrdgrp}, textStyles),
		a("mrk")),
	KindRim: mixed(kinds([]Kind{KindRef, KindRefgrp, KindKe, KindEkz, KindAut, KindFnt}, textStyles),
		a("num"), a("mrk")),
	KindGra: mixed([]Kind{KindVspec}),
	KindCtl: mixed(inlineMarks),
	KindMis: mixed(inlineMarks),
	KindMrk: mixed([]Kind{KindRef}, a("stl"), a("cel")),
	KindBld: mixed([]Kind{KindTld, KindKlr, KindFnt, KindMrk, KindInd, KindTrd, KindTrdgrp},
		a("lok"), a("mrk"), Attribute{Name: "tip", Value: "img"}, a("alt"), a("lrg"), a("prm")),
	KindAdm:    mixed([]Kind{KindAut}),
	KindLstref: mixed([]Kind{KindTld, KindKlr}, a("lst")),
	KindDif: mixed(kinds([]Kind{KindTrd, KindTrdgrp, KindRef, KindRefgrp, KindKe, KindEkz, KindSnc}, textStyles),
		a("lng")),
	KindKap: mixed([]Kind{KindRad, KindOfc, KindFnt, KindTld, KindVar}),

	KindVar:     withHeadword(content([]Kind{KindUzo, KindKlr, KindEkz, KindRim})),
	KindSubsnc:  content(descriptive, a("mrk"), a("ref")),
	KindSnc:     content(kinds([]Kind{KindSubsnc}, descriptive), a("mrk"), a("num"), a("ref")),
	KindSubdrv:  content(kinds([]Kind{KindSnc}, descriptive), a("mrk")),
	KindDrv:     withHeadword(content(kinds([]Kind{KindSubdrv, KindSnc}, descriptive), a("mrk"))),
	KindSubart:  content(kinds([]Kind{KindDrv, KindSnc}, descriptive), a("mrk")),
	KindArt:     withHeadword(content(kinds([]Kind{KindSubart, KindDrv, KindSnc}, descriptive), a("mrk"))),
	KindVortaro: content([]Kind{KindArt}),
}

// LookupKind resolves an element name. Names outside the schema,
// including the anonymous "text" pseudo-kind, fail with ErrUnknownKind.
func LookupKind(name string) (Kind, error) {
	k := Kind(name)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// Kinds returns every element kind of the schema, sorted by name.
func Kinds() []Kind {
	out := make([]Kind, 0, len(schema))
	for k := range schema {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Shape returns the payload shape of k. The anonymous text kind is ShapeText.
func (k Kind) Shape() Shape {
	if k == KindText {
		return ShapeText
	}
	return schema[k].shape
}

// TextInContent reports whether text runs interleave with the children of k.
func (k Kind) TextInContent() bool { return schema[k].mixed }

// HasHeadword reports whether k stores a kap child in a dedicated slot.
func (k Kind) HasHeadword() bool { return schema[k].headword }

// Attributes returns the declared attributes of k in order, each with its default.
func (k Kind) Attributes() []Attribute { return slices.Clone(schema[k].attrs) }

// AllowedChildren returns the kinds the DTD permits in k's ordered content.
func (k Kind) AllowedChildren() []Kind { return slices.Clone(schema[k].children) }

// Allows reports whether child may appear in k's ordered content.
func (k Kind) Allows(child Kind) bool { return slices.Contains(schema[k].children, child) }

func (k Kind) attrIndex(name string) int {
	for i, at := range schema[k].attrs {
		if at.Name == name {
			return i
		}
	}
	return -1
}

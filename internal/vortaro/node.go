package vortaro

// Node is one element of a parsed article, or an anonymous text run.
//
// The kind fixes the shape: text nodes carry Text, content nodes carry
// Children and possibly Headword, leaf nodes carry attributes only. Every
// declared attribute is present, holding its default until set. Nodes are
// built by Builder or Decode and not modified afterwards.
type Node struct {
	kind     Kind
	attrs    []string
	text     string
	children []*Node
	headword *Node
}

func newNode(k Kind) *Node {
	decl := schema[k].attrs
	n := &Node{kind: k, attrs: make([]string, len(decl))}
	for i, at := range decl {
		n.attrs[i] = at.Value
	}
	return n
}

// NewText returns an anonymous text run.
func NewText(run string) *Node {
	return &Node{kind: KindText, text: run}
}

func (n *Node) Kind() Kind { return n.kind }

func (n *Node) Shape() Shape { return n.kind.Shape() }

// Is reports whether n is non-nil and of kind k.
func (n *Node) Is(k Kind) bool { return n != nil && n.kind == k }

// Text returns the accumulated buffer of a text node, or "" for other shapes.
func (n *Node) Text() string { return n.text }

// Children returns the ordered content. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Headword returns the kap in the headword slot, or nil.
func (n *Node) Headword() *Node { return n.headword }

// Attr returns the value of a declared attribute, or "" when undeclared.
func (n *Node) Attr(name string) string {
	v, _ := n.LookupAttr(name)
	return v
}

// LookupAttr returns the value of a declared attribute and whether the
// kind declares it.
func (n *Node) LookupAttr(name string) (string, bool) {
	i := n.kind.attrIndex(name)
	if i < 0 {
		return "", false
	}
	return n.attrs[i], true
}

// Attrs returns every declared attribute with its current value, in schema order.
func (n *Node) Attrs() []Attribute {
	decl := schema[n.kind].attrs
	out := make([]Attribute, len(decl))
	for i, at := range decl {
		out[i] = Attribute{Name: at.Name, Value: n.attrs[i]}
	}
	return out
}

// ChildrenOf returns the direct children of kind k in document order.
func (n *Node) ChildrenOf(k Kind) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.kind == k {
			out = append(out, c)
		}
	}
	return out
}

func (n *Node) setAttr(name, value string) bool {
	i := n.kind.attrIndex(name)
	if i < 0 {
		return false
	}
	n.attrs[i] = value
	return true
}

func (n *Node) appendChild(c *Node) {
	n.children = append(n.children, c)
}

package vortaro

import "fmt"

// Builder assembles a tree from a flat stream of start, end and text events.
// It keeps open elements on an explicit stack, so input depth never turns
// into call depth. A Builder is used for one document and is not safe for
// concurrent use.
type Builder struct {
	stack []*Node
	root  *Node
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// StartElement opens an element. Attributes the kind does not declare are
// ignored; an undeclared element name fails with ErrUnknownKind.
//
// A kap opened directly inside a kind with a headword slot is installed in
// that slot. Any other element is appended to the parent's ordered content.
// Child legality is left to DTD validation upstream.
func (b *Builder) StartElement(name string, attributes map[string]string) error {
	kind, err := LookupKind(name)
	if err != nil {
		if parent := b.top(); parent != nil {
			return fmt.Errorf("start element inside %s: %w", parent.kind, err)
		}
		return fmt.Errorf("start element: %w", err)
	}

	n := newNode(kind)
	for k, v := range attributes {
		n.setAttr(k, v)
	}

	if parent := b.top(); parent != nil {
		switch {
		case kind == KindKap && parent.kind.HasHeadword():
			parent.headword = n
		case parent.Shape() == ShapeContent:
			parent.appendChild(n)
		}
	}
	b.stack = append(b.stack, n)
	return nil
}

// EndElement closes the element on top of the stack. The closed element
// becomes the current root candidate.
func (b *Builder) EndElement(name string) error {
	top := b.top()
	if top == nil {
		return fmt.Errorf("%w: </%s> with no open element", ErrMismatchedEnd, name)
	}
	if string(top.kind) != name {
		return fmt.Errorf("%w: </%s> closes <%s>", ErrMismatchedEnd, name, top.kind)
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.root = top
	return nil
}

// Text routes a text run to the open element. Text-only kinds append it
// to their buffer, text-in-content kinds receive it as an anonymous text
// child in place, and every other kind drops it.
func (b *Builder) Text(run string) {
	top := b.top()
	if top == nil {
		return
	}
	switch {
	case top.Shape() == ShapeText:
		top.text += run
	case top.kind.TextInContent():
		top.appendChild(NewText(run))
	}
}

// Finish returns the last completed root element.
func (b *Builder) Finish() (*Node, error) {
	if len(b.stack) > 0 {
		return nil, fmt.Errorf("%w: <%s> never closed", ErrMismatchedEnd, b.top().kind)
	}
	if b.root == nil {
		return nil, ErrEmptyDocument
	}
	return b.root, nil
}

func (b *Builder) top() *Node {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

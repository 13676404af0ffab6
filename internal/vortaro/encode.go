package vortaro

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Keys of the generic encoding besides attribute names.
const (
	keyText     = "text"
	keyContent  = "content"
	keyHeadword = "kap"
)

// Encode converts a node into its generic tagged-map form:
//
//	text kind:    {kind: {"text": buf, attrs...}}
//	content kind: {kind: {"content": [...], attrs..., "kap": {"kap": {...}}}}
//	leaf kind:    {kind: {attrs...}}
//	text run:     {"text": buf}
//
// Every declared attribute is emitted, defaults included. The result only
// holds maps, slices and strings, so it marshals to JSON as is.
func Encode(n *Node) map[string]any {
	if n.kind == KindText {
		return map[string]any{keyText: n.text}
	}

	decl := schema[n.kind].attrs
	body := make(map[string]any, len(decl)+2)
	for i, at := range decl {
		body[at.Name] = n.attrs[i]
	}

	switch n.Shape() {
	case ShapeText:
		body[keyText] = n.text
	case ShapeContent:
		items := make([]any, len(n.children))
		for i, c := range n.children {
			items[i] = Encode(c)
		}
		body[keyContent] = items
		if n.headword != nil {
			body[keyHeadword] = Encode(n.headword)
		}
	}
	return map[string]any{string(n.kind): body}
}

// Decode rebuilds a node from its generic form. Decode(Encode(n)) is
// structurally equal to n.
func Decode(v map[string]any) (*Node, error) {
	if len(v) != 1 {
		return nil, fmt.Errorf("%w: expected one tag, got %d", ErrInvalidEncoding, len(v))
	}

	for tag, payload := range v {
		if tag == keyText {
			s, ok := payload.(string)
			if !ok {
				return nil, fmt.Errorf("%w: text run is %T", ErrInvalidEncoding, payload)
			}
			return NewText(s), nil
		}

		kind, err := LookupKind(tag)
		if err != nil {
			return nil, err
		}
		body, ok := payload.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: <%s> payload is %T", ErrInvalidEncoding, kind, payload)
		}
		return decodeBody(kind, body)
	}
	panic("unreachable")
}

func decodeBody(kind Kind, body map[string]any) (*Node, error) {
	n := newNode(kind)
	for i, at := range schema[kind].attrs {
		raw, ok := body[at.Name]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: <%s %s> is %T", ErrInvalidEncoding, kind, at.Name, raw)
		}
		n.attrs[i] = s
	}

	switch kind.Shape() {
	case ShapeText:
		if raw, ok := body[keyText]; ok {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: <%s> text is %T", ErrInvalidEncoding, kind, raw)
			}
			n.text = s
		}

	case ShapeContent:
		if raw, ok := body[keyContent]; ok {
			items, ok := raw.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: <%s> content is %T", ErrInvalidEncoding, kind, raw)
			}
			for i, item := range items {
				m, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("%w: <%s> content[%d] is %T", ErrInvalidEncoding, kind, i, item)
				}
				child, err := Decode(m)
				if err != nil {
					return nil, fmt.Errorf("<%s> content[%d]: %w", kind, i, err)
				}
				n.appendChild(child)
			}
		}

		if raw, ok := body[keyHeadword]; ok && kind.HasHeadword() {
			m, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: <%s> headword is %T", ErrInvalidEncoding, kind, raw)
			}
			hw, err := Decode(m)
			if err != nil {
				return nil, fmt.Errorf("<%s> headword: %w", kind, err)
			}
			if hw.kind != KindKap {
				return nil, fmt.Errorf("%w: <%s> headword is <%s>", ErrInvalidEncoding, kind, hw.kind)
			}
			n.headword = hw
		}
	}
	return n, nil
}

// MarshalJSON writes the generic encoding of n without HTML escaping.
// json.Marshal escapes the result again; call MarshalJSON directly or use
// a json.Encoder with SetEscapeHTML(false) to keep markup readable.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Encode(n)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON reads a generic encoding into n.
func (n *Node) UnmarshalJSON(data []byte) error {
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	decoded, err := Decode(v)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

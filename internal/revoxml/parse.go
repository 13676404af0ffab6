// Package revoxml turns Revo article markup into vortaro trees.
package revoxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/XekriRedmane/retavortaro/internal/vortaro"
)

// Parser reads article files with a fixed entity table. It holds no
// per-document state and is safe for concurrent use.
type Parser struct {
	entities map[string]string
}

// NewParser returns a Parser resolving the given named entities. A nil
// table resolves the HTML entities only.
func NewParser(entities map[string]string) *Parser {
	if entities == nil {
		entities = xml.HTMLEntity
	}
	return &Parser{entities: entities}
}

// ParseFile parses one article file.
func (p *Parser) ParseFile(path string) (*vortaro.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	root, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return root, nil
}

// Parse drives a vortaro.Builder with the tokens of r. Comments,
// directives and processing instructions are skipped.
func (p *Parser) Parse(r io.Reader) (*vortaro.Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.Entity = p.entities

	b := vortaro.NewBuilder()
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("line %d: %w", line(dec), err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			attrs := make(map[string]string, len(tok.Attr))
			for _, at := range tok.Attr {
				attrs[at.Name.Local] = at.Value
			}
			if err := b.StartElement(tok.Name.Local, attrs); err != nil {
				return nil, fmt.Errorf("line %d: %w", line(dec), err)
			}
		case xml.EndElement:
			if err := b.EndElement(tok.Name.Local); err != nil {
				return nil, fmt.Errorf("line %d: %w", line(dec), err)
			}
		case xml.CharData:
			b.Text(string(tok))
		}
	}
	return b.Finish()
}

func line(dec *xml.Decoder) int {
	l, _ := dec.InputPos()
	return l
}

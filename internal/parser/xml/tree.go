package xmlparser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// node is an element under construction.
type node struct {
	name     string
	attrs    []xml.Attr
	children map[string]any
	text     strings.Builder
}

// DecodeTree converts an XML document into nested maps and lists:
//
//   - an element with only text becomes its trimmed text (nil when empty),
//   - an element with attributes or children becomes map[string]any, with
//     attributes under "@name" and non-blank text under "#text",
//   - repeated sibling elements with the same name become []any in document
//     order.
//
// The result maps the root element name to its value. Namespace prefixes are
// dropped; only local names are used.
func DecodeTree(r io.Reader) (map[string]any, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.CharsetReader = charsetReader

	var (
		stack []*node
		root  map[string]any
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml parser: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, fmt.Errorf("xml parser: multiple root elements")
			}
			stack = append(stack, &node{name: t.Name.Local, attrs: t.Attr})

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}

		case xml.EndElement:
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			v := n.value()
			if len(stack) == 0 {
				root = map[string]any{n.name: v}
				continue
			}
			stack[len(stack)-1].add(n.name, v)
		}
	}
	if root == nil {
		return nil, fmt.Errorf("xml parser: no root element")
	}
	return root, nil
}

func (n *node) add(name string, v any) {
	if n.children == nil {
		n.children = map[string]any{}
	}
	prev, ok := n.children[name]
	if !ok {
		n.children[name] = v
		return
	}
	if list, ok := prev.([]any); ok {
		n.children[name] = append(list, v)
		return
	}
	n.children[name] = []any{prev, v}
}

func (n *node) value() any {
	text := strings.TrimSpace(n.text.String())
	if len(n.attrs) == 0 && len(n.children) == 0 {
		if text == "" {
			return nil
		}
		return text
	}
	m := make(map[string]any, len(n.children)+len(n.attrs)+1)
	for _, a := range n.attrs {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		m["@"+a.Name.Local] = a.Value
	}
	for k, v := range n.children {
		m[k] = v
	}
	if text != "" {
		m["#text"] = text
	}
	return m
}

// charsetReader transcodes documents that declare a non-UTF-8 encoding,
// e.g. <?xml version="1.0" encoding="ISO-8859-1"?>.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

// Package envelope implements the wire codec for the backend's
// envelope/message/entity/attributegroup XML dialect. It builds outbound
// request documents and parses inbound responses into a generic,
// schema-less node tree with lenient query primitives: every accessor
// returns a safe default instead of failing when a node or attribute is
// absent. Only Parse itself fails, and only on malformed markup.
package envelope

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is one element of the parsed response tree. Attribute names and
// element names are matched case-insensitively by the query primitives
// because the backend is not consistent about casing across environments.
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Parent   *Node
	Children []*Node
}

// Document is a parsed response envelope.
type Document struct {
	Root *Node
}

// ParseError reports malformed response markup.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed envelope: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes wire text into a Document. It fails fast on malformed
// input and never returns a nil tree silently: a nil error implies a
// non-nil document with a non-nil root.
func Parse(wire string) (*Document, error) {
	if strings.TrimSpace(wire) == "" {
		return nil, &ParseError{Err: fmt.Errorf("empty document")}
	}

	dec := xml.NewDecoder(strings.NewReader(wire))
	var root *Node
	var cur *Node

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, &ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Name:   t.Name.Local,
				Attrs:  make(map[string]string, len(t.Attr)),
				Parent: cur,
			}
			for _, a := range t.Attr {
				n.Attrs[a.Name.Local] = a.Value
			}
			if cur == nil {
				if root != nil {
					return nil, &ParseError{Err: fmt.Errorf("multiple root elements")}
				}
				root = n
			} else {
				cur.Children = append(cur.Children, n)
			}
			cur = n
		case xml.EndElement:
			if cur != nil {
				cur = cur.Parent
			}
		case xml.CharData:
			if cur != nil {
				text := strings.TrimSpace(string(t))
				if text != "" {
					if cur.Text != "" {
						cur.Text += " "
					}
					cur.Text += text
				}
			}
		}
	}

	if root == nil {
		return nil, &ParseError{Err: fmt.Errorf("no root element")}
	}
	if cur != nil {
		return nil, &ParseError{Err: fmt.Errorf("unclosed element %s", cur.Name)}
	}
	return &Document{Root: root}, nil
}

// FindAll returns every descendant of n (including n itself) whose element
// name matches, in document order. Matching is case-insensitive.
func (n *Node) FindAll(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	n.walk(func(c *Node) bool {
		if strings.EqualFold(c.Name, name) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// FindFirst returns the first descendant of n (including n itself) whose
// element name matches, or nil.
func (n *Node) FindFirst(name string) *Node {
	if n == nil {
		return nil
	}
	var found *Node
	n.walk(func(c *Node) bool {
		if strings.EqualFold(c.Name, name) {
			found = c
			return false
		}
		return true
	})
	return found
}

// walk visits nodes depth-first in document order until fn returns false.
func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// Attr returns the named attribute or def when the node or the attribute
// is absent. Matching is case-insensitive.
func (n *Node) Attr(name, def string) string {
	if n == nil {
		return def
	}
	if v, ok := n.Attrs[name]; ok {
		return v
	}
	for k, v := range n.Attrs {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return def
}

// TrimmedText returns the node's text content, trimmed, or def when the
// node is absent or carries no text.
func (n *Node) TrimmedText(def string) string {
	if n == nil {
		return def
	}
	text := strings.TrimSpace(n.Text)
	if text == "" {
		return def
	}
	return text
}

// ChildText returns the trimmed text of the first child element with the
// given name, or def.
func (n *Node) ChildText(name, def string) string {
	return n.FindFirst(name).TrimmedText(def)
}

// FindAll forwards to the document root.
func (d *Document) FindAll(name string) []*Node {
	if d == nil {
		return nil
	}
	return d.Root.FindAll(name)
}

// FindFirst forwards to the document root.
func (d *Document) FindFirst(name string) *Node {
	if d == nil {
		return nil
	}
	return d.Root.FindFirst(name)
}

// MessageName returns the NAME attribute of the response's MESSAGE
// element, or the empty string when no message is present.
func (d *Document) MessageName() string {
	return d.FindFirst("MESSAGE").Attr("NAME", "")
}

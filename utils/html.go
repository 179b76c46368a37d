package utils

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLNode adds some convenience methods to a parsed HTML node.
type HTMLNode html.Node

// Get returns the attribute `name` or ""
func (h *HTMLNode) Get(name string) string {
	v, _ := h.Lookup(name)
	return v
}

// Lookup returns the attribute `name` (matched ASCII case-insensitively),
// and whether it is present.
func (h *HTMLNode) Lookup(name string) (string, bool) {
	for _, attr := range h.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, name) {
			return attr.Val, true
		}
	}
	return "", false
}

// LookupNS is the namespace aware version of Lookup.
func (h *HTMLNode) LookupNS(namespace, name string) (string, bool) {
	if namespace == "" {
		return h.Lookup(name)
	}
	for _, attr := range h.Attr {
		if attr.Namespace == namespace && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// HasAttr returns true if the node has the attribute `name`, whatever its value.
func (h *HTMLNode) HasAttr(name string) bool {
	_, ok := h.Lookup(name)
	return ok
}

// Is returns true if the node is an element of the given type.
func (h *HTMLNode) Is(a atom.Atom) bool {
	return h.Type == html.ElementNode && h.DataAtom == a
}

// GetChildText returns the text directly in the element, but not descendants.
// It's the concatenation of all children's TextNodes.
func (h *HTMLNode) GetChildText() string {
	var content strings.Builder
	for child := h.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			content.WriteString(child.Data)
		}
	}
	return content.String()
}

// Text returns the text of the node and all its descendants.
func (h *HTMLNode) Text() string {
	var content strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			content.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk((*html.Node)(h))
	return content.String()
}

// ElementChildren returns the children of type ElementNode.
func (h *HTMLNode) ElementChildren() []*HTMLNode {
	var out []*HTMLNode
	for child := h.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			out = append(out, (*HTMLNode)(child))
		}
	}
	return out
}

// IterElements walks the tree in document order, calling `f`
// on each element node.
func (h *HTMLNode) IterElements(f func(*HTMLNode)) {
	if h.Type == html.ElementNode {
		f(h)
	}
	for child := h.FirstChild; child != nil; child = child.NextSibling {
		(*HTMLNode)(child).IterElements(f)
	}
}

// DocumentElement returns the <html> element of a parsed document, and whether the
// document has a doctype (if not, the document should be rendered in quirks mode).
func DocumentElement(doc *html.Node) (root *HTMLNode, hasDoctype bool) {
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.DoctypeNode:
			hasDoctype = true
		case html.ElementNode:
			if root == nil {
				root = (*HTMLNode)(child)
			}
		}
	}
	return root, hasDoctype
}

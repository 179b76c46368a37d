package selector

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLElement implements Element for nodes parsed by golang.org/x/net/html.
// The states which depend on user interaction (hover, focus, visited, ...)
// are never set: hosts tracking them should wrap this type.
// Two values wrapping the same node are equal.
type HTMLElement struct {
	node *html.Node
}

// NewHTMLElement returns nil if `n` is nil or not an element,
// and a HTMLElement otherwise.
func NewHTMLElement(n *html.Node) Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return HTMLElement{node: n}
}

// Node returns the wrapped node.
func (e HTMLElement) Node() *html.Node { return e.node }

func (e HTMLElement) LocalName() string { return e.node.Data }

func (e HTMLElement) NamespaceURI() string {
	switch e.node.Namespace {
	case "", "html":
		return "http://www.w3.org/1999/xhtml"
	case "svg":
		return "http://www.w3.org/2000/svg"
	case "math":
		return "http://www.w3.org/1998/Math/MathML"
	default:
		return e.node.Namespace
	}
}

// attribute namespaces are stored by prefix in parsed nodes
var attrNamespacePrefixes = map[string]string{
	"http://www.w3.org/1999/xlink":         "xlink",
	"http://www.w3.org/XML/1998/namespace": "xml",
	"http://www.w3.org/2000/xmlns/":        "xmlns",
}

func (e HTMLElement) Attribute(namespace, name string) (string, bool) {
	if prefix, ok := attrNamespacePrefixes[namespace]; ok {
		namespace = prefix
	}
	for _, attr := range e.node.Attr {
		if (namespace == "*" || attr.Namespace == namespace) && strings.EqualFold(attr.Key, name) {
			return attr.Val, true
		}
	}
	return "", false
}

func (e HTMLElement) get(name string) string {
	v, _ := e.Attribute("", name)
	return v
}

func (e HTMLElement) has(name string) bool {
	_, ok := e.Attribute("", name)
	return ok
}

func (e HTMLElement) ID() string        { return e.get("id") }
func (e HTMLElement) ClassText() string { return e.get("class") }

func (e HTMLElement) Lang() string {
	for n := e.node; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		el := HTMLElement{node: n}
		if v, ok := el.Attribute("", "lang"); ok {
			return v
		}
		if v, ok := el.Attribute("xml", "lang"); ok {
			return v
		}
	}
	return ""
}

func (e HTMLElement) Dir() string {
	for n := e.node; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		switch strings.ToLower(HTMLElement{node: n}.get("dir")) {
		case "rtl":
			return "rtl"
		case "ltr":
			return "ltr"
		}
	}
	return "ltr"
}

func (e HTMLElement) isFormControl() bool {
	switch e.node.DataAtom {
	case atom.Button, atom.Input, atom.Select, atom.Textarea, atom.Optgroup, atom.Option, atom.Fieldset:
		return true
	}
	return false
}

func (e HTMLElement) State() UIState {
	var s UIState
	switch e.node.DataAtom {
	case atom.A, atom.Area, atom.Link:
		if e.has("href") {
			s |= Link
		}
	}
	if e.isFormControl() {
		if e.has("disabled") {
			s |= Disabled
		} else {
			s |= Enabled
		}
	}
	inputType := strings.ToLower(e.get("type"))
	switch e.node.DataAtom {
	case atom.Input:
		if (inputType == "checkbox" || inputType == "radio") && e.has("checked") {
			s |= Checked | Default
		}
		if e.has("placeholder") && e.get("value") == "" {
			s |= PlaceholderShown
		}
	case atom.Option:
		if e.has("selected") {
			s |= Checked | Default
		}
	case atom.Textarea:
		if e.has("placeholder") && e.node.FirstChild == nil {
			s |= PlaceholderShown
		}
	}
	switch e.node.DataAtom {
	case atom.Input, atom.Textarea:
		if e.has("readonly") || e.has("disabled") {
			s |= ReadOnly
		}
	case atom.Select:
	default:
		if !strings.EqualFold(e.get("contenteditable"), "true") {
			s |= ReadOnly
		}
	}
	switch e.node.DataAtom {
	case atom.Input, atom.Select, atom.Textarea:
		if e.has("required") {
			s |= Required
		} else {
			s |= Optional
		}
		s |= Valid
	}
	return s
}

func (e HTMLElement) IsEmpty() bool {
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode || c.Type == html.TextNode {
			return false
		}
	}
	return true
}

func (e HTMLElement) Parent() Element { return NewHTMLElement(e.node.Parent) }

func (e HTMLElement) PreviousSibling() Element {
	for n := e.node.PrevSibling; n != nil; n = n.PrevSibling {
		if n.Type == html.ElementNode {
			return HTMLElement{node: n}
		}
	}
	return nil
}

func (e HTMLElement) NextSibling() Element {
	for n := e.node.NextSibling; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			return HTMLElement{node: n}
		}
	}
	return nil
}

func (e HTMLElement) FirstChild() Element {
	for n := e.node.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			return HTMLElement{node: n}
		}
	}
	return nil
}

// MatchAll returns the elements of the tree rooted at `root`
// (included) matching `sel`, in document order.
func MatchAll(root *html.Node, sel Selector) []*html.Node {
	return Matcher{}.matchAll(root, sel, nil)
}

func (m Matcher) matchAll(n *html.Node, sel Selector, out []*html.Node) []*html.Node {
	if el := NewHTMLElement(n); el != nil && m.Match(el, "", sel) {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = m.matchAll(c, sel, out)
	}
	return out
}

// MatchFirst returns the first element matching `sel`, or nil.
func MatchFirst(root *html.Node, sel Selector) *html.Node {
	if el := NewHTMLElement(root); el != nil && Matches(el, sel) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := MatchFirst(c, sel); found != nil {
			return found
		}
	}
	return nil
}

package selector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benoitkugler/webstyle/css/parser"
	"github.com/benoitkugler/webstyle/utils"
)

// ErrInvalidSelector is wrapped by all the errors returned when parsing selectors.
var ErrInvalidSelector = errors.New("invalid selector")

// Parse parses a selector list, like `h1 > p.note, :is(ul, ol) li`.
func Parse(input string) (SelectorList, error) {
	return ParseWithNamespaces(input, nil)
}

// MustCompile is like Parse but panics on invalid input.
func MustCompile(input string) SelectorList {
	out, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return out
}

// ParseWithNamespaces resolves the namespace prefixes using the given map
// (prefix -> URI). The empty prefix, if present, is the default namespace
// for type selectors.
func ParseWithNamespaces(input string, namespaces map[string]string) (SelectorList, error) {
	p := selParser{namespaces: namespaces}
	out, err := p.parseList(parser.Tokenize(input), false)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %s", ErrInvalidSelector, input, err)
	}
	return out, nil
}

type selParser struct {
	namespaces map[string]string

	tokens []parser.Token
	pos    int
}

func (p *selParser) eof() bool { return p.pos >= len(p.tokens) }

func (p *selParser) peek() parser.Token {
	if p.eof() {
		return parser.Token{}
	}
	return p.tokens[p.pos]
}

func (p *selParser) skipWhitespace() bool {
	skipped := false
	for !p.eof() && p.tokens[p.pos].Kind == parser.Whitespace {
		p.pos++
		skipped = true
	}
	return skipped
}

// parseList parses a comma separated list. When forgiving is true,
// invalid selectors are dropped instead of invalidating the whole list.
func (p selParser) parseList(tokens []parser.Token, forgiving bool) (SelectorList, error) {
	var out SelectorList
	for _, part := range parser.SplitOnComma(tokens) {
		sub := selParser{namespaces: p.namespaces, tokens: parser.Strip(part)}
		sel, err := sub.parseComplex()
		if err != nil {
			if forgiving {
				continue
			}
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

func (p *selParser) parseComplex() (Selector, error) {
	if p.eof() {
		return nil, errors.New("empty selector")
	}
	first, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	var sel Selector = first
	for {
		sawSpace := p.skipWhitespace()
		if p.eof() {
			return sel, nil
		}
		comb := Descendant
		switch t := p.peek(); {
		case t.IsDelim(">"):
			comb = Child
		case t.IsDelim("+"):
			comb = NextSibling
		case t.IsDelim("~"):
			comb = SubsequentSibling
		default:
			if !sawSpace {
				return nil, fmt.Errorf("unexpected %s", t)
			}
		}
		if comb != Descendant {
			p.pos++
			p.skipWhitespace()
		}
		right, err := p.parseCompound()
		if err != nil {
			return nil, err
		}
		sel = Combined{Left: sel, Combinator: comb, Right: right}
	}
}

func (p *selParser) resolveNamespace(prefix string) (string, error) {
	if prefix == "*" {
		return "*", nil
	}
	if prefix == "" {
		return "", nil
	}
	uri, ok := p.namespaces[prefix]
	if !ok {
		return "", fmt.Errorf("unknown namespace prefix %s", prefix)
	}
	return uri, nil
}

// parseQualifiedName parses [prefix|]name, where name (and prefix) may be '*'
// if allowStar is true. It returns ok = false if no name is found.
func (p *selParser) parseQualifiedName(allowStar bool) (ns string, hasNs bool, local string, ok bool, err error) {
	isName := func(t parser.Token) bool {
		return t.Kind == parser.Ident || (allowStar && t.IsDelim("*"))
	}
	t := p.peek()
	if t.IsDelim("|") { // |name : no namespace
		p.pos++
		if !isName(p.peek()) {
			return "", false, "", false, errors.New("expected a name after '|'")
		}
		local = p.peek().Value
		p.pos++
		return "", true, local, true, nil
	}
	if !isName(t) {
		return "", false, "", false, nil
	}
	p.pos++
	if p.peek().IsDelim("|") && p.pos+1 < len(p.tokens) && isName(p.tokens[p.pos+1]) {
		p.pos++
		local = p.peek().Value
		p.pos++
		ns, err = p.resolveNamespace(t.Value)
		return ns, true, local, true, err
	}
	return "", false, t.Value, true, nil
}

func (p *selParser) parseCompound() (Compound, error) {
	var c Compound
	start := p.pos
	ns, hasNs, local, ok, err := p.parseQualifiedName(true)
	if err != nil {
		return c, err
	}
	if ok {
		if local == "*" {
			local = ""
		}
		c.Type = TypeName{Namespace: ns, HasNamespace: hasNs, Local: utils.AsciiLower(local)}
		if hasNs && ns == "*" {
			c.Type.HasNamespace = false
		}
	}
	if !c.Type.HasNamespace {
		if def, ok := p.namespaces[""]; ok && c.Type.Local != "" {
			c.Type = TypeName{Namespace: def, HasNamespace: true, Local: c.Type.Local}
		}
	}

	for !p.eof() {
		t := p.peek()
		if c.PseudoElement != "" && t.Kind != parser.Colon {
			return c, fmt.Errorf("unexpected %s after a pseudo-element", t)
		}
		switch {
		case t.Kind == parser.Hash:
			p.pos++
			c.Conditions = append(c.Conditions, ID{Name: t.Value})
		case t.IsDelim("."):
			p.pos++
			name := p.peek()
			if name.Kind != parser.Ident {
				return c, fmt.Errorf("expected a class name, got %s", name)
			}
			p.pos++
			c.Conditions = append(c.Conditions, Class{Name: name.Value})
		case t.Kind == parser.SquareBracketsBlock:
			p.pos++
			attr, err := p.parseAttr(t.Arguments)
			if err != nil {
				return c, err
			}
			c.Conditions = append(c.Conditions, attr)
		case t.Kind == parser.Colon:
			p.pos++
			if err := p.parsePseudo(&c); err != nil {
				return c, err
			}
		default:
			if p.pos == start {
				return c, fmt.Errorf("expected a selector, got %s", t)
			}
			return c, nil
		}
	}
	if p.pos == start {
		return c, errors.New("empty compound selector")
	}
	return c, nil
}

func (p *selParser) parseAttr(args []parser.Token) (Attr, error) {
	sub := selParser{namespaces: p.namespaces, tokens: parser.Strip(args)}
	ns, hasNs, name, ok, err := sub.parseQualifiedName(false)
	if err != nil {
		return Attr{}, err
	}
	if !ok {
		// [*|name]
		if sub.peek().IsDelim("*") && sub.pos+2 < len(sub.tokens) && sub.tokens[sub.pos+1].IsDelim("|") {
			sub.pos += 2
			name, ns, hasNs = sub.peek().Value, "*", true
			sub.pos++
		} else {
			return Attr{}, fmt.Errorf("expected an attribute name, got %s", sub.peek())
		}
	}
	attr := Attr{Namespace: ns, HasNamespace: hasNs, Name: name}
	sub.skipWhitespace()
	if sub.eof() {
		return attr, nil
	}
	opToken := sub.peek()
	if opToken.Kind != parser.Delim {
		return attr, fmt.Errorf("expected an attribute operator, got %s", opToken)
	}
	switch opToken.Value {
	case "=":
		attr.Op = AttrEquals
	case "~=":
		attr.Op = AttrIncludes
	case "|=":
		attr.Op = AttrDashMatch
	case "^=":
		attr.Op = AttrPrefix
	case "$=":
		attr.Op = AttrSuffix
	case "*=":
		attr.Op = AttrSubstring
	default:
		return attr, fmt.Errorf("unknown attribute operator %s", opToken.Value)
	}
	sub.pos++
	sub.skipWhitespace()
	value := sub.peek()
	if value.Kind != parser.Ident && value.Kind != parser.String {
		return attr, fmt.Errorf("expected an attribute value, got %s", value)
	}
	attr.Value = value.Value
	sub.pos++
	sub.skipWhitespace()
	if flag := sub.peek(); flag.Kind == parser.Ident {
		switch utils.AsciiLower(flag.Value) {
		case "i":
			attr.Case = CaseInsensitive
		case "s":
			attr.Case = CaseSensitive
		default:
			return attr, fmt.Errorf("unknown attribute flag %s", flag.Value)
		}
		sub.pos++
		sub.skipWhitespace()
	}
	if !sub.eof() {
		return attr, fmt.Errorf("unexpected %s in attribute selector", sub.peek())
	}
	return attr, nil
}

var legacyPseudoElements = utils.NewSet("before", "after", "first-line", "first-letter")

var simplePseudoClasses = utils.NewSet(
	"root", "scope", "empty", "first-child", "last-child", "only-child",
	"first-of-type", "last-of-type", "only-of-type",
	"link", "visited", "any-link", "hover", "active", "focus", "focus-visible", "focus-within", "target",
	"enabled", "disabled", "checked", "indeterminate", "read-only", "read-write",
	"placeholder-shown", "default", "valid", "invalid", "required", "optional",
	"in-range", "out-of-range",
)

// parsePseudo is called after a first ':'
func (p *selParser) parsePseudo(c *Compound) error {
	t := p.peek()
	if t.Kind == parser.Colon { // pseudo-element
		p.pos++
		name := p.peek()
		if name.Kind != parser.Ident {
			return fmt.Errorf("expected a pseudo-element name, got %s", name)
		}
		p.pos++
		if c.PseudoElement != "" {
			return errors.New("only one pseudo-element is allowed")
		}
		c.PseudoElement = utils.AsciiLower(name.Value)
		return nil
	}
	switch t.Kind {
	case parser.Ident:
		p.pos++
		name := utils.AsciiLower(t.Value)
		if legacyPseudoElements.Has(name) {
			if c.PseudoElement != "" {
				return errors.New("only one pseudo-element is allowed")
			}
			c.PseudoElement = name
			return nil
		}
		c.Conditions = append(c.Conditions, simplePseudoClass(name))
		return nil
	case parser.Function:
		p.pos++
		cond, err := p.parseFunctionalPseudoClass(utils.AsciiLower(t.Value), t.Arguments)
		if err != nil {
			return err
		}
		c.Conditions = append(c.Conditions, cond)
		return nil
	}
	return fmt.Errorf("expected a pseudo-class, got %s", t)
}

func simplePseudoClass(name string) Condition {
	if simplePseudoClasses.Has(name) {
		return PseudoClass{Name: name}
	}
	return Unsupported{Name: name}
}

func (p *selParser) parseFunctionalPseudoClass(name string, args []parser.Token) (Condition, error) {
	switch name {
	case "not":
		list, err := p.parseList(args, false)
		if err != nil {
			return nil, err
		}
		return Not{List: list}, nil
	case "is", "matches", "-webkit-any", "where":
		list, _ := p.parseList(args, true)
		return Is{List: list, Where: name == "where"}, nil
	case "has":
		return p.parseHas(args)
	case "nth-child", "nth-last-child", "nth-of-type", "nth-last-of-type":
		return p.parseNth(name, args)
	case "lang":
		var ranges []string
		for _, part := range parser.SplitOnComma(args) {
			part = parser.RemoveWhitespace(part)
			if len(part) != 1 || (part[0].Kind != parser.Ident && part[0].Kind != parser.String) {
				return nil, fmt.Errorf("invalid argument for :lang(): %s", parser.Serialize(part))
			}
			ranges = append(ranges, part[0].Value)
		}
		return Lang{Ranges: ranges}, nil
	case "dir":
		args = parser.RemoveWhitespace(args)
		if len(args) != 1 || args[0].Kind != parser.Ident {
			return nil, fmt.Errorf("invalid argument for :dir(): %s", parser.Serialize(args))
		}
		return Dir{Value: utils.AsciiLower(args[0].Value)}, nil
	}
	return Unsupported{Name: name + "()"}, nil
}

func (p *selParser) parseNth(name string, args []parser.Token) (Condition, error) {
	var of []parser.Token
	anb := args
	if name == "nth-child" || name == "nth-last-child" {
		for i, t := range args {
			if t.IsIdent("of") {
				anb, of = args[:i], args[i+1:]
				break
			}
		}
	}
	a, b, ok := parser.ParseNth(anb)
	if !ok {
		return nil, fmt.Errorf("invalid <An+B> expression: %s", parser.Serialize(anb))
	}
	cond := Nth{
		A:      a,
		B:      b,
		Last:   strings.HasPrefix(name, "nth-last"),
		OfType: strings.HasSuffix(name, "of-type"),
	}
	if of != nil {
		list, err := p.parseList(of, false)
		if err != nil {
			return nil, err
		}
		cond.Of = list
	}
	return cond, nil
}

// parseHas rewrites each relative selector `rel` as `:scope rel`
// and parses it again, anchoring the result on a synthetic scope.
func (p *selParser) parseHas(args []parser.Token) (Condition, error) {
	var out Has
	for _, part := range parser.SplitOnComma(args) {
		text := ":scope " + parser.Serialize(parser.Strip(part))
		sub := selParser{namespaces: p.namespaces, tokens: parser.Tokenize(text)}
		sel, err := sub.parseComplex()
		if err != nil {
			return nil, err
		}
		combined, ok := sel.(Combined)
		if !ok {
			return nil, errors.New("empty relative selector in :has()")
		}
		out.Relative = append(out.Relative, anchorOnScope(combined))
	}
	return out, nil
}

// anchorOnScope replaces the leftmost compound (the :scope added
// by parseHas) by the synthetic scope anchor.
func anchorOnScope(c Combined) Combined {
	switch left := c.Left.(type) {
	case Combined:
		c.Left = anchorOnScope(left)
	case Compound:
		c.Left = Compound{Scope: true}
	}
	return c
}

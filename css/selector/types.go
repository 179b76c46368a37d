// Package selector implements CSS selectors: an immutable AST,
// a parser building it from text, the specificity computation and
// a matcher working on any tree exposing the Element interface.
package selector

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/webstyle/css/parser"
)

// Combinator joins two compound selectors.
type Combinator uint8

const (
	Descendant        Combinator = iota // A B
	Child                               // A > B
	NextSibling                         // A + B
	SubsequentSibling                   // A ~ B
)

func (c Combinator) String() string {
	switch c {
	case Descendant:
		return " "
	case Child:
		return " > "
	case NextSibling:
		return " + "
	case SubsequentSibling:
		return " ~ "
	default:
		return " ? "
	}
}

// Selector is a complex selector, that is, either a single Compound or
// a Combined chain.
type Selector interface {
	isSelector()
	String() string
}

// SelectorList is a group of selectors sharing the same declarations,
// like `h1, h2`.
type SelectorList []Selector

func (l SelectorList) String() string {
	chunks := make([]string, len(l))
	for i, s := range l {
		chunks[i] = s.String()
	}
	return strings.Join(chunks, ", ")
}

// TypeName is a type selector with an optional namespace.
// An empty Local means the universal selector.
type TypeName struct {
	// Namespace is only used when HasNamespace is true;
	// "*" means any namespace.
	Namespace    string
	HasNamespace bool
	Local        string
}

func (t TypeName) String() string {
	local := t.Local
	if local == "" {
		local = "*"
	}
	if t.HasNamespace {
		return t.Namespace + "|" + local
	}
	return local
}

// Compound is a sequence of simple selectors applying to the same element.
// Its conditions are a conjunction.
type Compound struct {
	Type TypeName
	// Scope is set for the synthetic anchor of relative selectors
	// (see Has). It matches only the scoping element and has no specificity.
	Scope         bool
	Conditions    []Condition
	PseudoElement string
}

// Combined is `Left Combinator Right`.
type Combined struct {
	Left       Selector
	Combinator Combinator
	Right      Compound
}

func (Compound) isSelector() {}
func (Combined) isSelector() {}

func (c Compound) String() string {
	var b strings.Builder
	if c.Scope {
		b.WriteString(":scope")
	} else if c.Type.Local != "" || c.Type.HasNamespace || (len(c.Conditions) == 0 && c.PseudoElement == "") {
		b.WriteString(c.Type.String())
	}
	for _, cond := range c.Conditions {
		b.WriteString(cond.String())
	}
	if c.PseudoElement != "" {
		b.WriteString("::" + c.PseudoElement)
	}
	return b.String()
}

func (c Combined) String() string {
	return c.Left.String() + c.Combinator.String() + c.Right.String()
}

// Rightmost returns the compound selector the matched element is tested against.
func Rightmost(s Selector) Compound {
	switch s := s.(type) {
	case Compound:
		return s
	case Combined:
		return s.Right
	}
	return Compound{}
}

// Condition is a simple selector other than a type selector,
// or a logical combination of selectors.
type Condition interface {
	isCondition()
	String() string
}

// AttrOp is the kind of attribute test.
type AttrOp uint8

const (
	AttrExists    AttrOp = iota // [att]
	AttrEquals                  // [att=val]
	AttrIncludes                // [att~=val], one of a whitespace separated list
	AttrDashMatch               // [att|=val], val or val-...
	AttrPrefix                  // [att^=val]
	AttrSuffix                  // [att$=val]
	AttrSubstring               // [att*=val]
)

var attrOpStrings = [...]string{"", "=", "~=", "|=", "^=", "$=", "*="}

// CaseFlag is the case sensitivity modifier of an attribute selector.
type CaseFlag uint8

const (
	CaseDefault     CaseFlag = iota
	CaseInsensitive          // [att=val i]
	CaseSensitive            // [att=val s]
)

type (
	// ID is `#name`
	ID struct{ Name string }

	// Class is `.name`
	Class struct{ Name string }

	// Attr is an attribute selector.
	Attr struct {
		Namespace    string
		HasNamespace bool
		Name         string
		Op           AttrOp
		Value        string
		Case         CaseFlag
	}

	// PseudoClass is a pseudo-class without argument, like `:hover`.
	PseudoClass struct{ Name string }

	// Lang is `:lang(range, ...)`
	Lang struct{ Ranges []string }

	// Dir is `:dir(ltr)` or `:dir(rtl)`
	Dir struct{ Value string }

	// Nth is one of :nth-child, :nth-last-child, :nth-of-type, :nth-last-of-type
	// (and the derived :first-child, ...), testing that the element position
	// is A*n+B for some n >= 0.
	Nth struct {
		A, B   int
		Last   bool
		OfType bool
		// Of optionally restricts the siblings counted (`:nth-child(2n of .a)`)
		Of SelectorList
	}

	// Is is `:is(...)`, or `:where(...)` when Where is true.
	Is struct {
		List  SelectorList
		Where bool
	}

	// Not is `:not(...)`
	Not struct{ List SelectorList }

	// Has is `:has(...)`. Each relative selector is anchored
	// on a Scope compound.
	Has struct{ Relative SelectorList }

	// Or is a disjunction of conditions.
	Or struct{ Conditions []Condition }

	// Unsupported is a syntactically valid but unknown pseudo-class, which never matches.
	Unsupported struct{ Name string }
)

func (ID) isCondition()          {}
func (Class) isCondition()       {}
func (Attr) isCondition()        {}
func (PseudoClass) isCondition() {}
func (Lang) isCondition()        {}
func (Dir) isCondition()         {}
func (Nth) isCondition()         {}
func (Is) isCondition()          {}
func (Not) isCondition()         {}
func (Has) isCondition()         {}
func (Or) isCondition()          {}
func (Unsupported) isCondition() {}

func (c ID) String() string          { return "#" + c.Name }
func (c Class) String() string       { return "." + c.Name }
func (c PseudoClass) String() string { return ":" + c.Name }
func (c Lang) String() string        { return ":lang(" + strings.Join(c.Ranges, ", ") + ")" }
func (c Dir) String() string         { return ":dir(" + c.Value + ")" }
func (c Not) String() string         { return ":not(" + c.List.String() + ")" }
func (c Unsupported) String() string { return ":" + c.Name }

func (c Attr) String() string {
	name := c.Name
	if c.HasNamespace {
		name = c.Namespace + "|" + name
	}
	if c.Op == AttrExists {
		return "[" + name + "]"
	}
	flag := ""
	switch c.Case {
	case CaseInsensitive:
		flag = " i"
	case CaseSensitive:
		flag = " s"
	}
	return "[" + name + attrOpStrings[c.Op] + parser.SerializeString(c.Value) + flag + "]"
}

func (c Nth) String() string {
	name := "nth-"
	if c.Last {
		name += "last-"
	}
	if c.OfType {
		name += "of-type"
	} else {
		name += "child"
	}
	arg := fmt.Sprintf("%dn%+d", c.A, c.B)
	if len(c.Of) != 0 {
		arg += " of " + c.Of.String()
	}
	return ":" + name + "(" + arg + ")"
}

func (c Is) String() string {
	if c.Where {
		return ":where(" + c.List.String() + ")"
	}
	return ":is(" + c.List.String() + ")"
}

func (c Has) String() string {
	chunks := make([]string, len(c.Relative))
	for i, s := range c.Relative {
		chunks[i] = strings.TrimPrefix(s.String(), ":scope ")
	}
	return ":has(" + strings.Join(chunks, ", ") + ")"
}

func (c Or) String() string {
	chunks := make([]string, len(c.Conditions))
	for i, s := range c.Conditions {
		chunks[i] = s.String()
	}
	return ":is(" + strings.Join(chunks, ", ") + ")"
}

package selector

import (
	"strings"

	"github.com/benoitkugler/webstyle/utils"
	"golang.org/x/text/language"
)

// Matcher holds the document wide options used when matching.
// The zero value is ready to use (standard mode).
type Matcher struct {
	// Quirks makes ID and class comparisons ASCII case-insensitive,
	// and `[CLASS]`, `[ID]` attribute selectors behave as their
	// lower-case versions.
	Quirks bool
}

// state is the per query context
type state struct {
	Matcher
	// scope is the anchor of relative selectors (see Has)
	scope Element
}

// Matches returns true if the element (not one of its pseudo-elements)
// matches `sel`, in standard mode.
func Matches(el Element, sel Selector) bool {
	return Matcher{}.Match(el, "", sel)
}

// Match returns true if `sel` matches the pseudo-element `pseudo` of `el`
// ("" for the element itself).
func (m Matcher) Match(el Element, pseudo string, sel Selector) bool {
	ok, _ := m.MatchWithSpecificity(el, pseudo, sel)
	return ok
}

// MatchWithSpecificity returns the specificity of the match,
// where :is() arguments contribute the most specific matching branch.
func (m Matcher) MatchWithSpecificity(el Element, pseudo string, sel Selector) (bool, Specificity) {
	if el == nil || sel == nil {
		return false, Specificity{}
	}
	if Rightmost(sel).PseudoElement != pseudo {
		return false, Specificity{}
	}
	st := state{Matcher: m}
	return st.matchSelector(el, sel, true)
}

// MatchList returns the index of the matching selector with the highest
// specificity (the last one in case of ties), or -1.
func MatchList(el Element, list SelectorList) int {
	index, _ := Matcher{}.MatchList(el, "", list)
	return index
}

// MatchList returns the index of the matching selector with the highest
// specificity, ties being broken by the later position in the list,
// or -1 if no selector matches.
func (m Matcher) MatchList(el Element, pseudo string, list SelectorList) (int, Specificity) {
	best, bestSpec := -1, Specificity{}
	for i, sel := range list {
		ok, spec := m.MatchWithSpecificity(el, pseudo, sel)
		if ok && (best == -1 || !spec.Less(bestSpec)) {
			best, bestSpec = i, spec
		}
	}
	return best, bestSpec
}

// matchSelector matches right to left; pseudo-elements are only
// allowed on the rightmost compound (already checked by the caller).
func (st *state) matchSelector(el Element, sel Selector, rightmost bool) (bool, Specificity) {
	switch s := sel.(type) {
	case Compound:
		if !rightmost && s.PseudoElement != "" {
			return false, Specificity{}
		}
		return st.matchCompound(el, s)
	case Combined:
		if !rightmost && s.Right.PseudoElement != "" {
			return false, Specificity{}
		}
		ok, spec := st.matchCompound(el, s.Right)
		if !ok {
			return false, Specificity{}
		}
		var (
			leftOK   bool
			leftSpec Specificity
		)
		switch s.Combinator {
		case Descendant:
			for p := el.Parent(); p != nil && !leftOK; p = p.Parent() {
				leftOK, leftSpec = st.matchSelector(p, s.Left, false)
			}
		case Child:
			if p := el.Parent(); p != nil {
				leftOK, leftSpec = st.matchSelector(p, s.Left, false)
			}
		case NextSibling:
			if p := el.PreviousSibling(); p != nil {
				leftOK, leftSpec = st.matchSelector(p, s.Left, false)
			}
		case SubsequentSibling:
			for p := el.PreviousSibling(); p != nil && !leftOK; p = p.PreviousSibling() {
				leftOK, leftSpec = st.matchSelector(p, s.Left, false)
			}
		}
		if !leftOK {
			return false, Specificity{}
		}
		return true, spec.Add(leftSpec)
	}
	return false, Specificity{}
}

// isExpensive returns true for the conditions requiring tree walks
func isExpensive(cond Condition) bool {
	switch cond.(type) {
	case Nth, Is, Not, Has, Or:
		return true
	}
	return false
}

func (st *state) matchCompound(el Element, c Compound) (bool, Specificity) {
	var spec Specificity
	if c.Scope {
		if st.scope == nil || el != st.scope {
			return false, spec
		}
	} else if !st.matchType(el, c.Type) {
		return false, spec
	}
	if c.Type.Local != "" {
		spec[3]++
	}
	if c.PseudoElement != "" {
		spec[3]++
	}
	// cheap conditions first
	for _, cond := range c.Conditions {
		if isExpensive(cond) {
			continue
		}
		ok, s := st.matchCondition(el, cond)
		if !ok {
			return false, Specificity{}
		}
		spec = spec.Add(s)
	}
	for _, cond := range c.Conditions {
		if !isExpensive(cond) {
			continue
		}
		ok, s := st.matchCondition(el, cond)
		if !ok {
			return false, Specificity{}
		}
		spec = spec.Add(s)
	}
	return true, spec
}

func (st *state) matchType(el Element, t TypeName) bool {
	if t.HasNamespace && t.Namespace != "*" && el.NamespaceURI() != t.Namespace {
		return false
	}
	if t.Local == "" {
		return true
	}
	return strings.EqualFold(el.LocalName(), t.Local)
}

func (st *state) equalIdent(a, b string) bool {
	if st.Quirks {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (st *state) matchCondition(el Element, cond Condition) (bool, Specificity) {
	switch c := cond.(type) {
	case ID:
		return st.equalIdent(el.ID(), c.Name), Specificity{0, 1, 0, 0}
	case Class:
		for _, class := range strings.Fields(el.ClassText()) {
			if st.equalIdent(class, c.Name) {
				return true, Specificity{0, 0, 1, 0}
			}
		}
		return false, Specificity{}
	case Attr:
		return st.matchAttr(el, c), Specificity{0, 0, 1, 0}
	case PseudoClass:
		return st.matchPseudoClass(el, c.Name), Specificity{0, 0, 1, 0}
	case Lang:
		return matchLang(el.Lang(), c.Ranges), Specificity{0, 0, 1, 0}
	case Dir:
		return el.Dir() == c.Value, Specificity{0, 0, 1, 0}
	case Nth:
		return st.matchNth(el, c), conditionSpecificity(c)
	case Is:
		best, found := Specificity{}, false
		for _, sel := range c.List {
			if ok, s := st.matchSelector(el, sel, false); ok {
				if !found || best.Less(s) {
					best = s
				}
				found = true
			}
		}
		if c.Where {
			best = Specificity{}
		}
		return found, best
	case Not:
		for _, sel := range c.List {
			if ok, _ := st.matchSelector(el, sel, false); ok {
				return false, Specificity{}
			}
		}
		return true, listSpecificity(c.List)
	case Has:
		return st.matchHas(el, c), listSpecificity(c.Relative)
	case Or:
		for _, sub := range c.Conditions {
			if ok, s := st.matchCondition(el, sub); ok {
				return true, s
			}
		}
		return false, Specificity{}
	}
	// Unsupported, or any unknown condition
	return false, Specificity{}
}

func (st *state) matchAttr(el Element, c Attr) bool {
	name := c.Name
	insensitive := c.Case == CaseInsensitive
	if st.Quirks && !c.HasNamespace {
		lower := utils.AsciiLower(name)
		if lower == "class" || lower == "id" {
			name = lower
			insensitive = c.Case != CaseSensitive
		}
	}
	namespace := ""
	if c.HasNamespace {
		namespace = c.Namespace
	}
	value, ok := el.Attribute(namespace, name)
	if !ok {
		return false
	}
	expected := c.Value
	if insensitive {
		value, expected = strings.ToLower(value), strings.ToLower(expected)
	}
	switch c.Op {
	case AttrExists:
		return true
	case AttrEquals:
		return value == expected
	case AttrIncludes:
		if expected == "" || strings.ContainsAny(expected, " \t\n\r\f") {
			return false
		}
		for _, s := range strings.Fields(value) {
			if s == expected {
				return true
			}
		}
		return false
	case AttrDashMatch:
		return value == expected || strings.HasPrefix(value, expected+"-")
	case AttrPrefix:
		return expected != "" && strings.HasPrefix(value, expected)
	case AttrSuffix:
		return expected != "" && strings.HasSuffix(value, expected)
	case AttrSubstring:
		return expected != "" && strings.Contains(value, expected)
	}
	return false
}

func (st *state) matchPseudoClass(el Element, name string) bool {
	s := el.State()
	switch name {
	case "root":
		return el.Parent() == nil
	case "scope":
		if st.scope != nil {
			return el == st.scope
		}
		return el.Parent() == nil
	case "empty":
		return el.IsEmpty()
	case "first-child":
		return el.PreviousSibling() == nil
	case "last-child":
		return el.NextSibling() == nil
	case "only-child":
		return el.PreviousSibling() == nil && el.NextSibling() == nil
	case "first-of-type":
		return st.matchNth(el, Nth{A: 0, B: 1, OfType: true})
	case "last-of-type":
		return st.matchNth(el, Nth{A: 0, B: 1, OfType: true, Last: true})
	case "only-of-type":
		return st.matchNth(el, Nth{A: 0, B: 1, OfType: true}) && st.matchNth(el, Nth{A: 0, B: 1, OfType: true, Last: true})
	case "link":
		return s&Link != 0 && s&Visited == 0
	case "visited":
		return s&Visited != 0
	case "any-link":
		return s&(Link|Visited) != 0
	case "hover":
		return s&Hover != 0
	case "active":
		return s&Active != 0
	case "focus":
		return s&Focus != 0
	case "focus-visible":
		return s&FocusVisible != 0
	case "focus-within":
		return s&(Focus|FocusWithin) != 0
	case "target":
		return s&Target != 0
	case "enabled":
		return s&Enabled != 0
	case "disabled":
		return s&Disabled != 0
	case "checked":
		return s&Checked != 0
	case "indeterminate":
		return s&Indeterminate != 0
	case "read-only":
		return s&ReadOnly != 0
	case "read-write":
		return s&ReadOnly == 0
	case "placeholder-shown":
		return s&PlaceholderShown != 0
	case "default":
		return s&Default != 0
	case "valid":
		return s&Valid != 0
	case "invalid":
		return s&Invalid != 0
	case "required":
		return s&Required != 0
	case "optional":
		return s&Optional != 0
	case "in-range":
		return s&InRange != 0
	case "out-of-range":
		return s&OutOfRange != 0
	}
	return false
}

// isSibling returns true if `sibling` is counted when computing the
// position of `el`
func (st *state) isSibling(el, sibling Element, c Nth) bool {
	if c.OfType {
		return sibling.LocalName() == el.LocalName() && sibling.NamespaceURI() == el.NamespaceURI()
	}
	if len(c.Of) != 0 {
		for _, sel := range c.Of {
			if ok, _ := st.matchSelector(sibling, sel, false); ok {
				return true
			}
		}
		return false
	}
	return true
}

func (st *state) matchNth(el Element, c Nth) bool {
	// with `of S`, the element itself must match S
	if len(c.Of) != 0 && !st.isSibling(el, el, c) {
		return false
	}
	position := 1
	if c.Last {
		for s := el.NextSibling(); s != nil; s = s.NextSibling() {
			if st.isSibling(el, s, c) {
				position++
			}
		}
	} else {
		for s := el.PreviousSibling(); s != nil; s = s.PreviousSibling() {
			if st.isSibling(el, s, c) {
				position++
			}
		}
	}
	return nthMatches(c.A, c.B, position)
}

// nthMatches returns true if position = a*n + b for some n >= 0
func nthMatches(a, b, position int) bool {
	diff := position - b
	if a == 0 {
		return diff == 0
	}
	if utils.FlooredMod(diff, a) != 0 {
		return false
	}
	return diff == 0 || (diff > 0) == (a > 0)
}

// matchHas looks for an element matching one of the relative selectors,
// among the descendants of `el`, its following siblings and their descendants.
func (st *state) matchHas(el Element, c Has) bool {
	sub := state{Matcher: st.Matcher, scope: el}
	try := func(candidate Element) bool {
		for _, rel := range c.Relative {
			if ok, _ := sub.matchSelector(candidate, rel, false); ok {
				return true
			}
		}
		return false
	}
	var walk func(root Element) bool
	walk = func(root Element) bool {
		for child := root.FirstChild(); child != nil; child = child.NextSibling() {
			if try(child) || walk(child) {
				return true
			}
		}
		return false
	}
	if walk(el) {
		return true
	}
	if !hasSiblingRelative(c) {
		return false
	}
	for s := el.NextSibling(); s != nil; s = s.NextSibling() {
		if try(s) || walk(s) {
			return true
		}
	}
	return false
}

// hasSiblingRelative returns true if one relative selector starts
// with a sibling combinator.
func hasSiblingRelative(c Has) bool {
	for _, rel := range c.Relative {
		comb, ok := firstCombinator(rel)
		if ok && (comb == NextSibling || comb == SubsequentSibling) {
			return true
		}
	}
	return false
}

func firstCombinator(sel Selector) (Combinator, bool) {
	combined, ok := sel.(Combined)
	if !ok {
		return 0, false
	}
	if _, isCombined := combined.Left.(Combined); isCombined {
		return firstCombinator(combined.Left)
	}
	return combined.Combinator, true
}

// matchLang implements the extended filtering of RFC 4647,
// with an implicit wildcard for the missing subtags.
func matchLang(lang string, ranges []string) bool {
	if lang == "" {
		return false
	}
	tag := canonicalLang(lang)
	for _, r := range ranges {
		if r == "*" {
			return true
		}
		if strings.HasPrefix(r, "*-") {
			if strings.Contains(tag+"-", "-"+strings.ToLower(r[2:])+"-") {
				return true
			}
			continue
		}
		r = canonicalLang(r)
		if tag == r || strings.HasPrefix(tag, r+"-") {
			return true
		}
	}
	return false
}

// canonicalLang returns the lower-cased canonical form of a language tag,
// or the lower-cased input if it is not a valid tag.
func canonicalLang(s string) string {
	if tag, err := language.Parse(s); err == nil {
		return strings.ToLower(tag.String())
	}
	return strings.ToLower(s)
}

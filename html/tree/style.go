package tree

import (
	"sort"

	"github.com/benoitkugler/webstyle/css/declaration"
	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/benoitkugler/webstyle/css/shorthand"
)

// Cascade selects the declarations applying to elements.
// It never caches its results: callers are responsible for
// recomputing styles after a change in the sheets or the document.
type Cascade struct {
	Sheets []*StyleSheet
	// Medium is the media type used to evaluate @media rules.
	// An empty string means "screen".
	Medium  string
	Matcher selector.Matcher
}

func (c *Cascade) medium() string {
	if c.Medium == "" {
		return "screen"
	}
	return c.Medium
}

// styleAttrSpecificity is the tier used for declarations
// of the style attribute.
var styleAttrSpecificity = selector.Specificity{1, 0, 0, 0}

// Return the precedence for a declaration.
// Precedence values have no meaning unless compared to each other.
func declarationPrecedence(origin Origin, importance bool) uint8 {
	// See http://www.w3.org/TR/CSS21/cascade.html#cascading-order
	switch {
	case origin == UserAgent:
		return 1
	case origin == User && !importance:
		return 2
	case origin == Author && !importance:
		return 3
	case origin == Author: // && importance
		return 4
	default: // user, important
		return 5
	}
}

type weight struct {
	precedence  uint8
	specificity selector.Specificity
	// source order
	order int
}

// Less returns `true` if w <= other
func (w weight) Less(other weight) bool {
	if w.precedence != other.precedence {
		return w.precedence < other.precedence
	}
	if c := w.specificity.Compare(other.specificity); c != 0 {
		return c < 0
	}
	return w.order <= other.order
}

type weightedValue struct {
	value  shorthand.Property
	weight weight
}

// MatchedRule is a rule matching an element.
type MatchedRule struct {
	Sheet       *StyleSheet
	Rule        *StyleRule
	Specificity selector.Specificity
}

// MatchedRules returns the rules of the sheets matching the
// pseudo-element `pseudo` of `element` ("" for the element itself),
// sorted by origin and specificity (the least important first),
// ignoring !important.
func (c *Cascade) MatchedRules(element selector.Element, pseudo string) []MatchedRule {
	var out []MatchedRule
	for _, sheet := range c.Sheets {
		sheet.StyleRules(c.medium(), func(rule *StyleRule) {
			index, spec := c.Matcher.MatchList(element, pseudo, rule.Selectors)
			if index == -1 {
				return
			}
			out = append(out, MatchedRule{Sheet: sheet, Rule: rule, Specificity: spec})
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if oi, oj := out[i].Sheet.Origin, out[j].Sheet.Origin; oi != oj {
			return oi < oj
		}
		return out[i].Specificity.Less(out[j].Specificity)
	})
	return out
}

// StyleFor returns the cascaded declaration of the pseudo-element `pseudo`
// of `element` ("" for the element itself): for each property, the value
// of the most important matching declaration.
func (c *Cascade) StyleFor(element selector.Element, pseudo string) *declaration.Declaration {
	cascaded := map[string]weightedValue{}
	add := func(origin Origin, specificity selector.Specificity, order int, decl *declaration.Declaration) {
		for _, prop := range decl.Properties() {
			w := weight{precedence: declarationPrecedence(origin, prop.Important), specificity: specificity, order: order}
			old, has := cascaded[prop.Name]
			if !has || old.weight.Less(w) {
				cascaded[prop.Name] = weightedValue{value: prop, weight: w}
			}
		}
	}

	order := 0
	for _, sheet := range c.Sheets {
		sheet.StyleRules(c.medium(), func(rule *StyleRule) {
			order++
			index, spec := c.Matcher.MatchList(element, pseudo, rule.Selectors)
			if index == -1 {
				return
			}
			add(sheet.Origin, spec, order, rule.Declaration)
		})
	}

	if style, ok := element.Attribute("", "style"); ok && pseudo == "" {
		// invalid declarations are logged by the parser
		decl, _ := declaration.New(style)
		order++
		add(Author, styleAttrSpecificity, order, decl)
	}

	values := make([]weightedValue, 0, len(cascaded))
	for _, v := range cascaded {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i].weight.order != values[j].weight.order {
			return values[i].weight.order < values[j].weight.order
		}
		return values[i].value.Name < values[j].value.Name
	})
	var out declaration.Declaration
	for _, v := range values {
		out.Put(v.value)
	}
	return &out
}

// ComputedStyle returns the computed style of the pseudo-element `pseudo`
// of `element` ("" for the element itself), whose parent chain follows the
// document tree. Pseudo-elements inherit from their element.
func (c *Cascade) ComputedStyle(element selector.Element, pseudo string, ctx *Context) *ComputedStyle {
	var parent *ComputedStyle
	if pseudo != "" {
		parent = c.ComputedStyle(element, "", ctx)
	} else if p := element.Parent(); p != nil {
		parent = c.ComputedStyle(p, "", ctx)
	}
	return NewComputedStyle(c.StyleFor(element, pseudo), parent, element, pseudo, ctx)
}

// GetComputedValue is a shortcut for ComputedStyle(element, pseudo, ctx).GetComputedValue(property)
func (c *Cascade) GetComputedValue(element selector.Element, pseudo, property string, ctx *Context) (string, error) {
	return c.ComputedStyle(element, pseudo, ctx).GetComputedValue(property)
}

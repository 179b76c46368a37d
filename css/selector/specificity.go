package selector

import "fmt"

// Specificity is the weight of a selector: (tier, a, b, c) where
//   - tier separates declarations not coming from selectors
//     (1 for the style attribute, 0 otherwise)
//   - a counts ID selectors
//   - b counts class, attribute and pseudo-class selectors
//   - c counts type selectors and pseudo-elements
//
// Specificities are compared lexicographically.
type Specificity [4]int

// Less returns true if s is strictly lower than other.
func (s Specificity) Less(other Specificity) bool {
	return s.Compare(other) < 0
}

// Compare returns -1, 0 or 1.
func (s Specificity) Compare(other Specificity) int {
	for i := range s {
		if s[i] < other[i] {
			return -1
		}
		if s[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Add returns the component-wise sum.
func (s Specificity) Add(other Specificity) Specificity {
	for i, o := range other {
		s[i] += o
	}
	return s
}

func (s Specificity) String() string {
	if s[0] != 0 {
		return fmt.Sprintf("(%d; %d, %d, %d)", s[0], s[1], s[2], s[3])
	}
	return fmt.Sprintf("(%d, %d, %d)", s[1], s[2], s[3])
}

func maxSpecificity(a, b Specificity) Specificity {
	if a.Less(b) {
		return b
	}
	return a
}

// SpecificityOf returns the specificity of the selector, independently
// of any element. For :is(), it uses the most specific argument, which
// is also the value of the most specific matched branch in the common
// case where every argument matches.
func SpecificityOf(sel Selector) Specificity {
	switch s := sel.(type) {
	case Compound:
		return compoundSpecificity(s)
	case Combined:
		return SpecificityOf(s.Left).Add(compoundSpecificity(s.Right))
	}
	return Specificity{}
}

func listSpecificity(list SelectorList) (out Specificity) {
	for _, s := range list {
		out = maxSpecificity(out, SpecificityOf(s))
	}
	return out
}

func compoundSpecificity(c Compound) Specificity {
	var out Specificity
	if c.Type.Local != "" {
		out[3]++
	}
	if c.PseudoElement != "" {
		out[3]++
	}
	for _, cond := range c.Conditions {
		out = out.Add(conditionSpecificity(cond))
	}
	return out
}

func conditionSpecificity(cond Condition) Specificity {
	switch c := cond.(type) {
	case ID:
		return Specificity{0, 1, 0, 0}
	case Class, Attr, PseudoClass, Lang, Dir, Unsupported:
		return Specificity{0, 0, 1, 0}
	case Nth:
		return Specificity{0, 0, 1, 0}.Add(listSpecificity(c.Of))
	case Is:
		if c.Where {
			return Specificity{}
		}
		return listSpecificity(c.List)
	case Not:
		return listSpecificity(c.List)
	case Has:
		return listSpecificity(c.Relative)
	case Or:
		var out Specificity
		for _, sub := range c.Conditions {
			out = maxSpecificity(out, conditionSpecificity(sub))
		}
		return out
	}
	return Specificity{}
}

// Package shorthand folds longhand declarations back into
// shorthand notations, for serialization.
//
// Each shorthand has a builder, proposing candidate values from the shortest
// to the longest. A candidate is only accepted if expanding it gives back
// exactly the original longhand values, so that the serialized text
// always re-parses into the same declarations.
package shorthand

import (
	"sort"
	"strings"

	pa "github.com/benoitkugler/webstyle/css/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/css/validation"
	"github.com/benoitkugler/webstyle/utils"
)

// Property is one item of a declaration block.
type Property struct {
	Name      string
	Value     string
	Important bool

	// Pending is true for longhands set by a shorthand whose value
	// depends on var() : Value is then the whole shorthand value, and
	// Shorthand its name.
	Pending   bool
	Shorthand string
}

// builder returns the candidate values for a shorthand,
// the shortest first. `values` are ordered as pr.Longhands(name),
// and do not contain CSS-wide keywords.
type builder func(name string, values []string) []string

var registry map[string]builder

// bySize stores the shorthands, widest first
var bySize []string

func init() {
	registry = map[string]builder{
		"margin":        fourSides,
		"padding":       fourSides,
		"inset":         fourSides,
		"border-width":  fourSides,
		"border-style":  fourSides,
		"border-color":  fourSides,
		"border-radius": borderRadius,
		"border-top":    borderSide,
		"border-right":  borderSide,
		"border-bottom": borderSide,
		"border-left":   borderSide,
		"outline":       borderSide,
		"column-rule":   borderSide,
		"border":        border,

		"background":      background,
		"font":            font,
		"list-style":      nonInitial,
		"text-decoration": nonInitial,
		"overflow":        pair,
		"gap":             pair,
		"place-items":     pair,
		"place-content":   pair,
		"place-self":      pair,

		"flex":        flex,
		"flex-flow":   nonInitial,
		"grid-row":    gridLine,
		"grid-column": gridLine,
		"grid-area":   gridArea,
		"columns":     columns,

		"transition": layered,
		"animation":  layered,
	}

	bySize = pr.Shorthands()
	for _, name := range bySize {
		if registry[name] == nil {
			panic("missing builder for shorthand " + name)
		}
	}
	sort.SliceStable(bySize, func(i, j int) bool {
		return len(pr.Longhands(bySize[i])) > len(pr.Longhands(bySize[j]))
	})
}

type keywordState uint8

const (
	noKeyword keywordState = iota
	uniformKeyword
	mixedKeyword
)

// keywords returns the CSS-wide keyword state of the values.
func keywords(values []string) (string, keywordState) {
	var kw string
	count := 0
	for _, v := range values {
		if pr.IsCSSWideKeyword(v) {
			count++
			if kw == "" {
				kw = utils.AsciiLower(v)
			} else if kw != utils.AsciiLower(v) {
				return "", mixedKeyword
			}
		}
	}
	switch count {
	case 0:
		return "", noKeyword
	case len(values):
		return kw, uniformKeyword
	default:
		return "", mixedKeyword
	}
}

// Build returns the shorthand `name` equivalent to the given longhand values,
// ordered as pr.Longhands(name), or false if it can't be represented.
func Build(name string, values []string) (string, bool) {
	fn := registry[name]
	if fn == nil || len(values) != len(pr.Longhands(name)) {
		return "", false
	}
	for _, v := range values {
		if v == "" {
			return "", false
		}
	}
	switch kw, state := keywords(values); state {
	case uniformKeyword:
		return kw, true
	case mixedKeyword:
		return "", false
	}
	for _, candidate := range fn(name, values) {
		if reproduces(name, candidate, values) {
			return candidate, true
		}
	}
	return "", false
}

// reproduces returns true if expanding `candidate` gives `values`
func reproduces(name, candidate string, values []string) bool {
	longhands, err := validation.ExpandString(name, candidate)
	if err != nil {
		return false
	}
	for i, l := range longhands {
		if l.Pending || l.Value != values[i] {
			return false
		}
	}
	return true
}

type slot struct {
	pos   int
	props []Property
}

// Collapse replaces, when possible, groups of longhands by shorthands.
// The returned list is equivalent to `props`: parsing it gives back the same
// values and priorities. Each property of `props` is accounted exactly once.
func Collapse(props []Property) []Property {
	used := make([]bool, len(props))
	index := make(map[string]int, len(props))
	for i, p := range props {
		index[p.Name] = i
	}
	var slots []slot

	// pending values are written back with their shorthand
	for i, p := range props {
		if used[i] || !p.Pending {
			continue
		}
		for j := i; j < len(props); j++ {
			q := props[j]
			if q.Pending && q.Shorthand == p.Shorthand && q.Value == p.Value && q.Important == p.Important {
				used[j] = true
			}
		}
		slots = append(slots, slot{i, []Property{{Name: p.Shorthand, Value: p.Value, Important: p.Important}}})
	}

	for _, name := range bySize {
		longhands := pr.Longhands(name)
		indices := make([]int, len(longhands))
		values := make([]string, len(longhands))
		complete := true
		for k, l := range longhands {
			i, has := index[l]
			if !has || used[i] || props[i].Pending || props[i].Important != props[index[longhands[0]]].Important {
				complete = false
				break
			}
			indices[k], values[k] = i, props[i].Value
		}
		if !complete {
			continue
		}
		important := props[indices[0]].Important

		var group []Property
		if name == "border" {
			group = collapseBorder(values, important)
		} else if v, ok := Build(name, values); ok {
			group = []Property{{Name: name, Value: v, Important: important}}
		} else {
			continue
		}
		pos := indices[0]
		for _, i := range indices {
			used[i] = true
			if i < pos {
				pos = i
			}
		}
		slots = append(slots, slot{pos, group})
	}

	for i, p := range props {
		if !used[i] {
			p.Pending, p.Shorthand = false, ""
			slots = append(slots, slot{i, []Property{p}})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool { return slots[i].pos < slots[j].pos })
	out := make([]Property, 0, len(props))
	for _, s := range slots {
		out = append(out, s.props...)
	}
	return out
}

// Text returns the canonical serialization of the properties:
// "name: value; name2: value2 !important;"
func Text(props []Property) string {
	var b strings.Builder
	for i, p := range props {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Value)
		if p.Important {
			b.WriteString(" !important")
		}
		b.WriteByte(';')
	}
	return b.String()
}

// MinifiedText returns the compact serialization of the properties:
// "name:value;name2:value2!important"
func MinifiedText(props []Property) string {
	var b strings.Builder
	for i, p := range props {
		if i != 0 {
			b.WriteByte(';')
		}
		b.WriteString(p.Name)
		b.WriteByte(':')
		b.WriteString(Minify(p.Value))
		if p.Important {
			b.WriteString("!important")
		}
	}
	return b.String()
}

// Minify returns a compact equivalent of the value :
// zero lengths are written 0, colors #rrggbb are shortened to #rgb
// and non significant whitespaces are removed.
func Minify(value string) string {
	tokens := pa.Strip(pa.Tokenize(value))
	var b strings.Builder
	for i, token := range tokens {
		switch token.Kind {
		case pa.Whitespace:
			if i > 0 && i < len(tokens)-1 && !isSeparator(tokens[i-1]) && !isSeparator(tokens[i+1]) {
				b.WriteByte(' ')
			}
			continue
		case pa.Dimension:
			if unit, ok := pr.ParseUnit(token.Unit); ok && unit.IsLength() && token.Float() == 0 {
				b.WriteByte('0')
				continue
			}
		case pa.Hash:
			if short, ok := shortHex(token.Value); ok {
				b.WriteString("#" + short)
				continue
			}
		}
		b.WriteString(token.String())
	}
	return b.String()
}

func isSeparator(t pa.Token) bool {
	return t.Kind == pa.Comma || t.IsDelim("/")
}

func shortHex(hex string) (string, bool) {
	if len(hex) != 6 && len(hex) != 8 {
		return "", false
	}
	if _, ok := pr.ParseColor(pa.Token{Kind: pa.Hash, Value: hex}); !ok {
		return "", false
	}
	short := make([]byte, 0, 4)
	for i := 0; i < len(hex); i += 2 {
		if utils.AsciiLower(hex[i:i+1]) != utils.AsciiLower(hex[i+1:i+2]) {
			return "", false
		}
		short = append(short, hex[i])
	}
	return string(short), true
}

// length is used to score the candidates
func length(props []Property) int {
	return len(MinifiedText(props))
}

// shortest returns the candidate with the shortest serialization,
// the first one on ties.
func shortest(candidates [][]Property) []Property {
	best := candidates[0]
	bestLength := length(best)
	for _, c := range candidates[1:] {
		if l := length(c); l < bestLength {
			best, bestLength = c, l
		}
	}
	return best
}

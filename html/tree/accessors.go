package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benoitkugler/webstyle/css/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/utils"
)

// Typed accessors, used by the layout.

// Keyword returns the computed value of `name`, lower-cased.
func (c *ComputedStyle) Keyword(name string) (string, error) {
	v, err := c.compute(name)
	return utils.AsciiLower(v), err
}

// Length returns the computed value of `name` as a dimension
// (in points, percentage or scalar) or as a keyword.
// Sums of lengths and percentages are returned as text, to be
// used with [ResolveLength].
func (c *ComputedStyle) Length(name string) (pr.DimOrS, error) {
	v, err := c.compute(name)
	if err != nil {
		return pr.DimOrS{}, err
	}
	return ParseLength(v), nil
}

// ParseLength parses a computed length.
func ParseLength(v string) pr.DimOrS {
	tokens := parser.RemoveWhitespace(parser.Tokenize(v))
	if len(tokens) != 1 {
		return pr.SToV(v)
	}
	t := tokens[0]
	switch t.Kind {
	case parser.Number:
		return pr.DimOrS{Dimension: pr.NewDim(Fl(t.Float()), pr.Scalar)}
	case parser.Percentage:
		return pr.DimOrS{Dimension: pr.NewDim(Fl(t.Float()), pr.Perc)}
	case parser.Dimension:
		unit, ok := pr.ParseUnit(t.Unit)
		if !ok {
			return pr.SToV(v)
		}
		d := pr.NewDim(Fl(t.Float()), unit)
		if pt, ok := d.ToPoints(); ok {
			return pr.FToPt(pt)
		}
		return pr.DimOrS{Dimension: d}
	}
	return pr.SToV(v)
}

// ResolveLength returns the length in points of `v`, where percentages
// refer to `base`. It returns false for keywords.
func ResolveLength(v pr.DimOrS, base Fl) (Fl, bool) {
	if v.S != "" {
		tokens := parser.RemoveWhitespace(parser.Tokenize(v.S))
		if len(tokens) != 1 || !IsMathFunction(tokens[0]) {
			return 0, false
		}
		cv, err := CalcEvaluator{}.Evaluate(tokens[0], func(d pr.Dimension) (Fl, error) {
			if pt, ok := d.ToPoints(); ok {
				return pt, nil
			}
			return 0, errInvalidMath
		})
		if err != nil {
			return 0, false
		}
		return cv.Resolve(base), true
	}
	switch v.Unit {
	case pr.Perc:
		return v.Value * base / 100, true
	case pr.Scalar: // unitless zero
		return v.Value, v.Value == 0
	}
	return v.ToPoints()
}

// FontSize returns the computed font size, in points.
func (c *ComputedStyle) FontSize() (Fl, error) {
	v, err := c.compute("font-size")
	if err != nil {
		return 0, err
	}
	l := ParseLength(v)
	if l.Unit != pr.Pt {
		return 0, fmt.Errorf("unexpected font size %q", v)
	}
	return l.Value, nil
}

// LineHeight returns the computed line height, in points,
// where `normal` is 1.2 times the font size.
func (c *ComputedStyle) LineHeight() (Fl, error) {
	v, err := c.compute("line-height")
	if err != nil {
		return 0, err
	}
	l := ParseLength(v)
	switch {
	case l.Keyword() == "normal":
		l = pr.DimOrS{Dimension: pr.NewDim(1.2, pr.Scalar)}
	case l.Unit == pr.Pt:
		return l.Value, nil
	case l.Unit != pr.Scalar:
		return 0, fmt.Errorf("unexpected line height %q", v)
	}
	fontSize, err := c.FontSize()
	return l.Value * fontSize, err
}

// Font returns the font used to measure text.
func (c *ComputedStyle) Font() (Font, error) {
	size, err := c.FontSize()
	if err != nil {
		return Font{}, err
	}
	families, err := c.compute("font-family")
	if err != nil {
		return Font{}, err
	}
	weight, err := c.compute("font-weight")
	if err != nil {
		return Font{}, err
	}
	style, err := c.Keyword("font-style")
	if err != nil {
		return Font{}, err
	}
	w, _ := strconv.Atoi(weight)
	return Font{Families: fontFamilies(families), Size: size, Weight: w, Style: style}, nil
}

func fontFamilies(value string) []string {
	var out []string
	for _, family := range parser.SplitOnComma(parser.Tokenize(value)) {
		family = parser.Strip(family)
		if len(family) == 1 && family[0].Kind == parser.String {
			out = append(out, family[0].Value)
			continue
		}
		var words []string
		for _, t := range family {
			if t.Kind == parser.Ident {
				words = append(words, t.Value)
			}
		}
		if len(words) != 0 {
			out = append(out, strings.Join(words, " "))
		}
	}
	return out
}

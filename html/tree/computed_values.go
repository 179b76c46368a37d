package tree

import (
	"strconv"
	"strings"

	"github.com/benoitkugler/webstyle/css/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/utils"
	"golang.org/x/text/language"
)

type computerFunc = func(c *ComputedStyle, name string, tokens []parser.Token) (string, error)

var (
	// http://www.w3.org/TR/CSS21/fonts.html#propdef-font-weight
	fontWeightRelative = struct {
		bolder, lighter map[int]int
	}{
		bolder: map[int]int{
			100: 400,
			200: 400,
			300: 400,
			400: 700,
			500: 700,
			600: 900,
			700: 900,
			800: 900,
			900: 900,
		},
		lighter: map[int]int{
			100: 100,
			200: 100,
			300: 100,
			400: 100,
			500: 100,
			600: 400,
			700: 400,
			800: 700,
			900: 700,
		},
	}

	// the properties where a unitless zero is a length
	zeroLengths = utils.NewSet(
		"margin-top", "margin-right", "margin-bottom", "margin-left",
		"padding-top", "padding-right", "padding-bottom", "padding-left",
		"top", "right", "bottom", "left", "width", "height",
		"min-width", "min-height", "max-width", "max-height",
		"text-indent", "letter-spacing", "word-spacing", "flex-basis",
		"row-gap", "column-gap", "column-width", "border-spacing", "vertical-align",
		"border-top-left-radius", "border-top-right-radius",
		"border-bottom-right-radius", "border-bottom-left-radius",
	)

	colorProperties = utils.NewSet(
		"color", "background-color", "outline-color", "text-decoration-color", "column-rule-color",
		"border-top-color", "border-right-color", "border-bottom-color", "border-left-color",
	)

	// Maps property names to functions returning the computed values
	computerFunctions map[string]computerFunc
)

func init() {
	computerFunctions = map[string]computerFunc{
		"border-top-width":    borderWidth,
		"border-right-width":  borderWidth,
		"border-bottom-width": borderWidth,
		"border-left-width":   borderWidth,
		"outline-width":       borderWidth,
		"column-rule-width":   borderWidth,
		"display":             display,
		"float":               floating,
		"font-size":           fontSize,
		"font-weight":         fontWeight,
		"line-height":         lineHeight,
		"background-repeat":   backgroundRepeat,
		"quotes":              quotes,
		"column-gap":          gap,
		"row-gap":             gap,
	}
}

// computeValue computes a specified value (not a CSS-wide keyword).
func (c *ComputedStyle) computeValue(name, value string) (string, error) {
	tokens := parser.Tokenize(value)
	if fn := computerFunctions[name]; fn != nil {
		return fn(c, name, tokens)
	}
	if colorProperties.Has(name) {
		return c.color(name, tokens)
	}
	tokens, err := c.absolute(name, tokens, c.relativeTo(c))
	if err != nil {
		return "", err
	}
	return parser.SerializeValue(tokens), nil
}

type converter = func(pr.Dimension) (Fl, error)

// relativeTo returns a converter where font relative units refer
// to `font` (nil for the initial font).
func (c *ComputedStyle) relativeTo(font *ComputedStyle) converter {
	return func(d pr.Dimension) (Fl, error) { return c.toPoints(d, font) }
}

// absolute evaluates math functions and converts lengths to points.
func (c *ComputedStyle) absolute(name string, tokens []parser.Token, toPoints converter) ([]parser.Token, error) {
	out := make([]parser.Token, len(tokens))
	for i, t := range tokens {
		switch t.Kind {
		case parser.Function:
			if IsMathFunction(t) {
				v, err := c.ctx.evaluator().Evaluate(t, toPoints)
				if err == errInvalidMath {
					// the value has been validated: keep it unevaluated
					break
				} else if err != nil {
					return nil, err
				}
				t = singleToken(v.String())
				break
			}
			if strings.EqualFold(t.Value, "url") {
				break
			}
			args, err := c.absolute(name, t.Arguments, toPoints)
			if err != nil {
				return nil, err
			}
			t.Arguments = args
		case parser.Dimension:
			unit, ok := pr.ParseUnit(t.Unit)
			if !ok || !unit.IsLength() {
				break
			}
			pt, err := toPoints(pr.Dimension{Value: Fl(t.Float()), Unit: unit})
			if err != nil {
				return nil, err
			}
			t = points(pt)
		case parser.Number:
			if t.Float() == 0 && zeroLengths.Has(name) {
				t = points(0)
			}
		}
		out[i] = t
	}
	return out, nil
}

func points(pt Fl) parser.Token {
	return parser.Token{Kind: parser.Dimension, Value: utils.FormatFloat(pt), Unit: "pt"}
}

func singleToken(s string) parser.Token {
	tokens := parser.Tokenize(s)
	if len(tokens) == 1 {
		return tokens[0]
	}
	return parser.Token{Kind: parser.Ident, Value: s}
}

// toPoints converts a length, where font relative units refer to
// the font of `font`, or to the initial font if `font` is nil.
func (c *ComputedStyle) toPoints(dim pr.Dimension, font *ComputedStyle) (Fl, error) {
	if pt, ok := dim.ToPoints(); ok {
		return pt, nil
	}
	switch dim.Unit {
	case pr.Em:
		size, err := font.fontSizeOrInitial(c.ctx)
		return dim.Value * size, err
	case pr.Rem:
		if font == nil {
			return dim.Value * c.ctx.mediumFontSize(), nil
		}
		size, err := c.root().FontSize()
		return dim.Value * size, err
	case pr.Lh:
		lh, err := font.lineHeightOrInitial(c.ctx)
		return dim.Value * lh, err
	case pr.Rlh:
		if font == nil {
			return dim.Value * 1.2 * c.ctx.mediumFontSize(), nil
		}
		lh, err := c.root().LineHeight()
		return dim.Value * lh, err
	case pr.Ex, pr.Cap, pr.Ch, pr.Ic:
		m := c.ctx.TextMeasurer()
		if m == nil {
			return 0, ErrStyleDatabaseRequired
		}
		f, err := font.fontOrInitial(c.ctx)
		if err != nil {
			return 0, err
		}
		ratios := m.Metrics(f)
		ratio := map[pr.Unit]Fl{pr.Ex: ratios.XHeight, pr.Cap: ratios.CapHeight, pr.Ch: ratios.ChWidth, pr.Ic: ratios.IcWidth}[dim.Unit]
		return dim.Value * ratio * f.Size, nil
	case pr.Vw, pr.Vh, pr.Vmin, pr.Vmax:
		width, height, err := c.ctx.Viewport()
		if err != nil {
			return 0, err
		}
		base := map[pr.Unit]Fl{pr.Vw: width, pr.Vh: height, pr.Vmin: utils.MinF(width, height), pr.Vmax: utils.MaxF(width, height)}[dim.Unit]
		return dim.Value * base / 100, nil
	}
	return 0, errInvalidMath
}

func (c *ComputedStyle) fontSizeOrInitial(ctx *Context) (Fl, error) {
	if c == nil {
		return ctx.mediumFontSize(), nil
	}
	return c.FontSize()
}

func (c *ComputedStyle) lineHeightOrInitial(ctx *Context) (Fl, error) {
	if c == nil {
		return 1.2 * ctx.mediumFontSize(), nil
	}
	return c.LineHeight()
}

func (c *ComputedStyle) fontOrInitial(ctx *Context) (Font, error) {
	if c == nil {
		family := "serif"
		if db := ctx.database(); db != nil {
			family, _ = db.DefaultFont()
		}
		return Font{Families: []string{family}, Size: ctx.mediumFontSize(), Weight: 400, Style: "normal"}, nil
	}
	return c.Font()
}

// Compute the “border-*-width“ properties.
func borderWidth(c *ComputedStyle, name string, tokens []parser.Token) (string, error) {
	// the style property is named after the width one
	style, err := c.compute(strings.TrimSuffix(name, "width") + "style")
	if err != nil {
		return "", err
	}
	if style == "none" || style == "hidden" {
		return "0pt", nil
	}
	stripped := parser.RemoveWhitespace(tokens)
	if len(stripped) == 1 && stripped[0].Kind == parser.Ident {
		if bw, in := pr.BorderWidthKeywords[utils.AsciiLower(stripped[0].Value)]; in {
			return utils.FormatFloat(bw) + "pt", nil
		}
	}
	out, err := c.absolute(name, stripped, c.relativeTo(c))
	if err != nil {
		return "", err
	}
	if len(out) == 1 && out[0].Kind == parser.Number {
		return "0pt", nil
	}
	return parser.SerializeValue(out), nil
}

func blockify(display string) string {
	switch display {
	case "inline-table":
		return "table"
	case "inline", "run-in", "inline-block", "table-row-group", "table-column", "table-column-group",
		"table-header-group", "table-footer-group", "table-row", "table-cell", "table-caption":
		return "block"
	case "inline-flex":
		return "flex"
	case "inline-grid":
		return "grid"
	}
	if rest, ok := strings.CutPrefix(display, "inline "); ok {
		return "block " + rest
	}
	return display
}

// Compute the “display“ property.
// See http://www.w3.org/TR/CSS21/visuren.html#dis-pos-flo
func display(c *ComputedStyle, _ string, tokens []parser.Token) (string, error) {
	value := utils.AsciiLower(parser.SerializeValue(tokens))
	if value == "none" {
		return value, nil
	}
	position, err := c.compute("position")
	if err != nil {
		return "", err
	}
	float, err := c.compute("float")
	if err != nil {
		return "", err
	}
	if position == "absolute" || position == "fixed" || float != "none" || c.isRoot() {
		return blockify(value), nil
	}
	return value, nil
}

// Compute the “float“ property.
// See http://www.w3.org/TR/CSS21/visuren.html#dis-pos-flo
func floating(c *ComputedStyle, _ string, tokens []parser.Token) (string, error) {
	position, err := c.compute("position")
	if err != nil {
		return "", err
	}
	if position == "absolute" || position == "fixed" {
		return "none", nil
	}
	return utils.AsciiLower(parser.SerializeValue(tokens)), nil
}

// fontSizeKeyword returns the index in FontSizeKeywordsOrder
// of the keyword giving the font size, if any.
func (c *ComputedStyle) fontSizeKeyword() (int, bool) {
	value, err := c.specified("font-size")
	if err != nil {
		return 0, false
	}
	switch value = utils.AsciiLower(value); value {
	case "inherit":
		if c.parent == nil {
			return indexOf(pr.FontSizeKeywordsOrder, "medium"), true
		}
		return c.parent.fontSizeKeyword()
	case "initial", "unset":
		return indexOf(pr.FontSizeKeywordsOrder, "medium"), true
	case "larger", "smaller":
		if c.parent == nil {
			return 0, false
		}
		i, ok := c.parent.fontSizeKeyword()
		if value == "larger" {
			i++
		} else {
			i--
		}
		return i, ok && 0 <= i && i < len(pr.FontSizeKeywordsOrder)
	}
	i := indexOf(pr.FontSizeKeywordsOrder, value)
	return i, i != -1
}

func indexOf(l []string, s string) int {
	for i, v := range l {
		if v == s {
			return i
		}
	}
	return -1
}

// Compute the “font-size“ property.
func fontSize(c *ComputedStyle, name string, tokens []parser.Token) (string, error) {
	stripped := parser.RemoveWhitespace(tokens)
	scale := c.ctx.mediumFontSize() / pr.MediumFontSize
	keyword := ""
	if len(stripped) == 1 && stripped[0].Kind == parser.Ident {
		keyword = utils.AsciiLower(stripped[0].Value)
	}
	if fs, in := pr.FontSizeKeywords[keyword]; in {
		return utils.FormatFloat(fs*scale) + "pt", nil
	}

	parentFontSize := c.ctx.mediumFontSize()
	if c.parent != nil {
		var err error
		if parentFontSize, err = c.parent.FontSize(); err != nil {
			return "", err
		}
	}

	var result Fl
	switch keyword {
	case "larger", "smaller":
		if i, ok := c.fontSizeKeyword(); ok {
			result = pr.FontSizeKeywords[pr.FontSizeKeywordsOrder[i]] * scale
		} else if keyword == "larger" {
			result = parentFontSize * 1.2
			for _, kw := range pr.FontSizeKeywordsOrder {
				if v := pr.FontSizeKeywords[kw] * scale; v > parentFontSize {
					result = v
					break
				}
			}
		} else {
			result = parentFontSize * 0.8
			for i := len(pr.FontSizeKeywordsOrder) - 1; i >= 0; i-- {
				if v := pr.FontSizeKeywords[pr.FontSizeKeywordsOrder[i]] * scale; v < parentFontSize {
					result = v
					break
				}
			}
		}
	default:
		if len(stripped) != 1 {
			return parser.SerializeValue(tokens), nil
		}
		t := stripped[0]
		switch {
		case t.Kind == parser.Percentage:
			result = Fl(t.Float()) * parentFontSize / 100
		case IsMathFunction(t):
			// font relative units refer to the parent font
			v, err := c.ctx.evaluator().Evaluate(t, c.relativeTo(c.parent))
			if err != nil {
				return "", err
			}
			result = v.Resolve(parentFontSize)
		case t.Kind == parser.Dimension:
			unit, _ := pr.ParseUnit(t.Unit)
			pt, err := c.toPoints(pr.Dimension{Value: Fl(t.Float()), Unit: unit}, c.parent)
			if err != nil {
				return "", err
			}
			result = pt
		case t.Kind == parser.Number: // 0
			result = 0
		default:
			return parser.SerializeValue(tokens), nil
		}
	}
	return utils.FormatFloat(result) + "pt", nil
}

// Compute the “font-weight“ property.
func fontWeight(c *ComputedStyle, _ string, tokens []parser.Token) (string, error) {
	value := utils.AsciiLower(parser.SerializeValue(tokens))
	var out int
	switch value {
	case "normal":
		out = 400
	case "bold":
		out = 700
	case "bolder", "lighter":
		parentValue := 400
		if c.parent != nil {
			pv, err := c.parent.compute("font-weight")
			if err != nil {
				return "", err
			}
			parentValue, _ = strconv.Atoi(pv)
		}
		out = relativeWeight(parentValue, value == "bolder")
	default:
		tokens, err := c.absolute("font-weight", tokens, c.relativeTo(c))
		if err != nil {
			return "", err
		}
		return parser.SerializeValue(tokens), nil
	}
	return strconv.Itoa(out), nil
}

func relativeWeight(parent int, bolder bool) int {
	table := fontWeightRelative.lighter
	if bolder {
		table = fontWeightRelative.bolder
	}
	if v, ok := table[parent]; ok {
		return v
	}
	// weights which are not a multiple of 100
	switch {
	case bolder && parent < 350:
		return 400
	case bolder && parent < 550:
		return 700
	case bolder:
		return 900
	case parent < 100:
		return parent
	case parent < 550:
		return 100
	case parent < 750:
		return 400
	default:
		return 700
	}
}

// lineHeightUnits converts the lengths found in `line-height`,
// where lh and rlh refer to the parent (or initial) line height.
func (c *ComputedStyle) lineHeightUnits(d pr.Dimension) (Fl, error) {
	switch d.Unit {
	case pr.Lh:
		return c.toPoints(d, c.parent)
	case pr.Rlh:
		if c.isRoot() {
			return c.toPoints(d, nil)
		}
	}
	return c.toPoints(d, c)
}

// Compute the “line-height“ property.
func lineHeight(c *ComputedStyle, name string, tokens []parser.Token) (string, error) {
	stripped := parser.RemoveWhitespace(tokens)
	if len(stripped) != 1 {
		return parser.SerializeValue(tokens), nil
	}
	t := stripped[0]
	switch {
	case t.IsIdent("normal"), t.Kind == parser.Number:
		return parser.SerializeValue(tokens), nil
	case t.Kind == parser.Percentage:
		fontSize, err := c.FontSize()
		if err != nil {
			return "", err
		}
		return utils.FormatFloat(Fl(t.Float())*fontSize/100) + "pt", nil
	case IsMathFunction(t):
		v, err := c.ctx.evaluator().Evaluate(t, c.lineHeightUnits)
		if err != nil {
			return "", err
		}
		if v.Type == CalcNumber {
			return v.String(), nil
		}
		fontSize, err := c.FontSize()
		if err != nil {
			return "", err
		}
		return utils.FormatFloat(v.Resolve(fontSize)) + "pt", nil
	}
	out, err := c.absolute(name, stripped, c.lineHeightUnits)
	if err != nil {
		return "", err
	}
	return parser.SerializeValue(out), nil
}

// Compute the “column-gap“ and “row-gap“ properties.
func gap(c *ComputedStyle, name string, tokens []parser.Token) (string, error) {
	if stripped := parser.RemoveWhitespace(tokens); len(stripped) == 1 && stripped[0].IsIdent("normal") {
		return "normal", nil
	}
	out, err := c.absolute(name, tokens, c.relativeTo(c))
	if err != nil {
		return "", err
	}
	return parser.SerializeValue(out), nil
}

// Compute the “background-repeat“ property: each layer
// uses the two values syntax.
func backgroundRepeat(c *ComputedStyle, _ string, tokens []parser.Token) (string, error) {
	layers := parser.SplitOnComma(tokens)
	out := make([]string, len(layers))
	for i, layer := range layers {
		layer = parser.RemoveWhitespace(layer)
		if len(layer) != 1 {
			words := make([]string, len(layer))
			for j, t := range layer {
				words[j] = t.String()
			}
			out[i] = strings.Join(words, " ")
			continue
		}
		switch kw := utils.AsciiLower(layer[0].Value); kw {
		case "repeat-x":
			out[i] = "repeat no-repeat"
		case "repeat-y":
			out[i] = "no-repeat repeat"
		default:
			out[i] = kw + " " + kw
		}
	}
	return strings.Join(out, ", "), nil
}

// color normalizes the colors, replacing currentcolor
// by the value of `color`.
func (c *ComputedStyle) color(name string, tokens []parser.Token) (string, error) {
	color, ok := pr.ParseColorString(parser.SerializeValue(tokens))
	if !ok {
		return parser.SerializeValue(tokens), nil
	}
	if !color.Current {
		return color.String(), nil
	}
	if name != "color" {
		return c.compute("color")
	}
	if c.parent != nil {
		return c.parent.compute("color")
	}
	initial, err := c.initial("color")
	if err != nil || strings.EqualFold(initial, "currentcolor") {
		return "rgb(0, 0, 0)", err
	}
	return c.color(name, parser.Tokenize(initial))
}

// quotation marks, by language
var (
	quoteLanguages = []language.Tag{
		language.English, language.French, language.German, language.Spanish,
		language.Italian, language.Russian, language.Japanese, language.Chinese,
		language.Polish, language.Dutch, language.Swedish,
	}
	quoteMarks = [][4]string{
		{"“", "”", "‘", "’"},
		{"«", "»", "‹", "›"},
		{"„", "“", "‚", "‘"},
		{"«", "»", "“", "”"},
		{"«", "»", "“", "”"},
		{"«", "»", "„", "“"},
		{"「", "」", "『", "』"},
		{"“", "”", "‘", "’"},
		{"„", "”", "«", "»"},
		{"„", "”", "‚", "’"},
		{"”", "”", "’", "’"},
	}
	quoteMatcher = language.NewMatcher(quoteLanguages)
)

// Compute the “quotes“ property: `auto` depends on the
// language of the element.
func quotes(c *ComputedStyle, _ string, tokens []parser.Token) (string, error) {
	if stripped := parser.RemoveWhitespace(tokens); len(stripped) != 1 || !stripped[0].IsIdent("auto") {
		return parser.SerializeValue(tokens), nil
	}
	marks := quoteMarks[0]
	if c.Element != nil {
		if lang := c.Element.Lang(); lang != "" {
			if tag, err := language.Parse(lang); err == nil {
				_, index, confidence := quoteMatcher.Match(tag)
				if confidence != language.No {
					marks = quoteMarks[index]
				}
			}
		}
	}
	quoted := make([]string, len(marks))
	for i, m := range marks {
		quoted[i] = parser.SerializeString(m)
	}
	return strings.Join(quoted, " "), nil
}

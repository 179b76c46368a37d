package validation

import (
	"fmt"
	"strings"

	pa "github.com/benoitkugler/webstyle/css/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/utils"
)

// Longhand is one item of an expanded shorthand.
type Longhand struct {
	Name  string
	Value string
	// Pending is true when the shorthand value depends on a
	// var() or attr() reference, or on a system font: Value is then
	// the whole shorthand text, which is expanded again at computed time.
	Pending bool
}

// expander returns the values of the longhands found in `tokens`
// (which include whitespaces). Missing longhands are set to their initial value.
type expander func(name string, tokens []Token) (map[string]string, error)

var expanders map[string]expander

func init() {
	expanders = map[string]expander{
		"margin":        expandFourSides,
		"padding":       expandFourSides,
		"inset":         expandFourSides,
		"border-width":  expandFourSides,
		"border-style":  expandFourSides,
		"border-color":  expandFourSides,
		"border-radius": expandBorderRadius,
		"border-top":    expandBorderSide,
		"border-right":  expandBorderSide,
		"border-bottom": expandBorderSide,
		"border-left":   expandBorderSide,
		"outline":       expandBorderSide,
		"column-rule":   expandBorderSide,
		"border":        expandBorder,

		"background":      expandBackground,
		"font":            expandFont,
		"list-style":      expandListStyle,
		"text-decoration": expandTextDecoration,
		"overflow":        expandPair,
		"gap":             expandPair,
		"place-items":     expandPair,
		"place-content":   expandPair,
		"place-self":      expandPair,

		"flex":        expandFlex,
		"flex-flow":   expandFlexFlow,
		"grid-row":    expandGridLine,
		"grid-column": expandGridLine,
		"grid-area":   expandGridArea,
		"columns":     expandColumns,

		"transition": expandTransition,
		"animation":  expandAnimation,
	}
	// check for consistency
	for _, name := range pr.Shorthands() {
		if expanders[name] == nil {
			panic("missing expander for shorthand " + name)
		}
	}
}

// SystemFonts are the keywords accepted as the only value of `font`.
var SystemFonts = utils.NewSet("caption", "icon", "menu", "message-box", "small-caption", "status-bar")

// Expand splits the value of the shorthand `name` into its longhands,
// returned in the canonical order given by [pr.Longhands].
//
// A CSS-wide keyword is applied to every longhand. Omitted longhands
// are reset to their initial value.
func Expand(name string, tokens []Token) ([]Longhand, error) {
	longhands := pr.Longhands(name)
	if longhands == nil {
		return nil, ValueError{Property: name, Value: pa.SerializeValue(tokens), Reason: ErrUnknown.Error()}
	}
	stripped := pa.RemoveWhitespace(tokens)
	if len(stripped) == 0 {
		return nil, ShorthandError{Shorthand: name, Empty: true}
	}
	value := pa.SerializeValue(tokens)
	out := make([]Longhand, len(longhands))

	keyword := getSingleKeyword(stripped)
	if pr.IsCSSWideKeyword(keyword) {
		for i, l := range longhands {
			out[i] = Longhand{Name: l, Value: keyword}
		}
		return out, nil
	}
	if IsPending(stripped) || (name == "font" && SystemFonts.Has(keyword)) {
		for i, l := range longhands {
			out[i] = Longhand{Name: l, Value: value, Pending: true}
		}
		return out, nil
	}
	for _, token := range stripped {
		if token.Kind == pa.Ident && pr.IsCSSWideKeyword(token.Value) {
			return nil, ShorthandError{Shorthand: name, Value: value, Reason: "CSS-wide keywords must be used alone"}
		}
	}

	values, err := expanders[name](name, tokens)
	if err != nil {
		return nil, ShorthandError{Shorthand: name, Value: value, Reason: err.Error()}
	}
	for i, l := range longhands {
		v, ok := values[l]
		if !ok {
			v, _ = pr.Initial(l)
		}
		out[i] = Longhand{Name: l, Value: v}
	}
	return out, nil
}

// ExpandString is a convenience wrapper around [Expand].
func ExpandString(name, value string) ([]Longhand, error) {
	return Expand(name, pa.Tokenize(value))
}

// joinTokens serializes significant tokens, separated by a space
func joinTokens(tokens ...Token) string {
	var b strings.Builder
	for i, token := range tokens {
		if i != 0 && token.Kind != pa.Comma {
			b.WriteByte(' ')
		}
		b.WriteString(token.String())
	}
	return b.String()
}

func checkComponent(longhand string, tokens ...Token) (string, error) {
	if err := validateValue(longhand, tokens); err != nil {
		return "", err
	}
	return joinTokens(tokens...), nil
}

func errMultiple(component, shorthand string) error {
	return fmt.Errorf("got multiple %s values in a %s shorthand", component, shorthand)
}

// fourSides maps 1 to 4 values to the top, right, bottom, left order.
func fourSides[T any](values []T) [4]T {
	switch len(values) {
	case 1:
		return [4]T{values[0], values[0], values[0], values[0]}
	case 2:
		return [4]T{values[0], values[1], values[0], values[1]}
	case 3:
		return [4]T{values[0], values[1], values[2], values[1]}
	default:
		return [4]T{values[0], values[1], values[2], values[3]}
	}
}

// Expand properties setting a token for the four sides of a box.
func expandFourSides(name string, tokens []Token) (map[string]string, error) {
	tokens = pa.RemoveWhitespace(tokens)
	if len(tokens) == 0 || len(tokens) > 4 {
		return nil, fmt.Errorf("expected 1 to 4 token components got %d", len(tokens))
	}
	longhands := pr.Longhands(name)
	sides := fourSides(tokens)
	out := make(map[string]string, 4)
	for i, token := range sides {
		value, err := checkComponent(longhands[i], token)
		if err != nil {
			return nil, err
		}
		out[longhands[i]] = value
	}
	return out, nil
}

// Expand the `border-radius` property.
func expandBorderRadius(name string, tokens []Token) (map[string]string, error) {
	parts := pa.SplitOnDelim(tokens, "/")
	if len(parts) > 2 {
		return nil, fmt.Errorf("expected at most one / in %s", name)
	}
	var axis [2][4]Token
	for i, part := range parts {
		part = pa.RemoveWhitespace(part)
		if len(part) == 0 || len(part) > 4 {
			return nil, fmt.Errorf("expected 1 to 4 token components got %d", len(part))
		}
		axis[i] = fourSides(part)
	}
	if len(parts) == 1 {
		axis[1] = axis[0]
	}
	longhands := pr.Longhands(name)
	out := make(map[string]string, 4)
	for i, l := range longhands {
		h, v := axis[0][i], axis[1][i]
		var (
			value string
			err   error
		)
		if h.String() == v.String() {
			value, err = checkComponent(l, h)
		} else {
			value, err = checkComponent(l, h, v)
		}
		if err != nil {
			return nil, err
		}
		out[l] = value
	}
	return out, nil
}

// splitBorder classifies the components of a border-like shorthand
// into width, style and color.
func splitBorder(name string, tokens []Token) (width, style, color string, err error) {
	tokens = pa.RemoveWhitespace(tokens)
	prefix := name
	if name == "border" {
		prefix = "border-top"
	}
	for _, token := range tokens {
		var target *string
		var component string
		switch {
		case validateValue(prefix+"-style", []Token{token}) == nil:
			target, component = &style, "style"
		case validateValue(prefix+"-width", []Token{token}) == nil:
			target, component = &width, "width"
		case validateValue(prefix+"-color", []Token{token}) == nil:
			target, component = &color, "color"
		default:
			return "", "", "", fmt.Errorf("invalid component %s", token.String())
		}
		if *target != "" {
			return "", "", "", errMultiple(component, name)
		}
		*target = token.String()
	}
	return width, style, color, nil
}

// Expand the `border-*`, `outline` and `column-rule` shorthands.
func expandBorderSide(name string, tokens []Token) (map[string]string, error) {
	width, style, color, err := splitBorder(name, tokens)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, 3)
	for suffix, value := range map[string]string{"-width": width, "-style": style, "-color": color} {
		if value != "" {
			out[name+suffix] = value
		}
	}
	return out, nil
}

// Expand the `border` shorthand.
func expandBorder(name string, tokens []Token) (map[string]string, error) {
	width, style, color, err := splitBorder(name, tokens)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, 12)
	for _, side := range pr.Sides {
		for suffix, value := range map[string]string{"-width": width, "-style": style, "-color": color} {
			if value != "" {
				out["border-"+side+suffix] = value
			}
		}
	}
	return out, nil
}

// Expand the `overflow`, `gap` and `place-*` shorthands:
// the second value defaults to the first.
func expandPair(name string, tokens []Token) (map[string]string, error) {
	tokens = pa.RemoveWhitespace(tokens)
	if len(tokens) == 0 || len(tokens) > 2 {
		return nil, fmt.Errorf("expected 1 or 2 token components got %d", len(tokens))
	}
	longhands := pr.Longhands(name)
	if len(tokens) == 1 {
		tokens = append(tokens, tokens[0])
	}
	out := make(map[string]string, 2)
	for i, token := range tokens {
		if strings.HasPrefix(name, "place-") && token.Kind != pa.Ident {
			return nil, fmt.Errorf("expected a keyword, got %s", token.String())
		}
		value, err := checkComponent(longhands[i], token)
		if err != nil {
			return nil, err
		}
		out[longhands[i]] = value
	}
	return out, nil
}

// Expand the `font` shorthand.
// System fonts are handled as pending values by Expand.
func expandFont(name string, tokens []Token) (map[string]string, error) {
	out := map[string]string{}
	it := pa.NewIter(pa.Strip(tokens))
	var token Token
	// font-style, font-variant, font-weight and font-stretch,
	// in any order, before font-size
	preSize := 0
	for ; it.HasNext(); preSize++ {
		token = it.NextSignificant()
		if preSize == 4 {
			break
		}
		if token.IsIdent("normal") {
			continue
		}
		var longhand string
		switch {
		case fontStyle([]Token{token}):
			longhand = "font-style"
		case token.IsIdent("small-caps"):
			longhand = "font-variant"
		case token.Kind == pa.Ident && fontWeight([]Token{token}),
			token.Kind == pa.Number && fontWeight([]Token{token}):
			longhand = "font-weight"
		case fontStretchKeywords.Has(getKeyword(token)):
			longhand = "font-stretch"
		}
		if longhand == "" { // we reached the font-size
			break
		}
		if _, has := out[longhand]; has {
			return nil, errMultiple(strings.TrimPrefix(longhand, "font-"), name)
		}
		out[longhand] = token.String()
		token = Token{}
	}
	if token.Kind == 0 {
		return nil, fmt.Errorf("missing font-size in %s shorthand", name)
	}

	if !fontSize([]Token{token}) {
		return nil, fmt.Errorf("invalid font-size %s", token.String())
	}
	out["font-size"] = token.String()

	remaining := pa.Strip(it.Remaining())
	if len(remaining) > 0 && remaining[0].IsDelim("/") {
		lh := pa.NewIter(remaining[1:])
		token = lh.NextSignificant()
		if !lineHeight([]Token{token}) {
			return nil, fmt.Errorf("invalid line-height %s", token.String())
		}
		out["line-height"] = token.String()
		remaining = pa.Strip(lh.Remaining())
	}
	if len(remaining) == 0 {
		return nil, fmt.Errorf("missing font-family in %s shorthand", name)
	}
	if !fontFamily(pa.RemoveWhitespace(remaining)) {
		return nil, fmt.Errorf("invalid font-family %s", pa.Serialize(remaining))
	}
	out["font-family"] = familyText(remaining)
	return out, nil
}

// familyText normalizes the spacing around commas
func familyText(tokens []Token) string {
	var families []string
	for _, part := range pa.SplitOnComma(tokens) {
		families = append(families, pa.SerializeValue(part))
	}
	return strings.Join(families, ", ")
}

// Expand the `list-style` shorthand.
func expandListStyle(name string, tokens []Token) (map[string]string, error) {
	out := map[string]string{}
	noneCount := 0
	for _, token := range pa.RemoveWhitespace(tokens) {
		var longhand string
		switch {
		case token.IsIdent("none"):
			noneCount++
			continue
		case validateValue("list-style-position", []Token{token}) == nil:
			longhand = "list-style-position"
		case validateValue("list-style-image", []Token{token}) == nil:
			longhand = "list-style-image"
		case validateValue("list-style-type", []Token{token}) == nil:
			longhand = "list-style-type"
		default:
			return nil, fmt.Errorf("invalid component %s", token.String())
		}
		if _, has := out[longhand]; has {
			return nil, errMultiple(strings.TrimPrefix(longhand, "list-style-"), name)
		}
		out[longhand] = token.String()
	}
	// none applies to the type and the image, when not given
	for _, longhand := range [2]string{"list-style-type", "list-style-image"} {
		if noneCount == 0 {
			break
		}
		if _, has := out[longhand]; !has {
			out[longhand] = "none"
			noneCount--
		}
	}
	if noneCount > 0 {
		return nil, errMultiple("none", name)
	}
	return out, nil
}

// Expand the `text-decoration` shorthand.
func expandTextDecoration(name string, tokens []Token) (map[string]string, error) {
	out := map[string]string{}
	var lines []Token
	for _, token := range pa.RemoveWhitespace(tokens) {
		var longhand string
		switch {
		case token.IsIdent("none") || textDecorationLines.Has(getKeyword(token)):
			lines = append(lines, token)
			continue
		case validateValue("text-decoration-style", []Token{token}) == nil:
			longhand = "text-decoration-style"
		case validateValue("text-decoration-color", []Token{token}) == nil:
			longhand = "text-decoration-color"
		default:
			return nil, fmt.Errorf("invalid component %s", token.String())
		}
		if _, has := out[longhand]; has {
			return nil, errMultiple(strings.TrimPrefix(longhand, "text-decoration-"), name)
		}
		out[longhand] = token.String()
	}
	if len(lines) != 0 {
		value, err := checkComponent("text-decoration-line", lines...)
		if err != nil {
			return nil, err
		}
		out["text-decoration-line"] = value
	}
	return out, nil
}

// Expand the `flex` shorthand.
func expandFlex(name string, tokens []Token) (map[string]string, error) {
	tokens = pa.RemoveWhitespace(tokens)
	switch getSingleKeyword(tokens) {
	case "none":
		return map[string]string{"flex-grow": "0", "flex-shrink": "0", "flex-basis": "auto"}, nil
	case "auto":
		return map[string]string{"flex-grow": "1", "flex-shrink": "1", "flex-basis": "auto"}, nil
	}
	var grow, shrink, basis string
	for _, token := range tokens {
		// "A unitless zero that is not already preceded by two flex factors
		// must be interpreted as a flex factor."
		forcedFlexFactor := token.Kind == pa.Number && token.Float() == 0 && !(grow != "" && shrink != "")
		if basis == "" && !forcedFlexFactor && flexBasis([]Token{token}) {
			basis = token.String()
			continue
		}
		if !getNumber(token, false) {
			return nil, fmt.Errorf("invalid flex factor %s", token.String())
		}
		switch {
		case grow == "":
			grow = token.String()
		case shrink == "":
			shrink = token.String()
		default:
			return nil, errMultiple("flex factor", name)
		}
	}
	if grow == "" {
		grow = "1"
	}
	if shrink == "" {
		shrink = "1"
	}
	if basis == "" {
		basis = "0%"
	}
	return map[string]string{"flex-grow": grow, "flex-shrink": shrink, "flex-basis": basis}, nil
}

// Expand the `flex-flow` shorthand.
func expandFlexFlow(name string, tokens []Token) (map[string]string, error) {
	out := map[string]string{}
	for _, token := range pa.RemoveWhitespace(tokens) {
		var longhand string
		switch {
		case validateValue("flex-direction", []Token{token}) == nil:
			longhand = "flex-direction"
		case validateValue("flex-wrap", []Token{token}) == nil:
			longhand = "flex-wrap"
		default:
			return nil, fmt.Errorf("invalid component %s", token.String())
		}
		if _, has := out[longhand]; has {
			return nil, errMultiple(strings.TrimPrefix(longhand, "flex-"), name)
		}
		out[longhand] = token.String()
	}
	return out, nil
}

// gridLines splits on / and validates each part.
func gridLines(name string, tokens []Token, max int) ([]string, []bool, error) {
	parts := pa.SplitOnDelim(tokens, "/")
	if len(parts) > max {
		return nil, nil, fmt.Errorf("expected at most %d lines in %s", max, name)
	}
	values := make([]string, len(parts))
	isIdent := make([]bool, len(parts))
	for i, part := range parts {
		part = pa.RemoveWhitespace(part)
		if !gridLine(part) {
			return nil, nil, fmt.Errorf("invalid grid line %s", pa.SerializeValue(part))
		}
		values[i] = joinTokens(part...)
		kw := getSingleKeyword(part)
		isIdent[i] = kw != "" && kw != "auto"
	}
	return values, isIdent, nil
}

// Expand the `grid-row` and `grid-column` shorthands.
func expandGridLine(name string, tokens []Token) (map[string]string, error) {
	values, isIdent, err := gridLines(name, tokens, 2)
	if err != nil {
		return nil, err
	}
	longhands := pr.Longhands(name)
	out := map[string]string{longhands[0]: values[0]}
	if len(values) == 2 {
		out[longhands[1]] = values[1]
	} else if isIdent[0] {
		out[longhands[1]] = values[0]
	}
	return out, nil
}

// Expand the `grid-area` shorthand.
func expandGridArea(name string, tokens []Token) (map[string]string, error) {
	values, isIdent, err := gridLines(name, tokens, 4)
	if err != nil {
		return nil, err
	}
	// missing values are copied from the corresponding start if it is an ident
	for len(values) < 4 {
		ref := len(values) - 2
		if ref < 0 {
			ref = 0
		}
		if isIdent[ref] {
			values, isIdent = append(values, values[ref]), append(isIdent, true)
		} else {
			values, isIdent = append(values, "auto"), append(isIdent, false)
		}
	}
	longhands := pr.Longhands(name)
	out := make(map[string]string, 4)
	for i, l := range longhands {
		out[l] = values[i]
	}
	return out, nil
}

// Expand the `columns` shorthand.
func expandColumns(name string, tokens []Token) (map[string]string, error) {
	tokens = pa.RemoveWhitespace(tokens)
	if len(tokens) > 2 {
		return nil, fmt.Errorf("expected 1 or 2 token components got %d", len(tokens))
	}
	out := map[string]string{}
	autoCount := 0
	for _, token := range tokens {
		var longhand string
		switch {
		case token.IsIdent("auto"):
			autoCount++
			continue
		case token.Kind == pa.Number && columnCount([]Token{token}):
			longhand = "column-count"
		case columnWidth([]Token{token}):
			longhand = "column-width"
		default:
			return nil, fmt.Errorf("invalid component %s", token.String())
		}
		if _, has := out[longhand]; has {
			return nil, errMultiple(strings.TrimPrefix(longhand, "column-"), name)
		}
		out[longhand] = token.String()
	}
	return out, nil
}

// layers parses each comma separated layer with `parseLayer`,
// and joins the values of each longhand with commas.
func layers(name string, tokens []Token, parseLayer func(layer []Token, isLast bool) (map[string]string, error)) (map[string]string, error) {
	parts := pa.SplitOnComma(tokens)
	longhands := pr.Longhands(name)
	lists := make(map[string][]string, len(longhands))
	for i, part := range parts {
		part = pa.RemoveWhitespace(part)
		if len(part) == 0 {
			return nil, fmt.Errorf("empty layer in %s shorthand", name)
		}
		values, err := parseLayer(part, i == len(parts)-1)
		if err != nil {
			return nil, err
		}
		for _, l := range longhands {
			v, ok := values[l]
			if !ok {
				v, _ = pr.Initial(l)
			}
			lists[l] = append(lists[l], v)
		}
	}
	out := make(map[string]string, len(longhands))
	for l, list := range lists {
		if name == "background" && l == "background-color" {
			out[l] = list[len(list)-1]
			continue
		}
		out[l] = strings.Join(list, ", ")
	}
	return out, nil
}

func setOnce(out map[string]string, longhand, value, shorthand string) error {
	if _, has := out[longhand]; has {
		return errMultiple(strings.TrimPrefix(longhand, shorthand+"-"), shorthand)
	}
	out[longhand] = value
	return nil
}

// Expand the `background` shorthand.
func expandBackground(name string, tokens []Token) (map[string]string, error) {
	return layers(name, tokens, func(layer []Token, isLast bool) (map[string]string, error) {
		out := map[string]string{}
		var boxes []string
		for i := 0; i < len(layer); i++ {
			token := layer[i]
			var err error
			switch {
			case isLast && color([]Token{token}):
				err = setOnce(out, "background-color", token.String(), name)
			case image([]Token{token}):
				err = setOnce(out, "background-image", token.String(), name)
			case backgroundRepeat([]Token{token}):
				end := i + 1
				if end < len(layer) && backgroundRepeat(layer[i:end+1]) {
					end++
				}
				err = setOnce(out, "background-repeat", joinTokens(layer[i:end]...), name)
				i = end - 1
			case validateValue("background-attachment", []Token{token}) == nil:
				err = setOnce(out, "background-attachment", token.String(), name)
			case isBox(getKeyword(token)):
				boxes = append(boxes, getKeyword(token))
				if len(boxes) > 2 {
					err = errMultiple("box", name)
				}
			case isPositionKeyword(getKeyword(token)) || getLength(token, true, true):
				end := i + 1
				for end < len(layer) && end-i < 4 && position(layer[i:end+1]) {
					end++
				}
				err = setOnce(out, "background-position", joinTokens(layer[i:end]...), name)
				i = end - 1
				// optional size
				if err == nil && i+1 < len(layer) && layer[i+1].IsDelim("/") {
					start := i + 2
					end = start
					for end < len(layer) && end-start < 2 && backgroundSize(layer[start:end+1]) {
						end++
					}
					if end == start {
						return nil, fmt.Errorf("invalid background-size")
					}
					out["background-size"] = joinTokens(layer[start:end]...)
					i = end - 1
				}
			default:
				return nil, fmt.Errorf("invalid component %s", token.String())
			}
			if err != nil {
				return nil, err
			}
		}
		switch len(boxes) {
		case 1:
			out["background-origin"], out["background-clip"] = boxes[0], boxes[0]
		case 2:
			out["background-origin"], out["background-clip"] = boxes[0], boxes[1]
		}
		return out, nil
	})
}

// Expand the `transition` shorthand.
func expandTransition(name string, tokens []Token) (map[string]string, error) {
	return layers(name, tokens, func(layer []Token, _ bool) (map[string]string, error) {
		out := map[string]string{}
		for _, token := range layer {
			var err error
			switch {
			case isTime(token, true):
				if _, has := out["transition-duration"]; !has {
					if !isTime(token, false) {
						return nil, fmt.Errorf("negative duration %s", token.String())
					}
					out["transition-duration"] = token.String()
				} else {
					err = setOnce(out, "transition-delay", token.String(), name)
				}
			case isTimingFunction(token):
				err = setOnce(out, "transition-timing-function", token.String(), name)
			case token.Kind == pa.Ident:
				err = setOnce(out, "transition-property", token.String(), name)
			default:
				return nil, fmt.Errorf("invalid component %s", token.String())
			}
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	})
}

var animationKeywords = map[string]string{
	"infinite": "animation-iteration-count",

	"normal": "animation-direction", "reverse": "animation-direction",
	"alternate": "animation-direction", "alternate-reverse": "animation-direction",

	"forwards": "animation-fill-mode", "backwards": "animation-fill-mode", "both": "animation-fill-mode",

	"running": "animation-play-state", "paused": "animation-play-state",
}

// Expand the `animation` shorthand.
func expandAnimation(name string, tokens []Token) (map[string]string, error) {
	return layers(name, tokens, func(layer []Token, _ bool) (map[string]string, error) {
		out := map[string]string{}
		for _, token := range layer {
			var err error
			longhand, isKeyword := animationKeywords[getKeyword(token)]
			if _, has := out[longhand]; isKeyword && has {
				// the keyword is then used as a name
				isKeyword = false
			}
			switch {
			case isTime(token, true):
				if _, has := out["animation-duration"]; !has {
					if !isTime(token, false) {
						return nil, fmt.Errorf("negative duration %s", token.String())
					}
					out["animation-duration"] = token.String()
				} else {
					err = setOnce(out, "animation-delay", token.String(), name)
				}
			case isTimingFunction(token):
				err = setOnce(out, "animation-timing-function", token.String(), name)
			case token.Kind == pa.Number:
				if !getNumber(token, false) {
					return nil, fmt.Errorf("negative iteration count %s", token.String())
				}
				err = setOnce(out, "animation-iteration-count", token.String(), name)
			case isKeyword:
				out[longhand] = token.String()
			case token.Kind == pa.Ident || token.Kind == pa.String:
				err = setOnce(out, "animation-name", token.String(), name)
			default:
				return nil, fmt.Errorf("invalid component %s", token.String())
			}
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	})
}

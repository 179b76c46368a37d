// Package validation checks the values of the longhand properties and
// expands shorthands into their longhands.
//
// Values are kept as (normalized) CSS text: type conversion
// happens when computing styles.
package validation

import (
	"errors"
	"fmt"
	"strings"

	pa "github.com/benoitkugler/webstyle/css/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/utils"
)

type Token = pa.Token

var (
	ErrInvalidValue = errors.New("invalid or unsupported values for a known CSS property")
	ErrUnknown      = errors.New("unknown property")
	ErrEmpty        = errors.New("empty value")
)

// ValueError is returned when a longhand value is rejected.
type ValueError struct {
	Property string
	Value    string
	Reason   string
}

func (e ValueError) Error() string {
	return fmt.Sprintf("invalid value %q for property %s: %s", e.Value, e.Property, e.Reason)
}

// Unwrap returns [ErrInvalidValue] (or ErrUnknown)
func (e ValueError) Unwrap() error {
	if e.Reason == ErrUnknown.Error() {
		return ErrUnknown
	}
	return ErrInvalidValue
}

// ShorthandError is returned when a shorthand value can't be expanded.
type ShorthandError struct {
	Shorthand string
	Value     string
	Reason    string
	// Empty is true when the value had no component at all
	Empty bool
}

func (e ShorthandError) Error() string {
	if e.Empty {
		return fmt.Sprintf("empty value for shorthand %s", e.Shorthand)
	}
	return fmt.Sprintf("invalid value %q for shorthand %s: %s", e.Value, e.Shorthand, e.Reason)
}

func (e ShorthandError) Unwrap() error {
	if e.Empty {
		return ErrEmpty
	}
	return ErrInvalidValue
}

// validator returns true if the tokens, without whitespaces,
// are a valid value.
type validator func(tokens []Token) bool

var validators = map[string]validator{
	"display":    display,
	"position":   keywords("static", "relative", "absolute", "fixed", "sticky"),
	"float":      keywords("left", "right", "none", "inline-start", "inline-end"),
	"clear":      keywords("left", "right", "both", "none", "inline-start", "inline-end"),
	"box-sizing": keywords("content-box", "padding-box", "border-box"),
	"width":      widthHeight,
	"height":     widthHeight,
	"min-width":  minWidthHeight,
	"min-height": minWidthHeight,
	"max-width":  maxWidthHeight,
	"max-height": maxWidthHeight,
	"top":        lengthPercOrAuto,
	"right":      lengthPercOrAuto,
	"bottom":     lengthPercOrAuto,
	"left":       lengthPercOrAuto,
	"z-index":    zIndex,
	"overflow-x": overflow,
	"overflow-y": overflow,
	"visibility": keywords("visible", "hidden", "collapse"),
	"opacity":    number(true),

	"margin-top":     lengthPercOrAuto,
	"margin-right":   lengthPercOrAuto,
	"margin-bottom":  lengthPercOrAuto,
	"margin-left":    lengthPercOrAuto,
	"padding-top":    nonNegativeLengthPerc,
	"padding-right":  nonNegativeLengthPerc,
	"padding-bottom": nonNegativeLengthPerc,
	"padding-left":   nonNegativeLengthPerc,

	"border-top-width":           borderWidth,
	"border-right-width":         borderWidth,
	"border-bottom-width":        borderWidth,
	"border-left-width":          borderWidth,
	"border-top-style":           borderStyle,
	"border-right-style":         borderStyle,
	"border-bottom-style":        borderStyle,
	"border-left-style":          borderStyle,
	"border-top-color":           color,
	"border-right-color":         color,
	"border-bottom-color":        color,
	"border-left-color":          color,
	"border-top-left-radius":     borderCornerRadius,
	"border-top-right-radius":    borderCornerRadius,
	"border-bottom-right-radius": borderCornerRadius,
	"border-bottom-left-radius":  borderCornerRadius,
	"outline-width":              borderWidth,
	"outline-style":              outlineStyle,
	"outline-color":              outlineColor,

	"color":                 color,
	"background-color":      color,
	"background-image":      commaSeparatedList(image),
	"background-repeat":     commaSeparatedList(backgroundRepeat),
	"background-attachment": commaSeparatedList(keywords("scroll", "fixed", "local")),
	"background-position":   commaSeparatedList(position),
	"background-size":       commaSeparatedList(backgroundSize),
	"background-origin":     commaSeparatedList(box),
	"background-clip":       commaSeparatedList(box),

	"font-style":   fontStyle,
	"font-variant": keywords("normal", "small-caps"),
	"font-weight":  fontWeight,
	"font-stretch": fontStretch,
	"font-size":    fontSize,
	"line-height":  lineHeight,
	"font-family":  fontFamily,
	"font-kerning": keywords("auto", "normal", "none"),

	"direction":             keywords("ltr", "rtl"),
	"unicode-bidi":          keywords("normal", "embed", "isolate", "bidi-override", "isolate-override", "plaintext"),
	"writing-mode":          keywords("horizontal-tb", "vertical-rl", "vertical-lr"),
	"text-align":            keywords("left", "right", "center", "justify", "start", "end", "match-parent"),
	"text-indent":           lengthPerc,
	"text-transform":        keywords("none", "capitalize", "uppercase", "lowercase", "full-width"),
	"white-space":           keywords("normal", "pre", "nowrap", "pre-wrap", "pre-line", "break-spaces"),
	"word-spacing":          spacing,
	"letter-spacing":        spacing,
	"word-break":            keywords("normal", "break-all", "keep-all", "break-word"),
	"overflow-wrap":         keywords("normal", "anywhere", "break-word"),
	"hyphens":               keywords("none", "manual", "auto"),
	"tab-size":              tabSize,
	"text-overflow":         keywords("clip", "ellipsis"),
	"vertical-align":        verticalAlign,
	"text-decoration-line":  textDecorationLine,
	"text-decoration-style": keywords("solid", "double", "dotted", "dashed", "wavy"),
	"text-decoration-color": color,

	"quotes":              quotes,
	"list-style-type":     listStyleType,
	"list-style-position": keywords("inside", "outside"),
	"list-style-image":    image,

	"border-collapse": keywords("separate", "collapse"),
	"border-spacing":  borderSpacing,
	"caption-side":    keywords("top", "bottom"),
	"empty-cells":     keywords("show", "hide"),
	"table-layout":    keywords("auto", "fixed"),

	"orphans": positiveInteger,
	"widows":  positiveInteger,

	"order":             integer,
	"flex-direction":    keywords("row", "row-reverse", "column", "column-reverse"),
	"flex-wrap":         keywords("nowrap", "wrap", "wrap-reverse"),
	"flex-grow":         number(false),
	"flex-shrink":       number(false),
	"flex-basis":        flexBasis,
	"row-gap":           gap,
	"column-gap":        gap,
	"grid-row-start":    gridLine,
	"grid-row-end":      gridLine,
	"grid-column-start": gridLine,
	"grid-column-end":   gridLine,

	"column-width":      columnWidth,
	"column-count":      columnCount,
	"column-rule-width": borderWidth,
	"column-rule-style": borderStyle,
	"column-rule-color": color,

	"transition-duration":       commaSeparatedList(time(false)),
	"transition-delay":          commaSeparatedList(time(true)),
	"transition-timing-function": commaSeparatedList(timingFunction),
	"animation-duration":        commaSeparatedList(time(false)),
	"animation-delay":           commaSeparatedList(time(true)),
	"animation-timing-function": commaSeparatedList(timingFunction),
	"animation-iteration-count": commaSeparatedList(iterationCount),
	"animation-direction":       commaSeparatedList(keywords("normal", "reverse", "alternate", "alternate-reverse")),
	"animation-fill-mode":       commaSeparatedList(keywords("none", "forwards", "backwards", "both")),
	"animation-play-state":      commaSeparatedList(keywords("running", "paused")),
}

// IsPending returns true if the value contains a var() or attr()
// reference, whose validation is delayed until computed time.
func IsPending(tokens []Token) bool {
	return pa.ContainsFunction(tokens, "var") || pa.ContainsFunction(tokens, "attr")
}

// ValidateLonghand checks the value of the longhand (or custom) property `name`
// and returns its normalized text. CSS-wide keywords are lower-cased,
// and values depending on var() or attr() are accepted as-is.
func ValidateLonghand(name string, tokens []Token) (string, error) {
	if pr.IsCustom(name) {
		// custom properties keep their value verbatim,
		// except for the surrounding whitespace
		if len(tokens) == 0 {
			return "", ValueError{Property: name, Reason: ErrEmpty.Error()}
		}
		value := strings.TrimSpace(pa.Serialize(tokens))
		if value == "" {
			value = " "
		}
		return value, nil
	}

	value := pa.SerializeValue(tokens)
	if _, known := pr.Initial(name); !known {
		return "", ValueError{Property: name, Value: value, Reason: ErrUnknown.Error()}
	}
	stripped := pa.RemoveWhitespace(tokens)
	if len(stripped) == 0 {
		return "", ValueError{Property: name, Value: value, Reason: ErrEmpty.Error()}
	}
	if kw := getSingleKeyword(stripped); pr.IsCSSWideKeyword(kw) {
		return kw, nil
	}
	if IsPending(stripped) {
		return value, nil
	}
	if err := validateValue(name, stripped); err != nil {
		return "", err
	}
	return value, nil
}

// validateValue does not handle CSS-wide keywords nor pending values.
func validateValue(name string, stripped []Token) error {
	fn := validators[name]
	if fn == nil { // no restriction
		return nil
	}
	if !fn(stripped) {
		return ValueError{Property: name, Value: pa.SerializeValue(stripped), Reason: ErrInvalidValue.Error()}
	}
	return nil
}

// If `token` is an ident, return its lower name.
// Otherwise return empty string.
func getKeyword(token Token) string {
	if token.Kind == pa.Ident {
		return utils.AsciiLower(token.Value)
	}
	return ""
}

// If `tokens` is a 1-element list of ident, return its name.
// Otherwise return empty string.
func getSingleKeyword(tokens []Token) string {
	if len(tokens) == 1 {
		return getKeyword(tokens[0])
	}
	return ""
}

// isMath returns true for the math functions, whose
// type is checked at computed time.
func isMath(token Token) bool {
	if token.Kind != pa.Function {
		return false
	}
	switch utils.AsciiLower(token.Value) {
	case "calc", "min", "max", "clamp":
		return true
	}
	return false
}

// getLength returns true for a length (or a percentage if `percentage`
// is true). Unitless zero is accepted.
func getLength(token Token, negative, percentage bool) bool {
	switch token.Kind {
	case pa.Percentage:
		return percentage && (negative || token.Float() >= 0)
	case pa.Dimension:
		unit, ok := pr.ParseUnit(token.Unit)
		return ok && unit.IsLength() && (negative || token.Float() >= 0)
	case pa.Number:
		return token.Float() == 0
	case pa.Function:
		return isMath(token)
	}
	return false
}

func getNumber(token Token, negative bool) bool {
	switch token.Kind {
	case pa.Number:
		return negative || token.Float() >= 0
	case pa.Function:
		return isMath(token)
	}
	return false
}

func getInteger(token Token) bool {
	return token.Kind == pa.Number && token.IsInt() || isMath(token)
}

func isString(token Token) bool { return token.Kind == pa.String }

func keywords(allowed ...string) validator {
	set := utils.NewSet(allowed...)
	return func(tokens []Token) bool {
		return set.Has(getSingleKeyword(tokens))
	}
}

// commaSeparatedList applies `fn` to each layer.
func commaSeparatedList(fn validator) validator {
	return func(tokens []Token) bool {
		for _, part := range pa.SplitOnComma(tokens) {
			if part = pa.RemoveWhitespace(part); len(part) == 0 || !fn(part) {
				return false
			}
		}
		return true
	}
}

func number(negative bool) validator {
	return func(tokens []Token) bool {
		return len(tokens) == 1 && getNumber(tokens[0], negative)
	}
}

func integer(tokens []Token) bool {
	return len(tokens) == 1 && getInteger(tokens[0])
}

func positiveInteger(tokens []Token) bool {
	return integer(tokens) && (tokens[0].Kind == pa.Function || tokens[0].Int() >= 1)
}

func display(tokens []Token) bool {
	switch getSingleKeyword(tokens) {
	case "inline", "block", "list-item", "inline-block", "table", "inline-table",
		"table-row-group", "table-header-group", "table-footer-group", "table-row",
		"table-column-group", "table-column", "table-cell", "table-caption",
		"none", "flex", "inline-flex", "grid", "inline-grid", "flow-root", "contents":
		return true
	}
	// two values syntax
	if len(tokens) == 2 {
		outside, inside := getKeyword(tokens[0]), getKeyword(tokens[1])
		return (outside == "block" || outside == "inline" || outside == "run-in") &&
			(inside == "flow" || inside == "flow-root" || inside == "table" || inside == "flex" || inside == "grid")
	}
	return false
}

func lengthPerc(tokens []Token) bool {
	return len(tokens) == 1 && getLength(tokens[0], true, true)
}

func nonNegativeLengthPerc(tokens []Token) bool {
	return len(tokens) == 1 && getLength(tokens[0], false, true)
}

func lengthPercOrAuto(tokens []Token) bool {
	return getSingleKeyword(tokens) == "auto" || lengthPerc(tokens)
}

func sizingKeyword(keyword string) bool {
	return keyword == "min-content" || keyword == "max-content" || keyword == "fit-content"
}

func widthHeight(tokens []Token) bool {
	kw := getSingleKeyword(tokens)
	return kw == "auto" || sizingKeyword(kw) || nonNegativeLengthPerc(tokens)
}

func minWidthHeight(tokens []Token) bool { return widthHeight(tokens) }

func maxWidthHeight(tokens []Token) bool {
	kw := getSingleKeyword(tokens)
	return kw == "none" || sizingKeyword(kw) || nonNegativeLengthPerc(tokens)
}

func zIndex(tokens []Token) bool {
	return getSingleKeyword(tokens) == "auto" || integer(tokens)
}

func overflow(tokens []Token) bool {
	switch getSingleKeyword(tokens) {
	case "visible", "hidden", "clip", "scroll", "auto":
		return true
	}
	return false
}

func borderWidth(tokens []Token) bool {
	if _, ok := pr.BorderWidthKeywords[getSingleKeyword(tokens)]; ok {
		return true
	}
	return len(tokens) == 1 && getLength(tokens[0], false, false)
}

func isBorderStyle(keyword string) bool {
	switch keyword {
	case "none", "hidden", "dotted", "dashed", "double",
		"inset", "outset", "groove", "ridge", "solid":
		return true
	}
	return false
}

func borderStyle(tokens []Token) bool { return isBorderStyle(getSingleKeyword(tokens)) }

func outlineStyle(tokens []Token) bool {
	kw := getSingleKeyword(tokens)
	return kw == "auto" || (kw != "hidden" && isBorderStyle(kw))
}

func color(tokens []Token) bool {
	if len(tokens) != 1 {
		return false
	}
	_, ok := pr.ParseColor(tokens[0])
	return ok
}

func outlineColor(tokens []Token) bool {
	return getSingleKeyword(tokens) == "invert" || color(tokens)
}

// borderDims accepts one or two lengths
func borderDims(tokens []Token, negative, percentage bool) bool {
	if len(tokens) != 1 && len(tokens) != 2 {
		return false
	}
	for _, token := range tokens {
		if !getLength(token, negative, percentage) {
			return false
		}
	}
	return true
}

func borderSpacing(tokens []Token) bool { return borderDims(tokens, false, false) }

func borderCornerRadius(tokens []Token) bool { return borderDims(tokens, false, true) }

func isGradient(token Token) bool {
	if token.Kind != pa.Function {
		return false
	}
	name := utils.AsciiLower(token.Value)
	name = strings.TrimPrefix(name, "repeating-")
	return name == "linear-gradient" || name == "radial-gradient" || name == "conic-gradient"
}

func image(tokens []Token) bool {
	if getSingleKeyword(tokens) == "none" {
		return true
	}
	return len(tokens) == 1 && (tokens[0].Kind == pa.URL || isGradient(tokens[0]) ||
		tokens[0].Kind == pa.Function && utils.AsciiLower(tokens[0].Value) == "url")
}

func backgroundRepeat(tokens []Token) bool {
	switch kw := getSingleKeyword(tokens); kw {
	case "repeat-x", "repeat-y":
		return true
	}
	if len(tokens) != 1 && len(tokens) != 2 {
		return false
	}
	for _, token := range tokens {
		switch getKeyword(token) {
		case "repeat", "space", "round", "no-repeat":
		default:
			return false
		}
	}
	return true
}

func isPositionKeyword(keyword string) bool {
	switch keyword {
	case "left", "right", "top", "bottom", "center":
		return true
	}
	return false
}

// position accepts the 1 to 4 components of a <position>
func position(tokens []Token) bool {
	if len(tokens) == 0 || len(tokens) > 4 {
		return false
	}
	var hasHorizontal, hasVertical bool
	for _, token := range tokens {
		switch getKeyword(token) {
		case "left", "right":
			if hasHorizontal {
				return false
			}
			hasHorizontal = true
		case "top", "bottom":
			if hasVertical {
				return false
			}
			hasVertical = true
		case "center":
		default:
			if !getLength(token, true, true) {
				return false
			}
		}
	}
	return true
}

func backgroundSize(tokens []Token) bool {
	switch getSingleKeyword(tokens) {
	case "cover", "contain":
		return true
	}
	if len(tokens) != 1 && len(tokens) != 2 {
		return false
	}
	for _, token := range tokens {
		if getKeyword(token) != "auto" && !getLength(token, false, true) {
			return false
		}
	}
	return true
}

func isBox(keyword string) bool {
	return keyword == "border-box" || keyword == "padding-box" || keyword == "content-box"
}

func box(tokens []Token) bool { return isBox(getSingleKeyword(tokens)) }

func fontStyle(tokens []Token) bool {
	switch getSingleKeyword(tokens) {
	case "normal", "italic", "oblique":
		return true
	}
	return false
}

func fontWeight(tokens []Token) bool {
	switch getSingleKeyword(tokens) {
	case "normal", "bold", "bolder", "lighter":
		return true
	}
	if len(tokens) == 1 && tokens[0].Kind == pa.Number {
		v := tokens[0].Float()
		return 1 <= v && v <= 1000
	}
	return len(tokens) == 1 && isMath(tokens[0])
}

var fontStretchKeywords = utils.NewSet("ultra-condensed", "extra-condensed", "condensed", "semi-condensed",
	"normal", "semi-expanded", "expanded", "extra-expanded", "ultra-expanded")

func fontStretch(tokens []Token) bool {
	if fontStretchKeywords.Has(getSingleKeyword(tokens)) {
		return true
	}
	return len(tokens) == 1 && tokens[0].Kind == pa.Percentage && tokens[0].Float() >= 0
}

func fontSize(tokens []Token) bool {
	kw := getSingleKeyword(tokens)
	if _, ok := pr.FontSizeKeywords[kw]; ok || kw == "larger" || kw == "smaller" {
		return true
	}
	return nonNegativeLengthPerc(tokens)
}

func lineHeight(tokens []Token) bool {
	if getSingleKeyword(tokens) == "normal" {
		return true
	}
	return len(tokens) == 1 && (getNumber(tokens[0], false) || getLength(tokens[0], false, true))
}

// fontFamily accepts a comma separated list of strings or
// sequences of identifiers.
func fontFamily(tokens []Token) bool {
	for _, part := range pa.SplitOnComma(tokens) {
		part = pa.RemoveWhitespace(part)
		if len(part) == 0 {
			return false
		}
		if len(part) == 1 && isString(part[0]) {
			continue
		}
		for _, token := range part {
			if token.Kind != pa.Ident || pr.IsCSSWideKeyword(token.Value) {
				return false
			}
		}
	}
	return true
}

func spacing(tokens []Token) bool {
	return getSingleKeyword(tokens) == "normal" || (len(tokens) == 1 && getLength(tokens[0], true, false))
}

func tabSize(tokens []Token) bool {
	return len(tokens) == 1 && (getNumber(tokens[0], false) || getLength(tokens[0], false, false))
}

func verticalAlign(tokens []Token) bool {
	switch getSingleKeyword(tokens) {
	case "baseline", "middle", "sub", "super", "text-top", "text-bottom", "top", "bottom":
		return true
	}
	return lengthPerc(tokens)
}

var textDecorationLines = utils.NewSet("underline", "overline", "line-through", "blink")

func textDecorationLine(tokens []Token) bool {
	if getSingleKeyword(tokens) == "none" {
		return true
	}
	seen := utils.NewSet()
	for _, token := range tokens {
		kw := getKeyword(token)
		if !textDecorationLines.Has(kw) || seen.Has(kw) {
			return false
		}
		seen.Add(kw)
	}
	return len(tokens) > 0
}

func quotes(tokens []Token) bool {
	switch getSingleKeyword(tokens) {
	case "auto", "none":
		return true
	}
	if len(tokens) == 0 || len(tokens)%2 != 0 {
		return false
	}
	for _, token := range tokens {
		if !isString(token) {
			return false
		}
	}
	return true
}

func listStyleType(tokens []Token) bool {
	if len(tokens) != 1 {
		return false
	}
	switch tokens[0].Kind {
	case pa.Ident:
		return !pr.IsCSSWideKeyword(tokens[0].Value)
	case pa.String:
		return true
	case pa.Function:
		return utils.AsciiLower(tokens[0].Value) == "symbols"
	}
	return false
}

func flexBasis(tokens []Token) bool {
	kw := getSingleKeyword(tokens)
	return kw == "content" || kw == "auto" || sizingKeyword(kw) || nonNegativeLengthPerc(tokens)
}

func gap(tokens []Token) bool {
	return getSingleKeyword(tokens) == "normal" || nonNegativeLengthPerc(tokens)
}

// gridLine accepts auto, <custom-ident>, [<integer> && <custom-ident>?] and
// [span && [<integer> || <custom-ident>]]
func gridLine(tokens []Token) bool {
	if kw := getSingleKeyword(tokens); kw != "" {
		return kw != "span" && !pr.IsCSSWideKeyword(kw)
	}
	if len(tokens) == 0 || len(tokens) > 3 {
		return false
	}
	var hasSpan, hasInt, hasIdent bool
	for _, token := range tokens {
		switch {
		case token.IsIdent("span"):
			if hasSpan {
				return false
			}
			hasSpan = true
		case token.Kind == pa.Number && token.IsInt():
			if hasInt || token.Int() == 0 || (hasSpan && token.Int() < 0) {
				return false
			}
			hasInt = true
		case token.Kind == pa.Ident && !token.IsIdent("auto"):
			if hasIdent {
				return false
			}
			hasIdent = true
		default:
			return false
		}
	}
	return hasInt || (hasSpan && hasIdent)
}

func columnWidth(tokens []Token) bool {
	return getSingleKeyword(tokens) == "auto" || (len(tokens) == 1 && getLength(tokens[0], false, false))
}

func columnCount(tokens []Token) bool {
	return getSingleKeyword(tokens) == "auto" || positiveInteger(tokens)
}

func time(negative bool) validator {
	return func(tokens []Token) bool {
		return len(tokens) == 1 && isTime(tokens[0], negative)
	}
}

func isTime(token Token, negative bool) bool {
	if token.Kind != pa.Dimension {
		return isMath(token)
	}
	unit, ok := pr.ParseUnit(token.Unit)
	return ok && unit.IsTime() && (negative || token.Float() >= 0)
}

var timingKeywords = utils.NewSet("ease", "linear", "ease-in", "ease-out", "ease-in-out", "step-start", "step-end")

func isTimingFunction(token Token) bool {
	if timingKeywords.Has(getKeyword(token)) {
		return true
	}
	if token.Kind == pa.Function {
		switch utils.AsciiLower(token.Value) {
		case "cubic-bezier", "steps", "linear":
			return true
		}
	}
	return false
}

func timingFunction(tokens []Token) bool {
	return len(tokens) == 1 && isTimingFunction(tokens[0])
}

func iterationCount(tokens []Token) bool {
	return getSingleKeyword(tokens) == "infinite" || number(false)(tokens)
}

package properties

var (
	// How many points is one <unit>?
	// http://www.w3.org/TR/CSS21/syndata.html#length-units
	LengthsToPoints = map[Unit]Fl{
		Pt: 1,
		Px: 0.75,
		Pc: 12.,             // LengthsToPoints[Pt] * 12
		In: 72.,             // LengthsToPoints[Pt] * 72
		Cm: 72. / 2.54,      // LengthsToPoints[In] / 2.54
		Mm: 72. / 25.4,      // LengthsToPoints[In] / 25.4
		Q:  72. / 25.4 / 4., // LengthsToPoints[Mm] / 4
	}

	// MediumFontSize is the size in points of the `medium` keyword.
	MediumFontSize Fl = 12

	// Value in points of font-size for <absolute-size> keywords: 12pt (16px) for
	// medium, and scaling factors given in CSS3 for others:
	// http://www.w3.org/TR/css3-fonts/#font-size-prop
	FontSizeKeywords = map[string]Fl{ // medium is 12pt, others are a ratio of medium
		"xx-small":  MediumFontSize * 3 / 5,
		"x-small":   MediumFontSize * 3 / 4,
		"small":     MediumFontSize * 8 / 9,
		"medium":    MediumFontSize * 1 / 1,
		"large":     MediumFontSize * 6 / 5,
		"x-large":   MediumFontSize * 3 / 2,
		"xx-large":  MediumFontSize * 2 / 1,
		"xxx-large": MediumFontSize * 3 / 1,
	}
	FontSizeKeywordsOrder = []string{"xx-small", "x-small", "small", "medium", "large", "x-large", "xx-large", "xxx-large"}

	// BorderWidthKeywords gives the sizes in points.
	BorderWidthKeywords = map[string]Fl{
		"thin":   0.75,
		"medium": 2.25,
		"thick":  3.75,
	}
)

type propertyDef struct {
	initial   string
	inherited bool
}

// definitions stores the longhand properties, with their initial value
// as specified text, and whether they are inherited.
var definitions = map[string]propertyDef{
	// box
	"display":    {"inline", false},
	"position":   {"static", false},
	"float":      {"none", false},
	"clear":      {"none", false},
	"box-sizing": {"content-box", false},
	"width":      {"auto", false},
	"height":     {"auto", false},
	"min-width":  {"auto", false},
	"min-height": {"auto", false},
	"max-width":  {"none", false},
	"max-height": {"none", false},
	"top":        {"auto", false},
	"right":      {"auto", false},
	"bottom":     {"auto", false},
	"left":       {"auto", false},
	"z-index":    {"auto", false},
	"overflow-x": {"visible", false},
	"overflow-y": {"visible", false},
	"visibility": {"visible", true},
	"opacity":    {"1", false},
	"clip":       {"auto", false},
	"transform":  {"none", false},

	"margin-top":     {"0", false},
	"margin-right":   {"0", false},
	"margin-bottom":  {"0", false},
	"margin-left":    {"0", false},
	"padding-top":    {"0", false},
	"padding-right":  {"0", false},
	"padding-bottom": {"0", false},
	"padding-left":   {"0", false},

	"border-top-width":           {"medium", false},
	"border-right-width":         {"medium", false},
	"border-bottom-width":        {"medium", false},
	"border-left-width":          {"medium", false},
	"border-top-style":           {"none", false},
	"border-right-style":         {"none", false},
	"border-bottom-style":        {"none", false},
	"border-left-style":          {"none", false},
	"border-top-color":           {"currentcolor", false},
	"border-right-color":         {"currentcolor", false},
	"border-bottom-color":        {"currentcolor", false},
	"border-left-color":          {"currentcolor", false},
	"border-top-left-radius":     {"0", false},
	"border-top-right-radius":    {"0", false},
	"border-bottom-right-radius": {"0", false},
	"border-bottom-left-radius":  {"0", false},

	"outline-width": {"medium", false},
	"outline-style": {"none", false},
	"outline-color": {"currentcolor", false},

	// colors and backgrounds
	"color":                 {"canvastext", true},
	"background-color":      {"transparent", false},
	"background-image":      {"none", false},
	"background-repeat":     {"repeat", false},
	"background-attachment": {"scroll", false},
	"background-position":   {"0% 0%", false},
	"background-size":       {"auto", false},
	"background-origin":     {"padding-box", false},
	"background-clip":       {"border-box", false},
	"box-shadow":            {"none", false},

	// fonts
	"font-style":   {"normal", true},
	"font-variant": {"normal", true},
	"font-weight":  {"normal", true},
	"font-stretch": {"normal", true},
	"font-size":    {"medium", true},
	"line-height":  {"normal", true},
	"font-family":  {"serif", true},
	"font-kerning": {"auto", true},

	// text
	"direction":             {"ltr", true},
	"unicode-bidi":          {"normal", false},
	"writing-mode":          {"horizontal-tb", true},
	"text-align":            {"start", true},
	"text-indent":           {"0", true},
	"text-transform":        {"none", true},
	"white-space":           {"normal", true},
	"word-spacing":          {"normal", true},
	"letter-spacing":        {"normal", true},
	"word-break":            {"normal", true},
	"overflow-wrap":         {"normal", true},
	"hyphens":               {"manual", true},
	"tab-size":              {"8", true},
	"text-overflow":         {"clip", false},
	"text-shadow":           {"none", true},
	"vertical-align":        {"baseline", false},
	"text-decoration-line":  {"none", false},
	"text-decoration-style": {"solid", false},
	"text-decoration-color": {"currentcolor", false},

	// generated content and lists
	"content":             {"normal", false},
	"quotes":              {"auto", true},
	"counter-reset":       {"none", false},
	"counter-increment":   {"none", false},
	"list-style-type":     {"disc", true},
	"list-style-position": {"outside", true},
	"list-style-image":    {"none", true},

	// tables
	"border-collapse": {"separate", true},
	"border-spacing":  {"0", true},
	"caption-side":    {"top", true},
	"empty-cells":     {"show", true},
	"table-layout":    {"auto", false},

	// paged media
	"orphans": {"2", true},
	"widows":  {"2", true},

	// user interface
	"cursor": {"auto", true},

	// flex and grid
	"order":             {"0", false},
	"flex-direction":    {"row", false},
	"flex-wrap":         {"nowrap", false},
	"flex-grow":         {"0", false},
	"flex-shrink":       {"1", false},
	"flex-basis":        {"auto", false},
	"align-items":       {"normal", false},
	"align-content":     {"normal", false},
	"align-self":        {"auto", false},
	"justify-items":     {"legacy", false},
	"justify-content":   {"normal", false},
	"justify-self":      {"auto", false},
	"row-gap":           {"normal", false},
	"column-gap":        {"normal", false},
	"grid-row-start":    {"auto", false},
	"grid-row-end":      {"auto", false},
	"grid-column-start": {"auto", false},
	"grid-column-end":   {"auto", false},

	// multi-columns
	"column-width":      {"auto", false},
	"column-count":      {"auto", false},
	"column-rule-width": {"medium", false},
	"column-rule-style": {"none", false},
	"column-rule-color": {"currentcolor", false},

	// animations
	"transition-property":        {"all", false},
	"transition-duration":        {"0s", false},
	"transition-timing-function": {"ease", false},
	"transition-delay":           {"0s", false},
	"animation-name":             {"none", false},
	"animation-duration":         {"0s", false},
	"animation-timing-function":  {"ease", false},
	"animation-delay":            {"0s", false},
	"animation-iteration-count":  {"1", false},
	"animation-direction":        {"normal", false},
	"animation-fill-mode":        {"none", false},
	"animation-play-state":       {"running", false},
}

// shorthands maps each shorthand to its longhands, in canonical order.
// For the four sides families, the order is top, right, bottom, left.
var shorthands = map[string][]string{
	"margin":  {"margin-top", "margin-right", "margin-bottom", "margin-left"},
	"padding": {"padding-top", "padding-right", "padding-bottom", "padding-left"},
	"inset":   {"top", "right", "bottom", "left"},

	"border-width":  {"border-top-width", "border-right-width", "border-bottom-width", "border-left-width"},
	"border-style":  {"border-top-style", "border-right-style", "border-bottom-style", "border-left-style"},
	"border-color":  {"border-top-color", "border-right-color", "border-bottom-color", "border-left-color"},
	"border-top":    {"border-top-width", "border-top-style", "border-top-color"},
	"border-right":  {"border-right-width", "border-right-style", "border-right-color"},
	"border-bottom": {"border-bottom-width", "border-bottom-style", "border-bottom-color"},
	"border-left":   {"border-left-width", "border-left-style", "border-left-color"},
	"border": {
		"border-top-width", "border-right-width", "border-bottom-width", "border-left-width",
		"border-top-style", "border-right-style", "border-bottom-style", "border-left-style",
		"border-top-color", "border-right-color", "border-bottom-color", "border-left-color",
	},
	"border-radius": {"border-top-left-radius", "border-top-right-radius", "border-bottom-right-radius", "border-bottom-left-radius"},
	"outline":       {"outline-width", "outline-style", "outline-color"},

	"background": {
		"background-color", "background-image", "background-repeat", "background-attachment",
		"background-position", "background-size", "background-origin", "background-clip",
	},
	"font":            {"font-style", "font-variant", "font-weight", "font-stretch", "font-size", "line-height", "font-family"},
	"list-style":      {"list-style-type", "list-style-position", "list-style-image"},
	"text-decoration": {"text-decoration-line", "text-decoration-style", "text-decoration-color"},
	"overflow":        {"overflow-x", "overflow-y"},

	"flex":          {"flex-grow", "flex-shrink", "flex-basis"},
	"flex-flow":     {"flex-direction", "flex-wrap"},
	"gap":           {"row-gap", "column-gap"},
	"place-items":   {"align-items", "justify-items"},
	"place-content": {"align-content", "justify-content"},
	"place-self":    {"align-self", "justify-self"},
	"grid-row":      {"grid-row-start", "grid-row-end"},
	"grid-column":   {"grid-column-start", "grid-column-end"},
	"grid-area":     {"grid-row-start", "grid-column-start", "grid-row-end", "grid-column-end"},

	"columns":     {"column-width", "column-count"},
	"column-rule": {"column-rule-width", "column-rule-style", "column-rule-color"},

	"transition": {"transition-property", "transition-duration", "transition-timing-function", "transition-delay"},
	"animation": {
		"animation-name", "animation-duration", "animation-timing-function", "animation-delay",
		"animation-iteration-count", "animation-direction", "animation-fill-mode", "animation-play-state",
	},
}

// contextInitial lists the properties whose initial value
// depends on the user agent, the document or another property.
var contextInitial = map[string]bool{
	"color":       true,
	"font-family": true,
	"text-align":  true,
	"quotes":      true,
}

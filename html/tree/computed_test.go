package tree

import (
	"errors"
	"testing"

	"github.com/benoitkugler/webstyle/css/declaration"
	"github.com/benoitkugler/webstyle/css/validation"
	tu "github.com/benoitkugler/webstyle/utils/testutils"
)

func newStyle(t *testing.T, css string, parent *ComputedStyle, ctx *Context) *ComputedStyle {
	t.Helper()
	decl, err := declaration.New(css)
	if err != nil {
		t.Fatal(err)
	}
	return NewComputedStyle(decl, parent, nil, "", ctx)
}

func value(t *testing.T, style *ComputedStyle, property string) string {
	t.Helper()
	v, err := style.GetComputedValue(property)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestInheritance(t *testing.T) {
	root := newStyle(t, "", nil, nil)
	tu.AssertEqual(t, value(t, root, "color"), "rgb(0, 0, 0)")

	parent := newStyle(t, "color: blue; width: 10px", root, nil)
	child := newStyle(t, "color: inherit", parent, nil)
	grandChild := newStyle(t, "width: inherit", child, nil)
	for _, s := range []*ComputedStyle{parent, child, grandChild} {
		tu.AssertEqual(t, value(t, s, "color"), "rgb(0, 0, 255)")
	}
	// width is not inherited
	tu.AssertEqual(t, value(t, parent, "width"), "7.5pt")
	tu.AssertEqual(t, value(t, child, "width"), "auto")
	tu.AssertEqual(t, value(t, grandChild, "width"), "auto")

	tu.AssertEqual(t, value(t, newStyle(t, "color: unset", parent, nil), "color"), "")
	tu.AssertEqual(t, value(t, newStyle(t, "color: initial", parent, nil), "color"), "rgb(0, 0, 0)")
	tu.AssertEqual(t, value(t, newStyle(t, "color: revert", parent, nil), "color"), "rgb(0, 0, 255)")
	tu.AssertEqual(t, value(t, newStyle(t, "width: inherit", nil, nil), "width"), "auto")
}

func TestUnknownProperty(t *testing.T) {
	_, err := newStyle(t, "", nil, nil).GetComputedValue("colour")
	var ve validation.ValueError
	tu.AssertEqual(t, errors.As(err, &ve), true)
	tu.AssertEqual(t, ve.Property, "colour")
}

func TestComputedShorthand(t *testing.T) {
	s := newStyle(t, "margin: 1px 2px; border-top: 1px solid red", nil, nil)
	tu.AssertEqual(t, value(t, s, "margin"), "0.75pt 1.5pt")
	tu.AssertEqual(t, value(t, s, "MARGIN-left"), "1.5pt")
	tu.AssertEqual(t, value(t, s, "border-top"), "0.75pt solid rgb(255, 0, 0)")
}

func TestColors(t *testing.T) {
	parent := newStyle(t, "color: #f00; border-top-color: currentcolor", nil, nil)
	tu.AssertEqual(t, value(t, parent, "border-top-color"), "rgb(255, 0, 0)")
	tu.AssertEqual(t, value(t, parent, "border-left-color"), "rgb(255, 0, 0)")

	child := newStyle(t, "color: currentcolor; background-color: rgba(0, 0, 255, 0.5)", parent, nil)
	tu.AssertEqual(t, value(t, child, "color"), "rgb(255, 0, 0)")
	tu.AssertEqual(t, value(t, child, "background-color"), "rgba(0, 0, 255, 0.5)")

	ctx := &Context{Database: &Profile{Medium: "test", Width: 10, Height: 10, Color: "green"}}
	tu.AssertEqual(t, value(t, newStyle(t, "", nil, ctx), "color"), "rgb(0, 128, 0)")
}

func TestFontSize(t *testing.T) {
	root := newStyle(t, "", nil, nil)
	tu.AssertEqual(t, value(t, root, "font-size"), "12pt")

	large := newStyle(t, "font-size: large", root, nil)
	tu.AssertEqual(t, value(t, large, "font-size"), "14.4pt")
	tu.AssertEqual(t, value(t, newStyle(t, "font-size: larger", large, nil), "font-size"), "18pt")
	tu.AssertEqual(t, value(t, newStyle(t, "font-size: smaller", large, nil), "font-size"), "12pt")
	tu.AssertEqual(t, value(t, newStyle(t, "font-size: 50%", large, nil), "font-size"), "7.2pt")

	// not a keyword: use the nearest one
	odd := newStyle(t, "font-size: 13pt", root, nil)
	tu.AssertEqual(t, value(t, newStyle(t, "font-size: larger", odd, nil), "font-size"), "14.4pt")
	tu.AssertEqual(t, value(t, newStyle(t, "font-size: smaller", odd, nil), "font-size"), "12pt")

	tu.AssertEqual(t, value(t, newStyle(t, "font-size: calc(50% + 2pt)", newStyle(t, "font-size: 10pt", nil, nil), nil), "font-size"), "7pt")

	// the keywords follow the default size of the device
	ctx := &Context{Database: &Profile{Medium: "test", Width: 10, Height: 10, FontSize: 20}}
	root = newStyle(t, "", nil, ctx)
	tu.AssertEqual(t, value(t, root, "font-size"), "15pt")
	tu.AssertEqual(t, value(t, newStyle(t, "font-size: large", root, ctx), "font-size"), "18pt")
}

func TestFontRelativeUnits(t *testing.T) {
	root := newStyle(t, "font-size: 20px", nil, nil)
	child := newStyle(t, "font-size: 2em; width: 2em; margin-left: 1rem", root, nil)
	tu.AssertEqual(t, value(t, child, "font-size"), "30pt")
	tu.AssertEqual(t, value(t, child, "width"), "60pt")
	tu.AssertEqual(t, value(t, child, "margin-left"), "15pt")

	tu.AssertEqual(t, value(t, newStyle(t, "font-size: 2rem", nil, nil), "font-size"), "24pt")

	lh := newStyle(t, "font-size: 10pt; line-height: 150%; height: 2lh", nil, nil)
	tu.AssertEqual(t, value(t, lh, "line-height"), "15pt")
	tu.AssertEqual(t, value(t, lh, "height"), "30pt")
	tu.AssertEqual(t, value(t, newStyle(t, "line-height: 1.5", lh, nil), "line-height"), "1.5")
	tu.AssertEqual(t, value(t, newStyle(t, "line-height: 2lh", lh, nil), "line-height"), "30pt")
	got, err := newStyle(t, "line-height: 2", lh, nil).LineHeight()
	tu.AssertEqual(t, err, nil)
	tu.AssertEqual(t, got, Fl(20))

	_, err = newStyle(t, "width: 2ex", nil, nil).GetComputedValue("width")
	tu.AssertEqual(t, errors.Is(err, ErrStyleDatabaseRequired), true)

	ctx := &Context{Medium: "screen"}
	tu.AssertEqual(t, value(t, newStyle(t, "width: 2ex", nil, ctx), "width"), "12.456pt")
	tu.AssertEqual(t, value(t, newStyle(t, "width: 1ch; font-family: monospace", nil, ctx), "width"), "7.2pt")
}

func TestFontWeight(t *testing.T) {
	root := newStyle(t, "", nil, nil)
	tu.AssertEqual(t, value(t, root, "font-weight"), "400")
	bold := newStyle(t, "font-weight: bold", root, nil)
	tu.AssertEqual(t, value(t, bold, "font-weight"), "700")
	tu.AssertEqual(t, value(t, newStyle(t, "font-weight: bolder", bold, nil), "font-weight"), "900")
	tu.AssertEqual(t, value(t, newStyle(t, "font-weight: lighter", bold, nil), "font-weight"), "400")
	tu.AssertEqual(t, value(t, newStyle(t, "font-weight: bolder", root, nil), "font-weight"), "700")
	tu.AssertEqual(t, relativeWeight(450, true), 700)
	tu.AssertEqual(t, relativeWeight(50, false), 50)
}

func TestViewportUnits(t *testing.T) {
	_, err := newStyle(t, "width: 10vw", nil, nil).GetComputedValue("width")
	var re ResolutionError
	tu.AssertEqual(t, errors.As(err, &re), true)
	tu.AssertEqual(t, re.Property, "width")
	tu.AssertEqual(t, errors.Is(err, ErrStyleDatabaseRequired), true)

	tu.AssertEqual(t, value(t, newStyle(t, "width: 10vw", nil, &Context{Medium: "screen"}), "width"), "96pt")
	ctx := &Context{ViewportWidth: 200, ViewportHeight: 100}
	tu.AssertEqual(t, value(t, newStyle(t, "height: 50vmin; width: 10vmax", nil, ctx), "height"), "50pt")
	tu.AssertEqual(t, value(t, newStyle(t, "height: 50vmin; width: 10vmax", nil, ctx), "width"), "20pt")
}

func TestCalc(t *testing.T) {
	s := newStyle(t, "width: calc(50% + 10px); height: calc(2 * 10px); margin-left: min(10px, 20pt); margin-right: calc(100% - 1pt)", nil, nil)
	tu.AssertEqual(t, value(t, s, "width"), "calc(50% + 7.5pt)")
	tu.AssertEqual(t, value(t, s, "height"), "15pt")
	tu.AssertEqual(t, value(t, s, "margin-left"), "7.5pt")
	tu.AssertEqual(t, value(t, s, "margin-right"), "calc(100% - 1pt)")

	width, _ := s.Length("width")
	got, ok := ResolveLength(width, 100)
	tu.AssertEqual(t, ok, true)
	tu.AssertEqual(t, got, Fl(57.5))
}

func TestBorderWidth(t *testing.T) {
	s := newStyle(t, "border-top-width: 5px; border-left: thick solid; border-right: 2px hidden; border-bottom: 1em dotted", nil, nil)
	tu.AssertEqual(t, value(t, s, "border-top-width"), "0pt")
	tu.AssertEqual(t, value(t, s, "border-left-width"), "3.75pt")
	tu.AssertEqual(t, value(t, s, "border-right-width"), "0pt")
	tu.AssertEqual(t, value(t, s, "border-bottom-width"), "12pt")
	tu.AssertEqual(t, value(t, s, "outline-width"), "0pt")
	tu.AssertEqual(t, value(t, newStyle(t, "outline: solid", nil, nil), "outline-width"), "2.25pt")
}

func TestDisplay(t *testing.T) {
	root := newStyle(t, "display: inline", nil, nil)
	tu.AssertEqual(t, value(t, root, "display"), "block")

	for _, test := range []struct {
		css, display, float string
	}{
		{"", "inline", "none"},
		{"float: left", "block", "left"},
		{"display: inline-table; float: right", "table", "right"},
		{"display: table-cell; position: absolute; float: left", "block", "none"},
		{"display: inline-flex; position: fixed", "flex", "none"},
		{"display: none; float: left", "none", "left"},
		{"display: table-row; position: relative", "table-row", "none"},
	} {
		s := newStyle(t, test.css, root, nil)
		tu.AssertEqual(t, value(t, s, "display"), test.display)
		tu.AssertEqual(t, value(t, s, "float"), test.float)
	}
}

func TestBackgroundRepeat(t *testing.T) {
	s := newStyle(t, "background-repeat: repeat-x, space, repeat no-repeat", nil, nil)
	tu.AssertEqual(t, value(t, s, "background-repeat"), "repeat no-repeat, space space, repeat no-repeat")

	s = newStyle(t, "background-repeat: round   space", nil, nil)
	tu.AssertEqual(t, value(t, s, "background-repeat"), "round space")
	s = newStyle(t, "background: url(a.png) no-repeat repeat", nil, nil)
	tu.AssertEqual(t, value(t, s, "background-repeat"), "no-repeat repeat")
}

func TestSystemFont(t *testing.T) {
	_, err := newStyle(t, "font: caption", nil, nil).GetComputedValue("font-size")
	tu.AssertEqual(t, errors.Is(err, ErrStyleDatabaseRequired), true)

	s := newStyle(t, "font: caption", nil, &Context{Medium: "screen"})
	tu.AssertEqual(t, value(t, s, "font-size"), "9.75pt")
	tu.AssertEqual(t, value(t, s, "font-family"), "sans-serif")
	font, err := s.Font()
	tu.AssertEqual(t, err, nil)
	tu.AssertEqual(t, font, Font{Families: []string{"sans-serif"}, Size: 9.75, Weight: 400, Style: "normal"})
}

func TestFontFamilies(t *testing.T) {
	tu.AssertEqual(t, fontFamilies(`"Times New Roman", DejaVu  Sans, serif`), []string{"Times New Roman", "DejaVu Sans", "serif"})
}

func TestQuotes(t *testing.T) {
	doc, cascade := setupCascade(t, `<!DOCTYPE html><html lang="fr-CA"><body><q id=fr></q><q id=de lang=de></q><q id=xx lang=xx-zz></q></body></html>`, "screen")
	tu.AssertEqual(t, computed(t, cascade, find(t, doc, "#fr"), nil, "quotes"), `"«" "»" "‹" "›"`)
	tu.AssertEqual(t, computed(t, cascade, find(t, doc, "#de"), nil, "quotes"), `"„" "“" "‚" "‘"`)
	tu.AssertEqual(t, computed(t, cascade, find(t, doc, "#xx"), nil, "quotes"), `"“" "”" "‘" "’"`)
}

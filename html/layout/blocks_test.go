package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/benoitkugler/webstyle/css/declaration"
	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/benoitkugler/webstyle/html/tree"
	"github.com/benoitkugler/webstyle/utils"
	tu "github.com/benoitkugler/webstyle/utils/testutils"
	"golang.org/x/net/html"
)

// Tests for the width of block-level boxes.

func boxValues(t *testing.T, css string, cbWidth Fl) BoxValues {
	t.Helper()
	decl, err := declaration.New(css)
	if err != nil {
		t.Fatal(err)
	}
	style := tree.NewComputedStyle(decl, nil, nil, "", nil)
	bv, err := GetBoxValues(style, cbWidth, pr.Pt)
	if err != nil {
		t.Fatal(err)
	}
	return bv
}

func TestBlockWidth(t *testing.T) {
	for _, test := range []struct {
		css                     string
		width, marginL, marginR Fl
	}{
		{"", 200, 0, 0},
		{"margin: 10pt; padding: 5pt; border: 2pt solid", 166, 10, 10},
		{"margin: 10pt; border: 2pt none", 180, 10, 10},
		{"margin: auto", 200, 0, 0},
		{"width: 100pt; margin: 0 auto", 100, 50, 50},
		{"width: 100pt; margin-left: auto; margin-right: 20pt", 100, 80, 20},
		{"width: 100pt; margin-left: 20pt; margin-right: auto", 100, 20, 80},
		{"width: 100pt; margin: 0 10pt", 100, 10, 90},
		{"width: 100pt; margin: 0 10pt; direction: rtl", 100, 90, 10},
		{"width: 250pt; margin-left: auto", 250, 0, -50},
		{"width: 50%; margin-left: 10%", 100, 20, 80},
		{"width: calc(50% + 10pt); margin: 0 auto", 110, 45, 45},
		{"width: 100pt; padding: 10pt; box-sizing: border-box", 80, 0, 100},
		{"width: 100pt; padding: 10pt; box-sizing: padding-box", 80, 0, 100},
	} {
		bv := boxValues(t, test.css, 200)
		tu.AssertEqual(t, bv.Width, test.width)
		tu.AssertEqual(t, bv.Margin[Left], test.marginL)
		tu.AssertEqual(t, bv.Margin[Right], test.marginR)
		// the margin box always fills the containing block
		tu.AssertEqual(t, bv.MarginBoxWidth(), Fl(200))
	}
}

func TestBoxModelConservation(t *testing.T) {
	for _, css := range []string{
		"width: 120pt; margin: 5pt 7pt; padding: 3pt 4pt; border: 1pt solid",
		"width: 60%; margin-left: 10%; margin-right: 30%; padding: 0 5pt",
		"width: 100pt; margin: 0 auto; border-left: 10pt solid",
	} {
		bv := boxValues(t, css, 400)
		total := bv.Width + bv.Border[Left] + bv.Border[Right] +
			bv.Padding[Left] + bv.Padding[Right] + bv.Margin[Left] + bv.Margin[Right]
		tu.AssertEqual(t, total, Fl(400))
	}
}

func TestMinMaxWidth(t *testing.T) {
	bv := boxValues(t, "max-width: 50pt; margin: 0 auto", 200)
	tu.AssertEqual(t, bv.Width, Fl(50))
	tu.AssertEqual(t, bv.Margin[Left], Fl(75))
	tu.AssertEqual(t, bv.Margin[Right], Fl(75))

	bv = boxValues(t, "min-width: 300pt", 200)
	tu.AssertEqual(t, bv.Width, Fl(300))
	tu.AssertEqual(t, bv.Margin[Left], Fl(0))
	tu.AssertEqual(t, bv.Margin[Right], Fl(-100))

	// min-width wins over max-width
	bv = boxValues(t, "width: 100pt; max-width: 20pt; min-width: 40pt", 200)
	tu.AssertEqual(t, bv.Width, Fl(40))

	bv = boxValues(t, "max-width: 50%; padding: 10pt; box-sizing: border-box", 200)
	tu.AssertEqual(t, bv.Width, Fl(80))
}

func TestBoxHeight(t *testing.T) {
	bv := boxValues(t, "height: 10pt; margin: auto 0 5pt", 200)
	tu.AssertEqual(t, bv.Height, Fl(10))
	tu.AssertEqual(t, bv.HeightAuto, false)
	tu.AssertEqual(t, bv.Margin[Top], Fl(0))
	tu.AssertEqual(t, bv.Margin[Bottom], Fl(5))

	bv = boxValues(t, "height: 50%; padding-top: 10%", 200)
	tu.AssertEqual(t, bv.HeightAuto, true)
	tu.AssertEqual(t, bv.Height, Fl(0))
	tu.AssertEqual(t, bv.Padding[Top], Fl(20)) // refers to the width
}

func TestConvertUnit(t *testing.T) {
	bv := boxValues(t, "width: 75pt; margin: 0 auto; height: 3pt", 150)
	px, err := bv.ConvertTo(pr.Px)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, px.Unit, pr.Px)
	tu.AssertEqual(t, px.Width, Fl(100))
	tu.AssertEqual(t, px.Height, Fl(4))
	tu.AssertEqual(t, px.Margin[Left], Fl(50))
	tu.AssertEqual(t, px.MarginBoxWidth(), Fl(200))

	inches, err := bv.ConvertTo(pr.In)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, inches.Width, Fl(75)/72)

	if _, err = bv.ConvertTo(pr.Em); err == nil {
		t.Fatal("expected error for relative unit")
	}
}

func TestNoBox(t *testing.T) {
	decl, _ := declaration.New("display: none")
	style := tree.NewComputedStyle(decl, nil, nil, "", nil)
	_, err := GetBoxValues(style, 100, pr.Pt)
	tu.AssertEqual(t, errors.Is(err, ErrNoBox), true)
}

func parseDocument(t *testing.T, source string) *tree.Document {
	t.Helper()
	doc, err := tree.ParseHTML(strings.NewReader(source), nil)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func find(t *testing.T, doc *tree.Document, sel string) selector.Element {
	t.Helper()
	node := selector.MatchFirst((*html.Node)(doc.Root), selector.MustCompile(sel)[0])
	if node == nil {
		t.Fatalf("no element for %s", sel)
	}
	return doc.Element(node)
}

func TestElementBoxValues(t *testing.T) {
	doc := parseDocument(t, `<!DOCTYPE html>
	<style>
		section { padding: 0 10% }
	</style>
	<body>
		<div id="a" style="width: 300pt; margin: auto"></div>
		<section><p id="b" style="width: 50%; margin-left: 1in; border-left: 3pt solid">text</p></section>
		<div style="display: none"><p id="c"></p></div>
	</body>`)
	cascade := doc.Cascade("screen")
	ctx := &tree.Context{ViewportWidth: 600, ViewportHeight: 400}

	bv, err := ElementBoxValues(cascade, find(t, doc, "body"), ctx, pr.Pt)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, bv.Margin, [4]Fl{6, 6, 6, 6})
	tu.AssertEqual(t, bv.Width, Fl(588))

	bv, err = ElementBoxValues(cascade, find(t, doc, "#a"), ctx, pr.Pt)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, bv.Width, Fl(300))
	tu.AssertEqual(t, bv.Margin[Left], Fl(144))
	tu.AssertEqual(t, bv.Margin[Right], Fl(144))

	// body: 588, section paddings: 58.8 each side
	bv, err = ElementBoxValues(cascade, find(t, doc, "#b"), ctx, pr.Pt)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, utils.Round(bv.Width), Fl(235.2))
	tu.AssertEqual(t, bv.Margin[Left], Fl(72))
	tu.AssertEqual(t, bv.Border[Left], Fl(3))
	tu.AssertEqual(t, utils.Round(bv.MarginBoxWidth()), Fl(470.4))

	_, err = ElementBoxValues(cascade, find(t, doc, "#c"), ctx, pr.Pt)
	tu.AssertEqual(t, errors.Is(err, ErrNoBox), true)

	// the viewport is required
	_, err = ElementBoxValues(cascade, find(t, doc, "#a"), nil, pr.Pt)
	tu.AssertEqual(t, errors.Is(err, tree.ErrStyleDatabaseRequired), true)

	// or a database
	bv, err = ElementBoxValues(cascade, find(t, doc, "body"), &tree.Context{Medium: "screen"}, pr.Px)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, utils.Round(bv.Width), Fl(1264))
}

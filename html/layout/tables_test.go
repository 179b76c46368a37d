package layout

import (
	"errors"
	"testing"
	"unicode/utf8"

	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/benoitkugler/webstyle/html/tree"
	tu "github.com/benoitkugler/webstyle/utils/testutils"
)

// Tests for layout of tables.

// monoMeasurer gives 10pt to every character, whatever the font
type monoMeasurer struct{}

func (monoMeasurer) Metrics(tree.Font) tree.FontRatios {
	return tree.FontRatios{XHeight: 0.5, CapHeight: 0.7, ChWidth: 0.5, IcWidth: 1}
}

func (monoMeasurer) TextWidth(text string, _ tree.Font) Fl {
	return 10 * Fl(utf8.RuneCountInString(text))
}

var tableContext = &tree.Context{ViewportWidth: 600, ViewportHeight: 400, Measurer: monoMeasurer{}}

func layoutTable(t *testing.T, source string) TableLayout {
	t.Helper()
	doc := parseDocument(t, "<!DOCTYPE html><style>td { padding: 0 }</style>"+source)
	logs := tu.CaptureLogs()
	table := find(t, doc, "table")
	bv, err := ElementBoxValues(doc.Cascade("screen"), table.Parent(), tableContext, pr.Pt)
	if err != nil {
		t.Fatal(err)
	}
	out, err := AutoTableLayout(doc.Cascade("screen"), table.(selector.HTMLElement).Node(), bv.Width, tableContext)
	if err != nil {
		t.Fatal(err)
	}
	logs.CheckLogs(t, "Table layout")
	return out
}

func TestTableMaxContent(t *testing.T) {
	table := layoutTable(t, `<table style="border-spacing: 2pt"><tr><td>aa bbbb</td><td>c</td></tr></table>`)
	tu.AssertEqual(t, table.Spacing, Fl(2))
	tu.AssertEqual(t, table.ColumnMin, []Fl{40, 10})
	tu.AssertEqual(t, table.ColumnMax, []Fl{70, 10})
	tu.AssertEqual(t, table.Box.Width, Fl(86)) // 70 + 10 + 3 * border-spacing
	tu.AssertEqual(t, table.Box.ColumnWidths, []Fl{70, 10})
	// the table is over-constrained in the body
	tu.AssertEqual(t, table.Box.Margin[Left], Fl(0))
	tu.AssertEqual(t, table.Box.Margin[Right], Fl(588-86))
}

func TestTableInterpolation(t *testing.T) {
	table := layoutTable(t, `<div style="width: 66pt">
		<table style="border-spacing: 2pt"><tr><td>aa bbbb</td><td>c</td></tr></table>
	</div>`)
	tu.AssertEqual(t, table.Box.Width, Fl(66))
	// (60 - 50) / (80 - 50) of the (max - min) range
	tu.AssertEqual(t, table.Box.ColumnWidths, []Fl{50, 10})
}

func TestTableMinContent(t *testing.T) {
	table := layoutTable(t, `<div style="width: 10pt">
		<table style="border-spacing: 2pt"><tr><td>aa bbbb</td><td>c</td></tr></table>
	</div>`)
	tu.AssertEqual(t, table.Box.Width, Fl(56))
	tu.AssertEqual(t, table.Box.ColumnWidths, []Fl{40, 10})
	tu.AssertEqual(t, table.Box.MarginBoxWidth(), Fl(10))
}

func TestTableSpecifiedWidth(t *testing.T) {
	table := layoutTable(t, `<table style="border-spacing: 2pt; width: 206pt; margin: 0 auto">
		<tr><td>aa bbbb</td><td>c</td></tr>
	</table>`)
	tu.AssertEqual(t, table.Box.Width, Fl(206))
	// surplus shared according to the max widths
	tu.AssertEqual(t, table.Box.ColumnWidths, []Fl{175, 25})
	tu.AssertEqual(t, table.Box.Margin[Left], Fl(191))
}

func TestTableCellWidth(t *testing.T) {
	table := layoutTable(t, `<table style="border-collapse: collapse">
		<tr><td style="width: 100pt; padding: 0 5pt">a</td><td>bb</td></tr>
		<tr><td>ccc</td><td style="border-left: 4pt solid">dd dd</td></tr>
	</table>`)
	tu.AssertEqual(t, table.Spacing, Fl(0))
	tu.AssertEqual(t, table.ColumnMin, []Fl{110, 24})
	tu.AssertEqual(t, table.ColumnMax, []Fl{110, 54})
	tu.AssertEqual(t, table.Box.ColumnWidths, []Fl{110, 54})
}

func TestTableColspan(t *testing.T) {
	table := layoutTable(t, `<table style="border-spacing: 2pt">
		<tr><td colspan=2>xxxxxxxxxx</td></tr>
		<tr><td>a</td><td>b</td></tr>
	</table>`)
	tu.AssertEqual(t, table.ColumnMin, []Fl{49, 49})
	tu.AssertEqual(t, table.ColumnMax, []Fl{49, 49})
	tu.AssertEqual(t, table.Box.Width, Fl(104))
}

func TestTableBoxValues(t *testing.T) {
	doc := parseDocument(t, `<!DOCTYPE html><style>td { padding: 0 }</style>
		<table style="border-spacing: 0"><tr><td>abc</td><td>de</td></tr></table>`)
	bv, err := ElementBoxValues(doc.Cascade("screen"), find(t, doc, "table"), tableContext, pr.Px)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, bv.Unit, pr.Px)
	tu.AssertEqual(t, bv.Width, Fl(50)/0.75)
	tu.AssertEqual(t, bv.ColumnWidths, []Fl{30 / 0.75, 20 / 0.75})
}

func TestTableNoMeasurer(t *testing.T) {
	doc := parseDocument(t, `<table><tr><td>a</td></tr></table>`)
	table := find(t, doc, "table").(selector.HTMLElement).Node()
	_, err := AutoTableLayout(doc.Cascade("screen"), table, 100, &tree.Context{ViewportWidth: 100, ViewportHeight: 100})
	tu.AssertEqual(t, errors.Is(err, tree.ErrStyleDatabaseRequired), true)
}

func TestDistributeColumns(t *testing.T) {
	tu.AssertEqual(t, distributeColumns(nil, nil, 10), []Fl{})
	tu.AssertEqual(t, distributeColumns([]Fl{0, 0}, []Fl{0, 0}, 10), []Fl{5, 5})
	tu.AssertEqual(t, distributeColumns([]Fl{10, 20}, []Fl{30, 20}, 20), []Fl{10, 20})
	tu.AssertEqual(t, distributeColumns([]Fl{10, 20}, []Fl{30, 20}, 40), []Fl{20, 20})
	tu.AssertEqual(t, distributeColumns([]Fl{10, 20}, []Fl{30, 20}, 100), []Fl{60, 40})
}

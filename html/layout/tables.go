package layout

import (
	"fmt"
	"strconv"
	"strings"

	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/benoitkugler/webstyle/html/tree"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/benoitkugler/webstyle/utils"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TableLayout is the result of the automatic table layout.
// Lengths are in points.
type TableLayout struct {
	// Box are the used values of the table box: Box.Width
	// includes the horizontal border spacings, and
	// Box.ColumnWidths are the widths of the cell border boxes.
	Box BoxValues

	// ColumnMin and ColumnMax are the minimum and maximum
	// content widths of the columns.
	ColumnMin, ColumnMax []Fl
	// Spacing is the used horizontal border spacing.
	Spacing Fl
}

// tableCell is a cell of the grid, with its border box content widths.
type tableCell struct {
	column, span int
	min, max     Fl
}

// tableRows returns the rows of `table`, which are
// either its children or the children of its row groups.
func tableRows(table *html.Node) [][]*html.Node {
	var rows [][]*html.Node
	addRow := func(tr *html.Node) {
		var cells []*html.Node
		for _, c := range (*utils.HTMLNode)(tr).ElementChildren() {
			if c.DataAtom == atom.Td || c.DataAtom == atom.Th {
				cells = append(cells, (*html.Node)(c))
			}
		}
		rows = append(rows, cells)
	}
	for _, child := range (*utils.HTMLNode)(table).ElementChildren() {
		switch child.DataAtom {
		case atom.Tr:
			addRow((*html.Node)(child))
		case atom.Thead, atom.Tbody, atom.Tfoot:
			for _, tr := range child.ElementChildren() {
				if tr.DataAtom == atom.Tr {
					addRow((*html.Node)(tr))
				}
			}
		}
	}
	return rows
}

func colspan(cell *html.Node) int {
	span, err := strconv.Atoi(strings.TrimSpace((*utils.HTMLNode)(cell).Get("colspan")))
	if err != nil || span < 1 {
		return 1
	}
	return min(span, 1000)
}

// cellContentWidths returns the minimum (widest word) and
// maximum (whole text on one line) widths of the content of `cell`.
func cellContentWidths(cell *html.Node, style *tree.ComputedStyle, measurer tree.TextMeasurer) (minW, maxW Fl, err error) {
	font, err := style.Font()
	if err != nil {
		return 0, 0, err
	}
	words := strings.Fields((*utils.HTMLNode)(cell).Text())
	for _, word := range words {
		minW = utils.MaxF(minW, measurer.TextWidth(word, font))
	}
	if len(words) != 0 {
		maxW = measurer.TextWidth(strings.Join(words, " "), font)
	}
	return minW, utils.MaxF(minW, maxW), nil
}

// cellWidths returns the border box min and max widths of `cell`.
func cellWidths(cell *html.Node, style *tree.ComputedStyle, measurer tree.TextMeasurer) (minW, maxW Fl, err error) {
	minW, maxW, err = cellContentWidths(cell, style, measurer)
	if err != nil {
		return 0, 0, err
	}
	// percentages are not supported in cells
	b, err := newBox(style, 0)
	if err != nil {
		return 0, 0, err
	}
	if b.width != auto {
		minW = utils.MaxF(minW, b.width)
		maxW = minW
	}
	if b.maxWidth != auto {
		maxW = utils.MinF(maxW, utils.MaxF(minW, b.maxWidth))
	}
	minW = utils.MaxF(minW, b.minWidth)
	maxW = utils.MaxF(maxW, minW)
	delta := b.paddingLeft + b.paddingRight + b.borderLeftWidth + b.borderRightWidth
	return minW + delta, maxW + delta, nil
}

// horizontalSpacing returns the used horizontal border spacing of a table.
func horizontalSpacing(style *tree.ComputedStyle) (Fl, error) {
	collapse, err := style.Keyword("border-collapse")
	if err != nil {
		return 0, err
	}
	if collapse == "collapse" {
		return 0, nil
	}
	spacing, err := style.GetComputedValue("border-spacing")
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(spacing)
	if len(fields) == 0 {
		return 0, nil
	}
	s, ok := tree.ResolveLength(tree.ParseLength(fields[0]), 0)
	if !ok {
		return 0, fmt.Errorf("invalid border-spacing: %s", spacing)
	}
	return s, nil
}

// AutoTableLayout computes the column widths of `table`, whose containing block
// is `cbWidth` points wide, following the automatic table layout: columns
// receive at least their minimum width, and share the remaining space
// according to their maximum width.
// The cell content is measured with the text measurer of `ctx`.
func AutoTableLayout(cascade *tree.Cascade, table *html.Node, cbWidth Fl, ctx *tree.Context) (TableLayout, error) {
	measurer := ctx.TextMeasurer()
	if measurer == nil {
		return TableLayout{}, tree.ErrStyleDatabaseRequired
	}
	tableElement := selector.NewHTMLElement(table)
	if tableElement == nil {
		return TableLayout{}, ErrNoBox
	}
	tableStyle := cascade.ComputedStyle(tableElement, "", ctx)
	spacing, err := horizontalSpacing(tableStyle)
	if err != nil {
		return TableLayout{}, err
	}

	// build the grid, ignoring row spans
	var (
		cells   []tableCell
		columns int
	)
	for _, row := range tableRows(table) {
		column := 0
		for _, cell := range row {
			style := cascade.ComputedStyle(selector.NewHTMLElement(cell), "", ctx)
			if display, err := style.Keyword("display"); err != nil {
				return TableLayout{}, err
			} else if display == "none" {
				continue
			}
			minW, maxW, err := cellWidths(cell, style, measurer)
			if err != nil {
				return TableLayout{}, err
			}
			span := colspan(cell)
			cells = append(cells, tableCell{column: column, span: span, min: minW, max: maxW})
			column += span
		}
		columns = max(columns, column)
	}

	out := TableLayout{
		ColumnMin: make([]Fl, columns),
		ColumnMax: make([]Fl, columns),
		Spacing:   spacing,
	}
	// single column cells first, then spanning cells share their
	// widths evenly between the columns they span
	for _, cell := range cells {
		if cell.span == 1 {
			out.ColumnMin[cell.column] = utils.MaxF(out.ColumnMin[cell.column], cell.min)
			out.ColumnMax[cell.column] = utils.MaxF(out.ColumnMax[cell.column], cell.max)
		}
	}
	for _, cell := range cells {
		if cell.span == 1 {
			continue
		}
		spanned := Fl(cell.span-1) * spacing
		share := Fl(cell.span)
		for i := cell.column; i < cell.column+cell.span; i++ {
			out.ColumnMin[i] = utils.MaxF(out.ColumnMin[i], (cell.min-spanned)/share)
			out.ColumnMax[i] = utils.MaxF(out.ColumnMax[i], (cell.max-spanned)/share)
		}
	}

	totalSpacing := Fl(columns+1) * spacing
	if columns == 0 {
		totalSpacing = 0
	}
	var sumMin, sumMax Fl
	for i := range out.ColumnMin {
		sumMin += out.ColumnMin[i]
		sumMax += out.ColumnMax[i]
	}
	tableMin, tableMax := sumMin+totalSpacing, sumMax+totalSpacing

	b, err := newBox(tableStyle, cbWidth)
	if err != nil {
		return TableLayout{}, err
	}
	if b.width == auto {
		available := cbWidth - b.paddingLeft - b.paddingRight - b.borderLeftWidth - b.borderRightWidth
		if b.marginLeft != auto {
			available -= b.marginLeft
		}
		if b.marginRight != auto {
			available -= b.marginRight
		}
		b.width = utils.MaxF(tableMin, utils.MinF(available, tableMax))
	} else {
		b.width = utils.MaxF(tableMin, b.width)
	}
	// the table is never narrower than its columns
	b.minWidth = utils.MaxF(b.minWidth, tableMin)
	blockLevelWidth(b, cbWidth)

	out.Box = b.values()
	out.Box.ColumnWidths = distributeColumns(out.ColumnMin, out.ColumnMax, b.width-totalSpacing)

	logger.ProgressLogger.Debugf("Table layout: %d columns, width %s", columns, utils.FormatFloat(b.width))

	return out, nil
}

// distributeColumns shares `content` between columns:
// below the sum of the maximum widths, the widths are interpolated
// between the minimum and maximum widths; above, the surplus is
// distributed in proportion to the maximum widths.
func distributeColumns(colMin, colMax []Fl, content Fl) []Fl {
	out := make([]Fl, len(colMin))
	if len(out) == 0 {
		return out
	}
	var sumMin, sumMax Fl
	for i := range colMin {
		sumMin += colMin[i]
		sumMax += colMax[i]
	}
	switch {
	case content <= sumMin:
		copy(out, colMin)
	case content < sumMax:
		ratio := (content - sumMin) / (sumMax - sumMin)
		for i := range out {
			out[i] = colMin[i] + (colMax[i]-colMin[i])*ratio
		}
	case sumMax == 0:
		for i := range out {
			out[i] = content / Fl(len(out))
		}
	default:
		surplus := content - sumMax
		for i := range out {
			out[i] = colMax[i] + surplus*colMax[i]/sumMax
		}
	}
	return out
}

// TableColumnWidths is a convenience wrapper returning the column
// widths of `table`, in `unit`.
func TableColumnWidths(cascade *tree.Cascade, table *html.Node, cbWidth Fl, ctx *tree.Context, unit pr.Unit) ([]Fl, error) {
	layout, err := AutoTableLayout(cascade, table, cbWidth, ctx)
	if err != nil {
		return nil, err
	}
	bv, err := layout.Box.ConvertTo(unit)
	if err != nil {
		return nil, err
	}
	return bv.ColumnWidths, nil
}

package layout

import (
	"fmt"

	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/benoitkugler/webstyle/html/tree"
	"github.com/benoitkugler/webstyle/utils/testutils/tracer"
)

// Set the box width, then re-run the resolution with
// the width clamped by max-width and min-width.
// See https://www.w3.org/TR/CSS21/visudet.html#min-max-widths
func handleMinMaxWidth(function func(*box, Fl)) func(*box, Fl) {
	return func(b *box, cbWidth Fl) {
		computedWidth := b.width
		computedMarginL, computedMarginR := b.marginLeft, b.marginRight
		function(b, cbWidth)
		if b.width > b.maxWidth {
			b.width = b.maxWidth
			b.marginLeft, b.marginRight = computedMarginL, computedMarginR
			function(b, cbWidth)
		}
		if b.width < b.minWidth {
			b.width = b.minWidth
			b.marginLeft, b.marginRight = computedMarginL, computedMarginR
			function(b, cbWidth)
		}
		if traceMode {
			traceLogger.Dump(fmt.Sprintf("handleMinMaxWidth: %s -> %s", tracer.FormatFloat(computedWidth), tracer.FormatFloat(b.width)))
		}
	}
}

var blockLevelWidth = handleMinMaxWidth(blockLevelWidth_)

// @handleMinMaxWidth
// Set the box width and horizontal margins.
func blockLevelWidth_(b *box, cbWidth Fl) {
	// https://www.w3.org/TR/CSS21/visudet.html#blockwidth

	marginL, marginR, width := b.marginLeft, b.marginRight, b.width
	paddingsPlusBorders := b.paddingLeft + b.paddingRight + b.borderLeftWidth + b.borderRightWidth

	// Only margin-left, margin-right and width can be "auto".
	// We want:  width of containing block ==
	//               margin-left + border-left-width + padding-left + width
	//               + padding-right + border-right-width + margin-right
	if width != auto {
		total := paddingsPlusBorders + width
		if marginL != auto {
			total += marginL
		}
		if marginR != auto {
			total += marginR
		}
		if total > cbWidth {
			if marginL == auto {
				marginL = 0
				b.marginLeft = 0
			}
			if marginR == auto {
				marginR = 0
				b.marginRight = 0
			}
		}
	}
	if width != auto && marginL != auto && marginR != auto {
		// The equation is over-constrained: the end margin is ignored.
		if b.direction == "rtl" {
			b.marginLeft = cbWidth - paddingsPlusBorders - width - marginR
		} else {
			b.marginRight = cbWidth - paddingsPlusBorders - width - marginL
		}
		return
	}
	if width == auto {
		if marginL == auto {
			marginL = 0
			b.marginLeft = 0
		}
		if marginR == auto {
			marginR = 0
			b.marginRight = 0
		}
		width = cbWidth - (paddingsPlusBorders + marginL + marginR)
		b.width = width
	}
	marginSum := cbWidth - paddingsPlusBorders - width
	if marginL == auto && marginR == auto {
		b.marginLeft = marginSum / 2
		b.marginRight = marginSum / 2
	} else if marginL == auto && marginR != auto {
		b.marginLeft = marginSum - marginR
	} else if marginL != auto && marginR == auto {
		b.marginRight = marginSum - marginL
	}
}

// GetBoxValues resolves the used values of a block-level box with
// the given style, whose containing block is `cbWidth` points wide.
// The values are returned in `unit`, which must be an absolute length unit.
func GetBoxValues(style *tree.ComputedStyle, cbWidth Fl, unit pr.Unit) (BoxValues, error) {
	display, err := style.Keyword("display")
	if err != nil {
		return BoxValues{}, err
	}
	if display == "none" {
		return BoxValues{}, ErrNoBox
	}
	b, err := newBox(style, cbWidth)
	if err != nil {
		return BoxValues{}, err
	}
	blockLevelWidth(b, cbWidth)
	return b.values().ConvertTo(unit)
}

// ElementBoxValues resolves the used values of the box generated by `element`.
// The containing blocks are the content boxes of its ancestors, the root one
// being the viewport of `ctx`.
// Table elements are laid out with [AutoTableLayout], other elements are treated
// as block-level boxes.
func ElementBoxValues(cascade *tree.Cascade, element selector.Element, ctx *tree.Context, unit pr.Unit) (BoxValues, error) {
	bv, err := elementBoxValues(cascade, element, ctx)
	if err != nil {
		return BoxValues{}, err
	}
	return bv.ConvertTo(unit)
}

func elementBoxValues(cascade *tree.Cascade, element selector.Element, ctx *tree.Context) (BoxValues, error) {
	var cbWidth Fl
	if parent := element.Parent(); parent != nil {
		cb, err := elementBoxValues(cascade, parent, ctx)
		if err != nil {
			return BoxValues{}, err
		}
		cbWidth = cb.Width
	} else {
		var err error
		cbWidth, _, err = ctx.Viewport()
		if err != nil {
			return BoxValues{}, err
		}
	}

	style := cascade.ComputedStyle(element, "", ctx)
	display, err := style.Keyword("display")
	if err != nil {
		return BoxValues{}, err
	}
	if node, ok := element.(selector.HTMLElement); ok && (display == "table" || display == "inline-table") {
		table, err := AutoTableLayout(cascade, node.Node(), cbWidth, ctx)
		if err != nil {
			return BoxValues{}, err
		}
		return table.Box, nil
	}
	return GetBoxValues(style, cbWidth, pr.Pt)
}

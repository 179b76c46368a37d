package layout

import (
	"fmt"
	"strings"

	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/html/tree"
	"github.com/benoitkugler/webstyle/utils"
	"github.com/benoitkugler/webstyle/utils/testutils/tracer"
)

// box stores the used values of a block-level box, in points.
// Lengths may be `auto` before the width resolution.
type box struct {
	style     *tree.ComputedStyle
	direction string

	marginTop, marginRight, marginBottom, marginLeft                     Fl
	paddingTop, paddingRight, paddingBottom, paddingLeft                 Fl
	borderTopWidth, borderRightWidth, borderBottomWidth, borderLeftWidth Fl

	width, height                            Fl
	minWidth, maxWidth, minHeight, maxHeight Fl
}

func (b *box) values() BoxValues {
	out := BoxValues{
		Unit:    pr.Pt,
		Width:   b.width,
		Height:  b.height,
		Margin:  [4]Fl{b.marginTop, b.marginRight, b.marginBottom, b.marginLeft},
		Border:  [4]Fl{b.borderTopWidth, b.borderRightWidth, b.borderBottomWidth, b.borderLeftWidth},
		Padding: [4]Fl{b.paddingTop, b.paddingRight, b.paddingBottom, b.paddingLeft},
	}
	if b.height == auto {
		out.Height, out.HeightAuto = 0, true
	}
	for i, m := range out.Margin {
		if m == auto { // vertical margins
			out.Margin[i] = 0
		}
	}
	return out
}

// Compute a used length value from a computed length value.
// `auto` and `none` are mapped to auto, other keywords are errors.
func resolveOnePercentage(style *tree.ComputedStyle, name string, referTo Fl) (Fl, error) {
	value, err := style.Length(name)
	if err != nil {
		return 0, err
	}
	switch value.Keyword() {
	case "auto", "none":
		return auto, nil
	case "":
		if value.IsNone() {
			// unset
			return 0, nil
		}
	}
	out, ok := tree.ResolveLength(value, referTo)
	if !ok {
		if value.S != "" && !strings.Contains(value.S, "(") {
			// min-content, fit-content, ...
			return auto, nil
		}
		return 0, fmt.Errorf("invalid length for %s: %s", name, value)
	}

	if traceMode {
		traceLogger.Dump(fmt.Sprintf("resolveOnePercentage %s: %s %s -> %s", name, value,
			tracer.FormatFloat(referTo), tracer.FormatFloat(out)))
	}

	return out, nil
}

// newBox resolves the percentages of `style`, for a containing
// block of width `cbWidth` (in points) and unknown height.
func newBox(style *tree.ComputedStyle, cbWidth Fl) (*box, error) {
	b := &box{style: style}
	var err error
	resolve := func(name string, referTo Fl) Fl {
		if err != nil {
			return 0
		}
		var v Fl
		v, err = resolveOnePercentage(style, name, referTo)
		return v
	}

	// vertical margins and paddings also refer to the width
	b.marginTop = resolve("margin-top", cbWidth)
	b.marginRight = resolve("margin-right", cbWidth)
	b.marginBottom = resolve("margin-bottom", cbWidth)
	b.marginLeft = resolve("margin-left", cbWidth)
	b.paddingTop = resolve("padding-top", cbWidth)
	b.paddingRight = resolve("padding-right", cbWidth)
	b.paddingBottom = resolve("padding-bottom", cbWidth)
	b.paddingLeft = resolve("padding-left", cbWidth)
	b.width = resolve("width", cbWidth)
	b.minWidth = resolve("min-width", cbWidth)
	b.maxWidth = resolve("max-width", cbWidth)

	// Special handling when the height of the containing block
	// depends on its content: percentages behave as auto.
	height, errH := style.Length("height")
	if err == nil && errH != nil {
		err = errH
	}
	if height.Keyword() == "auto" || height.Unit == pr.Perc || height.S != "" {
		b.height = auto
	} else {
		b.height = resolve("height", 0)
	}
	b.minHeight = resolve("min-height", 0)
	b.maxHeight = resolve("max-height", auto)

	// Used value == computed value
	b.borderTopWidth = resolve("border-top-width", 0)
	b.borderRightWidth = resolve("border-right-width", 0)
	b.borderBottomWidth = resolve("border-bottom-width", 0)
	b.borderLeftWidth = resolve("border-left-width", 0)
	if err != nil {
		return nil, err
	}

	if b.minWidth == auto {
		b.minWidth = 0
	}
	if b.minHeight == auto {
		b.minHeight = 0
	}

	b.direction, err = style.Keyword("direction")
	if err != nil {
		return nil, err
	}
	boxSizing, err := style.Keyword("box-sizing")
	if err != nil {
		return nil, err
	}

	// Shrink *content* widths and heights according to box-sizing
	var horizontalDelta, verticalDelta Fl
	switch boxSizing {
	case "border-box":
		horizontalDelta = b.paddingLeft + b.paddingRight + b.borderLeftWidth + b.borderRightWidth
		verticalDelta = b.paddingTop + b.paddingBottom + b.borderTopWidth + b.borderBottomWidth
	case "padding-box":
		horizontalDelta = b.paddingLeft + b.paddingRight
		verticalDelta = b.paddingTop + b.paddingBottom
	}

	// Keep at least min* >= 0 to prevent funny output in case box.Width or
	// box.Height become negative.
	if horizontalDelta > 0 {
		if b.width != auto {
			b.width = utils.MaxF(0, b.width-horizontalDelta)
		}
		if b.maxWidth != auto {
			b.maxWidth = utils.MaxF(0, b.maxWidth-horizontalDelta)
		}
		b.minWidth = utils.MaxF(0, b.minWidth-horizontalDelta)
	}
	if verticalDelta > 0 {
		if b.height != auto {
			b.height = utils.MaxF(0, b.height-verticalDelta)
		}
		if b.maxHeight != auto {
			b.maxHeight = utils.MaxF(0, b.maxHeight-verticalDelta)
		}
		b.minHeight = utils.MaxF(0, b.minHeight-verticalDelta)
	}
	return b, nil
}

// Package layout resolves the used values of the box model:
// the CSS2 width and margins of block-level boxes, and the column
// widths of tables, measured with a tree.TextMeasurer.
//
// Full visual layout (line breaking, pagination, floats and positioned
// boxes) is out of scope: heights are only reported when specified.
package layout

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/utils"
	"github.com/benoitkugler/webstyle/utils/testutils/tracer"
)

// if true, print debug information into a temporary file
const traceMode = false

var traceLogger tracer.Tracer // used only when traceMode is true

func init() {
	if traceMode {
		traceLogger = tracer.NewTracer(filepath.Join(os.TempDir(), "trace_layout.txt"))
	}
}

type Fl = utils.Fl

// auto is the used value of "auto" lengths, before resolution.
var auto = math.Inf(1)

// ErrNoBox is returned for elements generating no box (display: none).
var ErrNoBox = errors.New("element generates no box")

// Side indexes the [4]Fl arrays of BoxValues.
type Side uint8

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// BoxValues are the used values of a box, in Unit.
type BoxValues struct {
	Unit pr.Unit
	// Width is the content width.
	Width Fl
	// Height is the content height, only known when specified:
	// HeightAuto is true otherwise.
	Height     Fl
	HeightAuto bool

	Margin, Border, Padding [4]Fl

	// ColumnWidths is only set for tables.
	ColumnWidths []Fl
}

// BorderBoxWidth returns the width of the border box.
func (bv BoxValues) BorderBoxWidth() Fl {
	return bv.Border[Left] + bv.Padding[Left] + bv.Width + bv.Padding[Right] + bv.Border[Right]
}

// MarginBoxWidth returns the width of the margin box, which is the width
// of the containing block for non over-constrained boxes.
func (bv BoxValues) MarginBoxWidth() Fl {
	return bv.Margin[Left] + bv.BorderBoxWidth() + bv.Margin[Right]
}

// ConvertTo returns the values expressed in `unit`, which must be
// an absolute length unit.
func (bv BoxValues) ConvertTo(unit pr.Unit) (BoxValues, error) {
	from, ok1 := pr.LengthsToPoints[bv.Unit]
	to, ok2 := pr.LengthsToPoints[unit]
	if !ok1 || !ok2 {
		return BoxValues{}, fmt.Errorf("invalid unit for box values: %s", unit)
	}
	convert := func(v Fl) Fl { return v * from / to }
	out := bv
	out.Unit = unit
	out.Width = convert(out.Width)
	if !out.HeightAuto {
		out.Height = convert(out.Height)
	}
	if bv.ColumnWidths != nil {
		out.ColumnWidths = make([]Fl, len(bv.ColumnWidths))
		for i, w := range bv.ColumnWidths {
			out.ColumnWidths[i] = convert(w)
		}
	}
	for i := range out.Margin {
		out.Margin[i] = convert(out.Margin[i])
		out.Border[i] = convert(out.Border[i])
		out.Padding[i] = convert(out.Padding[i])
	}
	return out, nil
}

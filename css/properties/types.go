package properties

import (
	"strings"

	"github.com/benoitkugler/webstyle/utils"
)

// Unit is the unit of a Dimension.
type Unit uint8

const ( // zero field corresponds to null content
	Scalar Unit = iota + 1 // means no unit, but a valid value
	Perc                   // percentage (%)

	// font relative
	Em
	Ex
	Cap
	Ch
	Ic
	Rem
	Lh
	Rlh

	// viewport relative
	Vw
	Vh
	Vmin
	Vmax

	// absolute
	Px
	Pt
	Pc
	In
	Cm
	Mm
	Q

	Deg
	Rad
	Grad
	Turn

	S
	Ms
)

var unitNames = [...]string{
	Scalar: "", Perc: "%",
	Em: "em", Ex: "ex", Cap: "cap", Ch: "ch", Ic: "ic", Rem: "rem", Lh: "lh", Rlh: "rlh",
	Vw: "vw", Vh: "vh", Vmin: "vmin", Vmax: "vmax",
	Px: "px", Pt: "pt", Pc: "pc", In: "in", Cm: "cm", Mm: "mm", Q: "q",
	Deg: "deg", Rad: "rad", Grad: "grad", Turn: "turn",
	S: "s", Ms: "ms",
}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return "<invalid unit>"
}

// ParseUnit is case-insensitive. The empty string is not a valid unit.
func ParseUnit(s string) (Unit, bool) {
	s = utils.AsciiLower(s)
	if s == "" {
		return 0, false
	}
	for u, name := range unitNames {
		if u != 0 && u != int(Scalar) && name == s {
			return Unit(u), true
		}
	}
	return 0, false
}

// IsLength returns true for length units (absolute or relative).
func (u Unit) IsLength() bool { return Em <= u && u <= Q }

// IsFontRelative returns true for units depending on the font metrics.
func (u Unit) IsFontRelative() bool { return Em <= u && u <= Rlh }

// IsViewportRelative returns true for units depending on the viewport size.
func (u Unit) IsViewportRelative() bool { return Vw <= u && u <= Vmax }

// IsAbsoluteLength returns true for units with a fixed size in points.
func (u Unit) IsAbsoluteLength() bool { return Px <= u && u <= Q }

// IsAngle returns true for angle units.
func (u Unit) IsAngle() bool { return Deg <= u && u <= Turn }

// IsTime returns true for time units.
func (u Unit) IsTime() bool { return u == S || u == Ms }

// Dimension is a number with a unit.
type Dimension struct {
	Value Fl
	Unit  Unit
}

func NewDim(v Fl, u Unit) Dimension { return Dimension{v, u} }

// String returns the CSS text of the dimension.
func (d Dimension) String() string {
	return utils.FormatFloat(d.Value) + d.Unit.String()
}

// IsNone returns true for the zero value.
func (d Dimension) IsNone() bool { return d.Unit == 0 }

// ToPoints converts an absolute length. It returns false for
// other units.
func (d Dimension) ToPoints() (Fl, bool) {
	f, ok := LengthsToPoints[d.Unit]
	return d.Value * f, ok
}

// ConvertTo converts an absolute length to the given absolute unit.
func (d Dimension) ConvertTo(u Unit) (Dimension, bool) {
	pt, ok := d.ToPoints()
	target, ok2 := LengthsToPoints[u]
	if !ok || !ok2 {
		return Dimension{}, false
	}
	return Dimension{Value: pt / target, Unit: u}, true
}

// ToDegrees converts an angle.
func (d Dimension) ToDegrees() (Fl, bool) {
	switch d.Unit {
	case Deg:
		return d.Value, true
	case Rad:
		return d.Value * 180 / 3.141592653589793, true
	case Grad:
		return d.Value * 0.9, true
	case Turn:
		return d.Value * 360, true
	}
	return 0, false
}

// DimOrS is a computed value: either a keyword or
// textual value (S), or a Dimension. The zero value means
// "no value".
type DimOrS struct {
	S string
	Dimension
}

// SToV returns a keyword value.
func SToV(s string) DimOrS { return DimOrS{S: s} }

// FToPt returns a length in points.
func FToPt(f Fl) DimOrS { return DimOrS{Dimension: Dimension{Value: f, Unit: Pt}} }

func (ds DimOrS) IsNone() bool { return ds.S == "" && ds.Unit == 0 }

// IsDimension returns true if the value is numeric.
func (ds DimOrS) IsDimension() bool { return ds.S == "" && ds.Unit != 0 }

// String returns the CSS text of the value.
func (ds DimOrS) String() string {
	if ds.S != "" {
		return ds.S
	}
	if ds.Unit == 0 {
		return ""
	}
	return ds.Dimension.String()
}

// Keyword returns the lower-cased keyword, or "" for dimensions.
func (ds DimOrS) Keyword() string {
	return strings.ToLower(ds.S)
}

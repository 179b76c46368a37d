package shorthand

import (
	pr "github.com/benoitkugler/webstyle/css/properties"
)

var borderAxes = [3]string{"width", "style", "color"}

// borderValues stores the 12 border longhands, indexed by axis then side,
// which is the order of pr.Longhands("border")
type borderValues [3][4]string

func newBorderValues(values []string) (out borderValues) {
	for axis := range out {
		copy(out[axis][:], values[4*axis:4*axis+4])
	}
	return out
}

func (bv borderValues) flat() []string {
	out := make([]string, 0, 12)
	for _, axis := range bv {
		out = append(out, axis[:]...)
	}
	return out
}

func borderLonghand(side, axis int) string {
	return "border-" + pr.Sides[side] + "-" + borderAxes[axis]
}

// axisScore is the sameness of one axis. Keyword values must be uniform
// to collapse; otherwise the axis is scored on its non keyword values
// only, and can't be represented by a shorthand (score 5).
func axisScore(values [4]string) int {
	switch _, state := keywords(values[:]); state {
	case uniformKeyword:
		return 1
	case mixedKeyword:
		return 5
	}
	return sameness(values)
}

// mostCommon returns the most frequent non keyword value,
// the first one in the side order on ties, or "" if all are keywords.
func mostCommon(values [4]string) string {
	best, bestCount := "", 0
	for _, v := range values {
		if pr.IsCSSWideKeyword(v) {
			continue
		}
		count := 0
		for _, other := range values {
			if other == v {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = v, count
		}
	}
	return best
}

// collapseBorder returns the shortest equivalent of the 12 border longhands
// (with the same priority), among :
//   - the border shorthand alone
//   - the border shorthand, followed by overrides for the sides or the axes which differ
//   - one shorthand per axis (border-width, border-style, border-color)
//   - one shorthand per side (border-top, ...)
//
// When a shorthand can't be used, the longhands are written.
func collapseBorder(values []string, important bool) []Property {
	bv := newBorderValues(values)
	var candidates [][]Property

	if v, ok := Build("border", values); ok {
		candidates = append(candidates, []Property{{Name: "border", Value: v, Important: important}})
	}

	// per-axis candidates are only useful when an axis does collapse
	scores := [3]int{}
	for axis := range bv {
		scores[axis] = axisScore(bv[axis])
	}
	candidates = append(candidates,
		borderOverrides(bv, commonBase(bv), important, true),
		borderOverrides(bv, uniformBase(bv, scores), important, false),
	)
	if scores[0] < 5 || scores[1] < 5 || scores[2] < 5 {
		candidates = append(candidates, borderPerAxis(bv, important))
	}
	candidates = append(candidates, borderPerSide(bv, important))
	return shortest(candidates)
}

// commonBase returns the most common value of each axis.
func commonBase(bv borderValues) (out borderValues) {
	for axis := range bv {
		v := mostCommon(bv[axis])
		if v == "" {
			v, _ = pr.Initial(borderLonghand(0, axis))
		}
		out[axis] = [4]string{v, v, v, v}
	}
	return out
}

// uniformBase keeps the axis with only one value, and
// resets the others to their initial value.
func uniformBase(bv borderValues, scores [3]int) (out borderValues) {
	for axis := range bv {
		v := bv[axis][0]
		if scores[axis] != 1 || pr.IsCSSWideKeyword(v) {
			v, _ = pr.Initial(borderLonghand(0, axis))
		}
		out[axis] = [4]string{v, v, v, v}
	}
	return out
}

func count(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

// borderOverrides writes the border shorthand with the `base` values,
// followed by the longhands whose values differ. These are grouped by side
// shorthands (if `sidesFirst`) or by axis shorthands, which may repeat
// some values of the base.
func borderOverrides(bv, base borderValues, important, sidesFirst bool) []Property {
	value, ok := Build("border", base.flat())
	if !ok {
		return borderPerSide(bv, important)
	}
	out := []Property{{Name: "border", Value: value, Important: important}}

	var unused [3][4]bool
	for axis := range bv {
		for side := range bv[axis] {
			unused[axis][side] = bv[axis][side] != base[axis][side]
		}
	}
	groupSides := func() {
		for side := 0; side < 4; side++ {
			if count(unused[0][side], unused[1][side], unused[2][side]) < 2 {
				continue
			}
			v, ok := Build("border-"+pr.Sides[side], []string{bv[0][side], bv[1][side], bv[2][side]})
			if !ok {
				continue
			}
			out = append(out, Property{Name: "border-" + pr.Sides[side], Value: v, Important: important})
			unused[0][side], unused[1][side], unused[2][side] = false, false, false
		}
	}
	groupAxes := func() {
		for axis := 0; axis < 3; axis++ {
			if count(unused[axis][:]...) < 2 {
				continue
			}
			v, ok := Build("border-"+borderAxes[axis], bv[axis][:])
			if !ok {
				continue
			}
			out = append(out, Property{Name: "border-" + borderAxes[axis], Value: v, Important: important})
			unused[axis] = [4]bool{}
		}
	}
	if sidesFirst {
		groupSides()
		groupAxes()
	} else {
		groupAxes()
		groupSides()
	}
	// remaining longhands, in side order
	for side := 0; side < 4; side++ {
		for axis := 0; axis < 3; axis++ {
			if unused[axis][side] {
				out = append(out, Property{Name: borderLonghand(side, axis), Value: bv[axis][side], Important: important})
			}
		}
	}
	return out
}

func borderPerAxis(bv borderValues, important bool) []Property {
	var out []Property
	for axis := range bv {
		if v, ok := Build("border-"+borderAxes[axis], bv[axis][:]); ok {
			out = append(out, Property{Name: "border-" + borderAxes[axis], Value: v, Important: important})
			continue
		}
		for side, v := range bv[axis] {
			out = append(out, Property{Name: borderLonghand(side, axis), Value: v, Important: important})
		}
	}
	return out
}

func borderPerSide(bv borderValues, important bool) []Property {
	var out []Property
	for side := 0; side < 4; side++ {
		sideValues := []string{bv[0][side], bv[1][side], bv[2][side]}
		if v, ok := Build("border-"+pr.Sides[side], sideValues); ok {
			out = append(out, Property{Name: "border-" + pr.Sides[side], Value: v, Important: important})
			continue
		}
		for axis, v := range sideValues {
			out = append(out, Property{Name: borderLonghand(side, axis), Value: v, Important: important})
		}
	}
	return out
}

package shorthand

import (
	"strings"

	pa "github.com/benoitkugler/webstyle/css/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
)

// collapseSides returns the shortest list of values giving `values`
// in the top, right, bottom, left order.
func collapseSides(values [4]string) []string {
	top, right, bottom, left := values[0], values[1], values[2], values[3]
	switch {
	case right == left && top == bottom && top == right:
		return values[:1]
	case right == left && top == bottom:
		return values[:2]
	case right == left:
		return values[:3]
	default:
		return values[:]
	}
}

// sameness is the number of values needed to represent the four sides,
// from 1 (all equal) to 4 (all distinct).
func sameness(values [4]string) int { return len(collapseSides(values)) }

func fourSides(_ string, values []string) []string {
	return []string{strings.Join(collapseSides([4]string(values)), " ")}
}

func pair(_ string, values []string) []string {
	if values[0] == values[1] {
		return []string{values[0], values[0] + " " + values[1]}
	}
	return []string{values[0] + " " + values[1]}
}

// nonInitial omits the values equal to their initial value,
// keeping at least one.
func nonInitial(name string, values []string) []string {
	longhands := pr.Longhands(name)
	var kept []string
	for i, v := range values {
		if initial, _ := pr.Initial(longhands[i]); v != initial {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		kept = values[:1]
	}
	return []string{strings.Join(kept, " "), strings.Join(values, " ")}
}

// borderSide handles `border-<side>`, `outline` and `column-rule`
func borderSide(name string, values []string) []string {
	candidates := nonInitial(name, values)
	// prefer the style when all values are initial
	longhands := pr.Longhands(name)
	if initial, _ := pr.Initial(longhands[1]); values[1] == initial {
		candidates = append([]string{values[1]}, candidates...)
	}
	return candidates
}

// border requires the four sides to be identical
func border(_ string, values []string) []string {
	var side [3]string
	for axis := 0; axis < 3; axis++ {
		if sameness([4]string(values[4*axis:4*axis+4])) != 1 {
			return nil
		}
		side[axis] = values[4*axis]
	}
	return borderSide("border-top", side[:])
}

// splitRadius returns the horizontal and vertical radii of a corner
func splitRadius(value string) (string, string) {
	tokens := pa.RemoveWhitespace(pa.Tokenize(value))
	if len(tokens) == 2 {
		return tokens[0].String(), tokens[1].String()
	}
	return value, value
}

func borderRadius(_ string, values []string) []string {
	var horizontal, vertical [4]string
	for i, v := range values {
		horizontal[i], vertical[i] = splitRadius(v)
	}
	h := strings.Join(collapseSides(horizontal), " ")
	if horizontal == vertical {
		return []string{h}
	}
	return []string{h + " / " + strings.Join(collapseSides(vertical), " ")}
}

// font: [style || variant || weight || stretch] size [/ line-height] family
func font(_ string, values []string) []string {
	style, variant, weight, stretch, size, lineHeight, family := values[0], values[1], values[2], values[3], values[4], values[5], values[6]
	var parts []string
	for _, v := range [4]string{style, variant, weight, stretch} {
		if v != "normal" {
			parts = append(parts, v)
		}
	}
	if lineHeight != "normal" {
		size += "/" + lineHeight
	}
	parts = append(parts, size, family)
	return []string{strings.Join(parts, " ")}
}

func flex(_ string, values []string) []string {
	grow, shrink, basis := values[0], values[1], values[2]
	switch {
	case grow == "0" && shrink == "0" && basis == "auto":
		return []string{"none"}
	case grow == "1" && shrink == "1" && basis == "auto":
		return []string{"auto"}
	}
	var candidates []string
	if shrink == "1" && basis == "0%" {
		candidates = append(candidates, grow)
	}
	if grow == "1" && shrink == "1" {
		candidates = append(candidates, basis)
	}
	if basis == "0%" {
		candidates = append(candidates, grow+" "+shrink)
	}
	return append(candidates, grow+" "+shrink+" "+basis)
}

func gridLine(_ string, values []string) []string {
	start, end := values[0], values[1]
	return []string{start, start + " / " + end}
}

func gridArea(_ string, values []string) []string {
	candidates := make([]string, 4)
	for i := range candidates {
		candidates[i] = strings.Join(values[:i+1], " / ")
	}
	return candidates
}

func columns(_ string, values []string) []string {
	width, count := values[0], values[1]
	switch {
	case width == "auto" && count == "auto":
		return []string{"auto"}
	case width == "auto":
		return []string{count, "auto " + count}
	case count == "auto":
		return []string{width, width + " auto"}
	}
	return []string{width + " " + count}
}

// splitLayers splits a comma separated list of values
func splitLayers(value string) []string {
	var out []string
	for _, part := range pa.SplitOnComma(pa.Tokenize(value)) {
		out = append(out, pa.SerializeValue(part))
	}
	return out
}

// layers transposes the values of the longhands into
// per-layer values, or returns false if the number of layers differ.
func layers(values []string, skip int) ([][]string, bool) {
	var out [][]string
	for i, v := range values {
		if i == skip {
			continue
		}
		list := splitLayers(v)
		if out == nil {
			out = make([][]string, len(list))
		} else if len(list) != len(out) {
			return nil, false
		}
		for j, layer := range list {
			out[j] = append(out[j], layer)
		}
	}
	return out, true
}

// layered handles `transition` and `animation`: each layer omits
// the initial values, except the duration when a delay is given.
func layered(name string, values []string) []string {
	list, ok := layers(values, -1)
	if !ok {
		return nil
	}
	longhands := pr.Longhands(name)
	var minimal, full []string
	for _, layer := range list {
		var kept []string
		delayed := layer[3] != "0s"
		for i, v := range layer {
			initial, _ := pr.Initial(longhands[i])
			if v != initial || (i == 1 && delayed) {
				kept = append(kept, v)
			}
		}
		if len(kept) == 0 {
			kept = layer[:1]
		}
		minimal = append(minimal, strings.Join(kept, " "))
		full = append(full, strings.Join(layer, " "))
	}
	return []string{strings.Join(minimal, ", "), strings.Join(full, ", ")}
}

// background: the color is only allowed in the last layer
func background(_ string, values []string) []string {
	color := values[0]
	list, ok := layers(values, 0)
	if !ok {
		return nil
	}
	var minimal, full []string
	for i, layer := range list {
		image, repeat, attachment, position, size, origin, clip := layer[0], layer[1], layer[2], layer[3], layer[4], layer[5], layer[6]
		var kept []string
		if i == len(list)-1 && color != "transparent" {
			kept = append(kept, color)
		}
		if image != "none" {
			kept = append(kept, image)
		}
		if repeat != "repeat" {
			kept = append(kept, repeat)
		}
		if attachment != "scroll" {
			kept = append(kept, attachment)
		}
		if size != "auto" {
			kept = append(kept, position+" / "+size)
		} else if position != "0% 0%" {
			kept = append(kept, position)
		}
		switch {
		case origin == clip:
			kept = append(kept, origin)
		case origin != "padding-box" || clip != "border-box":
			kept = append(kept, origin, clip)
		}
		if len(kept) == 0 {
			kept = []string{image}
		}
		minimal = append(minimal, strings.Join(kept, " "))

		fullLayer := []string{image, repeat, attachment, position + " / " + size, origin, clip}
		if i == len(list)-1 {
			fullLayer = append([]string{color}, fullLayer...)
		}
		full = append(full, strings.Join(fullLayer, " "))
	}
	return []string{strings.Join(minimal, ", "), strings.Join(full, ", ")}
}

package properties

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/webstyle/css/parser"
	"github.com/benoitkugler/webstyle/utils"
)

// Color is a sRGB color, or the `currentcolor` keyword.
type Color struct {
	R, G, B uint8
	A       Fl
	// Current is true for `currentcolor`
	Current bool
}

// String returns the normalized form used for computed values.
func (c Color) String() string {
	if c.Current {
		return "currentcolor"
	}
	if c.A >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, utils.FormatFloat(utils.RoundPrec(c.A, 3)))
}

// systemColors are resolved with a fixed light theme
var systemColors = map[string]Color{
	"canvas":         {255, 255, 255, 1, false},
	"canvastext":     {0, 0, 0, 1, false},
	"linktext":       {0, 0, 238, 1, false},
	"visitedtext":    {85, 26, 139, 1, false},
	"activetext":     {255, 0, 0, 1, false},
	"buttonface":     {240, 240, 240, 1, false},
	"buttontext":     {0, 0, 0, 1, false},
	"buttonborder":   {118, 118, 118, 1, false},
	"field":          {255, 255, 255, 1, false},
	"fieldtext":      {0, 0, 0, 1, false},
	"highlight":      {181, 213, 255, 1, false},
	"highlighttext":  {0, 0, 0, 1, false},
	"graytext":       {109, 109, 109, 1, false},
	"mark":           {255, 255, 0, 1, false},
	"marktext":       {0, 0, 0, 1, false},
	"selecteditem":   {0, 120, 215, 1, false},
	"selecteditemtext": {255, 255, 255, 1, false},
}

// ParseColor parses a color value made of one token:
// a keyword, a hash or a color function.
func ParseColor(token parser.Token) (Color, bool) {
	switch token.Kind {
	case parser.Ident:
		name := utils.AsciiLower(token.Value)
		switch name {
		case "currentcolor":
			return Color{Current: true}, true
		case "transparent":
			return Color{}, true
		}
		if rgb, ok := namedColors[name]; ok {
			return Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 1}, true
		}
		c, ok := systemColors[name]
		return c, ok
	case parser.Hash:
		return parseHash(token.Value)
	case parser.Function:
		return parseColorFunction(utils.AsciiLower(token.Value), token.Arguments)
	}
	return Color{}, false
}

// ParseColorString is a convenience wrapper around ParseColor.
func ParseColorString(s string) (Color, bool) {
	tokens := parser.RemoveWhitespace(parser.Tokenize(s))
	if len(tokens) != 1 {
		return Color{}, false
	}
	return ParseColor(tokens[0])
}

func parseHash(value string) (Color, bool) {
	for _, c := range []byte(value) {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return Color{}, false
		}
	}
	hex := func(s string) uint8 {
		v, _ := strconv.ParseUint(s, 16, 8)
		return uint8(v)
	}
	switch len(value) {
	case 3, 4:
		out := Color{R: hex(value[0:1]) * 17, G: hex(value[1:2]) * 17, B: hex(value[2:3]) * 17, A: 1}
		if len(value) == 4 {
			out.A = Fl(hex(value[3:4])*17) / 255
		}
		return out, true
	case 6, 8:
		out := Color{R: hex(value[0:2]), G: hex(value[2:4]), B: hex(value[4:6]), A: 1}
		if len(value) == 8 {
			out.A = Fl(hex(value[6:8])) / 255
		}
		return out, true
	}
	return Color{}, false
}

// colorArgs splits the arguments of a color function, supporting
// both the legacy (comma) and modern (space and slash) syntaxes.
func colorArgs(args []parser.Token) (channels []parser.Token, alpha *parser.Token, ok bool) {
	args = parser.RemoveWhitespace(args)
	var commaSeparated bool
	for _, a := range args {
		if a.Kind == parser.Comma {
			commaSeparated = true
			break
		}
	}
	if commaSeparated {
		for i, a := range args {
			if i%2 == 1 {
				if a.Kind != parser.Comma {
					return nil, nil, false
				}
				continue
			}
			channels = append(channels, a)
		}
		if len(args)%2 == 0 {
			return nil, nil, false
		}
	} else {
		for i, a := range args {
			if a.IsDelim("/") {
				if i != len(args)-2 {
					return nil, nil, false
				}
				last := args[i+1]
				return channels, &last, true
			}
			channels = append(channels, a)
		}
	}
	if len(channels) == 4 {
		last := channels[3]
		return channels[:3], &last, true
	}
	return channels, nil, len(channels) == 3
}

func parseAlpha(t *parser.Token) (Fl, bool) {
	if t == nil {
		return 1, true
	}
	switch t.Kind {
	case parser.Number:
		return math.Min(1, math.Max(0, t.Float())), true
	case parser.Percentage:
		return math.Min(1, math.Max(0, t.Float()/100)), true
	}
	return 0, false
}

func clampByte(f Fl) uint8 {
	return uint8(math.Round(math.Min(255, math.Max(0, f))))
}

func parseColorFunction(name string, args []parser.Token) (Color, bool) {
	channels, alphaToken, ok := colorArgs(args)
	if !ok || len(channels) != 3 {
		return Color{}, false
	}
	alpha, ok := parseAlpha(alphaToken)
	if !ok {
		return Color{}, false
	}
	switch name {
	case "rgb", "rgba":
		var rgb [3]uint8
		for i, c := range channels {
			switch c.Kind {
			case parser.Number:
				rgb[i] = clampByte(c.Float())
			case parser.Percentage:
				rgb[i] = clampByte(c.Float() * 255 / 100)
			default:
				return Color{}, false
			}
		}
		return Color{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, true
	case "hsl", "hsla":
		var hue Fl
		switch h := channels[0]; h.Kind {
		case parser.Number:
			hue = h.Float()
		case parser.Dimension:
			unit, _ := ParseUnit(h.Unit)
			deg, ok := Dimension{Value: h.Float(), Unit: unit}.ToDegrees()
			if !ok {
				return Color{}, false
			}
			hue = deg
		default:
			return Color{}, false
		}
		s, l := channels[1], channels[2]
		if s.Kind != parser.Percentage || l.Kind != parser.Percentage {
			return Color{}, false
		}
		r, g, b := hslToRgb(hue, s.Float()/100, l.Float()/100)
		return Color{R: clampByte(r * 255), G: clampByte(g * 255), B: clampByte(b * 255), A: alpha}, true
	}
	return Color{}, false
}

func hslToRgb(hue, saturation, lightness Fl) (Fl, Fl, Fl) {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	hue /= 360
	saturation = math.Min(1, math.Max(0, saturation))
	lightness = math.Min(1, math.Max(0, lightness))
	var m2 Fl
	if lightness <= 0.5 {
		m2 = lightness * (saturation + 1)
	} else {
		m2 = lightness + saturation - lightness*saturation
	}
	m1 := lightness*2 - m2
	return hueToRgb(m1, m2, hue+1./3), hueToRgb(m1, m2, hue), hueToRgb(m1, m2, hue-1./3)
}

func hueToRgb(m1, m2, h Fl) Fl {
	if h < 0 {
		h++
	}
	if h > 1 {
		h--
	}
	if h*6 < 1 {
		return m1 + (m2-m1)*h*6
	}
	if h*2 < 1 {
		return m2
	}
	if h*3 < 2 {
		return m1 + (m2-m1)*(2./3-h)*6
	}
	return m1
}

// IsColorKeyword returns true for the named colors.
func IsColorKeyword(s string) bool {
	s = strings.ToLower(s)
	_, ok := namedColors[s]
	_, isSystem := systemColors[s]
	return ok || isSystem || s == "transparent" || s == "currentcolor"
}

var namedColors = map[string][3]uint8{
	"aliceblue": {240, 248, 255}, "antiquewhite": {250, 235, 215}, "aqua": {0, 255, 255},
	"aquamarine": {127, 255, 212}, "azure": {240, 255, 255}, "beige": {245, 245, 220},
	"bisque": {255, 228, 196}, "black": {0, 0, 0}, "blanchedalmond": {255, 235, 205},
	"blue": {0, 0, 255}, "blueviolet": {138, 43, 226}, "brown": {165, 42, 42},
	"burlywood": {222, 184, 135}, "cadetblue": {95, 158, 160}, "chartreuse": {127, 255, 0},
	"chocolate": {210, 105, 30}, "coral": {255, 127, 80}, "cornflowerblue": {100, 149, 237},
	"cornsilk": {255, 248, 220}, "crimson": {220, 20, 60}, "cyan": {0, 255, 255},
	"darkblue": {0, 0, 139}, "darkcyan": {0, 139, 139}, "darkgoldenrod": {184, 134, 11},
	"darkgray": {169, 169, 169}, "darkgreen": {0, 100, 0}, "darkgrey": {169, 169, 169},
	"darkkhaki": {189, 183, 107}, "darkmagenta": {139, 0, 139}, "darkolivegreen": {85, 107, 47},
	"darkorange": {255, 140, 0}, "darkorchid": {153, 50, 204}, "darkred": {139, 0, 0},
	"darksalmon": {233, 150, 122}, "darkseagreen": {143, 188, 143}, "darkslateblue": {72, 61, 139},
	"darkslategray": {47, 79, 79}, "darkslategrey": {47, 79, 79}, "darkturquoise": {0, 206, 209},
	"darkviolet": {148, 0, 211}, "deeppink": {255, 20, 147}, "deepskyblue": {0, 191, 255},
	"dimgray": {105, 105, 105}, "dimgrey": {105, 105, 105}, "dodgerblue": {30, 144, 255},
	"firebrick": {178, 34, 34}, "floralwhite": {255, 250, 240}, "forestgreen": {34, 139, 34},
	"fuchsia": {255, 0, 255}, "gainsboro": {220, 220, 220}, "ghostwhite": {248, 248, 255},
	"gold": {255, 215, 0}, "goldenrod": {218, 165, 32}, "gray": {128, 128, 128},
	"grey": {128, 128, 128}, "green": {0, 128, 0}, "greenyellow": {173, 255, 47},
	"honeydew": {240, 255, 240}, "hotpink": {255, 105, 180}, "indianred": {205, 92, 92},
	"indigo": {75, 0, 130}, "ivory": {255, 255, 240}, "khaki": {240, 230, 140},
	"lavender": {230, 230, 250}, "lavenderblush": {255, 240, 245}, "lawngreen": {124, 252, 0},
	"lemonchiffon": {255, 250, 205}, "lightblue": {173, 216, 230}, "lightcoral": {240, 128, 128},
	"lightcyan": {224, 255, 255}, "lightgoldenrodyellow": {250, 250, 210}, "lightgray": {211, 211, 211},
	"lightgreen": {144, 238, 144}, "lightgrey": {211, 211, 211}, "lightpink": {255, 182, 193},
	"lightsalmon": {255, 160, 122}, "lightseagreen": {32, 178, 170}, "lightskyblue": {135, 206, 250},
	"lightslategray": {119, 136, 153}, "lightslategrey": {119, 136, 153}, "lightsteelblue": {176, 196, 222},
	"lightyellow": {255, 255, 224}, "lime": {0, 255, 0}, "limegreen": {50, 205, 50},
	"linen": {250, 240, 230}, "magenta": {255, 0, 255}, "maroon": {128, 0, 0},
	"mediumaquamarine": {102, 205, 170}, "mediumblue": {0, 0, 205}, "mediumorchid": {186, 85, 211},
	"mediumpurple": {147, 112, 219}, "mediumseagreen": {60, 179, 113}, "mediumslateblue": {123, 104, 238},
	"mediumspringgreen": {0, 250, 154}, "mediumturquoise": {72, 209, 204}, "mediumvioletred": {199, 21, 133},
	"midnightblue": {25, 25, 112}, "mintcream": {245, 255, 250}, "mistyrose": {255, 228, 225},
	"moccasin": {255, 228, 181}, "navajowhite": {255, 222, 173}, "navy": {0, 0, 128},
	"oldlace": {253, 245, 230}, "olive": {128, 128, 0}, "olivedrab": {107, 142, 35},
	"orange": {255, 165, 0}, "orangered": {255, 69, 0}, "orchid": {218, 112, 214},
	"palegoldenrod": {238, 232, 170}, "palegreen": {152, 251, 152}, "paleturquoise": {175, 238, 238},
	"palevioletred": {219, 112, 147}, "papayawhip": {255, 239, 213}, "peachpuff": {255, 218, 185},
	"peru": {205, 133, 63}, "pink": {255, 192, 203}, "plum": {221, 160, 221},
	"powderblue": {176, 224, 230}, "purple": {128, 0, 128}, "rebeccapurple": {102, 51, 153},
	"red": {255, 0, 0}, "rosybrown": {188, 143, 143}, "royalblue": {65, 105, 225},
	"saddlebrown": {139, 69, 19}, "salmon": {250, 128, 114}, "sandybrown": {244, 164, 96},
	"seagreen": {46, 139, 87}, "seashell": {255, 245, 238}, "sienna": {160, 82, 45},
	"silver": {192, 192, 192}, "skyblue": {135, 206, 235}, "slateblue": {106, 90, 205},
	"slategray": {112, 128, 144}, "slategrey": {112, 128, 144}, "snow": {255, 250, 250},
	"springgreen": {0, 255, 127}, "steelblue": {70, 130, 180}, "tan": {210, 180, 140},
	"teal": {0, 128, 128}, "thistle": {216, 191, 216}, "tomato": {255, 99, 71},
	"turquoise": {64, 224, 208}, "violet": {238, 130, 238}, "wheat": {245, 222, 179},
	"white": {255, 255, 255}, "whitesmoke": {245, 245, 245}, "yellow": {255, 255, 0},
	"yellowgreen": {154, 205, 50},
}

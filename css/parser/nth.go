package parser

import (
	"strconv"
	"strings"
)

// ParseNth parses the <an+b> microsyntax of `:nth-child()` and the
// related pseudo-classes.
// See https://drafts.csswg.org/css-syntax-3/#anb-microsyntax
func ParseNth(input []Token) (a, b int, ok bool) {
	it := NewIter(input)
	first := it.NextSignificant()

	// the leading part, up to the 'n', is split in `a`
	// and the remaining ident text (starting with 'n')
	var rest string
	switch first.Kind {
	case Number:
		if !first.IsInt() {
			return 0, 0, false
		}
		return nthEnd(it, 0, first.Int())
	case Dimension:
		if !first.IsInt() {
			return 0, 0, false
		}
		a, rest = first.Int(), strings.ToLower(first.Unit)
	case Ident:
		switch ident := strings.ToLower(first.Value); ident {
		case "even":
			return nthEnd(it, 2, 0)
		case "odd":
			return nthEnd(it, 2, 1)
		default:
			a, rest = 1, ident
			if strings.HasPrefix(ident, "-") {
				a, rest = -1, ident[1:]
			}
		}
	case Delim:
		// no whitespace is allowed after an initial '+'
		next := it.Next()
		if !first.IsDelim("+") || next.Kind != Ident {
			return 0, 0, false
		}
		a, rest = 1, strings.ToLower(next.Value)
	default:
		return 0, 0, false
	}

	suffix, hasN := strings.CutPrefix(rest, "n")
	if !hasN {
		return 0, 0, false
	}
	switch {
	case suffix == "":
		return nthSignedB(it, a)
	case suffix == "-":
		return nthSignlessB(it, a, -1)
	case strings.HasPrefix(suffix, "-") && isDigits(suffix[1:]):
		v, err := strconv.Atoi(suffix[1:])
		if err != nil {
			return 0, 0, false
		}
		return nthEnd(it, a, -v)
	}
	return 0, 0, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func hasSign(t Token) bool {
	return strings.HasPrefix(t.Value, "+") || strings.HasPrefix(t.Value, "-")
}

// nthSignedB parses the optional part after 'n', either
// a signed integer, or a sign and an unsigned integer.
func nthSignedB(it *TokensIter, a int) (int, int, bool) {
	t := it.NextSignificant()
	switch {
	case t.Kind == 0:
		return a, 0, true
	case t.IsDelim("+"):
		return nthSignlessB(it, a, 1)
	case t.IsDelim("-"):
		return nthSignlessB(it, a, -1)
	case t.Kind == Number && t.IsInt() && hasSign(t):
		return nthEnd(it, a, t.Int())
	}
	return 0, 0, false
}

func nthSignlessB(it *TokensIter, a, sign int) (int, int, bool) {
	t := it.NextSignificant()
	if t.Kind != Number || !t.IsInt() || hasSign(t) {
		return 0, 0, false
	}
	return nthEnd(it, a, sign*t.Int())
}

// nthEnd checks that only whitespace remains.
func nthEnd(it *TokensIter, a, b int) (int, int, bool) {
	if it.NextSignificant().Kind != 0 {
		return 0, 0, false
	}
	return a, b, true
}
